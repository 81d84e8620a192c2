package adsenseclient

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	adsense "google.golang.org/api/adsense/v2"
	"google.golang.org/api/option"
)

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks

// ReportRequest descreve um relatório personalizado de uma conta AdSense
type ReportRequest struct {
	AccountID  string
	Start      time.Time
	End        time.Time
	Dimensions []string
	Metrics    []string
	OrderBy    []string
	Limit      int
}

// Client executa chamadas na AdSense Management API v2
type Client interface {
	GenerateReport(ctx context.Context, req ReportRequest) (*adsense.ReportResult, error)
	ListAccounts(ctx context.Context) ([]string, error)
}

type client struct {
	service *adsense.Service
}

func NewClient(ctx context.Context, opts ...option.ClientOption) (Client, error) {
	service, err := adsense.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "adsense: failed to create management api service")
	}

	return &client{service: service}, nil
}

func (c *client) GenerateReport(ctx context.Context, req ReportRequest) (*adsense.ReportResult, error) {
	call := c.service.Accounts.Reports.Generate(accountName(req.AccountID)).
		DateRange("CUSTOM").
		StartDateYear(int64(req.Start.Year())).
		StartDateMonth(int64(req.Start.Month())).
		StartDateDay(int64(req.Start.Day())).
		EndDateYear(int64(req.End.Year())).
		EndDateMonth(int64(req.End.Month())).
		EndDateDay(int64(req.End.Day())).
		Metrics(req.Metrics...)

	if len(req.Dimensions) > 0 {
		call = call.Dimensions(req.Dimensions...)
	}
	if len(req.OrderBy) > 0 {
		call = call.OrderBy(req.OrderBy...)
	}
	if req.Limit > 0 {
		call = call.Limit(int64(req.Limit))
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "adsense: generate report failed for account %s", req.AccountID)
	}
	return resp, nil
}

// ListAccounts devolve os ids (pub-XXXX) das contas visíveis para a credencial
func (c *client) ListAccounts(ctx context.Context) ([]string, error) {
	resp, err := c.service.Accounts.List().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "adsense: list accounts failed")
	}

	ids := make([]string, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		ids = append(ids, strings.TrimPrefix(a.Name, "accounts/"))
	}
	return ids, nil
}

func accountName(accountID string) string {
	if strings.HasPrefix(accountID, "accounts/") {
		return accountID
	}
	return "accounts/" + accountID
}
