package adsense

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/infrastructure/credentials"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/adsense/adsenseclient"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/utils"
	"google.golang.org/api/option"
)

const Scope = "https://www.googleapis.com/auth/adsense.readonly"

var ErrMissingAccountID = errors.New("account_id não configurado nem descoberto")

type ClientFactory func(ctx context.Context, opts ...option.ClientOption) (adsenseclient.Client, error)

type handle struct {
	client    adsenseclient.Client
	accountID string
}

type Service struct {
	newClient ClientFactory
	now       func() time.Time
}

func New() *Service {
	return &Service{
		newClient: adsenseclient.NewClient,
		now:       time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Provider() domain.Provider {
	return domain.ProviderAdRevenue
}

// InitAccount autentica via OAuth e, sem account_id configurado, usa a
// primeira conta devolvida pela API
func (s *Service) InitAccount(ctx context.Context, cfg domain.AccountConfig) (any, error) {
	opt, err := credentials.GoogleOAuthToken(ctx, cfg, Scope)
	if err != nil {
		return nil, err
	}

	client, err := s.newClient(ctx, opt)
	if err != nil {
		return nil, err
	}

	return s.newHandle(ctx, cfg, client), nil
}

func (s *Service) newHandle(ctx context.Context, cfg domain.AccountConfig, client adsenseclient.Client) *handle {
	h := &handle{client: client, accountID: cfg.AccountID}
	if h.accountID != "" {
		return h
	}

	ids, err := client.ListAccounts(ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account": cfg.Name,
			"error":   err.Error(),
		}).Warn("adsense: account id discovery failed")
		return h
	}

	if len(ids) > 0 {
		h.accountID = ids[0]
		logrus.WithFields(logrus.Fields{
			"account":    cfg.Name,
			"account_id": h.accountID,
		}).Info("adsense: account id discovered")
	}

	return h
}

func (s *Service) Execute(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, err := domain.LookupKind(domain.ProviderAdRevenue, kind)
	if err != nil {
		return nil, err
	}
	params = spec.Normalize(params)

	account := state.Config.Name
	h, ok := state.Client.(*handle)
	if !ok || h == nil {
		return nil, domain.NewRemoteQueryError(domain.ProviderAdRevenue, account, kind, errors.New("conta sem cliente inicializado"))
	}
	if h.accountID == "" {
		return nil, domain.NewRemoteQueryError(domain.ProviderAdRevenue, account, kind, ErrMissingAccountID)
	}

	start, end := utils.DateWindow(s.now(), params.DaysBack)
	req := adsenseclient.ReportRequest{AccountID: h.accountID, Start: start, End: end}

	var result *domain.Result
	switch kind {
	case domain.KindEarningsOverview:
		result, err = s.earningsOverview(ctx, h, req)
	case domain.KindDailyEarnings:
		result, err = s.dailyEarnings(ctx, h, req)
	case domain.KindSiteEarnings:
		result, err = s.siteEarnings(ctx, h, req)
	case domain.KindTopPages:
		req.Limit = params.Limit
		result, err = s.topPages(ctx, h, req)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQueryKind, kind)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account":    account,
			"account_id": h.accountID,
			"kind":       kind,
			"error":      err.Error(),
		}).Error("adsense: report failed")
		return nil, domain.NewRemoteQueryError(domain.ProviderAdRevenue, account, kind, err)
	}

	result.Source = account
	return result, nil
}

func (s *Service) earningsOverview(ctx context.Context, h *handle, req adsenseclient.ReportRequest) (*domain.Result, error) {
	metrics := []adMetric{metricEarnings, metricPageViews, metricClicks, metricCTR, metricRPM, metricImpressions}
	req.Metrics = metricAPINames(metrics)

	resp, err := h.client.GenerateReport(ctx, req)
	if err != nil {
		return nil, err
	}

	rows, err := parseReport(resp, nil, metrics)
	if err != nil {
		return nil, err
	}

	return domain.NewSummaryResult("", domain.Summary(rows[0].metrics)), nil
}

func (s *Service) dailyEarnings(ctx context.Context, h *handle, req adsenseclient.ReportRequest) (*domain.Result, error) {
	metrics := []adMetric{metricEarnings, metricPageViews, metricClicks, metricCTR, metricRPM}
	req.Dimensions = []string{"DATE"}
	req.Metrics = metricAPINames(metrics)
	req.OrderBy = []string{"+DATE"}

	resp, err := h.client.GenerateReport(ctx, req)
	if err != nil {
		return nil, err
	}

	rows, err := parseReport(resp, req.Dimensions, metrics)
	if err != nil {
		return nil, err
	}

	series := make(domain.TimeSeries, 0, len(rows))
	for _, row := range rows {
		date, err := utils.ParseDate(time.DateOnly, row.dimensions[0])
		if err != nil {
			return nil, errors.Wrapf(domain.ErrMalformedData, "data inválida %q", row.dimensions[0])
		}
		series = append(series, domain.SeriesPoint{Date: date, Metrics: row.metrics})
	}
	series.SortByDate()

	return domain.NewSeriesResult("", series), nil
}

func (s *Service) siteEarnings(ctx context.Context, h *handle, req adsenseclient.ReportRequest) (*domain.Result, error) {
	metrics := []adMetric{metricEarnings, metricPageViews, metricClicks, metricRPM}
	req.Dimensions = []string{"DOMAIN_NAME"}
	req.Metrics = metricAPINames(metrics)
	req.OrderBy = []string{"-ESTIMATED_EARNINGS"}

	resp, err := h.client.GenerateReport(ctx, req)
	if err != nil {
		return nil, err
	}

	rows, err := parseReport(resp, req.Dimensions, metrics)
	if err != nil {
		return nil, err
	}

	breakdown := make(domain.Breakdown, 0, len(rows))
	for _, row := range rows {
		label := row.dimensions[0]
		if label == "" {
			label = "Unknown"
		}
		breakdown = append(breakdown, domain.Category{Label: label, Metrics: row.metrics})
	}
	breakdown.SortBy(metricEarnings.name)

	return domain.NewBreakdownResult("", breakdown), nil
}

func (s *Service) topPages(ctx context.Context, h *handle, req adsenseclient.ReportRequest) (*domain.Result, error) {
	metrics := []adMetric{metricEarnings, metricPageViews, metricRPM}
	req.Dimensions = []string{"PAGE_URL"}
	req.Metrics = metricAPINames(metrics)
	req.OrderBy = []string{"-ESTIMATED_EARNINGS"}

	resp, err := h.client.GenerateReport(ctx, req)
	if err != nil {
		return nil, err
	}

	rows, err := parseReport(resp, req.Dimensions, metrics)
	if err != nil {
		return nil, err
	}

	breakdown := make(domain.Breakdown, 0, len(rows))
	for _, row := range rows {
		url := row.dimensions[0]
		breakdown = append(breakdown, domain.Category{
			Label:      url,
			Metrics:    row.metrics,
			Attributes: map[string]string{"page": pageLabel(url), "full_url": url},
		})
	}
	breakdown.SortBy(metricEarnings.name)

	if req.Limit > 0 && len(breakdown) > req.Limit {
		breakdown = breakdown[:req.Limit]
	}

	return domain.NewBreakdownResult("", breakdown), nil
}
