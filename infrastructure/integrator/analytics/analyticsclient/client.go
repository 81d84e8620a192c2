package analyticsclient

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks

// Client executa relatórios na GA4 Data API para uma propriedade
type Client interface {
	RunReport(ctx context.Context, propertyID string, req *analyticsdata.RunReportRequest) (*analyticsdata.RunReportResponse, error)
	RunRealtimeReport(ctx context.Context, propertyID string, req *analyticsdata.RunRealtimeReportRequest) (*analyticsdata.RunRealtimeReportResponse, error)
}

type client struct {
	service *analyticsdata.Service
}

func NewClient(ctx context.Context, opts ...option.ClientOption) (Client, error) {
	service, err := analyticsdata.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "analytics: failed to create data api service")
	}

	return &client{service: service}, nil
}

func (c *client) RunReport(ctx context.Context, propertyID string, req *analyticsdata.RunReportRequest) (*analyticsdata.RunReportResponse, error) {
	resp, err := c.service.Properties.RunReport(propertyName(propertyID), req).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "analytics: runReport failed for property %s", propertyID)
	}
	return resp, nil
}

func (c *client) RunRealtimeReport(ctx context.Context, propertyID string, req *analyticsdata.RunRealtimeReportRequest) (*analyticsdata.RunRealtimeReportResponse, error) {
	resp, err := c.service.Properties.RunRealtimeReport(propertyName(propertyID), req).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "analytics: runRealtimeReport failed for property %s", propertyID)
	}
	return resp, nil
}

func propertyName(propertyID string) string {
	if strings.HasPrefix(propertyID, "properties/") {
		return propertyID
	}
	return "properties/" + propertyID
}
