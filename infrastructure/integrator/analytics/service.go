package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/infrastructure/credentials"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/analytics/analyticsclient"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/utils"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

var ErrMissingPropertyID = errors.New("property_id não informado")

// ClientFactory cria o executor remoto a partir das credenciais resolvidas
type ClientFactory func(ctx context.Context, opts ...option.ClientOption) (analyticsclient.Client, error)

// handle é o cliente autenticado guardado no registro para cada conta
type handle struct {
	client     analyticsclient.Client
	propertyID string
}

type Service struct {
	newClient ClientFactory
	now       func() time.Time
}

func New() *Service {
	return &Service{
		newClient: analyticsclient.NewClient,
		now:       time.Now,
	}
}

// WithClock substitui o relógio usado pelos dados de demonstração
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Provider() domain.Provider {
	return domain.ProviderAnalytics
}

func (s *Service) InitAccount(ctx context.Context, cfg domain.AccountConfig) (any, error) {
	if cfg.PropertyID == "" {
		return nil, ErrMissingPropertyID
	}

	opt, err := credentials.GoogleServiceAccount(ctx, cfg, analyticsdata.AnalyticsReadonlyScope)
	if err != nil {
		return nil, err
	}

	client, err := s.newClient(ctx, opt)
	if err != nil {
		return nil, err
	}

	return &handle{client: client, propertyID: cfg.PropertyID}, nil
}

func (s *Service) Execute(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, err := domain.LookupKind(domain.ProviderAnalytics, kind)
	if err != nil {
		return nil, err
	}
	params = spec.Normalize(params)

	account := state.Config.Name
	h, ok := state.Client.(*handle)
	if !ok || h == nil {
		return nil, domain.NewRemoteQueryError(domain.ProviderAnalytics, account, kind, errors.New("conta sem cliente inicializado"))
	}

	logrus.WithFields(logrus.Fields{
		"account":     account,
		"property_id": h.propertyID,
		"kind":        kind,
		"days_back":   params.DaysBack,
	}).Debug("analytics: executing report")

	var result *domain.Result
	switch kind {
	case domain.KindOverview:
		result, err = s.overview(ctx, h, params)
	case domain.KindDailyTraffic:
		result, err = s.dailyTraffic(ctx, h, params)
	case domain.KindDeviceBreakdown:
		result, err = s.deviceBreakdown(ctx, h, params)
	case domain.KindTopPages:
		result, err = s.topPages(ctx, h, params)
	case domain.KindRealtime:
		result, err = s.realtime(ctx, h)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQueryKind, kind)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account": account,
			"kind":    kind,
			"error":   err.Error(),
		}).Error("analytics: report failed")
		return nil, domain.NewRemoteQueryError(domain.ProviderAnalytics, account, kind, err)
	}

	result.Source = account
	return result, nil
}

func (s *Service) overview(ctx context.Context, h *handle, params domain.QueryParams) (*domain.Result, error) {
	resp, err := h.client.RunReport(ctx, h.propertyID, &analyticsdata.RunReportRequest{
		DateRanges: dateRanges(params.DaysBack),
		Metrics:    requestMetrics(overviewMetrics),
	})
	if err != nil {
		return nil, err
	}

	rows, err := parseRows(resp.DimensionHeaders, resp.MetricHeaders, resp.Rows, metricNames(overviewMetrics))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(domain.ErrMalformedData, "relatório sem linhas")
	}

	return domain.NewSummaryResult("", domain.Summary(rows[0].metrics)), nil
}

func (s *Service) dailyTraffic(ctx context.Context, h *handle, params domain.QueryParams) (*domain.Result, error) {
	resp, err := h.client.RunReport(ctx, h.propertyID, &analyticsdata.RunReportRequest{
		DateRanges: dateRanges(params.DaysBack),
		Dimensions: []*analyticsdata.Dimension{{Name: "date"}},
		Metrics:    requestMetrics(trafficMetrics),
		OrderBys: []*analyticsdata.OrderBy{{
			Dimension: &analyticsdata.DimensionOrderBy{DimensionName: "date"},
		}},
	})
	if err != nil {
		return nil, err
	}

	rows, err := parseRows(resp.DimensionHeaders, resp.MetricHeaders, resp.Rows, metricNames(trafficMetrics))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(domain.ErrMalformedData, "relatório sem linhas")
	}

	series := make(domain.TimeSeries, 0, len(rows))
	for _, row := range rows {
		date, err := utils.ParseDate("20060102", row.dimensions[0])
		if err != nil {
			return nil, errors.Wrapf(domain.ErrMalformedData, "data inválida %q", row.dimensions[0])
		}
		series = append(series, domain.SeriesPoint{Date: date, Metrics: row.metrics})
	}
	series.SortByDate()

	return domain.NewSeriesResult("", series), nil
}

func (s *Service) deviceBreakdown(ctx context.Context, h *handle, params domain.QueryParams) (*domain.Result, error) {
	resp, err := h.client.RunReport(ctx, h.propertyID, &analyticsdata.RunReportRequest{
		DateRanges: dateRanges(params.DaysBack),
		Dimensions: []*analyticsdata.Dimension{{Name: "deviceCategory"}},
		Metrics:    requestMetrics(deviceMetrics),
	})
	if err != nil {
		return nil, err
	}

	return breakdownFromReport(resp, deviceMetrics, "users", 0)
}

func (s *Service) topPages(ctx context.Context, h *handle, params domain.QueryParams) (*domain.Result, error) {
	resp, err := h.client.RunReport(ctx, h.propertyID, &analyticsdata.RunReportRequest{
		DateRanges: dateRanges(params.DaysBack),
		Dimensions: []*analyticsdata.Dimension{{Name: "pagePath"}},
		Metrics:    requestMetrics(pageMetrics),
		OrderBys: []*analyticsdata.OrderBy{{
			Metric: &analyticsdata.MetricOrderBy{MetricName: "screenPageViews"},
			Desc:   true,
		}},
		Limit: int64(params.Limit),
	})
	if err != nil {
		return nil, err
	}

	return breakdownFromReport(resp, pageMetrics, "pageviews", params.Limit)
}

func breakdownFromReport(resp *analyticsdata.RunReportResponse, metrics []gaMetric, primary string, limit int) (*domain.Result, error) {
	rows, err := parseRows(resp.DimensionHeaders, resp.MetricHeaders, resp.Rows, metricNames(metrics))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(domain.ErrMalformedData, "relatório sem linhas")
	}

	breakdown := make(domain.Breakdown, 0, len(rows))
	for _, row := range rows {
		breakdown = append(breakdown, domain.Category{Label: row.dimensions[0], Metrics: row.metrics})
	}
	breakdown.SortBy(primary)

	if limit > 0 && len(breakdown) > limit {
		breakdown = breakdown[:limit]
	}

	return domain.NewBreakdownResult("", breakdown), nil
}

// realtime devolve zero quando ninguém está online: a API não retorna linhas
func (s *Service) realtime(ctx context.Context, h *handle) (*domain.Result, error) {
	resp, err := h.client.RunRealtimeReport(ctx, h.propertyID, &analyticsdata.RunRealtimeReportRequest{
		Metrics: requestMetrics(realtimeMetrics),
	})
	if err != nil {
		return nil, err
	}

	rows, err := parseRows(resp.DimensionHeaders, resp.MetricHeaders, resp.Rows, metricNames(realtimeMetrics))
	if err != nil {
		return nil, err
	}

	summary := domain.Summary{"active_users": 0}
	if len(rows) > 0 {
		summary["active_users"] = rows[0].metrics["active_users"]
	}

	return domain.NewSummaryResult("", summary), nil
}
