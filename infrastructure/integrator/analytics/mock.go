package analytics

import (
	"fmt"
	"time"

	"github.com/vfg2006/streamboard-api/infrastructure/integrator"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/utils"
)

// Mock gera os dados de demonstração exibidos quando não há contas ativas
func (s *Service) Mock(kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, err := domain.LookupKind(domain.ProviderAnalytics, kind)
	if err != nil {
		return nil, err
	}
	params = spec.Normalize(params)

	switch kind {
	case domain.KindOverview:
		return domain.NewSummaryResult(domain.MockAccountName, domain.Summary{
			"users":                12543,
			"sessions":             18234,
			"pageviews":            45123,
			"bounce_rate":          42.3,
			"avg_session_duration": 156,
			"engagement_rate":      68.5,
		}), nil

	case domain.KindDailyTraffic:
		days := integrator.Days(s.now(), params.DaysBack)
		r := integrator.SeededRand(domain.ProviderAnalytics, kind, params.DaysBack, days[len(days)-1].Format(time.DateOnly))

		series := make(domain.TimeSeries, len(days))
		for i, day := range days {
			series[i] = domain.SeriesPoint{Date: day, Metrics: map[string]float64{
				"users":       integrator.IntBetween(r, 300, 600),
				"sessions":    integrator.IntBetween(r, 400, 800),
				"pageviews":   integrator.IntBetween(r, 1000, 2000),
				"bounce_rate": utils.RoundWithTwoDecimalPlace(integrator.Uniform(r, 35, 55)),
			}}
		}
		return domain.NewSeriesResult(domain.MockAccountName, series), nil

	case domain.KindDeviceBreakdown:
		breakdown := domain.Breakdown{
			{Label: "desktop", Metrics: map[string]float64{"users": 5234, "sessions": 7123, "bounce_rate": 38}},
			{Label: "mobile", Metrics: map[string]float64{"users": 6543, "sessions": 9234, "bounce_rate": 48}},
			{Label: "tablet", Metrics: map[string]float64{"users": 766, "sessions": 877, "bounce_rate": 42}},
		}
		breakdown.SortBy(spec.PrimaryMetric)
		return domain.NewBreakdownResult(domain.MockAccountName, breakdown), nil

	case domain.KindTopPages:
		breakdown := domain.Breakdown{
			{Label: "/", Metrics: map[string]float64{"pageviews": 12543, "users": 8234, "avg_session_duration": 143}},
			{Label: "/products", Metrics: map[string]float64{"pageviews": 8234, "users": 5123, "avg_session_duration": 234}},
			{Label: "/about", Metrics: map[string]float64{"pageviews": 4532, "users": 3234, "avg_session_duration": 98}},
			{Label: "/contact", Metrics: map[string]float64{"pageviews": 2345, "users": 1876, "avg_session_duration": 67}},
			{Label: "/blog", Metrics: map[string]float64{"pageviews": 1987, "users": 1234, "avg_session_duration": 189}},
		}
		if len(breakdown) > params.Limit {
			breakdown = breakdown[:params.Limit]
		}
		return domain.NewBreakdownResult(domain.MockAccountName, breakdown), nil

	case domain.KindRealtime:
		return domain.NewSummaryResult(domain.MockAccountName, domain.Summary{"active_users": 42}), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQueryKind, kind)
}
