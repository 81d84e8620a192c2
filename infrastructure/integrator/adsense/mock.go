package adsense

import (
	"fmt"
	"time"

	"github.com/vfg2006/streamboard-api/infrastructure/integrator"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/utils"
)

type mockPage struct {
	path      string
	earnings  float64
	pageviews float64
	rpm       float64
}

var mockPages = []mockPage{
	{"/best-products-2024", 45.67, 8234, 5.55},
	{"/how-to-guide", 34.23, 7123, 4.81},
	{"/reviews/product-x", 28.90, 5432, 5.32},
	{"/comparison", 23.45, 4321, 5.43},
	{"/tutorials", 19.87, 3987, 4.98},
}

func (s *Service) Mock(kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, err := domain.LookupKind(domain.ProviderAdRevenue, kind)
	if err != nil {
		return nil, err
	}
	params = spec.Normalize(params)

	switch kind {
	case domain.KindEarningsOverview:
		return domain.NewSummaryResult(domain.MockAccountName, domain.Summary{
			"earnings":    543.21,
			"pageviews":   123456,
			"clicks":      2345,
			"ctr":         1.9,
			"rpm":         4.40,
			"impressions": 145678,
		}), nil

	case domain.KindDailyEarnings:
		days := integrator.Days(s.now(), params.DaysBack)
		r := integrator.SeededRand(domain.ProviderAdRevenue, kind, params.DaysBack, days[len(days)-1].Format(time.DateOnly))

		series := make(domain.TimeSeries, len(days))
		for i, day := range days {
			series[i] = domain.SeriesPoint{Date: day, Metrics: map[string]float64{
				"earnings":  utils.RoundWithTwoDecimalPlace(integrator.Uniform(r, 10, 30)),
				"pageviews": integrator.IntBetween(r, 3000, 6000),
				"clicks":    integrator.IntBetween(r, 50, 150),
				"ctr":       utils.RoundWithTwoDecimalPlace(integrator.Uniform(r, 1.5, 2.5)),
				"rpm":       utils.RoundWithTwoDecimalPlace(integrator.Uniform(r, 3.5, 5.5)),
			}}
		}
		return domain.NewSeriesResult(domain.MockAccountName, series), nil

	case domain.KindSiteEarnings:
		return domain.NewBreakdownResult(domain.MockAccountName, domain.Breakdown{
			{Label: "example.com", Metrics: map[string]float64{"earnings": 345.67, "pageviews": 78234, "clicks": 1523, "rpm": 4.42}},
			{Label: "blog.example.com", Metrics: map[string]float64{"earnings": 123.45, "pageviews": 34567, "clicks": 567, "rpm": 3.57}},
			{Label: "shop.example.com", Metrics: map[string]float64{"earnings": 74.09, "pageviews": 12345, "clicks": 255, "rpm": 6.00}},
		}), nil

	case domain.KindTopPages:
		breakdown := make(domain.Breakdown, 0, len(mockPages))
		for _, p := range mockPages {
			url := "https://example.com" + p.path
			breakdown = append(breakdown, domain.Category{
				Label:      url,
				Metrics:    map[string]float64{"earnings": p.earnings, "pageviews": p.pageviews, "rpm": p.rpm},
				Attributes: map[string]string{"page": p.path, "full_url": url},
			})
		}
		if len(breakdown) > params.Limit {
			breakdown = breakdown[:params.Limit]
		}
		return domain.NewBreakdownResult(domain.MockAccountName, breakdown), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQueryKind, kind)
}
