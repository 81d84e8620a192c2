package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		provider domain.Provider
		kind     domain.QueryKind
		params   domain.QueryParams
		results  []*domain.Result
		validate func(t *testing.T, r *domain.Result, err error)
	}{
		{
			name:     "Taxa ausente em uma conta usa só as que informam",
			provider: domain.ProviderAnalytics,
			kind:     domain.KindOverview,
			results: []*domain.Result{
				domain.NewSummaryResult("A", domain.Summary{"users": 10, "bounce_rate": 40}),
				domain.NewSummaryResult("B", domain.Summary{"users": 5}),
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.Summary{"users": 15, "bounce_rate": 40}, r.Summary)
			},
		},
		{
			name:     "Categorias unidas e reordenadas pela métrica principal",
			provider: domain.ProviderAdRevenue,
			kind:     domain.KindSiteEarnings,
			results: []*domain.Result{
				domain.NewBreakdownResult("A", domain.Breakdown{
					{Label: "a.com", Metrics: map[string]float64{"earnings": 10, "rpm": 2}},
					{Label: "b.com", Metrics: map[string]float64{"earnings": 8, "rpm": 4}},
				}),
				domain.NewBreakdownResult("B", domain.Breakdown{
					{Label: "b.com", Metrics: map[string]float64{"earnings": 7, "rpm": 6}},
				}),
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				require.NoError(t, err)
				require.Len(t, r.Breakdown, 2)
				assert.Equal(t, "b.com", r.Breakdown[0].Label)
				assert.Equal(t, 15.0, r.Breakdown[0].Metrics["earnings"])
				assert.Equal(t, 5.0, r.Breakdown[0].Metrics["rpm"])
				assert.Equal(t, "a.com", r.Breakdown[1].Label)
			},
		},
		{
			name:     "Top-N truncado depois da combinação",
			provider: domain.ProviderAnalytics,
			kind:     domain.KindTopPages,
			params:   domain.QueryParams{Limit: 2},
			results: []*domain.Result{
				domain.NewBreakdownResult("A", domain.Breakdown{
					{Label: "/", Metrics: map[string]float64{"pageviews": 10}},
					{Label: "/a", Metrics: map[string]float64{"pageviews": 9}},
				}),
				domain.NewBreakdownResult("B", domain.Breakdown{
					{Label: "/b", Metrics: map[string]float64{"pageviews": 8}},
					{Label: "/a", Metrics: map[string]float64{"pageviews": 3}},
				}),
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				require.NoError(t, err)
				require.Len(t, r.Breakdown, 2)
				assert.Equal(t, "/a", r.Breakdown[0].Label)
				assert.Equal(t, "/", r.Breakdown[1].Label)
			},
		},
		{
			name:     "Atributos da primeira ocorrência são mantidos",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindAlarms,
			results: []*domain.Result{
				domain.NewBreakdownResult("A", domain.Breakdown{
					{Label: "cpu", Metrics: map[string]float64{"alarms": 1}, Attributes: map[string]string{"state": "ALARM"}},
				}),
				domain.NewBreakdownResult("B", domain.Breakdown{
					{Label: "cpu", Metrics: map[string]float64{"alarms": 1}, Attributes: map[string]string{"state": "OK"}},
				}),
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				require.NoError(t, err)
				require.Len(t, r.Breakdown, 1)
				assert.Equal(t, 2.0, r.Breakdown[0].Metrics["alarms"])
				assert.Equal(t, "ALARM", r.Breakdown[0].Attributes["state"])
			},
		},
		{
			name:     "Formatos misturados são rejeitados",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindCostOverview,
			results: []*domain.Result{
				domain.NewSummaryResult("A", domain.Summary{"total_cost": 1}),
				domain.NewSeriesResult("B", nil),
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				assert.ErrorIs(t, err, domain.ErrShapeMismatch)
			},
		},
		{
			name:     "Conteúdo diferente do formato declarado é rejeitado",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindCostOverview,
			results: []*domain.Result{
				domain.NewSummaryResult("A", domain.Summary{"total_cost": 10}),
				{Kind: domain.ShapeSummary, Source: "B", Breakdown: domain.Breakdown{
					{Label: "Amazon EC2", Metrics: map[string]float64{"cost": 5}},
				}},
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				assert.Nil(t, r)
				assert.ErrorIs(t, err, domain.ErrShapeMismatch)
			},
		},
		{
			name:     "Taxas da série usam a média das contas presentes em cada data",
			provider: domain.ProviderAnalytics,
			kind:     domain.KindDailyTraffic,
			results: []*domain.Result{
				domain.NewSeriesResult("A", domain.TimeSeries{
					{Date: day(1), Metrics: map[string]float64{"sessions": 10, "bounce_rate": 40}},
					{Date: day(2), Metrics: map[string]float64{"sessions": 20, "bounce_rate": 20}},
				}),
				domain.NewSeriesResult("B", domain.TimeSeries{
					{Date: day(2), Metrics: map[string]float64{"sessions": 5, "bounce_rate": 60}},
				}),
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				require.NoError(t, err)
				require.Len(t, r.Series, 2)
				assert.Equal(t, day(1), r.Series[0].Date)
				assert.Equal(t, map[string]float64{"sessions": 10, "bounce_rate": 40}, r.Series[0].Metrics)
				assert.Equal(t, day(2), r.Series[1].Date)
				assert.Equal(t, map[string]float64{"sessions": 25, "bounce_rate": 40}, r.Series[1].Metrics)
			},
		},
		{
			name:     "Ordem das contas não altera o resultado",
			provider: domain.ProviderAdRevenue,
			kind:     domain.KindEarningsOverview,
			results: []*domain.Result{
				domain.NewSummaryResult("B", domain.Summary{"earnings": 50, "rpm": 4}),
				domain.NewSummaryResult("A", domain.Summary{"earnings": 100, "rpm": 2}),
			},
			validate: func(t *testing.T, r *domain.Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.Summary{"earnings": 150, "rpm": 3}, r.Summary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.LookupKind(tt.provider, tt.kind)
			require.NoError(t, err)

			r, err := Merge(spec, spec.Normalize(tt.params), tt.results)
			tt.validate(t, r, err)
		})
	}
}

func TestMockFallback(t *testing.T) {
	f := NewMockFallback()

	_, err := f.Mock(domain.ProviderAnalytics, domain.KindOverview, domain.QueryParams{})
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)

	_, err = f.Mock(domain.Provider("twitter"), domain.KindOverview, domain.QueryParams{})
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}
