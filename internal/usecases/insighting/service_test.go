package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/streamboard-api/infrastructure/cache"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
	"github.com/vfg2006/streamboard-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

var (
	day1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	day3 = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	svc     *Service
	adapter *mocks.MockAdapter
	cache   *cache.ResultCache
}

func newFixture(t *testing.T, ctrl *gomock.Controller, provider domain.Provider, accounts ...string) *fixture {
	t.Helper()

	adapter := mocks.NewMockAdapter(ctrl)
	adapter.EXPECT().Provider().Return(provider).AnyTimes()
	adapter.EXPECT().InitAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cfg domain.AccountConfig) (any, error) {
			if cfg.Name == "Quebrada" {
				return nil, errors.New("credencial inválida")
			}
			return cfg.Name, nil
		}).AnyTimes()

	configs := make([]domain.AccountConfig, len(accounts))
	for i, name := range accounts {
		configs[i] = domain.AccountConfig{Name: name, Enabled: true}
	}
	registry := account.NewRegistry(provider, adapter)
	registry.Register(context.Background(), configs)

	source := mocks.NewMockRegistrySource(ctrl)
	source.EXPECT().Registry(provider).Return(registry, nil).AnyTimes()

	resultCache, err := cache.New(cache.Config{LongTTL: time.Hour, ShortTTL: time.Minute, MaxEntries: 50})
	require.NoError(t, err)

	cfg := &config.Config{Aggregator: config.Aggregator{AccountTimeout: 100 * time.Millisecond, MaxConcurrent: 2}}

	return &fixture{
		svc:     NewService(cfg, source, resultCache, adapter),
		adapter: adapter,
		cache:   resultCache,
	}
}

func byAccount(results map[string]*domain.Result, failures map[string]error) func(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	return func(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
		if err, ok := failures[state.Config.Name]; ok {
			return nil, err
		}
		return results[state.Config.Name].Clone(), nil
	}
}

func TestService_QueryAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		provider domain.Provider
		kind     domain.QueryKind
		accounts []string
		setup    func(f *fixture)
		validate func(t *testing.T, r *domain.AggregateResult, err error)
	}{
		{
			name:     "Soma valores e faz média de taxas",
			provider: domain.ProviderAdRevenue,
			kind:     domain.KindEarningsOverview,
			accounts: []string{"A", "B"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), domain.KindEarningsOverview, gomock.Any()).
					DoAndReturn(byAccount(map[string]*domain.Result{
						"A": domain.NewSummaryResult("A", domain.Summary{"earnings": 100, "ctr": 2.0}),
						"B": domain.NewSummaryResult("B", domain.Summary{"earnings": 50, "ctr": 4.0}),
					}, nil)).Times(2)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.False(t, r.Mocked)
				assert.Equal(t, 150.0, r.Result.Summary["earnings"])
				assert.Equal(t, 3.0, r.Result.Summary["ctr"])
				assert.Len(t, r.PerAccount, 2)
				assert.Equal(t, domain.OutcomeOK, r.PerAccount["A"].Status)
			},
		},
		{
			name:     "Falha parcial fica registrada por conta",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindCostOverview,
			accounts: []string{"A", "B", "C"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(byAccount(map[string]*domain.Result{
						"A": domain.NewSummaryResult("A", domain.Summary{"total_cost": 10}),
						"C": domain.NewSummaryResult("C", domain.Summary{"total_cost": 5}),
					}, map[string]error{"B": errors.New("throttled")})).Times(3)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.False(t, r.Mocked)
				assert.Equal(t, 15.0, r.Result.Summary["total_cost"])

				failed, ok := r.PerAccount["B"]
				require.True(t, ok)
				assert.Equal(t, domain.OutcomeError, failed.Status)
				assert.ErrorIs(t, failed.Err, domain.ErrRemoteQuery)
				assert.Contains(t, failed.Error, "throttled")
			},
		},
		{
			name:     "Séries fazem junção externa por data",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindDailyCosts,
			accounts: []string{"A", "B"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(byAccount(map[string]*domain.Result{
						"A": domain.NewSeriesResult("A", domain.TimeSeries{
							{Date: day1, Metrics: map[string]float64{"cost": 10}},
							{Date: day2, Metrics: map[string]float64{"cost": 20}},
						}),
						"B": domain.NewSeriesResult("B", domain.TimeSeries{
							{Date: day2, Metrics: map[string]float64{"cost": 5}},
							{Date: day3, Metrics: map[string]float64{"cost": 15}},
						}),
					}, nil)).Times(2)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.TimeSeries{
					{Date: day1, Metrics: map[string]float64{"cost": 10}},
					{Date: day2, Metrics: map[string]float64{"cost": 25}},
					{Date: day3, Metrics: map[string]float64{"cost": 15}},
				}, r.Result.Series)
			},
		},
		{
			name:     "Sem contas ativas usa dados de demonstração",
			provider: domain.ProviderAnalytics,
			kind:     domain.KindRealtime,
			accounts: []string{"Quebrada"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Mock(domain.KindRealtime, domain.QueryParams{}).
					Return(domain.NewSummaryResult("", domain.Summary{"active_users": 42}), nil)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.True(t, r.Mocked)
				assert.Empty(t, r.PerAccount)
				assert.Equal(t, domain.MockAccountName, r.Result.Source)
				assert.Equal(t, 42.0, r.Result.Summary["active_users"])
			},
		},
		{
			name:     "Todas as contas falham e o resultado vem da demonstração",
			provider: domain.ProviderAnalytics,
			kind:     domain.KindOverview,
			accounts: []string{"A", "B"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("503")).Times(2)
				f.adapter.EXPECT().Mock(domain.KindOverview, domain.QueryParams{DaysBack: domain.DefaultDaysBack}).
					Return(domain.NewSummaryResult("", domain.Summary{"users": 1}), nil)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.True(t, r.Mocked)
				assert.Len(t, r.PerAccount, 2)
				assert.Equal(t, domain.OutcomeError, r.PerAccount["A"].Status)
				assert.Equal(t, domain.OutcomeError, r.PerAccount["B"].Status)
			},
		},
		{
			name:     "Conta lenta expira sem bloquear as demais",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindResourceSummary,
			accounts: []string{"Rápida", "Lenta"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
						if state.Config.Name == "Lenta" {
							time.Sleep(time.Second)
						}
						return domain.NewSummaryResult(state.Config.Name, domain.Summary{"s3_buckets": 2}), nil
					}).Times(2)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2.0, r.Result.Summary["s3_buckets"])
				assert.ErrorIs(t, r.PerAccount["Lenta"].Err, domain.ErrAccountTimeout)
				assert.ErrorIs(t, r.PerAccount["Lenta"].Err, domain.ErrRemoteQuery)
			},
		},
		{
			name:     "Formato inesperado vira erro da conta",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindServiceCosts,
			accounts: []string{"A", "B"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(byAccount(map[string]*domain.Result{
						"A": domain.NewBreakdownResult("A", domain.Breakdown{{Label: "Amazon EC2", Metrics: map[string]float64{"cost": 3}}}),
						"B": domain.NewSummaryResult("B", domain.Summary{"cost": 3}),
					}, nil)).Times(2)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.Len(t, r.Result.Breakdown, 1)
				assert.ErrorIs(t, r.PerAccount["B"].Err, domain.ErrShapeMismatch)
			},
		},
		{
			name:     "Conteúdo diferente do formato declarado vira erro da conta",
			provider: domain.ProviderCloudBilling,
			kind:     domain.KindCostOverview,
			accounts: []string{"A", "B"},
			setup: func(f *fixture) {
				f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(byAccount(map[string]*domain.Result{
						"A": domain.NewSummaryResult("A", domain.Summary{"total_cost": 10}),
						"B": {Kind: domain.ShapeSummary, Source: "B", Breakdown: domain.Breakdown{
							{Label: "Amazon EC2", Metrics: map[string]float64{"cost": 5}},
						}},
					}, nil)).Times(2)
			},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 10.0, r.Result.Summary["total_cost"])
				assert.Equal(t, domain.OutcomeOK, r.PerAccount["A"].Status)
				assert.Equal(t, domain.OutcomeError, r.PerAccount["B"].Status)
				assert.ErrorIs(t, r.PerAccount["B"].Err, domain.ErrShapeMismatch)
			},
		},
		{
			name:     "Consulta fora do catálogo é erro do chamador",
			provider: domain.ProviderAnalytics,
			kind:     domain.KindAlarms,
			accounts: []string{"A"},
			setup:    func(f *fixture) {},
			validate: func(t *testing.T, r *domain.AggregateResult, err error) {
				assert.Nil(t, r)
				assert.ErrorIs(t, err, domain.ErrUnknownQueryKind)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl, tt.provider, tt.accounts...)
			tt.setup(f)

			r, err := f.svc.QueryAll(ctx, tt.provider, tt.kind, domain.QueryParams{})
			tt.validate(t, r, err)
		})
	}
}

func TestService_QueryAll_InvalidParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, domain.ProviderAnalytics, "A")

	_, err := f.svc.QueryAll(context.Background(), domain.ProviderAnalytics, domain.KindOverview, domain.QueryParams{DaysBack: 400})
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}

func TestService_QueryAll_UsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, domain.ProviderAdRevenue, "A")
	f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.NewSummaryResult("A", domain.Summary{"earnings": 7}), nil).
		Times(1)

	for i := 0; i < 3; i++ {
		r, err := f.svc.QueryAll(context.Background(), domain.ProviderAdRevenue, domain.KindEarningsOverview, domain.QueryParams{DaysBack: 30})
		require.NoError(t, err)
		assert.Equal(t, 7.0, r.Result.Summary["earnings"])
	}

	// parâmetros omitidos e padrão explícito compartilham a mesma entrada
	_, err := f.svc.QueryAll(context.Background(), domain.ProviderAdRevenue, domain.KindEarningsOverview, domain.QueryParams{})
	require.NoError(t, err)

	stats := f.cache.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(3), stats.Hits)
}

func TestService_QueryAll_FailureIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, domain.ProviderCloudBilling, "A")
	gomock.InOrder(
		f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("throttled")),
		f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.NewSummaryResult("A", domain.Summary{"total_cost": 1}), nil),
	)
	f.adapter.EXPECT().Mock(gomock.Any(), gomock.Any()).
		Return(domain.NewSummaryResult("", domain.Summary{"total_cost": 2345.67}), nil)

	first, err := f.svc.QueryAll(context.Background(), domain.ProviderCloudBilling, domain.KindCostOverview, domain.QueryParams{})
	require.NoError(t, err)
	assert.True(t, first.Mocked)

	second, err := f.svc.QueryAll(context.Background(), domain.ProviderCloudBilling, domain.KindCostOverview, domain.QueryParams{})
	require.NoError(t, err)
	assert.False(t, second.Mocked)
	assert.Equal(t, 1.0, second.Result.Summary["total_cost"])
}

func TestService_QueryAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, domain.ProviderAnalytics, "Blog", "Quebrada")
	f.adapter.EXPECT().Execute(gomock.Any(), gomock.Any(), domain.KindOverview, gomock.Any()).
		DoAndReturn(func(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
			assert.Equal(t, "Blog", state.Config.Name)
			assert.Equal(t, "Blog", state.Client)
			return domain.NewSummaryResult("Blog", domain.Summary{"users": 9}), nil
		})
	f.adapter.EXPECT().Mock(domain.KindOverview, gomock.Any()).
		Return(domain.NewSummaryResult("", domain.Summary{"users": 12543}), nil).
		Times(2)

	r, err := f.svc.QueryAccount(context.Background(), domain.ProviderAnalytics, "Blog", domain.KindOverview, domain.QueryParams{})
	require.NoError(t, err)
	assert.Equal(t, "Blog", r.Source)
	assert.Equal(t, 9.0, r.Summary["users"])

	for _, name := range []string{"Quebrada", "Inexistente"} {
		r, err = f.svc.QueryAccount(context.Background(), domain.ProviderAnalytics, name, domain.KindOverview, domain.QueryParams{})
		require.NoError(t, err)
		assert.Equal(t, domain.MockAccountName, r.Source)
	}
}
