package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/streamboard-api/infrastructure/cache"
	handlermocks "github.com/vfg2006/streamboard-api/internal/api/handler/mocks"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/scheduler"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
	accountmocks "github.com/vfg2006/streamboard-api/internal/usecases/account/mocks"
	authmocks "github.com/vfg2006/streamboard-api/internal/usecases/authenticating/mocks"
	insightmocks "github.com/vfg2006/streamboard-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/streamboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fixture struct {
	insighter *insightmocks.MockInsighter
	auth      *authmocks.MockAuthenticator
	cache     *handlermocks.MockCacheAdmin
	warmer    *handlermocks.MockCacheWarmer
	handler   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{
		Server:   config.Server{AllowedOrigins: []string{"http://localhost:3000"}},
		Features: config.Features{EnableAnalytics: true},
		Accounts: map[domain.Provider][]domain.AccountConfig{
			domain.ProviderAnalytics: {
				{Name: "Blog", Provider: domain.ProviderAnalytics, PropertyID: "123", Enabled: true},
			},
		},
	}

	initializer := accountmocks.NewMockInitializer(ctrl)
	initializer.EXPECT().InitAccount(gomock.Any(), gomock.Any()).Return("client", nil).AnyTimes()

	accounts := account.NewService(context.Background(), cfg, map[domain.Provider]account.Initializer{
		domain.ProviderAnalytics: initializer,
	})

	f := &fixture{
		insighter: insightmocks.NewMockInsighter(ctrl),
		auth:      authmocks.NewMockAuthenticator(ctrl),
		cache:     handlermocks.NewMockCacheAdmin(ctrl),
		warmer:    handlermocks.NewMockCacheWarmer(ctrl),
	}

	f.handler = NewHandler(cfg, Dependencies{
		Insighter:     f.insighter,
		Accounts:      accounts,
		Cache:         f.cache,
		Warmer:        f.warmer,
		Authenticator: f.auth,
	})

	return f
}

func (f *fixture) do(method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Queries(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(f *fixture)
		wantStatus int
		wantCode   string
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Consulta combinada com parâmetros",
			target: "/v1/providers/analytics/queries/overview?days_back=7",
			setup: func(f *fixture) {
				f.insighter.EXPECT().
					QueryAll(gomock.Any(), domain.ProviderAnalytics, domain.KindOverview, domain.QueryParams{DaysBack: 7}).
					Return(&domain.AggregateResult{
						Provider:   domain.ProviderAnalytics,
						Kind:       domain.KindOverview,
						Result:     domain.NewSummaryResult("", domain.Summary{"users": 150}),
						PerAccount: map[string]domain.AccountOutcome{},
					}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.AggregateResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, 150.0, body.Result.Summary["users"])
				assert.False(t, body.Mocked)
			},
		},
		{
			name:       "days_back zero é rejeitado",
			target:     "/v1/providers/analytics/queries/overview?days_back=0",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidParams,
		},
		{
			name:       "days_back acima do máximo",
			target:     "/v1/providers/analytics/queries/overview?days_back=366",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidParams,
		},
		{
			name:       "limit acima do máximo",
			target:     "/v1/providers/analytics/queries/top_pages?limit=101",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidParams,
		},
		{
			name:       "limit não numérico",
			target:     "/v1/providers/analytics/queries/top_pages?limit=abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidParams,
		},
		{
			name:       "Provedor desconhecido",
			target:     "/v1/providers/facebook/queries/overview",
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrUnknownProvider,
		},
		{
			name:   "Consulta fora do catálogo",
			target: "/v1/providers/analytics/queries/revenue",
			setup: func(f *fixture) {
				f.insighter.EXPECT().
					QueryAll(gomock.Any(), domain.ProviderAnalytics, domain.QueryKind("revenue"), domain.QueryParams{}).
					Return(nil, fmt.Errorf("%w: revenue", domain.ErrUnknownQueryKind))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrUnknownQueryKind,
		},
		{
			name:   "Consulta de uma conta",
			target: "/v1/providers/analytics/accounts/Blog/queries/top_pages?limit=5",
			setup: func(f *fixture) {
				f.insighter.EXPECT().
					QueryAccount(gomock.Any(), domain.ProviderAnalytics, "Blog", domain.KindTopPages, domain.QueryParams{Limit: 5}).
					Return(domain.NewBreakdownResult("Blog", domain.Breakdown{{Label: "/", Metrics: map[string]float64{"pageviews": 10}}}), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"account":"Blog"`)
				assert.Contains(t, rec.Body.String(), `"pageviews":10`)
			},
		},
		{
			name:   "Falha remota de uma conta",
			target: "/v1/providers/analytics/accounts/Blog/queries/overview",
			setup: func(f *fixture) {
				f.insighter.EXPECT().
					QueryAccount(gomock.Any(), domain.ProviderAnalytics, "Blog", domain.KindOverview, domain.QueryParams{}).
					Return(nil, domain.NewRemoteQueryError(domain.ProviderAnalytics, "Blog", domain.KindOverview, fmt.Errorf("quota")))
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   apiErrors.ErrExternalService,
		},
		{
			name:       "Listagem de contas do provedor",
			target:     "/v1/providers/analytics/accounts",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body domain.ProviderStatus
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.True(t, body.Enabled)
				assert.Equal(t, 1, body.Active)
				require.Len(t, body.Accounts, 1)
				assert.Equal(t, "Blog", body.Accounts[0].Config.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.auth.EXPECT().Enabled().Return(false).AnyTimes()
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := f.do(http.MethodGet, tt.target, "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			}
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestServer_StatusAndCache(t *testing.T) {
	t.Run("Painel de status", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(false).AnyTimes()
		f.cache.EXPECT().Stats().Return(cache.Stats{Hits: 3, Misses: 1, Entries: 1})
		f.warmer.EXPECT().GetStatus().Return(scheduler.WarmerStatus{Enabled: true, CronSchedule: "*/30 * * * *"})

		rec := f.do(http.MethodGet, "/v1/status", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Providers []domain.ProviderStatus `json:"providers"`
			Cache     cache.Stats             `json:"cache"`
			Warmer    scheduler.WarmerStatus  `json:"warmer"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Providers, 3)
		assert.Equal(t, int64(3), body.Cache.Hits)
		assert.True(t, body.Warmer.Enabled)
	})

	t.Run("Limpeza do cache", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(false).AnyTimes()
		gomock.InOrder(
			f.cache.EXPECT().Stats().Return(cache.Stats{Entries: 4}),
			f.cache.EXPECT().Purge(),
		)

		rec := f.do(http.MethodDelete, "/v1/cache", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"purged":4`)
	})

	t.Run("Aquecimento disparado", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(false).AnyTimes()
		f.warmer.EXPECT().TriggerManualRun(gomock.Any()).Return(true)

		rec := f.do(http.MethodPost, "/v1/cache/warm", "", nil)
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("Aquecimento já em andamento", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(false).AnyTimes()
		f.warmer.EXPECT().TriggerManualRun(gomock.Any()).Return(false)

		rec := f.do(http.MethodPost, "/v1/cache/warm", "", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrWarmInProgress, decodeError(t, rec).Code)
	})
}

func TestServer_Authentication(t *testing.T) {
	t.Run("Login devolve a sessão", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(true).AnyTimes()
		f.auth.EXPECT().Login("admin", "segredo").Return(&domain.Session{Token: "abc", Username: "admin"}, nil)

		rec := f.do(http.MethodPost, "/v1/login", `{"username":"admin","password":"segredo"}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token":"abc"`)
	})

	t.Run("Corpo inválido no login", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(true).AnyTimes()

		rec := f.do(http.MethodPost, "/v1/login", `{`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Rota protegida sem token", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(true).AnyTimes()

		rec := f.do(http.MethodGet, "/v1/status", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Healthcheck continua público", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(true).AnyTimes()

		rec := f.do(http.MethodGet, "/healthcheck", "", map[string]string{"Origin": "http://localhost:3000"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	})

	t.Run("Rota inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.auth.EXPECT().Enabled().Return(false).AnyTimes()

		rec := f.do(http.MethodGet, "/v1/nada", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)
	})
}
