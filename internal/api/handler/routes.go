package handler

import (
	"net/http"

	"github.com/vfg2006/streamboard-api/internal/api/handler/router"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
	"github.com/vfg2006/streamboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/streamboard-api/internal/usecases/insighting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Status(accounts account.AccountService, resultCache CacheAdmin, warmer CacheWarmer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/status",
			Method:  http.MethodGet,
			Handler: GetStatus(accounts, resultCache, warmer),
		},
	}
}

func Providers(accounts account.AccountService, insighter insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/providers/:provider/accounts",
			Method:  http.MethodGet,
			Handler: ListAccounts(accounts),
		},
		{
			Path:    "/v1/providers/:provider/queries/:kind",
			Method:  http.MethodGet,
			Handler: QueryAll(insighter),
		},
		{
			Path:    "/v1/providers/:provider/accounts/:account/queries/:kind",
			Method:  http.MethodGet,
			Handler: QueryAccount(insighter),
		},
	}
}

func Cache(resultCache CacheAdmin, warmer CacheWarmer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cache",
			Method:  http.MethodDelete,
			Handler: PurgeCache(resultCache),
		},
		{
			Path:    "/v1/cache/warm",
			Method:  http.MethodPost,
			Handler: WarmCache(warmer),
		},
	}
}
