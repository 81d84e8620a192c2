package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/streamboard-api/infrastructure/cache"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/scheduler"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
)

// StatusResponse alimenta o painel de status
type StatusResponse struct {
	Providers   []domain.ProviderStatus `json:"providers"`
	Cache       cache.Stats             `json:"cache"`
	Warmer      scheduler.WarmerStatus  `json:"warmer"`
	GeneratedAt time.Time               `json:"generated_at"`
}

func GetStatus(accounts account.AccountService, resultCache CacheAdmin, warmer CacheWarmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{
			Providers:   accounts.Status(),
			Cache:       resultCache.Stats(),
			Warmer:      warmer.GetStatus(),
			GeneratedAt: time.Now().UTC(),
		})
	}
}
