package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/pkg/apiErrors"
)

// PurgeCache descarta todos os resultados guardados
func PurgeCache(resultCache CacheAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		before := resultCache.Stats()
		resultCache.Purge()

		logrus.WithField("cache_entries", before.Entries).Info("Cache de resultados limpo")

		writeJSON(w, http.StatusOK, map[string]any{
			"purged": before.Entries,
		})
	}
}

// WarmCache dispara o aquecimento do cache fora do agendamento
func WarmCache(warmer CacheWarmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// A rodada continua depois que a resposta é enviada
		if !warmer.TriggerManualRun(context.WithoutCancel(r.Context())) {
			apiErrors.WriteError(w, apiErrors.ErrWarmInProgress, "Aquecimento de cache já em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{
			"message": "Aquecimento de cache iniciado",
		})
	}
}
