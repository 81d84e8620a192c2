package handler

import (
	"context"

	"github.com/vfg2006/streamboard-api/infrastructure/cache"
	"github.com/vfg2006/streamboard-api/internal/scheduler"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/handler_mock.go -package=mocks

// CacheAdmin expõe a manutenção do cache de resultados
type CacheAdmin interface {
	Purge()
	Stats() cache.Stats
}

// CacheWarmer dispara e informa o aquecimento do cache
type CacheWarmer interface {
	TriggerManualRun(ctx context.Context) bool
	GetStatus() scheduler.WarmerStatus
}
