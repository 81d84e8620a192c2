package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/infrastructure/cache"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/adsense"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/analytics"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/cloudbilling"
	"github.com/vfg2006/streamboard-api/internal/api"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/scheduler"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
	"github.com/vfg2006/streamboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/streamboard-api/internal/usecases/insighting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	for _, problem := range cfg.Validate() {
		logrus.WithField("problem", problem).Warn("Configuração incompleta")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adapters := []insighting.Adapter{
		analytics.New(),
		adsense.New(),
		cloudbilling.New(),
	}

	initializers := make(map[domain.Provider]account.Initializer, len(adapters))
	for _, adapter := range adapters {
		initializers[adapter.Provider()] = adapter
	}

	accountService := account.NewService(ctx, cfg, initializers)

	resultCache, err := cache.New(cache.Config{
		LongTTL:    cfg.Cache.TTL(domain.TTLLong),
		ShortTTL:   cfg.Cache.TTL(domain.TTLShort),
		MaxEntries: cfg.Cache.MaxEntries,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar cache de resultados")
	}

	insightService := insighting.NewService(cfg, accountService, resultCache, adapters...)

	cacheWarmerService := scheduler.NewCacheWarmerService(insightService, cfg)
	if err := cacheWarmerService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de aquecimento de cache")
	} else {
		logrus.Info("Agendador de aquecimento de cache iniciado com sucesso")
	}

	authenticator := authenticating.NewService(cfg)
	if !authenticator.Enabled() {
		logrus.Warn("DASHBOARD_PASSWORD_HASH vazio: painel sem login")
	}

	server := api.New(cfg, api.Dependencies{
		Insighter:     insightService,
		Accounts:      accountService,
		Cache:         resultCache,
		Warmer:        cacheWarmerService,
		Authenticator: authenticator,
	})

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
