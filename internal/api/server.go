package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/api/handler"
	"github.com/vfg2006/streamboard-api/internal/api/handler/router"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
	"github.com/vfg2006/streamboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/streamboard-api/internal/usecases/insighting"
	"github.com/vfg2006/streamboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne os serviços consumidos pelas rotas
type Dependencies struct {
	Insighter     insighting.Insighter
	Accounts      account.AccountService
	Cache         handler.CacheAdmin
	Warmer        handler.CacheWarmer
	Authenticator authenticating.Authenticator
}

// NewHandler monta as rotas com a cadeia de middlewares
func NewHandler(cfg *config.Config, deps Dependencies) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.Status(deps.Accounts, deps.Cache, deps.Warmer)...),
		router.WithRoutes(handler.Providers(deps.Accounts, deps.Insighter)...),
		router.WithRoutes(handler.Cache(deps.Cache, deps.Warmer)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, deps),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
