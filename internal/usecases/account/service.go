package account

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

type AccountService interface {
	Registry(provider domain.Provider) (*Registry, error)
	Status() []domain.ProviderStatus
	ProviderStatus(provider domain.Provider) (domain.ProviderStatus, error)
}

// Service mantém um registro de contas por provedor durante a vida do processo
type Service struct {
	registries map[domain.Provider]*Registry
	enabled    map[domain.Provider]bool
}

// NewService registra as contas configuradas de cada provedor habilitado.
// Provedores desabilitados recebem um registro vazio.
func NewService(ctx context.Context, cfg *config.Config, initializers map[domain.Provider]Initializer) *Service {
	s := &Service{
		registries: make(map[domain.Provider]*Registry),
		enabled:    make(map[domain.Provider]bool),
	}

	for _, provider := range domain.AllProviders() {
		registry := NewRegistry(provider, initializers[provider])
		s.registries[provider] = registry

		if !cfg.Features.Enabled(provider) {
			logrus.WithField("provider", provider).Info("account: provedor desabilitado por configuração")
			continue
		}

		s.enabled[provider] = true
		registry.Register(ctx, cfg.Accounts[provider])

		logrus.WithFields(logrus.Fields{
			"provider":        provider,
			"configured":      len(cfg.Accounts[provider]),
			"active_accounts": len(registry.ListActive()),
		}).Info("account: contas registradas")
	}

	return s
}

func (s *Service) Registry(provider domain.Provider) (*Registry, error) {
	registry, ok := s.registries[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
	return registry, nil
}

func (s *Service) ProviderStatus(provider domain.Provider) (domain.ProviderStatus, error) {
	registry, err := s.Registry(provider)
	if err != nil {
		return domain.ProviderStatus{}, err
	}

	status := domain.ProviderStatus{
		Provider: provider,
		Enabled:  s.enabled[provider],
		Accounts: registry.List(),
	}
	for _, state := range status.Accounts {
		switch state.Status {
		case domain.AccountStatusActive:
			status.Active++
		case domain.AccountStatusError:
			status.Failed++
		}
	}

	return status, nil
}

// Status resume todos os provedores para o painel de status
func (s *Service) Status() []domain.ProviderStatus {
	statuses := make([]domain.ProviderStatus, 0, len(s.registries))
	for _, provider := range domain.AllProviders() {
		status, err := s.ProviderStatus(provider)
		if err != nil {
			continue
		}
		statuses = append(statuses, status)
	}
	return statuses
}
