package account

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

//go:generate mockgen -source=registry.go -destination=mocks/initializer_mock.go -package=mocks

// Initializer ativa uma conta e devolve o handle autenticado do provedor
type Initializer interface {
	InitAccount(ctx context.Context, cfg domain.AccountConfig) (any, error)
}

// Registry guarda as contas de um provedor, na ordem em que foram registradas
type Registry struct {
	provider    domain.Provider
	initializer Initializer

	mu     sync.RWMutex
	order  []string
	states map[string]*domain.AccountState
}

func NewRegistry(provider domain.Provider, initializer Initializer) *Registry {
	return &Registry{
		provider:    provider,
		initializer: initializer,
		states:      make(map[string]*domain.AccountState),
	}
}

func (r *Registry) Provider() domain.Provider {
	return r.provider
}

// Register inicializa cada conta habilitada. A falha de uma conta fica
// registrada nela e nunca interrompe as demais.
func (r *Registry) Register(ctx context.Context, configs []domain.AccountConfig) {
	for i, cfg := range configs {
		if cfg.Name == "" {
			cfg.Name = fmt.Sprintf("Account_%d", i+1)
		}
		cfg.Provider = r.provider

		logger := logrus.WithFields(logrus.Fields{
			"provider": r.provider,
			"account":  cfg.Name,
		})

		r.mu.RLock()
		_, exists := r.states[cfg.Name]
		r.mu.RUnlock()
		if exists {
			logger.WithError(ErrDuplicateAccount).Warn("registry: conta ignorada")
			continue
		}

		state := &domain.AccountState{Config: cfg, Status: domain.AccountStatusUninitialized}

		if cfg.Enabled {
			client, err := r.initialize(ctx, cfg)
			if err != nil {
				initErr := &domain.InitializationError{Provider: r.provider, Account: cfg.Name, Err: err}
				state.Status = domain.AccountStatusError
				state.LastError = initErr.Error()
				logger.WithError(err).Error("registry: falha ao inicializar conta")
			} else {
				state.Status = domain.AccountStatusActive
				state.Client = client
				logger.Info("registry: conta ativa")
			}
		} else {
			logger.Info("registry: conta desabilitada por configuração")
		}

		r.mu.Lock()
		r.order = append(r.order, cfg.Name)
		r.states[cfg.Name] = state
		r.mu.Unlock()
	}
}

// initialize converte panics do adaptador em erro da conta
func (r *Registry) initialize(ctx context.Context, cfg domain.AccountConfig) (client any, err error) {
	if r.initializer == nil {
		return nil, ErrNoInitializer
	}

	defer func() {
		if rec := recover(); rec != nil {
			client = nil
			err = fmt.Errorf("%w: %v", ErrInitializerPanic, rec)
		}
	}()

	return r.initializer.InitAccount(ctx, cfg)
}

// Get devolve uma cópia do estado da conta
func (r *Registry) Get(name string) (domain.AccountState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[name]
	if !ok {
		return domain.AccountState{}, false
	}

	return *state, true
}

// ListActive devolve os nomes das contas ativas em ordem de registro
func (r *Registry) ListActive() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if r.states[name].IsActive() {
			names = append(names, name)
		}
	}

	return names
}

// IsEmpty indica que não há nenhuma conta ativa
func (r *Registry) IsEmpty() bool {
	return len(r.ListActive()) == 0
}

// List devolve todas as contas, inclusive desabilitadas e com erro
func (r *Registry) List() []domain.AccountState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]domain.AccountState, 0, len(r.order))
	for _, name := range r.order {
		states = append(states, *r.states[name])
	}

	return states
}
