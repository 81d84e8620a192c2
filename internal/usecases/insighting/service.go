package insighting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/infrastructure/cache"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
	"github.com/vfg2006/streamboard-api/pkg/log"
)

const (
	defaultAccountTimeout = 30 * time.Second
	defaultMaxConcurrent  = 4
)

// Service executa as consultas em todas as contas ativas e combina os resultados
type Service struct {
	accounts      RegistrySource
	adapters      map[domain.Provider]Adapter
	cache         *cache.ResultCache
	fallback      *MockFallback
	timeout       time.Duration
	maxConcurrent int
	now           func() time.Time
}

// NewService cria o agregador com um adaptador por provedor
func NewService(cfg *config.Config, accounts RegistrySource, resultCache *cache.ResultCache, adapters ...Adapter) *Service {
	s := &Service{
		accounts:      accounts,
		adapters:      make(map[domain.Provider]Adapter, len(adapters)),
		cache:         resultCache,
		fallback:      NewMockFallback(adapters...),
		timeout:       cfg.Aggregator.AccountTimeout,
		maxConcurrent: cfg.Aggregator.MaxConcurrent,
		now:           time.Now,
	}

	if s.timeout <= 0 {
		s.timeout = defaultAccountTimeout
	}
	if s.maxConcurrent <= 0 {
		s.maxConcurrent = defaultMaxConcurrent
	}

	for _, a := range adapters {
		s.adapters[a.Provider()] = a
	}

	return s
}

// WithClock substitui o relógio usado em GeneratedAt
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// prepare valida a consulta e devolve os parâmetros normalizados
func (s *Service) prepare(provider domain.Provider, kind domain.QueryKind, params domain.QueryParams) (domain.KindSpec, domain.QueryParams, Adapter, *account.Registry, error) {
	spec, err := domain.LookupKind(provider, kind)
	if err != nil {
		return domain.KindSpec{}, params, nil, nil, err
	}

	if err := params.Validate(); err != nil {
		return domain.KindSpec{}, params, nil, nil, err
	}

	adapter, ok := s.adapters[provider]
	if !ok {
		return domain.KindSpec{}, params, nil, nil, fmt.Errorf("%w: %q sem adaptador", domain.ErrUnknownProvider, provider)
	}

	registry, err := s.accounts.Registry(provider)
	if err != nil {
		return domain.KindSpec{}, params, nil, nil, err
	}

	return spec, spec.Normalize(params), adapter, registry, nil
}

func (s *Service) QueryAll(ctx context.Context, provider domain.Provider, kind domain.QueryKind, params domain.QueryParams) (*domain.AggregateResult, error) {
	spec, params, adapter, registry, err := s.prepare(provider, kind, params)
	if err != nil {
		return nil, err
	}

	aggregate := &domain.AggregateResult{
		Provider:    provider,
		Kind:        kind,
		Params:      params,
		PerAccount:  make(map[string]domain.AccountOutcome),
		GeneratedAt: s.now(),
	}

	logger := logrus.WithFields(logrus.Fields{
		"provider": provider,
		"kind":     kind,
	})

	if registry.IsEmpty() {
		logger.Debug("insighting: no active accounts, using mock data")
		return s.withMock(aggregate, provider, kind, params)
	}

	active := registry.ListActive()

	outcomes := s.fanOut(ctx, registry, adapter, spec, params, active)

	successes := make([]*domain.Result, 0, len(active))
	for _, name := range active {
		outcome := outcomes[name]
		aggregate.PerAccount[name] = outcome
		if outcome.Status == domain.OutcomeOK {
			successes = append(successes, outcome.Result)
		}
	}

	if len(successes) == 0 {
		logger.WithField("accounts", len(active)).Warn("insighting: all accounts failed, using mock data")
		return s.withMock(aggregate, provider, kind, params)
	}

	merged, err := Merge(spec, params, successes)
	if err != nil {
		return nil, err
	}
	aggregate.Result = merged

	logger.WithFields(logrus.Fields{
		"accounts": len(active),
		"ok":       len(successes),
		"failed":   len(active) - len(successes),
	}).Debug("insighting: query merged")

	return aggregate, nil
}

func (s *Service) withMock(aggregate *domain.AggregateResult, provider domain.Provider, kind domain.QueryKind, params domain.QueryParams) (*domain.AggregateResult, error) {
	mock, err := s.fallback.Mock(provider, kind, params)
	if err != nil {
		return nil, err
	}

	aggregate.Result = mock
	aggregate.Mocked = true
	return aggregate, nil
}

// QueryAccount consulta uma conta. Contas desconhecidas ou inativas recebem
// os dados de demonstração.
func (s *Service) QueryAccount(ctx context.Context, provider domain.Provider, accountName string, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, params, adapter, registry, err := s.prepare(provider, kind, params)
	if err != nil {
		return nil, err
	}

	state, ok := registry.Get(accountName)
	if !ok || !state.IsActive() {
		return s.fallback.Mock(provider, kind, params)
	}

	return s.fetch(ctx, adapter, state, spec, params)
}

// fanOut consulta as contas em paralelo, limitado por maxConcurrent
func (s *Service) fanOut(
	ctx context.Context,
	registry *account.Registry,
	adapter Adapter,
	spec domain.KindSpec,
	params domain.QueryParams,
	accounts []string,
) map[string]domain.AccountOutcome {
	outcomes := make(map[string]domain.AccountOutcome, len(accounts))

	semaphore := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, name := range accounts {
		wg.Add(1)

		go func(name string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			var outcome domain.AccountOutcome
			state, ok := registry.Get(name)
			if !ok || !state.IsActive() {
				outcome = domain.FailedOutcome(domain.NewRemoteQueryError(registry.Provider(), name, spec.Kind, errors.New("conta não está ativa")))
			} else if result, err := s.fetch(ctx, adapter, state, spec, params); err != nil {
				log.ForAccount(ctx, registry.Provider().String(), name).
					WithError(err).
					WithField("kind", spec.Kind).
					Warn("insighting: account query failed")
				outcome = domain.FailedOutcome(err)
			} else {
				outcome = domain.SuccessOutcome(result)
			}

			mutex.Lock()
			outcomes[name] = outcome
			mutex.Unlock()
		}(name)
	}

	wg.Wait()
	return outcomes
}

func (s *Service) fetch(ctx context.Context, adapter Adapter, state domain.AccountState, spec domain.KindSpec, params domain.QueryParams) (*domain.Result, error) {
	key := cache.Key{
		Provider: adapter.Provider(),
		Account:  state.Config.Name,
		Kind:     spec.Kind,
		Params:   params,
	}

	return s.cache.GetOrCompute(ctx, key, spec.TTL, func(ctx context.Context) (*domain.Result, error) {
		return s.execute(ctx, adapter, state, spec, params)
	})
}

type executeReply struct {
	result *domain.Result
	err    error
}

// execute chama o adaptador com o tempo limite da conta. O limite vale mesmo
// quando o executor remoto ignora o contexto.
func (s *Service) execute(ctx context.Context, adapter Adapter, state domain.AccountState, spec domain.KindSpec, params domain.QueryParams) (*domain.Result, error) {
	provider := adapter.Provider()
	name := state.Config.Name

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan executeReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- executeReply{err: fmt.Errorf("panic no adaptador: %v", r)}
			}
		}()

		result, err := adapter.Execute(ctx, state, spec.Kind, params)
		done <- executeReply{result: result, err: err}
	}()

	select {
	case reply := <-done:
		if reply.err != nil {
			return nil, asRemoteQueryError(provider, name, spec.Kind, reply.err)
		}
		if err := reply.result.Validate(spec.Shape); err != nil {
			return nil, domain.NewRemoteQueryError(provider, name, spec.Kind, err)
		}
		return reply.result, nil

	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %s", domain.ErrAccountTimeout, s.timeout)
		}
		return nil, domain.NewRemoteQueryError(provider, name, spec.Kind, err)
	}
}

func asRemoteQueryError(provider domain.Provider, name string, kind domain.QueryKind, err error) error {
	var remote *domain.RemoteQueryError
	if errors.As(err, &remote) {
		return err
	}
	return domain.NewRemoteQueryError(provider, name, kind, err)
}
