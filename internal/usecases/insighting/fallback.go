package insighting

import (
	"fmt"

	"github.com/vfg2006/streamboard-api/internal/domain"
)

// MockFallback entrega dados sintéticos quando não há conta que responda
type MockFallback struct {
	adapters map[domain.Provider]Adapter
}

func NewMockFallback(adapters ...Adapter) *MockFallback {
	f := &MockFallback{adapters: make(map[domain.Provider]Adapter, len(adapters))}
	for _, a := range adapters {
		f.adapters[a.Provider()] = a
	}
	return f
}

// Mock gera o resultado sintético da consulta, sempre rotulado como Mock
func (f *MockFallback) Mock(provider domain.Provider, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, err := domain.LookupKind(provider, kind)
	if err != nil {
		return nil, err
	}

	adapter, ok := f.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q sem adaptador", domain.ErrUnknownProvider, provider)
	}

	result, err := adapter.Mock(kind, spec.Normalize(params))
	if err != nil {
		return nil, err
	}
	if err := result.Validate(spec.Shape); err != nil {
		return nil, err
	}

	result.Source = domain.MockAccountName
	return result, nil
}
