package insighting

import (
	"context"

	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/usecases/account"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/insighting_mock.go -package=mocks

// Adapter traduz as consultas do catálogo para a API de um provedor
type Adapter interface {
	account.Initializer

	Provider() domain.Provider
	Execute(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error)
	Mock(kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error)
}

// Insighter é a visão combinada consumida pela camada de apresentação
type Insighter interface {
	// QueryAll executa a consulta em todas as contas ativas do provedor e combina os resultados
	QueryAll(ctx context.Context, provider domain.Provider, kind domain.QueryKind, params domain.QueryParams) (*domain.AggregateResult, error)

	// QueryAccount executa a consulta em uma única conta
	QueryAccount(ctx context.Context, provider domain.Provider, accountName string, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error)
}

// RegistrySource entrega o registro de contas de cada provedor
type RegistrySource interface {
	Registry(provider domain.Provider) (*account.Registry, error)
}
