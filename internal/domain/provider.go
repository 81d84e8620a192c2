package domain

import (
	"fmt"
	"strings"
)

// Provider identifica uma fonte externa de métricas
type Provider string

const (
	ProviderAnalytics    Provider = "analytics"
	ProviderAdRevenue    Provider = "adrevenue"
	ProviderCloudBilling Provider = "cloudbilling"
)

// MockAccountName é o rótulo usado em resultados sintéticos
const MockAccountName = "Mock"

// AllProviders retorna os provedores na ordem de exibição do painel
func AllProviders() []Provider {
	return []Provider{ProviderAnalytics, ProviderAdRevenue, ProviderCloudBilling}
}

func (p Provider) String() string {
	return string(p)
}

// ParseProvider converte o identificador vindo da API
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllProviders() {
		if p == known {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}
