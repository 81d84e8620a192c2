package domain

import (
	"fmt"
	"sort"
)

// QueryKind identifica uma consulta dentro do catálogo de um provedor
type QueryKind string

const (
	// Analytics
	KindOverview        QueryKind = "overview"
	KindDailyTraffic    QueryKind = "daily_traffic"
	KindDeviceBreakdown QueryKind = "device_breakdown"
	KindTopPages        QueryKind = "top_pages"
	KindRealtime        QueryKind = "realtime"

	// AdRevenue (KindTopPages também pertence a este catálogo)
	KindEarningsOverview QueryKind = "earnings_overview"
	KindDailyEarnings    QueryKind = "daily_earnings"
	KindSiteEarnings     QueryKind = "site_earnings"

	// CloudBilling
	KindCostOverview    QueryKind = "cost_overview"
	KindDailyCosts      QueryKind = "daily_costs"
	KindServiceCosts    QueryKind = "service_costs"
	KindResourceSummary QueryKind = "resource_summary"
	KindAlarms          QueryKind = "alarms"
)

// TTLClass seleciona por quanto tempo um resultado permanece no cache
type TTLClass int

const (
	TTLLong TTLClass = iota
	TTLShort
)

func (c TTLClass) String() string {
	if c == TTLShort {
		return "short"
	}
	return "long"
}

const (
	DefaultDaysBack = 30
	DefaultLimit    = 10
	MaxDaysBack     = 365
	MaxLimit        = 100
)

// QueryParams são os parâmetros aceitos pelas consultas
type QueryParams struct {
	DaysBack int `json:"days_back,omitempty"`
	Limit    int `json:"limit,omitempty"`
}

// Validate rejeita valores fora dos limites aceitos pelos provedores.
// Zero significa "usar o padrão".
func (p QueryParams) Validate() error {
	if p.DaysBack < 0 || p.DaysBack > MaxDaysBack {
		return fmt.Errorf("%w: days_back deve estar entre 1 e %d", ErrInvalidParams, MaxDaysBack)
	}
	if p.Limit < 0 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: limit deve estar entre 1 e %d", ErrInvalidParams, MaxLimit)
	}
	return nil
}

// KindSpec descreve o formato e a política de cache de uma consulta
type KindSpec struct {
	Kind          QueryKind
	Shape         ShapeKind
	TTL           TTLClass
	PrimaryMetric string
	UsesDays      bool
	UsesLimit     bool
	TopN          bool
}

// Normalize aplica os padrões e zera os parâmetros que a consulta ignora,
// de modo que parâmetros equivalentes gerem a mesma chave de cache.
func (s KindSpec) Normalize(p QueryParams) QueryParams {
	out := QueryParams{}
	if s.UsesDays {
		out.DaysBack = p.DaysBack
		if out.DaysBack <= 0 {
			out.DaysBack = DefaultDaysBack
		}
	}
	if s.UsesLimit {
		out.Limit = p.Limit
		if out.Limit <= 0 {
			out.Limit = DefaultLimit
		}
	}
	return out
}

var catalog = map[Provider]map[QueryKind]KindSpec{
	ProviderAnalytics: {
		KindOverview:        {Shape: ShapeSummary, TTL: TTLLong, UsesDays: true},
		KindDailyTraffic:    {Shape: ShapeTimeSeries, TTL: TTLLong, UsesDays: true},
		KindDeviceBreakdown: {Shape: ShapeBreakdown, TTL: TTLLong, PrimaryMetric: "users", UsesDays: true},
		KindTopPages:        {Shape: ShapeBreakdown, TTL: TTLLong, PrimaryMetric: "pageviews", UsesDays: true, UsesLimit: true, TopN: true},
		KindRealtime:        {Shape: ShapeSummary, TTL: TTLShort},
	},
	ProviderAdRevenue: {
		KindEarningsOverview: {Shape: ShapeSummary, TTL: TTLLong, UsesDays: true},
		KindDailyEarnings:    {Shape: ShapeTimeSeries, TTL: TTLLong, UsesDays: true},
		KindSiteEarnings:     {Shape: ShapeBreakdown, TTL: TTLLong, PrimaryMetric: "earnings", UsesDays: true},
		KindTopPages:         {Shape: ShapeBreakdown, TTL: TTLLong, PrimaryMetric: "earnings", UsesDays: true, UsesLimit: true, TopN: true},
	},
	ProviderCloudBilling: {
		KindCostOverview:    {Shape: ShapeSummary, TTL: TTLLong, UsesDays: true},
		KindDailyCosts:      {Shape: ShapeTimeSeries, TTL: TTLLong, UsesDays: true},
		KindServiceCosts:    {Shape: ShapeBreakdown, TTL: TTLLong, PrimaryMetric: "cost", UsesDays: true},
		KindResourceSummary: {Shape: ShapeSummary, TTL: TTLShort},
		KindAlarms:          {Shape: ShapeBreakdown, TTL: TTLShort, PrimaryMetric: "alarms"},
	},
}

// LookupKind retorna a especificação de uma consulta do catálogo
func LookupKind(provider Provider, kind QueryKind) (KindSpec, error) {
	kinds, ok := catalog[provider]
	if !ok {
		return KindSpec{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	spec, ok := kinds[kind]
	if !ok {
		return KindSpec{}, fmt.Errorf("%w: %q para %s", ErrUnknownQueryKind, kind, provider)
	}

	spec.Kind = kind
	return spec, nil
}

// Kinds lista as consultas de um provedor em ordem alfabética
func Kinds(provider Provider) []QueryKind {
	kinds := make([]QueryKind, 0, len(catalog[provider]))
	for k := range catalog[provider] {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
