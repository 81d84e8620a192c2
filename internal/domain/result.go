package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ShapeKind é o formato de um resultado de consulta
type ShapeKind string

const (
	ShapeSummary    ShapeKind = "summary"
	ShapeTimeSeries ShapeKind = "time_series"
	ShapeBreakdown  ShapeKind = "breakdown"
)

// Summary é um conjunto de métricas escalares nomeadas
type Summary map[string]float64

// SeriesPoint é uma linha de uma série temporal diária
type SeriesPoint struct {
	Date    time.Time          `json:"date"`
	Metrics map[string]float64 `json:"metrics"`
}

// TimeSeries é ordenada por data crescente
type TimeSeries []SeriesPoint

// Category é uma linha de um detalhamento por categoria
type Category struct {
	Label      string             `json:"label"`
	Metrics    map[string]float64 `json:"metrics"`
	Attributes map[string]string  `json:"attributes,omitempty"`
}

// Breakdown é ordenado pela métrica principal, decrescente
type Breakdown []Category

// Result é o resultado de uma consulta. Apenas o campo correspondente a
// Kind é preenchido.
type Result struct {
	Kind      ShapeKind  `json:"kind"`
	Source    string     `json:"source,omitempty"`
	Summary   Summary    `json:"summary,omitempty"`
	Series    TimeSeries `json:"series,omitempty"`
	Breakdown Breakdown  `json:"breakdown,omitempty"`
}

func NewSummaryResult(source string, summary Summary) *Result {
	if summary == nil {
		summary = Summary{}
	}
	return &Result{Kind: ShapeSummary, Source: source, Summary: summary}
}

func NewSeriesResult(source string, series TimeSeries) *Result {
	if series == nil {
		series = TimeSeries{}
	}
	return &Result{Kind: ShapeTimeSeries, Source: source, Series: series}
}

func NewBreakdownResult(source string, breakdown Breakdown) *Result {
	if breakdown == nil {
		breakdown = Breakdown{}
	}
	return &Result{Kind: ShapeBreakdown, Source: source, Breakdown: breakdown}
}

// Validate garante que o resultado tem o formato esperado
func (r *Result) Validate(expected ShapeKind) error {
	if r == nil {
		return fmt.Errorf("%w: resultado vazio", ErrShapeMismatch)
	}
	if r.Kind != expected {
		return fmt.Errorf("%w: esperado %s, recebido %s", ErrShapeMismatch, expected, r.Kind)
	}

	if (r.Summary != nil) != (r.Kind == ShapeSummary) ||
		(r.Series != nil) != (r.Kind == ShapeTimeSeries) ||
		(r.Breakdown != nil) != (r.Kind == ShapeBreakdown) {
		return fmt.Errorf("%w: conteúdo não corresponde a %s", ErrShapeMismatch, r.Kind)
	}

	return nil
}

// Clone faz uma cópia profunda do resultado
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}

	out := &Result{Kind: r.Kind, Source: r.Source}
	if r.Summary != nil {
		out.Summary = Summary(copyMetrics(r.Summary))
	}
	if r.Series != nil {
		out.Series = make(TimeSeries, len(r.Series))
		for i, p := range r.Series {
			out.Series[i] = SeriesPoint{Date: p.Date, Metrics: copyMetrics(p.Metrics)}
		}
	}
	if r.Breakdown != nil {
		out.Breakdown = make(Breakdown, len(r.Breakdown))
		for i, c := range r.Breakdown {
			out.Breakdown[i] = Category{Label: c.Label, Metrics: copyMetrics(c.Metrics)}
			if c.Attributes != nil {
				out.Breakdown[i].Attributes = make(map[string]string, len(c.Attributes))
				for k, v := range c.Attributes {
					out.Breakdown[i].Attributes[k] = v
				}
			}
		}
	}
	return out
}

func copyMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// IsRateMetric indica se a métrica é uma taxa e deve ser agregada pela média
func IsRateMetric(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "rate") || strings.Contains(n, "ctr") || strings.Contains(n, "rpm")
}

// OutcomeStatus é o resultado de uma conta dentro de uma agregação
type OutcomeStatus string

const (
	OutcomeOK    OutcomeStatus = "ok"
	OutcomeError OutcomeStatus = "error"
)

// AccountOutcome é o resultado individual de uma conta
type AccountOutcome struct {
	Status OutcomeStatus `json:"status"`
	Result *Result       `json:"result,omitempty"`
	Err    error         `json:"-"`
	Error  string        `json:"error,omitempty"`
}

func SuccessOutcome(r *Result) AccountOutcome {
	return AccountOutcome{Status: OutcomeOK, Result: r}
}

func FailedOutcome(err error) AccountOutcome {
	return AccountOutcome{Status: OutcomeError, Err: err, Error: err.Error()}
}

// AggregateResult é a visão combinada de todas as contas ativas de um provedor
type AggregateResult struct {
	Provider    Provider                  `json:"provider"`
	Kind        QueryKind                 `json:"kind"`
	Params      QueryParams               `json:"params"`
	Result      *Result                   `json:"result"`
	PerAccount  map[string]AccountOutcome `json:"per_account"`
	Mocked      bool                      `json:"mocked"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// SortBy ordena pela métrica informada, decrescente, desempatando pelo rótulo
func (b Breakdown) SortBy(metric string) {
	sort.SliceStable(b, func(i, j int) bool {
		vi, vj := b[i].Metrics[metric], b[j].Metrics[metric]
		if vi != vj {
			return vi > vj
		}
		return b[i].Label < b[j].Label
	})
}

// SortByDate ordena a série por data crescente
func (s TimeSeries) SortByDate() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}
