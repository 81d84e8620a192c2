package insighting

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

// Merge combina os resultados de várias contas. Métricas de taxa (rate, ctr,
// rpm) viram a média simples das contas que as informam; as demais são somadas.
// Consultas top-N são truncadas em params.Limit depois da combinação.
func Merge(spec domain.KindSpec, params domain.QueryParams, results []*domain.Result) (*domain.Result, error) {
	for _, r := range results {
		if err := r.Validate(spec.Shape); err != nil {
			return nil, err
		}
	}

	switch spec.Shape {
	case domain.ShapeSummary:
		summaries := lo.Map(results, func(r *domain.Result, _ int) map[string]float64 { return r.Summary })
		return domain.NewSummaryResult("", domain.Summary(mergeMetrics(summaries))), nil

	case domain.ShapeTimeSeries:
		return domain.NewSeriesResult("", mergeSeries(results)), nil

	case domain.ShapeBreakdown:
		merged := mergeBreakdown(results, spec.PrimaryMetric)
		if spec.TopN && params.Limit > 0 && len(merged) > params.Limit {
			merged = merged[:params.Limit]
		}
		return domain.NewBreakdownResult("", merged), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrShapeMismatch, spec.Shape)
}

func mergeMetrics(sets []map[string]float64) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, set := range sets {
		for name, value := range set {
			sums[name] += value
			counts[name]++
		}
	}

	out := make(map[string]float64, len(sums))
	for name, sum := range sums {
		if domain.IsRateMetric(name) {
			out[name] = sum / float64(counts[name])
			continue
		}
		out[name] = sum
	}

	return out
}

// mergeSeries faz a junção externa por data
func mergeSeries(results []*domain.Result) domain.TimeSeries {
	points := lo.FlatMap(results, func(r *domain.Result, _ int) []domain.SeriesPoint { return r.Series })
	byDate := lo.GroupBy(points, func(p domain.SeriesPoint) int64 { return p.Date.Unix() })

	dates := lo.Keys(byDate)
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	series := make(domain.TimeSeries, 0, len(dates))
	for _, d := range dates {
		group := byDate[d]
		metrics := lo.Map(group, func(p domain.SeriesPoint, _ int) map[string]float64 { return p.Metrics })
		series = append(series, domain.SeriesPoint{Date: group[0].Date, Metrics: mergeMetrics(metrics)})
	}

	return series
}

// mergeBreakdown une as categorias pelo rótulo; os atributos da primeira
// ocorrência são mantidos
func mergeBreakdown(results []*domain.Result, primary string) domain.Breakdown {
	categories := lo.FlatMap(results, func(r *domain.Result, _ int) []domain.Category { return r.Breakdown })
	byLabel := lo.GroupBy(categories, func(c domain.Category) string { return c.Label })
	labels := lo.Uniq(lo.Map(categories, func(c domain.Category, _ int) string { return c.Label }))

	merged := make(domain.Breakdown, 0, len(labels))
	for _, label := range labels {
		group := byLabel[label]
		metrics := lo.Map(group, func(c domain.Category, _ int) map[string]float64 { return c.Metrics })
		merged = append(merged, domain.Category{
			Label:      label,
			Metrics:    mergeMetrics(metrics),
			Attributes: group[0].Attributes,
		})
	}

	merged.SortBy(primary)
	return merged
}
