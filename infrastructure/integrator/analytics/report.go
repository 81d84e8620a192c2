package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/streamboard-api/internal/domain"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

// gaMetric associa o nome da métrica na API ao nome exposto pelo painel
type gaMetric struct {
	api  string
	name string
}

var (
	overviewMetrics = []gaMetric{
		{api: "activeUsers", name: "users"},
		{api: "sessions", name: "sessions"},
		{api: "screenPageViews", name: "pageviews"},
		{api: "bounceRate", name: "bounce_rate"},
		{api: "averageSessionDuration", name: "avg_session_duration"},
		{api: "engagementRate", name: "engagement_rate"},
	}
	trafficMetrics = []gaMetric{
		{api: "activeUsers", name: "users"},
		{api: "sessions", name: "sessions"},
		{api: "screenPageViews", name: "pageviews"},
		{api: "bounceRate", name: "bounce_rate"},
	}
	deviceMetrics = []gaMetric{
		{api: "activeUsers", name: "users"},
		{api: "sessions", name: "sessions"},
		{api: "bounceRate", name: "bounce_rate"},
	}
	pageMetrics = []gaMetric{
		{api: "screenPageViews", name: "pageviews"},
		{api: "activeUsers", name: "users"},
		{api: "averageSessionDuration", name: "avg_session_duration"},
	}
	realtimeMetrics = []gaMetric{
		{api: "activeUsers", name: "active_users"},
	}
)

// A API devolve estas taxas como fração; o painel trabalha com percentual
var percentMetrics = map[string]bool{
	"bounceRate":     true,
	"engagementRate": true,
}

func requestMetrics(metrics []gaMetric) []*analyticsdata.Metric {
	out := make([]*analyticsdata.Metric, len(metrics))
	for i, m := range metrics {
		out[i] = &analyticsdata.Metric{Name: m.api}
	}
	return out
}

func metricNames(metrics []gaMetric) map[string]string {
	out := make(map[string]string, len(metrics))
	for _, m := range metrics {
		out[m.api] = m.name
	}
	return out
}

func dateRanges(daysBack int) []*analyticsdata.DateRange {
	return []*analyticsdata.DateRange{{
		StartDate: fmt.Sprintf("%ddaysAgo", daysBack),
		EndDate:   "today",
	}}
}

// metricValue converte o valor textual de acordo com o tipo declarado no cabeçalho
func metricValue(header *analyticsdata.MetricHeader, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)

	var value float64
	switch header.Type {
	case "TYPE_INTEGER":
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(domain.ErrMalformedData, "métrica %s: inteiro inválido %q", header.Name, raw)
		}
		value = float64(i)
	default:
		// TYPE_FLOAT, TYPE_CURRENCY, TYPE_SECONDS e demais tipos numéricos
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Wrapf(domain.ErrMalformedData, "métrica %s: número inválido %q", header.Name, raw)
		}
		value = f
	}

	if percentMetrics[header.Name] {
		value *= 100
	}

	return value, nil
}

type reportRow struct {
	dimensions []string
	metrics    map[string]float64
}

func parseRows(
	dimensionHeaders []*analyticsdata.DimensionHeader,
	metricHeaders []*analyticsdata.MetricHeader,
	rows []*analyticsdata.Row,
	names map[string]string,
) ([]reportRow, error) {
	out := make([]reportRow, 0, len(rows))

	for i, row := range rows {
		if row == nil || len(row.DimensionValues) != len(dimensionHeaders) || len(row.MetricValues) != len(metricHeaders) {
			return nil, errors.Wrapf(domain.ErrMalformedData, "linha %d não corresponde aos cabeçalhos", i)
		}

		parsed := reportRow{
			dimensions: make([]string, len(dimensionHeaders)),
			metrics:    make(map[string]float64, len(metricHeaders)),
		}

		for j := range dimensionHeaders {
			parsed.dimensions[j] = row.DimensionValues[j].Value
		}

		for j, header := range metricHeaders {
			value, err := metricValue(header, row.MetricValues[j].Value)
			if err != nil {
				return nil, err
			}

			name := names[header.Name]
			if name == "" {
				name = header.Name
			}
			parsed.metrics[name] = value
		}

		out = append(out, parsed)
	}

	return out, nil
}
