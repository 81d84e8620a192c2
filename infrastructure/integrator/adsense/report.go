package adsense

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/utils"
	adsenseapi "google.golang.org/api/adsense/v2"
)

const (
	maxPageLabel  = 50
	truncatedPage = 47
)

type adMetric struct {
	api  string
	name string
}

var (
	metricEarnings    = adMetric{api: "ESTIMATED_EARNINGS", name: "earnings"}
	metricPageViews   = adMetric{api: "PAGE_VIEWS", name: "pageviews"}
	metricClicks      = adMetric{api: "CLICKS", name: "clicks"}
	metricCTR         = adMetric{api: "PAGE_VIEWS_CTR", name: "ctr"}
	metricRPM         = adMetric{api: "PAGE_VIEWS_RPM", name: "rpm"}
	metricImpressions = adMetric{api: "IMPRESSIONS", name: "impressions"}
)

// A API devolve o CTR como fração
var percentMetrics = map[string]bool{
	metricCTR.api: true,
}

func metricAPINames(metrics []adMetric) []string {
	out := make([]string, len(metrics))
	for i, m := range metrics {
		out[i] = m.api
	}
	return out
}

type reportRow struct {
	dimensions []string
	metrics    map[string]float64
}

// parseReport lê as células posicionais: primeiro as dimensões, depois as
// métricas, ambas na ordem em que foram pedidas
func parseReport(resp *adsenseapi.ReportResult, dimensions []string, metrics []adMetric) ([]reportRow, error) {
	if resp == nil || len(resp.Rows) == 0 {
		return nil, errors.Wrap(domain.ErrMalformedData, "relatório sem linhas")
	}

	width := len(dimensions) + len(metrics)
	out := make([]reportRow, 0, len(resp.Rows))

	for i, row := range resp.Rows {
		if row == nil || len(row.Cells) != width {
			return nil, errors.Wrapf(domain.ErrMalformedData, "linha %d com %d células, esperado %d", i, cellCount(row), width)
		}

		parsed := reportRow{
			dimensions: make([]string, len(dimensions)),
			metrics:    make(map[string]float64, len(metrics)),
		}

		for j := range dimensions {
			parsed.dimensions[j] = cellValue(row.Cells[j])
		}

		for j, m := range metrics {
			raw := cellValue(row.Cells[len(dimensions)+j])
			if raw == "" {
				parsed.metrics[m.name] = 0
				continue
			}

			value, err := utils.ParseNumber(raw)
			if err != nil {
				return nil, errors.Wrapf(domain.ErrMalformedData, "métrica %s: número inválido %q", m.api, raw)
			}
			if percentMetrics[m.api] {
				value *= 100
			}
			parsed.metrics[m.name] = value
		}

		out = append(out, parsed)
	}

	return out, nil
}

func cellValue(c *adsenseapi.Cell) string {
	if c == nil {
		return ""
	}
	return c.Value
}

func cellCount(row *adsenseapi.Row) int {
	if row == nil {
		return 0
	}
	return len(row.Cells)
}

// pageLabel encurta URLs longas para exibição
func pageLabel(url string) string {
	if len(url) <= maxPageLabel {
		return url
	}
	return url[:truncatedPage] + "..."
}
