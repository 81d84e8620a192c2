package cloudbilling

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/cloudbilling/awsclient"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/utils"
)

const (
	metricBlendedCost   = "BlendedCost"
	metricUnblendedCost = "UnblendedCost"
	metricUsage         = "UsageQuantity"

	forecastDays = 30
)

// Custos abaixo deste valor não aparecem no detalhamento por serviço
var negligibleCost = decimal.NewFromFloat(0.01)

func (s *Service) period(daysBack int) *cetypes.DateInterval {
	start, end := utils.DateWindow(s.now(), daysBack)
	return &cetypes.DateInterval{
		Start: aws.String(start.Format(time.DateOnly)),
		End:   aws.String(end.Format(time.DateOnly)),
	}
}

// costAndUsage percorre todas as páginas do relatório
func costAndUsage(ctx context.Context, ce awsclient.CostExplorerAPI, input *costexplorer.GetCostAndUsageInput) ([]cetypes.ResultByTime, error) {
	var results []cetypes.ResultByTime
	for {
		out, err := ce.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, errors.Wrap(err, "cloudbilling: GetCostAndUsage failed")
		}
		results = append(results, out.ResultsByTime...)

		if out.NextPageToken == nil || *out.NextPageToken == "" {
			return results, nil
		}
		input.NextPageToken = out.NextPageToken
	}
}

func amount(metrics map[string]cetypes.MetricValue, name string) (decimal.Decimal, error) {
	m, ok := metrics[name]
	if !ok || m.Amount == nil {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(*m.Amount)
	if err != nil {
		return decimal.Zero, errors.Wrapf(domain.ErrMalformedData, "%s: valor inválido %q", name, *m.Amount)
	}
	return d, nil
}

func serviceGroupBy() []cetypes.GroupDefinition {
	return []cetypes.GroupDefinition{{
		Type: cetypes.GroupDefinitionTypeDimension,
		Key:  aws.String("SERVICE"),
	}}
}

func (s *Service) costOverview(ctx context.Context, c *awsclient.Clients, params domain.QueryParams, logger *logrus.Entry) (*domain.Result, error) {
	results, err := costAndUsage(ctx, c.CostExplorer, &costexplorer.GetCostAndUsageInput{
		TimePeriod:  s.period(params.DaysBack),
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{metricBlendedCost, metricUnblendedCost},
		GroupBy:     serviceGroupBy(),
	})
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	services := make(map[string]struct{})
	for _, bucket := range results {
		for _, group := range bucket.Groups {
			cost, err := amount(group.Metrics, metricBlendedCost)
			if err != nil {
				return nil, err
			}
			total = total.Add(cost)
			if len(group.Keys) > 0 {
				services[group.Keys[0]] = struct{}{}
			}
		}
	}

	forecast, err := s.forecast(ctx, c.CostExplorer)
	if err != nil {
		logger.WithError(err).Warn("cloudbilling: forecast unavailable, using current total")
		forecast = total
	}

	return domain.NewSummaryResult("", domain.Summary{
		"total_cost":    total.InexactFloat64(),
		"forecast_cost": forecast.InexactFloat64(),
		"service_count": float64(len(services)),
	}), nil
}

func (s *Service) forecast(ctx context.Context, ce awsclient.CostExplorerAPI) (decimal.Decimal, error) {
	start := utils.TruncateDay(s.now())
	out, err := ce.GetCostForecast(ctx, &costexplorer.GetCostForecastInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start.Format(time.DateOnly)),
			End:   aws.String(start.AddDate(0, 0, forecastDays).Format(time.DateOnly)),
		},
		Metric:      cetypes.MetricBlendedCost,
		Granularity: cetypes.GranularityMonthly,
	})
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "cloudbilling: GetCostForecast failed")
	}
	if out.Total == nil || out.Total.Amount == nil {
		return decimal.Zero, errors.Wrap(domain.ErrMalformedData, "previsão sem total")
	}

	return decimal.NewFromString(*out.Total.Amount)
}

func (s *Service) dailyCosts(ctx context.Context, c *awsclient.Clients, params domain.QueryParams) (*domain.Result, error) {
	results, err := costAndUsage(ctx, c.CostExplorer, &costexplorer.GetCostAndUsageInput{
		TimePeriod:  s.period(params.DaysBack),
		Granularity: cetypes.GranularityDaily,
		Metrics:     []string{metricBlendedCost},
	})
	if err != nil {
		return nil, err
	}

	series := make(domain.TimeSeries, 0, len(results))
	for _, bucket := range results {
		if bucket.TimePeriod == nil || bucket.TimePeriod.Start == nil {
			return nil, errors.Wrap(domain.ErrMalformedData, "período sem data inicial")
		}

		date, err := utils.ParseDate(time.DateOnly, *bucket.TimePeriod.Start)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrMalformedData, "data inválida %q", *bucket.TimePeriod.Start)
		}

		cost, err := amount(bucket.Total, metricBlendedCost)
		if err != nil {
			return nil, err
		}

		series = append(series, domain.SeriesPoint{Date: date, Metrics: map[string]float64{"cost": cost.InexactFloat64()}})
	}
	series.SortByDate()

	return domain.NewSeriesResult("", series), nil
}

type serviceTotal struct {
	cost  decimal.Decimal
	usage decimal.Decimal
}

func (s *Service) serviceCosts(ctx context.Context, c *awsclient.Clients, params domain.QueryParams) (*domain.Result, error) {
	results, err := costAndUsage(ctx, c.CostExplorer, &costexplorer.GetCostAndUsageInput{
		TimePeriod:  s.period(params.DaysBack),
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{metricBlendedCost, metricUsage},
		GroupBy:     serviceGroupBy(),
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*serviceTotal)
	var order []string
	for _, bucket := range results {
		for _, group := range bucket.Groups {
			if len(group.Keys) == 0 {
				continue
			}

			cost, err := amount(group.Metrics, metricBlendedCost)
			if err != nil {
				return nil, err
			}
			if cost.LessThanOrEqual(negligibleCost) {
				continue
			}

			usage, err := amount(group.Metrics, metricUsage)
			if err != nil {
				return nil, err
			}

			name := group.Keys[0]
			t, ok := totals[name]
			if !ok {
				t = &serviceTotal{}
				totals[name] = t
				order = append(order, name)
			}
			t.cost = t.cost.Add(cost)
			t.usage = t.usage.Add(usage)
		}
	}

	breakdown := make(domain.Breakdown, 0, len(order))
	for _, name := range order {
		t := totals[name]
		breakdown = append(breakdown, domain.Category{
			Label: name,
			Metrics: map[string]float64{
				"cost":  t.cost.InexactFloat64(),
				"usage": t.usage.InexactFloat64(),
			},
		})
	}
	breakdown.SortBy("cost")

	return domain.NewBreakdownResult("", breakdown), nil
}
