package cloudbilling

import (
	"fmt"
	"math"
	"time"

	"github.com/vfg2006/streamboard-api/infrastructure/integrator"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/pkg/utils"
)

func (s *Service) Mock(kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, err := domain.LookupKind(domain.ProviderCloudBilling, kind)
	if err != nil {
		return nil, err
	}
	params = spec.Normalize(params)

	switch kind {
	case domain.KindCostOverview:
		return domain.NewSummaryResult(domain.MockAccountName, domain.Summary{
			"total_cost":    2345.67,
			"forecast_cost": 2567.89,
			"service_count": 12,
		}), nil

	case domain.KindDailyCosts:
		days := integrator.Days(s.now(), params.DaysBack)
		r := integrator.SeededRand(domain.ProviderCloudBilling, kind, params.DaysBack, days[len(days)-1].Format(time.DateOnly))

		series := make(domain.TimeSeries, len(days))
		for i, day := range days {
			cost := 70 + integrator.Uniform(r, -10, 15) + float64(i)*0.5
			series[i] = domain.SeriesPoint{Date: day, Metrics: map[string]float64{
				"cost": utils.RoundWithTwoDecimalPlace(math.Max(0, cost)),
			}}
		}
		return domain.NewSeriesResult(domain.MockAccountName, series), nil

	case domain.KindServiceCosts:
		return domain.NewBreakdownResult(domain.MockAccountName, domain.Breakdown{
			{Label: "Amazon EC2", Metrics: map[string]float64{"cost": 890.12, "usage": 24567}},
			{Label: "Amazon S3", Metrics: map[string]float64{"cost": 345.67, "usage": 1234567}},
			{Label: "Amazon RDS", Metrics: map[string]float64{"cost": 234.56, "usage": 720}},
			{Label: "AWS Lambda", Metrics: map[string]float64{"cost": 123.45, "usage": 5678900}},
			{Label: "Amazon CloudFront", Metrics: map[string]float64{"cost": 98.76, "usage": 456789}},
		}), nil

	case domain.KindResourceSummary:
		return domain.NewSummaryResult(domain.MockAccountName, domain.Summary{
			"ec2_running":   5,
			"ec2_stopped":   2,
			"ec2_total":     7,
			"s3_buckets":    12,
			"rds_instances": 3,
		}), nil

	case domain.KindAlarms:
		now := s.now().UTC()
		return domain.NewBreakdownResult(domain.MockAccountName, domain.Breakdown{
			{
				Label:   "High CPU Utilization",
				Metrics: map[string]float64{"alarms": 1},
				Attributes: map[string]string{
					"metric":  "CPUUtilization",
					"state":   "ALARM",
					"reason":  "Threshold Crossed: 1 datapoint [89.5] was greater than the threshold (80.0)",
					"updated": now.Add(-15 * time.Minute).Format(time.RFC3339),
				},
			},
			{
				Label:   "Low Disk Space",
				Metrics: map[string]float64{"alarms": 1},
				Attributes: map[string]string{
					"metric":  "DiskSpaceUtilization",
					"state":   "ALARM",
					"reason":  "Threshold Crossed: 1 datapoint [92.3] was greater than the threshold (90.0)",
					"updated": now.Add(-2 * time.Hour).Format(time.RFC3339),
				},
			},
		}), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQueryKind, kind)
}
