package cloudbilling

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/cloudbilling/awsclient"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

const maxAlarmRecords = 100

var ErrInventoryUnavailable = errors.New("nenhum inventário disponível")

type instanceCount struct {
	running int
	stopped int
	total   int
}

func countInstances(ctx context.Context, api awsclient.EC2API) (instanceCount, error) {
	var count instanceCount
	input := &ec2.DescribeInstancesInput{}

	for {
		out, err := api.DescribeInstances(ctx, input)
		if err != nil {
			return instanceCount{}, errors.Wrap(err, "cloudbilling: DescribeInstances failed")
		}

		for _, reservation := range out.Reservations {
			for _, instance := range reservation.Instances {
				count.total++
				if instance.State == nil {
					continue
				}
				switch instance.State.Name {
				case ec2types.InstanceStateNameRunning:
					count.running++
				case ec2types.InstanceStateNameStopped:
					count.stopped++
				}
			}
		}

		if out.NextToken == nil || *out.NextToken == "" {
			return count, nil
		}
		input.NextToken = out.NextToken
	}
}

func countBuckets(ctx context.Context, api awsclient.S3API) (int, error) {
	out, err := api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return 0, errors.Wrap(err, "cloudbilling: ListBuckets failed")
	}
	return len(out.Buckets), nil
}

func countDatabases(ctx context.Context, api awsclient.RDSAPI) (int, error) {
	count := 0
	input := &rds.DescribeDBInstancesInput{}

	for {
		out, err := api.DescribeDBInstances(ctx, input)
		if err != nil {
			return 0, errors.Wrap(err, "cloudbilling: DescribeDBInstances failed")
		}
		count += len(out.DBInstances)

		if out.Marker == nil || *out.Marker == "" {
			return count, nil
		}
		input.Marker = out.Marker
	}
}

// resourceSummary tolera falhas isoladas de inventário; só falha quando as
// três consultas falham
func (s *Service) resourceSummary(ctx context.Context, c *awsclient.Clients, logger *logrus.Entry) (*domain.Result, error) {
	summary := domain.Summary{
		"ec2_running":   0,
		"ec2_stopped":   0,
		"ec2_total":     0,
		"s3_buckets":    0,
		"rds_instances": 0,
	}
	var failures []error

	if instances, err := countInstances(ctx, c.EC2); err != nil {
		logger.WithError(err).Warn("cloudbilling: ec2 inventory failed")
		failures = append(failures, err)
	} else {
		summary["ec2_running"] = float64(instances.running)
		summary["ec2_stopped"] = float64(instances.stopped)
		summary["ec2_total"] = float64(instances.total)
	}

	if buckets, err := countBuckets(ctx, c.S3); err != nil {
		logger.WithError(err).Warn("cloudbilling: s3 inventory failed")
		failures = append(failures, err)
	} else {
		summary["s3_buckets"] = float64(buckets)
	}

	if databases, err := countDatabases(ctx, c.RDS); err != nil {
		logger.WithError(err).Warn("cloudbilling: rds inventory failed")
		failures = append(failures, err)
	} else {
		summary["rds_instances"] = float64(databases)
	}

	if len(failures) == 3 {
		return nil, errors.Wrap(ErrInventoryUnavailable, failures[0].Error())
	}

	return domain.NewSummaryResult("", summary), nil
}

func (s *Service) alarms(ctx context.Context, c *awsclient.Clients) (*domain.Result, error) {
	out, err := c.CloudWatch.DescribeAlarms(ctx, &cloudwatch.DescribeAlarmsInput{
		StateValue: cwtypes.StateValueAlarm,
		MaxRecords: aws.Int32(maxAlarmRecords),
	})
	if err != nil {
		return nil, errors.Wrap(err, "cloudbilling: DescribeAlarms failed")
	}

	breakdown := make(domain.Breakdown, 0, len(out.MetricAlarms))
	for _, alarm := range out.MetricAlarms {
		updated := s.now()
		if alarm.StateUpdatedTimestamp != nil {
			updated = *alarm.StateUpdatedTimestamp
		}

		breakdown = append(breakdown, domain.Category{
			Label:   aws.ToString(alarm.AlarmName),
			Metrics: map[string]float64{"alarms": 1},
			Attributes: map[string]string{
				"metric":  aws.ToString(alarm.MetricName),
				"state":   string(alarm.StateValue),
				"reason":  aws.ToString(alarm.StateReason),
				"updated": updated.UTC().Format(time.RFC3339),
			},
		})
	}
	breakdown.SortBy("alarms")

	return domain.NewBreakdownResult("", breakdown), nil
}
