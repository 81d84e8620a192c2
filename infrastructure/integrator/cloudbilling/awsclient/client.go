package awsclient

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks

// Cost Explorer só atende em us-east-1
const costExplorerRegion = "us-east-1"

type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

type CloudWatchAPI interface {
	DescribeAlarms(ctx context.Context, params *cloudwatch.DescribeAlarmsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.DescribeAlarmsOutput, error)
}

// Clients agrupa os executores de uma conta AWS
type Clients struct {
	CostExplorer CostExplorerAPI
	EC2          EC2API
	S3           S3API
	RDS          RDSAPI
	CloudWatch   CloudWatchAPI
	Region       string
}

func NewClients(cfg aws.Config) *Clients {
	ceCfg := cfg.Copy()
	ceCfg.Region = costExplorerRegion

	return &Clients{
		CostExplorer: costexplorer.NewFromConfig(ceCfg),
		EC2:          ec2.NewFromConfig(cfg),
		S3:           s3.NewFromConfig(cfg),
		RDS:          rds.NewFromConfig(cfg),
		CloudWatch:   cloudwatch.NewFromConfig(cfg),
		Region:       cfg.Region,
	}
}
