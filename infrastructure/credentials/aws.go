package credentials

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

const DefaultAWSRegion = "us-east-1"

// AWSConfig monta a configuração do SDK com as chaves estáticas da conta
func AWSConfig(ctx context.Context, account domain.AccountConfig) (aws.Config, error) {
	ref := account.Credentials
	if ref.AccessKeyID == "" || ref.SecretAccessKey == "" {
		return aws.Config{}, domain.NewAuthError(account.Provider, account.Name, "access_key_id e secret_access_key são obrigatórios", nil)
	}

	region := account.Region
	if region == "" {
		region = DefaultAWSRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(awscreds.NewStaticCredentialsProvider(ref.AccessKeyID, ref.SecretAccessKey, "")),
	)
	if err != nil {
		return aws.Config{}, domain.NewAuthError(account.Provider, account.Name, "configuração AWS inválida", err)
	}

	return cfg, nil
}
