package cloudbilling

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/infrastructure/credentials"
	"github.com/vfg2006/streamboard-api/infrastructure/integrator/cloudbilling/awsclient"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

type ClientsFactory func(cfg aws.Config) *awsclient.Clients

type Service struct {
	newClients ClientsFactory
	now        func() time.Time
}

func New() *Service {
	return &Service{
		newClients: awsclient.NewClients,
		now:        time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Provider() domain.Provider {
	return domain.ProviderCloudBilling
}

func (s *Service) InitAccount(ctx context.Context, cfg domain.AccountConfig) (any, error) {
	awsCfg, err := credentials.AWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return s.newClients(awsCfg), nil
}

func (s *Service) Execute(ctx context.Context, state domain.AccountState, kind domain.QueryKind, params domain.QueryParams) (*domain.Result, error) {
	spec, err := domain.LookupKind(domain.ProviderCloudBilling, kind)
	if err != nil {
		return nil, err
	}
	params = spec.Normalize(params)

	account := state.Config.Name
	clients, ok := state.Client.(*awsclient.Clients)
	if !ok || clients == nil {
		return nil, domain.NewRemoteQueryError(domain.ProviderCloudBilling, account, kind, errors.New("conta sem cliente inicializado"))
	}

	logger := logrus.WithFields(logrus.Fields{
		"account": account,
		"region":  clients.Region,
		"kind":    kind,
	})
	logger.Debug("cloudbilling: executing query")

	var result *domain.Result
	switch kind {
	case domain.KindCostOverview:
		result, err = s.costOverview(ctx, clients, params, logger)
	case domain.KindDailyCosts:
		result, err = s.dailyCosts(ctx, clients, params)
	case domain.KindServiceCosts:
		result, err = s.serviceCosts(ctx, clients, params)
	case domain.KindResourceSummary:
		result, err = s.resourceSummary(ctx, clients, logger)
	case domain.KindAlarms:
		result, err = s.alarms(ctx, clients)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownQueryKind, kind)
	}
	if err != nil {
		logger.WithError(err).Error("cloudbilling: query failed")
		return nil, domain.NewRemoteQueryError(domain.ProviderCloudBilling, account, kind, err)
	}

	result.Source = account
	return result, nil
}
