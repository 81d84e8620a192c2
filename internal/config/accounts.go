package config

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const legacyAccountName = "Default"

// accountEntry é o formato de cada item de GA_ACCOUNTS, ADSENSE_ACCOUNTS e AWS_ACCOUNTS
type accountEntry struct {
	Name              string `mapstructure:"name"`
	PropertyID        string `mapstructure:"property_id"`
	CredentialsPath   string `mapstructure:"credentials_path"`
	CredentialsJSON   any    `mapstructure:"credentials_json"`
	ClientSecretsPath string `mapstructure:"client_secrets_path"`
	TokenPath         string `mapstructure:"token_path"`
	AccountID         string `mapstructure:"account_id"`
	AccessKeyID       string `mapstructure:"access_key_id"`
	SecretAccessKey   string `mapstructure:"secret_access_key"`
	Region            string `mapstructure:"region"`
	Enabled           *bool  `mapstructure:"enabled"`
}

func (e accountEntry) toConfig(provider domain.Provider) domain.AccountConfig {
	enabled := true
	if e.Enabled != nil {
		enabled = *e.Enabled
	}

	return domain.AccountConfig{
		Name:     strings.TrimSpace(e.Name),
		Provider: provider,
		Credentials: domain.CredentialsRef{
			Path:              e.CredentialsPath,
			JSON:              credentialsJSON(e.CredentialsJSON),
			ClientSecretsPath: e.ClientSecretsPath,
			TokenPath:         e.TokenPath,
			AccessKeyID:       e.AccessKeyID,
			SecretAccessKey:   e.SecretAccessKey,
		},
		PropertyID: e.PropertyID,
		AccountID:  e.AccountID,
		Region:     e.Region,
		Enabled:    enabled,
	}
}

// credentialsJSON aceita a chave de serviço como texto ou como objeto embutido
func credentialsJSON(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		b, err := json.Marshal(c)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func resolveAccounts(src Sources) map[domain.Provider][]domain.AccountConfig {
	return map[domain.Provider][]domain.AccountConfig{
		domain.ProviderAnalytics:    analyticsAccounts(src),
		domain.ProviderAdRevenue:    adRevenueAccounts(src),
		domain.ProviderCloudBilling: cloudBillingAccounts(src),
	}
}

func analyticsAccounts(src Sources) []domain.AccountConfig {
	if accounts, ok := parseAccountList(domain.ProviderAnalytics, "GA_ACCOUNTS", src.GAAccounts); ok {
		return accounts
	}

	if src.GA4PropertyID == "" || (src.GA4CredentialsPath == "" && src.GA4CredentialsJSON == "") {
		return []domain.AccountConfig{}
	}

	return []domain.AccountConfig{{
		Name:     legacyAccountName,
		Provider: domain.ProviderAnalytics,
		Credentials: domain.CredentialsRef{
			Path: src.GA4CredentialsPath,
			JSON: src.GA4CredentialsJSON,
		},
		PropertyID: src.GA4PropertyID,
		Enabled:    true,
	}}
}

func adRevenueAccounts(src Sources) []domain.AccountConfig {
	if accounts, ok := parseAccountList(domain.ProviderAdRevenue, "ADSENSE_ACCOUNTS", src.AdSenseAccounts); ok {
		return accounts
	}

	if src.AdSenseClientSecretsPath == "" {
		return []domain.AccountConfig{}
	}

	return []domain.AccountConfig{{
		Name:     legacyAccountName,
		Provider: domain.ProviderAdRevenue,
		Credentials: domain.CredentialsRef{
			ClientSecretsPath: src.AdSenseClientSecretsPath,
			TokenPath:         src.AdSenseTokenPath,
		},
		AccountID: src.AdSenseAccountID,
		Enabled:   true,
	}}
}

func cloudBillingAccounts(src Sources) []domain.AccountConfig {
	if accounts, ok := parseAccountList(domain.ProviderCloudBilling, "AWS_ACCOUNTS", src.AWSAccounts); ok {
		return accounts
	}

	if src.AWSAccessKeyID == "" || src.AWSSecretAccessKey == "" {
		return []domain.AccountConfig{}
	}

	return []domain.AccountConfig{{
		Name:     legacyAccountName,
		Provider: domain.ProviderCloudBilling,
		Credentials: domain.CredentialsRef{
			AccessKeyID:     src.AWSAccessKeyID,
			SecretAccessKey: src.AWSSecretAccessKey,
		},
		Region:  src.AWSRegion,
		Enabled: true,
	}}
}

// parseAccountList decodifica a lista JSON de contas. JSON inválido cai para
// as variáveis legadas de conta única.
func parseAccountList(provider domain.Provider, key, raw string) ([]domain.AccountConfig, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("config: lista de contas inválida, usando variáveis legadas")
		return nil, false
	}

	accounts := make([]domain.AccountConfig, 0, len(items))
	for i, item := range items {
		var entry accountEntry
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &entry,
			WeaklyTypedInput: true,
		})
		if err == nil {
			err = decoder.Decode(item)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   key,
				"index": i,
				"error": err.Error(),
			}).Warn("config: conta ignorada por formato inválido")
			continue
		}

		accounts = append(accounts, entry.toConfig(provider))
	}

	return accounts, true
}

// Validate lista os problemas de configuração encontrados. Nenhum deles impede
// a subida: contas mal configuradas terminam em estado de erro no registro.
func (c *Config) Validate() []string {
	var problems []string

	if !c.Features.EnableAnalytics && !c.Features.EnableAdRevenue && !c.Features.EnableCloudBilling {
		problems = append(problems, "nenhum provedor habilitado")
	}

	labels := map[domain.Provider]string{
		domain.ProviderAnalytics:    "Google Analytics",
		domain.ProviderAdRevenue:    "AdSense",
		domain.ProviderCloudBilling: "AWS",
	}

	for _, provider := range domain.AllProviders() {
		if !c.Features.Enabled(provider) {
			continue
		}

		accounts := c.Accounts[provider]
		if len(accounts) == 0 {
			problems = append(problems, fmt.Sprintf("%s habilitado sem contas configuradas", labels[provider]))
			continue
		}

		seen := make(map[string]bool, len(accounts))
		for i, account := range accounts {
			prefix := fmt.Sprintf("%s conta %d", labels[provider], i+1)

			if account.Name != "" {
				if seen[account.Name] {
					problems = append(problems, fmt.Sprintf("%s: nome %q duplicado", prefix, account.Name))
				}
				seen[account.Name] = true
			}

			switch provider {
			case domain.ProviderAnalytics:
				if account.PropertyID == "" {
					problems = append(problems, prefix+": property_id é obrigatório")
				}
				if account.Credentials.Path == "" && account.Credentials.JSON == "" {
					problems = append(problems, prefix+": credentials_path ou credentials_json é obrigatório")
				}
			case domain.ProviderAdRevenue:
				if account.Credentials.ClientSecretsPath == "" {
					problems = append(problems, prefix+": client_secrets_path é obrigatório")
				}
			case domain.ProviderCloudBilling:
				if account.Credentials.AccessKeyID == "" || account.Credentials.SecretAccessKey == "" {
					problems = append(problems, prefix+": access_key_id e secret_access_key são obrigatórios")
				}
			}
		}
	}

	return problems
}
