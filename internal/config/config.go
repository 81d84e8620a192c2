package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/streamboard-api/internal/domain"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Cache      Cache      `mapstructure:",squash"`
	Aggregator Aggregator `mapstructure:",squash"`
	Features   Features   `mapstructure:",squash"`
	CacheWarm  CacheWarm  `mapstructure:",squash"`
	Sources    Sources    `mapstructure:",squash"`

	// Contas resolvidas a partir de Sources, por provedor
	Accounts map[domain.Provider][]domain.AccountConfig `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
	Debug    bool   `mapstructure:"debug"`
}

type Server struct {
	Host           string   `mapstructure:"server_host"`
	Port           string   `mapstructure:"server_port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Auth struct {
	SecretKey             string `mapstructure:"secret_key"`
	SessionTimeoutMinutes int    `mapstructure:"session_timeout_minutes"`
	DashboardUser         string `mapstructure:"dashboard_user"`
	DashboardPasswordHash string `mapstructure:"dashboard_password_hash"`
}

// Enabled indica se o login do painel está configurado
func (a Auth) Enabled() bool {
	return a.DashboardPasswordHash != ""
}

func (a Auth) SessionTimeout() time.Duration {
	return time.Duration(a.SessionTimeoutMinutes) * time.Minute
}

type Cache struct {
	TTLSeconds      int `mapstructure:"cache_ttl_seconds"`
	ShortTTLSeconds int `mapstructure:"cache_ttl_short"`
	MaxEntries      int `mapstructure:"cache_max_entries"`
}

func (c Cache) TTL(class domain.TTLClass) time.Duration {
	if class == domain.TTLShort {
		return time.Duration(c.ShortTTLSeconds) * time.Second
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

type Aggregator struct {
	AccountTimeout time.Duration `mapstructure:"aggregator_account_timeout"`
	MaxConcurrent  int           `mapstructure:"aggregator_max_concurrent"`
}

type Features struct {
	EnableAnalytics    bool `mapstructure:"enable_google_analytics"`
	EnableAdRevenue    bool `mapstructure:"enable_google_adsense"`
	EnableCloudBilling bool `mapstructure:"enable_aws_metrics"`
}

// Enabled informa se o provedor está habilitado por flag
func (f Features) Enabled(provider domain.Provider) bool {
	switch provider {
	case domain.ProviderAnalytics:
		return f.EnableAnalytics
	case domain.ProviderAdRevenue:
		return f.EnableAdRevenue
	case domain.ProviderCloudBilling:
		return f.EnableCloudBilling
	}
	return false
}

type CacheWarm struct {
	CronSchedule      string `mapstructure:"cache_warm_cron"`
	DaysBack          int    `mapstructure:"cache_warm_days_back"`
	MaxConcurrentJobs int    `mapstructure:"cache_warm_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"cache_warm_enabled"`
}

// Sources guarda as variáveis de contas como chegam do ambiente
type Sources struct {
	GAAccounts      string `mapstructure:"ga_accounts"`
	AdSenseAccounts string `mapstructure:"adsense_accounts"`
	AWSAccounts     string `mapstructure:"aws_accounts"`

	GA4PropertyID      string `mapstructure:"ga4_property_id"`
	GA4CredentialsPath string `mapstructure:"ga4_credentials_path"`
	GA4CredentialsJSON string `mapstructure:"ga4_credentials_json"`

	AdSenseClientSecretsPath string `mapstructure:"adsense_client_secrets_path"`
	AdSenseAccountID         string `mapstructure:"adsense_account_id"`
	AdSenseTokenPath         string `mapstructure:"adsense_token_path"`

	AWSAccessKeyID     string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey string `mapstructure:"aws_secret_access_key"`
	AWSRegion          string `mapstructure:"aws_region"`
}

func SetDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8501")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DEBUG", false)

	viper.SetDefault("SECRET_KEY", "change-me-in-production")
	viper.SetDefault("SESSION_TIMEOUT_MINUTES", 60)
	viper.SetDefault("DASHBOARD_USER", "admin")
	viper.SetDefault("DASHBOARD_PASSWORD_HASH", "") // bcrypt; vazio desliga o login

	viper.SetDefault("CACHE_TTL_SECONDS", 3600) // 1 hora
	viper.SetDefault("CACHE_TTL_SHORT", 300)    // 5 minutos
	viper.SetDefault("CACHE_MAX_ENTRIES", 1000)

	viper.SetDefault("AGGREGATOR_ACCOUNT_TIMEOUT", "30s")
	viper.SetDefault("AGGREGATOR_MAX_CONCURRENT", 4)

	viper.SetDefault("ENABLE_GOOGLE_ANALYTICS", true)
	viper.SetDefault("ENABLE_GOOGLE_ADSENSE", true)
	viper.SetDefault("ENABLE_AWS_METRICS", true)

	viper.SetDefault("CACHE_WARM_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("CACHE_WARM_DAYS_BACK", domain.DefaultDaysBack)
	viper.SetDefault("CACHE_WARM_MAX_CONCURRENT_JOBS", 2)
	viper.SetDefault("CACHE_WARM_ENABLED", false)

	// Sem default real, mas precisam existir para o AutomaticEnv
	for _, key := range []string{
		"GA_ACCOUNTS", "ADSENSE_ACCOUNTS", "AWS_ACCOUNTS",
		"GA4_PROPERTY_ID", "GA4_CREDENTIALS_PATH", "GA4_CREDENTIALS_JSON",
		"ADSENSE_CLIENT_SECRETS_PATH", "ADSENSE_ACCOUNT_ID",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
	} {
		viper.SetDefault(key, "")
	}
	viper.SetDefault("ADSENSE_TOKEN_PATH", "token.json")
	viper.SetDefault("AWS_REGION", "us-east-1")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	return decode(viper.AllSettings())
}

// decode monta a configuração a partir de um mapa de chaves já resolvidas
func decode(settings map[string]any) (*Config, error) {
	config := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, err
	}

	config.Accounts = resolveAccounts(config.Sources)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
