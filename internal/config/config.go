package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App               `mapstructure:",squash"`
	Server       Server            `mapstructure:",squash"`
	Database     Database          `mapstructure:",squash"`
	Meta         Meta              `mapstructure:",squash"`
	GoogleAds    GoogleAds         `mapstructure:",squash"`
	Auth         Auth              `mapstructure:",squash"`
	PlatformSync PlatformSync      `mapstructure:",squash"`
	Aggregation  Aggregation       `mapstructure:",squash"`
	Cleanup      Cleanup           `mapstructure:",squash"`
	RateLimit    RateLimit         `mapstructure:",squash"`
	Cache        Cache             `mapstructure:",squash"`
	Retry        Retry             `mapstructure:",squash"`
	Secrets      map[string]string `mapstructure:"-"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns int    `mapstructure:"database_max_idle_conns"`
}

type Meta struct {
	BaseURL     string `mapstructure:"meta_base_url"`
	URL         string `mapstructure:"meta_url"`
	Version     string `mapstructure:"meta_version"`
	AccessToken string `mapstructure:"meta_access_token"`
}

type GoogleAds struct {
	URL             string `mapstructure:"google_ads_url"`
	AccessToken     string `mapstructure:"google_ads_access_token"`
	DeveloperToken  string `mapstructure:"google_ads_developer_token"`
	LoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
	PageSize        int    `mapstructure:"google_ads_page_size"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type PlatformSync struct {
	CronSchedule        string `mapstructure:"platform_sync_cron"`
	LookbackDays        int    `mapstructure:"platform_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"platform_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"platform_sync_max_concurrent_jobs"`
	PageSize            int    `mapstructure:"platform_sync_page_size"`
	MaxPages            int    `mapstructure:"platform_sync_max_pages"`
	Enabled             bool   `mapstructure:"platform_sync_enabled"`
}

type Aggregation struct {
	DailyCronSchedule   string `mapstructure:"aggregation_daily_cron"`
	MonthlyCronSchedule string `mapstructure:"aggregation_monthly_cron"`
	Enabled             bool   `mapstructure:"aggregation_enabled"`
}

type Cleanup struct {
	CronSchedule        string `mapstructure:"cleanup_cron"`
	CacheCronSchedule   string `mapstructure:"cleanup_cache_cron"`
	HourlyRetentionDays int    `mapstructure:"cleanup_hourly_retention_days"`
	Enabled             bool   `mapstructure:"cleanup_enabled"`
}

type RateLimit struct {
	MaxCalls      int `mapstructure:"rate_limit_max_calls"`
	WindowMinutes int `mapstructure:"rate_limit_window_minutes"`
}

type Cache struct {
	DefaultTTLSeconds int `mapstructure:"cache_default_ttl_seconds"`
}

type Retry struct {
	MaxAttempts         int     `mapstructure:"retry_max_attempts"`
	InitialDelaySeconds int     `mapstructure:"retry_initial_delay_seconds"`
	MaxDelaySeconds     int     `mapstructure:"retry_max_delay_seconds"`
	BackoffMultiplier   float64 `mapstructure:"retry_backoff_multiplier"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsync")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL

	viper.SetDefault("GOOGLE_ADS_URL", "https://googleads.googleapis.com/v18")
	viper.SetDefault("GOOGLE_ADS_ACCESS_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_PAGE_SIZE", 500)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Defaults para sincronização com as plataformas
	viper.SetDefault("PLATFORM_SYNC_CRON", "0 */2 * * *")      // A cada 2 horas
	viper.SetDefault("PLATFORM_SYNC_LOOKBACK_DAYS", 3)         // 3 dias para buscar métricas
	viper.SetDefault("PLATFORM_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("PLATFORM_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 contas em paralelo
	viper.SetDefault("PLATFORM_SYNC_PAGE_SIZE", 50)
	viper.SetDefault("PLATFORM_SYNC_MAX_PAGES", 20)
	viper.SetDefault("PLATFORM_SYNC_ENABLED", false)

	// Defaults para os rollups entre resoluções
	viper.SetDefault("AGGREGATION_DAILY_CRON", "15 * * * *")  // Toda hora, aos 15 minutos
	viper.SetDefault("AGGREGATION_MONTHLY_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("AGGREGATION_ENABLED", false)

	// Defaults para limpeza de janelas, cache e retenção
	viper.SetDefault("CLEANUP_CRON", "0 2 * * *")         // Todos os dias às 2h da manhã
	viper.SetDefault("CLEANUP_CACHE_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("CLEANUP_HOURLY_RETENTION_DAYS", 30)
	viper.SetDefault("CLEANUP_ENABLED", false)

	viper.SetDefault("RATE_LIMIT_MAX_CALLS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_MINUTES", 1)

	viper.SetDefault("CACHE_DEFAULT_TTL_SECONDS", 300)

	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_INITIAL_DELAY_SECONDS", 1)
	viper.SetDefault("RETRY_MAX_DELAY_SECONDS", 30)
	viper.SetDefault("RETRY_BACKOFF_MULTIPLIER", 2.0)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)
	config.Secrets = parseSecrets(viper.GetString("PLATFORM_SECRETS"))

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// parseSecrets lê o mapa de tokens por conta do formato nome=token,nome=token.
// Contas com secret_name preenchido resolvem o token aqui em vez do token
// global da plataforma.
func parseSecrets(raw string) map[string]string {
	secrets := make(map[string]string)
	if raw == "" {
		return secrets
	}

	for _, pair := range strings.Split(raw, ",") {
		name, token, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || name == "" {
			continue
		}
		secrets[name] = token
	}

	return secrets
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
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
