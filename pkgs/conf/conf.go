package conf

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"meridianit/inbox-project/pkgs/utils"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Version        int
	BaseConfig     BaseConfig
	PostgresConfig PostgresConfig
	RedisConfig    RedisConfig
	WhatsappConfig WhatsappConfig
	AmqpConfig     AmqpConfig
	MediaConfig    MediaConfig
}

type BaseConfig struct {
	Port      int    `env:"PORT, default=8080" validate:"required,min=1,max=65535"`
	LogLevel  string `env:"LOG_LEVEL, default=info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT, default=console" validate:"oneof=console json"`
}

type PostgresConfig struct {
	Host           string `env:"DB_HOST,required" validate:"required"`
	Port           string `env:"DB_PORT,required" validate:"required"`
	User           string `env:"DB_USER,required" validate:"required"`
	Password       string `env:"DB_PASSWORD,required" validate:"required"`
	Database       string `env:"DB_NAME,required" validate:"required"`
	SSLMode        string `env:"DB_SSLMODE,required" validate:"required,oneof=disable require verify-ca verify-full"`
	ChannelBinding string `env:"DB_CHANNEL_BINDING"`
}

func (a *PostgresConfig) DBURI() string {
	uri := "postgres://" + a.User + ":" + a.Password + "@" + a.Host + ":" + a.Port + "/" + a.Database + "?sslmode=" + a.SSLMode
	if a.ChannelBinding != "" {
		uri += "&channel_binding=" + a.ChannelBinding
	}
	return uri
}

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// WhatsappConfig carries the Cloud API credentials and the knobs for outbound
// Graph calls. SendTimeout and SendRate are explicit because the runtime
// defaults are not acceptable for a webhook that must ack quickly.
type WhatsappConfig struct {
	VerifyToken   string        `env:"WHATSAPP_VERIFY_TOKEN,required" validate:"required"`
	AccessToken   string        `env:"WHATSAPP_ACCESS_TOKEN,required" validate:"required"`
	PhoneNumberID string        `env:"WHATSAPP_PHONE_NUMBER_ID,required" validate:"required"`
	GraphBaseURL  string        `env:"WHATSAPP_GRAPH_BASE_URL, default=https://graph.facebook.com" validate:"required,url"`
	GraphVersion  string        `env:"WHATSAPP_GRAPH_VERSION, default=v21.0" validate:"required"`
	SendTimeout   time.Duration `env:"WHATSAPP_SEND_TIMEOUT, default=10s" validate:"required"`
	SendRate      float64       `env:"WHATSAPP_SEND_RATE, default=20" validate:"gt=0"`
	SendBurst     int           `env:"WHATSAPP_SEND_BURST, default=10" validate:"gt=0"`
}

type AmqpConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=inbox.events"`
}

type MediaConfig struct {
	DownloadEnabled bool   `env:"MEDIA_DOWNLOAD_ENABLED, default=false"`
	StoreRoot       string `env:"MEDIA_STORE_ROOT, default=media"`
}

var globalCfg *Config = &Config{}

// ConfigProvider defines the interface for configuration providers
type ConfigProvider interface {
	// Name returns the provider name for logging/debugging
	Name() string
	// Lookup returns the value for the given key, and whether it was found
	Lookup(ctx context.Context, key string) (string, bool)
}

// EnvProvider loads configuration from environment variables
type EnvProvider struct{}

func (e *EnvProvider) Name() string {
	return "environment"
}

func (e *EnvProvider) Lookup(ctx context.Context, key string) (string, bool) {
	value := os.Getenv(key)
	return value, value != ""
}

// DotEnvProvider loads configuration from .env files
type DotEnvProvider struct {
	envMap map[string]string
}

func NewDotEnvProvider(filePath string) *DotEnvProvider {
	envMap, err := godotenv.Read(filePath)
	if err != nil {
		envMap = map[string]string{} // .env file is optional
	}
	return &DotEnvProvider{envMap: envMap}
}

func (d *DotEnvProvider) Name() string {
	return "dotenv"
}

func (d *DotEnvProvider) Lookup(ctx context.Context, key string) (string, bool) {
	value, found := d.envMap[key]
	return value, found
}

// MultiProvider combines multiple providers with priority order
// Earlier providers in the slice have higher priority
type MultiProvider struct {
	providers []ConfigProvider
}

func NewMultiProvider(providers ...ConfigProvider) *MultiProvider {
	return &MultiProvider{providers: providers}
}

func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

func (m *MultiProvider) Lookup(ctx context.Context, key string) (string, bool) {
	for _, provider := range m.providers {
		if value, found := provider.Lookup(ctx, key); found {
			return value, true
		}
	}
	return "", false
}

// providerLookuper adapts our ConfigProvider interface to envconfig.Lookuper
type providerLookuper struct {
	provider ConfigProvider
}

func (p *providerLookuper) Lookup(key string) (string, bool) {
	return p.provider.Lookup(context.Background(), key)
}

// ConfigLoader handles the configuration loading process
type ConfigLoader struct {
	providers []ConfigProvider
}

func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

func (cl *ConfigLoader) AddProvider(provider ConfigProvider) *ConfigLoader {
	cl.providers = append(cl.providers, provider)
	return cl
}

func (cl *ConfigLoader) Load(cfg interface{}) error {
	ctx := context.Background()

	multiProvider := NewMultiProvider(cl.providers...)
	lookuper := &providerLookuper{provider: multiProvider}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return err
	}

	if err := utils.Validate.Struct(cfg); err != nil {
		return err
	}

	return nil
}

func GetConfig() *Config {
	if globalCfg.Version == 0 {
		err := Load()
		if err != nil {
			panic(err)
		}
	}
	return globalCfg
}

// Load loads configuration with environment-aware providers.
// It processes into a fresh Config and swaps it in on success: envconfig
// skips fields that already hold values, so reloading into the live
// singleton would silently keep stale settings.
func Load() error {
	cfg := &Config{}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	loader := NewConfigLoader().
		AddProvider(&EnvProvider{}) // Highest priority: environment variables

	// In development, also load from .env file
	// In production, rely solely on environment variables
	if environment == "development" {
		loader.AddProvider(NewDotEnvProvider(".env"))
	}

	err := loader.Load(cfg)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Version = 1
	*globalCfg = *cfg

	return nil
}

// LoadEnvFromFile loads environment variables from a specified file path.
// This is primarily for testing purposes.
func LoadEnvFromFile(filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("env file not found: %s", filePath)
	}

	dotEnvProvider := NewDotEnvProvider(filePath)
	loader := NewConfigLoader().AddProvider(dotEnvProvider)

	err := loader.Load(globalCfg)
	if err != nil {
		return err
	}
	globalCfg.Version = 1
	return nil
}

// LoadTestEnv loads environment variables specifically for the test environment
func LoadTestEnv() error {
	testEnvPath := ".env.test"
	if _, err := os.Stat(testEnvPath); os.IsNotExist(err) {
		testEnvPath = ".env"
	}
	return LoadEnvFromFile(testEnvPath)
}
