package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App    AppConfig
	GLPI   GLPIConfig
	Logger LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// GLPIConfig holds the GLPI REST endpoint and tokens. The application token
// and the service-account user token are read once at startup; empty values
// are a valid degraded state and only fail at the first operation that needs
// them.
type GLPIConfig struct {
	BaseURL               string
	AppToken              string
	UserToken             string
	EntityID              int
	ConnectTimeoutSeconds int
	ReadTimeoutSeconds    int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	entityID, err := strconv.Atoi(getEnv("GLPI_ENTITY_ID", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid GLPI_ENTITY_ID: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "glpi-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 60),
		},
		GLPI: GLPIConfig{
			BaseURL:               getEnv("GLPI_URL", ""),
			AppToken:              os.Getenv("GLPI_APP_TOKEN"),
			UserToken:             os.Getenv("GLPI_USER_TOKEN"),
			EntityID:              entityID,
			ConnectTimeoutSeconds: getEnvAsInt("GLPI_CONNECT_TIMEOUT_SECONDS", 5),
			ReadTimeoutSeconds:    getEnvAsInt("GLPI_READ_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Configured reports whether all GLPI credentials required for the
// service-account session are present.
func (g GLPIConfig) Configured() bool {
	return g.BaseURL != "" && g.AppToken != "" && g.UserToken != ""
}

// ConnectTimeout returns the dial timeout for outbound GLPI calls.
func (g GLPIConfig) ConnectTimeout() time.Duration {
	if g.ConnectTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(g.ConnectTimeoutSeconds) * time.Second
}

// ReadTimeout returns the upper bound for a single GLPI round trip.
func (g GLPIConfig) ReadTimeout() time.Duration {
	if g.ReadTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(g.ReadTimeoutSeconds) * time.Second
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
