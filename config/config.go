package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
	Portal   PortalConfig
	Gemini   GeminiConfig
	Firebase FirebaseConfig
	Cron     CronConfig
}

type ServerConfig struct {
	Port      string
	StaticDir string
}

type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// PortalConfig holds the shared secrets and org scoping used by the worker
// portal and the admin HR endpoints.
type PortalConfig struct {
	OrgID             string
	TimeZone          string
	AttendanceToken   string
	ApplicationsToken string
	AdminToken        string
}

type GeminiConfig struct {
	APIKey      string
	BaseURL     string
	UseADC      bool
	VertexURL   string
	Timeout     time.Duration
	RateMax     int
	RateWindow  time.Duration
	BodyLimitMB int
}

type FirebaseConfig struct {
	CredentialsPath string
}

type CronConfig struct {
	Enabled  bool
	Schedule string
}

// Load reads .env.local and .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err == nil {
		log.Info().Msg("loaded .env.local")
	}
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			StaticDir: getEnv("STATIC_DIR", "dist"),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "mys"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Portal: PortalConfig{
			OrgID:             getEnv("WM_ORG_ID", ""),
			TimeZone:          getEnv("WM_TIMEZONE", "America/Guatemala"),
			AttendanceToken:   getEnv("PORTAL_ATTENDANCE_TOKEN", ""),
			ApplicationsToken: getEnv("PORTAL_APPLICATIONS_TOKEN", ""),
			AdminToken:        getEnv("ADMIN_TOKEN", ""),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			BaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			UseADC:      getEnvAsBool("GEMINI_USE_ADC", false),
			VertexURL:   getEnv("GEMINI_VERTEX_URL", ""),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 2*time.Minute),
			RateMax:     getEnvAsInt("GEMINI_RATE_MAX", 60),
			RateWindow:  getEnvAsDuration("GEMINI_RATE_WINDOW", 10*time.Minute),
			BodyLimitMB: getEnvAsInt("GEMINI_BODY_LIMIT_MB", 15),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Cron: CronConfig{
			Enabled:  getEnvAsBool("CRON_ENABLED", true),
			Schedule: getEnv("CRON_RENTAL_SCHEDULE", "0 0 6 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_DSN or DB_HOST is required")
	}
	if c.Portal.OrgID == "" {
		return fmt.Errorf("WM_ORG_ID is required")
	}
	if _, err := time.LoadLocation(c.Portal.TimeZone); err != nil {
		return fmt.Errorf("WM_TIMEZONE %q: %w", c.Portal.TimeZone, err)
	}
	if c.Gemini.RateMax <= 0 || c.Gemini.RateWindow <= 0 {
		return fmt.Errorf("GEMINI_RATE_MAX and GEMINI_RATE_WINDOW must be positive")
	}
	return nil
}

// DatabaseURL returns DB_DSN when set, otherwise a URL built from the DB_* parts.
func (c DatabaseConfig) DatabaseURL() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return defaultValue
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Dur("default", defaultValue).Msg("invalid duration, using default")
		return defaultValue
	}
	return d
}
