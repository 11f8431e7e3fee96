package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aiqso/odoo-bridge/pkg/apperror"
)

type Config struct {
	App        AppConfig
	Odoo       OdooConfig
	Postgres   PostgresConfig
	Automation AutomationConfig
	Webhook    WebhookConfig
	Log        LogConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// OdooConfig holds the XML-RPC connection settings for the Odoo instance.
type OdooConfig struct {
	URL      string
	Database string
	Username string
	APIKey   string
	Timeout  time.Duration
}

// PostgresConfig points at the scraper's permits database. The bridge only
// reads from it; the schema is owned by the scraper.
type PostgresConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// AutomationConfig holds the n8n automation platform location, used only by
// health checks.
type AutomationConfig struct {
	URL string
}

// WebhookConfig holds the shared token expected from webhook callers.
type WebhookConfig struct {
	Token string
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "odoo-bridge")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8070")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("ODOO_URL", "http://localhost:8069")
	viper.SetDefault("ODOO_DB", "aiqso_db")
	viper.SetDefault("ODOO_USERNAME", "admin")
	viper.SetDefault("ODOO_TIMEOUT_SECONDS", 30)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5433")
	viper.SetDefault("POSTGRES_DB", "permits_db")
	viper.SetDefault("POSTGRES_USER", "permits")
	viper.SetDefault("POSTGRES_SSL_MODE", "disable")
	viper.SetDefault("N8N_URL", "https://automation.aiqso.io")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Odoo: OdooConfig{
			URL:      strings.TrimRight(viper.GetString("ODOO_URL"), "/"),
			Database: viper.GetString("ODOO_DB"),
			Username: viper.GetString("ODOO_USERNAME"),
			APIKey:   viper.GetString("ODOO_API_KEY"),
			Timeout:  time.Duration(viper.GetInt("ODOO_TIMEOUT_SECONDS")) * time.Second,
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetString("POSTGRES_PORT"),
			Name:     viper.GetString("POSTGRES_DB"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			SSLMode:  viper.GetString("POSTGRES_SSL_MODE"),
		},
		Automation: AutomationConfig{
			URL: strings.TrimRight(viper.GetString("N8N_URL"), "/"),
		},
		Webhook: WebhookConfig{
			Token: viper.GetString("WEBHOOK_TOKEN"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// Validate checks that the Odoo connection settings are complete. A missing
// credential is a configuration failure surfaced at startup, not at first use.
func (c *OdooConfig) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "ODOO_URL")
	}
	if c.Database == "" {
		missing = append(missing, "ODOO_DB")
	}
	if c.Username == "" {
		missing = append(missing, "ODOO_USERNAME")
	}
	if c.APIKey == "" {
		missing = append(missing, "ODOO_API_KEY")
	}
	if len(missing) > 0 {
		return apperror.NewConfigError("missing required configuration values: " + strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks that the permits database settings are complete.
func (c *PostgresConfig) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Name == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if c.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if len(missing) > 0 {
		return apperror.NewConfigError("missing required configuration values: " + strings.Join(missing, ", "))
	}
	return nil
}

func (c *PostgresConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}
