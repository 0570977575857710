package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration. It is constructed once in main
// and passed to each component; there is no package-level singleton.
type Config struct {
	ProjectName string
	ServerPort  string
	ServerHost  string // base URL used as token issuer and audience root
	FrontendURL string
	DatabaseURL string

	SecretKey                 string
	Algorithm                 string
	AccessTokenExpireMinutes  int
	RefreshTokenExpireSeconds int
	TokenVerifySubject        bool

	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	EmailsFromEmail   string
	EmailsFromName    string
	EmailTemplatesDir string
	// MailDeliveryRequired makes a failed login notification reject the
	// login with 400. This preserves the documented coupling between
	// login and mail delivery; set false to downgrade failures to warnings.
	MailDeliveryRequired bool

	RedisURL         string
	RabbitMQURL      string
	RabbitMQPrefetch int

	EnableHSTS      bool
	OTELEnabled     bool
	OTELEndpoint    string
	ServerDebugMode bool
	WorkerDebugMode bool
}

// AccessTTL returns the access-token lifetime.
func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTTL returns the refresh-token lifetime.
func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireSeconds) * time.Second
}

// EmailsEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) EmailsEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPort > 0 && c.EmailsFromEmail != ""
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ProjectName: getEnv("PROJECT_NAME", "movies-api"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		ServerHost:  getEnv("SERVER_HOST", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		SecretKey:                 getEnv("SECRET_KEY", ""),
		Algorithm:                 getEnv("ALGORITHM", "HS256"),
		AccessTokenExpireMinutes:  getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		RefreshTokenExpireSeconds: getEnvInt("REFRESH_TOKEN_EXPIRE_SECONDS", 604800),
		TokenVerifySubject:        getEnvBool("TOKEN_VERIFY_SUBJECT", false),

		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		EmailsFromEmail:      getEnv("EMAILS_FROM_EMAIL", ""),
		EmailsFromName:       getEnv("EMAILS_FROM_NAME", ""),
		EmailTemplatesDir:    getEnv("EMAIL_TEMPLATES_DIR", "templates"),
		MailDeliveryRequired: getEnvBool("MAIL_DELIVERY_REQUIRED", true),

		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		RabbitMQPrefetch: getEnvInt("RABBITMQ_PREFETCH", 1),

		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		WorkerDebugMode: getEnvBool("WORKER_DEBUG_MODE", false),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.AccessTokenExpireMinutes <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if cfg.RefreshTokenExpireSeconds <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_EXPIRE_SECONDS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
