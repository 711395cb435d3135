// Package config loads the API and web frontend configuration from the
// environment (and an optional .env file) with Viper, applying defaults and
// validating the result.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds API server configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host           string `mapstructure:"HOST"`
	Port           int    `mapstructure:"PORT"`
	User           string `mapstructure:"USER"`
	Password       string `mapstructure:"PASSWORD"`
	Name           string `mapstructure:"NAME"`
	SSLMode        string `mapstructure:"SSL_MODE"`
	MaxConnections int    `mapstructure:"MAX_CONNECTIONS"`
	RunMigrations  bool   `mapstructure:"RUN_MIGRATIONS"`
}

// URL returns a postgres:// connection URL usable by pgx and golang-migrate.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details. Redis backs the submission
// rate limiter; when disabled an in-process limiter is used instead.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"ENABLED"`
	Address  string `mapstructure:"ADDRESS"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
	UseTLS   bool   `mapstructure:"USE_TLS"`
}

// RateLimitConfig limits feedback submissions per client IP.
type RateLimitConfig struct {
	SubmissionsPerWindow int `mapstructure:"SUBMISSIONS_PER_WINDOW"`
	WindowSeconds        int `mapstructure:"WINDOW_SECONDS"`
}

// EmailConfig configures the optional response notification email.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"ENABLED"`
	FromAddress  string `mapstructure:"FROM_ADDRESS"`
	FromName     string `mapstructure:"FROM_NAME"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
}

// Config aggregates the API configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Database  DatabaseConfig  `mapstructure:"DATABASE"`
	Redis     RedisConfig     `mapstructure:"REDIS"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
	Email     EmailConfig     `mapstructure:"EMAIL"`
}

// FrontendConfig holds the web frontend configuration.
type FrontendConfig struct {
	Environment           Environment `mapstructure:"ENVIRONMENT"`
	Port                  string      `mapstructure:"PORT"`
	APIBaseURL            string      `mapstructure:"API_BASE_URL"`
	RequestTimeoutSeconds int         `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

// IsProduction returns true if the API runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// IsProduction returns true if the frontend runs in the production environment.
func (c *FrontendConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// bindEnvVars binds environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// loadDotEnv reads a .env file from the working directory if present.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		logger.GetLogger().Debugw("No .env file loaded", "error", err)
	}
}

// LoadConfig loads the API configuration, applying defaults, binding
// environment variables and validating the result.
func LoadConfig() (*Config, error) {
	loadDotEnv()
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8000")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"http://localhost:5000"})
	v.SetDefault("SERVER.VERSION", "1.0.0")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "feedback")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_CONNECTIONS", 10)
	v.SetDefault("DATABASE.RUN_MIGRATIONS", true)
	v.SetDefault("REDIS.ENABLED", false)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("RATE_LIMIT.SUBMISSIONS_PER_WINDOW", 10)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("EMAIL.ENABLED", false)
	v.SetDefault("EMAIL.FROM_NAME", "Customer Feedback")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Database config
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_CONNECTIONS", "DB_MAX_CONNECTIONS"},
		{"DATABASE.RUN_MIGRATIONS", "DB_RUN_MIGRATIONS"},
		// Redis config
		{"REDIS.ENABLED", "REDIS_ENABLED"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Rate limit config
		{"RATE_LIMIT.SUBMISSIONS_PER_WINDOW", "RATE_LIMIT_SUBMISSIONS_PER_WINDOW"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		// Email config
		{"EMAIL.ENABLED", "EMAIL_ENABLED"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	// A comma separated ALLOWED_ORIGINS arrives as a single element.
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"db", logger.MaskConnectionString(cfg.Database.URL()),
		"allowed_origins", cfg.Server.AllowedOrigins,
		"redis_enabled", cfg.Redis.Enabled,
		"email_enabled", cfg.Email.Enabled,
	)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFrontendConfig loads the web frontend configuration.
func LoadFrontendConfig() (*FrontendConfig, error) {
	loadDotEnv()
	v := viper.New()

	v.SetDefault("FRONTEND.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("FRONTEND.PORT", "5000")
	v.SetDefault("FRONTEND.API_BASE_URL", "http://localhost:8000")
	v.SetDefault("FRONTEND.REQUEST_TIMEOUT_SECONDS", 5)

	envBindings := [][2]string{
		{"FRONTEND.ENVIRONMENT", "ENVIRONMENT"},
		{"FRONTEND.PORT", "FRONTEND_PORT"},
		{"FRONTEND.API_BASE_URL", "API_BASE_URL"},
		{"FRONTEND.REQUEST_TIMEOUT_SECONDS", "FRONTEND_REQUEST_TIMEOUT_SECONDS"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	// Unmarshal from the root so env bindings of nested keys are honoured.
	var wrapper struct {
		Frontend FrontendConfig `mapstructure:"FRONTEND"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	cfg := wrapper.Frontend

	if err := validateFrontendConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	logger.GetLogger().Infow("Frontend configuration loaded",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"api_base_url", cfg.APIBaseURL,
		"request_timeout_seconds", cfg.RequestTimeoutSeconds,
	)
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.Database.Password == "" {
		log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
	}
	if cfg.Database.MaxConnections <= 0 {
		return fmt.Errorf("database max connections must be positive")
	}

	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if cfg.RateLimit.SubmissionsPerWindow <= 0 {
		return fmt.Errorf("rate limit submissions per window must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	// Missing email credentials switch the notifier off instead of failing startup.
	if cfg.Email.Enabled && (cfg.Email.ResendAPIKey == "" || cfg.Email.FromAddress == "") {
		log.Warn("Email is enabled but RESEND_API_KEY or EMAIL_FROM_ADDRESS is missing, disabling response emails")
		cfg.Email.Enabled = false
	}

	return nil
}

func validateFrontendConfig(cfg *FrontendConfig) error {
	if cfg.Port == "" {
		return fmt.Errorf("frontend port is required")
	}
	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("invalid API base URL '%s': %w", cfg.APIBaseURL, err)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("frontend request timeout must be positive")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
