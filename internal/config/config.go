package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret               string
	AccessExpiration     string
	RememberMeExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Version        string
	AllowedOrigins []string

	// TrustProxyHeaders lets X-Forwarded-For name the client address. Enable it
	// only behind a proxy that overwrites the header.
	TrustProxyHeaders bool
}

// RateLimitConfig bounds login attempts per client address.
type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type AuditConfig struct {
	Retention time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hcms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	trustProxy, err := strconv.ParseBool(getEnv("TRUST_PROXY_HEADERS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY_HEADERS: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Version:        getEnv("APP_VERSION", "v0.1.0"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),

		TrustProxyHeaders: trustProxy,
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	config.JWT = JWTConfig{
		Secret:               getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:     getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
		RememberMeExpiration: getEnv("JWT_REMEMBER_ME_EXPIRATION_TIME", "720h"),
	}

	maxAttempts, err := strconv.Atoi(getEnv("LOGIN_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_MAX_ATTEMPTS: %w", err)
	}
	window, err := time.ParseDuration(getEnv("LOGIN_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_WINDOW: %w", err)
	}
	config.RateLimit = RateLimitConfig{
		MaxAttempts: maxAttempts,
		Window:      window,
	}

	retention, err := time.ParseDuration(getEnv("LOGIN_AUDIT_RETENTION", "2160h"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_AUDIT_RETENTION: %w", err)
	}
	config.Audit = AuditConfig{Retention: retention}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RememberMeExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REMEMBER_ME_EXPIRATION_TIME: %w", err)
	}
	if c.RateLimit.MaxAttempts <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ClientConfig configures the command line client.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	SessionFile string
}

// LoadClient reads the client settings, falling back to a local .env file.
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("HCMS_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HCMS_TIMEOUT: %w", err)
	}

	sessionFile := getEnv("HCMS_SESSION_FILE", "")
	if sessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		sessionFile = dir + string(os.PathSeparator) + "hcms" + string(os.PathSeparator) + "session.json"
	}

	return &ClientConfig{
		BaseURL:     strings.TrimRight(getEnv("HCMS_API_URL", "http://localhost:8080/api/v1"), "/"),
		Timeout:     timeout,
		SessionFile: sessionFile,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
