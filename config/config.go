package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Log      LogConfig
	App      AppConfig
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// DatabaseConfig configures the relational store
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" env-default:"postgres"`
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            string        `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" env-default:"portal"`
	SSLMode         string        `env:"DB_SSL_MODE" env-default:"disable"`
	SQLitePath      string        `env:"DB_SQLITE_PATH" env-default:"portal.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the postgres connection URL used by database/sql tools
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// RedisConfig configures the optional redis used for upload rate limiting
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// Enabled reports whether a redis server is configured
func (c RedisConfig) Enabled() bool {
	return c.URL != "" || c.Host != ""
}

// AuthConfig configures bearer token validation
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

// StorageConfig configures where uploaded files are kept
type StorageConfig struct {
	Driver           string        `env:"STORAGE_DRIVER" env-default:"local"`
	StaticPath       string        `env:"STATIC_PATH" env-default:"static"`
	MaxUploadMB      int           `env:"STATIC_MAX_UPLOAD_MB" env-default:"50"`
	WriteWorkers     int           `env:"STATIC_WRITE_WORKERS" env-default:"4"`
	WriteQueue       int           `env:"STATIC_WRITE_QUEUE" env-default:"64"`
	UploadRateLimit  int           `env:"STATIC_UPLOAD_RATE_LIMIT" env-default:"30"`
	UploadRateWindow time.Duration `env:"STATIC_UPLOAD_RATE_WINDOW" env-default:"1m"`
	S3Bucket         string        `env:"S3_BUCKET_NAME"`
	S3Prefix         string        `env:"S3_PREFIX"`
	S3Endpoint       string        `env:"S3_ENDPOINT"`
	AWSRegion        string        `env:"AWS_REGION" env-default:"us-east-1"`
}

// MaxUploadBytes is the upload ceiling in bytes
func (c StorageConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1000 * 1000
}

// LogConfig configures zerolog
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// AppConfig holds product settings
type AppConfig struct {
	WebURL      string `env:"WEB_URL" env-default:"http://localhost:3000"`
	Timezone    string `env:"APP_TIMEZONE" env-default:"UTC"`
	DefaultLang string `env:"APP_DEFAULT_LANG" env-default:"ru"`
}

// Location resolves the configured time zone
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

const defaultDBUser = "postgres"

// LoadConfig reads .env (outside CI and production), then environment
// variables, then docker secrets for credentials left empty.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{Environment: env}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch env {
	case CI:
		loadCISecrets(cfg)
	case Development, Test, Production:
		loadDockerSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	cfg.Database.User = firstNonEmpty(cfg.Database.User, defaultDBUser)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCISecrets takes credentials from GitHub Actions secrets exposed as TEST_* variables
func loadCISecrets(cfg *Config) {
	cfg.Database.Password = firstNonEmpty(cfg.Database.Password, os.Getenv("TEST_DB_PASSWORD"))
	cfg.Auth.JWTSecret = firstNonEmpty(cfg.Auth.JWTSecret, os.Getenv("TEST_JWT_SECRET"))
	cfg.Redis.Password = firstNonEmpty(cfg.Redis.Password, os.Getenv("TEST_REDIS_PASSWORD"))
	cfg.Redis.URL = firstNonEmpty(cfg.Redis.URL, os.Getenv("TEST_REDIS_URL"))
}

// loadDockerSecrets fills empty credentials from files under SECRETS_DIR
func loadDockerSecrets(cfg *Config) {
	cfg.Database.User = firstNonEmpty(cfg.Database.User, readSecret("db_user"))
	cfg.Database.Password = firstNonEmpty(cfg.Database.Password, readSecret("db_password"))
	cfg.Auth.JWTSecret = firstNonEmpty(cfg.Auth.JWTSecret, readSecret("jwt_secret"))
	cfg.Redis.Password = firstNonEmpty(cfg.Redis.Password, readSecret("redis_password"))
	cfg.Redis.URL = firstNonEmpty(cfg.Redis.URL, readSecret("redis_url"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
