package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the configuration against the requirements of its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		add("SERVER_PORT", "must be a port number")
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.Host == "" {
			add("DB_HOST", "is required")
		}
		if cfg.Database.Name == "" {
			add("DB_NAME", "is required")
		}
		if cfg.Database.User == "" {
			add("DB_USER", "is required")
		}
		if cfg.Database.Password == "" && (cfg.Environment == Production || cfg.Environment == CI) {
			add("DB_PASSWORD", "is required in "+string(cfg.Environment))
		}
	case "sqlite":
		if cfg.Database.SQLitePath == "" {
			add("DB_SQLITE_PATH", "is required")
		}
		if cfg.IsProduction() {
			add("DB_DRIVER", "sqlite is not allowed in production")
		}
	default:
		add("DB_DRIVER", "must be postgres or sqlite")
	}

	switch cfg.Storage.Driver {
	case "local":
		if cfg.Storage.StaticPath == "" {
			add("STATIC_PATH", "is required")
		}
	case "s3":
		if cfg.Storage.S3Bucket == "" {
			add("S3_BUCKET_NAME", "is required for the s3 driver")
		}
	default:
		add("STORAGE_DRIVER", "must be local or s3")
	}
	if cfg.Storage.MaxUploadMB <= 0 {
		add("STATIC_MAX_UPLOAD_MB", "must be positive")
	}

	if cfg.Environment == CI && cfg.Auth.JWTSecret == "" {
		add("AUTH_JWT_SECRET", "is required in ci")
	}

	switch cfg.Log.Format {
	case "json", "console":
	default:
		add("LOG_FORMAT", "must be json or console")
	}

	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		add("APP_TIMEZONE", err.Error())
	}
	switch cfg.App.DefaultLang {
	case "ru", "en":
	default:
		add("APP_DEFAULT_LANG", "must be ru or en")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
