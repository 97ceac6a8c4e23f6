package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Supported values for AUTH_MODE.
const (
	AuthModeAPIKey   = "apikey"
	AuthModeAppwrite = "appwrite"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port              int           `envconfig:"PORT" default:"8080"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	Version           string        `envconfig:"VERSION" default:"dev"`
	AuthMode          string        `envconfig:"AUTH_MODE" default:"apikey"`
	DatabaseURL       string        `envconfig:"DATABASE_URL" default:""`
	BcryptCost        int           `envconfig:"BCRYPT_COST" default:"12"`
	AdminLabel        string        `envconfig:"ADMIN_LABEL" default:"admin"`
	AppwriteEndpoint  string        `envconfig:"APPWRITE_ENDPOINT" required:"true"`
	AppwriteProjectID string        `envconfig:"APPWRITE_PROJECT_ID" required:"true"`
	AppwriteAPIKey    string        `envconfig:"APPWRITE_API_KEY" required:"true"`
	DirectoryTimeout  time.Duration `envconfig:"DIRECTORY_TIMEOUT" default:"10s"`
	LookupConcurrency int           `envconfig:"LOOKUP_CONCURRENCY" default:"1"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.AuthMode {
	case AuthModeAPIKey:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when AUTH_MODE is apikey")
		}
	case AuthModeAppwrite:
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeAPIKey, AuthModeAppwrite, c.AuthMode)
	}

	if c.LookupConcurrency < 1 {
		return fmt.Errorf("LOOKUP_CONCURRENCY must be at least 1, got %d", c.LookupConcurrency)
	}

	return nil
}
