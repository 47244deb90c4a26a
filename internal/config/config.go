// Package config loads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	ErrAPIURLNotSet       = errors.New("environment variable API_URL must be set")
	ErrUnsupportedDriver  = errors.New("DATABASE_DRIVER must be one of 'sqlite', 'postgres'")
	ErrInvalidCurrencyISO = errors.New("CURRENCY must be an ISO 4217 currency code")
)

// Config holds all configuration values. Values are read from the
// environment, an optional .env file is loaded into the environment first.
type Config struct {
	APIURL           string `env:"API_URL"`
	Port             string `env:"PORT,default=8080"`
	GinMode          string `env:"GIN_MODE"`
	LogFormat        string `env:"LOG_FORMAT"`
	DatabaseDriver   string `env:"DATABASE_DRIVER,default=sqlite"`
	DatabaseDSN      string `env:"DATABASE_DSN,default=data/amas.db"`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS"`
	EnablePprof      bool   `env:"ENABLE_PPROF,default=false"`
	Currency         string `env:"CURRENCY,default=USD"`
}

// Load reads the configuration. If path is not empty, the file is
// loaded with godotenv before the environment is parsed. Variables already
// set in the environment take precedence over the file.
func Load(path string) (Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			log.Debug().Str("path", path).Msg("loading environment file")
			if err := godotenv.Load(path); err != nil {
				return Config{}, fmt.Errorf("failed to load configuration file %s: %w", path, err)
			}
		}
	}

	var c Config
	if _, err := env.UnmarshalFromEnviron(&c); err != nil {
		return Config{}, fmt.Errorf("failed to map environment variables to configuration: %w", err)
	}

	if c.DatabaseDriver != "sqlite" && c.DatabaseDriver != "postgres" {
		return Config{}, fmt.Errorf("%w, got '%s'", ErrUnsupportedDriver, c.DatabaseDriver)
	}

	if len(c.Currency) != 3 {
		return Config{}, fmt.Errorf("%w, got '%s'", ErrInvalidCurrencyISO, c.Currency)
	}

	return c, nil
}

// URL parses the API_URL. The server needs it to build links for resources.
func (c Config) URL() (*url.URL, error) {
	if c.APIURL == "" {
		return nil, ErrAPIURLNotSet
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return nil, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	return u, nil
}

// HumanLogs reports if logs should be written in human readable form
// instead of JSON. The default follows the gin mode: human readable for
// debug, JSON for release.
func (c Config) HumanLogs() bool {
	if c.LogFormat != "" {
		return c.LogFormat == "human"
	}

	return c.GinMode == "debug"
}
