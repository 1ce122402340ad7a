package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StrategyClaims = "claims"
	StrategySPARQL = "sparql"
)

// Config is the resolved runtime configuration. It is built once in main and
// passed to constructors; nothing reads configuration from globals afterwards.
type Config struct {
	APIURL       string
	SPARQLURL    string
	UserAgent    string
	Language     string
	Strategy     string
	SPARQLStrict bool

	HTTPTimeout     time.Duration
	HTTPMaxAttempts int

	Port        string
	DatabaseURL string

	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("WIKIDATA_API_URL", "https://www.wikidata.org/w/api.php")
	v.SetDefault("WIKIDATA_SPARQL_URL", "https://query.wikidata.org/sparql")
	v.SetDefault("USER_AGENT", "fromtodk/1.0 (https://github.com/fnielsen/fromtodk)")
	v.SetDefault("SEARCH_LANGUAGE", "da")
	v.SetDefault("COORDINATE_STRATEGY", StrategyClaims)
	v.SetDefault("SPARQL_STRICT", false)
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("HTTP_MAX_ATTEMPTS", 3)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// Load reads an optional .env file, then environment variables, on top of defaults.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return FromViper(viper.New())
}

// FromViper resolves a Config from v after applying defaults and env binding.
// Tests call it with a viper instance populated through Set.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		APIURL:          strings.TrimSpace(v.GetString("WIKIDATA_API_URL")),
		SPARQLURL:       strings.TrimSpace(v.GetString("WIKIDATA_SPARQL_URL")),
		UserAgent:       v.GetString("USER_AGENT"),
		Language:        strings.TrimSpace(v.GetString("SEARCH_LANGUAGE")),
		Strategy:        strings.ToLower(strings.TrimSpace(v.GetString("COORDINATE_STRATEGY"))),
		SPARQLStrict:    v.GetBool("SPARQL_STRICT"),
		HTTPTimeout:     v.GetDuration("HTTP_TIMEOUT"),
		HTTPMaxAttempts: v.GetInt("HTTP_MAX_ATTEMPTS"),
		Port:            strings.TrimSpace(v.GetString("PORT")),
		DatabaseURL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:       strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate checks the invariants constructors rely on.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("WIKIDATA_API_URL must not be empty")
	}
	if c.Strategy != StrategyClaims && c.Strategy != StrategySPARQL {
		return fmt.Errorf("unknown COORDINATE_STRATEGY %q (want %q or %q)", c.Strategy, StrategyClaims, StrategySPARQL)
	}
	if c.Strategy == StrategySPARQL && c.SPARQLURL == "" {
		return errors.New("WIKIDATA_SPARQL_URL must not be empty for the sparql strategy")
	}
	if c.Language == "" {
		return errors.New("SEARCH_LANGUAGE must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.HTTPMaxAttempts < 1 {
		return fmt.Errorf("HTTP_MAX_ATTEMPTS must be at least 1, got %d", c.HTTPMaxAttempts)
	}
	return nil
}
