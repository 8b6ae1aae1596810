package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "bookxmp.yaml"
	EnvFileName    = ".env"
	EnvPrefix      = "BOOKXMP_"
)

type CatalogConfig struct {
	DSN            string `yaml:"dsn,omitempty"`
	ConnectTimeout string `yaml:"connect_timeout,omitempty"`
	MaxConns       int    `yaml:"max_conns,omitempty"`
	RetryAttempts  *int   `yaml:"retry_attempts,omitempty"`
}

type Config struct {
	// Library is the directory holding the sidecar documents.
	Library string `yaml:"library"`
	// Language is the xml:lang written with titles when none is given.
	Language string        `yaml:"language,omitempty"`
	Producer string        `yaml:"producer,omitempty"`
	Catalog  CatalogConfig `yaml:"catalog,omitempty"`
}

// Default returns the configuration used when no bookxmp.yaml exists.
func Default() *Config {
	return &Config{
		Library:  ".",
		Language: "x-default",
		Producer: "bookxmp",
	}
}

// Load reads bookxmp.yaml from dir on top of Default.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the config file at path on top of Default.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", bookxmp.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from the .env file in dir into the
// process environment. Variables already set win. A missing file is not an error.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %w", bookxmp.ErrInvalidConfig, path, err)
	}
	return nil
}

// ApplyEnv overrides fields from BOOKXMP_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LIBRARY"); ok {
		c.Library = v
	}
	if v, ok := lookup(EnvPrefix + "LANGUAGE"); ok {
		c.Language = v
	}
	if v, ok := lookup(EnvPrefix + "PRODUCER"); ok {
		c.Producer = v
	}
	if v, ok := lookup(EnvPrefix + "CATALOG_DSN"); ok {
		c.Catalog.DSN = v
	}
	if v, ok := lookup(EnvPrefix + "CATALOG_CONNECT_TIMEOUT"); ok {
		c.Catalog.ConnectTimeout = v
	}
	if v, ok := lookup(EnvPrefix + "CATALOG_RETRY_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sCATALOG_RETRY_ATTEMPTS=%q is not a number", bookxmp.ErrInvalidConfig, EnvPrefix, v)
		}
		c.Catalog.RetryAttempts = &n
	}
	return nil
}

// Validate checks field formats.
func (c *Config) Validate() error {
	if c.Library == "" {
		return fmt.Errorf("%w: library must not be empty", bookxmp.ErrInvalidConfig)
	}
	if _, err := c.Catalog.Timeout(); err != nil {
		return err
	}
	if c.Catalog.MaxConns < 0 {
		return fmt.Errorf("%w: catalog.max_conns must not be negative", bookxmp.ErrInvalidConfig)
	}
	if c.Catalog.RetryAttempts != nil && *c.Catalog.RetryAttempts < -1 {
		return fmt.Errorf("%w: catalog.retry_attempts must be -1 (unlimited) or more", bookxmp.ErrInvalidConfig)
	}
	return nil
}

// Timeout returns the connect timeout, or the default when unset.
func (c CatalogConfig) Timeout() (time.Duration, error) {
	if c.ConnectTimeout == "" {
		return bookxmp.DefaultCatalogConnectTimeout, nil
	}
	d, err := time.ParseDuration(c.ConnectTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: catalog.connect_timeout %q", bookxmp.ErrInvalidConfig, c.ConnectTimeout)
	}
	return d, nil
}

// Attempts returns the retry attempt budget, or the default when unset.
func (c CatalogConfig) Attempts() int {
	if c.RetryAttempts == nil {
		return bookxmp.DefaultRetryMaxAttempts
	}
	return *c.RetryAttempts
}

// Resolve loads the effective configuration for dir: the .env file, then
// bookxmp.yaml (or path when non-empty), then BOOKXMP_* variables.
// A missing config file yields Default.
func Resolve(dir, path string) (*Config, error) {
	if err := LoadEnvFile(dir); err != nil {
		return nil, err
	}

	var cfg *Config
	var err error
	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, err = Load(dir)
		if errors.Is(err, ErrConfigNotFound) {
			cfg, err = Default(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
