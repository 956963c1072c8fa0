// Package config holds the storefront settings: the catalog endpoint and page
// size, the placeholder image and the host options.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the full storefront configuration.
type Config struct {
	// Endpoint is the catalog URL fetched once per product list mount.
	Endpoint string `yaml:"endpoint"`
	// PageSize is the maximum number of products shown.
	PageSize int `yaml:"page_size"`
	// Timeout bounds the catalog request. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`
	// PlaceholderImage is shown for products without images.
	PlaceholderImage string `yaml:"placeholder_image"`
	// Debug enables debug logging, including the per-render list trace.
	Debug bool `yaml:"debug"`

	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`
	// StaticDir holds the wasm bundle and stylesheet served under /static/.
	StaticDir string `yaml:"static_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load builds the configuration from the built-in defaults, then the YAML file
// at path, then the .env file at envFile, then STOREFRONT_* environment variables.
// Empty paths are skipped; a missing .env file is not an error.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Endpoint = getEnv("STOREFRONT_ENDPOINT", c.Endpoint)
	c.PlaceholderImage = getEnv("STOREFRONT_PLACEHOLDER_IMAGE", c.PlaceholderImage)
	c.Addr = getEnv("STOREFRONT_ADDR", c.Addr)
	c.StaticDir = getEnv("STOREFRONT_STATIC_DIR", c.StaticDir)

	var err error
	if c.PageSize, err = getEnvAsInt("STOREFRONT_PAGE_SIZE", c.PageSize); err != nil {
		return err
	}
	if c.Timeout, err = getEnvAsDuration("STOREFRONT_TIMEOUT", c.Timeout); err != nil {
		return err
	}
	if c.Debug, err = getEnvAsBool("STOREFRONT_DEBUG", c.Debug); err != nil {
		return err
	}
	return nil
}

// Validate checks the settings the product list depends on.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("config: endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("config: invalid endpoint: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("config: endpoint %q must be an absolute URL", c.Endpoint)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: page_size must be at least 1, got %d", c.PageSize)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
