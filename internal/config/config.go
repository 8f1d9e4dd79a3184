// Package config loads nerocart settings from a YAML file.
//
// Every field has a default, so an absent file is valid. Unknown fields
// are rejected so typos ("curency:") fail loudly instead of silently
// falling back to the default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nerocart/internal/cart"
	"github.com/roach88/nerocart/internal/money"
)

// Storage backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// DefaultQuotaBytes matches the usual browser localStorage limit.
const DefaultQuotaBytes = 5 << 20

// Config is the full configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Shop    Shop    `yaml:"shop"`
	Order   Order   `yaml:"order"`
}

// Storage selects and configures the cart backend.
type Storage struct {
	// Backend is one of memory, sqlite, redis.
	Backend string `yaml:"backend"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisTTL      time.Duration `yaml:"redis_ttl"`

	// Key is the namespace key the cart is stored under.
	Key string `yaml:"key"`

	// QuotaBytes caps the stored payload size. 0 disables the cap.
	QuotaBytes int `yaml:"quota_bytes"`
}

// Shop describes the storefront the orders are addressed to.
type Shop struct {
	// Name is the recipient label in order greetings.
	Name string `yaml:"name"`

	// Phone is the messaging recipient, country code without "+".
	Phone string `yaml:"phone"`

	Currency string `yaml:"currency"`
	Locale   string `yaml:"locale"`

	// TrailingFields are appended after the total of a cart order.
	// nil means the defaults; an explicit empty list means none.
	TrailingFields []string `yaml:"trailing_fields"`

	// Catalog is an optional CUE product catalog file.
	Catalog string `yaml:"catalog"`
}

// Order configures order composition.
type Order struct {
	// IncludeReference appends "Ref: <id>" to cart order messages.
	IncludeReference bool `yaml:"include_reference"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend:    BackendSQLite,
			Path:       "nerocart.db",
			Key:        cart.DefaultKey,
			QuotaBytes: DefaultQuotaBytes,
		},
		Shop: Shop{
			Name:     "Nero's Phone Accessories",
			Phone:    "2348165877866",
			Currency: money.DefaultSymbol,
			Locale:   "en",
		},
	}
}

// Load reads a YAML config file over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks field combinations.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("storage.backend %q: must be one of memory, sqlite, redis", c.Storage.Backend)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage.quota_bytes must not be negative")
	}
	if c.Shop.Name == "" {
		return fmt.Errorf("shop.name is required")
	}
	if _, err := c.Formatter(); err != nil {
		return fmt.Errorf("shop.locale: %w", err)
	}
	return nil
}

// Formatter builds the price formatter for the shop's currency and locale.
func (c Config) Formatter() (money.Formatter, error) {
	return money.NewFormatter(c.Shop.Currency, c.Shop.Locale)
}

// CartOptions converts the config into cart.Store options.
func (c Config) CartOptions() ([]cart.Option, error) {
	f, err := c.Formatter()
	if err != nil {
		return nil, err
	}
	opts := []cart.Option{
		cart.WithKey(c.Storage.Key),
		cart.WithFormatter(f),
	}
	if c.Shop.TrailingFields != nil {
		opts = append(opts, cart.WithTrailingFields(c.Shop.TrailingFields))
	}
	return opts, nil
}
