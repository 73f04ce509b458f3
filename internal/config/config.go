package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// CacheBackend selects which remote cache implementation is wired in
type CacheBackend string

const (
	CacheBackendHTTP   CacheBackend = "http"
	CacheBackendValkey CacheBackend = "valkey"
	CacheBackendNone   CacheBackend = "none"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// Upstream link aggregator
	OdesliAPIURL string `envconfig:"ODESLI_API_URL" default:"https://song.link/api/links"`

	// Remote cache service
	CacheBackend CacheBackend `envconfig:"CACHE_BACKEND" default:"http"`
	CacheBaseURL string       `envconfig:"CACHE_BASE_URL"`
	CacheSecret  string       `envconfig:"CACHE_SECRET"`
	ValkeyURL    string       `envconfig:"VALKEY_URL"`

	// Outbound call timeout, applied to the aggregator and cache clients
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"8s"`

	// Comma-separated exact origins; *.myshopify.com is always allowed
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"https://spotilink.app,http://localhost:3000"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	switch cfg.CacheBackend {
	case CacheBackendHTTP:
		if cfg.CacheBaseURL == "" {
			return nil, fmt.Errorf("CACHE_BASE_URL is required when CACHE_BACKEND=http")
		}
	case CacheBackendValkey:
		if cfg.ValkeyURL == "" {
			return nil, fmt.Errorf("VALKEY_URL is required when CACHE_BACKEND=valkey")
		}
	case CacheBackendNone:
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.CacheBackend)
	}

	return &cfg, nil
}

// OriginAllowed reports whether a request Origin may be echoed back.
// The allow-list is exact origins plus any *.myshopify.com storefront.
func (c *Config) OriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}

	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.HasSuffix(host, ".myshopify.com")
}
