package cache

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// httpCache implements Cache against the remote odesli-cache service:
// GET/PUT <base>/odesli-cache?key=<hex> with a shared-secret header.
type httpCache struct {
	client *resty.Client
	secret string
}

const (
	cachePath           = "/odesli-cache"
	authHeader          = "X-Auth-Key"
	defaultCacheTimeout = 10 * time.Second
)

// NewHTTPCache creates a cache client for the remote cache service
func NewHTTPCache(baseURL, secret string, timeout time.Duration) Cache {
	if timeout <= 0 {
		timeout = defaultCacheTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpCache{
		client: client,
		secret: secret,
	}
}

// Get retrieves a stored value. Any non-200 status, including 404 for
// unknown keys, reads as a miss rather than an error.
func (c *httpCache) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(authHeader, c.secret).
		SetQueryParam("key", key).
		Get(cachePath)

	if err != nil {
		return nil, &CacheError{
			Operation: "get",
			Key:       key,
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, nil
	}

	return resp.Body(), nil
}

// Set upserts a value. Expiry is owned by the cache service; the
// expiration argument is ignored here.
func (c *httpCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(authHeader, c.secret).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", key).
		SetBody(value).
		Put(cachePath)

	if err != nil {
		return &CacheError{
			Operation: "set",
			Key:       key,
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return &CacheError{
			Operation: "set",
			Key:       key,
			Err:       fmt.Errorf("cache service returned status %d", resp.StatusCode()),
		}
	}

	return nil
}

// Close is a no-op; resty holds no persistent connection state to tear down
func (c *httpCache) Close() error {
	return nil
}

// Health probes the cache service with a well-known key
func (c *httpCache) Health(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(authHeader, c.secret).
		SetQueryParam("key", "health").
		Get(cachePath)

	if err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("cache service returned status %d", resp.StatusCode())
	}

	return nil
}
