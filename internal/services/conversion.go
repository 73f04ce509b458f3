package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"spotilink/internal/cache"
	"spotilink/internal/models"
)

// ErrMissingInput means neither url nor uri was supplied
var ErrMissingInput = errors.New("missing url")

// UpstreamResolver is the aggregator boundary the pipeline talks to
type UpstreamResolver interface {
	Resolve(ctx context.Context, targetURL string) (*Resolution, error)
}

// Trace records what the pipeline did for one conversion. It feeds the
// debug trailer and never influences the payload itself.
type Trace struct {
	EffectiveURL   string `json:"effective_url,omitempty"`
	FastPath       string `json:"fast_path,omitempty"`
	CacheKey       string `json:"cache_key,omitempty"`
	CacheKeySource string `json:"cache_key_source,omitempty"`
	CacheRead      string `json:"cache_read,omitempty"`
	CacheWrite     string `json:"cache_write,omitempty"`
}

// ConversionService orchestrates the resolution pipeline: fast paths,
// cache read, upstream resolution, best-effort cache write.
type ConversionService struct {
	cache    cache.Cache
	resolver UpstreamResolver
}

// NewConversionService creates the pipeline with its collaborators
func NewConversionService(c cache.Cache, resolver UpstreamResolver) *ConversionService {
	return &ConversionService{
		cache:    c,
		resolver: resolver,
	}
}

// CacheKey derives the deterministic lookup key for a canonical input.
// Hashing bounds key length and keeps raw input out of the cache
// service's key space; a collision would silently serve another
// song's data, so a cryptographic digest is required.
func CacheKey(rawURI, effectiveURL string) (key, source string) {
	var preimage string
	if rawURI != "" {
		preimage = "uri:" + strings.TrimSpace(rawURI)
		source = "uri"
	} else {
		preimage = "url:" + strings.TrimSpace(effectiveURL)
		source = "url"
	}

	digest := sha256.Sum256([]byte(preimage))
	return hex.EncodeToString(digest[:]), source
}

// Convert resolves one validated request to a full conversion result
func (s *ConversionService) Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, *Trace, error) {
	trace := &Trace{}

	// URI mode is purely structural: no cache, no upstream
	if req.RawURI != "" {
		target, err := ParseSpotifyURI(req.RawURI)
		if err != nil {
			return nil, trace, err
		}
		trace.FastPath = "uri"
		return models.NewConversionResult(target, "", req.RawURI, nil), trace, nil
	}

	if req.RawURL == "" {
		return nil, trace, ErrMissingInput
	}

	effective := NormalizeURL(req.RawURL)
	trace.EffectiveURL = effective

	// Direct Spotify URLs need no network call unless YouTube data was
	// asked for; that always requires the aggregator.
	if !req.IncludeYoutube {
		if target, ok := ParseSpotifyURL(effective); ok {
			trace.FastPath = "spotify_url"
			return models.NewConversionResult(target, req.RawURL, "", nil), trace, nil
		}
	}

	key, source := CacheKey("", effective)
	trace.CacheKey = key
	trace.CacheKeySource = source

	if cached := s.readCache(ctx, key, trace); cached != nil {
		cached.CacheHit = true
		cached.InputURL = req.RawURL
		cached.InputURI = ""
		return cached, trace, nil
	}

	resolution, err := s.resolver.Resolve(ctx, effective)
	if err != nil {
		return nil, trace, err
	}

	result := models.NewConversionResult(resolution.Target, req.RawURL, "", resolution.YoutubeURL)
	s.writeCache(ctx, key, result, trace)

	return result, trace, nil
}

// readCache treats every failure mode as a miss: errors, a missing
// key and an undecodable body all read the same.
func (s *ConversionService) readCache(ctx context.Context, key string, trace *Trace) *models.ConversionResult {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Cache read failed", "key", key, "error", err)
		trace.CacheRead = "error"
		return nil
	}
	if data == nil {
		trace.CacheRead = "miss"
		return nil
	}

	var cached models.ConversionResult
	if err := json.Unmarshal(data, &cached); err != nil {
		slog.Warn("Cache entry undecodable, treating as miss", "key", key, "error", err)
		trace.CacheRead = "error"
		return nil
	}

	trace.CacheRead = "hit"
	return &cached
}

// writeCache offers a fresh result to the cache. The outcome is logged
// and traced but can never alter the response.
func (s *ConversionService) writeCache(ctx context.Context, key string, result *models.ConversionResult, trace *Trace) {
	payload, err := json.Marshal(result)
	if err != nil {
		slog.Error("Failed to encode result for cache", "key", key, "error", err)
		trace.CacheWrite = "error"
		return
	}

	if err := s.cache.Set(ctx, key, payload, 0); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
		trace.CacheWrite = "error"
		return
	}

	trace.CacheWrite = "ok"
}
