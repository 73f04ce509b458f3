package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"spotilink/internal/models"
)

// Resolution is what the aggregator yields for one input URL
type Resolution struct {
	Target     models.CanonicalTarget
	YoutubeURL *string
}

// odesliResponse mirrors the aggregator's per-platform link map
type odesliResponse struct {
	LinksByPlatform map[string]odesliEntry `json:"linksByPlatform"`
}

type odesliEntry struct {
	URL                 string `json:"url"`
	NativeAppURIDesktop string `json:"nativeAppUriDesktop"`
	NativeAppURIMobile  string `json:"nativeAppUriMobile"`
}

const (
	odesliUserAgent = "Mozilla/5.0 (OdesliConvert/1.0)"

	// cap on upstream body echoed back in malformed-body errors
	malformedBodyLimit = 300
)

// OdesliService resolves streaming links through the Odesli aggregator
type OdesliService struct {
	client *resty.Client
	apiURL string
}

// NewOdesliService creates an aggregator client. One attempt per
// request; a failed call fails the whole conversion, retry policy
// belongs to the caller.
func NewOdesliService(apiURL string, timeout time.Duration) *OdesliService {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", odesliUserAgent)

	return &OdesliService{
		client: client,
		apiURL: apiURL,
	}
}

// Resolve looks up the Spotify and YouTube equivalents of a URL
func (s *OdesliService) Resolve(ctx context.Context, targetURL string) (*Resolution, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("url", targetURL).
		Get(s.apiURL)

	if err != nil {
		return nil, &FetchFailedError{Err: err}
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, &RateLimitedError{RetryAfter: resp.Header().Get("Retry-After")}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &UpstreamError{
			Status: resp.StatusCode(),
			Body:   string(resp.Body()),
		}
	}

	var decoded odesliResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, &UpstreamMalformedError{
			Message: err.Error(),
			Body:    truncate(string(resp.Body()), malformedBodyLimit),
		}
	}

	spotify, ok := decoded.LinksByPlatform["spotify"]
	if !ok {
		return nil, ErrNoMatch
	}

	target, err := s.extractTarget(spotify)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Target:     target,
		YoutubeURL: extractYoutube(decoded.LinksByPlatform),
	}, nil
}

// Raw proxies one aggregator call, passing status and body through
// untouched. Only the diagnostic endpoint uses this.
func (s *OdesliService) Raw(ctx context.Context, targetURL string) (int, []byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("url", targetURL).
		Get(s.apiURL)

	if err != nil {
		return 0, nil, &FetchFailedError{Err: err}
	}

	return resp.StatusCode(), resp.Body(), nil
}

// extractTarget derives the canonical target from the spotify entry.
// The native-app URI fields are preferred; absent those, the entry's
// web URL is parsed the same way direct Spotify links are.
func (s *OdesliService) extractTarget(entry odesliEntry) (models.CanonicalTarget, error) {
	for _, raw := range []string{entry.NativeAppURIDesktop, entry.NativeAppURIMobile} {
		if raw == "" {
			continue
		}
		target, err := ParseSpotifyURI(raw)
		if err == nil {
			return target, nil
		}
		slog.Warn("Ignoring unparseable native app URI from aggregator", "uri", raw)
	}

	if target, ok := ParseSpotifyURL(entry.URL); ok {
		return target, nil
	}

	return models.CanonicalTarget{}, &UpstreamError{
		Status: http.StatusInternalServerError,
		Body:   "cannot parse spotify url: " + entry.URL,
	}
}

func extractYoutube(links map[string]odesliEntry) *string {
	for _, platform := range []string{"youtube", "youtubeMusic"} {
		if entry, ok := links[platform]; ok && entry.URL != "" {
			u := entry.URL
			return &u
		}
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
