package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spotilink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOdesli(t *testing.T, handler http.HandlerFunc) (*OdesliService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOdesliService(server.URL, 5*time.Second), server
}

func TestOdesliService_Resolve_Success(t *testing.T) {
	var gotURL string
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{
			"linksByPlatform": {
				"spotify": {"url": "https://open.spotify.com/track/` + sampleID + `"},
				"youtube": {"url": "https://www.youtube.com/watch?v=JGwWNGJdvx8"}
			}
		}`))
	})

	resolution, err := svc.Resolve(context.Background(), "https://music.apple.com/us/song/_/1193701359")
	require.NoError(t, err)

	assert.Equal(t, "https://music.apple.com/us/song/_/1193701359", gotURL)
	assert.Equal(t, models.PlatformTrack, resolution.Target.Platform)
	assert.Equal(t, sampleID, resolution.Target.ID)
	require.NotNil(t, resolution.YoutubeURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=JGwWNGJdvx8", *resolution.YoutubeURL)
}

func TestOdesliService_Resolve_NativeURIPreferred(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"linksByPlatform": {
				"spotify": {
					"url": "https://open.spotify.com/track/not-parseable",
					"nativeAppUriDesktop": "spotify:track:` + sampleID + `"
				}
			}
		}`))
	})

	resolution, err := svc.Resolve(context.Background(), "https://example.com/song")
	require.NoError(t, err)
	assert.Equal(t, sampleID, resolution.Target.ID)
}

func TestOdesliService_Resolve_MobileURIFallback(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"linksByPlatform": {
				"spotify": {
					"url": "https://open.spotify.com/track/not-parseable",
					"nativeAppUriMobile": "spotify:album:` + sampleID + `"
				}
			}
		}`))
	})

	resolution, err := svc.Resolve(context.Background(), "https://example.com/song")
	require.NoError(t, err)
	assert.Equal(t, models.PlatformAlbum, resolution.Target.Platform)
}

func TestOdesliService_Resolve_YoutubeMusicFallback(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"linksByPlatform": {
				"spotify": {"url": "https://open.spotify.com/track/` + sampleID + `"},
				"youtubeMusic": {"url": "https://music.youtube.com/watch?v=JGwWNGJdvx8"}
			}
		}`))
	})

	resolution, err := svc.Resolve(context.Background(), "https://example.com/song")
	require.NoError(t, err)
	require.NotNil(t, resolution.YoutubeURL)
	assert.Equal(t, "https://music.youtube.com/watch?v=JGwWNGJdvx8", *resolution.YoutubeURL)
}

func TestOdesliService_Resolve_NoYoutube(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"linksByPlatform": {
				"spotify": {"url": "https://open.spotify.com/track/` + sampleID + `"}
			}
		}`))
	})

	resolution, err := svc.Resolve(context.Background(), "https://example.com/song")
	require.NoError(t, err)
	assert.Nil(t, resolution.YoutubeURL)
}

func TestOdesliService_Resolve_RateLimited(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := svc.Resolve(context.Background(), "https://example.com/song")

	var rateLimited *RateLimitedError
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, "30", rateLimited.RetryAfter)
}

func TestOdesliService_Resolve_UpstreamError(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream down"))
	})

	_, err := svc.Resolve(context.Background(), "https://example.com/song")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	assert.Equal(t, "upstream down", upstream.Body)
}

func TestOdesliService_Resolve_MalformedBody(t *testing.T) {
	long := strings.Repeat("x", 1000)
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(long))
	})

	_, err := svc.Resolve(context.Background(), "https://example.com/song")

	var malformed *UpstreamMalformedError
	require.ErrorAs(t, err, &malformed)
	assert.LessOrEqual(t, len(malformed.Body), 300)
}

func TestOdesliService_Resolve_NoSpotifyEntry(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"linksByPlatform": {"tidal": {"url": "https://tidal.com/track/1"}}}`))
	})

	_, err := svc.Resolve(context.Background(), "https://example.com/song")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestOdesliService_Resolve_UnparseableSpotifyEntry(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"linksByPlatform": {"spotify": {"url": "https://open.spotify.com/track/short"}}}`))
	})

	_, err := svc.Resolve(context.Background(), "https://example.com/song")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
}

func TestOdesliService_Resolve_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	svc := NewOdesliService(server.URL, 5*time.Second)
	server.Close() // connection refused from here on

	_, err := svc.Resolve(context.Background(), "https://example.com/song")

	var fetchFailed *FetchFailedError
	assert.ErrorAs(t, err, &fetchFailed)
}

func TestOdesliService_Raw(t *testing.T) {
	svc, _ := newTestOdesli(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("url"), "music.apple.com")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("anything"))
	})

	status, body, err := svc.Raw(context.Background(), appleDiagURL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "anything", string(body))
}

const appleDiagURL = "https://music.apple.com/us/album/shape-of-you/1193701079?i=1193701359"
