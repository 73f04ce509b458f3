package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"spotilink/internal/handlers/render"
	"spotilink/internal/models"
	"spotilink/internal/services"
)

// Cache-Control values: successful conversions are safe to hold at the
// CDN for a day, errors must never be held at all. Rate-limit
// responses in particular would otherwise pin a 429 in front of every
// caller for the cache window.
const (
	successCacheControl = "public, s-maxage=86400, stale-while-revalidate=604800"
	errorCacheControl   = "no-store"
)

// Converter is the pipeline boundary the handler calls into
type Converter interface {
	Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, *services.Trace, error)
}

// RawResolver proxies one aggregator call for the diagnostic endpoint
type RawResolver interface {
	Raw(ctx context.Context, targetURL string) (int, []byte, error)
}

// ConvertHandler handles link-conversion requests
type ConvertHandler struct {
	conversions Converter
	resolver    RawResolver
}

// NewConvertHandler creates a new convert handler
func NewConvertHandler(conversions Converter, resolver RawResolver) *ConvertHandler {
	return &ConvertHandler{
		conversions: conversions,
		resolver:    resolver,
	}
}

// Convert handles GET /api/convert
func (h *ConvertHandler) Convert(c *gin.Context) {
	req, err := ParseConversionRequest(c.Request.URL.Query())
	if err != nil {
		c.Header("Cache-Control", errorCacheControl)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, trace, err := h.conversions.Convert(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, req, err)
		return
	}

	payload := render.Assemble(result, req.Mode, req.IncludeYoutube)
	if req.Debug {
		payload.Debug = &render.DebugInfo{
			Mode:           req.Mode,
			IncludeYoutube: req.IncludeYoutube,
			Trace:          *trace,
		}
	}

	c.Header("Cache-Control", successCacheControl)
	c.JSON(http.StatusOK, payload)
}

// renderError maps pipeline errors onto HTTP statuses and structured
// bodies. Every error response is marked non-cacheable.
func (h *ConvertHandler) renderError(c *gin.Context, req models.ConversionRequest, err error) {
	c.Header("Cache-Control", errorCacheControl)

	var rateLimited *services.RateLimitedError
	var upstream *services.UpstreamError
	var malformed *services.UpstreamMalformedError
	var fetchFailed *services.FetchFailedError

	switch {
	case errors.Is(err, services.ErrInvalidURI):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uri format"})

	case errors.Is(err, services.ErrMissingInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing url"})

	case errors.Is(err, services.ErrNoMatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "no spotify match"})

	case errors.As(err, &rateLimited):
		if rateLimited.RetryAfter != "" {
			c.Header("Retry-After", rateLimited.RetryAfter)
		}
		var retryAfter any
		if rateLimited.RetryAfter != "" {
			retryAfter = rateLimited.RetryAfter
		}
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "odesli rate limited",
			"retry_after": retryAfter,
		})

	case errors.As(err, &malformed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "odesli response malformed",
			"message": malformed.Message,
			"body":    malformed.Body,
		})

	case errors.As(err, &upstream):
		c.JSON(upstream.Status, gin.H{
			"error": err.Error(),
			"body":  upstream.Body,
		})

	case errors.As(err, &fetchFailed):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "fetch failed",
			"message": fetchFailed.Err.Error(),
		})

	default:
		slog.Error("Conversion failed", "url", req.RawURL, "uri", req.RawURI, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// appleTestURL is the fixed query the diagnostic endpoint proxies
const appleTestURL = "https://music.apple.com/us/album/shape-of-you/1193701079?i=1193701359"

// Test handles GET /api/test: one hard-coded aggregator round trip,
// status and body passed through untouched.
func (h *ConvertHandler) Test(c *gin.Context) {
	status, body, err := h.resolver.Raw(c.Request.Context(), appleTestURL)
	if err != nil {
		c.Header("Cache-Control", errorCacheControl)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch failed", "message": err.Error()})
		return
	}

	c.Data(status, "application/json", body)
}
