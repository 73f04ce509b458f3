package handlers

import (
	"net/url"
	"strings"

	"spotilink/internal/models"
	"spotilink/internal/services"
)

// youtubeOverrideKeys are checked in order; the first key present wins
var youtubeOverrideKeys = []string{"include_youtube", "youtube", "yt"}

// ParseConversionRequest validates raw query parameters into a typed
// request. This is the only place unrecognized shapes are defaulted or
// rejected; everything downstream trusts the struct.
func ParseConversionRequest(query url.Values) (models.ConversionRequest, error) {
	req := models.ConversionRequest{
		RawURL: strings.TrimSpace(query.Get("url")),
		RawURI: strings.TrimSpace(query.Get("uri")),
	}

	if req.RawURL == "" && req.RawURI == "" {
		return req, services.ErrMissingInput
	}

	req.Mode = models.ParseResponseMode(query.Get("mode"))
	if !query.Has("mode") && boolParam(query, "lite") {
		// legacy alias, honored only when mode was not explicit
		req.Mode = models.ModeLinks
	}

	req.IncludeYoutube = req.Mode == models.ModeFull
	for _, key := range youtubeOverrideKeys {
		if query.Has(key) {
			req.IncludeYoutube = boolParam(query, key)
			break
		}
	}

	req.Debug = boolParam(query, "debug")

	return req, nil
}

// boolParam reads a query flag. A bare key counts as true; anything
// not recognizably false counts as true as well.
func boolParam(query url.Values, key string) bool {
	if !query.Has(key) {
		return false
	}
	switch strings.ToLower(query.Get(key)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
