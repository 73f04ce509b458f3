package services

import (
	"net/url"
	"strings"

	"spotilink/internal/models"
)

// ParseSpotifyURI validates a spotify:<type>:<id> URI and returns its
// canonical target. The answer is purely structural; no network call
// is ever needed for a well-formed URI.
func ParseSpotifyURI(raw string) (models.CanonicalTarget, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 || parts[0] != "spotify" {
		return models.CanonicalTarget{}, ErrInvalidURI
	}

	platform, ok := models.ParsePlatform(parts[1])
	if !ok {
		return models.CanonicalTarget{}, ErrInvalidURI
	}
	if !models.ValidID(parts[2]) {
		return models.CanonicalTarget{}, ErrInvalidURI
	}

	return models.CanonicalTarget{Platform: platform, ID: parts[2]}, nil
}

// ParseSpotifyURL recognizes direct open.spotify.com links. It skips an
// optional intl-<code> locale segment, an optional embed segment, and
// the legacy user/<id>/playlist/<id> shape. A URL that does not match
// the strict <type>/<22-char-id> form returns false rather than an
// error: the aggregator may still understand shapes this parser does not.
func ParseSpotifyURL(raw string) (models.CanonicalTarget, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return models.CanonicalTarget{}, false
	}

	if !strings.EqualFold(u.Hostname(), "open.spotify.com") {
		return models.CanonicalTarget{}, false
	}

	segments := splitPath(u.Path)

	if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
		segments = segments[1:]
	}
	if len(segments) > 0 && segments[0] == "embed" {
		segments = segments[1:]
	}
	if len(segments) == 4 && segments[0] == "user" {
		// legacy https://open.spotify.com/user/<user>/playlist/<id>
		segments = segments[2:]
	}

	if len(segments) != 2 {
		return models.CanonicalTarget{}, false
	}

	platform, ok := models.ParsePlatform(segments[0])
	if !ok {
		return models.CanonicalTarget{}, false
	}
	if !models.ValidID(segments[1]) {
		return models.CanonicalTarget{}, false
	}

	return models.CanonicalTarget{Platform: platform, ID: segments[1]}, true
}
