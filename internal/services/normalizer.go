package services

import (
	"fmt"
	"net/url"
	"strings"
)

// Apple Music hosts whose links all point at the same catalog
var appleMusicHosts = map[string]bool{
	"music.apple.com":     true,
	"geo.music.apple.com": true,
	"itunes.apple.com":    true,
}

// NormalizeURL canonicalizes a raw input URL before resolution. Apple
// Music links come in locale variants, embed wrappers and with the
// track id either in the path or the `i` parameter; collapsing them to
// one shape is what makes the cache key stable for those inputs.
//
// Unparseable input passes through untouched; everything else is
// returned reserialized.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if !appleMusicHosts[strings.ToLower(u.Hostname())] {
		return u.String()
	}

	segments := splitPath(u.Path)

	country := "us"
	if len(segments) > 0 && isCountryCode(segments[0]) {
		country = strings.ToLower(segments[0])
	}

	id := u.Query().Get("i")
	if id == "" || !isDigits(id) {
		id = trailingSongID(segments)
	}

	if id == "" {
		return u.String()
	}

	return fmt.Sprintf("https://music.apple.com/%s/song/_/%s", country, id)
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// trailingSongID returns the final path segment when it is numeric and
// a `song` segment appears before it, e.g. /us/song/shape-of-you/1193701359
func trailingSongID(segments []string) string {
	if len(segments) < 2 {
		return ""
	}
	last := segments[len(segments)-1]
	if !isDigits(last) {
		return ""
	}
	for _, s := range segments[:len(segments)-1] {
		if s == "song" {
			return last
		}
	}
	return ""
}
