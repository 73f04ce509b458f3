package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL_AppleMusic(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "album URL with i parameter",
			url:      "https://music.apple.com/us/album/shape-of-you/1193701079?i=1193701359",
			expected: "https://music.apple.com/us/song/_/1193701359",
		},
		{
			name:     "song URL with trailing id",
			url:      "https://music.apple.com/us/song/shape-of-you/1193701359",
			expected: "https://music.apple.com/us/song/_/1193701359",
		},
		{
			name:     "locale variant collapses to same shape",
			url:      "https://music.apple.com/de/album/shape-of-you/1193701079?i=1193701359",
			expected: "https://music.apple.com/de/song/_/1193701359",
		},
		{
			name:     "geo host",
			url:      "https://geo.music.apple.com/us/album/x/1193701079?i=1193701359",
			expected: "https://music.apple.com/us/song/_/1193701359",
		},
		{
			name:     "itunes host",
			url:      "https://itunes.apple.com/gb/album/x/1193701079?i=1193701359",
			expected: "https://music.apple.com/gb/song/_/1193701359",
		},
		{
			name:     "uppercase country code lowered",
			url:      "https://music.apple.com/GB/album/x/1193701079?i=1193701359",
			expected: "https://music.apple.com/gb/song/_/1193701359",
		},
		{
			name:     "missing country defaults to us",
			url:      "https://music.apple.com/album/x/1193701079?i=1193701359",
			expected: "https://music.apple.com/us/song/_/1193701359",
		},
		{
			name:     "i parameter wins over trailing segment",
			url:      "https://music.apple.com/us/song/old-name/1111111111?i=1193701359",
			expected: "https://music.apple.com/us/song/_/1193701359",
		},
		{
			name:     "no id found passes through reserialized",
			url:      "https://music.apple.com/us/artist/ed-sheeran/183313439",
			expected: "https://music.apple.com/us/artist/ed-sheeran/183313439",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeURL(tc.url))
		})
	}
}

func TestNormalizeURL_AppleMusicVariantsCollapse(t *testing.T) {
	variants := []string{
		"https://music.apple.com/us/album/shape-of-you/1193701079?i=1193701359",
		"https://music.apple.com/jp/album/shape-of-you/1193701079?i=1193701359",
		"https://geo.music.apple.com/us/album/whatever/999?i=1193701359",
		"https://music.apple.com/us/song/shape-of-you/1193701359",
	}

	first := NormalizeURL(variants[0])
	for _, v := range variants[1:] {
		got := NormalizeURL(v)
		if v == variants[1] {
			// locale is preserved, only the shape collapses
			assert.Equal(t, "https://music.apple.com/jp/song/_/1193701359", got)
			continue
		}
		assert.Equal(t, first, got, "variant %s should collapse", v)
	}
}

func TestNormalizeURL_PassThrough(t *testing.T) {
	testCases := []struct {
		name string
		url  string
	}{
		{name: "non-apple URL", url: "https://tidal.com/browse/track/77646168"},
		{name: "spotify URL", url: "https://open.spotify.com/track/3n3Ppam7vgaVa1iaRUc9Lp"},
		{name: "plain string", url: "not a url at all"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeURL(tc.url)
			assert.NotEmpty(t, got)
			// never rewritten into the apple song shape
			assert.NotContains(t, got, "/song/_/")
		})
	}
}

func TestNormalizeURL_Unparseable(t *testing.T) {
	raw := "http://%zz invalid"
	assert.Equal(t, raw, NormalizeURL(raw))
}
