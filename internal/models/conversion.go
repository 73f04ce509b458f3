package models

import "fmt"

// ResponseMode selects the shape of a conversion response
type ResponseMode string

const (
	ModeFull  ResponseMode = "full"
	ModeLinks ResponseMode = "links"
	ModeCode  ResponseMode = "code"
)

// ParseResponseMode maps a raw mode value to a ResponseMode.
// Unrecognized values fall back to full rather than erroring.
func ParseResponseMode(raw string) ResponseMode {
	switch raw {
	case string(ModeLinks):
		return ModeLinks
	case string(ModeCode):
		return ModeCode
	default:
		return ModeFull
	}
}

// ConversionRequest is the validated shape of one inbound convert call
type ConversionRequest struct {
	RawURL         string
	RawURI         string
	Mode           ResponseMode
	IncludeYoutube bool
	Debug          bool
}

// ConversionResult is the full resolved record, a superset of every
// response mode. It is the unit stored in and read back from the cache.
type ConversionResult struct {
	InputURL string `json:"input_url,omitempty"`
	InputURI string `json:"input_uri,omitempty"`

	Platform Platform `json:"platform"`
	ID       string   `json:"id"`

	SpotifyURL string `json:"spotify_url"`
	SpotifyURI string `json:"spotify_uri"`

	CodeLinks

	YoutubeURL *string `json:"youtube_url"`
	CacheHit   bool    `json:"cache_hit"`
}

// CodeLinks holds the eight scannable-code image URLs for one URI:
// 2 formats x 2 color schemes x 2 sizes. It is embedded so the wire
// shape stays flat, matching what the cache service stores.
type CodeLinks struct {
	PNG            string `json:"spotify_code_png"`
	PNGSmall       string `json:"spotify_code_png_small"`
	PNGInvert      string `json:"spotify_code_png_invert"`
	PNGInvertSmall string `json:"spotify_code_png_invert_small"`
	SVG            string `json:"spotify_code_svg"`
	SVGSmall       string `json:"spotify_code_svg_small"`
	SVGInvert      string `json:"spotify_code_svg_invert"`
	SVGInvertSmall string `json:"spotify_code_svg_invert_small"`
}

const scannablesBase = "https://scannables.scdn.co/uri/plain"

func codeURL(format, bg, bar string, size int, uri string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%d/%s", scannablesBase, format, bg, bar, size, uri)
}

// BuildCodeLinks expands the scannable-code URL template for a canonical URI
func BuildCodeLinks(uri string) CodeLinks {
	return CodeLinks{
		PNG:            codeURL("png", "000000", "white", 640, uri),
		PNGSmall:       codeURL("png", "000000", "white", 320, uri),
		PNGInvert:      codeURL("png", "FFFFFF", "000000", 640, uri),
		PNGInvertSmall: codeURL("png", "FFFFFF", "000000", 320, uri),
		SVG:            codeURL("svg", "000000", "white", 640, uri),
		SVGSmall:       codeURL("svg", "000000", "white", 320, uri),
		SVGInvert:      codeURL("svg", "FFFFFF", "000000", 640, uri),
		SVGInvertSmall: codeURL("svg", "FFFFFF", "000000", 320, uri),
	}
}

// NewConversionResult builds the full record for a resolved target
func NewConversionResult(target CanonicalTarget, inputURL, inputURI string, youtubeURL *string) *ConversionResult {
	uri := target.URI()
	return &ConversionResult{
		InputURL:   inputURL,
		InputURI:   inputURI,
		Platform:   target.Platform,
		ID:         target.ID,
		SpotifyURL: target.URL(),
		SpotifyURI: uri,
		CodeLinks:  BuildCodeLinks(uri),
		YoutubeURL: youtubeURL,
	}
}
