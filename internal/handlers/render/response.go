package render

import (
	"spotilink/internal/models"
	"spotilink/internal/services"
)

// ConvertPayload is the wire shape of a successful conversion. Code
// fields are omitted entirely in links mode, so they carry omitempty.
type ConvertPayload struct {
	InputURL string `json:"input_url,omitempty"`
	InputURI string `json:"input_uri,omitempty"`

	Platform models.Platform `json:"platform"`
	ID       string          `json:"id"`

	SpotifyURL string `json:"spotify_url"`
	SpotifyURI string `json:"spotify_uri"`

	CodePNG            string `json:"spotify_code_png,omitempty"`
	CodePNGSmall       string `json:"spotify_code_png_small,omitempty"`
	CodePNGInvert      string `json:"spotify_code_png_invert,omitempty"`
	CodePNGInvertSmall string `json:"spotify_code_png_invert_small,omitempty"`
	CodeSVG            string `json:"spotify_code_svg,omitempty"`
	CodeSVGSmall       string `json:"spotify_code_svg_small,omitempty"`
	CodeSVGInvert      string `json:"spotify_code_svg_invert,omitempty"`
	CodeSVGInvertSmall string `json:"spotify_code_svg_invert_small,omitempty"`

	YoutubeURL *string `json:"youtube_url"`
	CacheHit   bool    `json:"cache_hit"`

	Debug *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo is the diagnostic trailer appended when debug is requested.
// It describes how the request was handled and never changes the
// payload proper.
type DebugInfo struct {
	Mode           models.ResponseMode `json:"mode"`
	IncludeYoutube bool                `json:"include_youtube"`
	services.Trace
}

// Assemble shapes a full conversion result into the wire payload for
// the requested mode. It is pure: same inputs, same payload, no I/O.
func Assemble(result *models.ConversionResult, mode models.ResponseMode, includeYoutube bool) ConvertPayload {
	payload := ConvertPayload{
		InputURL:   result.InputURL,
		InputURI:   result.InputURI,
		Platform:   result.Platform,
		ID:         result.ID,
		SpotifyURL: result.SpotifyURL,
		SpotifyURI: result.SpotifyURI,
		CacheHit:   result.CacheHit,
	}

	if mode != models.ModeLinks {
		payload.CodePNG = result.PNG
		payload.CodePNGSmall = result.PNGSmall
		payload.CodePNGInvert = result.PNGInvert
		payload.CodePNGInvertSmall = result.PNGInvertSmall
		payload.CodeSVG = result.SVG
		payload.CodeSVGSmall = result.SVGSmall
		payload.CodeSVGInvert = result.SVGInvert
		payload.CodeSVGInvertSmall = result.SVGInvertSmall
	}

	// The opt-out wins over whatever the record carries; a cached value
	// resolved with YouTube must not leak into an opted-out response.
	if includeYoutube {
		payload.YoutubeURL = result.YoutubeURL
	}

	return payload
}
