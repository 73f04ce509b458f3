package render

import (
	"encoding/json"
	"strings"
	"testing"

	"spotilink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResult() *models.ConversionResult {
	target := models.CanonicalTarget{Platform: models.PlatformTrack, ID: "3n3Ppam7vgaVa1iaRUc9Lp"}
	yt := "https://www.youtube.com/watch?v=JGwWNGJdvx8"
	result := models.NewConversionResult(target, "https://example.com/song", "", &yt)
	result.CacheHit = true
	return result
}

func marshal(t *testing.T, payload ConvertPayload) map[string]any {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	return flat
}

func codeFieldCount(flat map[string]any) int {
	count := 0
	for key := range flat {
		if strings.HasPrefix(key, "spotify_code_") {
			count++
		}
	}
	return count
}

func TestAssemble_FullMode(t *testing.T) {
	payload := Assemble(fullResult(), models.ModeFull, true)
	flat := marshal(t, payload)

	assert.Equal(t, 8, codeFieldCount(flat))
	assert.Equal(t, "https://open.spotify.com/track/3n3Ppam7vgaVa1iaRUc9Lp", flat["spotify_url"])
	assert.Equal(t, "spotify:track:3n3Ppam7vgaVa1iaRUc9Lp", flat["spotify_uri"])
	assert.Equal(t, "https://www.youtube.com/watch?v=JGwWNGJdvx8", flat["youtube_url"])
	assert.Equal(t, true, flat["cache_hit"])
	assert.Equal(t, "https://example.com/song", flat["input_url"])
	assert.NotContains(t, flat, "input_uri")
	assert.NotContains(t, flat, "debug")
}

func TestAssemble_CodeMode(t *testing.T) {
	payload := Assemble(fullResult(), models.ModeCode, false)
	flat := marshal(t, payload)

	assert.Equal(t, 8, codeFieldCount(flat))
}

func TestAssemble_LinksModeStripsCodes(t *testing.T) {
	payload := Assemble(fullResult(), models.ModeLinks, true)
	flat := marshal(t, payload)

	assert.Zero(t, codeFieldCount(flat))
	assert.Equal(t, "spotify:track:3n3Ppam7vgaVa1iaRUc9Lp", flat["spotify_uri"])
	assert.Contains(t, flat, "youtube_url")
	assert.Contains(t, flat, "cache_hit")
}

func TestAssemble_YoutubeOptOutWinsOverCachedValue(t *testing.T) {
	// the cached record carries a youtube link; the per-request opt-out
	// must still null it
	payload := Assemble(fullResult(), models.ModeFull, false)
	flat := marshal(t, payload)

	assert.Contains(t, flat, "youtube_url")
	assert.Nil(t, flat["youtube_url"])
}

func TestAssemble_Pure(t *testing.T) {
	result := fullResult()

	first := Assemble(result, models.ModeFull, true)
	second := Assemble(result, models.ModeFull, true)

	assert.Equal(t, first, second)
	require.NotNil(t, result.YoutubeURL, "input record must not be mutated")
}
