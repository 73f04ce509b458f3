package models

import "fmt"

// Platform represents the kind of Spotify entity a link resolves to
type Platform string

const (
	PlatformTrack    Platform = "track"
	PlatformAlbum    Platform = "album"
	PlatformArtist   Platform = "artist"
	PlatformPlaylist Platform = "playlist"
	PlatformEpisode  Platform = "episode"
	PlatformShow     Platform = "show"
)

// knownPlatforms is the closed set of entity kinds Spotify URLs and URIs carry
var knownPlatforms = map[Platform]bool{
	PlatformTrack:    true,
	PlatformAlbum:    true,
	PlatformArtist:   true,
	PlatformPlaylist: true,
	PlatformEpisode:  true,
	PlatformShow:     true,
}

// ParsePlatform validates a raw platform segment
func ParsePlatform(raw string) (Platform, bool) {
	p := Platform(raw)
	return p, knownPlatforms[p]
}

// spotifyIDLength is the length of Spotify's base-62 identifiers
const spotifyIDLength = 22

// ValidID reports whether id is exactly 22 alphanumeric characters
func ValidID(id string) bool {
	if len(id) != spotifyIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// CanonicalTarget is the normalized (platform, id) identity of a Spotify entity
type CanonicalTarget struct {
	Platform Platform `json:"platform"`
	ID       string   `json:"id"`
}

// URI returns the canonical spotify:<platform>:<id> form
func (t CanonicalTarget) URI() string {
	return fmt.Sprintf("spotify:%s:%s", t.Platform, t.ID)
}

// URL returns the canonical open.spotify.com form
func (t CanonicalTarget) URL() string {
	return fmt.Sprintf("https://open.spotify.com/%s/%s", t.Platform, t.ID)
}
