package data

import "strings"

type Track struct {
	SpotifyID  string
	Name       string
	DurationMS int64
	Explicit   bool
	Popularity int64
	ISRC       string
	SpotifyURL string
	PreviewURL string

	AlbumSpotifyID string
	AlbumName      string

	Artists []*Artist `gorm:"-"`

	Features *AudioFeatures `gorm:"-"`
}

func (t *Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, artist := range t.Artists {
		names[i] = artist.Name
	}
	return strings.Join(names, ", ")
}

// HasArtist reports whether the artist is already a member of the
// track's artist set, by spotify id.
func (t *Track) HasArtist(spotifyID string) bool {
	for _, artist := range t.Artists {
		if artist.SpotifyID == spotifyID {
			return true
		}
	}
	return false
}
