package data

// Albums are fetched from Spotify. Track payloads carry a simplified
// album object without Label or Popularity; those fields are only
// overwritten when a payload actually includes them, so a full record
// is never clobbered by a later simplified one.
type Album struct {
	SpotifyID  string
	Name       string
	Label      string
	SpotifyURL string
	Images     Images
	Popularity int64

	Artists []*Artist `gorm:"-"`
}

func (al *Album) HasArtist(spotifyID string) bool {
	for _, artist := range al.Artists {
		if artist.SpotifyID == spotifyID {
			return true
		}
	}
	return false
}
