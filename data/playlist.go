package data

import "database/sql"

// Playlists are fetched from Spotify. Each episode of the show is
// published as one playlist, and the episode date is encoded in the
// playlist name rather than in any Spotify field, so Date is derived
// during ingestion and may be unset.
//
// Playlists have many tracks via the association table playlist_tracks,
// which carries a position column: playlist order is significant.
type Playlist struct {
	SpotifyID   string
	Name        string
	Description string
	SpotifyURL  string

	Date sql.NullTime

	Images Images

	Tracks []*Track `gorm:"-"`
}

// ImageURL returns the playlist's cover image URL. Spotify documents
// playlist images as a single undimensioned URL, so this is just the
// first image.
func (p *Playlist) ImageURL() string {
	url, _ := p.Images.First()
	return url
}
