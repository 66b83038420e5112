package data

// Artists are fetched from Spotify, first as id+name stubs embedded in
// track payloads, then upgraded to full records by a batch fetch.
//
// Artists have many genres via the association table artist_genres.
type Artist struct {
	SpotifyID  string
	Name       string
	SpotifyURL string
	Images     Images

	// Popularity and Followers change over time; each sync overwrites
	// them rather than appending.
	Popularity int64
	Followers  int64

	Genres []*Genre `gorm:"-"`
}

func (a *Artist) HasGenre(name string) bool {
	for _, genre := range a.Genres {
		if genre.Name == name {
			return true
		}
	}
	return false
}
