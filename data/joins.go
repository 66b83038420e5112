package data

// A PlaylistTrack represents one position in a playlist's ordered
// track sequence.
type PlaylistTrack struct {
	PlaylistSpotifyID string
	TrackSpotifyID    string
	Position          int64
}

// A TrackArtist represents a many-to-many relationship between tracks
// and artists.
type TrackArtist struct {
	TrackSpotifyID  string
	ArtistSpotifyID string
}

// An ArtistGenre represents a many-to-many relationship between
// artists and genres.
type ArtistGenre struct {
	ArtistSpotifyID string
	GenreID         int64
}

// An AlbumArtist represents a many-to-many relationship between albums
// and artists.
type AlbumArtist struct {
	AlbumSpotifyID  string
	ArtistSpotifyID string
}
