package spotify

// Payload types mirroring Spotify's documented object schemas, limited
// to the fields the ingestion path reads. Optional fields are pointers
// (or nilable slices) so a merge can tell "absent from this payload"
// apart from a zero value: Spotify serves both full and simplified
// shapes of the same object, and a simplified payload must never null
// out data a full one already provided.

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type ExternalIDs struct {
	ISRC string `json:"isrc"`
}

type ImageObject struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

type FollowersObject struct {
	Total int64 `json:"total"`
}

type PlaylistObject struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Images       []ImageObject `json:"images"`
	ExternalURLs ExternalURLs  `json:"external_urls"`
}

type TrackObject struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	DurationMS   int64          `json:"duration_ms"`
	Explicit     bool           `json:"explicit"`
	Popularity   *int64         `json:"popularity"`
	PreviewURL   *string        `json:"preview_url"`
	ExternalIDs  ExternalIDs    `json:"external_ids"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
	Artists      []ArtistObject `json:"artists"`
	Album        *AlbumObject   `json:"album"`
}

type ArtistObject struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	ExternalURLs ExternalURLs     `json:"external_urls"`
	Popularity   *int64           `json:"popularity"`
	Followers    *FollowersObject `json:"followers"`
	Images       []ImageObject    `json:"images"`
	Genres       []string         `json:"genres"`
}

type AlbumObject struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Label        *string        `json:"label"`
	Popularity   *int64         `json:"popularity"`
	Images       []ImageObject  `json:"images"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
	Artists      []ArtistObject `json:"artists"`
}

// AudioFeaturesObject declares exactly the descriptors the store
// keeps, plus the track id. The endpoint also serves type, uri,
// track_href, analysis_url, and duration_ms; leaving them undeclared
// is what keeps them out of the value object.
type AudioFeaturesObject struct {
	ID            string `json:"id"`
	Key           int64  `json:"key"`
	Mode          int64  `json:"mode"`
	Tempo         float64 `json:"tempo"`
	TimeSignature int64  `json:"time_signature"`

	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Valence          float64 `json:"valence"`
}
