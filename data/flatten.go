package data

import "fmt"

// A FlatTrack is one row of a playlist flattened for downstream
// visualization: the track's scalar fields plus its audio descriptors,
// annotated with the playlist date and a cumulative start-time offset.
type FlatTrack struct {
	TrackID    string `json:"track_id"`
	Name       string `json:"name"`
	DurationMS int64  `json:"duration_ms"`
	Explicit   bool   `json:"explicit"`
	Popularity int64  `json:"popularity"`
	Album      string `json:"album"`
	Artists    string `json:"artists"`

	Date  string `json:"date"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`

	StartTimeMS int64 `json:"start_time_ms"`

	Key           int64   `json:"key"`
	KeyName       string  `json:"key_str"`
	Mode          int64   `json:"mode"`
	ModeName      string  `json:"mode_str"`
	Tempo         float64 `json:"tempo"`
	TimeSignature int64   `json:"time_signature"`

	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Valence          float64 `json:"valence"`
}

// Flatten produces one FlatTrack per track, in playlist order.
// StartTimeMS for each row is the sum of the durations of the rows
// before it. Date fields are zero when the playlist has no parsed
// date.
func (p *Playlist) Flatten() []FlatTrack {
	rows := make([]FlatTrack, 0, len(p.Tracks))

	var date string
	var year, month, day int
	if p.Date.Valid {
		year, month, day = p.Date.Time.Year(), int(p.Date.Time.Month()), p.Date.Time.Day()
		date = fmt.Sprintf("%d-%02d-%02d", year, month, day)
	}

	var cumMS int64
	for _, track := range p.Tracks {
		row := FlatTrack{
			TrackID:    track.SpotifyID,
			Name:       track.Name,
			DurationMS: track.DurationMS,
			Explicit:   track.Explicit,
			Popularity: track.Popularity,
			Album:      track.AlbumName,
			Artists:    track.ArtistNames(),

			Date:  date,
			Year:  year,
			Month: month,
			Day:   day,

			StartTimeMS: cumMS,
		}
		if af := track.Features; af != nil {
			row.Key = af.Key
			row.KeyName = af.KeyName()
			row.Mode = af.Mode
			row.ModeName = af.ModeName()
			row.Tempo = af.Tempo
			row.TimeSignature = af.TimeSignature
			row.Acousticness = af.Acousticness
			row.Danceability = af.Danceability
			row.Energy = af.Energy
			row.Instrumentalness = af.Instrumentalness
			row.Liveness = af.Liveness
			row.Loudness = af.Loudness
			row.Speechiness = af.Speechiness
			row.Valence = af.Valence
		}
		cumMS += track.DurationMS
		rows = append(rows, row)
	}

	return rows
}
