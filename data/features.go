package data

// AudioFeatures holds Spotify's audio descriptors for one track. The
// struct declares exactly the stored descriptors; payload fields like
// uri, track_href, and duration_ms never reach it.
type AudioFeatures struct {
	TrackSpotifyID string

	// Key is a pitch-class index in [0, 11]; Mode is 0 for major, 1
	// for minor.
	Key           int64
	Mode          int64
	Tempo         float64
	TimeSignature int64

	Acousticness     float64
	Danceability     float64
	Energy           float64
	Instrumentalness float64
	Liveness         float64
	Loudness         float64
	Speechiness      float64
	Valence          float64
}

var pitchClasses = []string{
	"C", "C♯", "D", "E♭", "E", "F", "F♯", "G", "A♭", "A", "B♭", "B",
}

// KeyName returns the pitch-class name for the track's key, or "" when
// the key is out of range.
func (af *AudioFeatures) KeyName() string {
	if af.Key < 0 || af.Key >= int64(len(pitchClasses)) {
		return ""
	}
	return pitchClasses[af.Key]
}

func (af *AudioFeatures) ModeName() string {
	switch af.Mode {
	case 0:
		return "major"
	case 1:
		return "minor"
	default:
		return ""
	}
}
