package data_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	playlist := &data.Playlist{
		SpotifyID: "pl1",
		Name:      "Conference of the Birds 2022-04-05 #117",
		Date: sql.NullTime{
			Time:  time.Date(2022, time.April, 5, 0, 0, 0, 0, time.UTC),
			Valid: true,
		},
		Tracks: []*data.Track{
			{
				SpotifyID:  "t1",
				Name:       "Opening",
				DurationMS: 251000,
				AlbumName:  "First Album",
				Artists:    []*data.Artist{{SpotifyID: "a1", Name: "One"}, {SpotifyID: "a2", Name: "Two"}},
				Features:   &data.AudioFeatures{TrackSpotifyID: "t1", Key: 3, Mode: 1, Tempo: 120},
			},
			{
				SpotifyID:  "t2",
				Name:       "Closing",
				DurationMS: 199000,
				AlbumName:  "Second Album",
				Artists:    []*data.Artist{{SpotifyID: "a1", Name: "One"}},
			},
		},
	}

	rows := playlist.Flatten()
	require.Len(t, rows, 2)

	assert.Equal(t, "2022-04-05", rows[0].Date)
	assert.Equal(t, 2022, rows[0].Year)
	assert.Equal(t, 4, rows[0].Month)
	assert.Equal(t, 5, rows[0].Day)

	assert.Equal(t, int64(0), rows[0].StartTimeMS)
	assert.Equal(t, int64(251000), rows[1].StartTimeMS)

	assert.Equal(t, "One, Two", rows[0].Artists)
	assert.Equal(t, "E♭", rows[0].KeyName)
	assert.Equal(t, "minor", rows[0].ModeName)

	// the second track has no features; descriptors stay zero
	assert.Equal(t, "", rows[1].KeyName)
	assert.Equal(t, float64(0), rows[1].Tempo)
}

func TestFlattenNoDate(t *testing.T) {
	playlist := &data.Playlist{
		Name:   "Random Mix",
		Tracks: []*data.Track{{SpotifyID: "t1", DurationMS: 1000}},
	}

	rows := playlist.Flatten()
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Date)
	assert.Equal(t, 0, rows[0].Year)
}
