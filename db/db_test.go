package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(t *testing.T, value string) sql.NullTime {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return sql.NullTime{Time: parsed, Valid: true}
}

// seedShow loads a small catalog: two artists, two tracks, and three
// playlists, one of which has no parseable date.
func seedShow(t *testing.T, store *DB) {
	t.Helper()

	holland := &data.Artist{
		SpotifyID:  "a1",
		Name:       "Dave Holland",
		Popularity: 60,
		Genres: []*data.Genre{
			{Name: "jazz"},
			{Name: "post-bop"},
		},
	}
	rivers := &data.Artist{
		SpotifyID:  "a2",
		Name:       "Sam Rivers",
		Popularity: 55,
		Genres: []*data.Genre{
			{Name: "jazz"},
		},
	}
	require.NoError(t, store.SaveArtist(holland))
	require.NoError(t, store.SaveArtist(rivers))

	require.NoError(t, store.SaveAlbum(&data.Album{
		SpotifyID: "al1",
		Name:      "Conference of the Birds",
		Label:     "ECM",
		Artists:   []*data.Artist{holland},
	}))

	fourWinds := &data.Track{
		SpotifyID:      "t1",
		Name:           "Four Winds",
		DurationMS:     559000,
		AlbumSpotifyID: "al1",
		AlbumName:      "Conference of the Birds",
		Artists:        []*data.Artist{holland, rivers},
	}
	qAndA := &data.Track{
		SpotifyID:  "t2",
		Name:       "Q & A",
		DurationMS: 371000,
		Artists:    []*data.Artist{rivers},
	}
	require.NoError(t, store.SaveTrack(fourWinds))
	require.NoError(t, store.SaveTrack(qAndA))

	require.NoError(t, store.SaveAudioFeatures(&data.AudioFeatures{
		TrackSpotifyID: "t1",
		Key:            3,
		Mode:           0,
		Tempo:          142,
	}))

	require.NoError(t, store.SavePlaylist(&data.Playlist{
		SpotifyID: "pl1",
		Name:      "Conference of the Birds 2022-04-05 #117",
		Date:      date(t, "2022-04-05"),
		Tracks:    []*data.Track{fourWinds, qAndA},
	}))
	require.NoError(t, store.SavePlaylist(&data.Playlist{
		SpotifyID: "pl2",
		Name:      "Conference of the Birds 2022-04-12 #118",
		Date:      date(t, "2022-04-12"),
		Tracks:    []*data.Track{qAndA},
	}))
	require.NoError(t, store.SavePlaylist(&data.Playlist{
		SpotifyID: "pl3",
		Name:      "Random Mix",
		Tracks:    []*data.Track{fourWinds},
	}))
}
