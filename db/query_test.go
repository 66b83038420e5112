package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlaylist(t *testing.T) {
	ctx := context.Background()
	store := testDB(t)
	seedShow(t, store)

	playlist, err := store.GetPlaylist(ctx, "pl1")
	require.NoError(t, err)

	assert.Equal(t, "Conference of the Birds 2022-04-05 #117", playlist.Name)
	require.Len(t, playlist.Tracks, 2)
	assert.Equal(t, "Four Winds", playlist.Tracks[0].Name)
	assert.Equal(t, "Q & A", playlist.Tracks[1].Name)

	assert.Equal(t, "Dave Holland, Sam Rivers", playlist.Tracks[0].ArtistNames())

	require.NotNil(t, playlist.Tracks[0].Features)
	assert.Equal(t, "E♭", playlist.Tracks[0].Features.KeyName())
	assert.Nil(t, playlist.Tracks[1].Features)

	// one artist record per id, shared across tracks
	assert.Same(t, playlist.Tracks[0].Artists[1], playlist.Tracks[1].Artists[0])
}

func TestGetPlaylistNotFound(t *testing.T) {
	store := testDB(t)

	_, err := store.GetPlaylist(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLatestPlaylist(t *testing.T) {
	ctx := context.Background()
	store := testDB(t)
	seedShow(t, store)

	// pl3 has no date and is never the latest
	playlist, err := store.LatestPlaylist(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pl2", playlist.SpotifyID)
}

func TestPlaylistByDate(t *testing.T) {
	ctx := context.Background()
	store := testDB(t)
	seedShow(t, store)

	when, err := time.Parse("2006-01-02", "2022-04-05")
	require.NoError(t, err)

	playlist, err := store.PlaylistByDate(ctx, when)
	require.NoError(t, err)
	assert.Equal(t, "pl1", playlist.SpotifyID)

	missing, _ := time.Parse("2006-01-02", "1999-01-01")
	_, err = store.PlaylistByDate(ctx, missing)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPlaylists(t *testing.T) {
	store := testDB(t)
	seedShow(t, store)

	playlists, err := store.Playlists(context.Background())
	require.NoError(t, err)
	assert.Len(t, playlists, 3)
}

func TestGetArtist(t *testing.T) {
	store := testDB(t)
	seedShow(t, store)

	artist, err := store.GetArtist("a1")
	require.NoError(t, err)
	assert.Equal(t, "Dave Holland", artist.Name)
	require.Len(t, artist.Genres, 2)
	assert.Equal(t, "jazz", artist.Genres[0].Name)
	assert.Equal(t, "post-bop", artist.Genres[1].Name)

	_, err = store.GetArtist("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestArtistsWithTrackCounts(t *testing.T) {
	store := testDB(t)
	seedShow(t, store)

	artists, err := store.ArtistsWithTrackCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Sam Rivers", artists[0].Name)
	assert.Equal(t, int64(2), artists[0].TrackCount)
	assert.Equal(t, "Dave Holland", artists[1].Name)
	assert.Equal(t, int64(1), artists[1].TrackCount)
}

func TestGenreByName(t *testing.T) {
	store := testDB(t)
	seedShow(t, store)

	genre, err := store.GenreByName(context.Background(), "jazz")
	require.NoError(t, err)
	require.Len(t, genre.Artists, 2)
	assert.Equal(t, "Dave Holland", genre.Artists[0].Name)
	assert.Equal(t, "Sam Rivers", genre.Artists[1].Name)

	_, err = store.GenreByName(context.Background(), "vaporwave")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResolveReturnsStub(t *testing.T) {
	store := testDB(t)
	seedShow(t, store)

	track, err := store.ResolveTrack("t1")
	require.NoError(t, err)
	assert.Equal(t, "Four Winds", track.Name)

	stub, err := store.ResolveTrack("t-new")
	require.NoError(t, err)
	assert.Equal(t, "t-new", stub.SpotifyID)
	assert.Empty(t, stub.Name)

	// stubs are not persisted
	var n int64
	require.NoError(t, store.Table("tracks").Where("spotify_id = ?", "t-new").Count(&n).Error)
	assert.Zero(t, n)

	_, err = store.ResolveTrack("")
	assert.True(t, errors.Is(err, ErrMissingID))

	// genres resolve by name, with their own sentinel
	_, err = store.ResolveGenre("")
	assert.True(t, errors.Is(err, ErrMissingName))
}

func TestSaveAudioFeaturesKeepsFirstRow(t *testing.T) {
	store := testDB(t)
	seedShow(t, store)

	require.NoError(t, store.SaveAudioFeatures(&data.AudioFeatures{
		TrackSpotifyID: "t1",
		Key:            9,
		Tempo:          99,
	}))

	track, err := store.GetTrack(context.Background(), "t1")
	require.NoError(t, err)
	require.NotNil(t, track.Features)
	assert.Equal(t, int64(3), track.Features.Key)
	assert.Equal(t, float64(142), track.Features.Tempo)
}

func TestSavePlaylistReplacesSequence(t *testing.T) {
	store := testDB(t)
	seedShow(t, store)

	// reverse pl1's track order and drop nothing
	playlist, err := store.GetPlaylist(context.Background(), "pl1")
	require.NoError(t, err)
	playlist.Tracks[0], playlist.Tracks[1] = playlist.Tracks[1], playlist.Tracks[0]
	require.NoError(t, store.SavePlaylist(playlist))

	reloaded, err := store.GetPlaylist(context.Background(), "pl1")
	require.NoError(t, err)
	require.Len(t, reloaded.Tracks, 2)
	assert.Equal(t, "t2", reloaded.Tracks[0].SpotifyID)
	assert.Equal(t, "t1", reloaded.Tracks[1].SpotifyID)
}
