package ingest

import (
	"testing"
	"time"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/birdnest-fm/birdnest/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlaylistDate(t *testing.T) {
	date, ok := ParsePlaylistDate("Conference of the Birds 2022-04-05 #117")
	require.True(t, ok)
	assert.Equal(t, 2022, date.Year())
	assert.Equal(t, time.April, date.Month())
	assert.Equal(t, 5, date.Day())

	_, ok = ParsePlaylistDate("Random Mix")
	assert.False(t, ok)

	_, ok = ParsePlaylistDate("bogus 2022-13-40 date")
	assert.False(t, ok)
}

func TestMergePlaylistRecomputesDate(t *testing.T) {
	playlist := &data.Playlist{SpotifyID: "pl1"}

	mergePlaylist(playlist, spotify.PlaylistObject{
		ID:   "pl1",
		Name: "Conference of the Birds 2021-12-07 #100",
	})
	require.True(t, playlist.Date.Valid)
	assert.Equal(t, 2021, playlist.Date.Time.Year())

	// a rename that drops the date unsets it again
	mergePlaylist(playlist, spotify.PlaylistObject{ID: "pl1", Name: "renamed"})
	assert.False(t, playlist.Date.Valid)
}

func TestMergePlaylistKeepsImagesWhenAbsent(t *testing.T) {
	playlist := &data.Playlist{
		SpotifyID: "pl1",
		Images:    data.Images{{URL: "https://i.scdn.co/image/cover", Width: 640}},
	}

	mergePlaylist(playlist, spotify.PlaylistObject{ID: "pl1", Name: "no images here"})
	assert.Len(t, playlist.Images, 1)
}

func TestMergeAlbumPartialPayload(t *testing.T) {
	p := newPass(nil)

	album := &data.Album{SpotifyID: "al1"}

	label := "Impulse!"
	popularity := int64(61)
	require.NoError(t, p.mergeAlbum(album, spotify.AlbumObject{
		ID:         "al1",
		Name:       "Conference of the Birds",
		Label:      &label,
		Popularity: &popularity,
		Images:     []spotify.ImageObject{{URL: "https://i.scdn.co/image/full", Width: 640}},
	}))
	assert.Equal(t, "Impulse!", album.Label)
	assert.Equal(t, int64(61), album.Popularity)

	// a simplified payload without label or popularity leaves both
	// alone
	require.NoError(t, p.mergeAlbum(album, spotify.AlbumObject{
		ID:   "al1",
		Name: "Conference of the Birds",
	}))
	assert.Equal(t, "Impulse!", album.Label)
	assert.Equal(t, int64(61), album.Popularity)
	assert.Len(t, album.Images, 1)
}

func TestFeaturesFromPayloadWhitelist(t *testing.T) {
	features := featuresFromPayload(spotify.AudioFeaturesObject{
		ID:            "t1",
		Key:           7,
		Mode:          1,
		Tempo:         98.5,
		TimeSignature: 4,
		Energy:        0.8,
	})

	assert.Equal(t, "t1", features.TrackSpotifyID)
	assert.Equal(t, int64(7), features.Key)
	assert.Equal(t, 98.5, features.Tempo)
	assert.Equal(t, 0.8, features.Energy)
}

func TestChunk(t *testing.T) {
	ids := make([]string, 250)
	for i := range ids {
		ids[i] = string(rune('a' + i%26))
	}

	batches := chunk(ids, 100)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)

	assert.Nil(t, chunk(nil, 100))
}
