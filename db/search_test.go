package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store := testDB(t)
	seedShow(t, store)

	require.NoError(t, store.RebuildSearchIndex(ctx))

	byTrackName, err := store.Search(ctx, "winds", 10)
	require.NoError(t, err)
	require.Len(t, byTrackName, 1)
	assert.Equal(t, "Four Winds", byTrackName[0].Name)
	assert.Equal(t, "Dave Holland, Sam Rivers", byTrackName[0].ArtistNames())

	byAlbumName, err := store.Search(ctx, "conference", 10)
	require.NoError(t, err)
	require.Len(t, byAlbumName, 1)
	assert.Equal(t, "t1", byAlbumName[0].SpotifyID)

	// both tracks feature Sam Rivers
	byArtist, err := store.Search(ctx, "rivers", 10)
	require.NoError(t, err)
	assert.Len(t, byArtist, 2)

	none, err := store.Search(ctx, "zydeco", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchLimit(t *testing.T) {
	ctx := context.Background()
	store := testDB(t)
	seedShow(t, store)

	require.NoError(t, store.RebuildSearchIndex(ctx))

	tracks, err := store.Search(ctx, "rivers", 1)
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}

func TestRebuildSearchIndexReplaces(t *testing.T) {
	ctx := context.Background()
	store := testDB(t)
	seedShow(t, store)

	require.NoError(t, store.RebuildSearchIndex(ctx))
	require.NoError(t, store.RebuildSearchIndex(ctx))

	var n int64
	require.NoError(t, store.Table("tracks_search").Count(&n).Error)
	assert.Equal(t, int64(2), n)
}
