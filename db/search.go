package db

import (
	"context"
	"fmt"

	"github.com/birdnest-fm/birdnest/data"
	"gorm.io/gorm"
)

// RebuildSearchIndex recomputes the fts5 index over tracks from
// current store contents. The delete and repopulate run in one
// transaction, so readers never see a half-rebuilt index.
func (db *DB) RebuildSearchIndex(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("canceled: %w", err)
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Exec("delete from tracks_search").
			Error; err != nil {
			return fmt.Errorf("error clearing search index: %w", err)
		}

		if err := tx.
			Exec(`insert into tracks_search (track_spotify_id, name, album_name, artist_names)
				select
					tracks.spotify_id,
					tracks.name,
					tracks.album_name,
					coalesce(group_concat(artists.name, ', '), '')
				from tracks
				left join track_artists on track_artists.track_spotify_id = tracks.spotify_id
				left join artists on artists.spotify_id = track_artists.artist_spotify_id
				group by tracks.spotify_id`).
			Error; err != nil {
			return fmt.Errorf("error rebuilding search index: %w", err)
		}

		return nil
	})
}

// Search matches the query against track, album, and artist names,
// returning tracks in the index's relevance order.
func (db *DB) Search(ctx context.Context, query string, limit int) ([]*data.Track, error) {
	var ids []string
	if err := db.
		Table("tracks_search").
		Where("tracks_search match ?", query).
		Order("rank").
		Limit(limit).
		Pluck("track_spotify_id", &ids).
		Error; err != nil {
		return nil, fmt.Errorf("error in search for '%s': %w", query, err)
	}

	tracks := make([]*data.Track, len(ids))
	artistCache := map[string]*data.Artist{}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("canceled: %w", err)
		}

		track, err := db.getTrack(id, artistCache)
		if err != nil {
			return nil, fmt.Errorf("error getting track '%s': %w", id, err)
		}
		tracks[i] = track
	}
	return tracks, nil
}
