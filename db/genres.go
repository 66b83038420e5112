package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ReconcileDuplicateGenres merges genre rows that share a name. The
// ingestion path can race two get-or-creates for one name and leave
// duplicate rows behind; this pass keeps the first row per name,
// re-points every artist association from the duplicates onto it
// (skipping associations the artist already has), and deletes the
// rest. Running it again is a no-op. Returns the number of rows
// deleted.
func (db *DB) ReconcileDuplicateGenres(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("canceled: %w", err)
	}

	type genreRow struct {
		ID   int64
		Name string
	}
	var rows []genreRow
	if err := db.
		Table("genres").
		Order("id").
		Find(&rows).
		Error; err != nil {
		return 0, fmt.Errorf("error listing genres: %w", err)
	}

	byName := map[string][]int64{}
	for _, row := range rows {
		byName[row.Name] = append(byName[row.Name], row.ID)
	}

	deleted := 0
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		for name, ids := range byName {
			if len(ids) < 2 {
				continue
			}
			canonical, duplicates := ids[0], ids[1:]

			// Drop associations the canonical row already covers,
			// then move the remainder over.
			if err := tx.
				Exec(`delete from artist_genres where genre_id in ? and artist_spotify_id in
					(select artist_spotify_id from artist_genres where genre_id = ?)`,
					duplicates, canonical).
				Error; err != nil {
				return fmt.Errorf("error dropping covered associations for genre '%s': %w", name, err)
			}
			if err := tx.
				Exec(`update artist_genres set genre_id = ? where genre_id in ?`,
					canonical, duplicates).
				Error; err != nil {
				return fmt.Errorf("error re-pointing associations for genre '%s': %w", name, err)
			}
			if err := tx.
				Exec(`delete from genres where id in ?`, duplicates).
				Error; err != nil {
				return fmt.Errorf("error deleting duplicate rows for genre '%s': %w", name, err)
			}

			deleted += len(duplicates)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
