// Package db wraps a sqlite3 database file holding the playlist
// archive: playlists, tracks, artists, albums, genres, and audio
// features, plus the association tables between them and an fts5
// search index over tracks.
//
// The fts5 table requires building with `-tags fts5`.
package db

import (
	_ "embed"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned by lookups that match nothing. It is a
// normal outcome, distinct from malformed input or storage failure.
var ErrNotFound = errors.New("not found")

// ErrMissingID is returned when an operation is handed an entity with
// no external id. That's a data-contract violation: external ids are
// the sole join key, and nothing can be resolved or stored without
// one.
var ErrMissingID = errors.New("missing spotify id")

// ErrMissingName is the genre counterpart of ErrMissingID: genres
// have no external id, and their name is the sole join key.
var ErrMissingName = errors.New("missing genre name")

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on
// disk, creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// WithTx runs fn against a transaction-scoped DB, committing if fn
// returns nil and rolling back otherwise. One ingestion pass runs
// inside one WithTx call, so a failure partway through leaves no
// partial writes visible.
func (db *DB) WithTx(fn func(tx *DB) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&DB{tx})
	})
}
