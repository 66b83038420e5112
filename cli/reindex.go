package main

import (
	"context"
	"fmt"

	"github.com/birdnest-fm/birdnest/db"
	"github.com/birdnest-fm/birdnest/subcmd"
	"github.com/charmbracelet/log"
)

func reindex(ctx context.Context, store *db.DB, logger *log.Logger, args []string) error {
	subcmd := subcmd.New("reindex", "rebuild the track search index from current database contents")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if err := store.RebuildSearchIndex(ctx); err != nil {
		return err
	}
	logger.Info("rebuilt search index")

	return nil
}
