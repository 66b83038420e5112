package main

import (
	"context"
	"fmt"

	"github.com/birdnest-fm/birdnest/db"
	"github.com/birdnest-fm/birdnest/subcmd"
	"github.com/charmbracelet/log"
)

func fixgenres(ctx context.Context, store *db.DB, logger *log.Logger, args []string) error {
	subcmd := subcmd.New("fixgenres", "merge duplicate genre rows, re-pointing artist associations onto one canonical row per name")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	deleted, err := store.ReconcileDuplicateGenres(ctx)
	if err != nil {
		return err
	}
	logger.Info("reconciled duplicate genres", "deleted", deleted)

	return nil
}
