package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/birdnest-fm/birdnest/db"
	"github.com/birdnest-fm/birdnest/subcmd"
)

func playlists(ctx context.Context, store *db.DB, args []string) error {
	subcmd := subcmd.New("playlists", "list archived playlists, most recent first")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	all, err := store.Playlists(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, strings.Join([]string{"date", "name", "spotify_id"}, "\t")+"\n")
	for _, playlist := range all {
		date := "-"
		if playlist.Date.Valid {
			date = playlist.Date.Time.Format("2006-01-02")
		}
		fmt.Fprint(tw, strings.Join([]string{date, playlist.Name, playlist.SpotifyID}, "\t")+"\n")
	}
	tw.Flush()

	return nil
}
