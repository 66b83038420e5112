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

func search(ctx context.Context, store *db.DB, args []string) error {
	subcmd := subcmd.New("search", "search the database for a track")
	subcmd.SetArg("query", "string", "search query, matched against track, album, and artist names (required)")
	count := subcmd.Int("count", 10, "number of tracks to return")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	query := strings.Join(subcmd.Args(), " ")

	tracks, err := store.Search(ctx, query, *count)
	if err != nil {
		return fmt.Errorf("error in search for '%s': %w", query, err)
	}

	if len(tracks) == 0 {
		fmt.Printf("no results for '%s'\n", query)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := []string{"artists", "album", "track", "spotify_id", "key", "tempo"}
	fmt.Fprint(tw, strings.Join(header, "\t")+"\n")

	for _, track := range tracks {
		key, tempo := "", ""
		if track.Features != nil {
			key = fmt.Sprintf("%s %s", track.Features.KeyName(), track.Features.ModeName())
			tempo = fmt.Sprintf("%.0f", track.Features.Tempo)
		}
		fmt.Fprint(tw, strings.Join([]string{
			track.ArtistNames(),
			track.AlbumName, track.Name, track.SpotifyID,
			key,
			tempo,
		}, "\t")+"\n")
	}

	tw.Flush()

	return nil
}
