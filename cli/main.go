// birdnest archives the Conference of the Birds playlists: it syncs
// playlist, track, artist, album, and audio-feature data from Spotify
// into a sqlite3 database file and serves it back out.
//
// Build with `-tags fts5`; the track search index is an fts5 virtual
// table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/birdnest-fm/birdnest/config"
	"github.com/birdnest-fm/birdnest/db"
	"github.com/birdnest-fm/birdnest/sigctx"
	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: birdnest $cmd
valid $cmd are 'load', 'serve', 'search', 'playlists', 'reindex', 'fixgenres'
for help: birdnest $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	configPath := os.Getenv("BIRDNEST_CONFIG")
	if configPath == "" {
		configPath = "birdnest.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "load":
		return load(ctx, cfg, store, logger, args)

	case "serve":
		return serve(ctx, cfg, store, logger, args)

	case "search":
		return search(ctx, store, args)

	case "playlists":
		return playlists(ctx, store, args)

	case "reindex":
		return reindex(ctx, store, logger, args)

	case "fixgenres":
		return fixgenres(ctx, store, logger, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
