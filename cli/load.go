package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/birdnest-fm/birdnest/config"
	"github.com/birdnest-fm/birdnest/db"
	"github.com/birdnest-fm/birdnest/ingest"
	"github.com/birdnest-fm/birdnest/spotify"
	"github.com/birdnest-fm/birdnest/subcmd"
	"github.com/charmbracelet/log"
)

func load(ctx context.Context, cfg *config.Config, store *db.DB, logger *log.Logger, args []string) error {
	subcmd := subcmd.New("load", "sync a playlist from spotify into the database\nrequires spotify credentials (config or SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET)")
	var (
		id  = subcmd.String("id", "", "sync the playlist with this spotify id instead of the latest episode")
		all = subcmd.Bool("all", false, "sync every matching playlist, not just the latest")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return fmt.Errorf("must set spotify client_id and client_secret")
	}
	spo := spotify.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, logger)

	var todo []spotify.PlaylistObject
	if *id != "" {
		playlists, err := spo.FetchUserPlaylists(ctx, cfg.Spotify.User)
		if err != nil {
			return fmt.Errorf("error listing playlists for '%s': %w", cfg.Spotify.User, err)
		}
		for _, p := range playlists {
			if p.ID == *id {
				todo = append(todo, p)
				break
			}
		}
		if len(todo) == 0 {
			return fmt.Errorf("no playlist '%s' for user '%s'", *id, cfg.Spotify.User)
		}
	} else {
		episodes, err := fetchEpisodes(ctx, spo, cfg)
		if err != nil {
			return err
		}
		if len(episodes) == 0 {
			return fmt.Errorf("no matching playlists for user '%s'", cfg.Spotify.User)
		}
		if *all {
			todo = episodes
		} else {
			todo = episodes[:1]
			logger.Info("latest from api", "name", todo[0].Name)
		}
	}

	for _, raw := range todo {
		// one transaction per playlist: a failed pass leaves no
		// partial writes behind
		err := store.WithTx(func(tx *db.DB) error {
			ing := ingest.New(tx, spo, logger)
			playlist, err := ing.IngestPlaylist(ctx, raw)
			if err != nil {
				return err
			}
			if err := tx.RebuildSearchIndex(ctx); err != nil {
				return err
			}
			logger.Info("saved playlist", "name", playlist.Name, "tracks", len(playlist.Tracks))
			return nil
		})
		if err != nil {
			return fmt.Errorf("error ingesting playlist '%s': %w", raw.Name, err)
		}
	}

	return nil
}

// fetchEpisodes lists the user's playlists filtered down to the show's
// episodes, in the provider's order (most recent first).
func fetchEpisodes(ctx context.Context, spo *spotify.Client, cfg *config.Config) ([]spotify.PlaylistObject, error) {
	playlists, err := spo.FetchUserPlaylists(ctx, cfg.Spotify.User)
	if err != nil {
		return nil, fmt.Errorf("error listing playlists for '%s': %w", cfg.Spotify.User, err)
	}

	var episodes []spotify.PlaylistObject
	for _, p := range playlists {
		name := strings.ToLower(p.Name)
		matches := true
		for _, substr := range cfg.Spotify.PlaylistMatch {
			if !strings.Contains(name, strings.ToLower(substr)) {
				matches = false
				break
			}
		}
		if matches {
			episodes = append(episodes, p)
		}
	}
	return episodes, nil
}
