package main

import (
	"context"
	"fmt"

	"github.com/birdnest-fm/birdnest/config"
	"github.com/birdnest-fm/birdnest/db"
	"github.com/birdnest-fm/birdnest/server"
	"github.com/birdnest-fm/birdnest/subcmd"
	"github.com/charmbracelet/log"
)

func serve(ctx context.Context, cfg *config.Config, store *db.DB, logger *log.Logger, args []string) error {
	subcmd := subcmd.New("serve", "run the web server")
	var (
		addr = subcmd.String("addr", cfg.Server.Addr, "http listen address")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	return server.Run(ctx, store, *addr, logger)
}
