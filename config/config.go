package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

//go:embed config.example.toml
var exampleConf []byte

type Config struct {
	Database DatabaseConfig `toml:"database" validate:"required"`
	Spotify  SpotifyConfig  `toml:"spotify"`
	Server   ServerConfig   `toml:"server"`
}

type DatabaseConfig struct {
	Path string `toml:"path" validate:"required"`
}

type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	User         string `toml:"user" validate:"required"`

	// PlaylistMatch filters the user's playlists down to the show's
	// episodes; a playlist qualifies when its name contains every
	// listed substring, case-insensitively.
	PlaylistMatch []string `toml:"playlist_match"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

// Load reads a TOML config file, fills Spotify credentials from the
// SPOTIFY_CLIENT_ID / SPOTIFY_CLIENT_SECRET environment when the file
// leaves them blank, and validates the result. A missing file yields
// the embedded defaults.
func Load(path string) (*Config, error) {
	var config Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := toml.Unmarshal(exampleConf, &config); err != nil {
			return nil, fmt.Errorf("error parsing embedded default config: %w", err)
		}
	} else {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(bs, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
		}
	}

	if config.Spotify.ClientID == "" {
		config.Spotify.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}
	if config.Spotify.ClientSecret == "" {
		config.Spotify.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
