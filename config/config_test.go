package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birdnest.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "show.db"

[spotify]
client_id = "id"
client_secret = "secret"
user = "someone"
playlist_match = ["conference"]

[server]
addr = ":9000"
`), 0o644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "show.db", config.Database.Path)
	assert.Equal(t, "someone", config.Spotify.User)
	assert.Equal(t, []string{"conference"}, config.Spotify.PlaylistMatch)
	assert.Equal(t, ":9000", config.Server.Addr)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.NotEmpty(t, config.Database.Path)
	assert.NotEmpty(t, config.Spotify.User)
	assert.NotEmpty(t, config.Server.Addr)
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birdnest.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "show.db"

[spotify]
user = "someone"

[server]
addr = ":9000"
`), 0o644))

	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-id", config.Spotify.ClientID)
	assert.Equal(t, "env-secret", config.Spotify.ClientSecret)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birdnest.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[spotify]
user = "someone"
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
