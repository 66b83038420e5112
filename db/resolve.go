package db

import (
	"errors"
	"fmt"

	"github.com/birdnest-fm/birdnest/data"
	"gorm.io/gorm"
)

// The Resolve* methods look an entity up by its external id. When no
// row exists they return a stub holding only the id, without
// persisting anything: the caller merges payload data into the stub
// and decides when to save. Callers that need "same id, same value"
// within one ingestion pass cache the result (see ingest's pass
// cache).

func (db *DB) ResolvePlaylist(spotifyID string) (*data.Playlist, error) {
	if spotifyID == "" {
		return nil, fmt.Errorf("resolving playlist: %w", ErrMissingID)
	}
	var playlist data.Playlist
	err := db.Table("playlists").Where("spotify_id = ?", spotifyID).First(&playlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &data.Playlist{SpotifyID: spotifyID}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error resolving playlist '%s': %w", spotifyID, err)
	}
	return &playlist, nil
}

func (db *DB) ResolveTrack(spotifyID string) (*data.Track, error) {
	if spotifyID == "" {
		return nil, fmt.Errorf("resolving track: %w", ErrMissingID)
	}
	var track data.Track
	err := db.Table("tracks").Where("spotify_id = ?", spotifyID).First(&track).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &data.Track{SpotifyID: spotifyID}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error resolving track '%s': %w", spotifyID, err)
	}
	return &track, nil
}

func (db *DB) ResolveArtist(spotifyID string) (*data.Artist, error) {
	if spotifyID == "" {
		return nil, fmt.Errorf("resolving artist: %w", ErrMissingID)
	}
	var artist data.Artist
	err := db.Table("artists").Where("spotify_id = ?", spotifyID).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &data.Artist{SpotifyID: spotifyID}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error resolving artist '%s': %w", spotifyID, err)
	}
	return &artist, nil
}

func (db *DB) ResolveAlbum(spotifyID string) (*data.Album, error) {
	if spotifyID == "" {
		return nil, fmt.Errorf("resolving album: %w", ErrMissingID)
	}
	var album data.Album
	err := db.Table("albums").Where("spotify_id = ?", spotifyID).First(&album).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &data.Album{SpotifyID: spotifyID}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error resolving album '%s': %w", spotifyID, err)
	}
	return &album, nil
}

// ResolveGenre resolves by name rather than external id; Spotify
// exposes genres as bare strings. When duplicate rows exist for the
// name, the first by id wins.
func (db *DB) ResolveGenre(name string) (*data.Genre, error) {
	if name == "" {
		return nil, fmt.Errorf("resolving genre: %w", ErrMissingName)
	}
	var genre data.Genre
	err := db.Table("genres").Where("name = ?", name).Order("id").First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &data.Genre{Name: name}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error resolving genre '%s': %w", name, err)
	}
	return &genre, nil
}
