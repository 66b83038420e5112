package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/birdnest-fm/birdnest/data"
	"gorm.io/gorm"
)

// GetPlaylist returns a playlist with its full track sequence, each
// track carrying its artists and audio features.
func (db *DB) GetPlaylist(ctx context.Context, spotifyID string) (*data.Playlist, error) {
	var playlist data.Playlist
	if err := db.
		Table("playlists").
		Where("spotify_id = ?", spotifyID).
		First(&playlist).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no playlist '%s': %w", spotifyID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting playlist '%s': %w", spotifyID, err)
	}

	var trackIDs []string
	if err := db.
		Table("playlist_tracks").
		Where("playlist_spotify_id = ?", spotifyID).
		Order("position").
		Pluck("track_spotify_id", &trackIDs).
		Error; err != nil {
		return nil, fmt.Errorf("error getting track sequence for playlist '%s': %w", spotifyID, err)
	}

	playlist.Tracks = make([]*data.Track, len(trackIDs))
	artistCache := map[string]*data.Artist{}
	for i, trackID := range trackIDs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("canceled: %w", err)
		}

		track, err := db.getTrack(trackID, artistCache)
		if err != nil {
			return nil, fmt.Errorf("error getting track '%s': %w", trackID, err)
		}
		playlist.Tracks[i] = track
	}

	return &playlist, nil
}

// LatestPlaylist returns the playlist with the most recent parsed
// date.
func (db *DB) LatestPlaylist(ctx context.Context) (*data.Playlist, error) {
	var id string
	if err := db.
		Table("playlists").
		Where("date is not null").
		Order("date desc").
		Limit(1).
		Pluck("spotify_id", &id).
		Error; err != nil {
		return nil, fmt.Errorf("error getting latest playlist: %w", err)
	}
	if id == "" {
		return nil, fmt.Errorf("no playlists: %w", ErrNotFound)
	}
	return db.GetPlaylist(ctx, id)
}

// PlaylistByDate returns the playlist whose parsed date exactly
// matches the given day. ErrNotFound when there is none; callers own
// the distinction between that and an unparseable date string.
func (db *DB) PlaylistByDate(ctx context.Context, date time.Time) (*data.Playlist, error) {
	day := date.Format("2006-01-02")
	var id string
	if err := db.
		Table("playlists").
		Where("date(date) = ?", day).
		Limit(1).
		Pluck("spotify_id", &id).
		Error; err != nil {
		return nil, fmt.Errorf("error getting playlist for %s: %w", day, err)
	}
	if id == "" {
		return nil, fmt.Errorf("no playlist for %s: %w", day, ErrNotFound)
	}
	return db.GetPlaylist(ctx, id)
}

// Playlists returns all playlist rows ordered by date descending,
// without their track sequences.
func (db *DB) Playlists(ctx context.Context) ([]data.Playlist, error) {
	var playlists []data.Playlist
	if err := db.
		Table("playlists").
		Order("date desc").
		Find(&playlists).
		Error; err != nil {
		return nil, fmt.Errorf("error listing playlists: %w", err)
	}
	return playlists, nil
}

func (db *DB) GetTrack(ctx context.Context, spotifyID string) (*data.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("canceled: %w", err)
	}
	return db.getTrack(spotifyID, map[string]*data.Artist{})
}

func (db *DB) getTrack(spotifyID string, artistCache map[string]*data.Artist) (*data.Track, error) {
	var track data.Track
	if err := db.
		Table("tracks").
		Where("spotify_id = ?", spotifyID).
		First(&track).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no track '%s': %w", spotifyID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting track '%s': %w", spotifyID, err)
	}

	var artistIDs []string
	if err := db.
		Table("track_artists").
		Where("track_spotify_id = ?", spotifyID).
		Pluck("artist_spotify_id", &artistIDs).
		Error; err != nil {
		return nil, fmt.Errorf("error getting artist IDs for track '%s': %w", spotifyID, err)
	}

	track.Artists = make([]*data.Artist, len(artistIDs))
	for i, artistID := range artistIDs {
		if artist, has := artistCache[artistID]; has {
			track.Artists[i] = artist
			continue
		}
		artist, err := db.GetArtist(artistID)
		if err != nil {
			return nil, fmt.Errorf("error getting artist '%s': %w", artistID, err)
		}
		artistCache[artistID] = artist
		track.Artists[i] = artist
	}

	var features data.AudioFeatures
	err := db.
		Table("audio_features").
		Where("track_spotify_id = ?", spotifyID).
		First(&features).
		Error
	if err == nil {
		track.Features = &features
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error getting audio features for track '%s': %w", spotifyID, err)
	}

	return &track, nil
}

func (db *DB) GetArtist(spotifyID string) (*data.Artist, error) {
	var artist data.Artist
	if err := db.
		Table("artists").
		Where("spotify_id = ?", spotifyID).
		First(&artist).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no artist '%s': %w", spotifyID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting artist '%s': %w", spotifyID, err)
	}

	var genres []*data.Genre
	if err := db.
		Table("genres").
		Select("genres.*").
		Joins("join artist_genres on artist_genres.genre_id = genres.id").
		Where("artist_genres.artist_spotify_id = ?", spotifyID).
		Order("genres.name").
		Find(&genres).
		Error; err != nil {
		return nil, fmt.Errorf("error getting genres for artist '%s': %w", spotifyID, err)
	}
	artist.Genres = genres

	return &artist, nil
}

// An ArtistTrackCount pairs an artist with the number of tracks it
// appears on.
type ArtistTrackCount struct {
	data.Artist
	TrackCount int64
}

// ArtistsWithTrackCounts returns every artist annotated with its track
// count, most-tracked first.
func (db *DB) ArtistsWithTrackCounts(ctx context.Context) ([]ArtistTrackCount, error) {
	var artists []ArtistTrackCount
	if err := db.
		Table("artists").
		Select("artists.*, count(track_artists.track_spotify_id) as track_count").
		Joins("left join track_artists on track_artists.artist_spotify_id = artists.spotify_id").
		Group("artists.spotify_id").
		Order("track_count desc, artists.name").
		Find(&artists).
		Error; err != nil {
		return nil, fmt.Errorf("error counting tracks per artist: %w", err)
	}
	return artists, nil
}

// GenreByName returns the canonical genre row for the name with its
// artists sorted by descending popularity. When duplicate rows exist
// for the name, their artist sets are unioned.
func (db *DB) GenreByName(ctx context.Context, name string) (*data.Genre, error) {
	var genre data.Genre
	if err := db.
		Table("genres").
		Where("name = ?", name).
		Order("id").
		First(&genre).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no genre '%s': %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting genre '%s': %w", name, err)
	}

	var artists []*data.Artist
	if err := db.
		Table("artists").
		Distinct("artists.*").
		Joins("join artist_genres on artist_genres.artist_spotify_id = artists.spotify_id").
		Joins("join genres on genres.id = artist_genres.genre_id").
		Where("genres.name = ?", name).
		Order("artists.popularity desc").
		Find(&artists).
		Error; err != nil {
		return nil, fmt.Errorf("error getting artists for genre '%s': %w", name, err)
	}
	genre.Artists = artists

	return &genre, nil
}
