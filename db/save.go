package db

import (
	"fmt"

	"github.com/birdnest-fm/birdnest/data"
	"gorm.io/gorm/clause"
)

var conflictOnSpotifyID = clause.OnConflict{
	Columns:   []clause.Column{{Name: "spotify_id"}},
	UpdateAll: true,
}

// SavePlaylist upserts the playlist row and replaces its ordered
// track sequence. The tracks themselves are saved separately; only
// membership and position are written here.
func (db *DB) SavePlaylist(playlist *data.Playlist) error {
	if playlist.SpotifyID == "" {
		return fmt.Errorf("saving playlist: %w", ErrMissingID)
	}
	if err := db.
		Clauses(conflictOnSpotifyID).
		Create(playlist).
		Error; err != nil {
		return fmt.Errorf("error saving playlist '%s': %w", playlist.Name, err)
	}

	if err := db.
		Where("playlist_spotify_id = ?", playlist.SpotifyID).
		Delete(&data.PlaylistTrack{}).
		Error; err != nil {
		return fmt.Errorf("error clearing track sequence for playlist '%s': %w", playlist.Name, err)
	}
	for i, track := range playlist.Tracks {
		if err := db.
			Create(&data.PlaylistTrack{
				PlaylistSpotifyID: playlist.SpotifyID,
				TrackSpotifyID:    track.SpotifyID,
				Position:          int64(i),
			}).
			Error; err != nil {
			return fmt.Errorf("error saving playlist track {'%s' '%s'}: %w", playlist.Name, track.Name, err)
		}
	}

	return nil
}

// SaveTrack upserts the track row and its artist memberships. Artists
// themselves are saved separately via SaveArtist.
func (db *DB) SaveTrack(track *data.Track) error {
	if track.SpotifyID == "" {
		return fmt.Errorf("saving track: %w", ErrMissingID)
	}
	if err := db.
		Clauses(conflictOnSpotifyID).
		Create(track).
		Error; err != nil {
		return fmt.Errorf("error saving track '%s': %w", track.Name, err)
	}

	for _, artist := range track.Artists {
		if err := db.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.TrackArtist{
				TrackSpotifyID:  track.SpotifyID,
				ArtistSpotifyID: artist.SpotifyID,
			}).
			Error; err != nil {
			return fmt.Errorf("error saving track artist {'%s' '%s'}: %w", track.Name, artist.Name, err)
		}
	}

	return nil
}

// SaveArtist upserts the artist row and its genre memberships,
// creating genre rows as needed. A genre with ID 0 has never been
// persisted; Create fills its ID in place so join rows and other
// artists holding the same pointer see the assigned key.
func (db *DB) SaveArtist(artist *data.Artist) error {
	if artist.SpotifyID == "" {
		return fmt.Errorf("saving artist: %w", ErrMissingID)
	}
	if err := db.
		Clauses(conflictOnSpotifyID).
		Create(artist).
		Error; err != nil {
		return fmt.Errorf("error saving artist '%s': %w", artist.Name, err)
	}

	for _, genre := range artist.Genres {
		if genre.ID == 0 {
			// the caller may hold an unpersisted value for a name
			// that already has a row; reuse it rather than planting
			// a duplicate
			existing, err := db.ResolveGenre(genre.Name)
			if err != nil {
				return fmt.Errorf("error saving genre '%s': %w", genre.Name, err)
			}
			if existing.ID != 0 {
				genre.ID = existing.ID
			} else if err := db.Create(genre).Error; err != nil {
				return fmt.Errorf("error saving genre '%s': %w", genre.Name, err)
			}
		}
		if err := db.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.ArtistGenre{
				ArtistSpotifyID: artist.SpotifyID,
				GenreID:         genre.ID,
			}).
			Error; err != nil {
			return fmt.Errorf("error saving artist genre {'%s' '%s'}: %w", artist.Name, genre.Name, err)
		}
	}

	return nil
}

// SaveAlbum upserts the album row and its artist memberships.
func (db *DB) SaveAlbum(album *data.Album) error {
	if album.SpotifyID == "" {
		return fmt.Errorf("saving album: %w", ErrMissingID)
	}
	if err := db.
		Clauses(conflictOnSpotifyID).
		Create(album).
		Error; err != nil {
		return fmt.Errorf("error saving album '%s': %w", album.Name, err)
	}

	for _, artist := range album.Artists {
		if err := db.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&data.AlbumArtist{
				AlbumSpotifyID:  album.SpotifyID,
				ArtistSpotifyID: artist.SpotifyID,
			}).
			Error; err != nil {
			return fmt.Errorf("error saving album artist {'%s' '%s'}: %w", album.Name, artist.Name, err)
		}
	}

	return nil
}

// SaveAudioFeatures attaches descriptors to a track. Features are
// fetched at most once per track, so an existing row is left alone.
func (db *DB) SaveAudioFeatures(features *data.AudioFeatures) error {
	if features.TrackSpotifyID == "" {
		return fmt.Errorf("saving audio features: %w", ErrMissingID)
	}
	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(features).
		Error; err != nil {
		return fmt.Errorf("error saving audio features for '%s': %w", features.TrackSpotifyID, err)
	}
	return nil
}

// TrackIDsWithFeatures filters the given track ids down to those that
// already have audio features attached.
func (db *DB) TrackIDsWithFeatures(trackIDs []string) ([]string, error) {
	var ids []string
	if err := db.
		Table("audio_features").
		Where("track_spotify_id in ?", trackIDs).
		Pluck("track_spotify_id", &ids).
		Error; err != nil {
		return nil, fmt.Errorf("error checking %d tracks for audio features: %w", len(trackIDs), err)
	}
	return ids, nil
}
