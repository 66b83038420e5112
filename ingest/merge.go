package ingest

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/birdnest-fm/birdnest/spotify"
)

// The merge functions fold one raw payload into the current local
// entity. Required fields are overwritten outright; optional fields
// only when the payload carries them, so a simplified payload never
// clobbers data a full one already provided.

var playlistDatePattern = regexp.MustCompile(`(20\d{2})-(\d{2})-(\d{2})`)

// ParsePlaylistDate extracts the episode date encoded in a playlist
// name, like "Conference of the Birds 2022-04-05 #117". The second
// return is false when the name carries no valid date.
func ParsePlaylistDate(name string) (time.Time, bool) {
	m := playlistDatePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		// something like 2022-13-40; not a date
		return time.Time{}, false
	}
	return date, true
}

func mergePlaylist(playlist *data.Playlist, raw spotify.PlaylistObject) {
	playlist.Name = raw.Name
	playlist.Description = raw.Description
	playlist.SpotifyURL = raw.ExternalURLs.Spotify
	if raw.Images != nil {
		playlist.Images = imagesFromPayload(raw.Images)
	}

	// the date is recomputed from the name on every sync
	if date, ok := ParsePlaylistDate(raw.Name); ok {
		playlist.Date = sql.NullTime{Time: date, Valid: true}
	} else {
		playlist.Date = sql.NullTime{}
	}
}

func (p *pass) mergeTrack(track *data.Track, raw spotify.TrackObject) error {
	track.Name = raw.Name
	track.DurationMS = raw.DurationMS
	track.Explicit = raw.Explicit
	track.ISRC = raw.ExternalIDs.ISRC
	track.SpotifyURL = raw.ExternalURLs.Spotify
	if raw.Popularity != nil {
		track.Popularity = *raw.Popularity
	}
	if raw.PreviewURL != nil {
		track.PreviewURL = *raw.PreviewURL
	}

	for _, rawArtist := range raw.Artists {
		artist, err := p.artist(rawArtist.ID)
		if err != nil {
			return fmt.Errorf("track '%s': %w", raw.ID, err)
		}
		if err := p.mergeArtist(artist, rawArtist); err != nil {
			return err
		}
		if !track.HasArtist(artist.SpotifyID) {
			track.Artists = append(track.Artists, artist)
		}
	}

	if raw.Album != nil {
		album, err := p.album(raw.Album.ID)
		if err != nil {
			return fmt.Errorf("track '%s': %w", raw.ID, err)
		}
		if err := p.mergeAlbum(album, *raw.Album); err != nil {
			return err
		}
		track.AlbumSpotifyID = album.SpotifyID
		track.AlbumName = album.Name
	}

	return nil
}

func (p *pass) mergeArtist(artist *data.Artist, raw spotify.ArtistObject) error {
	artist.Name = raw.Name
	if raw.ExternalURLs.Spotify != "" {
		artist.SpotifyURL = raw.ExternalURLs.Spotify
	}
	if raw.Popularity != nil {
		artist.Popularity = *raw.Popularity
	}
	if raw.Followers != nil {
		artist.Followers = raw.Followers.Total
	}
	if raw.Images != nil {
		artist.Images = imagesFromPayload(raw.Images)
	}

	for _, name := range raw.Genres {
		genre, err := p.genre(name)
		if err != nil {
			return fmt.Errorf("artist '%s': %w", raw.ID, err)
		}
		if !artist.HasGenre(name) {
			artist.Genres = append(artist.Genres, genre)
		}
	}

	return nil
}

func (p *pass) mergeAlbum(album *data.Album, raw spotify.AlbumObject) error {
	album.Name = raw.Name
	if raw.ExternalURLs.Spotify != "" {
		album.SpotifyURL = raw.ExternalURLs.Spotify
	} else if album.SpotifyURL == "" {
		album.SpotifyURL = fmt.Sprintf("https://open.spotify.com/album/%s", album.SpotifyID)
	}
	if raw.Images != nil {
		album.Images = imagesFromPayload(raw.Images)
	}

	// only present on the full album object, absent from the
	// simplified one embedded in track payloads
	if raw.Label != nil {
		album.Label = *raw.Label
	}
	if raw.Popularity != nil {
		album.Popularity = *raw.Popularity
	}

	for _, rawArtist := range raw.Artists {
		artist, err := p.artist(rawArtist.ID)
		if err != nil {
			return fmt.Errorf("album '%s': %w", raw.ID, err)
		}
		if err := p.mergeArtist(artist, rawArtist); err != nil {
			return err
		}
		if !album.HasArtist(artist.SpotifyID) {
			album.Artists = append(album.Artists, artist)
		}
	}

	return nil
}

func featuresFromPayload(raw spotify.AudioFeaturesObject) *data.AudioFeatures {
	return &data.AudioFeatures{
		TrackSpotifyID: raw.ID,

		Key:           raw.Key,
		Mode:          raw.Mode,
		Tempo:         raw.Tempo,
		TimeSignature: raw.TimeSignature,

		Acousticness:     raw.Acousticness,
		Danceability:     raw.Danceability,
		Energy:           raw.Energy,
		Instrumentalness: raw.Instrumentalness,
		Liveness:         raw.Liveness,
		Loudness:         raw.Loudness,
		Speechiness:      raw.Speechiness,
		Valence:          raw.Valence,
	}
}

func imagesFromPayload(raw []spotify.ImageObject) data.Images {
	images := make(data.Images, len(raw))
	for i, img := range raw {
		images[i] = data.Image{URL: img.URL, Width: img.Width, Height: img.Height}
	}
	return images
}
