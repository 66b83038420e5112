// Package ingest merges raw Spotify payloads into the relational
// store: one playlist at a time, resolving every nested track, artist,
// album, and audio-features record to a stable local identity.
package ingest

import (
	"context"
	"fmt"
	"sort"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/birdnest-fm/birdnest/db"
	"github.com/birdnest-fm/birdnest/spotify"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// A Source serves raw provider records. Pagination is the source's
// concern; batch-size caps are the caller's. spotify.Client
// implements it.
type Source interface {
	FetchPlaylistTracks(ctx context.Context, playlistID string) ([]spotify.TrackObject, error)
	FetchArtists(ctx context.Context, spotifyIDs []string) ([]spotify.ArtistObject, error)
	FetchAlbums(ctx context.Context, spotifyIDs []string) ([]spotify.AlbumObject, error)
	FetchAudioFeatures(ctx context.Context, spotifyIDs []string) ([]spotify.AudioFeaturesObject, error)
}

func New(store *db.DB, src Source, logger *log.Logger) *Ingestor {
	return &Ingestor{
		db:     store,
		src:    src,
		logger: logger,
	}
}

type Ingestor struct {
	db     *db.DB
	src    Source
	logger *log.Logger
}

// IngestPlaylist merges one raw playlist document and its full closure
// of tracks, artists, albums, and audio features into the store.
//
// Any missing external id in the payload aborts the whole pass, as
// does any fetch failure. The caller owns the transaction boundary:
// run this inside db.WithTx to get all-or-nothing persistence.
func (ing *Ingestor) IngestPlaylist(ctx context.Context, raw spotify.PlaylistObject) (*data.Playlist, error) {
	logger := ing.logger.With("run", uuid.NewString(), "playlist", raw.ID)

	p := newPass(ing.db)

	playlist, err := p.playlist(raw.ID)
	if err != nil {
		return nil, err
	}
	mergePlaylist(playlist, raw)
	logger.Info("merging playlist", "name", playlist.Name)

	rawTracks, err := ing.src.FetchPlaylistTracks(ctx, raw.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching tracks for playlist '%s': %w", raw.ID, err)
	}

	playlist.Tracks = playlist.Tracks[:0]
	for _, rawTrack := range rawTracks {
		track, err := p.track(rawTrack.ID)
		if err != nil {
			return nil, err
		}
		if err := p.mergeTrack(track, rawTrack); err != nil {
			return nil, err
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}
	logger.Info("merged tracks", "count", len(playlist.Tracks))

	if err := ing.fillInArtists(ctx, p); err != nil {
		return nil, err
	}
	if err := ing.fillInAlbums(ctx, p); err != nil {
		return nil, err
	}
	if err := ing.fillInAudioFeatures(ctx, p, playlist.Tracks); err != nil {
		return nil, err
	}

	if err := p.save(playlist); err != nil {
		return nil, err
	}
	logger.Info("saved playlist",
		"tracks", len(p.tracks),
		"artists", len(p.artists),
		"albums", len(p.albums),
		"genres", len(p.genres))

	return playlist, nil
}

// fillInArtists upgrades every artist stub gathered from track
// payloads into a full record, batching by the provider's cap.
func (ing *Ingestor) fillInArtists(ctx context.Context, p *pass) error {
	ids := make([]string, 0, len(p.artists))
	for id := range p.artists {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, batch := range chunk(ids, spotify.MaxArtistsPerRequest) {
		fulls, err := ing.src.FetchArtists(ctx, batch)
		if err != nil {
			return fmt.Errorf("error fetching %d artists: %w", len(batch), err)
		}
		for _, rawArtist := range fulls {
			artist, err := p.artist(rawArtist.ID)
			if err != nil {
				return err
			}
			if err := p.mergeArtist(artist, rawArtist); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillInAlbums upgrades albums known only from simplified track
// payloads, which lack label and popularity.
func (ing *Ingestor) fillInAlbums(ctx context.Context, p *pass) error {
	var ids []string
	for id, album := range p.albums {
		if album.Label == "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, batch := range chunk(ids, spotify.MaxAlbumsPerRequest) {
		fulls, err := ing.src.FetchAlbums(ctx, batch)
		if err != nil {
			return fmt.Errorf("error fetching %d albums: %w", len(batch), err)
		}
		for _, rawAlbum := range fulls {
			album, err := p.album(rawAlbum.ID)
			if err != nil {
				return err
			}
			if err := p.mergeAlbum(album, rawAlbum); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillInAudioFeatures fetches and attaches descriptors for tracks that
// don't have them yet. A track's features are fetched at most once.
func (ing *Ingestor) fillInAudioFeatures(ctx context.Context, p *pass, tracks []*data.Track) error {
	var ids []string
	seen := map[string]bool{}
	for _, track := range tracks {
		if track.Features != nil || seen[track.SpotifyID] {
			continue
		}
		seen[track.SpotifyID] = true
		ids = append(ids, track.SpotifyID)
	}
	if len(ids) == 0 {
		return nil
	}

	have, err := ing.db.TrackIDsWithFeatures(ids)
	if err != nil {
		return err
	}
	attached := map[string]bool{}
	for _, id := range have {
		attached[id] = true
	}

	var need []string
	for _, id := range ids {
		if !attached[id] {
			need = append(need, id)
		}
	}

	for _, batch := range chunk(need, spotify.MaxAudioFeaturesPerRequest) {
		features, err := ing.src.FetchAudioFeatures(ctx, batch)
		if err != nil {
			return fmt.Errorf("error fetching audio features for %d tracks: %w", len(batch), err)
		}
		for _, rawFeatures := range features {
			track, has := p.tracks[rawFeatures.ID]
			if !has {
				continue
			}
			track.Features = featuresFromPayload(rawFeatures)
		}
	}
	return nil
}

// chunk splits ids into slices of at most size elements, preserving
// order.
func chunk(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > 0 {
		n := size
		if len(ids) < n {
			n = len(ids)
		}
		batches = append(batches, ids[:n])
		ids = ids[n:]
	}
	return batches
}
