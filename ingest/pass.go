package ingest

import (
	"sort"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/birdnest-fm/birdnest/db"
)

// A pass is the working set of one ingestion run. It caches every
// entity resolved during the run, keyed by external id (genres by
// name), so resolving the same id twice always yields the same
// in-memory value: two tracks crediting one artist share one *Artist,
// and the later full-record merge upgrades it for both.
type pass struct {
	db *db.DB

	playlists map[string]*data.Playlist
	tracks    map[string]*data.Track
	artists   map[string]*data.Artist
	albums    map[string]*data.Album
	genres    map[string]*data.Genre
}

func newPass(store *db.DB) *pass {
	return &pass{
		db:        store,
		playlists: map[string]*data.Playlist{},
		tracks:    map[string]*data.Track{},
		artists:   map[string]*data.Artist{},
		albums:    map[string]*data.Album{},
		genres:    map[string]*data.Genre{},
	}
}

func (p *pass) playlist(spotifyID string) (*data.Playlist, error) {
	if playlist, has := p.playlists[spotifyID]; has {
		return playlist, nil
	}
	playlist, err := p.db.ResolvePlaylist(spotifyID)
	if err != nil {
		return nil, err
	}
	p.playlists[spotifyID] = playlist
	return playlist, nil
}

func (p *pass) track(spotifyID string) (*data.Track, error) {
	if track, has := p.tracks[spotifyID]; has {
		return track, nil
	}
	track, err := p.db.ResolveTrack(spotifyID)
	if err != nil {
		return nil, err
	}
	p.tracks[spotifyID] = track
	return track, nil
}

func (p *pass) artist(spotifyID string) (*data.Artist, error) {
	if artist, has := p.artists[spotifyID]; has {
		return artist, nil
	}
	artist, err := p.db.ResolveArtist(spotifyID)
	if err != nil {
		return nil, err
	}
	p.artists[spotifyID] = artist
	return artist, nil
}

func (p *pass) album(spotifyID string) (*data.Album, error) {
	if album, has := p.albums[spotifyID]; has {
		return album, nil
	}
	album, err := p.db.ResolveAlbum(spotifyID)
	if err != nil {
		return nil, err
	}
	p.albums[spotifyID] = album
	return album, nil
}

func (p *pass) genre(name string) (*data.Genre, error) {
	if genre, has := p.genres[name]; has {
		return genre, nil
	}
	genre, err := p.db.ResolveGenre(name)
	if err != nil {
		return nil, err
	}
	p.genres[name] = genre
	return genre, nil
}

// save persists the whole working set: artists first (creating genre
// rows as a side effect), then albums, tracks, features, and finally
// the playlist with its ordered track sequence. Iteration is sorted
// for deterministic write order.
func (p *pass) save(playlist *data.Playlist) error {
	for _, id := range sortedKeys(p.artists) {
		if err := p.db.SaveArtist(p.artists[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(p.albums) {
		if err := p.db.SaveAlbum(p.albums[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(p.tracks) {
		track := p.tracks[id]
		if err := p.db.SaveTrack(track); err != nil {
			return err
		}
		if track.Features != nil {
			if err := p.db.SaveAudioFeatures(track.Features); err != nil {
				return err
			}
		}
	}
	return p.db.SavePlaylist(playlist)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
