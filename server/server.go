// Package server exposes the read side of the archive over HTTP as
// JSON: latest playlist, playlist by date, and artist/genre/search
// browsing.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/birdnest-fm/birdnest/db"
	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
)

func Run(ctx context.Context, store *db.DB, addr string, logger *log.Logger) error {
	s := &server{db: store, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleLatest)
	mux.HandleFunc("GET /playlists", s.handlePlaylists)
	mux.HandleFunc("GET /playlists/{date}", s.handlePlaylistByDate)
	mux.HandleFunc("GET /artists", s.handleArtists)
	mux.HandleFunc("GET /artists/{id}", s.handleArtist)
	mux.HandleFunc("GET /genres/{name}", s.handleGenre)
	mux.HandleFunc("GET /search", s.handleSearch)

	srv := http.Server{Addr: addr, Handler: mux}

	logger.Info("listening", "addr", addr)

	errs := make(chan error)
	go func() { errs <- srv.ListenAndServe() }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		return <-errs
	}
}

type server struct {
	db     *db.DB
	logger *log.Logger
}

// playlistResponse carries the playlist row plus its tracks flattened
// into the visualization-friendly per-track rows.
type playlistResponse struct {
	SpotifyID   string           `json:"spotify_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	SpotifyURL  string           `json:"spotify_url"`
	Date        string           `json:"date,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Tracks      []data.FlatTrack `json:"tracks"`
}

func playlistJSON(playlist *data.Playlist) playlistResponse {
	resp := playlistResponse{
		SpotifyID:   playlist.SpotifyID,
		Name:        playlist.Name,
		Description: playlist.Description,
		SpotifyURL:  playlist.SpotifyURL,
		ImageURL:    playlist.ImageURL(),
		Tracks:      playlist.Flatten(),
	}
	if playlist.Date.Valid {
		resp.Date = playlist.Date.Time.Format("2006-01-02")
	}
	return resp
}

func (s *server) handleLatest(w http.ResponseWriter, req *http.Request) {
	playlist, err := s.db.LatestPlaylist(req.Context())
	if err != nil {
		s.error(w, err)
		return
	}
	s.json(w, playlistJSON(playlist))
}

func (s *server) handlePlaylists(w http.ResponseWriter, req *http.Request) {
	playlists, err := s.db.Playlists(req.Context())
	if err != nil {
		s.error(w, err)
		return
	}

	type row struct {
		SpotifyID string `json:"spotify_id"`
		Name      string `json:"name"`
		Date      string `json:"date,omitempty"`
	}
	rows := make([]row, len(playlists))
	for i, p := range playlists {
		rows[i] = row{SpotifyID: p.SpotifyID, Name: p.Name}
		if p.Date.Valid {
			rows[i].Date = p.Date.Time.Format("2006-01-02")
		}
	}
	s.json(w, rows)
}

// handlePlaylistByDate serves /playlists/2022-04-05. An unparseable
// date is the client's mistake (400); a parseable date with no
// playlist is an ordinary miss (404). The two must stay distinct.
func (s *server) handlePlaylistByDate(w http.ResponseWriter, req *http.Request) {
	dateStr := req.PathValue("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		http.Error(w, "invalid playlist date", http.StatusBadRequest)
		return
	}

	playlist, err := s.db.PlaylistByDate(req.Context(), date)
	if err != nil {
		s.error(w, err)
		return
	}
	s.json(w, playlistJSON(playlist))
}

func (s *server) handleArtists(w http.ResponseWriter, req *http.Request) {
	artists, err := s.db.ArtistsWithTrackCounts(req.Context())
	if err != nil {
		s.error(w, err)
		return
	}

	type row struct {
		SpotifyID  string `json:"spotify_id"`
		Name       string `json:"name"`
		Popularity int64  `json:"popularity"`
		TrackCount int64  `json:"track_count"`
	}
	rows := make([]row, len(artists))
	for i, a := range artists {
		rows[i] = row{
			SpotifyID:  a.SpotifyID,
			Name:       a.Name,
			Popularity: a.Popularity,
			TrackCount: a.TrackCount,
		}
	}
	s.json(w, rows)
}

func (s *server) handleArtist(w http.ResponseWriter, req *http.Request) {
	artist, err := s.db.GetArtist(req.PathValue("id"))
	if err != nil {
		s.error(w, err)
		return
	}

	genres := make([]string, len(artist.Genres))
	for i, genre := range artist.Genres {
		genres[i] = genre.Name
	}
	imageURL, _ := artist.Images.Select(0, 300, 0)
	s.json(w, map[string]interface{}{
		"spotify_id":  artist.SpotifyID,
		"name":        artist.Name,
		"spotify_url": artist.SpotifyURL,
		"image_url":   imageURL,
		"popularity":  artist.Popularity,
		"followers":   artist.Followers,
		"genres":      genres,
	})
}

func (s *server) handleGenre(w http.ResponseWriter, req *http.Request) {
	genre, err := s.db.GenreByName(req.Context(), req.PathValue("name"))
	if err != nil {
		s.error(w, err)
		return
	}

	type row struct {
		SpotifyID  string `json:"spotify_id"`
		Name       string `json:"name"`
		Popularity int64  `json:"popularity"`
	}
	artists := make([]row, len(genre.Artists))
	for i, a := range genre.Artists {
		artists[i] = row{SpotifyID: a.SpotifyID, Name: a.Name, Popularity: a.Popularity}
	}
	s.json(w, map[string]interface{}{
		"name":    genre.Name,
		"artists": artists,
	})
}

func (s *server) handleSearch(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing query parameter 'q'", http.StatusBadRequest)
		return
	}

	tracks, err := s.db.Search(req.Context(), query, 25)
	if err != nil {
		s.error(w, err)
		return
	}

	type row struct {
		SpotifyID string `json:"spotify_id"`
		Name      string `json:"name"`
		Album     string `json:"album"`
		Artists   string `json:"artists"`
	}
	rows := make([]row, len(tracks))
	for i, t := range tracks {
		rows[i] = row{
			SpotifyID: t.SpotifyID,
			Name:      t.Name,
			Album:     t.AlbumName,
			Artists:   t.ArtistNames(),
		}
	}
	s.json(w, rows)
}

func (s *server) json(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

func (s *server) error(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Error("request failed", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
