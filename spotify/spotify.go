// Package spotify is a client for the parts of Spotify's web API the
// ingestion path consumes: playlist listing, fully-paginated playlist
// tracks, and the batch endpoints for artists, albums, and audio
// features.
package spotify

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/birdnest-fm/birdnest/request"
	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Batch caps are provider constraints: exceeding them is a hard
// failure upstream, so the client refuses oversized id lists outright
// and callers chunk to fit.
const (
	MaxArtistsPerRequest       = 50
	MaxAlbumsPerRequest        = 20
	MaxAudioFeaturesPerRequest = 100
)

// New creates a new Spotify client, with the given clientID and
// clientSecret, authenticating via the client-credentials flow.
func New(clientID, clientSecret string, logger *log.Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		limiter:      rate.NewLimiter(rate.Every(time.Second/10), 1),
		logger:       logger,
	}
}

type Client struct {
	mu sync.Mutex

	clientID     string
	clientSecret string

	limiter *rate.Limiter
	logger  *log.Logger

	accessToken string
	expiresAt   time.Time
}

// FetchUserPlaylists lists all of a user's public playlists, following
// pagination.
func (spo *Client) FetchUserPlaylists(ctx context.Context, user string) ([]PlaylistObject, error) {
	var playlists []PlaylistObject
	for offset := 0; ; offset += 50 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := url.Values{}
		query.Set("limit", "50")
		query.Set("offset", strconv.Itoa(offset))
		resp, err := spo.get(ctx, fmt.Sprintf("https://api.spotify.com/v1/users/%s/playlists", user), query)
		if err != nil {
			return nil, err
		}

		var page struct {
			Items []PlaylistObject `json:"items"`
			Next  string           `json:"next"`
		}
		err = json.NewDecoder(resp).Decode(&page)
		resp.Close()
		if err != nil {
			return nil, fmt.Errorf("playlists decode error: %w", err)
		}

		playlists = append(playlists, page.Items...)
		if page.Next == "" {
			break
		}
	}
	return playlists, nil
}

// FetchPlaylistTracks returns the playlist's full track sequence, in
// playlist order, following pagination. Entries with no track (for
// example, removed episodes) are skipped.
func (spo *Client) FetchPlaylistTracks(ctx context.Context, playlistID string) ([]TrackObject, error) {
	var tracks []TrackObject
	for offset := 0; ; offset += 100 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := url.Values{}
		query.Set("limit", "100")
		query.Set("offset", strconv.Itoa(offset))
		resp, err := spo.get(ctx, fmt.Sprintf("https://api.spotify.com/v1/playlists/%s/tracks", playlistID), query)
		if err != nil {
			return nil, err
		}

		var page struct {
			Items []struct {
				Track *TrackObject `json:"track"`
			} `json:"items"`
			Next string `json:"next"`
		}
		err = json.NewDecoder(resp).Decode(&page)
		resp.Close()
		if err != nil {
			return nil, fmt.Errorf("playlist tracks decode error: %w", err)
		}

		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			tracks = append(tracks, *item.Track)
		}
		if page.Next == "" {
			break
		}
	}
	return tracks, nil
}

// FetchArtists fetches up to MaxArtistsPerRequest full artist records
// in one call.
func (spo *Client) FetchArtists(ctx context.Context, spotifyIDs []string) ([]ArtistObject, error) {
	if len(spotifyIDs) > MaxArtistsPerRequest {
		return nil, fmt.Errorf("requested %d artists; the endpoint accepts at most %d", len(spotifyIDs), MaxArtistsPerRequest)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(spotifyIDs, ","))
	resp, err := spo.get(ctx, "https://api.spotify.com/v1/artists", query)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	var results struct {
		Artists []ArtistObject `json:"artists"`
	}
	if err := json.NewDecoder(resp).Decode(&results); err != nil {
		return nil, fmt.Errorf("artists decode error: %w", err)
	}
	return results.Artists, nil
}

// FetchAlbums fetches up to MaxAlbumsPerRequest full album records in
// one call.
func (spo *Client) FetchAlbums(ctx context.Context, spotifyIDs []string) ([]AlbumObject, error) {
	if len(spotifyIDs) > MaxAlbumsPerRequest {
		return nil, fmt.Errorf("requested %d albums; the endpoint accepts at most %d", len(spotifyIDs), MaxAlbumsPerRequest)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(spotifyIDs, ","))
	resp, err := spo.get(ctx, "https://api.spotify.com/v1/albums", query)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	var results struct {
		Albums []AlbumObject `json:"albums"`
	}
	if err := json.NewDecoder(resp).Decode(&results); err != nil {
		return nil, fmt.Errorf("albums decode error: %w", err)
	}
	return results.Albums, nil
}

// FetchAudioFeatures fetches descriptors for up to
// MaxAudioFeaturesPerRequest tracks in one call. Tracks the provider
// has no analysis for come back as nulls and are skipped.
func (spo *Client) FetchAudioFeatures(ctx context.Context, spotifyIDs []string) ([]AudioFeaturesObject, error) {
	if len(spotifyIDs) > MaxAudioFeaturesPerRequest {
		return nil, fmt.Errorf("requested %d audio features; the endpoint accepts at most %d", len(spotifyIDs), MaxAudioFeaturesPerRequest)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(spotifyIDs, ","))
	resp, err := spo.get(ctx, "https://api.spotify.com/v1/audio-features", query)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	var results struct {
		AudioFeatures []*AudioFeaturesObject `json:"audio_features"`
	}
	if err := json.NewDecoder(resp).Decode(&results); err != nil {
		return nil, fmt.Errorf("audio features decode error: %w", err)
	}

	var features []AudioFeaturesObject
	for _, f := range results.AudioFeatures {
		if f == nil || f.ID == "" {
			continue
		}
		features = append(features, *f)
	}
	return features, nil
}

func (spo *Client) get(ctx context.Context, baseURL string, query url.Values) (io.ReadCloser, error) {
	spo.mu.Lock()
	defer spo.mu.Unlock()

	for {
		if err := spo.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		u, _ := url.Parse(baseURL)
		u.RawQuery = query.Encode()
		req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}

		token, err := spo.token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", token)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request error: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			wait := time.Minute
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				seconds, err := strconv.ParseInt(retryAfter, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("bad retry-after header '%s': %w", retryAfter, err)
				}
				wait = time.Duration(seconds)*time.Second + time.Second
			}
			spo.logger.Warn("rate limited", "url", baseURL, "wait", wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		if err := request.Error(resp); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch error: %w", err)
		}

		return resp.Body, nil
	}
}

func (spo *Client) token(ctx context.Context) (string, error) {
	if spo.accessToken == "" || spo.expiresAt.Before(time.Now().Add(time.Second)) {
		if err := spo.fetchToken(ctx); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Bearer %s", spo.accessToken), nil
}

func (spo *Client) fetchToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, "POST", "https://accounts.spotify.com/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	up := fmt.Sprintf("%s:%s", spo.clientID, spo.clientSecret)
	credential := base64.StdEncoding.EncodeToString([]byte(up))
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", credential))
	req.Header.Set("Content-type", "application/x-www-form-urlencoded")

	requestAt := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request error: %w", err)
	}
	defer resp.Body.Close()
	if err := request.Error(resp); err != nil {
		return fmt.Errorf("token fetch error: %w", err)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("token decode error: %w", err)
	}

	spo.accessToken = result.AccessToken
	spo.expiresAt = requestAt.Add(time.Duration(result.ExpiresIn) * time.Second)

	return nil
}
