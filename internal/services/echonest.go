// EchoNest metadata client.
//
// Response types based on the EchoNest v4 song API. The service is an
// opaque collaborator: it maps an (artist, title) pair or an EchoNest song id
// to track identifiers on the streaming providers. Lookup failures never abort
// song creation.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmoutenot/latitune/internal/config"
	"github.com/mmoutenot/latitune/internal/models"
)

// TrackMatch is the outcome of a successful metadata lookup: zero or more
// provider links plus the raw response payload.
type TrackMatch struct {
	EchonestID string
	Links      []models.SongProvider
	Raw        []byte
}

// TrackMatcher resolves provider track identifiers for a song.
type TrackMatcher interface {
	Match(ctx context.Context, artist, title, echonestID string) (*TrackMatch, error)
}

// catalogProviders maps EchoNest catalog names to the provider enum.
var catalogProviders = map[string]string{
	"spotify": "Spotify",
	"youtube": "Youtube",
	"rdio-us": "Rdio",
}

type echonestTrack struct {
	Catalog   string `json:"catalog"`
	ForeignID string `json:"foreign_id"`
}

type echonestSong struct {
	ID     string          `json:"id"`
	Artist string          `json:"artist_name"`
	Title  string          `json:"title"`
	Tracks []echonestTrack `json:"tracks"`
}

type echonestResponse struct {
	Response struct {
		Status struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"status"`
		Songs []echonestSong `json:"songs"`
	} `json:"response"`
}

// EchonestClient implements TrackMatcher against the EchoNest HTTP API.
type EchonestClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewEchonestClient creates a client from configuration.
func NewEchonestClient(cfg *config.Config) *EchonestClient {
	return &EchonestClient{
		baseURL:    strings.TrimSuffix(cfg.EchonestURL, "/"),
		apiKey:     cfg.EchonestAPIKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Match searches for a song and returns its provider track links. When an
// EchoNest id is supplied it takes precedence over the artist/title search.
func (e *EchonestClient) Match(ctx context.Context, artist, title, echonestID string) (*TrackMatch, error) {
	params := url.Values{}
	params.Set("api_key", e.apiKey)
	params.Set("format", "json")
	params.Set("results", "1")
	params.Add("bucket", "tracks")
	params.Add("bucket", "id:spotify")
	params.Add("bucket", "id:rdio-US")

	var endpoint string
	if echonestID != "" {
		endpoint = "/song/profile"
		params.Set("id", echonestID)
	} else {
		endpoint = "/song/search"
		params.Set("artist", artist)
		params.Set("title", title)
	}

	body, err := e.doRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var parsed echonestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode echonest response: %w", err)
	}
	if parsed.Response.Status.Code != 0 {
		return nil, fmt.Errorf("echonest error %d: %s",
			parsed.Response.Status.Code, parsed.Response.Status.Message)
	}
	if len(parsed.Response.Songs) == 0 {
		return nil, fmt.Errorf("no echonest match for %q by %q", title, artist)
	}

	song := parsed.Response.Songs[0]
	match := &TrackMatch{EchonestID: song.ID, Raw: body}
	for _, track := range song.Tracks {
		provider, ok := catalogProviders[strings.ToLower(track.Catalog)]
		if !ok {
			continue
		}
		match.Links = append(match.Links, models.SongProvider{
			Provider:    provider,
			ProviderKey: foreignKey(track.ForeignID),
		})
	}

	return match, nil
}

// doRequest performs a GET against the EchoNest API and returns the body.
func (e *EchonestClient) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	apiURL := e.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("echonest returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// foreignKey strips the catalog prefix from an EchoNest foreign id, e.g.
// "spotify:track:3L7BcXHCG8uT92viO6Tikl" -> "3L7BcXHCG8uT92viO6Tikl".
func foreignKey(foreignID string) string {
	if i := strings.LastIndex(foreignID, ":"); i >= 0 {
		return foreignID[i+1:]
	}
	return foreignID
}
