package tmdb

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 10 * time.Second
)

// Client wraps the three read-only TMDB queries the tracker needs.
// Every call carries the API key and the configured response language.
type Client struct {
	resty *resty.Client
}

// NewClient creates a TMDB client with a bounded request timeout
func NewClient(apiKey, language string) *Client {
	restyClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetQueryParam("api_key", apiKey).
		SetQueryParam("language", language).
		SetTimeout(defaultTimeout)

	return &Client{resty: restyClient}
}

// SetBaseURL overrides the API base URL, used by tests
func (c *Client) SetBaseURL(baseURL string) {
	c.resty.SetBaseURL(baseURL)
}

// Search queries /search/tv. Callers use the first result only.
func (c *Client) Search(query string) ([]SearchResult, error) {
	var result searchResponse
	resp, err := c.resty.R().
		SetQueryParam("query", query).
		SetResult(&result).
		Get("/search/tv")

	if err != nil {
		return nil, fmt.Errorf("failed to search shows for %q: %w", query, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("TMDB API error searching %q: status %s", query, resp.Status())
	}

	return result.Results, nil
}

// GetShowDetails fetches the /tv/{id} summary: name, season count,
// lifecycle status, origin country and the next/last air-date pointers.
func (c *Client) GetShowDetails(tmdbID int) (*ShowDetails, error) {
	var details ShowDetails
	resp, err := c.resty.R().
		SetResult(&details).
		Get(fmt.Sprintf("/tv/%d", tmdbID))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for show %d: %w", tmdbID, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("TMDB API error fetching show %d: status %s", tmdbID, resp.Status())
	}

	return &details, nil
}

// GetSeasonEpisodes fetches /tv/{id}/season/{n} and returns only the
// episodes with a confirmed air date. An unscheduled episode is not an
// update worth tracking, so undated entries are dropped here.
func (c *Client) GetSeasonEpisodes(tmdbID, seasonNumber int) ([]Episode, error) {
	var season seasonResponse
	resp, err := c.resty.R().
		SetResult(&season).
		Get(fmt.Sprintf("/tv/%d/season/%d", tmdbID, seasonNumber))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch season %d of show %d: %w", seasonNumber, tmdbID, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("TMDB API error fetching season %d of show %d: status %s", seasonNumber, tmdbID, resp.Status())
	}

	dated := make([]Episode, 0, len(season.Episodes))
	for _, ep := range season.Episodes {
		if ep.AirDate == "" {
			continue
		}
		dated = append(dated, ep)
	}

	return dated, nil
}
