package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"reelpick/internal/models"
)

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// DiscoverResponse is the TMDB discover response for both movies and TV.
type DiscoverResponse struct {
	Page         int                    `json:"page"`
	Results      []models.CatalogRecord `json:"results"`
	TotalPages   int                    `json:"total_pages"`
	TotalResults int                    `json:"total_results"`
}

// Genre is a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the TMDB genre list response.
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// DiscoverMovies fetches one page of movies sorted by popularity.
func (c *Client) DiscoverMovies(ctx context.Context, page int) (*DiscoverResponse, error) {
	url := fmt.Sprintf(
		"%s/discover/movie?api_key=%s&sort_by=popularity.desc&page=%d",
		c.baseURL, c.apiKey, page,
	)
	return c.discover(ctx, url)
}

// DiscoverSeries fetches one page of TV series sorted by popularity.
func (c *Client) DiscoverSeries(ctx context.Context, page int) (*DiscoverResponse, error) {
	url := fmt.Sprintf(
		"%s/discover/tv?api_key=%s&sort_by=popularity.desc&page=%d",
		c.baseURL, c.apiKey, page,
	)
	return c.discover(ctx, url)
}

func (c *Client) discover(ctx context.Context, url string) (*DiscoverResponse, error) {
	slog.Debug("fetching TMDB discover", "url", url)
	resp, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result DiscoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode discover response: %w", err)
	}
	return &result, nil
}

// GetMovieGenres fetches all movie genres from TMDB.
func (c *Client) GetMovieGenres(ctx context.Context) ([]Genre, error) {
	return c.genres(ctx, "movie")
}

// GetSeriesGenres fetches all TV genres from TMDB.
func (c *Client) GetSeriesGenres(ctx context.Context) ([]Genre, error) {
	return c.genres(ctx, "tv")
}

func (c *Client) genres(ctx context.Context, kind string) ([]Genre, error) {
	url := fmt.Sprintf("%s/genre/%s/list?api_key=%s", c.baseURL, kind, c.apiKey)

	slog.Debug("fetching TMDB genres", "kind", kind)
	resp, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result GenreListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode genres response: %w", err)
	}
	return result.Genres, nil
}

func (c *Client) doGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
