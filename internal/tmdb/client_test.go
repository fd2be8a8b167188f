package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 2,
			"total_pages": 10,
			"total_results": 200,
			"results": [
				{"id": 603, "title": "The Matrix", "release_date": "1999-03-31",
				 "genre_ids": [28, 878], "vote_average": 8.2, "vote_count": 24000,
				 "popularity": 85.3, "original_language": "en"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	resp, err := client.DiscoverMovies(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.TotalPages)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 603, resp.Results[0].ID)
	assert.Equal(t, "The Matrix", resp.Results[0].Title)
	assert.Equal(t, []int{28, 878}, resp.Results[0].GenreIDs)
}

func TestDiscoverSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/tv", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1,
			"total_pages": 1,
			"results": [
				{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20",
				 "genre_ids": [18, 80], "vote_average": 8.9, "vote_count": 12000}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	resp, err := client.DiscoverSeries(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Breaking Bad", resp.Results[0].Name)
	assert.Equal(t, "2008-01-20", resp.Results[0].FirstAirDate)
}

func TestGetMovieGenres(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"genres": [{"id": 28, "name": "Action"}, {"id": 35, "name": "Comedy"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	genres, err := client.GetMovieGenres(context.Background())
	require.NoError(t, err)

	require.Len(t, genres, 2)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestGetSeriesGenres(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/tv/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"genres": [{"id": 10759, "name": "Action & Adventure"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	genres, err := client.GetSeriesGenres(context.Background())
	require.NoError(t, err)

	require.Len(t, genres, 1)
	assert.Equal(t, 10759, genres[0].ID)
}

func TestDiscover_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message": "Invalid API key"}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", srv.URL)
	_, err := client.DiscoverMovies(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
