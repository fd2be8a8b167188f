package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelpick/internal/models"
	"reelpick/internal/tmdb"
)

// stubCatalog serves canned discover pages and genre lists and records
// what was asked.
type stubCatalog struct {
	moviePages       map[int]*tmdb.DiscoverResponse
	seriesPages      map[int]*tmdb.DiscoverResponse
	movieGenres      []tmdb.Genre
	seriesGenres     []tmdb.Genre
	failMovies       bool
	failMovieGenres  bool
	failSeriesGenres bool
	movieCalls       []int
	seriesCalls      []int
}

func (s *stubCatalog) DiscoverMovies(_ context.Context, page int) (*tmdb.DiscoverResponse, error) {
	s.movieCalls = append(s.movieCalls, page)
	if s.failMovies {
		return nil, fmt.Errorf("catalog unavailable")
	}
	if resp, ok := s.moviePages[page]; ok {
		return resp, nil
	}
	return &tmdb.DiscoverResponse{Page: page, TotalPages: page}, nil
}

func (s *stubCatalog) DiscoverSeries(_ context.Context, page int) (*tmdb.DiscoverResponse, error) {
	s.seriesCalls = append(s.seriesCalls, page)
	if resp, ok := s.seriesPages[page]; ok {
		return resp, nil
	}
	return &tmdb.DiscoverResponse{Page: page, TotalPages: page}, nil
}

func (s *stubCatalog) GetMovieGenres(_ context.Context) ([]tmdb.Genre, error) {
	if s.failMovieGenres {
		return nil, fmt.Errorf("catalog unavailable")
	}
	return s.movieGenres, nil
}

func (s *stubCatalog) GetSeriesGenres(_ context.Context) ([]tmdb.Genre, error) {
	if s.failSeriesGenres {
		return nil, fmt.Errorf("catalog unavailable")
	}
	return s.seriesGenres, nil
}

func newPoolService(catalog CatalogClient, pages int) *RecommendationService {
	return NewRecommendationService(nil, nil, nil, catalog, nil, pages)
}

func TestBuildPool_CombinesPartitionsForBoth(t *testing.T) {
	catalog := &stubCatalog{
		moviePages: map[int]*tmdb.DiscoverResponse{
			1: {Page: 1, TotalPages: 1, Results: []models.CatalogRecord{
				{ID: 1, Title: "Movie One", ReleaseDate: "2020-05-01"},
			}},
		},
		seriesPages: map[int]*tmdb.DiscoverResponse{
			1: {Page: 1, TotalPages: 1, Results: []models.CatalogRecord{
				{ID: 1, Name: "Series One", FirstAirDate: "2019-02-01"},
			}},
		},
	}

	pool := newPoolService(catalog, 3).buildPool(context.Background(), models.MediaTypeBoth)
	require.Len(t, pool, 2)
	assert.Equal(t, models.MediaTypeMovie, pool[0].MediaType)
	assert.Equal(t, models.MediaTypeSeries, pool[1].MediaType)
	// Same numeric ID across partitions stays distinct.
	assert.NotEqual(t, pool[0].Key(), pool[1].Key())
}

func TestBuildPool_MovieOnlySkipsSeries(t *testing.T) {
	catalog := &stubCatalog{}
	_ = newPoolService(catalog, 2).buildPool(context.Background(), models.MediaTypeMovie)

	assert.NotEmpty(t, catalog.movieCalls)
	assert.Empty(t, catalog.seriesCalls)
}

func TestBuildPool_StopsAtTotalPages(t *testing.T) {
	catalog := &stubCatalog{
		moviePages: map[int]*tmdb.DiscoverResponse{
			1: {Page: 1, TotalPages: 1, Results: []models.CatalogRecord{
				{ID: 1, Title: "Only Page"},
			}},
		},
	}

	_ = newPoolService(catalog, 5).buildPool(context.Background(), models.MediaTypeMovie)
	assert.Equal(t, []int{1}, catalog.movieCalls)
}

func TestBuildPool_PageFailureDegradesToEmptyPool(t *testing.T) {
	catalog := &stubCatalog{failMovies: true}

	pool := newPoolService(catalog, 3).buildPool(context.Background(), models.MediaTypeMovie)
	assert.Empty(t, pool)
	assert.Equal(t, []int{1, 2, 3}, catalog.movieCalls)
}

func TestGetGenres_MergesPartitionsAndDedupes(t *testing.T) {
	catalog := &stubCatalog{
		movieGenres: []tmdb.Genre{
			{ID: 28, Name: "Action"},
			{ID: 18, Name: "Drama"},
		},
		seriesGenres: []tmdb.Genre{
			{ID: 18, Name: "Drama"},
			{ID: 10759, Name: "Action & Adventure"},
		},
	}

	genres, err := newPoolService(catalog, 1).GetGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, []tmdb.Genre{
		{ID: 18, Name: "Drama"},
		{ID: 28, Name: "Action"},
		{ID: 10759, Name: "Action & Adventure"},
	}, genres)
}

func TestGetGenres_DegradesWhenOnePartitionFails(t *testing.T) {
	catalog := &stubCatalog{
		failMovieGenres: true,
		seriesGenres:    []tmdb.Genre{{ID: 16, Name: "Animation"}},
	}

	genres, err := newPoolService(catalog, 1).GetGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Animation", genres[0].Name)
}

func TestGetGenres_ErrorsWhenBothPartitionsFail(t *testing.T) {
	catalog := &stubCatalog{failMovieGenres: true, failSeriesGenres: true}

	_, err := newPoolService(catalog, 1).GetGenres(context.Background())
	require.Error(t, err)
}

func TestBuildPool_DropsMalformedRecords(t *testing.T) {
	catalog := &stubCatalog{
		moviePages: map[int]*tmdb.DiscoverResponse{
			1: {Page: 1, TotalPages: 1, Results: []models.CatalogRecord{
				{ID: 1, Title: "Good"},
				{Overview: "no id, no title"},
			}},
		},
	}

	pool := newPoolService(catalog, 1).buildPool(context.Background(), models.MediaTypeMovie)
	require.Len(t, pool, 1)
	assert.Equal(t, "Good", pool[0].Title)
}
