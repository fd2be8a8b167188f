package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"reelpick/internal/engine"
	"reelpick/internal/models"
	"reelpick/internal/repository"
	"reelpick/internal/tmdb"
)

const (
	recCacheTTL = 10 * time.Minute
	// Genre catalogs change on the order of never.
	genreCacheTTL = 24 * time.Hour
)

// CatalogClient is the slice of the TMDB client the recommendation flow
// needs; tests substitute it with a stub.
type CatalogClient interface {
	DiscoverMovies(ctx context.Context, page int) (*tmdb.DiscoverResponse, error)
	DiscoverSeries(ctx context.Context, page int) (*tmdb.DiscoverResponse, error)
	GetMovieGenres(ctx context.Context) ([]tmdb.Genre, error)
	GetSeriesGenres(ctx context.Context) ([]tmdb.Genre, error)
}

type RecommendationService struct {
	repo          *repository.RecommendationRepository
	userRepo      *repository.UserRepository
	users         *UserService
	catalog       CatalogClient
	rdb           *redis.Client
	discoverPages int
}

func NewRecommendationService(
	repo *repository.RecommendationRepository,
	userRepo *repository.UserRepository,
	users *UserService,
	catalog CatalogClient,
	rdb *redis.Client,
	discoverPages int,
) *RecommendationService {
	if discoverPages < 1 {
		discoverPages = 1
	}
	return &RecommendationService{
		repo:          repo,
		userRepo:      userRepo,
		users:         users,
		catalog:       catalog,
		rdb:           rdb,
		discoverPages: discoverPages,
	}
}

// GetRecommendations assembles the candidate pool, runs the scoring
// engine against the user's stored profile and returns the ranked list in
// the requested sort view.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID, limit int, sortView string, refresh bool) (*models.RecommendationResponse, error) {
	if !engine.ValidSortView(sortView) {
		sortView = engine.SortByScore
	}

	cacheKey := fmt.Sprintf("recommendations:%d:%d:%s", userID, limit, sortView)
	if !refresh {
		if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
			var resp models.RecommendationResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				slog.Debug("recommendations cache hit", "user_id", userID)
				return &resp, nil
			}
		}
	}

	pref, err := s.users.GetPreference(userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	profile := pref.Profile()

	watched, err := s.userRepo.GetWatchedContent(userID)
	if err != nil {
		slog.Warn("could not load watched content, skipping exclusion", "user_id", userID, "error", err)
	}
	profile.WatchedContent = watched

	pool := s.buildPool(ctx, profile.MediaType)

	recs, err := s.newEngine().GenerateRecommendations(pool, profile, limit)
	if err != nil {
		return nil, err
	}
	engine.SortRecommendations(recs, sortView)

	// Persist snapshots asynchronously
	go s.persistSnapshots(userID, recs)

	resp := &models.RecommendationResponse{
		UserID:          userID,
		SortedBy:        sortView,
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if data, err := json.Marshal(resp); err == nil {
		s.setCache(ctx, cacheKey, data, recCacheTTL)
	}

	return resp, nil
}

// buildPool fetches and normalizes the candidate pool. Page failures are
// logged and skipped so a partial catalog outage degrades the pool rather
// than failing the request; the engine tolerates a small or empty pool.
func (s *RecommendationService) buildPool(ctx context.Context, mediaType models.MediaType) []models.ContentItem {
	var pool []models.ContentItem

	if mediaType == models.MediaTypeMovie || mediaType == models.MediaTypeBoth {
		pool = append(pool, s.discover(ctx, models.MediaTypeMovie)...)
	}
	if mediaType == models.MediaTypeSeries || mediaType == models.MediaTypeBoth {
		pool = append(pool, s.discover(ctx, models.MediaTypeSeries)...)
	}
	return pool
}

func (s *RecommendationService) discover(ctx context.Context, mediaType models.MediaType) []models.ContentItem {
	var items []models.ContentItem
	for page := 1; page <= s.discoverPages; page++ {
		var (
			resp *tmdb.DiscoverResponse
			err  error
		)
		if mediaType == models.MediaTypeMovie {
			resp, err = s.catalog.DiscoverMovies(ctx, page)
		} else {
			resp, err = s.catalog.DiscoverSeries(ctx, page)
		}
		if err != nil {
			slog.Error("failed to fetch catalog page", "media_type", mediaType, "page", page, "error", err)
			continue
		}
		items = append(items, engine.NormalizePool(resp.Results, mediaType)...)
		if page >= resp.TotalPages {
			break
		}
	}
	return items
}

// newEngine builds an engine from the stored scoring rules and tone
// mappings, falling back to built-in defaults when storage is unavailable.
func (s *RecommendationService) newEngine() *engine.Engine {
	cfg := engine.Config{Weights: engine.DefaultWeights()}

	if rules, err := s.repo.GetActiveRules(); err != nil {
		slog.Warn("could not load scoring rules, using defaults", "error", err)
	} else {
		ruleWeights := make(map[string]float64, len(rules))
		for _, r := range rules {
			ruleWeights[r.RuleType] = r.Weight
		}
		cfg.Weights = cfg.Weights.WithRules(ruleWeights)
	}

	if tones, err := s.repo.GetToneGenres(); err != nil {
		slog.Warn("could not load tone mappings, using defaults", "error", err)
	} else if len(tones) > 0 {
		cfg.ToneGenres = tones
	}

	return engine.New(cfg)
}

func (s *RecommendationService) persistSnapshots(userID int, recs []models.Recommendation) {
	if err := s.repo.ClearSnapshots(userID); err != nil {
		slog.Error("failed to clear snapshots", "user_id", userID, "error", err)
		return
	}
	for _, rec := range recs {
		if err := s.repo.UpsertSnapshot(userID, rec.Key(), rec.Score); err != nil {
			slog.Error("failed to persist snapshot", "user_id", userID, "content_id", rec.ID, "error", err)
		}
	}
}

// GetRules returns all active scoring rules.
func (s *RecommendationService) GetRules(ctx context.Context) ([]models.ScoringRule, error) {
	return s.repo.GetActiveRules()
}

// GetGenres returns the merged movie and TV genre catalog so the
// preference wizard can resolve genre IDs to display names. One failing
// partition degrades to the other; only a total outage is an error.
func (s *RecommendationService) GetGenres(ctx context.Context) ([]tmdb.Genre, error) {
	const cacheKey = "genres:all"
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		var genres []tmdb.Genre
		if json.Unmarshal([]byte(cached), &genres) == nil {
			return genres, nil
		}
	}

	movieGenres, movieErr := s.catalog.GetMovieGenres(ctx)
	if movieErr != nil {
		slog.Warn("could not fetch movie genres", "error", movieErr)
	}
	seriesGenres, seriesErr := s.catalog.GetSeriesGenres(ctx)
	if seriesErr != nil {
		slog.Warn("could not fetch series genres", "error", seriesErr)
	}
	if movieErr != nil && seriesErr != nil {
		return nil, fmt.Errorf("fetch genres: %w", movieErr)
	}

	genres := mergeGenres(movieGenres, seriesGenres)

	if data, err := json.Marshal(genres); err == nil {
		s.setCache(ctx, cacheKey, data, genreCacheTTL)
	}
	return genres, nil
}

// mergeGenres joins the two partition lists. Both partitions share most
// IDs; the movie entry wins on collision and the result is ordered by ID
// so repeated calls serve identical output.
func mergeGenres(movie, series []tmdb.Genre) []tmdb.Genre {
	seen := make(map[int]bool, len(movie)+len(series))
	merged := make([]tmdb.Genre, 0, len(movie)+len(series))
	for _, g := range movie {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		merged = append(merged, g)
	}
	for _, g := range series {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		merged = append(merged, g)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged
}

// Redis helpers

func (s *RecommendationService) getFromCache(ctx context.Context, key string) (string, error) {
	if s.rdb == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.rdb.Get(ctx, key).Result()
}

func (s *RecommendationService) setCache(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
