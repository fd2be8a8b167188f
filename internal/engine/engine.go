// Package engine implements the recommendation scoring pipeline:
// normalize, filter, score, rank. It is pure computation over an
// in-memory pool, performs no I/O and is safe for concurrent use.
package engine

import (
	"errors"
	"time"

	"reelpick/internal/models"
)

// ErrNoSelectedGenres is returned when a profile arrives without a single
// selected genre. Genre filtering is mandatory, so there is nothing
// meaningful to rank.
var ErrNoSelectedGenres = errors.New("profile must select at least one genre")

// Config tunes the engine. Zero values fall back to the defaults, so
// Config{} gives a fully working engine.
type Config struct {
	Weights           Weights
	ToneGenres        map[string][]int
	ReliableVoteCount int
	Now               func() time.Time
}

// Engine scores and ranks candidate pools against preference profiles.
type Engine struct {
	weights       Weights
	toneGenres    map[string][]int
	reliableVotes int
	now           func() time.Time
}

// New creates an engine from cfg, filling unset fields with defaults.
func New(cfg Config) *Engine {
	e := &Engine{
		weights:       cfg.Weights,
		toneGenres:    cfg.ToneGenres,
		reliableVotes: cfg.ReliableVoteCount,
		now:           cfg.Now,
	}
	if e.weights == (Weights{}) {
		e.weights = DefaultWeights()
	}
	if e.toneGenres == nil {
		e.toneGenres = DefaultToneGenres()
	}
	if e.reliableVotes <= 0 {
		e.reliableVotes = DefaultReliableVoteCount
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// GenerateRecommendations runs the full pipeline over an already
// normalized pool: dedupe on (ID, MediaType), hard-filter, score, rank,
// truncate to limit. An empty pool or an empty filtered set yields an
// empty list, not an error. A limit of zero or less also yields an empty
// list. The only error condition is a structurally invalid profile.
func (e *Engine) GenerateRecommendations(pool []models.ContentItem, prefs models.PreferenceProfile, limit int) ([]models.Recommendation, error) {
	if len(prefs.SelectedGenres) == 0 {
		return nil, ErrNoSelectedGenres
	}
	if limit <= 0 {
		return []models.Recommendation{}, nil
	}

	filtered := Filter(dedupe(pool), prefs)

	recs := make([]models.Recommendation, 0, len(filtered))
	maxPop := maxPopularity(filtered)
	for _, item := range filtered {
		score, reasons := e.scoreItem(item, prefs, maxPop)
		recs = append(recs, models.Recommendation{
			ContentItem:  item,
			Score:        score,
			MatchReasons: reasons,
		})
	}

	rank(recs)
	if limit < len(recs) {
		recs = recs[:limit]
	}
	return recs, nil
}

// dedupe drops later duplicates of the same (ID, MediaType) key. The
// caller is supposed to hand over a deduplicated pool already; this is a
// safety net, first occurrence wins.
func dedupe(pool []models.ContentItem) []models.ContentItem {
	seen := make(map[models.ContentKey]bool, len(pool))
	out := make([]models.ContentItem, 0, len(pool))
	for _, item := range pool {
		key := item.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func maxPopularity(items []models.ContentItem) float64 {
	var max float64
	for _, item := range items {
		if item.Popularity > max {
			max = item.Popularity
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}
