package engine

import (
	"math"
	"sort"

	"reelpick/internal/models"
)

// Rule types recognized in the recommendation_rules table. Each maps to
// one scoring component.
const (
	RuleGenreMatch    = "genre_match"
	RuleRating        = "rating"
	RulePopularity    = "popularity"
	RuleRecency       = "recency"
	RuleLanguageMatch = "language_match"
	RuleToneMatch     = "tone_match"
)

// Reason labels emitted by the scoring components.
const (
	ReasonGenreMatch    = "Genre match"
	ReasonHighlyRated   = "Highly rated"
	ReasonPopularPick   = "Popular pick"
	ReasonHiddenGem     = "Hidden gem"
	ReasonRecentRelease = "Recent release"
	ReasonLanguageMatch = "Matches your language"
	ReasonToneMatch     = "Fits the mood"
)

// DefaultReliableVoteCount is the vote-count threshold below which an
// item's rating is damped toward the neutral midpoint instead of being
// trusted at face value.
const DefaultReliableVoteCount = 100

// ratingMidpoint is the neutral rating on the 0..10 scale. Ratings above
// it add to the score, ratings below it subtract.
const ratingMidpoint = 5.0

// recencyHorizonYears is how far back the recency signal reaches; older
// releases contribute nothing.
const recencyHorizonYears = 20

// Weights holds the per-component scoring weights. The genre weight must
// dominate: a full genre mismatch may never be compensated by any single
// soft signal.
type Weights struct {
	GenreOverlap float64
	Rating       float64
	Popularity   float64
	Recency      float64
	Language     float64
	Tone         float64
}

// DefaultWeights returns the tuned default weighting.
func DefaultWeights() Weights {
	return Weights{
		GenreOverlap: 50,
		Rating:       20,
		Popularity:   10,
		Recency:      5,
		Language:     5,
		Tone:         8,
	}
}

// WithRules overlays rule weights loaded from storage onto w. Unknown
// rule types are ignored.
func (w Weights) WithRules(rules map[string]float64) Weights {
	for ruleType, weight := range rules {
		switch ruleType {
		case RuleGenreMatch:
			w.GenreOverlap = weight
		case RuleRating:
			w.Rating = weight
		case RulePopularity:
			w.Popularity = weight
		case RuleRecency:
			w.Recency = weight
		case RuleLanguageMatch:
			w.Language = weight
		case RuleToneMatch:
			w.Tone = weight
		}
	}
	return w
}

// DefaultToneGenres maps emotional tones to catalog genre codes that
// correlate with them. Tone is not a catalog-native field; this heuristic
// is configuration and can be replaced wholesale via Config.ToneGenres.
func DefaultToneGenres() map[string][]int {
	return map[string][]int{
		models.ToneLight:     {35, 10749, 10751},        // comedy, romance, family
		models.ToneUplifting: {35, 16, 10751, 10402},    // comedy, animation, family, music
		models.ToneDark:      {80, 18, 9648},            // crime, drama, mystery
		models.ToneIntense:   {53, 27, 28, 10752},       // thriller, horror, action, war
	}
}

// popularityTargets maps a preferred popularity level to a target within
// the pool-normalized 0..1 popularity scale.
var popularityTargets = map[string]float64{
	models.PopularityNiche:       0.2,
	models.PopularityMainstream:  0.6,
	models.PopularityBlockbuster: 0.9,
}

// scoreItem computes the weighted score of one item and the reasons for
// it, sorted by contribution descending. Components contributing nothing
// emit no reason. maxPop is the pool's popularity ceiling, used to
// normalize the popularity signal.
func (e *Engine) scoreItem(item models.ContentItem, prefs models.PreferenceProfile, maxPop float64) (float64, []models.MatchReason) {
	var score float64
	reasons := make([]models.MatchReason, 0, 6)

	add := func(label string, contribution float64) {
		score += contribution
		if contribution > 0 {
			reasons = append(reasons, models.MatchReason{Label: label, Contribution: contribution})
		}
	}

	// Genre overlap: fraction of the selected genres the item carries.
	// Primary relevance signal, dominant weight.
	overlap := countGenreOverlap(item.GenreIDs, prefs.SelectedGenres)
	add(ReasonGenreMatch, float64(overlap)/float64(len(prefs.SelectedGenres))*e.weights.GenreOverlap)

	// Rating relative to the neutral midpoint. Thin vote samples are
	// damped toward the midpoint proportionally to their size, so an 8.0
	// on ten votes moves the score far less than an 8.0 on a thousand.
	rating := item.VoteAverage
	if item.VoteCount < e.reliableVotes {
		rating = ratingMidpoint + (rating-ratingMidpoint)*float64(item.VoteCount)/float64(e.reliableVotes)
	}
	add(ReasonHighlyRated, (rating-ratingMidpoint)/ratingMidpoint*e.weights.Rating)

	// Popularity band: active only when the profile asks for one.
	if target, ok := popularityTargets[prefs.PopularityLevel]; ok {
		closeness := 1 - math.Abs(item.Popularity/maxPop-target)
		if closeness < 0 {
			closeness = 0
		}
		label := ReasonPopularPick
		if prefs.PopularityLevel == models.PopularityNiche {
			label = ReasonHiddenGem
		}
		add(label, closeness*e.weights.Popularity)
	}

	// Recency: mild tie-breaker, suppressed when an explicit year range
	// already hard-filtered the pool.
	if prefs.YearRange == nil && item.ReleaseYear > 0 {
		age := e.now().Year() - item.ReleaseYear
		if age < 0 {
			age = 0
		}
		freshness := 1 - float64(age)/recencyHorizonYears
		if freshness < 0 {
			freshness = 0
		}
		add(ReasonRecentRelease, freshness*e.weights.Recency)
	}

	// Language: binary bonus on exact match.
	if prefs.LanguagePreference != "" && item.OriginalLanguage == prefs.LanguagePreference {
		add(ReasonLanguageMatch, e.weights.Language)
	}

	// Tone: soft overlap with the genre codes mapped to the requested
	// emotional tone.
	if toneGenres := e.toneGenres[prefs.EmotionalTone]; len(toneGenres) > 0 {
		matched := countGenreOverlap(item.GenreIDs, toneGenres)
		add(ReasonToneMatch, float64(matched)/float64(len(toneGenres))*e.weights.Tone)
	}

	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].Contribution > reasons[j].Contribution
	})
	return score, reasons
}
