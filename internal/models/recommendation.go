package models

import "time"

// MatchReason explains one scoring component's contribution to an item's
// rank. Reasons are ordered by descending contribution.
type MatchReason struct {
	Label        string  `json:"label"`
	Contribution float64 `json:"contribution"`
}

// Recommendation is a scored, annotated candidate.
type Recommendation struct {
	ContentItem
	Score        float64       `json:"recommendation_score"`
	MatchReasons []MatchReason `json:"match_reasons"`
}

// RecommendationResponse wraps the ranked list.
type RecommendationResponse struct {
	UserID          int              `json:"user_id"`
	SortedBy        string           `json:"sorted_by"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     string           `json:"generated_at"`
}

// ScoringRule defines one weighted scoring component, loaded from the
// recommendation_rules table.
type ScoringRule struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	RuleType  string    `json:"rule_type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommendationSnapshot stores one computed recommendation score for
// later inspection.
type RecommendationSnapshot struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	ContentID   int       `json:"content_id"`
	MediaType   MediaType `json:"media_type"`
	Score       float64   `json:"score"`
	GeneratedAt time.Time `json:"generated_at"`
}
