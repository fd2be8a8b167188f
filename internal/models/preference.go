package models

import "time"

// User represents a registered user.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// IntRange is an inclusive numeric bound, used for release year and
// runtime minutes.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the inclusive bounds.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Emotional tones the wizard can select. The tone-to-genre mapping is
// configuration, not code; see the tone_genre_mappings table.
const (
	ToneLight     = "light"
	ToneDark      = "dark"
	ToneUplifting = "uplifting"
	ToneIntense   = "intense"
)

// Popularity bands a user can bias toward.
const (
	PopularityNiche       = "niche"
	PopularityMainstream  = "mainstream"
	PopularityBlockbuster = "blockbuster"
)

// PreferenceProfile describes user intent for one recommendation request.
// Zero values mean "no constraint": empty strings for the soft signals,
// nil for the ranges, 0 for MinRating.
type PreferenceProfile struct {
	MediaType          MediaType    `json:"media_type"`
	SelectedGenres     []int        `json:"selected_genres"`
	YearRange          *IntRange    `json:"year_range,omitempty"`
	DurationRange      *IntRange    `json:"duration_range,omitempty"`
	MinRating          float64      `json:"min_rating,omitempty"`
	EmotionalTone      string       `json:"emotional_tone,omitempty"`
	LanguagePreference string       `json:"language_preference,omitempty"`
	PopularityLevel    string       `json:"popularity_level,omitempty"`
	AgeRating          string       `json:"age_rating,omitempty"`
	WatchedContent     []ContentKey `json:"watched_content,omitempty"`
}

// UserPreference is the stored form of a profile, one row per user.
type UserPreference struct {
	ID                 int       `json:"id"`
	UserID             int       `json:"user_id"`
	MediaType          MediaType `json:"media_type"`
	SelectedGenres     []int     `json:"selected_genres"`
	YearMin            int       `json:"year_min,omitempty"`
	YearMax            int       `json:"year_max,omitempty"`
	DurationMin        int       `json:"duration_min,omitempty"`
	DurationMax        int       `json:"duration_max,omitempty"`
	MinRating          float64   `json:"min_rating,omitempty"`
	EmotionalTone      string    `json:"emotional_tone,omitempty"`
	LanguagePreference string    `json:"language_preference,omitempty"`
	PopularityLevel    string    `json:"popularity_level,omitempty"`
	AgeRating          string    `json:"age_rating,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Profile converts the stored row into the engine's input shape. Bounds
// stored as (0, 0) mean the range was never set.
func (p UserPreference) Profile() PreferenceProfile {
	profile := PreferenceProfile{
		MediaType:          p.MediaType,
		SelectedGenres:     p.SelectedGenres,
		MinRating:          p.MinRating,
		EmotionalTone:      p.EmotionalTone,
		LanguagePreference: p.LanguagePreference,
		PopularityLevel:    p.PopularityLevel,
		AgeRating:          p.AgeRating,
	}
	if p.MediaType == "" {
		profile.MediaType = MediaTypeBoth
	}
	if p.YearMin != 0 || p.YearMax != 0 {
		profile.YearRange = &IntRange{Min: p.YearMin, Max: p.YearMax}
	}
	if p.DurationMin != 0 || p.DurationMax != 0 {
		profile.DurationRange = &IntRange{Min: p.DurationMin, Max: p.DurationMax}
	}
	return profile
}

// SetPreferenceRequest is the request body for setting preferences.
type SetPreferenceRequest struct {
	MediaType          MediaType `json:"media_type"`
	SelectedGenres     []int     `json:"selected_genres"`
	YearMin            int       `json:"year_min"`
	YearMax            int       `json:"year_max"`
	DurationMin        int       `json:"duration_min"`
	DurationMax        int       `json:"duration_max"`
	MinRating          float64   `json:"min_rating"`
	EmotionalTone      string    `json:"emotional_tone"`
	LanguagePreference string    `json:"language_preference"`
	PopularityLevel    string    `json:"popularity_level"`
	AgeRating          string    `json:"age_rating"`
}

// UserInteraction records user activity with a catalog item.
type UserInteraction struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	ContentID       int       `json:"content_id"`
	MediaType       MediaType `json:"media_type"`
	InteractionType string    `json:"interaction_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateInteractionRequest is the request body for recording an interaction.
type CreateInteractionRequest struct {
	ContentID       int       `json:"content_id"`
	MediaType       MediaType `json:"media_type"`
	InteractionType string    `json:"interaction_type"`
}

// Valid interaction types
var ValidInteractionTypes = map[string]bool{
	"like":      true,
	"dislike":   true,
	"watchlist": true,
	"watched":   true,
}
