package models

// MediaType distinguishes the two catalog partitions. Item IDs are only
// unique within one partition, so (ID, MediaType) is the identity key.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
	// MediaTypeBoth is valid only on a PreferenceProfile, never on an item.
	MediaTypeBoth MediaType = "both"
)

// CatalogRecord is the raw shape returned by the catalog discover
// endpoints. Movies and series use different field names for title and
// date, so both variants are carried and resolved during normalization.
type CatalogRecord struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	GenreIDs         []int   `json:"genre_ids"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	Runtime          int     `json:"runtime"`
	Adult            bool    `json:"adult"`
}

// ContentItem is a normalized candidate. ReleaseYear and RuntimeMinutes
// use 0 for "unknown".
type ContentItem struct {
	ID               int       `json:"id"`
	MediaType        MediaType `json:"media_type"`
	Title            string    `json:"title"`
	Overview         string    `json:"overview"`
	GenreIDs         []int     `json:"genre_ids"`
	ReleaseYear      int       `json:"release_year,omitempty"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	Popularity       float64   `json:"popularity"`
	OriginalLanguage string    `json:"original_language"`
	RuntimeMinutes   int       `json:"runtime_minutes,omitempty"`
	Adult            bool      `json:"adult,omitempty"`
}

// ContentKey identifies one item across the pool.
type ContentKey struct {
	ID        int       `json:"id"`
	MediaType MediaType `json:"media_type"`
}

// Key returns the identity key of the item.
func (c ContentItem) Key() ContentKey {
	return ContentKey{ID: c.ID, MediaType: c.MediaType}
}
