package engine

import (
	"strconv"

	"reelpick/internal/models"
)

// Normalize coerces one raw catalog record into a ContentItem. Movies
// carry title/release_date, series carry name/first_air_date; both are
// accepted. Returns false when the record has neither an ID nor any
// title, in which case it is dropped rather than failing the batch.
func Normalize(raw models.CatalogRecord, mediaType models.MediaType) (models.ContentItem, bool) {
	title := raw.Title
	if title == "" {
		title = raw.Name
	}
	if raw.ID == 0 && title == "" {
		return models.ContentItem{}, false
	}

	date := raw.ReleaseDate
	if date == "" {
		date = raw.FirstAirDate
	}

	item := models.ContentItem{
		ID:               raw.ID,
		MediaType:        mediaType,
		Title:            title,
		Overview:         raw.Overview,
		GenreIDs:         append([]int(nil), raw.GenreIDs...),
		ReleaseYear:      parseYear(date),
		VoteAverage:      clamp(raw.VoteAverage, 0, 10),
		VoteCount:        raw.VoteCount,
		Popularity:       raw.Popularity,
		OriginalLanguage: raw.OriginalLanguage,
		RuntimeMinutes:   raw.Runtime,
		Adult:            raw.Adult,
	}
	if item.VoteCount < 0 {
		item.VoteCount = 0
	}
	if item.Popularity < 0 {
		item.Popularity = 0
	}
	if item.RuntimeMinutes < 0 {
		item.RuntimeMinutes = 0
	}
	return item, true
}

// NormalizePool normalizes a batch, silently dropping records Normalize
// rejects.
func NormalizePool(raw []models.CatalogRecord, mediaType models.MediaType) []models.ContentItem {
	items := make([]models.ContentItem, 0, len(raw))
	for _, r := range raw {
		if item, ok := Normalize(r, mediaType); ok {
			items = append(items, item)
		}
	}
	return items
}

// parseYear extracts the leading year of a YYYY-MM-DD date string.
// Absent or unparseable dates yield 0, meaning "unknown".
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year < 1870 || year > 2200 {
		return 0
	}
	return year
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
