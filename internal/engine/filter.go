package engine

import "reelpick/internal/models"

// Age ratings that require dropping adult-flagged catalog records. The
// catalog only exposes an adult flag, so this is the one hard effect the
// age_rating preference can have.
var restrictedAgeRatings = map[string]bool{
	"kids":   true,
	"family": true,
	"teen":   true,
}

// Filter applies the hard constraints of a profile and returns the
// surviving items in a new slice; the input pool is never modified.
// Unknown release year or runtime passes the respective range check.
func Filter(items []models.ContentItem, prefs models.PreferenceProfile) []models.ContentItem {
	watched := make(map[models.ContentKey]bool, len(prefs.WatchedContent))
	for _, key := range prefs.WatchedContent {
		watched[key] = true
	}

	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if watched[item.Key()] {
			continue
		}
		if prefs.MediaType != models.MediaTypeBoth && prefs.MediaType != "" && item.MediaType != prefs.MediaType {
			continue
		}
		if prefs.YearRange != nil && item.ReleaseYear != 0 && !prefs.YearRange.Contains(item.ReleaseYear) {
			continue
		}
		if prefs.DurationRange != nil && item.RuntimeMinutes != 0 && !prefs.DurationRange.Contains(item.RuntimeMinutes) {
			continue
		}
		if prefs.MinRating > 0 && item.VoteAverage < prefs.MinRating {
			continue
		}
		if countGenreOverlap(item.GenreIDs, prefs.SelectedGenres) == 0 {
			continue
		}
		if item.Adult && restrictedAgeRatings[prefs.AgeRating] {
			continue
		}
		out = append(out, item)
	}
	return out
}

// countGenreOverlap counts how many of the selected genres the item
// carries.
func countGenreOverlap(itemGenres, selected []int) int {
	overlap := 0
	for _, want := range selected {
		for _, have := range itemGenres {
			if have == want {
				overlap++
				break
			}
		}
	}
	return overlap
}
