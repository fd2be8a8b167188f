package engine

import (
	"sort"

	"reelpick/internal/models"
)

// Secondary sort views over an already scored set. These are comparator
// swaps only; no re-scoring happens.
const (
	SortByScore      = "score"
	SortByRating     = "rating"
	SortByPopularity = "popularity"
	SortByYear       = "year"
)

// ValidSortView reports whether the presentation layer asked for a known
// view.
func ValidSortView(view string) bool {
	switch view {
	case SortByScore, SortByRating, SortByPopularity, SortByYear:
		return true
	}
	return false
}

// rank orders recommendations by score descending, breaking ties by vote
// count descending, then ID ascending, then media type, so repeated runs
// over identical input produce identical output.
func rank(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return lessByIdentity(a, b)
	})
}

// SortRecommendations re-sorts a scored set in place for one of the
// secondary views. Unknown views fall back to the default score order.
func SortRecommendations(recs []models.Recommendation, view string) {
	switch view {
	case SortByRating:
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].VoteAverage != recs[j].VoteAverage {
				return recs[i].VoteAverage > recs[j].VoteAverage
			}
			return lessByIdentity(recs[i], recs[j])
		})
	case SortByPopularity:
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].Popularity != recs[j].Popularity {
				return recs[i].Popularity > recs[j].Popularity
			}
			return lessByIdentity(recs[i], recs[j])
		})
	case SortByYear:
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].ReleaseYear != recs[j].ReleaseYear {
				return recs[i].ReleaseYear > recs[j].ReleaseYear
			}
			return lessByIdentity(recs[i], recs[j])
		})
	default:
		rank(recs)
	}
}

func lessByIdentity(a, b models.Recommendation) bool {
	if a.VoteCount != b.VoteCount {
		return a.VoteCount > b.VoteCount
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.MediaType < b.MediaType
}
