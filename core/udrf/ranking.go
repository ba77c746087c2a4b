package udrf

import "sort"

// rankLess orders expert-reviewed departments strictly first, then by effective score descending.
// Equal entries are ordered by department id so that rankings are reproducible.
func rankLess(a, b RankedEntry) bool {
	if a.HasExpertReview != b.HasExpertReview {
		return a.HasExpertReview
	}
	if a.EffectiveScore != b.EffectiveScore {
		return a.EffectiveScore > b.EffectiveScore
	}
	return a.Department.ID < b.Department.ID
}

// sortAndRank sorts entries in place and ranks them by position: 1, 2, 3, ... with no shared ranks.
func sortAndRank(entries []RankedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return rankLess(entries[i], entries[j])
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// newRankedEntry merges the auto sections of dept with its (optional) review.
func newRankedEntry(dept Department, auto [SectionCount]float64, review *ExpertReview) RankedEntry {
	var overrides [SectionCount]*float64
	if review != nil {
		overrides = review.Sections
	}
	agg := Aggregate(auto, overrides)

	entry := RankedEntry{
		Department:     dept,
		Sections:       auto,
		AutoTotal:      agg.AutoTotal,
		EffectiveScore: agg.AutoTotal,
	}
	if agg.Reviewed() {
		total := agg.ExpertTotal
		entry.ExpertTotal = &total
		entry.EffectiveScore = total
		entry.HasExpertReview = true
	}
	return entry
}
