package udrf

// Aggregation is the merge of the auto section scores with an expert's overrides.
type Aggregation struct {
	AutoTotal   float64               `json:"auto_total"`
	ExpertTotal float64               `json:"expert_total"`
	Diff        [SectionCount]float64 `json:"per_section_diff"` // display only
	Overridden  int                   `json:"overridden_sections"`
}

// Reviewed reports whether at least one section was overridden.
func (a Aggregation) Reviewed() bool {
	return a.Overridden > 0
}

// Aggregate sums the auto sections and merges expert overrides section by section:
// a nil override keeps the auto score of that section.
func Aggregate(auto [SectionCount]float64, expert [SectionCount]*float64) Aggregation {
	var agg Aggregation
	for i := range auto {
		agg.AutoTotal += auto[i]
		if expert[i] == nil {
			agg.ExpertTotal += auto[i]
			continue
		}
		agg.ExpertTotal += *expert[i]
		agg.Diff[i] = *expert[i] - auto[i]
		agg.Overridden++
	}
	return agg
}
