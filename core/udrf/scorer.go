package udrf

import "math"

// SectionScore is the auto-computed score of one section.
type SectionScore struct {
	Section SectionID          `json:"section"`
	Items   map[ItemID]float64 `json:"items"`
	Value   float64            `json:"value"`
}

// Scores holds the five section scores in rubric order.
type Scores [SectionCount]SectionScore

// Values returns the section values in rubric order.
func (s Scores) Values() [SectionCount]float64 {
	var vals [SectionCount]float64
	for i, sc := range s {
		vals[i] = sc.Value
	}
	return vals
}

func (s Scores) Total() float64 {
	var total float64
	for _, sc := range s {
		total += sc.Value
	}
	return total
}

// ScoreAll runs the five section scorers over raw.
func ScoreAll(raw RawData) Scores {
	var scores Scores
	for _, id := range Sections {
		scores[id.Index()] = ScoreSection(id, raw)
	}
	return scores
}

// ScoreSection computes the score of one section. It never fails: missing data scores 0.
func ScoreSection(id SectionID, raw RawData) SectionScore {
	var items map[ItemID]float64
	switch id {
	case SectionResearch:
		items = scoreResearch(raw.Research)
	case SectionStudents:
		items = scoreStudents(raw.Students)
	case SectionTeaching:
		items = scoreTeaching(raw.Teaching)
	case SectionOutreach:
		items = scoreOutreach(raw.Outreach)
	case SectionGovernance:
		items = scoreGovernance(raw.Governance)
	default:
		return SectionScore{Section: id, Items: map[ItemID]float64{}}
	}

	// rubric order keeps the float sum bit-identical across calls
	var total float64
	for _, it := range rubric[id] {
		v := clamp(items[it.ID], it.Cap)
		items[it.ID] = v
		total += v
	}
	return SectionScore{Section: id, Items: items, Value: clamp(total, id.Max())}
}

func scoreResearch(d ResearchData) map[ItemID]float64 {
	return map[ItemID]float64{
		ItemFacultyFill:     ratio(float64(d.FilledFaculty), float64(d.SanctionedFaculty)) * 30,
		ItemPhDFaculty:      ratio(float64(d.PhDFaculty), float64(d.FilledFaculty)) * 40,
		ItemPublications:    count(d.Publications) * 2,
		ItemBooksChapters:   count(d.BooksChapters) * 1,
		ItemPatents:         count(d.PatentsPublished)*5 + count(d.PatentsGranted)*10,
		ItemGovtProjects:    SumAmounts(d.Projects, TagGovtSponsored) / (10 * lakh) * 5,
		ItemNonGovtProjects: SumAmounts(d.Projects, TagNonGovtSponsored) / (10 * lakh) * 3,
		ItemConsultancy:     SumAmounts(d.Consultancy, TagConsultancy, TagTraining) / lakh * 2,
		ItemFacultyAwards:   sumNarratives(d.Awards),
	}
}

func scoreStudents(d StudentsData) map[ItemID]float64 {
	return map[ItemID]float64{
		ItemPassPercentage:   ratio(float64(d.Passed), float64(d.Appeared)) * 30,
		ItemPlacement:        ratio(float64(d.Placed), float64(d.PlacementEligible)) * 30,
		ItemHigherStudies:    count(d.HigherStudies) * 2,
		ItemCompetitiveExams: count(d.CompetitiveExams) * 2,
		ItemStudentAwards:    sumNarratives(d.Achievements),
	}
}

func scoreTeaching(d TeachingData) map[ItemID]float64 {
	return map[ItemID]float64{
		ItemMOOCsDeveloped: float64(CountTyped(d.MOOCs, TagMOOCDeveloped)) * 5,
		ItemMOOCsCompleted: float64(CountTyped(d.MOOCs, TagMOOCCompleted)) * 1,
		ItemICTCourses:     ratio(float64(d.ICTCourses), float64(d.TotalCourses)) * 15,
		ItemCurriculum:     count(d.CurriculumRevisions) * 5,
		ItemWorkshops:      count(d.Workshops) * 2,
		ItemBestPractices:  sumNarratives(d.BestPractices),
	}
}

func scoreOutreach(d OutreachData) map[ItemID]float64 {
	return map[ItemID]float64{
		ItemMoUs:          count(d.MoUs) * 5,
		ItemIndustry:      count(d.IndustryCollabs) * 4,
		ItemExtension:     count(d.ExtensionActivities) * 2,
		ItemInternational: count(d.International) * 5,
		ItemAlumni:        positive(d.AlumniContribution) / lakh * 2,
		ItemSocialImpact:  sumNarratives(d.SocialImpact),
	}
}

func scoreGovernance(d GovernanceData) map[ItemID]float64 {
	return map[ItemID]float64{
		ItemBudgetUtilization: ratio(d.BudgetUtilized, d.BudgetAllocated) * 25,
		ItemRevenue:           positive(d.RevenueGenerated) / lakh * 1,
		ItemInfrastructure:    count(d.Infrastructure) * 3,
		ItemGovernance:        sumNarratives(d.GovernanceEntries),
	}
}

// ratio guards against zero (or negative) denominators: they yield 0, not an error.
func ratio(num, den float64) float64 {
	if den <= 0 || num <= 0 {
		return 0
	}
	return num / den
}

func count(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}

func positive(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	return f
}

// clamp bounds v to [0, max].
func clamp(v, max float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
