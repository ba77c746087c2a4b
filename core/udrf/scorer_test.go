package udrf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRubric_capsSumToSectionMax(t *testing.T) {
	var total float64
	for _, id := range Sections {
		var sum float64
		for _, it := range Rubric(id) {
			sum += it.Cap
		}
		if sum != id.Max() {
			t.Errorf("section %d: caps sum to %v; want %v", id, sum, id.Max())
		}
		total += sum
	}
	if total != MaxTotal {
		t.Errorf("rubric total = %v; want %v", total, MaxTotal)
	}
}

func TestScoreSection_emptyDataScoresZero(t *testing.T) {
	for _, id := range Sections {
		sc := ScoreSection(id, RawData{})
		if sc.Value != 0 {
			t.Errorf("section %d: Value = %v; want 0", id, sc.Value)
		}
		if len(sc.Items) != len(Rubric(id)) {
			t.Errorf("section %d: %d items scored; want %d", id, len(sc.Items), len(Rubric(id)))
		}
	}
}

func TestScoreSection_unknownSection(t *testing.T) {
	sc := ScoreSection(SectionID(9), fullRawData())
	assert.Equal(t, 0.0, sc.Value)
	assert.Empty(t, sc.Items)
}

func TestScoreSection_bounds(t *testing.T) {
	tests := []struct {
		name string
		raw  RawData
	}{
		{name: "empty", raw: RawData{}},
		{name: "full", raw: fullRawData()},
		{name: "huge", raw: hugeRawData()},
		{name: "negative", raw: negativeRawData()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := ScoreAll(tt.raw)
			var sum float64
			for _, id := range Sections {
				sc := scores[id.Index()]
				if sc.Section != id {
					t.Errorf("scores[%d].Section = %d", id.Index(), sc.Section)
				}
				if sc.Value < 0 || sc.Value > id.Max() || math.IsNaN(sc.Value) {
					t.Errorf("section %d: Value = %v; want within [0, %v]", id, sc.Value, id.Max())
				}
				for _, it := range Rubric(id) {
					if v := sc.Items[it.ID]; v < 0 || v > it.Cap {
						t.Errorf("item %s: %v; want within [0, %v]", it.ID, v, it.Cap)
					}
				}
				sum += sc.Value
			}
			if scores.Total() != sum {
				t.Errorf("Total() = %v; want %v", scores.Total(), sum)
			}
		})
	}
}

func TestScoreSection_hugeDataHitsMaxima(t *testing.T) {
	scores := ScoreAll(hugeRawData())
	for _, id := range Sections {
		assert.Equal(t, id.Max(), scores[id.Index()].Value, "section %d", id)
	}
	assert.Equal(t, MaxTotal, scores.Total())
}

func TestScoreResearch(t *testing.T) {
	raw := RawData{Research: ResearchData{
		SanctionedFaculty: 20,
		FilledFaculty:     10,
		PhDFaculty:        5,
		Publications:      12,
		BooksChapters:     3,
		PatentsPublished:  1,
		PatentsGranted:    1,
		Projects: []LineItem{
			{Type: "Govt-Sponsored", Amount: 5},           // 5 lakhs
			{Type: "govt sponsored", Amount: 1500000},     // 15 lakhs
			{Type: "Non-Govt-Sponsored", Amount: 2000000}, // 20 lakhs
			{Type: "Unknown", Amount: 9},
		},
		Consultancy: []LineItem{
			{Type: "Consultancy", Amount: 1.5},
			{Type: "Corporate-Training", Amount: 50000},
		},
		Awards: []NarrativeEntry{{Title: "A", Score: 4}, {Title: "B", Score: -2}},
	}}

	sc := ScoreSection(SectionResearch, raw)
	want := map[ItemID]float64{
		ItemFacultyFill:     15,
		ItemPhDFaculty:      20,
		ItemPublications:    24,
		ItemBooksChapters:   3,
		ItemPatents:         15,
		ItemGovtProjects:    10,
		ItemNonGovtProjects: 6,
		ItemConsultancy:     4,
		ItemFacultyAwards:   4,
	}
	for item, v := range want {
		assert.InDelta(t, v, sc.Items[item], 1e-9, "item %s", item)
	}
	assert.InDelta(t, 101, sc.Value, 1e-9)
}

func TestScoreSection_bitIdenticalAcrossCalls(t *testing.T) {
	raw := RawData{Research: ResearchData{
		SanctionedFaculty: 21,
		FilledFaculty:     13,
		PhDFaculty:        7,
		Publications:      3,
		BooksChapters:     1,
		Projects: []LineItem{
			{Type: TagGovtSponsored, Amount: 1.37},
			{Type: TagNonGovtSponsored, Amount: 0.73},
		},
		Consultancy: []LineItem{{Type: TagConsultancy, Amount: 0.11}},
	}}

	want := ScoreSection(SectionResearch, raw)
	for i := 0; i < 2000; i++ {
		got := ScoreSection(SectionResearch, raw)
		if math.Float64bits(got.Value) != math.Float64bits(want.Value) {
			t.Fatalf("call %d: Value = %v; want %v", i, got.Value, want.Value)
		}
	}

	// rubric order
	var sum float64
	for _, it := range Rubric(SectionResearch) {
		sum += want.Items[it.ID]
	}
	assert.Equal(t, math.Float64bits(sum), math.Float64bits(want.Value))
}

func TestScoreSection_lineItemInLakhs(t *testing.T) {
	projects := DecodeLineItems([]byte(`{"type":"Govt-Sponsored","amount":5}`))
	if got := SumAmounts(projects, TagGovtSponsored); got != 500000 {
		t.Fatalf("SumAmounts() = %v; want 500000", got)
	}

	sc := ScoreSection(SectionResearch, RawData{Research: ResearchData{Projects: projects}})
	assert.InDelta(t, 2.5, sc.Items[ItemGovtProjects], 1e-9)
}

func TestScoreSection_malformedLineItems(t *testing.T) {
	raw := RawData{Research: ResearchData{
		Projects:    DecodeLineItems([]byte("{not valid")),
		Consultancy: DecodeLineItems([]byte("{not valid")),
	}}
	sc := ScoreSection(SectionResearch, raw)
	assert.Equal(t, 0.0, sc.Items[ItemGovtProjects])
	assert.Equal(t, 0.0, sc.Items[ItemConsultancy])
	assert.Equal(t, 0.0, sc.Value)
}

func TestScoreStudents_zeroDenominators(t *testing.T) {
	raw := RawData{Students: StudentsData{Passed: 40, Placed: 10, HigherStudies: 2}}
	sc := ScoreSection(SectionStudents, raw)
	assert.Equal(t, 0.0, sc.Items[ItemPassPercentage])
	assert.Equal(t, 0.0, sc.Items[ItemPlacement])
	assert.Equal(t, 4.0, sc.Value)
}

func TestScoreTeaching_moocs(t *testing.T) {
	raw := RawData{Teaching: TeachingData{
		MOOCs: []LineItem{
			{Type: "Developed", Platform: "SWAYAM"},
			{Type: "developed", Platform: "NPTEL"},
			{Type: "Completed"},
			{Type: "Completed"},
			{Type: "Completed"},
		},
		TotalCourses: 10,
		ICTCourses:   4,
	}}
	sc := ScoreSection(SectionTeaching, raw)
	assert.Equal(t, 10.0, sc.Items[ItemMOOCsDeveloped])
	assert.Equal(t, 3.0, sc.Items[ItemMOOCsCompleted])
	assert.InDelta(t, 6, sc.Items[ItemICTCourses], 1e-9)
	assert.InDelta(t, 19, sc.Value, 1e-9)
}

func TestScoreOutreachAndGovernance_money(t *testing.T) {
	raw := RawData{
		Outreach:   OutreachData{AlumniContribution: 250000},
		Governance: GovernanceData{BudgetAllocated: 100, BudgetUtilized: 80, RevenueGenerated: 700000},
	}
	assert.InDelta(t, 5, ScoreSection(SectionOutreach, raw).Value, 1e-9)

	gov := ScoreSection(SectionGovernance, raw)
	assert.InDelta(t, 20, gov.Items[ItemBudgetUtilization], 1e-9)
	assert.InDelta(t, 7, gov.Items[ItemRevenue], 1e-9)
}

func fullRawData() RawData {
	return RawData{
		DepartmentID: 1,
		AcademicYear: "2024-2025",
		Research: ResearchData{
			SanctionedFaculty: 12, FilledFaculty: 10, PhDFaculty: 8,
			Publications: 14, BooksChapters: 4, PatentsPublished: 1,
			Projects:    []LineItem{{Type: TagGovtSponsored, Amount: 12}},
			Consultancy: []LineItem{{Type: TagConsultancy, Amount: 3}},
			Awards:      []NarrativeEntry{{Title: "Fellowship", Score: 5}},
		},
		Students: StudentsData{
			Appeared: 60, Passed: 54, PlacementEligible: 40, Placed: 22,
			HigherStudies: 3, CompetitiveExams: 2,
		},
		Teaching: TeachingData{
			MOOCs:        []LineItem{{Type: TagMOOCCompleted}},
			TotalCourses: 20, ICTCourses: 15, Workshops: 3,
		},
		Outreach:   OutreachData{MoUs: 2, ExtensionActivities: 5, AlumniContribution: 100000},
		Governance: GovernanceData{BudgetAllocated: 1e6, BudgetUtilized: 9e5, Infrastructure: 1},
	}
}

func hugeRawData() RawData {
	many := func(tag string, amount float64) []LineItem {
		items := make([]LineItem, 0, 50)
		for i := 0; i < 50; i++ {
			items = append(items, LineItem{Type: tag, Amount: amount})
		}
		return items
	}
	narr := []NarrativeEntry{{Title: "x", Score: 1000}}
	return RawData{
		Research: ResearchData{
			SanctionedFaculty: 1, FilledFaculty: 10, PhDFaculty: 100,
			Publications: 1000, BooksChapters: 1000, PatentsPublished: 100, PatentsGranted: 100,
			Projects:    append(many(TagGovtSponsored, 1e8), many(TagNonGovtSponsored, 1e8)...),
			Consultancy: many(TagTraining, 1e8),
			Awards:      narr,
		},
		Students: StudentsData{
			Appeared: 1, Passed: 100, PlacementEligible: 1, Placed: 100,
			HigherStudies: 100, CompetitiveExams: 100, Achievements: narr,
		},
		Teaching: TeachingData{
			MOOCs:        append(many(TagMOOCDeveloped, 0), many(TagMOOCCompleted, 0)...),
			TotalCourses: 1, ICTCourses: 10, CurriculumRevisions: 100, Workshops: 100,
			BestPractices: narr,
		},
		Outreach: OutreachData{
			MoUs: 100, IndustryCollabs: 100, ExtensionActivities: 100, International: 100,
			AlumniContribution: 1e9, SocialImpact: narr,
		},
		Governance: GovernanceData{
			BudgetAllocated: 1, BudgetUtilized: 10, RevenueGenerated: 1e9, Infrastructure: 100,
			GovernanceEntries: narr,
		},
	}
}

func negativeRawData() RawData {
	return RawData{
		Research: ResearchData{
			SanctionedFaculty: -5, FilledFaculty: -3, Publications: -10,
			Projects: []LineItem{{Type: TagGovtSponsored, Amount: -7}},
			Awards:   []NarrativeEntry{{Score: -30}},
		},
		Students:   StudentsData{Appeared: 10, Passed: -4},
		Outreach:   OutreachData{AlumniContribution: -1e6},
		Governance: GovernanceData{BudgetAllocated: -10, BudgetUtilized: 5, RevenueGenerated: math.NaN()},
	}
}
