package udrf

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
)

var (
	// errors
	ErrNotFound    = errors.New("not found")
	ErrNotAssigned = errors.New("expert is not assigned to the department's category")
	ErrInvalidYear = errors.New("invalid academic year")
)

// Department is a department taking part in the evaluation of an academic year.
type Department struct {
	ID       int    `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DepartmentFilter selects the departments taking part in an academic year.
// An empty Category selects all categories. Departments are ordered by id unless Ordering is set.
type DepartmentFilter struct {
	Category      string
	AcademicYear  string
	ExcludedCodes []string
	Ordering      []core.DBOrdering
}

// DepartmentOrderingFields are the fields departments may be ordered by.
var DepartmentOrderingFields = []string{"id", "code", "name", "category"}

type ReviewKey struct {
	ExpertEmail  string `json:"expert_email"`
	DepartmentID int    `json:"department_id"`
	AcademicYear string `json:"academic_year"`
}

// ExpertReview holds an expert's per-section overrides of the auto scores.
// A nil section keeps the auto score.
type ExpertReview struct {
	ID        uuid.UUID              `json:"id"`
	Key       ReviewKey              `json:"key"`
	Sections  [SectionCount]*float64 `json:"sections"`
	Remarks   [SectionCount]string   `json:"remarks"`
	Total     *float64               `json:"total"`      // nil until one section is overridden
	UpdatedAt time.Time              `json:"updated_at"` // UTC
}

// Overrides reports whether at least one section is overridden.
func (r ExpertReview) Overrides() bool {
	for _, s := range r.Sections {
		if s != nil {
			return true
		}
	}
	return false
}

// SectionReview is an expert's input for one section. A nil Score clears the override.
type SectionReview struct {
	Section SectionID `json:"-"`
	Score   *float64  `json:"score" validate:"omitempty,gte=0"`
	Remarks string    `json:"remarks" validate:"max=2000"`
}

func (sr *SectionReview) Clean() {
	sr.Remarks = cleanRemarks(sr.Remarks)
}

// RankQuery selects a ranking. An empty Category is the overall ranking.
type RankQuery struct {
	Category     string
	AcademicYear string
}

// RankedEntry is one row of a ranking. It is never persisted.
type RankedEntry struct {
	Rank            int                   `json:"rank"`
	Department      Department            `json:"department"`
	Sections        [SectionCount]float64 `json:"sections"`
	AutoTotal       float64               `json:"auto_total"`
	ExpertTotal     *float64              `json:"expert_total"`
	EffectiveScore  float64               `json:"effective_score"`
	HasExpertReview bool                  `json:"has_expert_review"`
}

// DepartmentScore is the detailed score of one department for display.
type DepartmentScore struct {
	Department      Department            `json:"department"`
	AcademicYear    string                `json:"academic_year"`
	Sections        Scores                `json:"sections"`
	AutoTotal       float64               `json:"auto_total"`
	ExpertTotal     *float64              `json:"expert_total"`
	EffectiveScore  float64               `json:"effective_score"`
	Diff            [SectionCount]float64 `json:"per_section_diff"`
	HasExpertReview bool                  `json:"has_expert_review"`
	Review          *ExpertReview         `json:"review"`
}

// CategoryAssignment maps a category to its single assigned expert.
type CategoryAssignment struct {
	Category    string    `json:"category"`
	ExpertEmail string    `json:"expert_email"`
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type NewAssignment struct {
	Category    string `json:"-" validate:"required,notblank"`
	ExpertEmail string `json:"expert_email" validate:"required,email"`
}
