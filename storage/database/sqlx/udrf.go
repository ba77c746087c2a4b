package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

type (
	departmentRow struct {
		ID       int    `db:"id"`
		Code     string `db:"code"`
		Name     string `db:"name"`
		Category string `db:"category"`
	}

	researchRow struct {
		SanctionedFaculty null.Int  `db:"sanctioned_faculty"`
		FilledFaculty     null.Int  `db:"filled_faculty"`
		PhDFaculty        null.Int  `db:"phd_faculty"`
		Publications      null.Int  `db:"publications"`
		BooksChapters     null.Int  `db:"books_chapters"`
		PatentsPublished  null.Int  `db:"patents_published"`
		PatentsGranted    null.Int  `db:"patents_granted"`
		Projects          null.JSON `db:"projects"`
		Consultancy       null.JSON `db:"consultancy"`
		Awards            null.JSON `db:"awards"`
	}

	studentsRow struct {
		Appeared          null.Int  `db:"appeared"`
		Passed            null.Int  `db:"passed"`
		PlacementEligible null.Int  `db:"placement_eligible"`
		Placed            null.Int  `db:"placed"`
		HigherStudies     null.Int  `db:"higher_studies"`
		CompetitiveExams  null.Int  `db:"competitive_exams"`
		Achievements      null.JSON `db:"achievements"`
	}

	teachingRow struct {
		MOOCs               null.JSON `db:"moocs"`
		TotalCourses        null.Int  `db:"total_courses"`
		ICTCourses          null.Int  `db:"ict_courses"`
		CurriculumRevisions null.Int  `db:"curriculum_revisions"`
		Workshops           null.Int  `db:"workshops"`
		BestPractices       null.JSON `db:"best_practices"`
	}

	outreachRow struct {
		MoUs                null.Int     `db:"mous"`
		IndustryCollabs     null.Int     `db:"industry_collaborations"`
		ExtensionActivities null.Int     `db:"extension_activities"`
		International       null.Int     `db:"international"`
		AlumniContribution  null.Float64 `db:"alumni_contribution"`
		SocialImpact        null.JSON    `db:"social_impact"`
	}

	governanceRow struct {
		BudgetAllocated   null.Float64 `db:"budget_allocated"`
		BudgetUtilized    null.Float64 `db:"budget_utilized"`
		RevenueGenerated  null.Float64 `db:"revenue_generated"`
		Infrastructure    null.Int     `db:"infrastructure"`
		GovernanceEntries null.JSON    `db:"governance"`
	}

	reviewRow struct {
		ID           uuid.UUID    `db:"id"`
		ExpertEmail  string       `db:"expert_email"`
		DepartmentID int          `db:"department_id"`
		AcademicYear string       `db:"academic_year"`
		Section1     null.Float64 `db:"section_1"`
		Section2     null.Float64 `db:"section_2"`
		Section3     null.Float64 `db:"section_3"`
		Section4     null.Float64 `db:"section_4"`
		Section5     null.Float64 `db:"section_5"`
		Remarks1     string       `db:"remarks_1"`
		Remarks2     string       `db:"remarks_2"`
		Remarks3     string       `db:"remarks_3"`
		Remarks4     string       `db:"remarks_4"`
		Remarks5     string       `db:"remarks_5"`
		Total        null.Float64 `db:"total"`
		UpdatedAt    time.Time    `db:"updated_at"`
	}

	assignmentRow struct {
		Category    string    `db:"category"`
		ExpertEmail string    `db:"expert_email"`
		UpdatedAt   time.Time `db:"updated_at"`
	}
)

const (
	departmentColumns = "d.id, d.code, d.name, d.category"
	reviewColumns     = "id, expert_email, department_id, academic_year, " +
		"section_1, section_2, section_3, section_4, section_5, " +
		"remarks_1, remarks_2, remarks_3, remarks_4, remarks_5, total, updated_at"
	assignmentColumns = "category, expert_email, updated_at"
)

// UDRFRepository stores departments, their submissions, expert reviews & category experts in postgres.
type UDRFRepository struct {
	db *sqlx.DB
}

var _ udrf.Repository = (*UDRFRepository)(nil) // interface compliance check

func NewUDRFRepository(db *sqlx.DB) *UDRFRepository {
	return &UDRFRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to udrf.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return udrf.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func unboilDepartment(row departmentRow) udrf.Department {
	return udrf.Department{ID: row.ID, Code: row.Code, Name: row.Name, Category: row.Category}
}

func (repo *UDRFRepository) QueryDepartments(ctx context.Context, filter udrf.DepartmentFilter) ([]udrf.Department, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	where = append(where, "dy.academic_year = "+arg(filter.AcademicYear))
	if filter.Category != "" {
		where = append(where, "d.category = "+arg(filter.Category))
	}
	if len(filter.ExcludedCodes) > 0 {
		codes := make([]string, 0, len(filter.ExcludedCodes))
		for _, code := range filter.ExcludedCodes {
			codes = append(codes, strings.ToUpper(code))
		}
		where = append(where, "UPPER(d.code) <> ALL("+arg(pq.Array(codes))+")")
	}

	q := fmt.Sprintf(
		"SELECT %s FROM departments d JOIN department_years dy ON dy.department_id = d.id WHERE %s ORDER BY %s",
		departmentColumns, strings.Join(where, " AND "), orderBy(filter.Ordering),
	)

	var rows []departmentRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying departments")
	}
	depts := make([]udrf.Department, 0, len(rows))
	for _, row := range rows {
		depts = append(depts, unboilDepartment(row))
	}
	return depts, nil
}

// orderBy renders the allowed orderings, always ending with the id.
func orderBy(ordering []core.DBOrdering) string {
	list := make([]string, 0, len(ordering)+1)
	for _, ord := range core.FilterOrderings(ordering, udrf.DepartmentOrderingFields...) {
		if ord.Field == "id" {
			continue
		}
		list = append(list, "d."+ord.String())
	}
	return strings.Join(append(list, "d.id ASC"), ", ")
}

func (repo *UDRFRepository) GetDepartment(ctx context.Context, id int) (udrf.Department, error) {
	var row departmentRow
	q := "SELECT " + departmentColumns + " FROM departments d WHERE d.id = $1"
	if err := sqlx.GetContext(ctx, repo.db, &row, q, id); err != nil {
		return udrf.Department{}, trapNoRowsErr(err, "getting department")
	}
	return unboilDepartment(row), nil
}

// sectionColumns lists the submitted columns of each section table.
var sectionColumns = map[string][]string{
	"udrf_research": {
		"sanctioned_faculty", "filled_faculty", "phd_faculty", "publications", "books_chapters",
		"patents_published", "patents_granted", "projects", "consultancy", "awards",
	},
	"udrf_students": {
		"appeared", "passed", "placement_eligible", "placed", "higher_studies", "competitive_exams", "achievements",
	},
	"udrf_teaching": {
		"moocs", "total_courses", "ict_courses", "curriculum_revisions", "workshops", "best_practices",
	},
	"udrf_outreach": {
		"mous", "industry_collaborations", "extension_activities", "international", "alumni_contribution", "social_impact",
	},
	"udrf_governance": {
		"budget_allocated", "budget_utilized", "revenue_generated", "infrastructure", "governance",
	},
}

// getSection loads one section row. A missing row leaves dst untouched.
func (repo *UDRFRepository) getSection(ctx context.Context, dst interface{}, table string, deptID int, year string) error {
	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE department_id = $1 AND academic_year = $2",
		strings.Join(sectionColumns[table], ", "), table,
	)
	if err := repo.db.QueryRowxContext(ctx, q, deptID, year).StructScan(dst); err != nil && err != sql.ErrNoRows {
		return errors.Wrapf(err, "getting %s", table)
	}
	return nil
}

func (repo *UDRFRepository) GetRawData(ctx context.Context, deptID int, year string) (udrf.RawData, error) {
	var (
		research   researchRow
		students   studentsRow
		teaching   teachingRow
		outreach   outreachRow
		governance governanceRow
	)
	sections := []struct {
		table string
		dst   interface{}
	}{
		{"udrf_research", &research},
		{"udrf_students", &students},
		{"udrf_teaching", &teaching},
		{"udrf_outreach", &outreach},
		{"udrf_governance", &governance},
	}
	for _, s := range sections {
		if err := repo.getSection(ctx, s.dst, s.table, deptID, year); err != nil {
			return udrf.RawData{}, err
		}
	}

	return udrf.RawData{
		DepartmentID: deptID,
		AcademicYear: year,
		Research: udrf.ResearchData{
			SanctionedFaculty: research.SanctionedFaculty.Int,
			FilledFaculty:     research.FilledFaculty.Int,
			PhDFaculty:        research.PhDFaculty.Int,
			Publications:      research.Publications.Int,
			BooksChapters:     research.BooksChapters.Int,
			PatentsPublished:  research.PatentsPublished.Int,
			PatentsGranted:    research.PatentsGranted.Int,
			Projects:          udrf.DecodeLineItems(research.Projects.JSON),
			Consultancy:       udrf.DecodeLineItems(research.Consultancy.JSON),
			Awards:            udrf.DecodeNarratives(research.Awards.JSON),
		},
		Students: udrf.StudentsData{
			Appeared:          students.Appeared.Int,
			Passed:            students.Passed.Int,
			PlacementEligible: students.PlacementEligible.Int,
			Placed:            students.Placed.Int,
			HigherStudies:     students.HigherStudies.Int,
			CompetitiveExams:  students.CompetitiveExams.Int,
			Achievements:      udrf.DecodeNarratives(students.Achievements.JSON),
		},
		Teaching: udrf.TeachingData{
			MOOCs:               udrf.DecodeLineItems(teaching.MOOCs.JSON),
			TotalCourses:        teaching.TotalCourses.Int,
			ICTCourses:          teaching.ICTCourses.Int,
			CurriculumRevisions: teaching.CurriculumRevisions.Int,
			Workshops:           teaching.Workshops.Int,
			BestPractices:       udrf.DecodeNarratives(teaching.BestPractices.JSON),
		},
		Outreach: udrf.OutreachData{
			MoUs:                outreach.MoUs.Int,
			IndustryCollabs:     outreach.IndustryCollabs.Int,
			ExtensionActivities: outreach.ExtensionActivities.Int,
			International:       outreach.International.Int,
			AlumniContribution:  outreach.AlumniContribution.Float64,
			SocialImpact:        udrf.DecodeNarratives(outreach.SocialImpact.JSON),
		},
		Governance: udrf.GovernanceData{
			BudgetAllocated:   governance.BudgetAllocated.Float64,
			BudgetUtilized:    governance.BudgetUtilized.Float64,
			RevenueGenerated:  governance.RevenueGenerated.Float64,
			Infrastructure:    governance.Infrastructure.Int,
			GovernanceEntries: udrf.DecodeNarratives(governance.GovernanceEntries.JSON),
		},
	}, nil
}

func unboilReview(row reviewRow) udrf.ExpertReview {
	return udrf.ExpertReview{
		ID: row.ID,
		Key: udrf.ReviewKey{
			ExpertEmail:  row.ExpertEmail,
			DepartmentID: row.DepartmentID,
			AcademicYear: row.AcademicYear,
		},
		Sections: [udrf.SectionCount]*float64{
			row.Section1.Ptr(), row.Section2.Ptr(), row.Section3.Ptr(), row.Section4.Ptr(), row.Section5.Ptr(),
		},
		Remarks:   [udrf.SectionCount]string{row.Remarks1, row.Remarks2, row.Remarks3, row.Remarks4, row.Remarks5},
		Total:     row.Total.Ptr(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func (repo *UDRFRepository) GetReview(ctx context.Context, key udrf.ReviewKey) (udrf.ExpertReview, error) {
	var row reviewRow
	q := "SELECT " + reviewColumns + " FROM expert_reviews WHERE expert_email = $1 AND department_id = $2 AND academic_year = $3"
	if err := sqlx.GetContext(ctx, repo.db, &row, q, key.ExpertEmail, key.DepartmentID, key.AcademicYear); err != nil {
		return udrf.ExpertReview{}, trapNoRowsErr(err, "getting expert review")
	}
	return unboilReview(row), nil
}

// UpsertSectionReview writes one section in a single statement, so concurrent
// writes to other sections of the same review are kept.
func (repo *UDRFRepository) UpsertSectionReview(ctx context.Context, su udrf.SectionUpsert) (udrf.ExpertReview, error) {
	if !su.Section.Valid() {
		return udrf.ExpertReview{}, udrf.ErrInvalidSection
	}
	score, remarks := "section_"+su.Section.String(), "remarks_"+su.Section.String()
	q := fmt.Sprintf(`INSERT INTO expert_reviews (id, expert_email, department_id, academic_year, %[1]s, %[2]s, total, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (expert_email, department_id, academic_year) DO UPDATE
SET %[1]s = EXCLUDED.%[1]s, %[2]s = EXCLUDED.%[2]s, total = EXCLUDED.total, updated_at = EXCLUDED.updated_at
RETURNING %[3]s`, score, remarks, reviewColumns)

	var row reviewRow
	err := sqlx.GetContext(ctx, repo.db, &row, q,
		su.ID, su.Key.ExpertEmail, su.Key.DepartmentID, su.Key.AcademicYear,
		null.Float64FromPtr(su.Score), su.Remarks, null.Float64FromPtr(su.Total), su.UpdatedAt.UTC(),
	)
	if err != nil {
		return udrf.ExpertReview{}, errors.Wrap(err, "upserting expert review")
	}
	return unboilReview(row), nil
}

func unboilAssignment(row assignmentRow) udrf.CategoryAssignment {
	return udrf.CategoryAssignment{Category: row.Category, ExpertEmail: row.ExpertEmail, UpdatedAt: row.UpdatedAt.UTC()}
}

func (repo *UDRFRepository) GetCategoryExpert(ctx context.Context, category string) (udrf.CategoryAssignment, error) {
	var row assignmentRow
	q := "SELECT " + assignmentColumns + " FROM category_experts WHERE category = $1"
	if err := sqlx.GetContext(ctx, repo.db, &row, q, category); err != nil {
		return udrf.CategoryAssignment{}, trapNoRowsErr(err, "getting category expert")
	}
	return unboilAssignment(row), nil
}

func (repo *UDRFRepository) UpsertCategoryExpert(ctx context.Context, ca udrf.CategoryAssignment) (udrf.CategoryAssignment, error) {
	q := `INSERT INTO category_experts (category, expert_email, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (category) DO UPDATE SET expert_email = EXCLUDED.expert_email, updated_at = EXCLUDED.updated_at
RETURNING ` + assignmentColumns

	var row assignmentRow
	if err := sqlx.GetContext(ctx, repo.db, &row, q, ca.Category, ca.ExpertEmail, ca.UpdatedAt.UTC()); err != nil {
		return udrf.CategoryAssignment{}, errors.Wrap(err, "upserting category expert")
	}
	return unboilAssignment(row), nil
}

func (repo *UDRFRepository) QueryAssignments(ctx context.Context) ([]udrf.CategoryAssignment, error) {
	var rows []assignmentRow
	q := "SELECT " + assignmentColumns + " FROM category_experts ORDER BY category"
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying category experts")
	}
	assignments := make([]udrf.CategoryAssignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, unboilAssignment(row))
	}
	return assignments, nil
}
