package sqlxrepos

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

// ImportDepartment creates or updates a department by code, enrols it in raw.AcademicYear
// and replaces its submitted data for that year, in a single transaction.
func (repo *UDRFRepository) ImportDepartment(ctx context.Context, dept udrf.Department, raw udrf.RawData) (udrf.Department, error) {
	values, err := sectionValues(raw)
	if err != nil {
		return udrf.Department{}, err
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return udrf.Department{}, errors.Wrap(err, "beginning import")
	}
	defer func() { _ = tx.Rollback() }()

	var row departmentRow
	err = sqlx.GetContext(ctx, tx, &row, `INSERT INTO departments (code, name, category) VALUES ($1, $2, $3)
ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category
RETURNING id, code, name, category`, dept.Code, dept.Name, dept.Category)
	if err != nil {
		return udrf.Department{}, errors.Wrap(err, "upserting department")
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO department_years (department_id, academic_year) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		row.ID, raw.AcademicYear,
	)
	if err != nil {
		return udrf.Department{}, errors.Wrap(err, "enrolling department")
	}

	for table, vals := range values {
		if err = upsertSection(ctx, tx, table, row.ID, raw.AcademicYear, vals); err != nil {
			return udrf.Department{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return udrf.Department{}, errors.Wrap(err, "committing import")
	}
	return unboilDepartment(row), nil
}

func upsertSection(ctx context.Context, tx *sqlx.Tx, table string, deptID int, year string, vals []interface{}) error {
	cols := sectionColumns[table]
	params := make([]string, 0, len(cols))
	sets := make([]string, 0, len(cols))
	for i, col := range cols {
		params = append(params, "$"+strconv.Itoa(i+3))
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (department_id, academic_year, %s) VALUES ($1, $2, %s) "+
			"ON CONFLICT (department_id, academic_year) DO UPDATE SET %s",
		table, strings.Join(cols, ", "), strings.Join(params, ", "), strings.Join(sets, ", "),
	)
	args := append([]interface{}{deptID, year}, vals...)
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrapf(err, "upserting %s", table)
	}
	return nil
}

// sectionValues returns, per section table, the values in sectionColumns order.
// Empty lists are stored as NULL.
func sectionValues(raw udrf.RawData) (map[string][]interface{}, error) {
	var err error
	text := func(key string, encode func() ([]byte, error), empty bool) null.String {
		if empty || err != nil {
			return null.String{}
		}
		b, e := encode()
		if e != nil {
			err = errors.Wrapf(e, "encoding %s", key)
			return null.String{}
		}
		return null.StringFrom(string(b))
	}
	items := func(key string, list []udrf.LineItem) null.String {
		return text(key, func() ([]byte, error) { return udrf.EncodeLineItems(list) }, len(list) == 0)
	}
	narratives := func(key string, list []udrf.NarrativeEntry) null.String {
		return text(key, func() ([]byte, error) { return udrf.EncodeNarratives(list) }, len(list) == 0)
	}

	r, s, t, o, g := raw.Research, raw.Students, raw.Teaching, raw.Outreach, raw.Governance
	values := map[string][]interface{}{
		"udrf_research": {
			r.SanctionedFaculty, r.FilledFaculty, r.PhDFaculty, r.Publications, r.BooksChapters,
			r.PatentsPublished, r.PatentsGranted, items("projects", r.Projects), items("consultancy", r.Consultancy), narratives("awards", r.Awards),
		},
		"udrf_students": {
			s.Appeared, s.Passed, s.PlacementEligible, s.Placed, s.HigherStudies, s.CompetitiveExams, narratives("achievements", s.Achievements),
		},
		"udrf_teaching": {
			items("moocs", t.MOOCs), t.TotalCourses, t.ICTCourses, t.CurriculumRevisions, t.Workshops, narratives("best_practices", t.BestPractices),
		},
		"udrf_outreach": {
			o.MoUs, o.IndustryCollabs, o.ExtensionActivities, o.International, o.AlumniContribution, narratives("social_impact", o.SocialImpact),
		},
		"udrf_governance": {
			g.BudgetAllocated, g.BudgetUtilized, g.RevenueGenerated, g.Infrastructure, narratives("governance", g.GovernanceEntries),
		},
	}
	if err != nil {
		return nil, err
	}
	return values, nil
}
