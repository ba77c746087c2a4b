package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

type udrfRepository struct {
	db *DB
}

var _ udrf.Repository = (*udrfRepository)(nil) // interface compliance check

func NewUDRFRepository(db *DB) udrf.Repository {
	return &udrfRepository{db: db}
}

func (repo *udrfRepository) QueryDepartments(_ context.Context, filter udrf.DepartmentFilter) ([]udrf.Department, error) {
	if err := repo.db.check(); err != nil {
		return nil, err
	}
	repo.db.dept.RLock()
	defer repo.db.dept.RUnlock()

	excluded := make(map[string]bool, len(filter.ExcludedCodes))
	for _, code := range filter.ExcludedCodes {
		excluded[strings.ToUpper(code)] = true
	}

	depts := make([]udrf.Department, 0, len(repo.db.dept.table))
	for _, row := range repo.db.dept.table {
		if _, ok := row.years[filter.AcademicYear]; !ok {
			continue
		}
		if filter.Category != "" && row.dept.Category != filter.Category {
			continue
		}
		if excluded[strings.ToUpper(row.dept.Code)] {
			continue
		}
		depts = append(depts, row.dept)
	}
	sort.Slice(depts, func(i, j int) bool { return depts[i].ID < depts[j].ID })
	if len(filter.Ordering) > 0 {
		sort.SliceStable(depts, func(i, j int) bool { return lessDepartment(depts[i], depts[j], filter.Ordering) })
	}
	return depts, nil
}

func lessDepartment(a, b udrf.Department, ordering []core.DBOrdering) bool {
	for _, ord := range ordering {
		var cmp int
		switch ord.Field {
		case "id":
			cmp = a.ID - b.ID
		case "code":
			cmp = strings.Compare(a.Code, b.Code)
		case "name":
			cmp = strings.Compare(a.Name, b.Name)
		case "category":
			cmp = strings.Compare(a.Category, b.Category)
		}
		if cmp != 0 {
			return (cmp < 0) == ord.Ascending
		}
	}
	return false
}

func (repo *udrfRepository) GetDepartment(_ context.Context, id int) (udrf.Department, error) {
	if err := repo.db.check(); err != nil {
		return udrf.Department{}, err
	}
	repo.db.dept.RLock()
	defer repo.db.dept.RUnlock()

	if row, ok := repo.db.dept.table[id]; ok {
		return row.dept, nil
	}
	return udrf.Department{}, udrf.ErrNotFound
}

func (repo *udrfRepository) GetRawData(_ context.Context, deptID int, year string) (udrf.RawData, error) {
	if err := repo.db.check(); err != nil {
		return udrf.RawData{}, err
	}
	repo.db.dept.RLock()
	defer repo.db.dept.RUnlock()

	if row, ok := repo.db.dept.table[deptID]; ok {
		if raw, ok := row.years[year]; ok {
			return raw, nil
		}
	}
	return udrf.RawData{DepartmentID: deptID, AcademicYear: year}, nil
}

func (repo *udrfRepository) GetReview(_ context.Context, key udrf.ReviewKey) (udrf.ExpertReview, error) {
	if err := repo.db.check(); err != nil {
		return udrf.ExpertReview{}, err
	}
	repo.db.review.RLock()
	defer repo.db.review.RUnlock()

	if r, ok := repo.db.review.table[key]; ok {
		return *copyReview(r), nil
	}
	return udrf.ExpertReview{}, udrf.ErrNotFound
}

func (repo *udrfRepository) UpsertSectionReview(_ context.Context, su udrf.SectionUpsert) (udrf.ExpertReview, error) {
	if err := repo.db.check(); err != nil {
		return udrf.ExpertReview{}, err
	}
	repo.db.review.Lock()
	defer repo.db.review.Unlock()

	r, ok := repo.db.review.table[su.Key]
	if !ok {
		r = &udrf.ExpertReview{ID: su.ID, Key: su.Key}
		repo.db.review.table[su.Key] = r
	}
	idx := su.Section.Index()
	r.Sections[idx] = copyFloat(su.Score)
	r.Remarks[idx] = su.Remarks
	r.Total = copyFloat(su.Total)
	r.UpdatedAt = su.UpdatedAt
	return *copyReview(r), nil
}

func (repo *udrfRepository) GetCategoryExpert(_ context.Context, category string) (udrf.CategoryAssignment, error) {
	if err := repo.db.check(); err != nil {
		return udrf.CategoryAssignment{}, err
	}
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	if ca, ok := repo.db.assignment.table[category]; ok {
		return *ca, nil
	}
	return udrf.CategoryAssignment{}, udrf.ErrNotFound
}

func (repo *udrfRepository) UpsertCategoryExpert(_ context.Context, ca udrf.CategoryAssignment) (udrf.CategoryAssignment, error) {
	if err := repo.db.check(); err != nil {
		return udrf.CategoryAssignment{}, err
	}
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	repo.db.assignment.table[ca.Category] = &ca
	return ca, nil
}

func (repo *udrfRepository) QueryAssignments(_ context.Context) ([]udrf.CategoryAssignment, error) {
	if err := repo.db.check(); err != nil {
		return nil, err
	}
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	assignments := make([]udrf.CategoryAssignment, 0, len(repo.db.assignment.table))
	for _, ca := range repo.db.assignment.table {
		assignments = append(assignments, *ca)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].Category < assignments[j].Category })
	return assignments, nil
}
