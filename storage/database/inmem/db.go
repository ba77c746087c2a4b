package inmemdb

import (
	"sync"

	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

type (
	// DB is an in-memory store for tests and local runs.
	DB struct {
		dept       *departmentTable
		review     *reviewTable
		assignment *assignmentTable
		faults     *faults
	}

	departmentTable struct {
		sync.RWMutex
		table map[int]*departmentRow
	}

	departmentRow struct {
		dept  udrf.Department
		years map[string]udrf.RawData
	}

	reviewTable struct {
		sync.RWMutex
		table map[udrf.ReviewKey]*udrf.ExpertReview
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*udrf.CategoryAssignment
	}

	// faults makes calls fail once a number of calls succeeded.
	faults struct {
		sync.Mutex
		err   error
		after int
		calls int
	}
)

func Open() *DB {
	return &DB{
		dept:       &departmentTable{table: make(map[int]*departmentRow)},
		review:     &reviewTable{table: make(map[udrf.ReviewKey]*udrf.ExpertReview)},
		assignment: &assignmentTable{table: make(map[string]*udrf.CategoryAssignment)},
		faults:     &faults{},
	}
}

// Fail makes every following call return err. A nil err heals the store.
func (db *DB) Fail(err error) {
	db.FailAfter(0, err)
}

// FailAfter lets n more calls succeed, then makes every call return err.
func (db *DB) FailAfter(n int, err error) {
	db.faults.Lock()
	defer db.faults.Unlock()
	db.faults.err = err
	db.faults.after = n
	db.faults.calls = 0
}

func (db *DB) check() error {
	db.faults.Lock()
	defer db.faults.Unlock()
	if db.faults.err == nil {
		return nil
	}
	if db.faults.calls < db.faults.after {
		db.faults.calls++
		return nil
	}
	return db.faults.err
}

// AddDepartment stores dept and enrolls it in the given academic years.
func (db *DB) AddDepartment(dept udrf.Department, years ...string) {
	db.dept.Lock()
	defer db.dept.Unlock()

	row, ok := db.dept.table[dept.ID]
	if !ok {
		row = &departmentRow{years: make(map[string]udrf.RawData)}
		db.dept.table[dept.ID] = row
	}
	row.dept = dept
	for _, year := range years {
		if _, ok := row.years[year]; !ok {
			row.years[year] = udrf.RawData{DepartmentID: dept.ID, AcademicYear: year}
		}
	}
}

// SetRawData replaces the submitted data of a department, enrolling it in raw.AcademicYear.
// The department must have been added first.
func (db *DB) SetRawData(raw udrf.RawData) {
	db.dept.Lock()
	defer db.dept.Unlock()

	if row, ok := db.dept.table[raw.DepartmentID]; ok {
		row.years[raw.AcademicYear] = raw
	}
}

// PutReview stores a review as is.
func (db *DB) PutReview(review udrf.ExpertReview) {
	db.review.Lock()
	defer db.review.Unlock()
	db.review.table[review.Key] = copyReview(&review)
}

func copyReview(r *udrf.ExpertReview) *udrf.ExpertReview {
	cp := *r
	for i, s := range r.Sections {
		cp.Sections[i] = copyFloat(s)
	}
	cp.Total = copyFloat(r.Total)
	return &cp
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
