package inmemdb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

const year = "2024-2025"

func seed(db *DB) {
	for _, d := range []udrf.Department{
		{ID: 3, Code: "PHY", Name: "Physics", Category: "Science"},
		{ID: 1, Code: "CHEM", Name: "Chemistry", Category: "Science"},
		{ID: 2, Code: "HIST", Name: "History", Category: "Arts"},
		{ID: 4, Code: "vc", Name: "Vice Chancellor", Category: "Science"},
	} {
		db.AddDepartment(d, year)
	}
	db.AddDepartment(udrf.Department{ID: 5, Code: "OLD", Category: "Science"}, "2020-2021")
}

func TestUDRFRepository_QueryDepartments(t *testing.T) {
	db := Open()
	seed(db)
	repo := NewUDRFRepository(db)

	ids := func(depts []udrf.Department) []int {
		out := make([]int, 0, len(depts))
		for _, d := range depts {
			out = append(out, d.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter udrf.DepartmentFilter
		want   []int
	}{
		{name: "year", filter: udrf.DepartmentFilter{AcademicYear: year}, want: []int{1, 2, 3, 4}},
		{name: "category", filter: udrf.DepartmentFilter{AcademicYear: year, Category: "Science"}, want: []int{1, 3, 4}},
		{name: "excluded codes ignore case", filter: udrf.DepartmentFilter{AcademicYear: year, ExcludedCodes: []string{"VC"}}, want: []int{1, 2, 3}},
		{name: "unknown year", filter: udrf.DepartmentFilter{AcademicYear: "1999-2000"}, want: []int{}},
		{
			name: "ordering",
			filter: udrf.DepartmentFilter{
				AcademicYear: year,
				Ordering:     []core.DBOrdering{{Field: "category", Ascending: true}, {Field: "name"}},
			},
			want: []int{2, 4, 3, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depts, err := repo.QueryDepartments(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(depts))
		})
	}
}

func TestUDRFRepository_reviewsAreCopied(t *testing.T) {
	db := Open()
	repo := NewUDRFRepository(db)
	key := udrf.ReviewKey{ExpertEmail: "e@uni.edu", DepartmentID: 1, AcademicYear: year}
	score := 10.0

	review, err := repo.UpsertSectionReview(context.Background(), udrf.SectionUpsert{Key: key, Section: udrf.SectionOutreach, Score: &score})
	require.NoError(t, err)
	*review.Sections[3] = 99

	got, err := repo.GetReview(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, 10.0, *got.Sections[3])
}

func TestDB_FailAfter(t *testing.T) {
	db := Open()
	seed(db)
	repo := NewUDRFRepository(db)
	ctx := context.Background()
	boom := errors.New("boom")

	db.FailAfter(1, boom)
	_, err := repo.GetDepartment(ctx, 1)
	assert.NoError(t, err)
	_, err = repo.GetDepartment(ctx, 1)
	assert.Equal(t, boom, err)
	_, err = repo.QueryAssignments(ctx)
	assert.Equal(t, boom, err)

	db.Fail(nil)
	_, err = repo.GetDepartment(ctx, 1)
	assert.NoError(t, err)

	_, err = repo.GetDepartment(ctx, 42)
	assert.Equal(t, udrf.ErrNotFound, err)
}
