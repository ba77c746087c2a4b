package udrf_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/reviewer"
	. "github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
	inmemdb "github.com/Swapnil27012000/uomdcs-sub003/storage/database/inmem"
	"github.com/Swapnil27012000/uomdcs-sub003/tests"
)

const year = testutil.Year

var errConn = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// presetCache serves fixed auto scores, keyed by department id.
type presetCache struct {
	mu          sync.Mutex
	scores      map[int][SectionCount]float64
	sets        int
	invalidated []int
}

func newPresetCache() *presetCache {
	return &presetCache{scores: make(map[int][SectionCount]float64)}
}

func (c *presetCache) Get(_ context.Context, deptID int, _ string) ([SectionCount]float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.scores[deptID]
	return s, ok, nil
}

func (c *presetCache) Set(_ context.Context, deptID int, _ string, scores [SectionCount]float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.scores[deptID] = scores
	return nil
}

func (c *presetCache) Invalidate(_ context.Context, deptID int, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.scores, deptID)
	c.invalidated = append(c.invalidated, deptID)
	return nil
}

// total returns auto section scores summing to total, all in the first section.
func total(t float64) [SectionCount]float64 {
	return [SectionCount]float64{t}
}

func review(email string, deptID int, sections [SectionCount]*float64) ExpertReview {
	return ExpertReview{
		Key:      ReviewKey{ExpertEmail: email, DepartmentID: deptID, AcademicYear: year},
		Sections: sections,
	}
}

func ptr(f float64) *float64 { return &f }

func rankedIDs(entries []RankedEntry) []int {
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Department.ID)
	}
	return ids
}

func TestService_Rank_expertFirst(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)
	ctx := context.Background()

	a := testutil.AddDepartment(t, db, 1, "A", "Science")
	b := testutil.AddDepartment(t, db, 2, "B", "Science")
	c := testutil.AddDepartment(t, db, 3, "C", "Science")
	cache.scores[a.ID] = total(500)
	cache.scores[b.ID] = total(400)
	cache.scores[c.ID] = total(600)

	testutil.AssignExpert(t, svc, "Science", "expert@uni.edu")
	db.PutReview(review("expert@uni.edu", b.ID, [SectionCount]*float64{ptr(450)}))

	ranking, err := svc.Rank(ctx, RankQuery{Category: "Science", AcademicYear: year})
	require.NoError(t, err)
	require.Len(t, ranking, 3)

	assert.Equal(t, []int{b.ID, c.ID, a.ID}, rankedIDs(ranking))

	assert.Equal(t, 1, ranking[0].Rank)
	assert.True(t, ranking[0].HasExpertReview)
	assert.Equal(t, 450.0, ranking[0].EffectiveScore)
	assert.Equal(t, 400.0, ranking[0].AutoTotal)
	if assert.NotNil(t, ranking[0].ExpertTotal) {
		assert.Equal(t, 450.0, *ranking[0].ExpertTotal)
	}

	for i, e := range ranking[1:] {
		assert.Equal(t, i+2, e.Rank)
		assert.False(t, e.HasExpertReview)
		assert.Nil(t, e.ExpertTotal)
		assert.Equal(t, e.AutoTotal, e.EffectiveScore)
	}
}

func TestService_Rank_lowExpertScoreOutranksHighAuto(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)

	reviewed := testutil.AddDepartment(t, db, 1, "LOW", "Arts")
	unreviewed := testutil.AddDepartment(t, db, 2, "HIGH", "Arts")
	cache.scores[reviewed.ID] = total(200)
	cache.scores[unreviewed.ID] = total(700)

	testutil.AssignExpert(t, svc, "Arts", "expert@uni.edu")
	db.PutReview(review("expert@uni.edu", reviewed.ID, [SectionCount]*float64{ptr(10), ptr(0), ptr(0), ptr(0), ptr(0)}))

	ranking, err := svc.Rank(context.Background(), RankQuery{Category: "Arts", AcademicYear: year})
	require.NoError(t, err)
	assert.Equal(t, []int{reviewed.ID, unreviewed.ID}, rankedIDs(ranking))
	assert.Equal(t, 10.0, ranking[0].EffectiveScore)
	assert.Equal(t, 700.0, ranking[1].EffectiveScore)
}

func TestService_Rank_ignoresOtherExpertsAndEmptyReviews(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)

	d1 := testutil.AddDepartment(t, db, 1, "D1", "Science")
	d2 := testutil.AddDepartment(t, db, 2, "D2", "Science")
	cache.scores[d1.ID] = total(100)
	cache.scores[d2.ID] = total(200)

	testutil.AssignExpert(t, svc, "Science", "assigned@uni.edu")
	db.PutReview(review("someone-else@uni.edu", d1.ID, [SectionCount]*float64{ptr(300)}))
	db.PutReview(review("assigned@uni.edu", d1.ID, [SectionCount]*float64{}))

	ranking, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
	require.NoError(t, err)
	assert.Equal(t, []int{d2.ID, d1.ID}, rankedIDs(ranking))
	for _, e := range ranking {
		assert.False(t, e.HasExpertReview, "department %d", e.Department.ID)
	}
}

func TestService_Rank_tiesBrokenByDepartmentID(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)

	for _, id := range []int{9, 4, 7} {
		testutil.AddDepartment(t, db, id, "D", "Science")
		cache.scores[id] = total(300)
	}

	ranking, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 7, 9}, rankedIDs(ranking))
}

func TestService_Rank_identicalDepartmentsKeepIDOrder(t *testing.T) {
	db := inmemdb.Open()
	svc := testutil.NewService(db, nil, nil)

	for _, id := range []int{2, 1} {
		testutil.AddDepartment(t, db, id, "D", "Science")
		db.SetRawData(RawData{DepartmentID: id, AcademicYear: year, Research: ResearchData{
			SanctionedFaculty: 21, FilledFaculty: 13, PhDFaculty: 7, Publications: 3,
			Projects:    []LineItem{{Type: TagGovtSponsored, Amount: 1.37}, {Type: TagNonGovtSponsored, Amount: 0.73}},
			Consultancy: []LineItem{{Type: TagConsultancy, Amount: 0.11}},
		}})
	}

	for i := 0; i < 500; i++ {
		ranking, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
		require.NoError(t, err)
		if !assert.Equal(t, []int{1, 2}, rankedIDs(ranking), "call %d", i) {
			return
		}
		assert.Equal(t, 1, ranking[0].Rank)
		assert.Equal(t, 2, ranking[1].Rank)
	}
}

func TestService_Rank_fromRawData(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)

	full := testutil.AddDepartment(t, db, 1, "FULL", "Science")
	partial := testutil.AddDepartment(t, db, 2, "PART", "Science")
	empty := testutil.AddDepartment(t, db, 3, "NONE", "Science")
	db.SetRawData(testutil.MaxedRawData(full.ID, year, Sections[:]...))
	db.SetRawData(testutil.MaxedRawData(partial.ID, year, SectionStudents, SectionGovernance))

	ranking, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
	require.NoError(t, err)
	assert.Equal(t, []int{full.ID, partial.ID, empty.ID}, rankedIDs(ranking))
	assert.Equal(t, MaxTotal, ranking[0].AutoTotal)
	assert.Equal(t, 175.0, ranking[1].AutoTotal)
	assert.Equal(t, [SectionCount]float64{0, 100, 0, 0, 75}, ranking[1].Sections)
	assert.Equal(t, 0.0, ranking[2].AutoTotal)

	// computed scores were cached
	assert.Equal(t, 3, cache.sets)
}

func TestService_Rank_idempotent(t *testing.T) {
	db := inmemdb.Open()
	svc := testutil.NewService(db, nil, nil)

	for id := 1; id <= 5; id++ {
		testutil.AddDepartment(t, db, id, "D", "Science")
	}
	db.SetRawData(testutil.MaxedRawData(2, year, SectionOutreach))
	db.SetRawData(testutil.MaxedRawData(4, year, SectionOutreach))
	db.SetRawData(testutil.MaxedRawData(5, year, SectionResearch))

	first, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
	require.NoError(t, err)
	second, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{5, 2, 4, 1, 3}, rankedIDs(first))
}

func TestService_Rank_scope(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)

	testutil.AddDepartment(t, db, 1, "PHY", "Science")
	testutil.AddDepartment(t, db, 2, "HIS", "Arts")
	testutil.AddDepartment(t, db, 3, "CHE", "Science", "2023-2024")
	testutil.AddDepartment(t, db, 4, "AAQA", "Science") // excluded by default
	testutil.AddDepartment(t, db, 5, "test", "Arts")    // excluded, case-insensitive
	cache.scores[1] = total(100)
	cache.scores[2] = total(300)

	tests := []struct {
		name    string
		query   RankQuery
		wantIDs []int
	}{
		{name: "category", query: RankQuery{Category: "Science", AcademicYear: year}, wantIDs: []int{1}},
		{name: "overall", query: RankQuery{AcademicYear: year}, wantIDs: []int{2, 1}},
		{name: "other year", query: RankQuery{AcademicYear: "2023-2024"}, wantIDs: []int{3}},
		{name: "empty category", query: RankQuery{Category: "Law", AcademicYear: year}, wantIDs: []int{}},
		{name: "empty year", query: RankQuery{AcademicYear: "2019-2020"}, wantIDs: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranking, err := svc.Rank(context.Background(), tt.query)
			require.NoError(t, err)
			assert.NotNil(t, ranking)
			assert.Equal(t, tt.wantIDs, rankedIDs(ranking))
		})
	}
}

func TestService_RankOverall_perCategoryExperts(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)

	sci := testutil.AddDepartment(t, db, 1, "PHY", "Science")
	arts := testutil.AddDepartment(t, db, 2, "HIS", "Arts")
	plain := testutil.AddDepartment(t, db, 3, "MAT", "Science")
	cache.scores[sci.ID] = total(100)
	cache.scores[arts.ID] = total(100)
	cache.scores[plain.ID] = total(650)

	testutil.AssignExpert(t, svc, "Science", "sci@uni.edu")
	testutil.AssignExpert(t, svc, "Arts", "arts@uni.edu")
	db.PutReview(review("sci@uni.edu", sci.ID, [SectionCount]*float64{ptr(120)}))
	db.PutReview(review("arts@uni.edu", arts.ID, [SectionCount]*float64{ptr(140)}))

	ranking, err := svc.RankOverall(context.Background(), year)
	require.NoError(t, err)
	assert.Equal(t, []int{arts.ID, sci.ID, plain.ID}, rankedIDs(ranking))
}

func TestService_Rank_storeFailure(t *testing.T) {
	tests := []struct {
		name  string
		after int
	}{
		{name: "departments query", after: 0},
		{name: "raw data", after: 1},
		{name: "assignment lookup", after: 2},
		{name: "later department", after: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := inmemdb.Open()
			svc := testutil.NewService(db, nil, nil)
			for id := 1; id <= 3; id++ {
				testutil.AddDepartment(t, db, id, "D", "Science")
			}
			testutil.AssignExpert(t, svc, "Science", "expert@uni.edu")

			db.FailAfter(tt.after, errConn)
			ranking, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
			assert.Nil(t, ranking, "no partial ranking")
			assert.True(t, core.IsUnavailable(err), "error = %v", err)
		})
	}
}

// misfiledRepository returns every review under another department's key.
type misfiledRepository struct {
	Repository
}

func (repo misfiledRepository) GetReview(ctx context.Context, key ReviewKey) (ExpertReview, error) {
	r, err := repo.Repository.GetReview(ctx, key)
	r.Key.DepartmentID++
	return r, err
}

func TestService_mismatchedReviewKeyIsFatal(t *testing.T) {
	db := inmemdb.Open()
	conf := core.NewTestConfig()
	svc := NewService(misfiledRepository{inmemdb.NewUDRFRepository(db)}, nil, nil, testutil.NewLogger(conf), conf)

	dept := testutil.AddDepartment(t, db, 1, "PHY", "Science")
	testutil.AssignExpert(t, svc, "Science", "expert@uni.edu")
	db.PutReview(review("expert@uni.edu", dept.ID, [SectionCount]*float64{ptr(10)}))

	ranking, err := svc.Rank(context.Background(), RankQuery{Category: "Science", AcademicYear: year})
	assert.Nil(t, ranking)
	assert.True(t, core.IsShutdown(err), "error = %v", err)

	_, err = svc.GetReview(context.Background(), dept.ID, year)
	assert.True(t, core.IsShutdown(err), "error = %v", err)
}

func TestService_Rank_invalidYear(t *testing.T) {
	svc := testutil.NewService(inmemdb.Open(), nil, nil)
	_, err := svc.Rank(context.Background(), RankQuery{AcademicYear: "2024"})
	assert.Equal(t, ErrInvalidYear, errors.Cause(err))
}

type recordingObserver struct {
	rankings []int
	errs     []error
	hits     int
	misses   int
	reviews  []SectionID
}

func (o *recordingObserver) ObserveRanking(_ string, n int, _ time.Duration, err error) {
	o.rankings = append(o.rankings, n)
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) ObserveCache(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func (o *recordingObserver) ObserveReview(section SectionID) {
	o.reviews = append(o.reviews, section)
}

func TestService_observer(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	obs := &recordingObserver{}
	svc := testutil.NewService(db, cache, obs)

	testutil.AddDepartment(t, db, 1, "D1", "Science")
	testutil.AddDepartment(t, db, 2, "D2", "Science")
	cache.scores[1] = total(10)

	_, err := svc.RankOverall(context.Background(), year)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, obs.rankings)
	assert.Equal(t, []error{nil}, obs.errs)
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
}

func TestService_ScoreDepartment(t *testing.T) {
	db := inmemdb.Open()
	svc := testutil.NewService(db, nil, nil)
	ctx := context.Background()

	dept := testutil.AddDepartment(t, db, 1, "PHY", "Science")
	db.SetRawData(testutil.MaxedRawData(dept.ID, year, Sections[:]...))

	t.Run("auto only", func(t *testing.T) {
		ds, err := svc.ScoreDepartment(ctx, dept.ID, year)
		require.NoError(t, err)
		assert.Equal(t, dept, ds.Department)
		assert.Equal(t, MaxTotal, ds.AutoTotal)
		assert.Equal(t, MaxTotal, ds.EffectiveScore)
		assert.False(t, ds.HasExpertReview)
		assert.Nil(t, ds.ExpertTotal)
		assert.Nil(t, ds.Review)
		for _, id := range Sections {
			assert.Equal(t, id.Max(), ds.Sections[id.Index()].Value)
		}
	})

	t.Run("two of five sections overridden", func(t *testing.T) {
		testutil.AssignExpert(t, svc, "Science", "expert@uni.edu")
		db.PutReview(review("expert@uni.edu", dept.ID, [SectionCount]*float64{nil, ptr(60), nil, ptr(100), nil}))

		ds, err := svc.ScoreDepartment(ctx, dept.ID, year)
		require.NoError(t, err)
		assert.True(t, ds.HasExpertReview)
		want := 300 + 60 + 110 + 100 + 75.0
		if assert.NotNil(t, ds.ExpertTotal) {
			assert.Equal(t, want, *ds.ExpertTotal)
		}
		assert.Equal(t, want, ds.EffectiveScore)
		assert.Equal(t, [SectionCount]float64{0, -40, 0, -40, 0}, ds.Diff)
		if assert.NotNil(t, ds.Review) && assert.NotNil(t, ds.Review.Total) {
			assert.Equal(t, want, *ds.Review.Total)
		}
	})

	t.Run("not enrolled this year", func(t *testing.T) {
		ds, err := svc.ScoreDepartment(ctx, dept.ID, "2020-2021")
		require.NoError(t, err)
		assert.Equal(t, 0.0, ds.AutoTotal)
	})

	t.Run("unknown department", func(t *testing.T) {
		_, err := svc.ScoreDepartment(ctx, 404, year)
		assert.Equal(t, ErrNotFound, errors.Cause(err))
	})

	t.Run("store down", func(t *testing.T) {
		db.Fail(errConn)
		defer db.Fail(nil)
		_, err := svc.ScoreDepartment(ctx, dept.ID, year)
		assert.True(t, core.IsUnavailable(err))
	})
}

func TestService_SaveSectionReview(t *testing.T) {
	db := inmemdb.Open()
	svc := testutil.NewService(db, nil, nil)
	ctx := context.Background()

	dept := testutil.AddDepartment(t, db, 1, "PHY", "Science")
	other := testutil.AddDepartment(t, db, 2, "HIS", "Arts")
	db.SetRawData(testutil.MaxedRawData(dept.ID, year, SectionResearch, SectionStudents))
	testutil.AssignExpert(t, svc, "Science", "expert@uni.edu")

	expert := reviewer.NewActor("Expert@uni.edu", "", []string{reviewer.RoleExpert}, 0)
	intruder := reviewer.NewActor("intruder@uni.edu", "", []string{reviewer.RoleExpert}, 0)
	admin := reviewer.NewActor("expert@uni.edu", "", []string{reviewer.RoleAdmin}, 0)

	t.Run("not assigned", func(t *testing.T) {
		tests := []struct {
			name   string
			actor  reviewer.Actor
			deptID int
		}{
			{name: "other expert", actor: intruder, deptID: dept.ID},
			{name: "not an expert", actor: admin, deptID: dept.ID},
			{name: "category without expert", actor: expert, deptID: other.ID},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.SaveSectionReview(ctx, tt.actor, tt.deptID, year, SectionReview{Section: SectionResearch, Score: ptr(1)})
				assert.Equal(t, ErrNotAssigned, errors.Cause(err))
			})
		}
	})

	t.Run("unknown department", func(t *testing.T) {
		_, err := svc.SaveSectionReview(ctx, expert, 404, year, SectionReview{Section: SectionResearch, Score: ptr(1)})
		assert.Equal(t, ErrNotFound, errors.Cause(err))
	})

	t.Run("invalid section", func(t *testing.T) {
		_, err := svc.SaveSectionReview(ctx, expert, dept.ID, year, SectionReview{Section: 0})
		assert.Equal(t, ErrInvalidSection, errors.Cause(err))
	})

	t.Run("per-section upserts", func(t *testing.T) {
		r, err := svc.SaveSectionReview(ctx, expert, dept.ID, year, SectionReview{Section: SectionStudents, Score: ptr(80), Remarks: "  good  "})
		require.NoError(t, err)
		assert.NotEqual(t, [16]byte{}, [16]byte(r.ID))
		assert.Equal(t, "good", r.Remarks[SectionStudents.Index()])
		if assert.NotNil(t, r.Total) {
			assert.Equal(t, 380.0, *r.Total)
		}

		r2, err := svc.SaveSectionReview(ctx, expert, dept.ID, year, SectionReview{Section: SectionTeaching, Score: ptr(50)})
		require.NoError(t, err)
		assert.Equal(t, r.ID, r2.ID)
		if assert.NotNil(t, r2.Total) {
			assert.Equal(t, 430.0, *r2.Total)
		}

		// last write wins
		r3, err := svc.SaveSectionReview(ctx, expert, dept.ID, year, SectionReview{Section: SectionTeaching, Score: ptr(20)})
		require.NoError(t, err)
		assert.Equal(t, 400.0, *r3.Total)

		got, err := svc.GetReview(ctx, dept.ID, year)
		require.NoError(t, err)
		assert.Equal(t, 400.0, *got.Total)
		assert.Equal(t, 80.0, *got.Sections[SectionStudents.Index()])
		assert.Nil(t, got.Sections[SectionResearch.Index()])
	})

	t.Run("clearing every override", func(t *testing.T) {
		_, err := svc.SaveSectionReview(ctx, expert, dept.ID, year, SectionReview{Section: SectionStudents})
		require.NoError(t, err)
		r, err := svc.SaveSectionReview(ctx, expert, dept.ID, year, SectionReview{Section: SectionTeaching})
		require.NoError(t, err)
		assert.Nil(t, r.Total)

		ds, err := svc.ScoreDepartment(ctx, dept.ID, year)
		require.NoError(t, err)
		assert.False(t, ds.HasExpertReview)
		assert.Equal(t, 400.0, ds.EffectiveScore)
	})
}

func TestService_GetReview_notFound(t *testing.T) {
	db := inmemdb.Open()
	svc := testutil.NewService(db, nil, nil)
	dept := testutil.AddDepartment(t, db, 1, "PHY", "Science")

	_, err := svc.GetReview(context.Background(), dept.ID, year)
	assert.Equal(t, ErrNotFound, errors.Cause(err), "no assignment")

	testutil.AssignExpert(t, svc, "Science", "expert@uni.edu")
	_, err = svc.GetReview(context.Background(), dept.ID, year)
	assert.Equal(t, ErrNotFound, errors.Cause(err), "no review")
}

func TestService_InvalidateScores(t *testing.T) {
	db := inmemdb.Open()
	cache := newPresetCache()
	svc := testutil.NewService(db, cache, nil)
	ctx := context.Background()

	dept := testutil.AddDepartment(t, db, 1, "PHY", "Science")
	cache.scores[dept.ID] = total(42)

	ranking, err := svc.RankOverall(ctx, year)
	require.NoError(t, err)
	assert.Equal(t, 42.0, ranking[0].AutoTotal)

	db.SetRawData(testutil.MaxedRawData(dept.ID, year, SectionGovernance))
	require.NoError(t, svc.InvalidateScores(ctx, dept.ID, year))
	assert.Equal(t, []int{dept.ID}, cache.invalidated)

	ranking, err = svc.RankOverall(ctx, year)
	require.NoError(t, err)
	assert.Equal(t, 75.0, ranking[0].AutoTotal)
}

func TestService_Assignments(t *testing.T) {
	db := inmemdb.Open()
	svc := testutil.NewService(db, nil, nil)
	ctx := context.Background()

	ca, err := svc.AssignExpert(ctx, NewAssignment{Category: " Science ", ExpertEmail: " First@Uni.edu"})
	require.NoError(t, err)
	assert.Equal(t, "Science", ca.Category)
	assert.Equal(t, "first@uni.edu", ca.ExpertEmail)

	_, err = svc.AssignExpert(ctx, NewAssignment{Category: "Science", ExpertEmail: "second@uni.edu"})
	require.NoError(t, err)
	_, err = svc.AssignExpert(ctx, NewAssignment{Category: "Arts", ExpertEmail: "arts@uni.edu"})
	require.NoError(t, err)

	assignments, err := svc.Assignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, "Arts", assignments[0].Category)
	assert.Equal(t, "second@uni.edu", assignments[1].ExpertEmail)

	db.Fail(errConn)
	_, err = svc.Assignments(ctx)
	assert.True(t, core.IsUnavailable(err))
}
