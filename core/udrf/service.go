package udrf

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
	"github.com/Swapnil27012000/uomdcs-sub003/core/reviewer"
)

type (
	DepartmentRepository interface {
		// QueryDepartments returns the departments taking part in filter.AcademicYear.
		QueryDepartments(ctx context.Context, filter DepartmentFilter) ([]Department, error)
		GetDepartment(ctx context.Context, id int) (Department, error)
		// GetRawData returns zero values (and no error) for sections without submitted data.
		GetRawData(ctx context.Context, deptID int, year string) (RawData, error)
	}

	ReviewRepository interface {
		GetReview(ctx context.Context, key ReviewKey) (ExpertReview, error)
		// UpsertSectionReview overwrites one section of a review, creating the review if needed.
		UpsertSectionReview(ctx context.Context, su SectionUpsert) (ExpertReview, error)
	}

	AssignmentRepository interface {
		GetCategoryExpert(ctx context.Context, category string) (CategoryAssignment, error)
		UpsertCategoryExpert(ctx context.Context, ca CategoryAssignment) (CategoryAssignment, error)
		QueryAssignments(ctx context.Context) ([]CategoryAssignment, error)
	}

	Repository interface {
		DepartmentRepository
		ReviewRepository
		AssignmentRepository
	}

	// SectionUpsert is a single-section write of an expert review.
	SectionUpsert struct {
		ID        uuid.UUID // used only when the review is created
		Key       ReviewKey
		Section   SectionID
		Score     *float64
		Remarks   string
		Total     *float64
		UpdatedAt time.Time
	}

	Service struct {
		repo     Repository
		cache    ScoreCache
		obs      Observer
		logger   core.Logger
		excluded []string
	}
)

// NewService returns the scoring & ranking service. cache and obs are optional.
func NewService(repo Repository, cache ScoreCache, obs Observer, logger core.Logger, conf *core.Config) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		obs:      obs,
		logger:   logger,
		excluded: conf.Ranking.ExcludedCodes,
	}
}

// storeError marks every store failure, except a missing row, as fatal for the current call.
func storeError(err error, msg string) error {
	if errors.Cause(err) == ErrNotFound || core.IsUnavailable(err) {
		return errors.Wrap(err, msg)
	}
	return core.NewUnavailableError(errors.Wrap(err, msg))
}

func checkYear(year string) error {
	if !ValidAcademicYear(year) {
		return errors.Wrapf(ErrInvalidYear, "%q", year)
	}
	return nil
}

// Rank ranks the departments of q.Category (all departments if empty) for q.AcademicYear.
// Any store failure aborts the whole ranking.
func (svc *Service) Rank(ctx context.Context, q RankQuery) (ranking []RankedEntry, err error) {
	start := time.Now()
	defer func() {
		svc.obs.ObserveRanking(q.Category, len(ranking), time.Since(start), err)
	}()

	if err = checkYear(q.AcademicYear); err != nil {
		return nil, err
	}

	depts, err := svc.repo.QueryDepartments(ctx, DepartmentFilter{
		Category:      q.Category,
		AcademicYear:  q.AcademicYear,
		ExcludedCodes: svc.excluded,
	})
	if err != nil {
		return nil, storeError(err, "querying departments")
	}

	experts := make(map[string]string) // category -> assigned expert
	ranking = make([]RankedEntry, 0, len(depts))
	for _, dept := range depts {
		auto, err := svc.autoSections(ctx, dept.ID, q.AcademicYear)
		if err != nil {
			return nil, err
		}
		review, err := svc.assignedReview(ctx, dept, q.AcademicYear, experts)
		if err != nil {
			return nil, err
		}
		ranking = append(ranking, newRankedEntry(dept, auto, review))
	}

	sortAndRank(ranking)
	return ranking, nil
}

// RankOverall ranks all departments of year in a single sequence.
func (svc *Service) RankOverall(ctx context.Context, year string) ([]RankedEntry, error) {
	return svc.Rank(ctx, RankQuery{AcademicYear: year})
}

// ScoreDepartment recomputes the detailed score of a department.
func (svc *Service) ScoreDepartment(ctx context.Context, deptID int, year string) (DepartmentScore, error) {
	if err := checkYear(year); err != nil {
		return DepartmentScore{}, err
	}

	dept, err := svc.repo.GetDepartment(ctx, deptID)
	if err != nil {
		return DepartmentScore{}, storeError(err, "getting department")
	}

	raw, err := svc.repo.GetRawData(ctx, dept.ID, year)
	if err != nil {
		return DepartmentScore{}, storeError(err, "getting raw data")
	}
	scores := ScoreAll(raw)
	svc.cacheSet(ctx, dept.ID, year, scores.Values())

	review, err := svc.assignedReview(ctx, dept, year, nil)
	if err != nil {
		return DepartmentScore{}, err
	}

	var overrides [SectionCount]*float64
	if review != nil {
		overrides = review.Sections
	}
	agg := Aggregate(scores.Values(), overrides)

	ds := DepartmentScore{
		Department:     dept,
		AcademicYear:   year,
		Sections:       scores,
		AutoTotal:      agg.AutoTotal,
		EffectiveScore: agg.AutoTotal,
		Diff:           agg.Diff,
		Review:         review,
	}
	if agg.Reviewed() {
		total := agg.ExpertTotal
		ds.ExpertTotal = &total
		ds.EffectiveScore = total
		ds.HasExpertReview = true
	}
	if review != nil {
		review.Total = ds.ExpertTotal
	}
	return ds, nil
}

// GetReview returns the review of the expert assigned to the department's category.
func (svc *Service) GetReview(ctx context.Context, deptID int, year string) (ExpertReview, error) {
	if err := checkYear(year); err != nil {
		return ExpertReview{}, err
	}

	dept, err := svc.repo.GetDepartment(ctx, deptID)
	if err != nil {
		return ExpertReview{}, storeError(err, "getting department")
	}
	review, err := svc.assignedReview(ctx, dept, year, nil)
	if err != nil {
		return ExpertReview{}, err
	}
	if review == nil {
		return ExpertReview{}, errors.Wrap(ErrNotFound, "review")
	}

	auto, err := svc.autoSections(ctx, dept.ID, year)
	if err != nil {
		return ExpertReview{}, err
	}
	review.Total = nil
	if agg := Aggregate(auto, review.Sections); agg.Reviewed() {
		total := agg.ExpertTotal
		review.Total = &total
	}
	return *review, nil
}

// SaveSectionReview overwrites one section of the actor's review of a department.
// Only the expert assigned to the department's category may review it.
func (svc *Service) SaveSectionReview(ctx context.Context, actor reviewer.Actor, deptID int, year string, sr SectionReview) (ExpertReview, error) {
	if err := checkYear(year); err != nil {
		return ExpertReview{}, err
	}
	if !sr.Section.Valid() {
		return ExpertReview{}, errors.Wrapf(ErrInvalidSection, "%d", sr.Section)
	}
	if !actor.IsExpert() {
		return ExpertReview{}, ErrNotAssigned
	}
	sr.Clean()

	dept, err := svc.repo.GetDepartment(ctx, deptID)
	if err != nil {
		return ExpertReview{}, storeError(err, "getting department")
	}

	assignment, err := svc.repo.GetCategoryExpert(ctx, dept.Category)
	switch {
	case errors.Cause(err) == ErrNotFound:
		return ExpertReview{}, ErrNotAssigned
	case err != nil:
		return ExpertReview{}, storeError(err, "getting category expert")
	case assignment.ExpertEmail != actor.Email:
		return ExpertReview{}, ErrNotAssigned
	}

	key := ReviewKey{ExpertEmail: actor.Email, DepartmentID: dept.ID, AcademicYear: year}
	current, err := svc.repo.GetReview(ctx, key)
	if err != nil && errors.Cause(err) != ErrNotFound {
		return ExpertReview{}, storeError(err, "getting review")
	}

	auto, err := svc.autoSections(ctx, dept.ID, year)
	if err != nil {
		return ExpertReview{}, err
	}
	overrides := current.Sections
	overrides[sr.Section.Index()] = sr.Score

	su := SectionUpsert{
		ID:        uuid.New(),
		Key:       key,
		Section:   sr.Section,
		Score:     sr.Score,
		Remarks:   sr.Remarks,
		UpdatedAt: NowFunc().UTC(),
	}
	if agg := Aggregate(auto, overrides); agg.Reviewed() {
		total := agg.ExpertTotal
		su.Total = &total
	}

	review, err := svc.repo.UpsertSectionReview(ctx, su)
	if err != nil {
		return ExpertReview{}, storeError(err, "saving section review")
	}
	review.Total = su.Total
	svc.obs.ObserveReview(sr.Section)
	return review, nil
}

// InvalidateScores drops the cached auto scores of a department.
func (svc *Service) InvalidateScores(ctx context.Context, deptID int, year string) error {
	if err := checkYear(year); err != nil {
		return err
	}
	if err := svc.cache.Invalidate(ctx, deptID, year); err != nil {
		return errors.Wrap(err, "invalidating scores")
	}
	return nil
}

// AssignExpert makes na.ExpertEmail the single expert of na.Category.
func (svc *Service) AssignExpert(ctx context.Context, na NewAssignment) (CategoryAssignment, error) {
	ca, err := svc.repo.UpsertCategoryExpert(ctx, CategoryAssignment{
		Category:    core.CleanString(na.Category),
		ExpertEmail: core.CleanString(na.ExpertEmail, true /* lower */),
		UpdatedAt:   NowFunc().UTC(),
	})
	if err != nil {
		return CategoryAssignment{}, storeError(err, "assigning expert")
	}
	return ca, nil
}

func (svc *Service) Assignments(ctx context.Context) ([]CategoryAssignment, error) {
	assignments, err := svc.repo.QueryAssignments(ctx)
	if err != nil {
		return nil, storeError(err, "querying assignments")
	}
	return assignments, nil
}

// QueryDepartments lists the departments ranked for year, optionally in one category.
func (svc *Service) QueryDepartments(ctx context.Context, category, year string, ordering []core.DBOrdering) ([]Department, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	depts, err := svc.repo.QueryDepartments(ctx, DepartmentFilter{
		Category:      core.CleanString(category),
		AcademicYear:  year,
		ExcludedCodes: svc.excluded,
		Ordering:      core.FilterOrderings(ordering, DepartmentOrderingFields...),
	})
	if err != nil {
		return nil, storeError(err, "querying departments")
	}
	return depts, nil
}

// autoSections returns the auto section scores, from the cache when possible.
func (svc *Service) autoSections(ctx context.Context, deptID int, year string) ([SectionCount]float64, error) {
	scores, ok, err := svc.cache.Get(ctx, deptID, year)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("score cache get: %v", err), err)
	}
	svc.obs.ObserveCache(ok)
	if ok {
		return scores, nil
	}

	raw, err := svc.repo.GetRawData(ctx, deptID, year)
	if err != nil {
		return scores, storeError(err, fmt.Sprintf("getting raw data of department %d", deptID))
	}
	scores = ScoreAll(raw).Values()
	svc.cacheSet(ctx, deptID, year, scores)
	return scores, nil
}

func (svc *Service) cacheSet(ctx context.Context, deptID int, year string, scores [SectionCount]float64) {
	if err := svc.cache.Set(ctx, deptID, year, scores); err != nil {
		svc.logger.Warn(fmt.Sprintf("score cache set: %v", err), err)
	}
}

// assignedReview returns the review of the expert assigned to dept's category, or nil.
// experts memoizes category lookups across departments; it may be nil.
func (svc *Service) assignedReview(ctx context.Context, dept Department, year string, experts map[string]string) (*ExpertReview, error) {
	email, known := experts[dept.Category]
	if !known {
		ca, err := svc.repo.GetCategoryExpert(ctx, dept.Category)
		if err != nil && errors.Cause(err) != ErrNotFound {
			return nil, storeError(err, "getting category expert")
		}
		email = ca.ExpertEmail
		if experts != nil {
			experts[dept.Category] = email
		}
	}
	if email == "" {
		return nil, nil
	}

	key := ReviewKey{ExpertEmail: email, DepartmentID: dept.ID, AcademicYear: year}
	review, err := svc.repo.GetReview(ctx, key)
	switch {
	case errors.Cause(err) == ErrNotFound:
		return nil, nil
	case err != nil:
		return nil, storeError(err, "getting review")
	}
	if review.Key != key {
		return nil, core.NewShutdownError(fmt.Sprintf("review %s: stored key %+v does not match %+v", review.ID, review.Key, key))
	}
	return &review, nil
}
