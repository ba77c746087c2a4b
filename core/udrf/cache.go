package udrf

import (
	"context"
	"time"
)

// ScoreCache stores the auto section scores of a department for an academic year.
// Entries must be dropped whenever the department's raw data changes.
type ScoreCache interface {
	// Get returns ok == false on a miss.
	Get(ctx context.Context, deptID int, year string) (scores [SectionCount]float64, ok bool, err error)
	Set(ctx context.Context, deptID int, year string, scores [SectionCount]float64) error
	Invalidate(ctx context.Context, deptID int, year string) error
}

// NopCache never stores anything: scores are recomputed on every read.
type NopCache struct{}

var _ ScoreCache = NopCache{}

func (NopCache) Get(context.Context, int, string) ([SectionCount]float64, bool, error) {
	return [SectionCount]float64{}, false, nil
}

func (NopCache) Set(context.Context, int, string, [SectionCount]float64) error { return nil }

func (NopCache) Invalidate(context.Context, int, string) error { return nil }

// Observer is notified of the service's activity.
type Observer interface {
	ObserveRanking(category string, departments int, elapsed time.Duration, err error)
	ObserveCache(hit bool)
	ObserveReview(section SectionID)
}

type nopObserver struct{}

func (nopObserver) ObserveRanking(string, int, time.Duration, error) {}
func (nopObserver) ObserveCache(bool)                                {}
func (nopObserver) ObserveReview(SectionID)                          {}
