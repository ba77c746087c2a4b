package metricsvc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

const (
	MetricRankingsTotal   = "udrf_rankings_total"
	MetricRankingDuration = "udrf_ranking_duration_seconds"
	MetricRankedDepts     = "udrf_ranked_departments"
	MetricCacheLookups    = "udrf_score_cache_lookups_total"
	MetricSectionReviews  = "udrf_section_reviews_total"

	StatusSuccess = "success"
	StatusFailure = "failure"

	// overall is the category label of cross-category rankings
	overall = "overall"
)

// Observer exports the scoring service's activity as prometheus metrics.
type Observer struct {
	rankings       *prometheus.CounterVec
	rankingLatency *prometheus.HistogramVec
	rankedDepts    *prometheus.GaugeVec
	cacheLookups   *prometheus.CounterVec
	sectionReviews *prometheus.CounterVec
}

var _ udrf.Observer = (*Observer)(nil) // interface compliance check

// NewObserver returns an Observer whose collectors are not registered yet: see Register.
func NewObserver() *Observer {
	return &Observer{
		rankings: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: MetricRankingsTotal, Help: "Rankings computed by category and status"},
			[]string{"category", "status"},
		),
		rankingLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRankingDuration,
				Help:    "Time taken to compute a ranking",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"category"},
		),
		rankedDepts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: MetricRankedDepts, Help: "Departments in the last successful ranking"},
			[]string{"category"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: MetricCacheLookups, Help: "Score cache lookups by result"},
			[]string{"result"},
		),
		sectionReviews: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: MetricSectionReviews, Help: "Expert section reviews saved by section"},
			[]string{"section"},
		),
	}
}

func (o *Observer) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.rankings, o.rankingLatency, o.rankedDepts, o.cacheLookups, o.sectionReviews}
}

func (o *Observer) Register(reg prometheus.Registerer) error {
	for _, c := range o.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (o *Observer) ObserveRanking(category string, departments int, elapsed time.Duration, err error) {
	if category == "" {
		category = overall
	}
	if err != nil {
		o.rankings.WithLabelValues(category, StatusFailure).Inc()
		return
	}
	o.rankings.WithLabelValues(category, StatusSuccess).Inc()
	o.rankingLatency.WithLabelValues(category).Observe(elapsed.Seconds())
	o.rankedDepts.WithLabelValues(category).Set(float64(departments))
}

func (o *Observer) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	o.cacheLookups.WithLabelValues(result).Inc()
}

func (o *Observer) ObserveReview(section udrf.SectionID) {
	o.sectionReviews.WithLabelValues(section.String()).Inc()
}
