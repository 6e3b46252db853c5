package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dropsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_drops_started_total",
			Help: "Total number of matching drop runs started",
		},
	)

	dropsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_drops_completed_total",
			Help: "Total number of matching drop runs completed",
		},
	)

	dropDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_drop_duration_seconds",
			Help:    "Wall-clock duration of a full drop run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	pairsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_pairs_scored_total",
			Help: "Total number of candidate pairs scored",
		},
	)

	dealbreakerRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_dealbreaker_rejections_total",
			Help: "Total number of pairs rejected by the dealbreaker gate",
		},
	)

	matchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_created_total",
			Help: "Total number of matches written by drop runs",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of pairwise compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	matchResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_match_responses_total",
			Help: "Total number of user responses to matches",
		},
		[]string{"action"},
	)
)

func recordDropStarted() {
	dropsStartedTotal.Inc()
}

func recordDropCompleted(duration time.Duration) {
	dropsCompletedTotal.Inc()
	dropDuration.Observe(duration.Seconds())
}

func recordPairScored(result ScoreResult) {
	pairsScoredTotal.Inc()
	if result.DealbreakerHit {
		dealbreakerRejectionsTotal.Inc()
		return
	}
	compatibilityScores.Observe(result.Score)
}

func recordMatchCreated() {
	matchesCreatedTotal.Inc()
}

func recordMatchResponse(action string) {
	matchResponsesTotal.WithLabelValues(action).Inc()
}
