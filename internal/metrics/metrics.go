package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AttemptsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quizbabu_attempts_started_total",
			Help: "Total number of quiz attempts started",
		},
	)

	AttemptsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizbabu_attempts_submitted_total",
			Help: "Total number of quiz attempts finalized, by trigger",
		},
		[]string{"trigger"},
	)

	SourceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quizbabu_question_source_failures_total",
			Help: "Total number of failed question fetches",
		},
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quizbabu_question_source_fetch_seconds",
			Help:    "Time spent fetching a question batch",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	ScorePercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quizbabu_score_percentage",
			Help:    "Distribution of final quiz scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)
