// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// QuestionsTotal counts questions by outcome: matched, unmatched.
	QuestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_questions_total",
			Help: "Total number of movie questions classified",
		},
		[]string{"intent", "outcome"},
	)

	GraphQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movie_graph_query_duration_seconds",
			Help:    "Duration of graph store round trips in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"intent"},
	)

	GraphQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_graph_query_failures_total",
			Help: "Total number of graph store failures",
		},
		[]string{"intent", "reason"},
	)

	// CacheLookups counts answer cache lookups by result: hit, miss, error.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_graph_cache_lookups_total",
			Help: "Total number of answer cache lookups",
		},
		[]string{"result"},
	)

	HistoryWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_question_history_write_failures_total",
			Help: "Total number of question history rows that could not be written",
		},
	)
)
