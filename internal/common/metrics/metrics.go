// internal/common/metrics/metrics.go
package metrics

import (
	"time"

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
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of jobs currently being handled per worker",
		},
		[]string{"task_type"},
	)

	EligibilityOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_eligibility_outcomes_total",
			Help: "Eligibility results by status",
		},
		[]string{"status"},
	)

	ClinicMatchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_clinic_matches",
			Help:    "Number of clinics returned per match request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_persistence_failures_total",
			Help: "Best-effort writes that failed, by operation",
		},
		[]string{"operation"},
	)

	ClinicCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_clinic_cache_lookups_total",
			Help: "Clinic directory cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

// ObserveJob records the duration and outcome of one job. errorCode is empty
// for a completed job.
func ObserveJob(taskType string, start time.Time, errorCode string) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// TrackActive increments the active gauge and returns the matching decrement.
func TrackActive(taskType string) func() {
	g := WorkerJobsActive.WithLabelValues(taskType)
	g.Inc()
	return g.Dec
}

func RecordPersistenceFailure(operation string) {
	PersistenceFailures.WithLabelValues(operation).Inc()
}
