package metrics

import (
	"strconv"

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

	MessagesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finanzbot_messages_classified_total",
			Help: "Chat messages classified, by topic and deciding stage",
		},
		[]string{"topic", "stage"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finanzbot_analyses_total",
			Help: "Company analyses computed, by overall status",
		},
		[]string{"status"},
	)

	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finanzbot_replies_total",
			Help: "Replies composed, by topic and whether a snapshot was available",
		},
		[]string{"topic", "snapshot"},
	)
)

// RecordReply counts one composed reply.
func RecordReply(topic string, withSnapshot bool) {
	RepliesTotal.WithLabelValues(topic, strconv.FormatBool(withSnapshot)).Inc()
}
