package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"finanzbot/internal/common/config"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/metrics"
	"finanzbot/internal/common/observability"
	"finanzbot/internal/common/validation"
)

// HandlerFunc is the signature of every worker's Handle method.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Manager opens job workers on one Zeebe client and closes them together.
type Manager struct {
	client  zbc.Client
	obs     *observability.Observability
	logger  *zap.Logger
	workers []worker.JobWorker
}

func NewManager(client zbc.Client, obs *observability.Observability, logger *zap.Logger) *Manager {
	return &Manager{client: client, obs: obs, logger: logger}
}

// Start opens a job worker for taskType unless it is disabled.
func (m *Manager) Start(taskType string, wcfg config.WorkerConfig, handler HandlerFunc) bool {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", zap.String("taskType", taskType))
		return false
	}

	jw := m.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handler, m.obs))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()
	m.workers = append(m.workers, jw)

	m.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return true
}

// Count returns the number of open workers.
func (m *Manager) Count() int {
	return len(m.workers)
}

// Close stops every worker, waiting for in-flight jobs.
func (m *Manager) Close() {
	for _, w := range m.workers {
		w.Close()
		w.AwaitClose()
	}
	m.workers = nil
}

// Instrument tracks active jobs and handling time of handler.
func Instrument(taskType string, handler HandlerFunc, obs *observability.Observability) HandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		start := time.Now()
		defer func() {
			active.Dec()
			elapsed := time.Since(start)
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJobDuration(context.Background(), taskType, elapsed, "handled")
			obs.RecordJobProcessed(context.Background(), taskType, "handled")
		}()
		handler(client, job)
	}
}

// ValidateInput rejects jobs whose variables do not satisfy schema before
// handler sees them.
func ValidateInput(schema *validation.Schema, handler HandlerFunc, errHandler *apperrors.ErrorHandler) HandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		res, err := schema.ValidateJSON([]byte(job.Variables))
		switch {
		case err != nil:
			errHandler.HandleJobError(context.Background(), client, job, apperrors.NewInvalidRequestError(err.Error()))
		case !res.Valid:
			errHandler.HandleJobError(context.Background(), client, job, apperrors.NewInvalidRequestError(res.Details()))
		default:
			handler(client, job)
		}
	}
}
