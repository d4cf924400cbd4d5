// internal/workers/analysis/analyze-company/handler.go
package analyzecompany

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/metrics"
	"finanzbot/internal/common/validation"
	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
)

const (
	TaskType = "analyze-company"
)

// Analyzer evaluates a profile and stores the result as a session's
// snapshot. *session.Service satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, sessionID string, profile models.CompanyProfile) (models.AnalysisResult, error)
}

type Handler struct {
	config     *Config
	analyzer   Analyzer
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, analyzer Analyzer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		analyzer:   analyzer,
		logger:     l,
		errHandler: apperrors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidRequestError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validation.ValidateProfile(input.Profile); err != nil {
		return nil, err
	}
	profile := input.Profile.Profile()

	var result models.AnalysisResult
	stored := false
	if input.SessionID != "" {
		var err error
		result, err = h.analyzer.Analyze(ctx, input.SessionID, profile)
		if err != nil {
			return nil, err
		}
		stored = true
	} else {
		result = indicators.Evaluate(profile)
		metrics.AnalysesTotal.WithLabelValues(string(result.Status)).Inc()
	}

	h.logger.Info("company analyzed", map[string]interface{}{
		"company": result.CompanyName,
		"sector":  string(result.Sector),
		"status":  string(result.Status),
		"stored":  stored,
	})

	return &Output{
		Analysis:    result,
		Report:      indicators.Report(result),
		Scores:      indicators.Scores(result),
		Status:      result.Status,
		StatusLabel: result.Status.Label(),
		Critical:    result.Status == models.StatusCritical,
		Stored:      stored,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
