// internal/workers/analysis/load-company-profile/handler.go
package loadcompanyprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"finanzbot/internal/common/database"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/metrics"
)

const (
	TaskType = "load-company-profile"
)

var (
	ErrMissingCompanyID = errors.New("MISSING_COMPANY_ID")
)

type Handler struct {
	config     *Config
	repo       database.CompanyRepository
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, repo database.CompanyRepository, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		repo:       repo,
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
	id := strings.TrimSpace(input.CompanyID)
	if id == "" {
		return nil, apperrors.NewInvalidRequestError(ErrMissingCompanyID.Error())
	}

	profile, err := h.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, database.ErrCompanyNotFound):
		return nil, apperrors.NewCompanyNotFoundError(id)
	case errors.Is(err, context.DeadlineExceeded):
		return nil, apperrors.NewTimeoutError("postgres", err)
	case err != nil:
		return nil, apperrors.NewDatabaseError("find_company", err)
	}

	h.logger.Debug("company loaded", map[string]interface{}{
		"companyId": id,
		"sector":    profile.Sector,
	})
	return &Output{CompanyID: id, Profile: *profile}, nil
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
