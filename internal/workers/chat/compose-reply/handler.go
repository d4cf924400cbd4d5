// internal/workers/chat/compose-reply/handler.go
package composereply

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/metrics"
	"finanzbot/internal/render"
	"finanzbot/internal/session"
)

const (
	TaskType = "compose-reply"
)

var (
	ErrMissingSessionID = errors.New("MISSING_SESSION_ID")
)

// Replier runs one chat turn. *session.Service satisfies it.
type Replier interface {
	Reply(ctx context.Context, sessionID, message string) (*session.Reply, error)
}

type Handler struct {
	config     *Config
	replier    Replier
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, replier Replier, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		replier:    replier,
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
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, apperrors.NewInvalidRequestError(ErrMissingSessionID.Error())
	}

	reply, err := h.replier.Reply(ctx, input.SessionID, input.Message)
	if err != nil {
		return nil, err
	}

	output := &Output{
		Reply:   reply.Text,
		Topic:   reply.Classification.Topic,
		Subtype: reply.Classification.OffTopic,
		Stage:   reply.Classification.Stage,
	}
	if h.config.RenderHTML {
		html, err := render.HTML(reply.Text)
		if err != nil {
			return nil, apperrors.NewReportRenderError(err)
		}
		output.ReplyHTML = html
	}
	return output, nil
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
