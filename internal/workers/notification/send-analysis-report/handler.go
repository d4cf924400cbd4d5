// internal/workers/notification/send-analysis-report/handler.go
package sendanalysisreport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	awsclients "finanzbot/internal/common/aws"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/metrics"
	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
	"finanzbot/internal/render"
	"finanzbot/internal/responder"
)

const (
	TaskType = "send-analysis-report"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config     *Config
	logger     logger.Logger
	sesClient  SESService
	snsClient  SNSService
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, clients *awsclients.Clients, log logger.Logger) *Handler {
	return newHandler(config, clients.SES, clients.SNS, log)
}

func newHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		logger:     l,
		sesClient:  sesClient,
		snsClient:  snsClient,
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
	a := input.Analysis
	if err := a.Validate(); err != nil {
		return nil, apperrors.NewSnapshotInvalidError(err)
	}

	notificationID := uuid.New().String()
	status := StatusDisabled

	recipients := cleanRecipients(input.Recipients)
	if h.config.EmailEnabled && len(recipients) > 0 {
		email, err := buildEmail(h.config.FromEmail, recipients, a)
		if err != nil {
			return nil, err
		}
		if _, err := h.sesClient.SendEmail(ctx, email.SendEmailInput()); err != nil {
			return nil, apperrors.NewNotificationSendFailedError("email", err)
		}
		status = StatusSent
	}

	alerted := false
	if a.Status == models.StatusCritical && h.config.AlertsEnabled && h.config.AlertTopicARN != "" {
		alert := awsclients.Alert{
			TopicARN: h.config.AlertTopicARN,
			Subject:  fmt.Sprintf("Estado crítico: %s", a.CompanyName),
			Message:  indicators.Report(a),
			Attributes: map[string]string{
				"status":         string(a.Status),
				"sector":         string(a.Sector),
				"notificationId": notificationID,
			},
		}
		if _, err := h.snsClient.Publish(ctx, alert.PublishInput()); err != nil {
			return nil, apperrors.NewNotificationSendFailedError("sns", err)
		}
		alerted = true
	}

	h.logger.Info("analysis report processed", map[string]interface{}{
		"notificationId": notificationID,
		"company":        a.CompanyName,
		"status":         status,
		"recipients":     len(recipients),
		"alertPublished": alerted,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		AlertPublished: alerted,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// buildEmail sends the plain report as text and the markdown summary as
// HTML.
func buildEmail(from string, to []string, a models.AnalysisResult) (awsclients.Email, error) {
	subject := fmt.Sprintf("Análisis financiero de %s: %s", a.CompanyName, a.Status.Label())
	html, err := render.Document(subject, responder.Summary(a))
	if err != nil {
		return awsclients.Email{}, apperrors.NewReportRenderError(err)
	}
	return awsclients.Email{
		From:    from,
		To:      to,
		Subject: subject,
		Text:    indicators.Report(a),
		HTML:    html,
	}, nil
}

func cleanRecipients(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		if r == "" || seen[strings.ToLower(r)] {
			continue
		}
		seen[strings.ToLower(r)] = true
		out = append(out, r)
	}
	return out
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
