package session

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/metrics"
	"finanzbot/internal/common/observability"
	"finanzbot/internal/indicators"
	"finanzbot/internal/intent"
	"finanzbot/internal/models"
	"finanzbot/internal/responder"
)

// Reply is the outcome of one chat turn.
type Reply struct {
	Text           string                `json:"reply"`
	Classification models.Classification `json:"classification"`
}

// Service runs the analysis and chat pipelines against a Store. The core
// packages only ever see read-only copies of the snapshot.
type Service struct {
	store      Store
	classifier *intent.Classifier
	composer   *responder.Composer
	logger     logger.Logger
	obs        *observability.Observability
}

// NewService wires the pipeline. obs may be nil.
func NewService(store Store, classifier *intent.Classifier, composer *responder.Composer, log logger.Logger, obs *observability.Observability) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		composer:   composer,
		logger:     log.WithFields(map[string]interface{}{"component": "session"}),
		obs:        obs,
	}
}

// Classify exposes the classifier used by Reply.
func (s *Service) Classify(message string) models.Classification {
	return s.classifier.Classify(message)
}

// Analyze evaluates profile and replaces the session's snapshot. A welcome
// turn is recorded when the conversation has not started yet.
func (s *Service) Analyze(ctx context.Context, id string, profile models.CompanyProfile) (models.AnalysisResult, error) {
	result := indicators.Evaluate(profile)
	if err := s.store.SaveSnapshot(ctx, id, result); err != nil {
		return models.AnalysisResult{}, err
	}
	metrics.AnalysesTotal.WithLabelValues(string(result.Status)).Inc()

	turns, err := s.store.Turns(ctx, id)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	if len(turns) == 0 {
		welcome := models.NewTurn(models.SpeakerAssistant, responder.Welcome(result))
		if err := s.store.AppendTurns(ctx, id, welcome); err != nil {
			return models.AnalysisResult{}, err
		}
	}

	s.logger.Info("analysis stored", map[string]interface{}{
		"sessionId": id,
		"company":   result.CompanyName,
		"sector":    string(result.Sector),
		"status":    string(result.Status),
	})
	return result, nil
}

// Reply answers a message from the current snapshot and records the
// question and answer as one pair.
func (s *Service) Reply(ctx context.Context, id, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewEmptyMessageError()
	}
	userTurn := models.NewTurn(models.SpeakerUser, message)

	snapshot, err := s.store.LoadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cls := s.classifier.Classify(message)
	text, err := s.composer.Compose(cls, snapshot)
	if err != nil {
		if stderrors.Is(err, responder.ErrMalformedSnapshot) {
			return nil, apperrors.NewSnapshotInvalidError(err)
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.obs.RecordPipelineDuration(ctx, string(cls.Topic), time.Since(start))
	metrics.MessagesClassified.WithLabelValues(string(cls.Topic), string(cls.Stage)).Inc()
	metrics.RecordReply(string(cls.Topic), snapshot != nil)

	// both turns land together so a failed reply leaves no dangling question
	if err := s.store.AppendTurns(ctx, id, userTurn, models.NewTurn(models.SpeakerAssistant, text)); err != nil {
		return nil, err
	}

	s.logger.Debug("reply composed", map[string]interface{}{
		"sessionId": id,
		"topic":     string(cls.Topic),
		"stage":     string(cls.Stage),
		"snapshot":  snapshot != nil,
	})
	return &Reply{Text: text, Classification: cls}, nil
}

// Snapshot returns the stored analysis or a SNAPSHOT_NOT_FOUND error.
func (s *Service) Snapshot(ctx context.Context, id string) (*models.AnalysisResult, error) {
	snapshot, err := s.store.LoadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.NewSnapshotNotFoundError(id)
	}
	return snapshot, nil
}

func (s *Service) History(ctx context.Context, id string) ([]models.ConversationTurn, error) {
	return s.store.Turns(ctx, id)
}

func (s *Service) ClearHistory(ctx context.Context, id string) error {
	return s.store.ClearTurns(ctx, id)
}
