// Package api exposes the chat and analysis pipelines over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/validation"
	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
	"finanzbot/internal/render"
	"finanzbot/internal/session"
)

// Handler serves the session endpoints.
type Handler struct {
	svc    *session.Service
	logger logger.Logger
}

func NewHandler(svc *session.Service, log logger.Logger) *Handler {
	return &Handler{svc: svc, logger: log}
}

func (h *Handler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, sessionResponse{SessionID: uuid.NewString()})
}

func (h *Handler) SubmitCompany(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		h.writeError(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}
	if err := validation.ValidateProfileJSON(raw); err != nil {
		h.writeError(c, err)
		return
	}
	var in models.ProfileInput
	if err := json.Unmarshal(raw, &in); err != nil {
		h.writeError(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	profile := in.Profile()
	result, err := h.svc.Analyze(c.Request.Context(), id, profile)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysisResponse{
		Analysis: result,
		Report:   indicators.Report(result),
		Scores:   indicators.Scores(result),
		NLP:      newNLPDetails(profile),
	})
}

func (h *Handler) GetAnalysis(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	snapshot, err := h.svc.Snapshot(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) PostMessage(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	reply, err := h.svc.Reply(c.Request.Context(), id, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := replyResponse{
		Reply:   reply.Text,
		Topic:   reply.Classification.Topic,
		Subtype: reply.Classification.OffTopic,
		Stage:   reply.Classification.Stage,
	}
	if c.Query("format") == "html" {
		html, err := render.HTML(reply.Text)
		if err != nil {
			h.writeError(c, apperrors.NewReportRenderError(err))
			return
		}
		resp.HTML = html
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetMessages(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	turns, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, historyResponse{SessionID: id, Turns: turns})
}

func (h *Handler) ClearMessages(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.svc.ClearHistory(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Classify runs only the classifier, for diagnostics.
func (h *Handler) Classify(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.writeError(c, apperrors.NewEmptyMessageError())
		return
	}
	c.JSON(http.StatusOK, h.svc.Classify(req.Message))
}

// sessionID accepts only ids minted by CreateSession.
func (h *Handler) sessionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		h.writeError(c, apperrors.NewInvalidRequestError("session id must be a UUID"))
		return "", false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	stdErr, ok := apperrors.As(err)
	if !ok {
		stdErr = apperrors.NewInternalError(err)
	}
	status := apperrors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", map[string]interface{}{
			"path":      c.FullPath(),
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: errorBody{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	}})
}
