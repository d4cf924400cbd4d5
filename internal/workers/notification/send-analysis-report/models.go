// internal/workers/notification/send-analysis-report/models.go
package sendanalysisreport

import "finanzbot/internal/models"

type Input struct {
	Analysis   models.AnalysisResult `json:"analysis"`
	Recipients []string              `json:"recipients"`
	SessionID  string                `json:"sessionId,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "disabled"
	AlertPublished bool   `json:"alertPublished"`
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)
