// internal/workers/analysis/analyze-company/models.go
package analyzecompany

import (
	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
)

type Input struct {
	// SessionID is optional; without it the analysis is not stored.
	SessionID string              `json:"sessionId,omitempty"`
	Profile   models.ProfileInput `json:"profile"`
}

type Output struct {
	Analysis    models.AnalysisResult `json:"analysis"`
	Report      string                `json:"report"`
	Scores      indicators.ScoreCard  `json:"scores"`
	Status      models.Status         `json:"status"`
	StatusLabel string                `json:"statusLabel"`
	// Critical drives the alert gateway of the analysis process.
	Critical bool `json:"critical"`
	Stored   bool `json:"stored"`
}
