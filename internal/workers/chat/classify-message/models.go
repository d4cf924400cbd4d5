// internal/workers/chat/classify-message/models.go
package classifymessage

import "finanzbot/internal/models"

type Input struct {
	Message string `json:"message"`
}

type Output struct {
	Topic   models.Topic        `json:"topic"`
	Subtype models.OffTopicKind `json:"subtype,omitempty"`
	Stage   models.Stage        `json:"stage"`
	Score   float64             `json:"score"`
	Keyword string              `json:"keyword,omitempty"`
	// Financial routes the process to the snapshot-backed reply path.
	Financial bool `json:"financial"`
}
