// internal/workers/chat/compose-reply/models.go
package composereply

import "finanzbot/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type Output struct {
	Reply     string              `json:"reply"`
	ReplyHTML string              `json:"replyHtml,omitempty"`
	Topic     models.Topic        `json:"topic"`
	Subtype   models.OffTopicKind `json:"subtype,omitempty"`
	Stage     models.Stage        `json:"stage"`
}
