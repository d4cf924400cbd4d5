// Package session owns the per-session state of the chat: the analysis
// snapshot and the conversation history.
package session

import (
	"context"

	"finanzbot/internal/models"
)

// Store persists session state. Implementations must be safe for
// concurrent use; sessions never share keys.
type Store interface {
	// SaveSnapshot replaces the session's snapshot wholesale.
	SaveSnapshot(ctx context.Context, id string, r models.AnalysisResult) error
	// LoadSnapshot returns nil, nil when no analysis was stored.
	LoadSnapshot(ctx context.Context, id string) (*models.AnalysisResult, error)
	AppendTurns(ctx context.Context, id string, turns ...models.ConversationTurn) error
	Turns(ctx context.Context, id string) ([]models.ConversationTurn, error)
	ClearTurns(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
