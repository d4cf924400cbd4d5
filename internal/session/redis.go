package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"finanzbot/internal/common/config"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/models"
)

// RedisStore keeps the snapshot as a JSON string and the history as a list
// of JSON turns. Every write refreshes the TTL of both keys.
type RedisStore struct {
	client     redis.Cmdable
	prefix     string
	ttl        time.Duration
	maxHistory int64
}

func NewRedisStore(client redis.Cmdable, cfg config.SessionConfig) *RedisStore {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "finanzbot:session"
	}
	return &RedisStore{
		client:     client,
		prefix:     prefix,
		ttl:        cfg.TTLDuration(),
		maxHistory: int64(cfg.MaxHistory),
	}
}

func (s *RedisStore) snapshotKey(id string) string {
	return fmt.Sprintf("%s:%s:snapshot", s.prefix, id)
}

func (s *RedisStore) historyKey(id string) string {
	return fmt.Sprintf("%s:%s:history", s.prefix, id)
}

func (s *RedisStore) SaveSnapshot(ctx context.Context, id string, r models.AnalysisResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("encode snapshot: %w", err))
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.snapshotKey(id), data, s.ttl)
		pipe.Expire(ctx, s.historyKey(id), s.ttl)
		return nil
	})
	if err != nil {
		return apperrors.NewSessionStoreError("save_snapshot", err)
	}
	return nil
}

func (s *RedisStore) LoadSnapshot(ctx context.Context, id string) (*models.AnalysisResult, error) {
	data, err := s.client.Get(ctx, s.snapshotKey(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreError("load_snapshot", err)
	}

	var r models.AnalysisResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, apperrors.NewSnapshotInvalidError(err)
	}
	return &r, nil
}

func (s *RedisStore) AppendTurns(ctx context.Context, id string, turns ...models.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, len(turns))
	for i, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encode turn: %w", err))
		}
		values[i] = data
	}

	key := s.historyKey(id)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		if s.maxHistory > 0 {
			pipe.LTrim(ctx, key, -s.maxHistory, -1)
		}
		pipe.Expire(ctx, key, s.ttl)
		pipe.Expire(ctx, s.snapshotKey(id), s.ttl)
		return nil
	})
	if err != nil {
		return apperrors.NewSessionStoreError("append_turns", err)
	}
	return nil
}

func (s *RedisStore) Turns(ctx context.Context, id string) ([]models.ConversationTurn, error) {
	raw, err := s.client.LRange(ctx, s.historyKey(id), 0, -1).Result()
	if err != nil {
		return nil, apperrors.NewSessionStoreError("turns", err)
	}

	turns := make([]models.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var t models.ConversationTurn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, apperrors.NewSessionStoreError("decode_turn", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *RedisStore) ClearTurns(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.historyKey(id)).Err(); err != nil {
		return apperrors.NewSessionStoreError("clear_turns", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.snapshotKey(id), s.historyKey(id)).Err(); err != nil {
		return apperrors.NewSessionStoreError("delete", err)
	}
	return nil
}
