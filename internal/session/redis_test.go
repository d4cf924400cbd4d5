package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzbot/internal/common/config"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{TTL: 600, MaxHistory: 4, KeyPrefix: "test:session"}
}

func newMiniStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, testSessionConfig()), mr
}

func acmeResult() models.AnalysisResult {
	return indicators.Evaluate(models.CompanyProfile{
		Name:             "Acme",
		Sector:           models.SectorTechnology,
		AnnualEarnings:   20_000_000,
		Employees:        10,
		Receivables:      5_000_000,
		TotalAssets:      100_000_000,
		TotalLiabilities: 70_000_000,
	})
}

func TestRedisStore_SnapshotRoundTrip(t *testing.T) {
	store, mr := newMiniStore(t)
	ctx := context.Background()

	got, err := store.LoadSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got, "absent snapshot is not an error")

	want := acmeResult()
	require.NoError(t, store.SaveSnapshot(ctx, "s1", want))

	got, err = store.LoadSnapshot(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
	assert.Equal(t, 10*time.Minute, mr.TTL("test:session:s1:snapshot"))
}

func TestRedisStore_SnapshotWithInfinity(t *testing.T) {
	store, _ := newMiniStore(t)
	ctx := context.Background()

	want := indicators.Evaluate(models.CompanyProfile{Name: "Cero", Sector: models.SectorOther, Employees: 1})
	require.NoError(t, store.SaveSnapshot(ctx, "s1", want))

	got, err := store.LoadSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want.Indicators, got.Indicators)
}

func TestRedisStore_SnapshotReplacedWholesale(t *testing.T) {
	store, _ := newMiniStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "s1", acmeResult()))
	second := indicators.Evaluate(models.CompanyProfile{Name: "Beta", Sector: models.SectorServices, Employees: 3, TotalAssets: 10})
	require.NoError(t, store.SaveSnapshot(ctx, "s1", second))

	got, err := store.LoadSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second, *got)
}

func TestRedisStore_CorruptSnapshot(t *testing.T) {
	store, mr := newMiniStore(t)
	require.NoError(t, mr.Set("test:session:s1:snapshot", "{not json"))

	_, err := store.LoadSnapshot(context.Background(), "s1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSnapshotInvalid))
}

func TestRedisStore_TurnsAreTrimmed(t *testing.T) {
	store, mr := newMiniStore(t)
	ctx := context.Background()

	for _, text := range []string{"uno", "dos", "tres"} {
		require.NoError(t, store.AppendTurns(ctx, "s1", models.NewTurn(models.SpeakerUser, text)))
	}
	require.NoError(t, store.AppendTurns(ctx, "s1",
		models.NewTurn(models.SpeakerAssistant, "cuatro"),
		models.NewTurn(models.SpeakerUser, "cinco"),
	))

	turns, err := store.Turns(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, "dos", turns[0].Text, "oldest turn dropped")
	assert.Equal(t, "cinco", turns[3].Text)
	assert.Equal(t, models.SpeakerAssistant, turns[2].Speaker)
	assert.Equal(t, 10*time.Minute, mr.TTL("test:session:s1:history"))
}

func TestRedisStore_SessionsAreIsolated(t *testing.T) {
	store, _ := newMiniStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendTurns(ctx, "a", models.NewTurn(models.SpeakerUser, "hola")))
	turns, err := store.Turns(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestRedisStore_ClearAndDelete(t *testing.T) {
	store, mr := newMiniStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "s1", acmeResult()))
	require.NoError(t, store.AppendTurns(ctx, "s1", models.NewTurn(models.SpeakerUser, "hola")))

	require.NoError(t, store.ClearTurns(ctx, "s1"))
	assert.False(t, mr.Exists("test:session:s1:history"))
	assert.True(t, mr.Exists("test:session:s1:snapshot"), "clearing history keeps the snapshot")

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("test:session:s1:snapshot"))
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newMiniStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "s1", acmeResult()))
	mr.FastForward(11 * time.Minute)

	got, err := store.LoadSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, testSessionConfig())
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectGet("test:session:s1:snapshot").SetErr(boom)
	_, err := store.LoadSnapshot(ctx, "s1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))

	mock.ExpectLRange("test:session:s1:history", 0, -1).SetErr(boom)
	_, err = store.Turns(ctx, "s1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))

	mock.ExpectLRange("test:session:s1:history", 0, -1).SetVal([]string{"{broken"})
	_, err = store.Turns(ctx, "s1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))

	mock.ExpectDel("test:session:s1:history").SetErr(boom)
	assert.Error(t, store.ClearTurns(ctx, "s1"))

	mock.ExpectGet("test:session:s2:snapshot").RedisNil()
	got, err := store.LoadSnapshot(ctx, "s2")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_WriteFailure(t *testing.T) {
	store, mr := newMiniStore(t)
	mr.SetError("READONLY You can't write against a read only replica")

	err := store.SaveSnapshot(context.Background(), "s1", acmeResult())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))

	err = store.AppendTurns(context.Background(), "s1", models.NewTurn(models.SpeakerUser, "hola"))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))
}
