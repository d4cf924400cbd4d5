// internal/workers/analysis/analyze-company/handler_test.go
package analyzecompany

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzbot/internal/common/config"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/intent"
	"finanzbot/internal/models"
	"finanzbot/internal/responder"
	"finanzbot/internal/session"
)

type MockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, sessionID string, profile models.CompanyProfile) (models.AnalysisResult, error)
}

func (m *MockAnalyzer) Analyze(ctx context.Context, sessionID string, profile models.CompanyProfile) (models.AnalysisResult, error) {
	return m.AnalyzeFunc(ctx, sessionID, profile)
}

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func acmeInput() models.ProfileInput {
	return models.ProfileInput{
		Name:             "Acme",
		Sector:           "tecnologia",
		AnnualEarnings:   20_000_000,
		Employees:        10,
		Receivables:      5_000_000,
		TotalAssets:      100_000_000,
		TotalLiabilities: 70_000_000,
	}
}

func TestExecute_WithoutSession(t *testing.T) {
	analyzer := &MockAnalyzer{AnalyzeFunc: func(context.Context, string, models.CompanyProfile) (models.AnalysisResult, error) {
		t.Fatal("analysis without a session must not be stored")
		return models.AnalysisResult{}, nil
	}}
	h := NewHandler(createTestConfig(), analyzer, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Profile: acmeInput()})
	require.NoError(t, err)

	assert.False(t, out.Stored)
	assert.Equal(t, models.StatusRegular, out.Status)
	assert.Equal(t, "Regular", out.StatusLabel)
	assert.False(t, out.Critical)
	assert.Equal(t, models.SectorTechnology, out.Analysis.Sector)
	assert.Len(t, out.Analysis.Recommendations, 3)
	assert.Contains(t, out.Report, "Análisis económico para Acme")
}

func TestExecute_StoresSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := session.NewRedisStore(client, config.SessionConfig{TTL: 60, MaxHistory: 10, KeyPrefix: "wf:session"})
	svc := session.NewService(store, intent.New(intent.DefaultOptions()), responder.New(nil), logger.NewNoOpLogger(), nil)
	h := NewHandler(createTestConfig(), svc, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Profile: acmeInput()})
	require.NoError(t, err)
	assert.True(t, out.Stored)

	snap, err := store.LoadSnapshot(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, out.Analysis, *snap)
}

func TestExecute_CriticalCompany(t *testing.T) {
	h := NewHandler(createTestConfig(), &MockAnalyzer{}, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{Profile: models.ProfileInput{
		Name: "Cero", Sector: "otro", Employees: 1,
	}})
	require.NoError(t, err)
	assert.True(t, out.Critical)
	assert.Equal(t, "Crítico", out.StatusLabel)

	vars, err := json.Marshal(out)
	require.NoError(t, err, "infinite ratios must encode as job variables")
	assert.Contains(t, string(vars), `"debtRatio":"Infinity"`)
}

func TestExecute_InvalidProfile(t *testing.T) {
	h := NewHandler(createTestConfig(), &MockAnalyzer{}, logger.NewNoOpLogger())

	in := acmeInput()
	in.Employees = 0
	_, err := h.Execute(context.Background(), &Input{Profile: in})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProfileValidationFailed))
}

func TestExecute_StoreFailure(t *testing.T) {
	analyzer := &MockAnalyzer{AnalyzeFunc: func(context.Context, string, models.CompanyProfile) (models.AnalysisResult, error) {
		return models.AnalysisResult{}, apperrors.NewSessionStoreError("save_snapshot", assert.AnError)
	}}
	h := NewHandler(createTestConfig(), analyzer, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Profile: acmeInput()})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))
}
