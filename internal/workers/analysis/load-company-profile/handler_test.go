// internal/workers/analysis/load-company-profile/handler_test.go
package loadcompanyprofile

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzbot/internal/common/config"
	"finanzbot/internal/common/database"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

type MockCompanyRepository struct {
	FindByIDFunc func(ctx context.Context, id string) (*models.ProfileInput, error)
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id string) (*models.ProfileInput, error) {
	return m.FindByIDFunc(ctx, id)
}

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

// ==========================
// Tests
// ==========================

func TestExecute_LoadsProfileFromPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "sector", "annual_earnings", "employees", "receivables", "total_assets", "total_liabilities"}).
		AddRow("Acme", "Tecnología", 20_000_000.0, 10, 5_000_000.0, 100_000_000.0, 70_000_000.0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE id = $1")).WithArgs("c-1").WillReturnRows(rows)

	repo := database.NewCompanies(database.NewPostgresFromDB(db))
	h := NewHandler(createTestConfig(), repo, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{CompanyID: " c-1 "})
	require.NoError(t, err)
	assert.Equal(t, "c-1", out.CompanyID)
	assert.Equal(t, "Acme", out.Profile.Name)
	assert.Equal(t, models.SectorTechnology, out.Profile.Profile().Sector)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		repoErr  error
		wantCode apperrors.ErrorCode
	}{
		{"missing id", "  ", nil, apperrors.ErrCodeInvalidRequest},
		{"not found", "c-404", database.ErrCompanyNotFound, apperrors.ErrCodeCompanyNotFound},
		{"timeout", "c-1", context.DeadlineExceeded, apperrors.ErrCodeTimeout},
		{"database down", "c-1", errors.New("connection refused"), apperrors.ErrCodeDatabaseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCompanyRepository{
				FindByIDFunc: func(context.Context, string) (*models.ProfileInput, error) {
					return nil, tt.repoErr
				},
			}
			h := NewHandler(createTestConfig(), repo, logger.NewNoOpLogger())

			out, err := h.Execute(context.Background(), &Input{CompanyID: tt.id})
			assert.Nil(t, out)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestExecute_NotFoundIsNotRetried(t *testing.T) {
	repo := &MockCompanyRepository{
		FindByIDFunc: func(context.Context, string) (*models.ProfileInput, error) {
			return nil, database.ErrCompanyNotFound
		},
	}
	h := NewHandler(createTestConfig(), repo, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), &Input{CompanyID: "c-404"})
	stdErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "COMPANY_NOT_FOUND", apperrors.ConvertToBPMNError(stdErr).Code)
	assert.False(t, stdErr.Retryable)
}

func TestLoadConfig(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{TaskType: {Enabled: true, Timeout: 2500}}}
	assert.Equal(t, 2500*time.Millisecond, LoadConfig(cfg).Timeout)
}
