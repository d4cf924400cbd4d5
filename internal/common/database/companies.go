package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finanzbot/internal/models"
)

// ErrCompanyNotFound is returned when no row matches the requested id.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepository reads registered company profiles.
type CompanyRepository interface {
	FindByID(ctx context.Context, id string) (*models.ProfileInput, error)
}

const selectCompanyByID = `SELECT name, sector, annual_earnings, employees, receivables, total_assets, total_liabilities
FROM companies WHERE id = $1`

const createCompaniesTable = `CREATE TABLE IF NOT EXISTS companies (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	sector            TEXT NOT NULL,
	annual_earnings   NUMERIC NOT NULL CHECK (annual_earnings >= 0),
	employees         INTEGER NOT NULL CHECK (employees >= 1),
	receivables       NUMERIC NOT NULL CHECK (receivables >= 0),
	total_assets      NUMERIC NOT NULL CHECK (total_assets >= 0),
	total_liabilities NUMERIC NOT NULL CHECK (total_liabilities >= 0)
)`

// Companies is the Postgres-backed CompanyRepository.
type Companies struct {
	db *sql.DB
}

func NewCompanies(client *PostgresClient) *Companies {
	return &Companies{db: client.DB}
}

// EnsureSchema creates the companies table when it does not exist.
func (c *Companies) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, createCompaniesTable); err != nil {
		return fmt.Errorf("create companies table: %w", err)
	}
	return nil
}

// FindByID loads one company. The sector is returned as stored; callers
// resolve it with ProfileInput.Profile.
func (c *Companies) FindByID(ctx context.Context, id string) (*models.ProfileInput, error) {
	var p models.ProfileInput
	err := c.db.QueryRowContext(ctx, selectCompanyByID, id).Scan(
		&p.Name,
		&p.Sector,
		&p.AnnualEarnings,
		&p.Employees,
		&p.Receivables,
		&p.TotalAssets,
		&p.TotalLiabilities,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query company %s: %w", id, err)
	}
	return &p, nil
}
