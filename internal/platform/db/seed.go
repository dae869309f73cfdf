package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dayflow/internal/domain/auth"
	"dayflow/internal/platform/config"
)

var defaultLeaveTypes = map[string]string{
	"Annual Leave": "ANNUAL",
	"Sick Leave":   "SICK",
	"Casual Leave": "CASUAL",
	"Unpaid Leave": "UNPAID",
}

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureLeaveTypes(ctx, pool); err != nil {
		return err
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	return ensureAdminAccount(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureLeaveTypes(ctx context.Context, pool *pgxpool.Pool) error {
	for name, code := range defaultLeaveTypes {
		if _, err := pool.Exec(ctx, `
      INSERT INTO leave_types (name, code)
      VALUES ($1, $2)
      ON CONFLICT (code) DO NOTHING
    `, name, code); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminAccount(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := adminAccountExists(ctx, pool, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	var id string
	if err := pool.QueryRow(ctx, `
    INSERT INTO accounts (email, password_hash, role, verified)
    VALUES ($1, $2, $3, true)
    RETURNING id
  `, email, hash, auth.RoleAdmin).Scan(&id); err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (account_id, first_name, last_name, email, department, position, salary, hire_date, active)
    VALUES ($1, 'System', 'Administrator', $2, 'Administration', 'Administrator', 0, $3, true)
  `, id, email, time.Now())
	return err
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// adminAccountExists distinguishes a missing row from a failed lookup so a
// transient query error never falls through to a duplicate insert.
func adminAccountExists(ctx context.Context, q rowQuerier, email string) (bool, error) {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM accounts WHERE lower(email) = $1", email).Scan(&id)
	if err == nil {
		return true, nil
	}
	if IsNoRows(err) {
		return false, nil
	}
	return false, err
}
