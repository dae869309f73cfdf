package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	platformdb "dayflow/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const applicationColumns = "id, employee_id, leave_type_id, from_date, to_date, days_requested, reason, status, approved_by, rejection_reason, created_at, decided_at"

func (s *Store) ListTypes(ctx context.Context) ([]Type, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, code FROM leave_types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []Type
	for rows.Next() {
		var t Type
		if err := rows.Scan(&t.ID, &t.Name, &t.Code); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (s *Store) TypeExists(ctx context.Context, leaveTypeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_types WHERE id = $1", leaveTypeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Balance returns the employee's balance row for the type and year; found is
// false when no row exists, which the workflow treats as an unlimited
// (informational-only) balance.
func (s *Store) Balance(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, bool, error) {
	var b Balance
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, leave_type_id, year, entitled_days, remaining_days
    FROM leave_balances
    WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
  `, employeeID, leaveTypeID, year).Scan(&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.EntitledDays, &b.RemainingDays)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Balance{}, false, nil
		}
		return Balance{}, false, err
	}
	return b, true, nil
}

func (s *Store) CreateApplication(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time, days int, reason string) (Application, error) {
	var app Application
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_applications (employee_id, leave_type_id, from_date, to_date, days_requested, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING `+applicationColumns+`
  `, employeeID, leaveTypeID, from, to, days, reason, StatusPending).Scan(scanApplication(&app)...)
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (Application, error) {
	var app Application
	err := s.DB.QueryRow(ctx, `
    SELECT `+applicationColumns+`
    FROM leave_applications
    WHERE id = $1
  `, id).Scan(scanApplication(&app)...)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// Approve flips a PENDING application to APPROVED. The status guard in the
// WHERE clause makes concurrent deciders lose with ErrAlreadyDecided instead
// of overwriting a terminal state.
func (s *Store) Approve(ctx context.Context, id, actorID string) (Application, error) {
	var app Application
	err := s.DB.QueryRow(ctx, `
    UPDATE leave_applications
    SET status = $1, approved_by = $2, decided_at = now()
    WHERE id = $3 AND status = $4
    RETURNING `+applicationColumns+`
  `, StatusApproved, actorID, id, StatusPending).Scan(scanApplication(&app)...)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Application{}, ErrAlreadyDecided
		}
		return Application{}, err
	}
	return app, nil
}

func (s *Store) Reject(ctx context.Context, id, reason string) (Application, error) {
	var app Application
	err := s.DB.QueryRow(ctx, `
    UPDATE leave_applications
    SET status = $1, rejection_reason = $2, decided_at = now()
    WHERE id = $3 AND status = $4
    RETURNING `+applicationColumns+`
  `, StatusRejected, reason, id, StatusPending).Scan(scanApplication(&app)...)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Application{}, ErrAlreadyDecided
		}
		return Application{}, err
	}
	return app, nil
}

func (s *Store) DecrementBalance(ctx context.Context, employeeID, leaveTypeID string, year int, days int) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE leave_balances
    SET remaining_days = remaining_days - $1
    WHERE employee_id = $2 AND leave_type_id = $3 AND year = $4
  `, days, employeeID, leaveTypeID, year)
	return err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Application, error) {
	query := `
    SELECT ` + applicationColumns + `
    FROM leave_applications
    WHERE 1=1
  `
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(scanApplication(&app)...); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (s *Store) EmployeeAccountID(ctx context.Context, employeeID string) (string, error) {
	var accountID string
	err := s.DB.QueryRow(ctx, "SELECT account_id FROM employees WHERE id = $1", employeeID).Scan(&accountID)
	return accountID, err
}

func scanApplication(app *Application) []any {
	return []any{
		&app.ID, &app.EmployeeID, &app.LeaveTypeID, &app.FromDate, &app.ToDate,
		&app.DaysRequested, &app.Reason, &app.Status, &app.ApprovedBy,
		&app.RejectionReason, &app.CreatedAt, &app.DecidedAt,
	}
}
