package payroll

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dayflow/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const recordColumns = `id, employee_id, month, year, base_salary, allowances, deductions, net_salary, status, created_at`

// Process inserts the payroll record and all of its components in a single
// transaction. The unique constraint on (employee_id, month, year) rejects a
// second run for the same period.
func (s *Store) Process(ctx context.Context, input ProcessInput, netSalary float64) (Record, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Record{}, fmt.Errorf("begin payroll transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var record Record
	err = tx.QueryRow(ctx, `
		INSERT INTO payroll (employee_id, month, year, base_salary, allowances, deductions, net_salary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+recordColumns,
		input.EmployeeID, input.Month, input.Year,
		input.BaseSalary, input.Allowances, input.Deductions, netSalary, StatusDraft,
	).Scan(
		&record.ID, &record.EmployeeID, &record.Month, &record.Year,
		&record.BaseSalary, &record.Allowances, &record.Deductions,
		&record.NetSalary, &record.Status, &record.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Record{}, ErrAlreadyProcessed
		}
		return Record{}, fmt.Errorf("insert payroll record: %w", err)
	}

	for _, comp := range input.Components {
		var stored SalaryComponent
		err = tx.QueryRow(ctx, `
			INSERT INTO salary_components (payroll_id, name, amount, kind)
			VALUES ($1, $2, $3, $4)
			RETURNING id, payroll_id, name, amount, kind`,
			record.ID, comp.Name, comp.Amount, comp.Kind,
		).Scan(&stored.ID, &stored.PayrollID, &stored.Name, &stored.Amount, &stored.Kind)
		if err != nil {
			return Record{}, fmt.Errorf("insert salary component: %w", err)
		}
		record.Components = append(record.Components, stored)
	}

	if err := tx.Commit(ctx); err != nil {
		return Record{}, fmt.Errorf("commit payroll transaction: %w", err)
	}
	return record, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Record, error) {
	var record Record
	err := s.DB.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM payroll WHERE id = $1`, id,
	).Scan(
		&record.ID, &record.EmployeeID, &record.Month, &record.Year,
		&record.BaseSalary, &record.Allowances, &record.Deductions,
		&record.NetSalary, &record.Status, &record.CreatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get payroll record: %w", err)
	}

	components, err := s.components(ctx, record.ID)
	if err != nil {
		return Record{}, err
	}
	record.Components = components
	return record, nil
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	conditions := []string{}
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		conditions = append(conditions, fmt.Sprintf("month = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}

	query := `SELECT ` + recordColumns + ` FROM payroll`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY year DESC, month DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var record Record
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.Month, &record.Year,
			&record.BaseSalary, &record.Allowances, &record.Deductions,
			&record.NetSalary, &record.Status, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Payslip loads a record together with the employee identity needed for the
// rendered document.
func (s *Store) Payslip(ctx context.Context, id string) (PayslipData, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return PayslipData{}, err
	}

	data := PayslipData{Record: record}
	err = s.DB.QueryRow(ctx, `
		SELECT e.first_name, e.last_name, a.email
		FROM employees e
		JOIN accounts a ON a.id = e.account_id
		WHERE e.id = $1`, record.EmployeeID,
	).Scan(&data.FirstName, &data.LastName, &data.Email)
	if err != nil {
		return PayslipData{}, fmt.Errorf("load payslip employee: %w", err)
	}
	return data, nil
}

func (s *Store) components(ctx context.Context, payrollID string) ([]SalaryComponent, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, payroll_id, name, amount, kind
		FROM salary_components
		WHERE payroll_id = $1
		ORDER BY kind, name`, payrollID)
	if err != nil {
		return nil, fmt.Errorf("list salary components: %w", err)
	}
	defer rows.Close()

	components := []SalaryComponent{}
	for rows.Next() {
		var comp SalaryComponent
		if err := rows.Scan(&comp.ID, &comp.PayrollID, &comp.Name, &comp.Amount, &comp.Kind); err != nil {
			return nil, fmt.Errorf("scan salary component: %w", err)
		}
		components = append(components, comp)
	}
	return components, rows.Err()
}
