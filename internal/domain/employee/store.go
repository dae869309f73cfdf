package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	platformdb "dayflow/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const profileColumns = "id, account_id, first_name, last_name, email, phone, department, position, salary, hire_date, active, created_at, updated_at"

func (s *Store) Create(ctx context.Context, in CreateInput) (Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (account_id, first_name, last_name, email, phone, department, position, salary, hire_date, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,true)
    RETURNING `+profileColumns+`
  `, in.AccountID, in.FirstName, in.LastName, in.Email, in.Phone, in.Department, in.Position, in.Salary, in.HireDate).Scan(scanTargets(&p)...)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Store) GetByAccount(ctx context.Context, accountID string) (Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    SELECT `+profileColumns+`
    FROM employees
    WHERE account_id = $1
  `, accountID).Scan(scanTargets(&p)...)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Profile, error) {
	var p Profile
	err := s.DB.QueryRow(ctx, `
    SELECT `+profileColumns+`
    FROM employees
    WHERE id = $1
  `, id).Scan(scanTargets(&p)...)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (s *Store) List(ctx context.Context, activeOnly bool, limit, offset int) (ListResult, error) {
	where := ""
	if activeOnly {
		where = " WHERE active = true"
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees"+where).Scan(&total); err != nil {
		return ListResult{}, err
	}

	rows, err := s.DB.Query(ctx, fmt.Sprintf(`
    SELECT %s
    FROM employees%s
    ORDER BY last_name, first_name
    LIMIT $1 OFFSET $2
  `, profileColumns, where), limit, offset)
	if err != nil {
		return ListResult{}, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(scanTargets(&p)...); err != nil {
			return ListResult{}, err
		}
		profiles = append(profiles, p)
	}
	return ListResult{Profiles: profiles, Total: total}, nil
}

func (s *Store) Update(ctx context.Context, id string, in UpdateInput) (Profile, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if in.FirstName != nil {
		addSet("first_name", *in.FirstName)
	}
	if in.LastName != nil {
		addSet("last_name", *in.LastName)
	}
	if in.Phone != nil {
		addSet("phone", *in.Phone)
	}
	if in.Department != nil {
		addSet("department", *in.Department)
	}
	if in.Position != nil {
		addSet("position", *in.Position)
	}
	if in.Salary != nil {
		addSet("salary", *in.Salary)
	}
	if in.Active != nil {
		addSet("active", *in.Active)
	}

	var p Profile
	err := s.DB.QueryRow(ctx, fmt.Sprintf(`
    UPDATE employees
    SET %s
    WHERE id = $1
    RETURNING %s
  `, strings.Join(sets, ", "), profileColumns), args...).Scan(scanTargets(&p)...)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func scanTargets(p *Profile) []any {
	return []any{
		&p.ID, &p.AccountID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.Department, &p.Position, &p.Salary, &p.HireDate, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	}
}
