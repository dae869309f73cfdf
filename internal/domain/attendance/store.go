package attendance

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

const recordColumns = "id, employee_id, date, check_in_time, check_out_time, status"

func (s *Store) FindForDay(ctx context.Context, employeeID string, day time.Time) (Record, bool, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM attendance
    WHERE employee_id = $1 AND date = $2
  `, employeeID, day).Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.Status)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *Store) InsertCheckIn(ctx context.Context, employeeID string, day, checkIn time.Time, status string) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, date, check_in_time, status)
    VALUES ($1, $2, $3, $4)
    RETURNING `+recordColumns+`
  `, employeeID, day, checkIn, status).Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.Status)
	if err != nil {
		if platformdb.IsUniqueViolation(err) {
			return Record{}, ErrAlreadyCheckedIn
		}
		return Record{}, err
	}
	return rec, nil
}

// SetCheckIn fills check_in_time on a pre-existing row (for example a LEAVE
// placeholder) only while it is still unset.
func (s *Store) SetCheckIn(ctx context.Context, recordID string, checkIn time.Time, status string) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    UPDATE attendance
    SET check_in_time = $1, status = $2
    WHERE id = $3 AND check_in_time IS NULL
    RETURNING `+recordColumns+`
  `, checkIn, status, recordID).Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.Status)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Record{}, ErrAlreadyCheckedIn
		}
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) SetCheckOut(ctx context.Context, recordID string, checkOut time.Time) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    UPDATE attendance
    SET check_out_time = $1
    WHERE id = $2 AND check_in_time IS NOT NULL AND check_out_time IS NULL
    RETURNING `+recordColumns+`
  `, checkOut, recordID).Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.Status)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Record{}, ErrAlreadyCheckedOut
		}
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := `
    SELECT ` + recordColumns + `
    FROM attendance
    WHERE 1=1
  `
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime, &rec.Status); err != nil {
			return nil, err
		}
		if rec.CheckInTime != nil && rec.CheckOutTime != nil {
			rec.TotalHours = TotalHours(*rec.CheckInTime, *rec.CheckOutTime)
		}
		records = append(records, rec)
	}
	return records, nil
}
