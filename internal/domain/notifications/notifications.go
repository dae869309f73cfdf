package notifications

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	KindLeaveApproved    = "leave.approved"
	KindLeaveRejected    = "leave.rejected"
	KindPayrollProcessed = "payroll.processed"
)

type Notification struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Service {
	return &Service{DB: pool}
}

func (s *Service) Notify(ctx context.Context, accountID, kind, message string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (account_id, kind, message)
    VALUES ($1, $2, $3)
  `, accountID, kind, message)
	return err
}

func (s *Service) List(ctx context.Context, accountID string, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, account_id, kind, message, read, created_at
    FROM notifications
    WHERE account_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, accountID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read = true WHERE id = $1 AND account_id = $2
  `, notificationID, accountID)
	return err
}
