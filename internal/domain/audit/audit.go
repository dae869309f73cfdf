package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Event struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actorId"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	RequestID string    `json:"requestId"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Service {
	return &Service{DB: pool}
}

func (s *Service) Record(ctx context.Context, actorID, action, entity, entityID, requestID, ip string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_log (actor_id, action, entity, entity_id, request_id, ip)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, nullable(actorID), action, entity, entityID, requestID, ip)
	return err
}

// List returns recent events, newest first. An empty action matches all.
func (s *Service) List(ctx context.Context, action string, limit, offset int) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(actor_id::text, ''), action, entity, entity_id, request_id, ip, created_at
    FROM audit_log
    WHERE ($1 = '' OR action = $1)
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, action, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.Entity, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
