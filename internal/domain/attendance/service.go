package attendance

import (
	"context"
	"time"
)

// Service drives the per-day attendance state machine:
// no record -> checked in -> checked out (terminal for the day).
type Service struct {
	Store     *Store
	LateAfter string
}

func NewService(store *Store, lateAfter string) *Service {
	return &Service{Store: store, LateAfter: lateAfter}
}

func (s *Service) CheckIn(ctx context.Context, employeeID string, now time.Time) (Record, error) {
	day := DayOf(now)
	status := CheckInStatus(now, s.LateAfter)

	existing, found, err := s.Store.FindForDay(ctx, employeeID, day)
	if err != nil {
		return Record{}, err
	}
	if found {
		if existing.CheckInTime != nil {
			return Record{}, ErrAlreadyCheckedIn
		}
		return s.Store.SetCheckIn(ctx, existing.ID, now, status)
	}
	return s.Store.InsertCheckIn(ctx, employeeID, day, now, status)
}

func (s *Service) CheckOut(ctx context.Context, employeeID string, now time.Time) (Record, error) {
	existing, found, err := s.Store.FindForDay(ctx, employeeID, DayOf(now))
	if err != nil {
		return Record{}, err
	}
	if !found || existing.CheckInTime == nil {
		return Record{}, ErrNoCheckIn
	}
	if existing.CheckOutTime != nil {
		return Record{}, ErrAlreadyCheckedOut
	}

	rec, err := s.Store.SetCheckOut(ctx, existing.ID, now)
	if err != nil {
		return Record{}, err
	}
	if rec.CheckInTime != nil && rec.CheckOutTime != nil {
		rec.TotalHours = TotalHours(*rec.CheckInTime, *rec.CheckOutTime)
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	return s.Store.List(ctx, filter)
}
