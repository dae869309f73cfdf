package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dayflow/internal/domain/notifications"
)

// Service drives the leave application workflow:
// PENDING -> APPROVED | REJECTED, both terminal. Re-applying creates a new
// application; a decided one is never reopened.
type Service struct {
	Store  *Store
	Notify *notifications.Service
}

func NewService(store *Store, notify *notifications.Service) *Service {
	return &Service{Store: store, Notify: notify}
}

// Apply validates the range, checks (but does not decrement) the balance for
// the current year, and creates the application in PENDING state. A missing
// balance row means the type is not budgeted and the request passes.
func (s *Service) Apply(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time, reason string) (Application, error) {
	days, err := CalculateDays(from, to)
	if err != nil {
		return Application{}, err
	}

	exists, err := s.Store.TypeExists(ctx, leaveTypeID)
	if err != nil {
		return Application{}, err
	}
	if !exists {
		return Application{}, ErrUnknownType
	}

	balance, found, err := s.Store.Balance(ctx, employeeID, leaveTypeID, time.Now().Year())
	if err != nil {
		return Application{}, err
	}
	if found && float64(days) > balance.RemainingDays {
		return Application{}, ErrInsufficientBalance
	}

	return s.Store.CreateApplication(ctx, employeeID, leaveTypeID, from, to, days, reason)
}

// Decide settles a pending application. Approval also decrements the
// employee's remaining balance for the year the leave starts in; rejection
// leaves the balance untouched.
func (s *Service) Decide(ctx context.Context, leaveID, decision, actorID, comment string) (Application, error) {
	if _, err := s.Store.GetApplication(ctx, leaveID); err != nil {
		return Application{}, err
	}

	var app Application
	var err error
	switch decision {
	case DecisionApprove:
		app, err = s.Store.Approve(ctx, leaveID, actorID)
		if err != nil {
			return Application{}, err
		}
		if err := s.Store.DecrementBalance(ctx, app.EmployeeID, app.LeaveTypeID, app.FromDate.Year(), app.DaysRequested); err != nil {
			slog.Warn("leave balance decrement failed", "leaveId", app.ID, "err", err)
		}
	case DecisionReject:
		app, err = s.Store.Reject(ctx, leaveID, comment)
		if err != nil {
			return Application{}, err
		}
	default:
		return Application{}, fmt.Errorf("unknown decision %q", decision)
	}

	s.notifyDecision(ctx, app)
	return app, nil
}

func (s *Service) notifyDecision(ctx context.Context, app Application) {
	if s.Notify == nil {
		return
	}
	accountID, err := s.Store.EmployeeAccountID(ctx, app.EmployeeID)
	if err != nil {
		slog.Warn("leave decision notify lookup failed", "leaveId", app.ID, "err", err)
		return
	}

	kind := notifications.KindLeaveApproved
	message := fmt.Sprintf("Your leave from %s to %s was approved.",
		app.FromDate.Format("2006-01-02"), app.ToDate.Format("2006-01-02"))
	if app.Status == StatusRejected {
		kind = notifications.KindLeaveRejected
		message = fmt.Sprintf("Your leave from %s to %s was rejected.",
			app.FromDate.Format("2006-01-02"), app.ToDate.Format("2006-01-02"))
	}
	if err := s.Notify.Notify(ctx, accountID, kind, message); err != nil {
		slog.Warn("leave decision notification failed", "leaveId", app.ID, "err", err)
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Application, error) {
	return s.Store.List(ctx, filter)
}

func (s *Service) ListTypes(ctx context.Context) ([]Type, error) {
	return s.Store.ListTypes(ctx)
}
