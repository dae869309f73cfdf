package leave

import "time"

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

type Type struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Application struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employeeId"`
	LeaveTypeID     string     `json:"leaveTypeId"`
	FromDate        time.Time  `json:"fromDate"`
	ToDate          time.Time  `json:"toDate"`
	DaysRequested   int        `json:"daysRequested"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	DecidedAt       *time.Time `json:"decidedAt,omitempty"`
}

type Balance struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	LeaveTypeID   string  `json:"leaveTypeId"`
	Year          int     `json:"year"`
	EntitledDays  float64 `json:"entitledDays"`
	RemainingDays float64 `json:"remainingDays"`
}

type ListFilter struct {
	EmployeeID string
	Status     string
}
