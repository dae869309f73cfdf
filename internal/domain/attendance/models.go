package attendance

import "time"

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
	StatusLeave   = "LEAVE"
)

type Record struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	Date         time.Time  `json:"date"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Status       string     `json:"status"`
	TotalHours   float64    `json:"totalHours,omitempty"`
}

type ListFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}
