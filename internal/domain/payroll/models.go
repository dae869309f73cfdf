package payroll

import "time"

const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
)

const (
	KindAllowance = "ALLOWANCE"
	KindDeduction = "DEDUCTION"
)

type Record struct {
	ID         string            `json:"id"`
	EmployeeID string            `json:"employeeId"`
	Month      int               `json:"month"`
	Year       int               `json:"year"`
	BaseSalary float64           `json:"baseSalary"`
	Allowances float64           `json:"allowances"`
	Deductions float64           `json:"deductions"`
	NetSalary  float64           `json:"netSalary"`
	Status     string            `json:"status"`
	Components []SalaryComponent `json:"components,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type SalaryComponent struct {
	ID        string  `json:"id"`
	PayrollID string  `json:"payrollId,omitempty"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Kind      string  `json:"kind"`
}

type ProcessInput struct {
	EmployeeID string
	Month      int
	Year       int
	BaseSalary float64
	Allowances float64
	Deductions float64
	Components []SalaryComponent
}

type ListFilter struct {
	EmployeeID string
	Month      int
	Year       int
}

// PayslipData joins a payroll record with the employee identity for
// rendering.
type PayslipData struct {
	Record    Record
	FirstName string
	LastName  string
	Email     string
}
