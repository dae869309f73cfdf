package payroll

import "errors"

var (
	ErrAlreadyProcessed = errors.New("payroll for this period has already been processed")
	ErrInvalidComponent = errors.New("salary component kind must be ALLOWANCE or DEDUCTION")
	ErrNotFound         = errors.New("payroll record not found")
)
