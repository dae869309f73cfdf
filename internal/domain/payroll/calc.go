package payroll

// ComputeNet derives net pay; net is never stored without being recomputed
// from its inputs.
func ComputeNet(baseSalary, allowances, deductions float64) float64 {
	return baseSalary + allowances - deductions
}

// SumComponents totals line items by kind.
func SumComponents(components []SalaryComponent) (allowances, deductions float64) {
	for _, comp := range components {
		switch comp.Kind {
		case KindAllowance:
			allowances += comp.Amount
		case KindDeduction:
			deductions += comp.Amount
		}
	}
	return allowances, deductions
}
