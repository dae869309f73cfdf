package payroll

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	"dayflow/internal/domain/notifications"
)

type Service struct {
	Store  *Store
	Notify *notifications.Service
}

func NewService(store *Store, notify *notifications.Service) *Service {
	return &Service{Store: store, Notify: notify}
}

// Process validates components, totals them into the allowance and deduction
// figures, recomputes net pay and persists everything atomically. Explicit
// allowance/deduction amounts in the input are used as-is when no components
// are supplied.
func (s *Service) Process(ctx context.Context, input ProcessInput) (Record, error) {
	for _, comp := range input.Components {
		if comp.Kind != KindAllowance && comp.Kind != KindDeduction {
			return Record{}, ErrInvalidComponent
		}
	}

	if len(input.Components) > 0 {
		input.Allowances, input.Deductions = SumComponents(input.Components)
	}
	net := ComputeNet(input.BaseSalary, input.Allowances, input.Deductions)

	record, err := s.Store.Process(ctx, input, net)
	if err != nil {
		return Record{}, err
	}

	s.notifyProcessed(ctx, record)
	return record, nil
}

func (s *Service) notifyProcessed(ctx context.Context, record Record) {
	if s.Notify == nil {
		return
	}
	var accountID string
	err := s.Store.DB.QueryRow(ctx,
		`SELECT account_id FROM employees WHERE id = $1`, record.EmployeeID,
	).Scan(&accountID)
	if err != nil {
		slog.Warn("payroll notify lookup failed", "payrollId", record.ID, "err", err)
		return
	}
	message := fmt.Sprintf("Your payroll for %02d/%d has been processed.", record.Month, record.Year)
	if err := s.Notify.Notify(ctx, accountID, notifications.KindPayrollProcessed, message); err != nil {
		slog.Warn("payroll notification failed", "payrollId", record.ID, "err", err)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return s.Store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	return s.Store.List(ctx, filter)
}

// PayslipPDF renders the payslip for a payroll record and returns the PDF
// bytes for download.
func (s *Service) PayslipPDF(ctx context.Context, id string) ([]byte, error) {
	data, err := s.Store.Payslip(ctx, id)
	if err != nil {
		return nil, err
	}
	record := data.Record

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", data.FirstName, data.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", data.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", record.Month, record.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base salary: %.2f", record.BaseSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %.2f", record.Allowances))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", record.Deductions))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %.2f", record.NetSalary))

	if len(record.Components) > 0 {
		pdf.Ln(12)
		pdf.Cell(0, 8, "Components")
		pdf.SetFont("Helvetica", "", 11)
		for _, comp := range record.Components {
			pdf.Ln(7)
			pdf.Cell(0, 7, fmt.Sprintf("%s (%s): %.2f", comp.Name, comp.Kind, comp.Amount))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
