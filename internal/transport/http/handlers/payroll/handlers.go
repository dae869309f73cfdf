package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/domain/payroll"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service   *payroll.Service
	Employees *employee.Service
	Audit     *audit.Service
}

func NewHandler(service *payroll.Service, employees *employee.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Employees: employees, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.With(middleware.RequireAdmin).Post("/process", h.handleProcess)
		r.Get("/{payrollID}/payslip", h.handlePayslip)
	})
}

type componentRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Kind   string  `json:"kind"`
}

type processRequest struct {
	EmployeeID string             `json:"employeeId"`
	Month      int                `json:"month"`
	Year       int                `json:"year"`
	BaseSalary float64            `json:"baseSalary"`
	Allowances float64            `json:"allowances"`
	Deductions float64            `json:"deductions"`
	Components []componentRequest `json:"components"`
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload processRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "is required")
	v.Range("month", payload.Month, 1, 12, "must be between 1 and 12")
	v.Range("year", payload.Year, 2000, 2100, "must be a plausible year")
	if payload.BaseSalary < 0 {
		v.Add("baseSalary", "must not be negative")
	}
	for i, comp := range payload.Components {
		if comp.Name == "" {
			v.Add(fmt.Sprintf("components[%d].name", i), "is required")
		}
		if comp.Kind != payroll.KindAllowance && comp.Kind != payroll.KindDeduction {
			v.Add(fmt.Sprintf("components[%d].kind", i), "must be ALLOWANCE or DEDUCTION")
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	if _, err := h.Employees.GetByID(r.Context(), payload.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee", requestID)
		return
	}

	input := payroll.ProcessInput{
		EmployeeID: payload.EmployeeID,
		Month:      payload.Month,
		Year:       payload.Year,
		BaseSalary: payload.BaseSalary,
		Allowances: payload.Allowances,
		Deductions: payload.Deductions,
	}
	for _, comp := range payload.Components {
		input.Components = append(input.Components, payroll.SalaryComponent{
			Name:   comp.Name,
			Amount: comp.Amount,
			Kind:   comp.Kind,
		})
	}

	record, err := h.Service.Process(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrAlreadyProcessed):
			api.Fail(w, http.StatusConflict, "already_processed", "payroll for this period has already been processed", requestID)
		case errors.Is(err, payroll.ErrInvalidComponent):
			api.Fail(w, http.StatusBadRequest, "invalid_component", "salary component kind must be ALLOWANCE or DEDUCTION", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "payroll_process_failed", "failed to process payroll", requestID)
		}
		return
	}

	if err := h.Audit.Record(r.Context(), user.AccountID, "payroll.process", "payroll", record.ID, requestID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit payroll.process failed", "err", err)
	}
	api.Created(w, record, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	query := r.URL.Query()

	filter := payroll.ListFilter{}
	if raw := query.Get("month"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Month = parsed
		}
	}
	if raw := query.Get("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Year = parsed
		}
	}

	if auth.Elevated(user.Role) {
		filter.EmployeeID = query.Get("employeeId")
	} else {
		profile, ok := h.callerProfile(w, r)
		if !ok {
			return
		}
		filter.EmployeeID = profile.ID
	}

	records, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_list_failed", "failed to list payroll records", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	payrollID := chi.URLParam(r, "payrollID")

	record, err := h.Service.GetByID(r.Context(), payrollID)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "payroll_not_found", "payroll record not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_lookup_failed", "failed to load payroll record", requestID)
		return
	}

	if !auth.Elevated(user.Role) {
		profile, ok := h.callerProfile(w, r)
		if !ok {
			return
		}
		if record.EmployeeID != profile.ID {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's payslip", requestID)
			return
		}
	}

	pdf, err := h.Service.PayslipPDF(r.Context(), payrollID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%02d-%d.pdf", record.Month, record.Year))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("payslip write failed", "payrollId", payrollID, "err", err)
	}
}

func (h *Handler) callerProfile(w http.ResponseWriter, r *http.Request) (employee.Profile, bool) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	profile, err := h.Employees.GetByAccount(r.Context(), user.AccountID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee profile for this account", requestID)
			return employee.Profile{}, false
		}
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee profile", requestID)
		return employee.Profile{}, false
	}
	return profile, true
}
