package leavehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/domain/leave"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service   *leave.Service
	Employees *employee.Service
	Audit     *audit.Service
}

func NewHandler(service *leave.Service, employees *employee.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Employees: employees, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleApply)
		r.Get("/types", h.handleListTypes)
		r.With(middleware.RequireAdmin).Post("/{leaveID}/approve", h.handleApprove)
		r.With(middleware.RequireAdmin).Post("/{leaveID}/reject", h.handleReject)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_types_failed", "failed to list leave types", requestID)
		return
	}
	api.Success(w, types, requestID)
}

type applyRequest struct {
	LeaveTypeID string `json:"leaveTypeId"`
	FromDate    string `json:"fromDate"`
	ToDate      string `json:"toDate"`
	Reason      string `json:"reason"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload applyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("leaveTypeId", payload.LeaveTypeID, "is required")
	from, _ := v.Date("fromDate", payload.FromDate)
	to, _ := v.Date("toDate", payload.ToDate)
	v.DateOrder("fromDate", from, "toDate", to)
	if v.Reject(w, requestID) {
		return
	}

	profile, ok := h.callerProfile(w, r)
	if !ok {
		return
	}

	app, err := h.Service.Apply(r.Context(), profile.ID, payload.LeaveTypeID, from, to, payload.Reason)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrInvalidDates):
			api.Fail(w, http.StatusBadRequest, "invalid_dates", "fromDate must be on or before toDate", requestID)
		case errors.Is(err, leave.ErrUnknownType):
			api.Fail(w, http.StatusBadRequest, "unknown_leave_type", "leave type does not exist", requestID)
		case errors.Is(err, leave.ErrInsufficientBalance):
			api.Fail(w, http.StatusBadRequest, "insufficient_balance", "not enough leave balance for this request", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_apply_failed", "failed to create leave application", requestID)
		}
		return
	}
	api.Created(w, app, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filter := leave.ListFilter{Status: r.URL.Query().Get("status")}
	if auth.Elevated(user.Role) {
		filter.EmployeeID = r.URL.Query().Get("employeeId")
	} else {
		profile, ok := h.callerProfile(w, r)
		if !ok {
			return
		}
		filter.EmployeeID = profile.ID
	}

	apps, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave applications", requestID)
		return
	}
	api.Success(w, apps, requestID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.DecisionApprove)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.DecisionReject)
}

type decisionRequest struct {
	Comment string `json:"comment"`
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, decision string) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	leaveID := chi.URLParam(r, "leaveID")

	var payload decisionRequest
	if r.Body != nil {
		// Comment body is optional.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	app, err := h.Service.Decide(r.Context(), leaveID, decision, user.AccountID, payload.Comment)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "leave_not_found", "leave application not found", requestID)
		case errors.Is(err, leave.ErrAlreadyDecided):
			api.Fail(w, http.StatusConflict, "already_decided", "leave application has already been decided", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "leave_decision_failed", "failed to decide leave application", requestID)
		}
		return
	}

	action := "leave.approve"
	if decision == leave.DecisionReject {
		action = "leave.reject"
	}
	if err := h.Audit.Record(r.Context(), user.AccountID, action, "leave_application", leaveID, requestID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit leave decision failed", "err", err)
	}
	api.Success(w, app, requestID)
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
