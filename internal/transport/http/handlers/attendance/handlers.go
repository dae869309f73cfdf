package attendancehandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service   *attendance.Service
	Employees *employee.Service
}

func NewHandler(service *attendance.Service, employees *employee.Service) *Handler {
	return &Handler{Service: service, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
	})
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	profile, ok := h.callerProfile(w, r)
	if !ok {
		return
	}

	record, err := h.Service.CheckIn(r.Context(), profile.ID, time.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			api.Fail(w, http.StatusConflict, "already_checked_in", "already checked in today", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to record check-in", requestID)
		return
	}
	api.Created(w, record, requestID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	profile, ok := h.callerProfile(w, r)
	if !ok {
		return
	}

	record, err := h.Service.CheckOut(r.Context(), profile.ID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNoCheckIn):
			api.Fail(w, http.StatusNotFound, "no_check_in", "no check-in recorded today", requestID)
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			api.Fail(w, http.StatusConflict, "already_checked_out", "already checked out today", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to record check-out", requestID)
		}
		return
	}
	api.Success(w, record, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filter := attendance.ListFilter{}
	query := r.URL.Query()

	v := shared.NewValidator()
	if raw := query.Get("fromDate"); raw != "" {
		if parsed, ok := v.Date("fromDate", raw); ok {
			filter.From = parsed
		}
	}
	if raw := query.Get("toDate"); raw != "" {
		if parsed, ok := v.Date("toDate", raw); ok {
			filter.To = parsed
		}
	}
	v.DateOrder("fromDate", filter.From, "toDate", filter.To)
	if v.Reject(w, requestID) {
		return
	}

	if auth.Elevated(user.Role) {
		filter.EmployeeID = query.Get("employeeId")
	}
	if filter.EmployeeID == "" {
		profile, ok := h.callerProfile(w, r)
		if !ok {
			return
		}
		filter.EmployeeID = profile.ID
	}

	records, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance", requestID)
		return
	}
	api.Success(w, records, requestID)
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
