package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Handler struct {
	Service *employee.Service
	Audit   *audit.Service
}

func NewHandler(service *employee.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireAdmin).Get("/", h.handleList)
		r.Get("/me", h.handleMe)
		r.Get("/{employeeID}", h.handleGet)
		r.Patch("/{employeeID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			activeOnly = parsed
		}
	}
	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)

	result, err := h.Service.List(r.Context(), activeOnly, page.Limit(), page.Offset())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}

	api.Success(w, map[string]any{
		"data":       result.Profiles,
		"total":      result.Total,
		"page":       page.Page,
		"pageSize":   page.PageSize,
		"totalPages": page.TotalPages(result.Total),
	}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	profile, err := h.Service.GetByAccount(r.Context(), user.AccountID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee profile for this account", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee profile", requestID)
		return
	}
	api.Success(w, profile, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	profile, err := h.Service.GetByID(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee", requestID)
		return
	}

	if !auth.Elevated(user.Role) && profile.AccountID != user.AccountID {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's profile", requestID)
		return
	}
	api.Success(w, profile, requestID)
}

type updateRequest struct {
	FirstName  *string  `json:"firstName"`
	LastName   *string  `json:"lastName"`
	Phone      *string  `json:"phone"`
	Department *string  `json:"department"`
	Position   *string  `json:"position"`
	Salary     *float64 `json:"salary"`
	Active     *bool    `json:"active"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	current, err := h.Service.GetByID(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_lookup_failed", "failed to load employee", requestID)
		return
	}

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	admin := auth.Elevated(user.Role)
	if !admin {
		if current.AccountID != user.AccountID {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot update another employee's profile", requestID)
			return
		}
		// Employees may only change their own contact number.
		if payload.FirstName != nil || payload.LastName != nil || payload.Department != nil ||
			payload.Position != nil || payload.Salary != nil || payload.Active != nil {
			api.Fail(w, http.StatusForbidden, "forbidden", "only phone can be changed on your own profile", requestID)
			return
		}
	}

	updated, err := h.Service.Update(r.Context(), employeeID, employee.UpdateInput{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Phone:      payload.Phone,
		Department: payload.Department,
		Position:   payload.Position,
		Salary:     payload.Salary,
		Active:     payload.Active,
	})
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", requestID)
		return
	}

	if admin {
		if err := h.Audit.Record(r.Context(), user.AccountID, "employee.update", "employee", employeeID, requestID, shared.ClientIP(r)); err != nil {
			slog.Warn("audit employee.update failed", "err", err)
		}
	}
	api.Success(w, updated, requestID)
}
