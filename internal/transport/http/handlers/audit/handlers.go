package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/audit"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
	"dayflow/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.handleList)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page := shared.ParsePagination(r, 50, 200)
	events, err := h.Service.List(r.Context(), r.URL.Query().Get("action"), page.Limit(), page.Offset())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", requestID)
		return
	}
	api.Success(w, events, requestID)
}
