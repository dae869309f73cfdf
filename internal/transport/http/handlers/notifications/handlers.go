package notificationshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dayflow/internal/domain/notifications"
	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/middleware"
)

type Handler struct {
	Service *notifications.Service
}

func NewHandler(service *notifications.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/{notificationID}/read", h.handleMarkRead)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	limit := 50
	offset := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	items, err := h.Service.List(r.Context(), user.AccountID, limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notifications_list_failed", "failed to list notifications", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	notificationID := chi.URLParam(r, "notificationID")

	if err := h.Service.MarkRead(r.Context(), user.AccountID, notificationID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_update_failed", "failed to mark notification as read", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "read"}, requestID)
}
