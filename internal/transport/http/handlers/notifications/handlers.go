package notificationhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *notifications.Service
}

func NewHandler(service *notifications.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermNotificationsRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermNotificationsRead)).Post("/{notificationID}/read", h.handleMarkRead)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 20, 100)
	items, err := h.Service.List(r.Context(), user.UserID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notifications_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	unread, err := h.Service.CountUnread(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notifications_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if items == nil {
		items = []map[string]any{}
	}

	api.Success(w, map[string]any{
		"items":  items,
		"unread": unread,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.MarkRead(r.Context(), user.UserID, chi.URLParam(r, "notificationID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notifications_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
