package directoryhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

type StoreAPI interface {
	List(ctx context.Context) ([]directory.Employee, error)
	Get(ctx context.Context, userID string) (directory.Employee, error)
}

type Handler struct {
	Store StoreAPI
}

func NewHandler(store StoreAPI) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/{userID}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []directory.Employee{}
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Store.Get(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}
