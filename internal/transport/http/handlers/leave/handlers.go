package leavehandler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type DirectoryAPI interface {
	List(ctx context.Context) ([]directory.Employee, error)
}

type Handler struct {
	Service   *leave.Service
	Notify    *notifications.Service
	Directory DirectoryAPI
}

func NewHandler(service *leave.Service, notify *notifications.Service, dir DirectoryAPI) *Handler {
	return &Handler{Service: service, Notify: notify, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave-requests", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/balance", h.handleBalance)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Get("/export", h.handleExportCSV)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Put("/{requestID}", h.handleDecide)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Delete("/{requestID}", h.handleCancel)
	})
}

func (h *Handler) failFor(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed for this request", requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "request is no longer pending", requestID)
	case errors.Is(err, leave.ErrInvalidType):
		api.Fail(w, http.StatusBadRequest, "invalid_type", "unknown leave type", requestID)
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date before start date", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_request_failed", err.Error(), requestID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && !leave.ValidStatus(status) {
		api.Fail(w, http.StatusBadRequest, "invalid_status", "unknown status filter", middleware.GetRequestID(r.Context()))
		return
	}

	requests, err := h.Service.List(r.Context(), user, r.URL.Query().Get("userId"), status)
	if err != nil {
		h.failFor(w, r, err)
		return
	}
	if requests == nil {
		requests = []leave.LeaveRequest{}
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "requestID"))
	if err != nil {
		h.failFor(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Type      string `json:"type"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("type", payload.Type, "leave type is required")
	validator.Enum("type", payload.Type,
		[]string{leave.TypeAnnual, leave.TypeSick, leave.TypePersonal, leave.TypeHalfDay},
		"must be one of annual, sick, personal, halfday")
	start, startOK := validator.Date("startDate", payload.StartDate)
	end, endOK := validator.Date("endDate", payload.EndDate)
	if startOK && endOK {
		validator.DateOrder("startDate", start, "endDate", end)
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.Create(r.Context(), user, leave.CreateInput{
		Type:      payload.Type,
		StartDate: start,
		EndDate:   end,
		Reason:    payload.Reason,
	})
	if err != nil {
		h.failFor(w, r, err)
		return
	}

	if err := h.Notify.Create(r.Context(), req.UserID, notifications.TypeLeaveSubmitted,
		"Leave request submitted",
		fmt.Sprintf("Your %s leave for %s is pending approval.", req.Type, leave.FormatDateRange(req.StartDate, req.EndDate))); err != nil {
		slog.Warn("leave submit notification failed", "err", err)
	}

	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	status := strings.ToLower(strings.TrimSpace(payload.Status))
	if status != leave.StatusApproved && status != leave.StatusRejected {
		api.Fail(w, http.StatusBadRequest, "invalid_status", "status must be approved or rejected", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Decide(r.Context(), user, chi.URLParam(r, "requestID"), status)
	if err != nil {
		h.failFor(w, r, err)
		return
	}

	ntype := notifications.TypeLeaveApproved
	title := "Leave request approved"
	if status == leave.StatusRejected {
		ntype = notifications.TypeLeaveRejected
		title = "Leave request rejected"
	}
	if err := h.Notify.Create(r.Context(), req.UserID, ntype, title,
		fmt.Sprintf("Your %s leave for %s was %s.", req.Type, leave.FormatDateRange(req.StartDate, req.EndDate), status)); err != nil {
		slog.Warn("leave decision notification failed", "err", err)
	}

	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Service.Cancel(r.Context(), user, chi.URLParam(r, "requestID"))
	if err != nil {
		h.failFor(w, r, err)
		return
	}

	if err := h.Notify.Create(r.Context(), req.UserID, notifications.TypeLeaveCancelled,
		"Leave request cancelled",
		fmt.Sprintf("Your %s leave for %s was cancelled.", req.Type, leave.FormatDateRange(req.StartDate, req.EndDate))); err != nil {
		slog.Warn("leave cancel notification failed", "err", err)
	}

	api.Success(w, map[string]string{"id": req.ID, "status": "canceled"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	// Privileged callers may inspect another user's balance for the
	// approval view; everyone else gets their own.
	userID := r.URL.Query().Get("userId")
	if userID == "" || !auth.Privileged(user.Role) {
		userID = user.UserID
	}

	if leaveType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))); leaveType != "" {
		balance, err := h.Service.BalanceFor(r.Context(), userID, leaveType)
		if err != nil {
			h.failFor(w, r, err)
			return
		}
		api.Success(w, balance, middleware.GetRequestID(r.Context()))
		return
	}

	balances, err := h.Service.Balances(r.Context(), userID)
	if err != nil {
		h.failFor(w, r, err)
		return
	}
	api.Success(w, balances, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.List(r.Context(), auth.UserContext{Role: auth.RoleAdmin}, "", "")
	if err != nil {
		h.failFor(w, r, err)
		return
	}

	var employees []directory.Employee
	if h.Directory != nil {
		if listed, err := h.Directory.List(r.Context()); err == nil {
			employees = listed
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-requests.csv"`)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"Employee", "Type", "Dates", "Duration", "Status", "Reason"})
	for _, req := range requests {
		_ = writer.Write([]string{
			directory.NameFor(employees, req.UserID),
			req.Type,
			leave.FormatDateRange(req.StartDate, req.EndDate),
			leave.FormatDuration(req.StartDate, req.EndDate),
			req.Status,
			req.Reason,
		})
	}
	writer.Flush()
}
