package attendancehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Notify  *notifications.Service

	// Now is swapped out in tests for deterministic clock times.
	Now func() time.Time
}

func NewHandler(service *attendance.Service, notify *notifications.Service) *Handler {
	return &Handler{Service: service, Notify: notify, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAttendanceRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite)).Post("/check-in", h.handleCheckIn)
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite)).Post("/check-out", h.handleCheckOut)
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/daily", h.handleDaily)
		r.With(middleware.RequirePermission(auth.PermAttendanceEdit)).Put("/{recordID}", h.handleEdit)
	})
}

func (h *Handler) failFor(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, attendance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "attendance record not found", requestID)
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		api.Fail(w, http.StatusConflict, "already_checked_in", "already checked in today", requestID)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		api.Fail(w, http.StatusConflict, "not_checked_in", "no check-in recorded today", requestID)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		api.Fail(w, http.StatusConflict, "already_checked_out", "already checked out today", requestID)
	case errors.Is(err, attendance.ErrInvalidClock):
		api.Fail(w, http.StatusBadRequest, "invalid_clock", "clock time must be HH:mm", requestID)
	case errors.Is(err, attendance.ErrNothingToUpdate):
		api.Fail(w, http.StatusBadRequest, "empty_update", "no fields to update", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", err.Error(), requestID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var day *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return
		}
		day = &parsed
	}

	records, err := h.Service.List(r.Context(), user, r.URL.Query().Get("userId"), day)
	if err != nil {
		h.failFor(w, r, err)
		return
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.CheckIn(r.Context(), user, h.Now())
	if err != nil {
		h.failFor(w, r, err)
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.CheckOut(r.Context(), user, h.Now())
	if err != nil {
		h.failFor(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CheckInTime  string  `json:"checkInTime"`
		CheckOutTime string  `json:"checkOutTime"`
		Notes        *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.Edit(r.Context(), chi.URLParam(r, "recordID"), attendance.EditInput{
		CheckIn:  payload.CheckInTime,
		CheckOut: payload.CheckOutTime,
		Notes:    payload.Notes,
	}, h.Now())
	if err != nil {
		h.failFor(w, r, err)
		return
	}

	if err := h.Notify.Create(r.Context(), record.UserID, notifications.TypeAttendanceCorrected,
		"Attendance record corrected",
		"Your attendance record for "+record.Date.Format("Jan 2, 2006")+" was corrected by HR."); err != nil {
		slog.Warn("attendance correction notification failed", "err", err)
	}

	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	day := h.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return
		}
		day = parsed
	}

	views, err := h.Service.DailyOverview(r.Context(), day)
	if err != nil {
		h.failFor(w, r, err)
		return
	}
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}
