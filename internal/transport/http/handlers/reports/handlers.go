package reporthandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/reports"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service

	Now func() time.Time
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/attendance/pdf", h.handleAttendancePDF)
	})
}

func (h *Handler) handleAttendancePDF(w http.ResponseWriter, r *http.Request) {
	now := h.Now()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsedYear, parsedMonth, err := shared.ParseMonth(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", middleware.GetRequestID(r.Context()))
			return
		}
		year, month = parsedYear, parsedMonth
	}

	sheet, err := h.Service.MonthlySheet(r.Context(), year, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	pdf, err := reports.RenderPDF(sheet)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="attendance-%04d-%02d.pdf"`, year, int(month)))
	_, _ = w.Write(pdf)
}
