package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"hrportal/internal/transport/http/api"
)

// Recoverer converts handler panics into a 500 envelope so the connection is
// answered and the request id makes it into the log line.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error("handler panic",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"requestId", GetRequestID(r.Context()),
					"stack", string(debug.Stack()),
				)
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
