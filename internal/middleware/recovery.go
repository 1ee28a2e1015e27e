package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
)

var internalErrorBody = []byte(`{"error":"Internal server error"}`)

// Recovery catches panics in downstream handlers and returns 500 with the
// JSON error envelope, so one failing request never takes the process down.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "handler panic",
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", RequestIDFrom(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Content-Length", strconv.Itoa(len(internalErrorBody)))
				w.WriteHeader(http.StatusInternalServerError)
				w.Write(internalErrorBody)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
