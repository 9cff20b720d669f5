package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest"
)

// headerWatcher notes whether the handler already committed a response.
type headerWatcher struct {
	http.ResponseWriter
	committed bool
}

func (w *headerWatcher) WriteHeader(status int) {
	w.committed = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *headerWatcher) Write(b []byte) (int, error) {
	w.committed = true
	return w.ResponseWriter.Write(b)
}

// Recovery turns a handler panic into an internal_error response. The panic
// value stays in the log; the payer only sees the error kind. A response the
// handler already started is left as is.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			watcher := &headerWatcher{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.LogAttrs(r.Context(), slog.LevelError, "handler panicked",
					slog.Any("panic", rec),
					slog.String("route", r.Method+" "+r.URL.Path),
					slog.Bool("response_committed", watcher.committed),
					slog.String("stack", string(debug.Stack())),
				)
				if watcher.committed {
					return
				}
				rest.WriteError(w, &application.ProcessingError{
					Kind:    application.KindInternal,
					Message: "internal error",
				}, logger)
			}()

			next.ServeHTTP(watcher, r)
		})
	}
}
