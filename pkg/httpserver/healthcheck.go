package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/appleauth/pkg/logger"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// Healthcheck returns a probe handler. With no checks it answers 200 "ok"
// and serves as a liveness probe. With checks it becomes a readiness probe:
// every check must pass, otherwise it answers 503 "unavailable" and logs the
// failing dependency by name.
func Healthcheck(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "dependency check failed",
					logger.Component("httpserver"),
					slog.String("dependency", name),
					logger.Error(err))
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
