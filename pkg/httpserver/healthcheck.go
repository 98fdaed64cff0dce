package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/dmitrymomot/accesskit/pkg/logger"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Liveness answers 200 as long as the process serves requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "alive"})
	}
}

// Readiness runs every check with the request context bounded by timeout.
// It answers 200 when all pass and 503 otherwise, listing each check's state.
func Readiness(log *slog.Logger, timeout time.Duration, checks map[string]CheckFunc) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		code := http.StatusOK
		body := map[string]string{"status": "ready"}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				if log != nil {
					log.WarnContext(ctx, "readiness check failed", logger.Component(name), logger.Error(err))
				}
				code = http.StatusServiceUnavailable
				body["status"] = "not_ready"
				body[name] = "fail"
				continue
			}
			body[name] = "ok"
		}
		writeStatus(w, code, body)
	}
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
