package rbac

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/accesskit/pkg/logger"
)

// NewLogObserver returns an Observer writing each decision to log at debug level.
// Denials of unmapped routes are logged at info so misconfigured catalogs surface.
func NewLogObserver(log *slog.Logger) Observer {
	if log == nil {
		return nil
	}
	return func(d Decision) {
		level := slog.LevelDebug
		if d.Reason == ReasonUnmappedRoute {
			level = slog.LevelInfo
		}

		attrs := []slog.Attr{
			logger.Role(string(d.Role)),
			logger.Module(string(d.Module)),
			logger.Action(string(d.Action)),
			slog.Bool("allowed", d.Allowed),
			slog.String("reason", string(d.Reason)),
		}
		if d.Route != "" {
			attrs = append(attrs, slog.String("route", d.Route))
		}
		log.LogAttrs(context.Background(), level, "rbac decision", attrs...)
	}
}
