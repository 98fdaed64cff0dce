package logger

import (
	"log/slog"
	"strconv"
)

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errs under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Role(role string) slog.Attr { return slog.String("role", role) }

func Module(module string) slog.Attr { return slog.String("module", module) }

func Action(action string) slog.Attr { return slog.String("action", action) }

// Subject records the authenticated principal a role was issued to.
func Subject(sub string) slog.Attr {
	if sub == "" {
		return slog.Attr{}
	}
	return slog.String("subject", sub)
}

// Source records which policy source a resolver was built from.
func Source(name string) slog.Attr { return slog.String("policy_source", name) }

func Component(name string) slog.Attr { return slog.String("component", name) }

func Duration(d any) slog.Attr { return slog.Any("duration", d) }
