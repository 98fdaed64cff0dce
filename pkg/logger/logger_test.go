package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/environment"
	"github.com/dmitrymomot/accesskit/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("shown", logger.Role("receptionist"), logger.Module("patients"), logger.Action("read"))
	entry := decode(t, &buf)
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "receptionist", entry["role"])
	assert.Equal(t, "patients", entry["module"])
	assert.Equal(t, "read", entry["action"])
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("development", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment(environment.Development, "rbacd"), logger.WithOutput(&buf))
		log.Debug("msg")
		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=rbacd")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment(environment.Production, "rbacd"), logger.WithOutput(&buf))
		log.Debug("hidden")
		assert.Zero(t, buf.Len())
		log.Info("msg")
		entry := decode(t, &buf)
		assert.Equal(t, "rbacd", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestWithFormat_Invalid(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(ctxKey{}).(string); ok {
			return slog.String("trace", v), true
		}
		return slog.Attr{}, false
	}
	log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(nil, extractor))

	log.With(logger.Component("guard")).InfoContext(context.WithValue(context.Background(), ctxKey{}, "t-1"), "msg")
	entry := decode(t, &buf)
	assert.Equal(t, "t-1", entry["trace"])
	assert.Equal(t, "guard", entry["component"])

	buf.Reset()
	log.InfoContext(context.Background(), "msg")
	entry = decode(t, &buf)
	assert.NotContains(t, entry, "trace")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := logger.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)

	l, err = logger.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = logger.ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = logger.ParseLevel("loud")
	assert.Error(t, err)
}

func TestErrorAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	assert.True(t, logger.Subject("").Equal(slog.Attr{}))

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	log.Error("failed", logger.Error(errors.New("boom")), logger.Errors(nil, errors.New("second")))
	entry := decode(t, &buf)
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, map[string]any{"1": "second"}, entry["errors"])
}
