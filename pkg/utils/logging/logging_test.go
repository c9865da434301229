package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
)

func TestFromReturnsEmbeddedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("hello", "matrix_id", "balanced-fair")

	gt.String(t, buf.String()).Contains(`"msg":"hello"`)
	gt.String(t, buf.String()).Contains(`"matrix_id":"balanced-fair"`)
}

func TestFromFallsBackToDefault(t *testing.T) {
	gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
}

func TestNewRedactsSecrets(t *testing.T) {
	type sentryConfig struct {
		DSN string
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	logger.Info("configured", "sentry", sentryConfig{DSN: "https://key@sentry.example.com/1"})

	gt.String(t, buf.String()).NotContains("key@sentry.example.com")
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatConsole)
	logger.Info("dropped")
	logger.Warn("kept")

	gt.String(t, buf.String()).NotContains("dropped")
	gt.String(t, buf.String()).Contains("kept")
}
