package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaverin/task-system-api/internal/config"
)

func TestSetup(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
			require.NoError(t, err, "Setup should accept level %q", level)
			require.NotNil(t, log)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
		assert.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		log := slog.Default().With("test", "value")
		ctx := WithLogger(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
		assert.Same(t, log, FromContextOrDefault(ctx, nil))
	})

	t.Run("falls back to default", func(t *testing.T) {
		ctx := context.Background()
		assert.Same(t, slog.Default(), FromContext(ctx))
	})

	t.Run("falls back to provided default", func(t *testing.T) {
		def := slog.Default().With("component", "test")
		assert.Same(t, def, FromContextOrDefault(context.Background(), def))
	})
}
