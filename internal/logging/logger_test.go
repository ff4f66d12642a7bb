package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNew_LevelGating(t *testing.T) {
	ctx := context.Background()

	info := logging.New(slog.LevelInfo)
	assert.True(t, info.Enabled(ctx, slog.LevelInfo))
	assert.False(t, info.Enabled(ctx, slog.LevelDebug))

	debug := logging.New(slog.LevelDebug)
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))
}

func TestNewNop(t *testing.T) {
	nop := logging.NewNop()
	assert.NotNil(t, nop)
	nop.Info("discarded", "error", "nothing to see")
}
