package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNamedAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).Named("backfill").With(String("run", "manual"))

	log.Info("metadata backfill completed",
		Int("updated", 2),
		Int64("id", 7),
		Bool("fallback", true),
		Duration("took", time.Second),
		Error(errors.New("boom")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "backfill", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "manual", fields["run"])
	assert.Equal(t, int64(2), fields["updated"])
	assert.Equal(t, int64(7), fields["id"])
	assert.Equal(t, true, fields["fallback"])
	assert.Equal(t, "boom", fields["error"])
}

func TestSugaredVariants(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core))

	log.Debugf("hidden %d", 1)
	log.Warnf("failed to close redis: %v", "eof")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to close redis: eof", logs.All()[0].Message)
}

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		t.Run(level, func(t *testing.T) {
			assert.NotPanics(t, func() {
				log := New(level, false)
				log.Debug("level check")
			})
		})
	}
	assert.NotPanics(t, func() { Nop().Error("discarded") })
}
