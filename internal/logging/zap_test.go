package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedZap(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapLogger(zap.New(core).Sugar()), logs
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := newObservedZap(zapcore.DebugLevel)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	want := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Level)
	}
	assert.Equal(t, int64(2), entries[1].ContextMap()["b"])
}

func TestZapLogger_WithAndUnitOfWork(t *testing.T) {
	log, logs := newObservedZap(zapcore.InfoLevel)
	ctx := WithUnitOfWork(context.Background(), "u-42")

	log.With("op", "update label").Info(ctx, "commit", "label_id", int64(1))
	log.Debug(ctx, "filtered")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "update label", fields["op"])
	assert.Equal(t, "u-42", fields["uow"])
	assert.Equal(t, int64(1), fields["label_id"])
}
