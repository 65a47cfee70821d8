package logging

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger adapts a sugared zap logger to Logger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

func NewZapLogger(s *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{s: s}
}

func (z *ZapLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.s.Debugw(msg, withUnitOfWork(ctx, args)...)
}

func (z *ZapLogger) Info(ctx context.Context, msg string, args ...any) {
	z.s.Infow(msg, withUnitOfWork(ctx, args)...)
}

func (z *ZapLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.s.Warnw(msg, withUnitOfWork(ctx, args)...)
}

func (z *ZapLogger) Error(ctx context.Context, msg string, args ...any) {
	z.s.Errorw(msg, withUnitOfWork(ctx, args)...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{s: z.s.With(args...)}
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.s.Sync()
}
