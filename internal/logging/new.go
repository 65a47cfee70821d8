package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds the logger selected by backend at the named level ("debug",
// "info", "warn", "error"). The returned func flushes the backend.
func New(backend, level string, w io.Writer) (Logger, func(), error) {
	switch strings.ToLower(backend) {
	case BackendSlog, "":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", level, err)
		}
		return NewSlogText(w, lvl), func() {}, nil

	case BackendZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", level, err)
		}
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
		z := NewZapLogger(zap.New(core).Sugar())
		return z, func() { _ = z.Sync() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
