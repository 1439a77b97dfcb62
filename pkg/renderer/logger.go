package renderer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/df07/go-pixel-tracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of a zap sugared logger
type DefaultLogger struct {
	sugar *zap.SugaredLogger
}

// Printf logs the formatted message at info level. A trailing newline is
// dropped since zap terminates every entry itself.
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.sugar.Infof(strings.TrimSuffix(format, "\n"), args...)
}

// Sync flushes buffered log entries
func (dl *DefaultLogger) Sync() error {
	return dl.sugar.Sync()
}

// NewDefaultLogger creates a console logger without caller or stack trace
// decoration. It falls back to a silent logger if zap cannot be built.
func NewDefaultLogger() core.Logger {
	config := zap.NewDevelopmentConfig()
	config.DisableCaller = true
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return NewNopLogger()
	}
	return NewZapLogger(logger)
}

// NewZapLogger adapts an existing zap logger
func NewZapLogger(logger *zap.Logger) *DefaultLogger {
	return &DefaultLogger{sugar: logger.Sugar()}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() core.Logger {
	return NewZapLogger(zap.NewNop())
}
