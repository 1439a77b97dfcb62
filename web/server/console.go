package server

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	base        *zap.Logger
}

// NewWebLogger creates a new web logger for a specific render. A nil base
// logger discards server-side output.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, base *zap.Logger) *WebLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		base:        base.With(zap.String("render", renderID)),
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	wl.base.Info(strings.TrimSuffix(message, "\n"))

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}
