package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ConsoleMessage is one log line forwarded to the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Printf("[%s] %s", wl.renderID, message)

	if wl.consoleChan == nil {
		return
	}

	// Non-blocking; a slow client loses log lines, never render time
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     levelOf(message),
	}:
	default:
	}
}

// levelOf picks a console level from the message text
func levelOf(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "skipping"):
		return "warning"
	case strings.Contains(lower, "stopped") || strings.Contains(lower, "error"):
		return "error"
	default:
		return "info"
	}
}
