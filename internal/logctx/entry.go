// Central logging system. Buffers diagnostics and writes them to the error channel.
//
// Standard output carries protocol data in every client program, so the
// watcher is always pointed at standard error.
package logctx

import (
	"context"
	"fmt"
	"jacl/internal/global"
	"strings"
	"time"
)

// Entry for logging events
func LogEvent(ctx context.Context, eventLevel int, severity string, message string, vars ...any) {
	logger := GetLogger(ctx)
	if logger == nil {
		return
	}

	var newMsg string
	if len(vars) == 0 || !strings.Contains(message, "%") {
		// Avoiding 'extra' print to log entries
		newMsg = message
	} else {
		newMsg = fmt.Sprintf(message, vars...)
	}
	logger.log(eventLevel, severity, GetTagList(ctx), newMsg)
}

// Records an error value at error severity (never filtered by level)
func LogError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "%v\n", err)
}

// Queues event if allowed by the current print level
func (logger *Logger) log(eventLevel int, eventSeverity string, tags []string, fullMessage string) {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()

	if eventLevel > logger.PrintLevel && eventSeverity != global.ErrorLog {
		return
	}

	logger.queue = append(logger.queue, Event{
		Timestamp: time.Now(),
		Tags:      tags,
		Severity:  eventSeverity,
		Message:   fullMessage,
	})
	logger.cond.Signal() // Notify watcher that new event is available
}
