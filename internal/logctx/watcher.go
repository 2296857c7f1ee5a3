package logctx

import (
	"fmt"
	"io"
	"jacl/internal/global"
	"sort"
	"strings"
	"time"
)

// Hold main thread exit until logger is finished its work
func (logger *Logger) Wait() {
	logger.wg.Wait()
}

// Wake signals/broadcasts to any goroutines waiting on the condition variable
func (logger *Logger) Wake() {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()
	logger.cond.Broadcast()
}

// Starts a go routine that reads events and writes formatted output to io.Writer.
// Stops when logger.Done is closed and every queued event has been written.
func StartWatcher(logger *Logger, output io.Writer) {
	logger.wg.Add(1)

	go func() {
		defer logger.wg.Done()

		var dedup dedupState
		const dedupWindow = 5 * time.Second
		const minRepeats = 10
		const suppressCooldown = 1 * time.Minute

		for {
			logger.mutex.Lock()
			for len(logger.queue) == 0 {
				select {
				case <-logger.Done:
					logger.mutex.Unlock()
					return
				default:
					logger.cond.Wait()
				}
			}

			// Pop one event from the front of the queue
			event := logger.queue[0]
			logger.queue = logger.queue[1:]
			logger.mutex.Unlock()

			now := time.Now()

			// Duplicate events older than the deduplication window are not considered duplicates.
			// Errors are never suppressed (each one is a dropped input line).
			if event.Severity != global.ErrorLog &&
				event.Message != "" &&
				event.Message == dedup.lastMsg &&
				now.Sub(event.Timestamp) <= dedupWindow {

				dedup.repeatCount++
				if dedup.repeatCount >= minRepeats && now.Sub(dedup.lastSuppressTime) >= suppressCooldown {
					fmt.Fprint(output, Event{
						Timestamp: event.Timestamp,
						Tags:      event.Tags,
						Severity:  global.InfoLog,
						Message:   fmt.Sprintf("Suppressed %d repeated messages: %s", dedup.repeatCount, dedup.lastMsg),
					}.Format())

					dedup.lastSuppressTime = now
					dedup.repeatCount = 0
				}
				continue
			}
			dedup.lastMsg = event.Message
			dedup.repeatCount = 1

			fmt.Fprint(output, event.Format())
		}
	}()
}

// Returns currently queued (unwritten) events formatted, oldest first
func (logger *Logger) GetFormattedLogLines() (formatted []string) {
	// Copy under lock to avoid holding mutex while sorting/formatting
	logger.mutex.Lock()
	events := make([]Event, len(logger.queue))
	copy(events, logger.queue)
	logger.mutex.Unlock()

	// Zero timestamps sort last
	sort.SliceStable(events, func(i, j int) bool {
		ti := events[i].Timestamp
		tj := events[j].Timestamp
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.Before(tj)
	})

	formatted = make([]string, 0, len(events))
	for _, event := range events {
		line := event.Format()
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		formatted = append(formatted, line)
	}
	return
}
