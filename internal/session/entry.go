// Scaffolding shared by the client programs: open the audio client, arm the
// shutdown signal, report metrics and tear everything down in order.
package session

import (
	"context"
	"fmt"
	"jacl/internal/global"
	"jacl/internal/lifecycle"
	"jacl/internal/logctx"
	"jacl/internal/metrics"
	"time"
)

const defaultMetricMaxAge time.Duration = 1 * time.Hour

// Opens the audio client and arms the shutdown signal. On error nothing is
// left open.
func Open(globalCtx context.Context, namespace []string, cfg Config) (new *Session, err error) {
	if cfg.Open == nil {
		err = fmt.Errorf("no audio backend configured")
		return
	}
	if cfg.MetricMaxAge == 0 {
		cfg.MetricMaxAge = defaultMetricMaxAge
	}

	new = &Session{
		Namespace: append([]string(nil), namespace...),
		cfg:       cfg,
		Registry:  metrics.New(),
		startedAt: time.Now(),
	}
	new.ctx, new.cancel = context.WithCancel(globalCtx)

	new.Shutdown, err = lifecycle.NewShutdownSignal()
	if err != nil {
		new.cancel()
		new = nil
		return
	}

	// Signals during startup must still end in an orderly close
	if cfg.HandleSignals {
		sigChan := lifecycle.ListenSignals()
		session := new
		session.wg.Add(1)
		go func() {
			defer session.wg.Done()
			lifecycle.HandleSignals(session.ctx, sigChan, session.Shutdown, session.ReportMetrics)
		}()
	}

	new.Client, err = cfg.Open(cfg.ClientName)
	if err != nil {
		err = fmt.Errorf("failed to open audio client '%s': %v", cfg.ClientName, err)
		new.cancel()
		new.wg.Wait()
		new.Shutdown.Close()
		new = nil
		return
	}

	logctx.LogEvent(globalCtx, global.VerbosityProgress, global.InfoLog, "Opened audio client '%s'\n", new.Client.Name())
	return
}

// Registers components whose counters are included in reports
func (session *Session) AddCollectors(collectors ...metrics.Collector) {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	session.collectors = append(session.collectors, collectors...)
}

// Activates the client and tells the service manager the program is ready
func (session *Session) Activate(ctx context.Context) (err error) {
	err = session.Client.Activate()
	if err != nil {
		err = fmt.Errorf("failed to activate audio client: %v", err)
		return
	}

	notifyErr := lifecycle.NotifyReady(ctx)
	if notifyErr == nil {
		notifyErr = lifecycle.NotifyStatus(ctx, fmt.Sprintf("client '%s' active", session.Client.Name()))
	}
	if notifyErr != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Service manager notification failed: %v\n", notifyErr)
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "Client '%s' active\n", session.Client.Name())
	return
}

// Snapshots every collector and logs the result
func (session *Session) ReportMetrics(ctx context.Context) {
	session.mutex.Lock()
	collectors := append([]metrics.Collector(nil), session.collectors...)
	session.mutex.Unlock()

	now := time.Now()
	session.Registry.Prune(now, session.cfg.MetricMaxAge)
	slice := session.Registry.Snapshot(now, 0, collectors...)

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Metrics after %v:\n", now.Sub(session.startedAt).Round(time.Millisecond))
	for _, metric := range session.Registry.Search("", session.Namespace, slice, slice) {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "  %s\n", metric.Format())
	}
}

// Closes the audio client (no callback runs after this returns), reports
// final metrics and releases the shutdown signal. Idempotent.
func (session *Session) Close(ctx context.Context) {
	if session.closed {
		return
	}
	session.closed = true

	notifyErr := lifecycle.NotifyStopping(ctx)
	if notifyErr != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Service manager notification failed: %v\n", notifyErr)
	}

	err := session.Client.Close()
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Audio client did not close cleanly: %v\n", err)
	}

	session.ReportMetrics(ctx)

	session.cancel()
	session.wg.Wait()
	session.Shutdown.Close()

	if session.cfg.RestoreTTYLine {
		lifecycle.RestoreTerminalLine()
	}
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Client shut down\n")
}
