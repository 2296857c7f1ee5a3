package lifecycle

import (
	"context"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"os"
	"os/signal"
	"syscall"
)

// Takes over termination and status signals from the default handlers.
// Signals arriving before HandleSignals runs are buffered for it.
func ListenSignals() (sigChan chan os.Signal) {
	sigChan = make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGUSR1)
	return
}

// Handles signals from ListenSignals until ctx is done, then hands them back
// to the default handlers.
// Termination signals trigger shutdown (later ones are only logged).
// SIGUSR1 calls onStatus, if set, for a runtime status report.
func HandleSignals(ctx context.Context, sigChan chan os.Signal, shutdown *ShutdownSignal, onStatus func(ctx context.Context)) {
	ctx = logctx.AppendCtxTag(ctx, global.NSSignal)
	defer signal.Stop(sigChan)

	signalLoop(ctx, sigChan, shutdown, onStatus)
}

func signalLoop(ctx context.Context, sigChan <-chan os.Signal, shutdown *ShutdownSignal, onStatus func(ctx context.Context)) {
	for {
		var sig os.Signal
		select {
		case <-ctx.Done():
			return
		case sig = <-sigChan:
		}

		if sig == syscall.SIGUSR1 {
			if onStatus != nil {
				onStatus(ctx)
			}
			continue
		}

		if shutdown.Triggered() {
			logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Received signal %v, shutdown already in progress\n", sig)
			continue
		}

		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "Received signal: %v\n", sig)
		shutdown.Trigger()
	}
}
