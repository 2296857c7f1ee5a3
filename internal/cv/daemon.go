// Control voltage source: reads decimal values from input and holds the
// latest one on an audio output port.
package cv

import (
	"context"
	"errors"
	"jacl/internal/audio"
	"jacl/internal/eventloop"
	"jacl/internal/framing"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"jacl/internal/rtbridge"
	"jacl/internal/session"
)

// Create new control voltage daemon instance
func NewDaemon(cfg Config) (new *Daemon) {
	if cfg.Session.ClientName == "" {
		cfg.Session.ClientName = global.DefaultCVClientName
	}
	new = &Daemon{
		cfg: cfg,
	}
	return
}

// Opens the client, registers the output port and activates processing.
// Anything opened is released again when startup fails.
func (daemon *Daemon) Start(globalCtx context.Context) (err error) {
	daemon.ctx = logctx.AppendCtxTag(globalCtx, global.NSCV)
	namespace := []string{global.NSCV}

	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Starting...\n")

	daemon.session, err = session.Open(daemon.ctx, namespace, daemon.cfg.Session)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			daemon.session.Close(daemon.ctx)
		}
	}()

	daemon.Bridge = rtbridge.New(namespace, 0)

	err = daemon.session.Client.SetProcessCallback(daemon.process)
	if err != nil {
		return
	}

	daemon.port, err = daemon.session.Client.RegisterPort(global.CVPortName, audio.AudioPort, audio.Output)
	if err != nil {
		return
	}

	propErr := daemon.session.Client.SetPortProperty(daemon.port, global.MetadataSignalType, global.SignalTypeCV, global.MimeTextPlain)
	if propErr != nil {
		if errors.Is(propErr, audio.ErrUnsupported) {
			logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.WarnLog,
				"Port metadata not supported by backend, '%s' not marked as CV\n", global.CVPortName)
		} else {
			logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
				"Could not mark port '%s' as CV: %v\n", global.CVPortName, propErr)
		}
	}

	daemon.framer = framing.NewFramer(namespace, global.ScalarLineMax, false)
	daemon.loop = eventloop.New(namespace, daemon.session.Shutdown, daemon.cfg.InputFD, daemon.framer, daemon.handleLine)
	daemon.session.AddCollectors(daemon.Bridge, daemon.framer, daemon.loop)

	err = daemon.session.Activate(daemon.ctx)
	if err != nil {
		return
	}

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog, "Startup complete.\n")
	return
}

// Blocks reading control input until shutdown is requested
func (daemon *Daemon) Run() (err error) {
	err = daemon.loop.Run(logctx.AppendCtxTag(daemon.ctx, global.NSoStdIn))
	return
}

// Asks Run to return. Safe from any goroutine.
func (daemon *Daemon) RequestShutdown() {
	if daemon.session == nil {
		return
	}
	daemon.session.Shutdown.Trigger()
}

// Stops processing and releases the client
func (daemon *Daemon) Shutdown() {
	if daemon.session == nil {
		return
	}
	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Daemon shutdown started...\n")
	daemon.session.Close(daemon.ctx)
}

func (daemon *Daemon) handleLine(ctx context.Context, line []byte) {
	// Failures are already logged and counted by the bridge
	_ = daemon.Bridge.HandleLine(ctx, line)
}

// Real-time callback. Fills the whole period with the current value.
func (daemon *Daemon) process(nframes uint32) (status int) {
	buffer := daemon.port.AudioBuffer(nframes)
	value := daemon.Bridge.Get()
	for i := range buffer {
		buffer[i] = value
	}
	return
}
