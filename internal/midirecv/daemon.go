// MIDI sink: writes each incoming MIDI event to output as a line of hex,
// straight from the processing callback, marking torn lines so readers can
// resynchronize.
package midirecv

import (
	"context"
	"jacl/internal/audio"
	"jacl/internal/eventloop"
	"jacl/internal/framing"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"jacl/internal/session"

	"github.com/agilira/go-timecache"
)

// Create new MIDI-to-stdout daemon instance
func NewDaemon(cfg Config) (new *Daemon) {
	if cfg.Session.ClientName == "" {
		cfg.Session.ClientName = global.DefaultMidiRecvClientName
	}
	new = &Daemon{
		cfg:     cfg,
		Metrics: &MetricStorage{},
	}
	new.visit = new.writeEvent
	return
}

// Makes output non-blocking, opens the client, registers the input port and
// activates processing. Anything opened is released again when startup fails.
func (daemon *Daemon) Start(globalCtx context.Context) (err error) {
	daemon.ctx = logctx.AppendCtxTag(globalCtx, global.NSMidiRecv)
	namespace := []string{global.NSMidiRecv}

	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Starting...\n")

	daemon.restore, err = eventloop.SetNonblock(daemon.cfg.OutputFD)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			daemon.restore()
		}
	}()

	daemon.session, err = session.Open(daemon.ctx, namespace, daemon.cfg.Session)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			daemon.session.Close(daemon.ctx)
		}
	}()

	logger := logctx.GetLogger(daemon.ctx)
	daemon.traceEvents = logger != nil && logger.PrintLevel >= global.VerbosityDebug

	daemon.Writer = framing.NewLineWriter(namespace, framing.FDWriter{FD: daemon.cfg.OutputFD})

	err = daemon.session.Client.SetProcessCallback(daemon.process)
	if err != nil {
		return
	}

	daemon.port, err = daemon.session.Client.RegisterPort(global.MidiRecvPortName, audio.MidiPort, audio.Input)
	if err != nil {
		return
	}

	daemon.session.AddCollectors(daemon.Writer, daemon)

	err = daemon.session.Activate(daemon.ctx)
	if err != nil {
		return
	}

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog, "Startup complete.\n")
	return
}

// Blocks until shutdown is requested. All work happens in the process callback.
func (daemon *Daemon) Run() (err error) {
	err = daemon.session.Shutdown.Wait()
	return
}

// Asks Run to return. Safe from any goroutine.
func (daemon *Daemon) RequestShutdown() {
	if daemon.session == nil {
		return
	}
	daemon.session.Shutdown.Trigger()
}

// Stops processing, releases the client and restores output mode
func (daemon *Daemon) Shutdown() {
	if daemon.session == nil {
		return
	}
	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Daemon shutdown started...\n")
	daemon.session.Close(daemon.ctx)

	// No callback runs after Close, so the writer state is final
	if daemon.Writer != nil && daemon.Writer.State() != framing.LastNewline {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"Output ends mid-line, the last line written is incomplete\n")
	}
	if daemon.restore != nil {
		daemon.restore()
		daemon.restore = nil
	}
}

// Real-time callback. Recovers the line boundary first, then writes events
// until output refuses more; the rest of the period is dropped.
func (daemon *Daemon) process(nframes uint32) (status int) {
	daemon.abandoned = !daemon.Writer.Recover()
	daemon.port.ReadMidi(nframes, daemon.visit)
	return
}

func (daemon *Daemon) writeEvent(time uint32, data []byte) {
	daemon.Metrics.Received.Add(1)
	daemon.Metrics.LastSeen.Store(timecache.CachedTimeNano())
	if daemon.traceEvents {
		logctx.LogEvent(daemon.ctx, global.VerbosityDebug, global.InfoLog, "got event, size %d\n", len(data))
	}

	if daemon.abandoned {
		daemon.Metrics.Dropped.Add(1)
		return
	}
	if !daemon.Writer.WriteHexLine(data) {
		daemon.abandoned = true
		daemon.Metrics.Dropped.Add(1)
	}
}
