// MIDI source: decodes hex lines read from input and emits each one as a
// MIDI event at the start of the next processing period.
package midisend

import (
	"context"
	"jacl/internal/audio"
	"jacl/internal/eventloop"
	"jacl/internal/framing"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"jacl/internal/queue/spsc"
	"jacl/internal/session"

	"github.com/agilira/go-timecache"
)

// Create new stdin-to-MIDI daemon instance
func NewDaemon(cfg Config) (new *Daemon) {
	if cfg.Session.ClientName == "" {
		cfg.Session.ClientName = global.DefaultMidiSendClientName
	}
	new = &Daemon{
		cfg:       cfg,
		decodeBuf: make([]byte, framing.DecodedLen(global.HexLineMax+1)),
		Metrics:   &MetricStorage{},
	}
	new.emit = new.writeEvent
	return
}

// Opens the client, registers the output port and activates processing.
// Anything opened is released again when startup fails.
func (daemon *Daemon) Start(globalCtx context.Context) (err error) {
	daemon.ctx = logctx.AppendCtxTag(globalCtx, global.NSMidiSend)
	namespace := []string{global.NSMidiSend}

	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Starting...\n")

	daemon.session, err = session.Open(daemon.ctx, namespace, daemon.cfg.Session)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			daemon.session.Close(daemon.ctx)
			daemon.Queue.Close()
		}
	}()

	daemon.Queue = spsc.New(namespace, nil)
	daemon.consumer = daemon.Queue.Consumer()

	err = daemon.session.Client.SetProcessCallback(daemon.process)
	if err != nil {
		return
	}

	daemon.port, err = daemon.session.Client.RegisterPort(global.MidiSendPortName, audio.MidiPort, audio.Output)
	if err != nil {
		return
	}

	daemon.framer = framing.NewFramer(namespace, global.HexLineMax, true)
	daemon.loop = eventloop.New(namespace, daemon.session.Shutdown, daemon.cfg.InputFD, daemon.framer, daemon.handleLine)
	daemon.loop.AfterLine = daemon.afterLine
	daemon.session.AddCollectors(daemon.Queue, daemon.framer, daemon.loop, daemon)

	err = daemon.session.Activate(daemon.ctx)
	if err != nil {
		return
	}

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog, "Startup complete.\n")
	return
}

// Blocks reading hex input until shutdown is requested
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

// Stops processing, releases the client and frees every queued message.
// Messages not yet picked up by a processing period are dropped.
func (daemon *Daemon) Shutdown() {
	if daemon.session == nil {
		return
	}
	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Daemon shutdown started...\n")

	pending := daemon.Queue.Depth()
	daemon.session.Close(daemon.ctx) // no process callback runs past this point
	freed := daemon.Queue.Close()

	if pending > 0 {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"Dropped %d queued events that were never sent\n", pending)
	}
	logctx.LogEvent(daemon.ctx, global.VerbosityData, global.InfoLog, "Released %d queue nodes\n", freed)
}

// Decodes one line and queues it for the next period
func (daemon *Daemon) handleLine(ctx context.Context, line []byte) {
	n, err := framing.Decode(daemon.decodeBuf, line)
	if err != nil {
		daemon.Metrics.Rejected.Add(1)
		logctx.LogError(ctx, err)
		return
	}
	if n == 0 {
		daemon.Metrics.EmptyLines.Add(1)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "Queued event of %d bytes\n", n)
	daemon.Queue.Enqueue(daemon.decodeBuf[:n])
	daemon.Queue.CheckPressure(ctx)
}

// Frees whatever the real-time side has finished with
func (daemon *Daemon) afterLine(ctx context.Context) {
	daemon.Queue.Reclaim()
}

// Real-time callback. Writes every queued message at frame 0.
func (daemon *Daemon) process(nframes uint32) (status int) {
	daemon.writer = daemon.port.MidiWriter(nframes)
	daemon.consumer.Drain(daemon.emit)
	return
}

func (daemon *Daemon) writeEvent(msg []byte) {
	err := daemon.writer.WriteEvent(0, msg)
	if err != nil {
		daemon.Metrics.WriteFailed.Add(1)
		return
	}
	daemon.Metrics.Sent.Add(1)
	daemon.Metrics.LastSent.Store(timecache.CachedTimeNano())
}
