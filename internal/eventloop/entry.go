// Single-threaded poll loop feeding input lines to a handler until shutdown
// is requested.
package eventloop

import (
	"context"
	"fmt"
	"jacl/internal/framing"
	"jacl/internal/global"
	"jacl/internal/lifecycle"
	"jacl/internal/logctx"
	"runtime"

	"golang.org/x/sys/unix"
)

const (
	pollShutdown int = iota
	pollInput
)

// Creates loop reading inputFD through framer and passing each line to onLine
func New(namespace []string, shutdown *lifecycle.ShutdownSignal, inputFD int, framer *framing.Framer, onLine func(ctx context.Context, line []byte)) (new *Loop) {
	new = &Loop{
		Namespace: append(append([]string(nil), namespace...), global.NSLoop),
		shutdown:  shutdown,
		inputFD:   inputFD,
		framer:    framer,
		onLine:    onLine,
		Metrics:   &MetricStorage{},
	}
	return
}

// Blocks until shutdown is requested (returns nil) or polling fails.
// End of input does not end the loop; only the shutdown signal does.
// The input descriptor is switched to non-blocking mode for the duration.
func (loop *Loop) Run(ctx context.Context) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx = logctx.AppendCtxTag(ctx, global.NSLoop)

	restore, err := SetNonblock(loop.inputFD)
	if err != nil {
		return
	}
	defer restore()

	fds := []unix.PollFd{
		pollShutdown: {Fd: int32(loop.shutdown.FD())},
		pollInput:    {Fd: int32(loop.inputFD), Events: unix.POLLIN},
	}
	buf := make([]byte, global.ReadChunkSize)

	for {
		// No timeout, only shutdown or input wake the loop
		_, err = unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			err = fmt.Errorf("poll failed: %v", err)
			return
		}
		loop.Metrics.Wakeups.Add(1)

		for i := range fds {
			if fds[i].Revents&unix.POLLNVAL != 0 {
				err = fmt.Errorf("unexpected POLLNVAL on descriptor #%d", i)
				return
			}
		}

		if fds[pollShutdown].Revents != 0 {
			logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Shutdown requested, leaving event loop\n")
			return
		}

		input := &fds[pollInput]
		if input.Revents&unix.POLLIN != 0 {
			if !loop.readAvailable(ctx, buf) {
				loop.finishInput(ctx, input)
			}
		} else if input.Revents != 0 {
			logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
				"Input reported events %#x without data, no longer watching it\n", input.Revents)
			loop.finishInput(ctx, input)
		}
	}
}

// Stops polling input. A final line without a newline is never delivered.
func (loop *Loop) finishInput(ctx context.Context, input *unix.PollFd) {
	input.Fd = -1
	loop.Metrics.InputDone.Store(true)

	if pending := loop.framer.Pending(); pending > 0 {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Discarding %d bytes of unterminated final line\n", pending)
		loop.framer.Reset()
	}
}

// Reads fixed size chunks until the descriptor would block.
// Returns false once input is finished (end of input or read error).
func (loop *Loop) readAvailable(ctx context.Context, buf []byte) (open bool) {
	for {
		n, err := unix.Read(loop.inputFD, buf)
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN {
			open = true
			return
		}
		if err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "Failed reading input: %v\n", err)
			return
		}
		if n == 0 {
			logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
				"End of input, waiting for shutdown signal\n")
			return
		}

		loop.Metrics.Reads.Add(1)
		loop.Metrics.BytesRead.Add(uint64(n))
		loop.framer.Feed(buf[:n], func(line []byte) {
			loop.onLine(ctx, line)
			if loop.AfterLine != nil {
				loop.AfterLine(ctx)
			}
			loop.Metrics.Lines.Add(1)
		})
	}
}

// Switches fd to non-blocking mode, returning a func putting the original flags back
func SetNonblock(fd int) (restore func(), err error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		err = fmt.Errorf("failed to read flags of descriptor %d: %v", fd, err)
		return
	}

	err = unix.SetNonblock(fd, true)
	if err != nil {
		err = fmt.Errorf("failed to make descriptor %d non-blocking: %v", fd, err)
		return
	}

	restore = func() {
		unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags)
	}
	return
}
