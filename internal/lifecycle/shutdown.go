package lifecycle

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// One-shot shutdown request usable inside poll(2). Backed by a self-pipe:
// triggering closes the write end, after which the read end reports POLLHUP
// forever. Armed until the first Trigger, then Signaled for good.
type ShutdownSignal struct {
	readFD    int
	writeFD   int
	triggered atomic.Bool
	fire      sync.Once
	release   sync.Once
}

// Creates an armed shutdown signal
func NewShutdownSignal() (new *ShutdownSignal, err error) {
	var fds [2]int
	err = unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC)
	if err != nil {
		err = fmt.Errorf("failed to create shutdown pipe: %v", err)
		return
	}

	new = &ShutdownSignal{
		readFD:  fds[0],
		writeFD: fds[1],
	}
	return
}

// Requests shutdown. Safe from any goroutine, any number of times.
func (shutdown *ShutdownSignal) Trigger() {
	shutdown.fire.Do(func() {
		shutdown.triggered.Store(true)
		unix.Close(shutdown.writeFD)
	})
}

func (shutdown *ShutdownSignal) Triggered() (triggered bool) {
	triggered = shutdown.triggered.Load()
	return
}

// Read end of the pipe, to be polled with no requested events
func (shutdown *ShutdownSignal) FD() (fd int) {
	fd = shutdown.readFD
	return
}

// Blocks until Trigger has been called
func (shutdown *ShutdownSignal) Wait() (err error) {
	fds := []unix.PollFd{{Fd: int32(shutdown.readFD)}}
	for {
		_, err = unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			err = fmt.Errorf("poll on shutdown pipe failed: %v", err)
			return
		}

		if fds[0].Revents&unix.POLLNVAL != 0 {
			err = fmt.Errorf("shutdown pipe descriptor is invalid")
			return
		}
		if fds[0].Revents != 0 {
			return
		}
	}
}

// Triggers (if not yet done) and releases both pipe ends.
// Nothing may be polling the read end anymore.
func (shutdown *ShutdownSignal) Close() {
	shutdown.Trigger()
	shutdown.release.Do(func() {
		unix.Close(shutdown.readFD)
	})
}
