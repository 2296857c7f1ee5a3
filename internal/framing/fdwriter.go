package framing

import (
	"golang.org/x/sys/unix"
)

// Writes straight to a raw descriptor with one write(2) per call. Used for
// standard output from the real-time callback, where going through os.File
// would park the thread in the runtime poller when the pipe is full.
type FDWriter struct {
	FD int
}

// Single attempt. EAGAIN and EINTR come back as errors with n == 0.
func (w FDWriter) Write(p []byte) (n int, err error) {
	n, err = unix.Write(w.FD, p)
	if n < 0 {
		n = 0
	}
	return
}
