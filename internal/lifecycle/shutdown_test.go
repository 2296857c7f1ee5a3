package lifecycle

import (
	"sync"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestShutdownSignal(t *testing.T) {
	type testCase struct {
		name string
		run  func(t *testing.T, shutdown *ShutdownSignal)
	}

	tests := []testCase{
		{
			name: "armed signal is not readable",
			run: func(t *testing.T, shutdown *ShutdownSignal) {
				fds := []unix.PollFd{{Fd: int32(shutdown.FD())}}
				n, err := unix.Poll(fds, 0)
				if err != nil {
					t.Fatalf("poll: %v", err)
				}
				if n != 0 || fds[0].Revents != 0 {
					t.Fatalf("expected no events, got n=%d revents=%#x", n, fds[0].Revents)
				}
				if shutdown.Triggered() {
					t.Fatalf("expected armed signal")
				}
			},
		},
		{
			name: "trigger reports hangup on read end",
			run: func(t *testing.T, shutdown *ShutdownSignal) {
				shutdown.Trigger()
				fds := []unix.PollFd{{Fd: int32(shutdown.FD())}}
				n, err := unix.Poll(fds, 0)
				if err != nil {
					t.Fatalf("poll: %v", err)
				}
				if n != 1 || fds[0].Revents&unix.POLLHUP == 0 {
					t.Fatalf("expected POLLHUP, got n=%d revents=%#x", n, fds[0].Revents)
				}
				if !shutdown.Triggered() {
					t.Fatalf("expected signaled state")
				}
			},
		},
		{
			name: "wait returns after trigger from another goroutine",
			run: func(t *testing.T, shutdown *ShutdownSignal) {
				go func() {
					time.Sleep(10 * time.Millisecond)
					shutdown.Trigger()
				}()

				done := make(chan error, 1)
				go func() { done <- shutdown.Wait() }()

				select {
				case err := <-done:
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
				case <-time.After(5 * time.Second):
					t.Fatalf("wait did not return after trigger")
				}
			},
		},
		{
			name: "concurrent triggers are safe",
			run: func(t *testing.T, shutdown *ShutdownSignal) {
				var wg sync.WaitGroup
				for i := 0; i < 16; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						shutdown.Trigger()
					}()
				}
				wg.Wait()

				if err := shutdown.Wait(); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			},
		},
		{
			name: "wait after trigger returns immediately and repeatedly",
			run: func(t *testing.T, shutdown *ShutdownSignal) {
				shutdown.Trigger()
				for i := 0; i < 3; i++ {
					if err := shutdown.Wait(); err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := NewShutdownSignal()
			if err != nil {
				t.Fatalf("unexpected error creating signal: %v", err)
			}
			defer shutdown.Close()
			tt.run(t, shutdown)
		})
	}
}

func TestShutdownSignal_CloseIdempotent(t *testing.T) {
	shutdown, err := NewShutdownSignal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shutdown.Close()
	shutdown.Close()
	shutdown.Trigger()
	if !shutdown.Triggered() {
		t.Fatalf("expected closed signal to count as triggered")
	}
}
