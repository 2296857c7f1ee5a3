package cv

import (
	"context"
	"errors"
	"jacl/internal/audio"
	"jacl/internal/audio/audiotest"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"jacl/internal/session"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

type fixture struct {
	ctx     context.Context
	client  *audiotest.Client
	daemon  *Daemon
	writeFD int
	runErr  chan error
}

func newFixture(t *testing.T, prepare func(client *audiotest.Client)) (f *fixture, startErr error) {
	t.Helper()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})

	f = &fixture{
		ctx:     logctx.New(context.Background(), global.NSTest, global.VerbosityProgress, done),
		writeFD: fds[1],
		runErr:  make(chan error, 1),
	}
	f.client = audiotest.NewClient(global.DefaultCVClientName)
	if prepare != nil {
		prepare(f.client)
	}

	f.daemon = NewDaemon(Config{
		Session: session.Config{
			Open: func(name string) (audio.Client, error) { return f.client, nil },
		},
		InputFD: fds[0],
	})
	startErr = f.daemon.Start(f.ctx)
	return
}

func (f *fixture) run() {
	go func() { f.runErr <- f.daemon.Run() }()
}

func (f *fixture) stop(t *testing.T) {
	t.Helper()
	f.daemon.RequestShutdown()
	select {
	case err := <-f.runErr:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after shutdown request")
	}
	f.daemon.Shutdown()
}

func (f *fixture) send(t *testing.T, data string) {
	t.Helper()
	if _, err := unix.Write(f.writeFD, []byte(data)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestDaemon_PublishesValues(t *testing.T) {
	f, err := newFixture(t, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	f.run()

	port := f.client.Port(global.CVPortName)
	if port == nil || port.Kind() != audio.AudioPort {
		t.Fatalf("expected audio port %q registered", global.CVPortName)
	}
	if f.client.Properties[global.CVPortName][global.MetadataSignalType] != global.SignalTypeCV {
		t.Fatalf("expected CV signal type metadata, got %v", f.client.Properties)
	}

	// Silence until the first value arrives
	f.client.Cycle(4)
	for _, s := range port.Samples() {
		if s != 0 {
			t.Fatalf("expected initial zero, got %v", s)
		}
	}

	f.send(t, "0.5\n")
	waitFor(t, "value 0.5", func() bool { return f.daemon.Bridge.Get() == 0.5 })
	f.client.Cycle(8)
	samples := port.Samples()
	if len(samples) != 8 {
		t.Fatalf("expected 8 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if s != 0.5 {
			t.Fatalf("sample %d: expected 0.5, got %v", i, s)
		}
	}

	// Rejected input keeps the previous value
	f.send(t, "nan\nnot-a-number\n")
	waitFor(t, "two rejections", func() bool { return f.daemon.Bridge.Metrics.Rejected.Load() == 2 })
	f.client.Cycle(2)
	if got := port.Samples(); got[0] != 0.5 || got[1] != 0.5 {
		t.Fatalf("expected value held at 0.5, got %v", got)
	}

	f.stop(t)
	if !f.client.Closed() {
		t.Fatalf("expected client closed after shutdown")
	}

	var sawNaN bool
	for _, line := range logctx.GetLogger(f.ctx).GetFormattedLogLines() {
		if strings.Contains(line, "value cannot be NaN") {
			sawNaN = true
		}
	}
	if !sawNaN {
		t.Fatalf("expected NaN diagnostic in log")
	}
}

func TestDaemon_MetadataUnsupported(t *testing.T) {
	f, err := newFixture(t, func(client *audiotest.Client) {
		client.UnsupportedProps = true
	})
	if err != nil {
		t.Fatalf("expected start to succeed without metadata support, got %v", err)
	}
	f.run()
	if !f.client.Active() {
		t.Fatalf("expected active client")
	}
	f.stop(t)
}

func TestDaemon_StartFailures(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(client *audiotest.Client)
		expect  string
	}{
		{
			name:    "activation refused",
			prepare: func(client *audiotest.Client) { client.FailActivate = errors.New("server gone") },
			expect:  "server gone",
		},
		{
			name:    "port registration refused",
			prepare: func(client *audiotest.Client) { client.FailRegister = errors.New("no more ports") },
			expect:  "no more ports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newFixture(t, tt.prepare)
			if err == nil || !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
			if !f.client.Closed() {
				t.Fatalf("expected client released after failed start")
			}
			f.daemon.Shutdown() // must be harmless
		})
	}
}

func TestDaemon_OpenFailure(t *testing.T) {
	daemon := NewDaemon(Config{
		Session: session.Config{
			Open: func(name string) (audio.Client, error) {
				if name != global.DefaultCVClientName {
					t.Errorf("expected default client name, got %q", name)
				}
				return nil, errors.New("no server running")
			},
		},
	})
	err := daemon.Start(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no server running") {
		t.Fatalf("expected open error, got %v", err)
	}
	daemon.RequestShutdown()
	daemon.Shutdown()
}
