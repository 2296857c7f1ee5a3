package midirecv

import (
	"context"
	"jacl/internal/audio"
	"jacl/internal/framing"
	"jacl/internal/session"
	"sync/atomic"
)

type Config struct {
	Session  session.Config
	OutputFD int // Receives one hex line per MIDI event
}

// Writes every MIDI event arriving on an input port to output as a hex line
type Daemon struct {
	cfg Config
	ctx context.Context

	session *session.Session
	port    audio.Port
	Writer  *framing.LineWriter
	restore func() // Puts output back in its original blocking mode

	// Real-time side state, only touched inside process
	abandoned   bool
	traceEvents bool // Log each event (debug verbosity only)
	visit       func(time uint32, data []byte)

	Metrics *MetricStorage
}

type MetricStorage struct {
	Received atomic.Uint64 // Events seen on the input port
	Dropped  atomic.Uint64 // Events not written because output was full
	LastSeen atomic.Int64  // Cached wall clock (unix nanos) of the latest received event
}
