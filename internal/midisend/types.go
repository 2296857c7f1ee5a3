package midisend

import (
	"context"
	"jacl/internal/audio"
	"jacl/internal/eventloop"
	"jacl/internal/framing"
	"jacl/internal/queue/spsc"
	"jacl/internal/session"
	"sync/atomic"
)

type Config struct {
	Session session.Config
	InputFD int // Hex lines, one MIDI event each
}

// Turns hex lines from input into MIDI events on an output port
type Daemon struct {
	cfg Config
	ctx context.Context

	session   *session.Session
	port      audio.Port
	framer    *framing.Framer
	loop      *eventloop.Loop
	Queue     *spsc.Queue
	consumer  *spsc.Consumer
	decodeBuf []byte

	// Real-time side state, only touched inside process
	writer audio.MidiWriter
	emit   func(msg []byte)

	Metrics *MetricStorage
}

type MetricStorage struct {
	Rejected    atomic.Uint64 // Lines that failed to decode
	EmptyLines  atomic.Uint64 // Lines decoding to no bytes (skipped)
	Sent        atomic.Uint64 // Events written to the port
	WriteFailed atomic.Uint64 // Events the port buffer refused
	LastSent    atomic.Int64  // Cached wall clock (unix nanos) of the latest sent event
}
