package framing

import (
	"io"
	"jacl/internal/global"
	"sync/atomic"
)

const (
	ErrCodeBadLength   = "JACL_BAD_LENGTH"
	ErrCodeBadHexDigit = "JACL_BAD_HEX_DIGIT"
)

// Splits a byte stream into newline-terminated lines held in a fixed buffer
type Framer struct {
	Namespace []string
	line      []byte // Accumulated bytes of the current line (cap = max)
	max       int
	resync    bool // Discard the accumulated line when the desync marker arrives
	overflow  bool // Current line already lost bytes past max
	Metrics   *FramerMetrics
}

type FramerMetrics struct {
	Lines     atomic.Uint64 // Completed lines handed out
	Truncated atomic.Uint64 // Lines that lost bytes past the bound
	Resyncs   atomic.Uint64 // Desync markers honored
}

// State of the output stream after the most recent write
type WriteState uint8

const (
	LastNewline WriteState = iota // Stream ends on a line boundary
	LastMarker                    // Stream ends on a bare desync marker
	LastPartial                   // Stream ends inside a data line
)

// Writes hex lines to a non-blocking sink, tracking torn writes so the
// reading side can be told to discard fragments.
// Not safe for concurrent use; owned by one real-time callback.
type LineWriter struct {
	Namespace []string
	out       io.Writer
	state     WriteState
	scratch   [global.WriteScratchSize]byte
	Metrics   *WriterMetrics
}

type WriterMetrics struct {
	Lines     atomic.Uint64 // Data lines written in full
	Torn      atomic.Uint64 // Data lines cut short by the sink
	Markers   atomic.Uint64 // Desync markers written
	Abandoned atomic.Uint64 // Blocks given up because the sink would not accept more
}
