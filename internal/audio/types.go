// Narrow view of the audio server the client programs need: one client, a
// real-time process callback and a handful of audio or MIDI ports.
package audio

import "github.com/agilira/go-errors"

const (
	ErrCodeUnsupported = "JACL_UNSUPPORTED"
	ErrCodeBufferFull  = "JACL_BUFFER_FULL"
)

var (
	// Returned by backends for optional operations they cannot perform
	ErrUnsupported = errors.New(ErrCodeUnsupported, "operation not supported by audio backend")
	// Shared value, safe to return from the process callback
	ErrBufferFull = errors.New(ErrCodeBufferFull, "no space left in MIDI output buffer")
)

type PortKind uint8

const (
	AudioPort PortKind = iota // 32-bit float samples
	MidiPort                  // Timestamped raw MIDI events
)

type Direction uint8

const (
	Input Direction = iota
	Output
)

// Runs on the server's real-time thread once per period of nframes frames.
// Must not block, allocate or lock. Non-zero return reports failure.
type ProcessCallback func(nframes uint32) (status int)

type Client interface {
	// Name the client was opened with
	Name() (name string)
	// Must be set before Activate
	SetProcessCallback(callback ProcessCallback) (err error)
	RegisterPort(name string, kind PortKind, direction Direction) (port Port, err error)
	// Attaches a metadata property to a port. May return ErrUnsupported.
	SetPortProperty(port Port, key, value, valueType string) (err error)
	// Starts process callbacks
	Activate() (err error)
	// Stops process callbacks (waiting for a running one) and releases the client
	Close() (err error)
}

// Buffers and writers returned by a port are valid only inside the current
// process callback.
type Port interface {
	Name() (name string)
	Kind() (kind PortKind)
	// Sample buffer for the current period
	AudioBuffer(nframes uint32) (buffer []float32)
	// Visits incoming MIDI events of the current period in time order
	ReadMidi(nframes uint32, visit func(time uint32, data []byte)) (count int)
	// Clears the outgoing MIDI buffer of the current period and returns its writer
	MidiWriter(nframes uint32) (writer MidiWriter)
}

type MidiWriter interface {
	// Appends one event at frame offset time. Fails when the buffer is full.
	WriteEvent(time uint32, data []byte) (err error)
}
