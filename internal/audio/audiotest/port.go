package audiotest

import (
	"fmt"
	"jacl/internal/audio"
	"sync"
)

type MidiEvent struct {
	Time uint32
	Data []byte
}

type Port struct {
	name      string
	kind      audio.PortKind
	direction audio.Direction
	samples   []float32

	mutex    sync.Mutex  // Guards pending, which tests fill from other goroutines
	pending  []MidiEvent // Delivered on the next cycle (input ports)
	incoming []MidiEvent // Visible during the current cycle
	written  []MidiEvent // Written during the most recent cycle (output ports)

	MaxEvents int // Output capacity per cycle, zero for unlimited
	writer    midiWriter
}

type midiWriter struct {
	port    *Port
	nframes uint32
}

func (port *Port) Name() (name string) {
	name = port.name
	return
}

func (port *Port) Kind() (kind audio.PortKind) {
	kind = port.kind
	return
}

func (port *Port) AudioBuffer(nframes uint32) (buffer []float32) {
	buffer = port.samples[:nframes]
	return
}

func (port *Port) ReadMidi(nframes uint32, visit func(time uint32, data []byte)) (count int) {
	for _, event := range port.incoming {
		visit(event.Time, event.Data)
		count++
	}
	return
}

func (port *Port) MidiWriter(nframes uint32) (writer audio.MidiWriter) {
	port.written = port.written[:0]
	port.writer.nframes = nframes
	writer = &port.writer
	return
}

func (writer *midiWriter) WriteEvent(time uint32, data []byte) (err error) {
	port := writer.port
	if time >= writer.nframes {
		err = fmt.Errorf("event time %d outside period of %d frames", time, writer.nframes)
		return
	}
	if port.MaxEvents > 0 && len(port.written) >= port.MaxEvents {
		err = audio.ErrBufferFull
		return
	}
	port.written = append(port.written, MidiEvent{Time: time, Data: append([]byte(nil), data...)})
	return
}

// Schedules an incoming MIDI event for the next cycle
func (port *Port) QueueMidi(time uint32, data []byte) {
	port.mutex.Lock()
	defer port.mutex.Unlock()
	port.pending = append(port.pending, MidiEvent{Time: time, Data: append([]byte(nil), data...)})
}

// Copy of the events written during the most recent cycle
func (port *Port) Written() (events []MidiEvent) {
	port.mutex.Lock()
	defer port.mutex.Unlock()
	events = append(events, port.written...)
	return
}

// Copy of the sample buffer after the most recent cycle
func (port *Port) Samples() (samples []float32) {
	port.mutex.Lock()
	defer port.mutex.Unlock()
	samples = append(samples, port.samples...)
	return
}

func (port *Port) beginCycle(nframes uint32) {
	port.mutex.Lock()
	defer port.mutex.Unlock()

	if uint32(cap(port.samples)) < nframes {
		port.samples = make([]float32, nframes)
	}
	port.samples = port.samples[:nframes]
	if port.direction == audio.Output {
		for i := range port.samples {
			port.samples[i] = 0
		}
	}

	port.incoming = append(port.incoming[:0], port.pending...)
	port.pending = port.pending[:0]
}

func (port *Port) endCycle() {
	port.mutex.Lock()
	defer port.mutex.Unlock()
	port.incoming = port.incoming[:0]
}
