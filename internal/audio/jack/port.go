package jack

import (
	"jacl/internal/audio"
	"unsafe"

	gojack "github.com/xthexder/go-jack"
)

func (port *Port) Name() (name string) {
	name = port.name
	return
}

func (port *Port) Kind() (kind audio.PortKind) {
	kind = port.kind
	return
}

// Reinterprets the server's sample buffer in place (AudioSample is a float32)
func (port *Port) AudioBuffer(nframes uint32) (buffer []float32) {
	samples := port.handle.GetBuffer(nframes)
	if len(samples) == 0 {
		return
	}
	buffer = unsafe.Slice((*float32)(unsafe.Pointer(&samples[0])), len(samples))
	return
}

func (port *Port) ReadMidi(nframes uint32, visit func(time uint32, data []byte)) (count int) {
	for _, event := range port.handle.GetMidiEvents(nframes) {
		visit(event.Time, event.Buffer)
		count++
	}
	return
}

func (port *Port) MidiWriter(nframes uint32) (writer audio.MidiWriter) {
	port.writer.buffer = port.handle.MidiClearBuffer(nframes)
	writer = &port.writer
	return
}

func (writer *midiWriter) WriteEvent(time uint32, data []byte) (err error) {
	writer.event = gojack.MidiData{Time: time, Buffer: data}
	status := writer.port.MidiEventWrite(&writer.event, writer.buffer)
	if status != 0 {
		err = audio.ErrBufferFull
	}
	return
}
