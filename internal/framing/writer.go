package framing

import (
	"io"
	"jacl/internal/global"
)

// Creates a line writer over out, starting on a line boundary.
// out must never block; a short count means the sink is full.
func NewLineWriter(namespace []string, out io.Writer) (new *LineWriter) {
	new = &LineWriter{
		Namespace: append(append([]string(nil), namespace...), global.NSWriter),
		out:       out,
		state:     LastNewline,
		Metrics:   &WriterMetrics{},
	}
	return
}

func (writer *LineWriter) State() (state WriteState) {
	state = writer.state
	return
}

// Brings the stream back to a line boundary before a new block of lines.
// Returns false when the block must be abandoned; the next call picks up
// where this one stopped.
func (writer *LineWriter) Recover() (ok bool) {
	switch writer.state {
	case LastPartial:
		writer.scratch[0] = global.DesyncMarker
		writer.scratch[1] = '\n'
		n := writer.write(writer.scratch[:2])
		switch n {
		case 2:
			writer.Metrics.Markers.Add(1)
		case 1:
			writer.Metrics.Markers.Add(1)
			writer.state = LastMarker
			writer.Metrics.Abandoned.Add(1)
			return
		default:
			writer.Metrics.Abandoned.Add(1)
			return
		}
	case LastMarker:
		writer.scratch[0] = '\n'
		if writer.write(writer.scratch[:1]) != 1 {
			writer.Metrics.Abandoned.Add(1)
			return
		}
	}

	writer.state = LastNewline
	ok = true
	return
}

// Writes msg as one hex line through the scratch buffer, flushing whenever it
// fills. Any short write leaves the stream mid-line and returns false; the
// caller must stop writing this block.
func (writer *LineWriter) WriteHexLine(msg []byte) (ok bool) {
	fill := 0
	for i := range msg {
		fill += Encode(writer.scratch[fill:fill+2], msg[i:i+1])
		if fill < len(writer.scratch) {
			continue
		}
		if writer.write(writer.scratch[:fill]) != fill {
			writer.torn()
			return
		}
		fill = 0
	}

	writer.scratch[fill] = '\n'
	fill++
	if writer.write(writer.scratch[:fill]) != fill {
		writer.torn()
		return
	}

	writer.Metrics.Lines.Add(1)
	ok = true
	return
}

func (writer *LineWriter) torn() {
	writer.state = LastPartial
	writer.Metrics.Torn.Add(1)
	writer.Metrics.Abandoned.Add(1)
}

// Single write attempt, errors count as nothing written
func (writer *LineWriter) write(chunk []byte) (n int) {
	n, err := writer.out.Write(chunk)
	if err != nil && n <= 0 {
		n = 0
	}
	return
}
