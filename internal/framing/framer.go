// Line framing, hex encoding and torn-write recovery for the text side of the
// audio bridges.
//
// Lines are terminated by '\n'. The byte 'X' anywhere in a hex line means the
// writer was cut off mid-line earlier: the reader throws away what it has
// accumulated so far and starts over.
package framing

import (
	"jacl/internal/global"
)

// Creates a framer keeping at most max bytes per line.
// resync enables discarding the current line on the desync marker.
func NewFramer(namespace []string, max int, resync bool) (new *Framer) {
	new = &Framer{
		Namespace: append(append([]string(nil), namespace...), global.NSFramer),
		line:      make([]byte, 0, max),
		max:       max,
		resync:    resync,
		Metrics:   &FramerMetrics{},
	}
	return
}

// Consumes data, calling onLine for every completed line (terminator
// excluded). The line slice is only valid during the call.
func (framer *Framer) Feed(data []byte, onLine func(line []byte)) (lines int) {
	for _, b := range data {
		switch {
		case b == '\n':
			if framer.overflow {
				framer.Metrics.Truncated.Add(1)
			}
			framer.Metrics.Lines.Add(1)
			onLine(framer.line)
			framer.line = framer.line[:0]
			framer.overflow = false
			lines++
		case framer.resync && b == global.DesyncMarker:
			framer.Metrics.Resyncs.Add(1)
			framer.line = framer.line[:0]
			framer.overflow = false
		case len(framer.line) < framer.max:
			framer.line = append(framer.line, b)
		default:
			framer.overflow = true
		}
	}
	return
}

// Bytes accumulated for the unfinished line
func (framer *Framer) Pending() (count int) {
	count = len(framer.line)
	return
}

// Drops any unfinished line
func (framer *Framer) Reset() {
	framer.line = framer.line[:0]
	framer.overflow = false
}
