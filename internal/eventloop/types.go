package eventloop

import (
	"context"
	"jacl/internal/framing"
	"jacl/internal/lifecycle"
	"sync/atomic"
)

// Control-thread loop multiplexing a shutdown request and one line-oriented
// input descriptor
type Loop struct {
	Namespace []string
	shutdown  *lifecycle.ShutdownSignal
	inputFD   int
	framer    *framing.Framer
	onLine    func(ctx context.Context, line []byte)
	AfterLine func(ctx context.Context) // Optional, runs after every onLine
	Metrics   *MetricStorage
}

type MetricStorage struct {
	Wakeups   atomic.Uint64 // Poll returns with at least one event
	Reads     atomic.Uint64 // Successful non-empty reads
	BytesRead atomic.Uint64
	Lines     atomic.Uint64 // Lines fully handled (handler and AfterLine returned)
	InputDone atomic.Bool   // Input reached end or failed and is no longer watched
}
