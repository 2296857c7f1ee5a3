package session

import (
	"context"
	"jacl/internal/audio"
	"jacl/internal/lifecycle"
	"jacl/internal/metrics"
	"sync"
	"time"
)

// Opens a named client on some audio backend
type Opener func(name string) (client audio.Client, err error)

type Config struct {
	ClientName     string
	Open           Opener
	HandleSignals  bool          // Route OS signals to the shutdown signal from Open onward
	MetricMaxAge   time.Duration // Snapshots older than this are pruned on report
	RestoreTTYLine bool          // Write a newline to the controlling terminal on close
}

// Pieces every client program shares: the audio client, the shutdown
// request, signal handling and metric reporting.
type Session struct {
	Namespace []string
	cfg       Config
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mutex     sync.Mutex // Guards collectors

	Client   audio.Client
	Shutdown *lifecycle.ShutdownSignal
	Registry *metrics.Registry

	collectors []metrics.Collector
	startedAt  time.Time
	closed     bool
}
