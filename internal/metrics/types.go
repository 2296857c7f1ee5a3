package metrics

import (
	"sync"
	"time"
)

type Registry struct {
	mu      sync.RWMutex
	metrics map[time.Time]map[string]map[string]Metric // key0=timestamp, key1=namespace, key2=name
}

type MetricType string

const (
	Counter MetricType = "counter" // always increasing
	Gauge   MetricType = "gauge"   // can go up/down
)

// Container for a metric and associated data
type Metric struct {
	Name        string // e.g. enqueued, torn_writes
	Description string
	Namespace   []string // e.g. "StdinToMidi/Queue"
	Value       MetricValue
	Type        MetricType
	Timestamp   time.Time // time when the metric was recorded
}

// Specific value of a metric
type MetricValue struct {
	Raw      interface{}   // uint64, float64
	Unit     string        // e.g., "bytes", "count"
	Interval time.Duration // measurement window (zero for process lifetime)
}

// Any component able to report its counters
type Collector interface {
	CollectMetrics(interval time.Duration) (collection []Metric)
}
