package spsc

import (
	"jacl/internal/metrics"
	"sync/atomic"
	"time"
)

type MetricStorage struct {
	Enqueued  atomic.Uint64 // Messages appended by the producer
	Dequeued  atomic.Uint64 // Messages visited by the consumer
	Reclaimed atomic.Uint64 // Nodes returned to the allocator
	Bytes     atomic.Uint64 // Payload bytes held by nodes not yet reclaimed
}

func (queue *Queue) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   queue.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	add("depth", queue.Depth(), "count", metrics.Gauge, "Messages enqueued but not yet drained")
	add("byte_sum", queue.Metrics.Bytes.Load(), "bytes", metrics.Gauge, "Payload bytes held by unreclaimed nodes")
	add("enqueued", queue.Metrics.Enqueued.Load(), "count", metrics.Counter, "Total messages enqueued")
	add("dequeued", queue.Metrics.Dequeued.Load(), "count", metrics.Counter, "Total messages drained by the real-time consumer")
	add("reclaimed", queue.Metrics.Reclaimed.Load(), "count", metrics.Counter, "Total nodes returned to the allocator")
	return
}
