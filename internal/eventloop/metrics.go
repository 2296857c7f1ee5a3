package eventloop

import (
	"jacl/internal/metrics"
	"time"
)

func (loop *Loop) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   loop.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	var inputDone uint64
	if loop.Metrics.InputDone.Load() {
		inputDone = 1
	}

	add("wakeups", loop.Metrics.Wakeups.Load(), "count", metrics.Counter, "Poll returns with pending events")
	add("reads", loop.Metrics.Reads.Load(), "count", metrics.Counter, "Input reads returning data")
	add("bytes_read", loop.Metrics.BytesRead.Load(), "bytes", metrics.Counter, "Input bytes consumed")
	add("lines", loop.Metrics.Lines.Load(), "count", metrics.Counter, "Lines handed to the handler")
	add("input_done", inputDone, "bool", metrics.Gauge, "Input closed and no longer watched")
	return
}
