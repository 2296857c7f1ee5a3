package rtbridge

import (
	"jacl/internal/metrics"
	"time"
)

func (bridge *Bridge) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw interface{}, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   bridge.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	add("value", float64(bridge.Get()), "value", metrics.Gauge, "Most recently published control value")
	add("sets", bridge.Metrics.Sets.Load(), "count", metrics.Counter, "Values published to the real-time side")
	add("rejected", bridge.Metrics.Rejected.Load(), "count", metrics.Counter, "Input lines or values refused")
	add("clamped", bridge.Metrics.Clamped.Load(), "count", metrics.Counter, "Values pulled back into range")
	return
}
