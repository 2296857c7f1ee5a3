package midirecv

import (
	"jacl/internal/global"
	"jacl/internal/metrics"
	"time"
)

func (daemon *Daemon) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()
	namespace := []string{global.NSMidiRecv}

	for _, entry := range []struct {
		name        string
		raw         uint64
		description string
	}{
		{"received", daemon.Metrics.Received.Load(), "Events seen on the input port"},
		{"dropped", daemon.Metrics.Dropped.Load(), "Events lost because output would not accept them"},
	} {
		collection = append(collection, metrics.Metric{
			Name:        entry.name,
			Description: entry.description,
			Namespace:   namespace,
			Type:        metrics.Counter,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      entry.raw,
				Unit:     "count",
				Interval: interval,
			},
		})
	}

	if last := daemon.Metrics.LastSeen.Load(); last > 0 {
		collection = append(collection, metrics.Metric{
			Name:        "last_event_age",
			Description: "Time since the most recent event arrived on the input port",
			Namespace:   namespace,
			Type:        metrics.Gauge,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      recordTime.Sub(time.Unix(0, last)).Seconds(),
				Unit:     "seconds",
				Interval: interval,
			},
		})
	}
	return
}
