package midisend

import (
	"jacl/internal/global"
	"jacl/internal/metrics"
	"time"
)

func (daemon *Daemon) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()
	namespace := []string{global.NSMidiSend}

	add := func(name string, raw uint64, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   namespace,
			Type:        metrics.Counter,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     "count",
				Interval: interval,
			},
		})
	}

	add("rejected_lines", daemon.Metrics.Rejected.Load(), "Input lines that were not valid hex")
	add("empty_lines", daemon.Metrics.EmptyLines.Load(), "Input lines with no bytes, skipped")
	add("sent", daemon.Metrics.Sent.Load(), "Events written to the output port")
	add("write_failed", daemon.Metrics.WriteFailed.Load(), "Events the output port refused")

	if last := daemon.Metrics.LastSent.Load(); last > 0 {
		collection = append(collection, metrics.Metric{
			Name:        "last_sent_age",
			Description: "Time since the most recent event left the output port",
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
