package framing

import (
	"jacl/internal/metrics"
	"time"
)

func newMetric(namespace []string, recordTime time.Time, interval time.Duration, name string, raw uint64, description string) (metric metrics.Metric) {
	metric = metrics.Metric{
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
	}
	return
}

func (framer *Framer) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	now := time.Now()
	collection = []metrics.Metric{
		newMetric(framer.Namespace, now, interval, "lines", framer.Metrics.Lines.Load(), "Completed input lines"),
		newMetric(framer.Namespace, now, interval, "truncated", framer.Metrics.Truncated.Load(), "Input lines cut at the length bound"),
		newMetric(framer.Namespace, now, interval, "resyncs", framer.Metrics.Resyncs.Load(), "Desync markers honored"),
	}
	return
}

func (writer *LineWriter) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	now := time.Now()
	collection = []metrics.Metric{
		newMetric(writer.Namespace, now, interval, "lines", writer.Metrics.Lines.Load(), "Hex lines written in full"),
		newMetric(writer.Namespace, now, interval, "torn_writes", writer.Metrics.Torn.Load(), "Hex lines cut short by the output"),
		newMetric(writer.Namespace, now, interval, "markers", writer.Metrics.Markers.Load(), "Desync markers written"),
		newMetric(writer.Namespace, now, interval, "abandoned_blocks", writer.Metrics.Abandoned.Load(), "Cycles whose remaining output was dropped"),
	}
	return
}
