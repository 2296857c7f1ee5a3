// Central registry for storing time-based metrics and their associated data
package metrics

import "time"

// Creates new metric registry storage
func New() (new *Registry) {
	new = &Registry{
		metrics: make(map[time.Time]map[string]map[string]Metric),
	}
	return
}

// Collects from every collector into a single new time slice
func (registry *Registry) Snapshot(now time.Time, interval time.Duration, collectors ...Collector) (timeSlice time.Time) {
	timeSlice = registry.NewTimeSlice(now, interval)
	for _, collector := range collectors {
		if collector == nil {
			continue
		}
		registry.Add(timeSlice, collector.CollectMetrics(interval))
	}
	return
}
