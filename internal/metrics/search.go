package metrics

import (
	"sort"
	"strings"
	"time"
)

// Supports exact match or prefix match. Empty query matches all.
func matchesNamespace(metricNS, queryNS []string) (matches bool) {
	if len(queryNS) > len(metricNS) {
		return
	}
	for i := range queryNS {
		if metricNS[i] != queryNS[i] {
			return
		}
	}
	matches = true
	return
}

// Returns all metrics matching given name and namespace prefix, oldest time slice first.
// If name is empty, returns all names.
// If namespacePrefix is empty, returns all namespaces.
// Optional: start/end time window filter (inclusive).
func (registry *Registry) Search(name string, namespacePrefix []string, start, end time.Time) (results []Metric) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	var timestamps []time.Time
	for ts := range registry.metrics {
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	for _, ts := range timestamps {
		var sliceResults []Metric
		for nsStr, metricsMap := range registry.metrics[ts] {
			if !matchesNamespace(strings.Split(nsStr, "/"), namespacePrefix) {
				continue
			}
			for metricName, metric := range metricsMap {
				if name == "" || metricName == name {
					sliceResults = append(sliceResults, metric)
				}
			}
		}

		// Stable output within a slice
		sort.Slice(sliceResults, func(i, j int) bool {
			nsI := strings.Join(sliceResults[i].Namespace, "/")
			nsJ := strings.Join(sliceResults[j].Namespace, "/")
			if nsI != nsJ {
				return nsI < nsJ
			}
			return sliceResults[i].Name < sliceResults[j].Name
		})
		results = append(results, sliceResults...)
	}
	return
}
