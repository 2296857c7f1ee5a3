package metrics

import (
	"fmt"
	"strings"
)

// Single line text rendering, e.g. "StdinToMidi/Queue/enqueued=42 count (counter)"
func (metric Metric) Format() (text string) {
	path := metric.Name
	if len(metric.Namespace) > 0 {
		path = strings.Join(metric.Namespace, "/") + "/" + metric.Name
	}

	text = fmt.Sprintf("%s=%v", path, metric.Value.Raw)
	if metric.Value.Unit != "" {
		text += " " + metric.Value.Unit
	}
	if metric.Type != "" {
		text += " (" + string(metric.Type) + ")"
	}
	return
}
