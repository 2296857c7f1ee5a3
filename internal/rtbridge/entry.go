// Atomic last-value bridge from the line-oriented control input to the
// real-time audio callback.
package rtbridge

import (
	"context"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"math"

	"github.com/agilira/go-errors"
)

// Creates a bridge holding initial
func New(namespace []string, initial float32) (new *Bridge) {
	new = &Bridge{
		Namespace: append(append([]string(nil), namespace...), global.NSBridge),
		Metrics:   &MetricStorage{},
	}
	new.value.Store(initial)
	return
}

// Real-time side. Wait-free single atomic load.
func (bridge *Bridge) Get() (value float32) {
	value = bridge.value.Load()
	return
}

// Publishes value for the real-time side. Non-finite values are refused and
// the previous value stays in effect. When built with the clamp tag, values
// outside [0, 1] are replaced by the nearest bound.
func (bridge *Bridge) Set(ctx context.Context, value float32) (err error) {
	if math.IsNaN(float64(value)) {
		bridge.Metrics.Rejected.Add(1)
		err = errors.New(ErrCodeNaN, "value cannot be NaN")
		return
	}
	if math.IsInf(float64(value), 0) {
		bridge.Metrics.Rejected.Add(1)
		err = errors.New(ErrCodeNotFinite, "value must be finite")
		return
	}

	if ClampEnabled {
		var clamped bool
		value, clamped = clamp(value)
		if clamped {
			bridge.Metrics.Clamped.Add(1)
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"value clamped to %g\n", value)
		}
	}

	previous := bridge.value.Swap(value)
	bridge.Metrics.Sets.Add(1)
	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "published value %g (was %g)\n", value, previous)
	return
}

// Parses one control line and publishes it. Failures are logged and returned;
// the previous value is kept.
func (bridge *Bridge) HandleLine(ctx context.Context, line []byte) (err error) {
	value, err := ParseScalar(line)
	if err != nil {
		bridge.Metrics.Rejected.Add(1)
		logctx.LogError(ctx, err)
		return
	}

	err = bridge.Set(ctx, value)
	if err != nil {
		logctx.LogError(ctx, err)
		return
	}
	return
}

// Restricts value to the configured bounds
func clamp(value float32) (result float32, clamped bool) {
	switch {
	case value < global.ClampMin:
		result = global.ClampMin
		clamped = true
	case value > global.ClampMax:
		result = global.ClampMax
		clamped = true
	default:
		result = value
	}
	return
}
