package spsc

import (
	"context"
	"jacl/internal/global"
	"jacl/internal/logctx"

	"github.com/pbnjay/memory"
)

// Producer only. Warns when unreclaimed nodes hold more than
// global.QueuePressurePercent of free system memory, which means the consumer
// has stopped draining (client inactive or callback stalled). Logs once per
// crossing in either direction. Enqueue is never refused.
func (queue *Queue) CheckPressure(ctx context.Context) (pressured bool) {
	held := queue.Metrics.Bytes.Load()
	pressured = overThreshold(held, memory.FreeMemory())

	if pressured && !queue.pressured {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Undrained messages hold %d bytes (%d pending), real-time side is not consuming\n",
			held, queue.Depth())
	} else if !pressured && queue.pressured {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
			"Queue backlog back under memory threshold (%d bytes)\n", held)
	}
	queue.pressured = pressured
	return
}

// Zero free memory means the platform could not report it
func overThreshold(held, free uint64) (over bool) {
	if free == 0 {
		return
	}
	over = held > free/100*global.QueuePressurePercent
	return
}
