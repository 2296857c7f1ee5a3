package rtbridge

import (
	"jacl/internal/atomics"
	"sync/atomic"
)

const (
	ErrCodeBadFloat  = "JACL_BAD_FLOAT"
	ErrCodeNaN       = "JACL_NAN"
	ErrCodeNotFinite = "JACL_NOT_FINITE"
)

// Latest scalar value shared between the control thread (writer) and the
// real-time callback (reader). No ordering between successive writes is
// promised, only that the reader eventually sees the most recent one.
type Bridge struct {
	Namespace []string
	value     atomics.Float32
	Metrics   *MetricStorage
}

type MetricStorage struct {
	Sets     atomic.Uint64 // Values published
	Rejected atomic.Uint64 // Lines or values refused (parse failure, NaN, infinite)
	Clamped  atomic.Uint64 // Values pulled back into range before publishing
}
