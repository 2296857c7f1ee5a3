// Helper types that deal with atomic variables and their values
package atomics

import (
	"math"
	"sync/atomic"
)

// Float32 is an atomic float32 stored as its IEEE-754 bit pattern.
// The zero value holds 0.0 and is ready to use.
type Float32 struct {
	bits atomic.Uint32
}

// Atomically stores value
func (f *Float32) Store(value float32) {
	f.bits.Store(math.Float32bits(value))
}

// Atomically loads the most recently stored value
func (f *Float32) Load() (value float32) {
	value = math.Float32frombits(f.bits.Load())
	return
}

// Atomically stores new value and returns the previous one
func (f *Float32) Swap(value float32) (old float32) {
	old = math.Float32frombits(f.bits.Swap(math.Float32bits(value)))
	return
}
