package spsc

import "testing"

// Allocator that tracks every node it hands out so tests can detect leaks,
// double frees and reads of freed payloads.
type trackingAllocator struct {
	t           *testing.T
	live        map[*Node]bool
	allocs      int
	frees       int
	doubleFrees int
}

const poisonByte byte = 0xEE

func newTrackingAllocator(t *testing.T) (alloc *trackingAllocator) {
	alloc = &trackingAllocator{t: t, live: make(map[*Node]bool)}
	return
}

func (a *trackingAllocator) Alloc(size int) (node *Node) {
	node = NewNode(size)
	a.live[node] = true
	a.allocs++
	return
}

func (a *trackingAllocator) Free(node *Node) {
	if !a.live[node] {
		a.doubleFrees++
		a.t.Errorf("double free of node %p", node)
		return
	}
	delete(a.live, node)
	for i := range node.payload {
		node.payload[i] = poisonByte
	}
	a.frees++
}

// Drains everything currently queued into copies
func drainAll(consumer *Consumer) (msgs [][]byte) {
	consumer.Drain(func(msg []byte) {
		msgs = append(msgs, append([]byte(nil), msg...))
	})
	return
}
