package spsc

import "sync/atomic"

// One message plus its successor link.
// Nodes are owned by the producer from Alloc until Free.
type Node struct {
	next     atomic.Pointer[Node] // Published successor (nil = no more messages)
	payload  []byte
	freeNext *Node // Allocator-private free list link
}

// Single-producer single-consumer unbounded FIFO of byte messages.
//
// Producer side: Enqueue, Reclaim, Close (plus metrics/pressure helpers).
// Consumer side: only through the view returned by Consumer.
type Queue struct {
	Namespace []string
	head      atomic.Pointer[Node] // Last node the consumer finished with (current sentinel)
	tail      atomic.Pointer[Node] // Last node linked by the producer
	oldest    *Node                // Producer-owned: first node not yet returned to the allocator
	alloc     Allocator
	closed    bool
	pressured bool // Last CheckPressure result (producer-only)
	Metrics   *MetricStorage
}

// Read-only consumer view of a queue. Holds no nodes of its own.
type Consumer struct {
	queue *Queue
}
