// Lock-free unbounded single-producer single-consumer message queue with
// deferred, producer-side reclamation.
//
// A permanent sentinel node anchors the list: the queue is empty exactly when
// the sentinel has no successor. Enqueue swaps the new node into the tail slot
// and then stores it as the previous tail's successor; that store is the
// publication point for the payload. The consumer only follows successor links
// and finally publishes the last node it read as the new head (sentinel). The
// producer frees nodes strictly before that head.
package spsc

import "jacl/internal/global"

// Creates a new queue holding only its sentinel node.
// A nil allocator selects a FreeList retaining up to 256 nodes.
func New(namespace []string, alloc Allocator) (new *Queue) {
	if alloc == nil {
		alloc = NewFreeList(256)
	}

	sentinel := alloc.Alloc(0)
	if sentinel == nil {
		panic("spsc: sentinel allocation failed")
	}

	new = &Queue{
		Namespace: append(append([]string(nil), namespace...), global.NSQueue),
		oldest:    sentinel,
		alloc:     alloc,
		Metrics:   &MetricStorage{},
	}
	new.head.Store(sentinel)
	new.tail.Store(sentinel)
	return
}

// Returns the consumer view. Exactly one goroutine may drain through it.
func (queue *Queue) Consumer() (consumer *Consumer) {
	consumer = &Consumer{queue: queue}
	return
}

// Producer only. Copies payload into a new node and appends it. Never blocks.
// Panics when the allocator cannot supply a node or the queue is closed.
func (queue *Queue) Enqueue(payload []byte) {
	if queue.closed {
		panic("spsc: enqueue on closed queue")
	}

	node := queue.alloc.Alloc(len(payload))
	if node == nil {
		panic("spsc: node allocation failed")
	}
	copy(node.payload, payload)
	node.next.Store(nil)

	// Swap then link: the consumer never sees this node before the link store
	prev := queue.tail.Swap(node)
	prev.next.Store(node)

	queue.Metrics.Enqueued.Add(1)
	queue.Metrics.Bytes.Add(uint64(len(node.payload)))
}

// Consumer only. Visits every message currently linked, in enqueue order, then
// publishes the last visited node as head. The payload slice must not be
// retained or modified after visit returns. Never blocks or allocates.
func (consumer *Consumer) Drain(visit func(msg []byte)) (count int) {
	queue := consumer.queue

	node := queue.head.Load()
	if node == nil {
		return // closed
	}
	for {
		next := node.next.Load()
		if next == nil {
			break
		}
		visit(next.payload)
		node = next
		count++
	}

	if count > 0 {
		queue.head.Store(node)
		queue.Metrics.Dequeued.Add(uint64(count))
	}
	return
}

// Producer only. Returns every node strictly before the consumer's current head
// to the allocator. Safe to call at any time; a second call without an
// intervening Drain frees nothing.
func (queue *Queue) Reclaim() (freed int) {
	if queue.closed {
		return
	}

	head := queue.head.Load()
	node := queue.oldest
	queue.oldest = head

	for node != head {
		next := node.next.Load()
		queue.release(node)
		node = next
		freed++
	}

	if freed > 0 {
		queue.Metrics.Reclaimed.Add(uint64(freed))
	}
	return
}

// Producer only, after the consumer has been detached for good.
// Frees every node, sentinel included. Idempotent.
func (queue *Queue) Close() (freed int) {
	if queue.closed {
		return
	}
	queue.closed = true

	node := queue.oldest
	queue.oldest = nil
	queue.head.Store(nil)
	queue.tail.Store(nil)

	for node != nil {
		next := node.next.Load()
		queue.release(node)
		node = next
		freed++
	}

	queue.Metrics.Reclaimed.Add(uint64(freed))
	return
}

// Number of messages enqueued but not yet drained
func (queue *Queue) Depth() (depth uint64) {
	dequeued := queue.Metrics.Dequeued.Load()
	enqueued := queue.Metrics.Enqueued.Load()
	if enqueued > dequeued {
		depth = enqueued - dequeued
	}
	return
}

// Hands node back to the allocator, adjusting outstanding byte count
func (queue *Queue) release(node *Node) {
	size := uint64(len(node.payload))
	if size > 0 {
		queue.Metrics.Bytes.Add(^(size - 1))
	}
	queue.alloc.Free(node)
}
