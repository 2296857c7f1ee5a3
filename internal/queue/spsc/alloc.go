package spsc

// Source and sink of queue nodes. Both methods are only ever called from the
// producer side, so implementations need no synchronization.
type Allocator interface {
	// Returns a node whose payload has length size. Returning nil aborts the process.
	Alloc(size int) (node *Node)
	// Takes back a node no longer reachable by the consumer.
	Free(node *Node)
}

// Creates a detached node with a payload of the given length
func NewNode(size int) (node *Node) {
	node = &Node{payload: make([]byte, size)}
	return
}

// Message bytes held by the node
func (node *Node) Payload() (payload []byte) {
	payload = node.payload
	return
}

// Producer-side recycling allocator. Keeps up to Max freed nodes (and their
// payload capacity) for reuse; anything beyond is left to the garbage collector.
type FreeList struct {
	Max   int
	free  *Node
	count int
}

// Creates free list allocator retaining at most max nodes
func NewFreeList(max int) (list *FreeList) {
	list = &FreeList{Max: max}
	return
}

func (list *FreeList) Alloc(size int) (node *Node) {
	if list.free == nil {
		node = NewNode(size)
		return
	}

	node = list.free
	list.free = node.freeNext
	list.count--

	node.freeNext = nil
	node.next.Store(nil)
	if cap(node.payload) >= size {
		node.payload = node.payload[:size]
	} else {
		node.payload = make([]byte, size)
	}
	return
}

func (list *FreeList) Free(node *Node) {
	node.next.Store(nil)
	node.payload = node.payload[:0]
	if list.count >= list.Max {
		return
	}
	node.freeNext = list.free
	list.free = node
	list.count++
}
