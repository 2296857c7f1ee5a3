package spsc

import (
	"bytes"
	"fmt"
	"jacl/internal/global"
	"testing"
)

func TestQueue_OrderWithInterleavedReclaim(t *testing.T) {
	type op struct {
		enqueue string // non-empty: enqueue these bytes
		reclaim bool
		drain   []string // non-nil: drain and expect exactly these
	}

	tests := []struct {
		name string
		ops  []op
	}{
		{
			name: "single message",
			ops: []op{
				{enqueue: "\x90\x40\x7f"},
				{drain: []string{"\x90\x40\x7f"}},
			},
		},
		{
			name: "reclaim between enqueues",
			ops: []op{
				{enqueue: "a"},
				{reclaim: true},
				{enqueue: "b"},
				{reclaim: true},
				{enqueue: "c"},
				{drain: []string{"a", "b", "c"}},
			},
		},
		{
			name: "drain reclaim drain",
			ops: []op{
				{enqueue: "a"},
				{enqueue: "b"},
				{drain: []string{"a", "b"}},
				{reclaim: true},
				{enqueue: "c"},
				{reclaim: true},
				{enqueue: "d"},
				{drain: []string{"c", "d"}},
				{reclaim: true},
				{drain: []string{}},
			},
		},
		{
			name: "empty queue drains nothing",
			ops: []op{
				{reclaim: true},
				{drain: []string{}},
				{reclaim: true},
				{drain: []string{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := newTrackingAllocator(t)
			queue := New([]string{global.NSTest}, alloc)
			consumer := queue.Consumer()

			for i, op := range tt.ops {
				switch {
				case op.enqueue != "":
					queue.Enqueue([]byte(op.enqueue))
				case op.reclaim:
					queue.Reclaim()
				case op.drain != nil:
					got := drainAll(consumer)
					if len(got) != len(op.drain) {
						t.Fatalf("op %d: expected %d messages, got %d (%q)", i, len(op.drain), len(got), got)
					}
					for j := range got {
						if string(got[j]) != op.drain[j] {
							t.Fatalf("op %d: message %d want %q, got %q", i, j, op.drain[j], got[j])
						}
					}
				}
			}

			if alloc.doubleFrees != 0 {
				t.Fatalf("expected no double frees, got %d", alloc.doubleFrees)
			}
		})
	}
}

func TestQueue_ManyMessagesWithReclaimEveryLine(t *testing.T) {
	alloc := newTrackingAllocator(t)
	queue := New([]string{global.NSTest}, alloc)
	consumer := queue.Consumer()

	const total = 500
	var want [][]byte
	for i := 0; i < total; i++ {
		msg := []byte(fmt.Sprintf("msg-%03d", i))
		want = append(want, msg)
		queue.Enqueue(msg)
		queue.Reclaim()
	}

	got := drainAll(consumer)
	if len(got) != total {
		t.Fatalf("expected %d messages, got %d", total, len(got))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Fatalf("message %d: want %q, got %q", i, want[i], got[i])
		}
	}

	// Everything before the final sentinel is now reclaimable
	if freed := queue.Reclaim(); freed != total {
		t.Fatalf("expected %d nodes freed, got %d", total, freed)
	}
	if len(alloc.live) != 1 {
		t.Fatalf("expected only the sentinel alive, got %d live nodes", len(alloc.live))
	}
}

func TestQueue_ReclaimIdempotent(t *testing.T) {
	alloc := newTrackingAllocator(t)
	queue := New([]string{global.NSTest}, alloc)
	consumer := queue.Consumer()

	queue.Enqueue([]byte{1})
	queue.Enqueue([]byte{2})
	queue.Enqueue([]byte{3})

	if got := len(drainAll(consumer)); got != 3 {
		t.Fatalf("expected 3 messages drained, got %d", got)
	}

	first := queue.Reclaim()
	second := queue.Reclaim()
	if first != 3 {
		t.Fatalf("expected first reclaim to free 3 nodes, got %d", first)
	}
	if second != 0 {
		t.Fatalf("expected second reclaim to free nothing, got %d", second)
	}
	if alloc.doubleFrees != 0 {
		t.Fatalf("expected zero double frees, got %d", alloc.doubleFrees)
	}

	// Head (last consumed node) is still alive and readable
	head := queue.head.Load()
	if !alloc.live[head] {
		t.Fatalf("current head was freed")
	}
	if !bytes.Equal(head.Payload(), []byte{3}) {
		t.Fatalf("head payload corrupted: %v", head.Payload())
	}
}

func TestQueue_ReclaimNeverPassesHead(t *testing.T) {
	alloc := newTrackingAllocator(t)
	queue := New([]string{global.NSTest}, alloc)
	consumer := queue.Consumer()

	queue.Enqueue([]byte("a"))
	queue.Enqueue([]byte("b"))

	// Nothing consumed yet: the sentinel is the head and must survive
	if freed := queue.Reclaim(); freed != 0 {
		t.Fatalf("expected no nodes freed before drain, got %d", freed)
	}

	got := drainAll(consumer)
	if len(got) != 2 || string(got[0]) != "a" || string(got[1]) != "b" {
		t.Fatalf("unexpected drain result %q", got)
	}
	for _, msg := range got {
		for _, b := range msg {
			if b == poisonByte {
				t.Fatalf("consumer observed freed payload %q", msg)
			}
		}
	}
}

func TestQueue_EmptyPayload(t *testing.T) {
	queue := New([]string{global.NSTest}, nil)
	consumer := queue.Consumer()

	queue.Enqueue(nil)
	queue.Enqueue([]byte{})

	var lengths []int
	consumer.Drain(func(msg []byte) {
		lengths = append(lengths, len(msg))
	})
	if len(lengths) != 2 || lengths[0] != 0 || lengths[1] != 0 {
		t.Fatalf("expected two empty messages, got lengths %v", lengths)
	}
}

func TestQueue_PayloadCopiedOnEnqueue(t *testing.T) {
	queue := New([]string{global.NSTest}, nil)
	consumer := queue.Consumer()

	buf := []byte{0x90, 0x40, 0x7f}
	queue.Enqueue(buf)
	buf[0] = 0x80

	got := drainAll(consumer)
	if len(got) != 1 || !bytes.Equal(got[0], []byte{0x90, 0x40, 0x7f}) {
		t.Fatalf("expected original bytes, got %v", got)
	}
}

func TestQueue_CloseFreesEverything(t *testing.T) {
	alloc := newTrackingAllocator(t)
	queue := New([]string{global.NSTest}, alloc)
	consumer := queue.Consumer()

	queue.Enqueue([]byte("drained"))
	drainAll(consumer)
	queue.Enqueue([]byte("pending-1"))
	queue.Enqueue([]byte("pending-2"))

	freed := queue.Close()
	if freed != 4 {
		t.Fatalf("expected 4 nodes freed (sentinel + 3), got %d", freed)
	}
	if len(alloc.live) != 0 {
		t.Fatalf("expected zero live nodes after close, got %d", len(alloc.live))
	}
	if alloc.allocs != alloc.frees {
		t.Fatalf("allocs %d != frees %d", alloc.allocs, alloc.frees)
	}
	if queue.Metrics.Bytes.Load() != 0 {
		t.Fatalf("expected zero outstanding bytes, got %d", queue.Metrics.Bytes.Load())
	}

	// Idempotent, and a detached consumer sees nothing
	if again := queue.Close(); again != 0 {
		t.Fatalf("expected second close to free nothing, got %d", again)
	}
	if n := consumer.Drain(func([]byte) {}); n != 0 {
		t.Fatalf("expected drain after close to visit nothing, got %d", n)
	}
	if n := queue.Reclaim(); n != 0 {
		t.Fatalf("expected reclaim after close to free nothing, got %d", n)
	}
}

func TestQueue_EnqueueAfterClosePanics(t *testing.T) {
	queue := New([]string{global.NSTest}, nil)
	queue.Close()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on enqueue after close")
		}
	}()
	queue.Enqueue([]byte{1})
}

type nilAllocator struct{ remaining int }

func (a *nilAllocator) Alloc(size int) (node *Node) {
	if a.remaining == 0 {
		return
	}
	a.remaining--
	node = NewNode(size)
	return
}

func (a *nilAllocator) Free(node *Node) {}

func TestQueue_AllocationFailurePanics(t *testing.T) {
	queue := New([]string{global.NSTest}, &nilAllocator{remaining: 1}) // sentinel only

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when allocator returns nil")
		}
	}()
	queue.Enqueue([]byte{1})
}

func TestQueue_MetricsAndDepth(t *testing.T) {
	queue := New([]string{global.NSMidiSend}, nil)
	consumer := queue.Consumer()

	queue.Enqueue([]byte{1, 2, 3})
	queue.Enqueue([]byte{4, 5})
	if depth := queue.Depth(); depth != 2 {
		t.Fatalf("expected depth 2, got %d", depth)
	}
	if held := queue.Metrics.Bytes.Load(); held != 5 {
		t.Fatalf("expected 5 bytes held, got %d", held)
	}

	consumer.Drain(func([]byte) {})
	queue.Reclaim()

	if depth := queue.Depth(); depth != 0 {
		t.Fatalf("expected depth 0, got %d", depth)
	}
	// Last consumed node stays as sentinel until the next pass
	if held := queue.Metrics.Bytes.Load(); held != 2 {
		t.Fatalf("expected 2 bytes held by sentinel, got %d", held)
	}

	collected := queue.CollectMetrics(0)
	values := make(map[string]interface{})
	for _, metric := range collected {
		values[metric.Name] = metric.Value.Raw
		if len(metric.Namespace) != 2 || metric.Namespace[1] != global.NSQueue {
			t.Fatalf("unexpected namespace %v", metric.Namespace)
		}
	}
	if values["enqueued"] != uint64(2) || values["dequeued"] != uint64(2) || values["reclaimed"] != uint64(2) {
		t.Fatalf("unexpected counters %v", values)
	}
}
