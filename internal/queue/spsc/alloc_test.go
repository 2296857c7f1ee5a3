package spsc

import "testing"

func TestFreeList_Reuse(t *testing.T) {
	list := NewFreeList(2)

	first := list.Alloc(16)
	second := list.Alloc(4)
	third := list.Alloc(4)
	if len(first.Payload()) != 16 || len(second.Payload()) != 4 {
		t.Fatalf("unexpected payload sizes %d %d", len(first.Payload()), len(second.Payload()))
	}

	list.Free(first)
	list.Free(second)
	list.Free(third) // over Max, dropped
	if list.count != 2 {
		t.Fatalf("expected 2 retained nodes, got %d", list.count)
	}

	// Most recently freed comes back first and keeps its capacity
	reused := list.Alloc(3)
	if reused != second {
		t.Fatalf("expected most recently retained node to be reused")
	}
	if len(reused.Payload()) != 3 {
		t.Fatalf("expected payload length 3, got %d", len(reused.Payload()))
	}
	if reused.next.Load() != nil || reused.freeNext != nil {
		t.Fatalf("reused node carries stale links")
	}

	grown := list.Alloc(64)
	if grown != first {
		t.Fatalf("expected remaining retained node to be reused")
	}
	if len(grown.Payload()) != 64 {
		t.Fatalf("expected payload grown to 64, got %d", len(grown.Payload()))
	}
	if list.count != 0 {
		t.Fatalf("expected empty free list, got %d", list.count)
	}
}

func TestFreeList_ZeroMax(t *testing.T) {
	list := NewFreeList(0)
	node := list.Alloc(8)
	list.Free(node)
	if list.count != 0 {
		t.Fatalf("expected nothing retained, got %d", list.count)
	}
	if fresh := list.Alloc(8); fresh == node {
		t.Fatalf("expected a fresh node")
	}
}
