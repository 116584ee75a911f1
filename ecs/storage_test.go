package ecs

import "testing"

func TestComponentStorageAddGetRemove(t *testing.T) {
	s := NewComponentStorage[int](4)

	s.Add(0, 10)
	s.Add(1, 20)
	s.Add(2, 30)

	v, ok := s.Get(1)
	if !ok || *v != 20 {
		t.Fatalf("expected slot 1 == 20, got %v ok=%v", v, ok)
	}

	s.Remove(1)
	if _, ok := s.Get(1); ok {
		t.Fatalf("expected slot 1 removed")
	}
	// idempotent
	s.Remove(1)

	if got := s.liveCount(); got != 2 {
		t.Fatalf("expected live count 2, got %d", got)
	}
}

func TestComponentStorageFreeSlotReuse(t *testing.T) {
	s := NewComponentStorage[int](4)
	s.Add(0, 1)
	s.Add(1, 2)
	s.Remove(0)
	// Next add should reuse the freed dense slot rather than growing.
	before := len(s.dense)
	s.Add(2, 3)
	if len(s.dense) != before {
		t.Fatalf("expected dense length unchanged when reusing a free slot, was %d now %d", before, len(s.dense))
	}
	if got, ok := s.Get(2); !ok || *got != 3 {
		t.Fatalf("expected slot 2 == 3, got %v ok=%v", got, ok)
	}
}

func TestComponentStorageOverwrite(t *testing.T) {
	s := NewComponentStorage[int](2)
	s.Add(0, 1)
	s.Add(0, 2)
	v, ok := s.Get(0)
	if !ok || *v != 2 {
		t.Fatalf("expected overwritten value 2, got %v ok=%v", v, ok)
	}
	if got := s.liveCount(); got != 1 {
		t.Fatalf("overwrite must not consume a new dense slot, live count = %d", got)
	}
}

type zstMarker struct{}

func TestComponentStorageZeroSized(t *testing.T) {
	s := NewComponentStorage[zstMarker](1000)
	for i := 0; i < 1000; i++ {
		s.Add(i, zstMarker{})
	}
	if got := s.liveCount(); got != 1000 {
		t.Fatalf("expected 1000 live ZST entries, got %d", got)
	}
	if !s.Contains(500) {
		t.Fatalf("expected slot 500 to contain a ZST value")
	}
	_, ok := s.Get(500)
	if !ok {
		t.Fatalf("expected Get to report present for ZST slot")
	}
}

func TestComponentStorageGrow(t *testing.T) {
	s := NewComponentStorage[int](2)
	s.grow(10)
	if len(s.sparse) != 10 {
		t.Fatalf("expected sparse len 10, got %d", len(s.sparse))
	}
	for i := 2; i < 10; i++ {
		if s.Contains(i) {
			t.Fatalf("freshly grown slot %d should be empty", i)
		}
	}
}
