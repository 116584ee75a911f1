package ecs

import "testing"

func TestMaskSetGet(t *testing.T) {
	var m Mask
	if m.Get(10) {
		t.Fatalf("expected bit 10 unset initially")
	}
	m.Set(10, true)
	if !m.Get(10) {
		t.Fatalf("expected bit 10 set")
	}
	m.Set(10, false)
	if m.Get(10) {
		t.Fatalf("expected bit 10 cleared")
	}
}

func TestMaskContains(t *testing.T) {
	var a, b Mask
	a.Set(1, true)
	a.Set(2, true)
	b.Set(1, true)

	if !a.Contains(b) {
		t.Fatalf("expected a to contain b")
	}
	if a.Contains(Mask{}) == false {
		t.Fatalf("every mask contains the empty mask")
	}
	b.Set(5, true)
	if a.Contains(b) {
		t.Fatalf("expected a to not contain b once b gained bit 5")
	}
}

func TestMaskContainsEmpty(t *testing.T) {
	var empty Mask
	if !empty.Contains(Mask{}) {
		t.Fatalf("empty mask contains empty mask")
	}
	var other Mask
	other.Set(0, true)
	if empty.Contains(other) {
		t.Fatalf("empty mask must not contain a populated mask")
	}
}

func TestMaskEqual(t *testing.T) {
	var a, b Mask
	a.Set(200, true)
	b.Set(200, true)
	if !a.Equal(b) {
		t.Fatalf("expected equal masks")
	}
	b.Set(201, true)
	if a.Equal(b) {
		t.Fatalf("expected unequal masks")
	}
}

func TestMaskSerializeRoundTrip(t *testing.T) {
	var m Mask
	m.Set(0, true)
	m.Set(255, true)
	m.Set(128, true)

	bytes := m.Bytes()
	if len(bytes) != 256 {
		t.Fatalf("expected 256-byte serialization, got %d", len(bytes))
	}
	round := MaskFromBytes(bytes)
	if !m.Equal(round) {
		t.Fatalf("round-tripped mask differs from original")
	}
}

func TestMaskFill(t *testing.T) {
	var m Mask
	m.Fill(true)
	for i := 0; i < MaxComponents; i++ {
		if !m.Get(i) {
			t.Fatalf("bit %d expected set after Fill(true)", i)
		}
	}
	m.Fill(false)
	for i := 0; i < MaxComponents; i++ {
		if m.Get(i) {
			t.Fatalf("bit %d expected clear after Fill(false)", i)
		}
	}
}
