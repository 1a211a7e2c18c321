package sparse

import "testing"

func TestIDSetInsertContains(t *testing.T) {
	s := NewIDSet(8)
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	s.Insert(3)
	s.Insert(5)
	s.Insert(3) // duplicate no-op

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	if !s.Contains(3) || !s.Contains(5) {
		t.Fatal("expected 3 and 5 to be present")
	}
	if s.Contains(4) {
		t.Fatal("4 should not be present")
	}
	if s.Contains(100) {
		t.Fatal("out-of-range value should not be contained")
	}
}

func TestIDSetRemove(t *testing.T) {
	s := NewIDSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)
	s.Remove(2)

	if s.Contains(2) {
		t.Fatal("2 should have been removed")
	}
	if !s.Contains(1) || !s.Contains(3) {
		t.Fatal("removing 2 should not disturb 1 or 3")
	}
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}

	s.Remove(2) // no-op
	if s.Size() != 2 {
		t.Fatal("removing an absent value should be a no-op")
	}
}

func TestIDSetClear(t *testing.T) {
	s := NewIDSet(4)
	s.Insert(0)
	s.Insert(1)
	s.Clear()

	if !s.IsEmpty() {
		t.Fatal("expected set to be empty after Clear")
	}
	if s.Contains(0) {
		t.Fatal("Clear should remove all membership")
	}
}

func TestIDSetValuesHoldsInserted(t *testing.T) {
	s := NewIDSet(8)
	for _, v := range []uint32{7, 2, 5} {
		s.Insert(v)
	}
	got := map[uint32]bool{}
	for _, v := range s.Values() {
		got[v] = true
	}
	for _, want := range []uint32{7, 2, 5} {
		if !got[want] {
			t.Fatalf("Values() missing %d", want)
		}
	}
}
