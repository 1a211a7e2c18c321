package rangespec

import "testing"

func TestSingleDigitMask(t *testing.T) {
	m, err := SingleDigitMask(5)
	if err != nil {
		t.Fatalf("SingleDigitMask: %v", err)
	}
	if m.String() != "5" {
		t.Fatalf("String() = %q, want 5", m.String())
	}
	if _, err := SingleDigitMask(10); err == nil {
		t.Fatal("expected error for digit out of range")
	}
}

func TestRangeMask(t *testing.T) {
	m, err := RangeMask(2, 4)
	if err != nil {
		t.Fatalf("RangeMask: %v", err)
	}
	if m.String() != "[2-4]" {
		t.Fatalf("String() = %q, want [2-4]", m.String())
	}
	if _, err := RangeMask(4, 2); err == nil {
		t.Fatal("expected error for lo > hi")
	}
}

func TestMaskStringAllDigits(t *testing.T) {
	if AllDigits.String() != "x" {
		t.Fatalf("AllDigits.String() = %q, want x", AllDigits.String())
	}
}

func TestMaskStringMultipleRuns(t *testing.T) {
	m := Mask(0)
	for _, d := range []int{1, 2, 5, 6, 7} {
		bit, _ := SingleDigitMask(d)
		m |= bit
	}
	if got := m.String(); got != "[125-7]" {
		t.Fatalf("String() = %q, want [125-7]", got)
	}
}

func TestPopcount(t *testing.T) {
	m, _ := RangeMask(0, 9)
	if popcount(m) != 10 {
		t.Fatalf("popcount(AllDigits) = %d, want 10", popcount(m))
	}
	single, _ := SingleDigitMask(3)
	if popcount(single) != 1 {
		t.Fatalf("popcount(single) = %d, want 1", popcount(single))
	}
}

func TestLowestHighestDigit(t *testing.T) {
	m, _ := RangeMask(2, 7)
	if lowestDigit(m) != 2 {
		t.Fatalf("lowestDigit = %d, want 2", lowestDigit(m))
	}
	if highestDigit(m) != 7 {
		t.Fatalf("highestDigit = %d, want 7", highestDigit(m))
	}
}

func TestContiguousRuns(t *testing.T) {
	m := Mask(0)
	for _, d := range []int{1, 2, 5, 6, 7} {
		bit, _ := SingleDigitMask(d)
		m |= bit
	}
	runs := contiguousRuns(m)
	want := [][2]int{{1, 2}, {5, 7}}
	if len(runs) != len(want) {
		t.Fatalf("contiguousRuns = %v, want %v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("contiguousRuns[%d] = %v, want %v", i, runs[i], want[i])
		}
	}
}
