package rangespec

import (
	"testing"

	"digitrange/digitseq"
)

func must(m Mask, err error) Mask {
	if err != nil {
		panic(err)
	}
	return m
}

func TestNewRejectsZeroMask(t *testing.T) {
	if _, err := New([]Mask{0}); err == nil {
		t.Fatal("expected error for zero mask")
	}
}

func TestNewAllowsEmpty(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil): %v", err)
	}
	if r.Length() != 0 {
		t.Fatalf("Length() = %d, want 0", r.Length())
	}
	if r.String() != "" {
		t.Fatalf("String() = %q, want empty", r.String())
	}
}

func TestStringRoundTrip(t *testing.T) {
	r := MustParse("xx[1-3]5")
	if r.String() != "xx[1-3]5" {
		t.Fatalf("String() = %q, want xx[1-3]5", r.String())
	}
}

func TestMinMax(t *testing.T) {
	r := MustParse("[2-4]x7")
	if got := r.Min().String(); got != "207" {
		t.Fatalf("Min() = %q, want 207", got)
	}
	if got := r.Max().String(); got != "497" {
		t.Fatalf("Max() = %q, want 497", got)
	}
}

func TestSequenceCount(t *testing.T) {
	r := MustParse("[2-4]x7")
	if got := r.SequenceCount(); got != 3*10*1 {
		t.Fatalf("SequenceCount() = %d, want %d", got, 3*10*1)
	}
}

func TestMatches(t *testing.T) {
	r := MustParse("[2-4]x7")
	if !r.Matches(digitseq.MustNew("307")) {
		t.Fatal("expected 307 to match")
	}
	if r.Matches(digitseq.MustNew("107")) {
		t.Fatal("did not expect 107 to match")
	}
	if r.Matches(digitseq.MustNew("30")) {
		t.Fatal("did not expect wrong-length sequence to match")
	}
}

func TestExtendByMaskAndLength(t *testing.T) {
	r := MustParse("12")
	extended, err := r.ExtendByMask(AllDigits)
	if err != nil {
		t.Fatalf("ExtendByMask: %v", err)
	}
	if extended.String() != "12x" {
		t.Fatalf("ExtendByMask result = %q, want 12x", extended.String())
	}

	extended2, err := r.ExtendByLength(2, AllDigits)
	if err != nil {
		t.Fatalf("ExtendByLength: %v", err)
	}
	if extended2.String() != "12xx" {
		t.Fatalf("ExtendByLength result = %q, want 12xx", extended2.String())
	}
}

func TestFirstLast(t *testing.T) {
	r := MustParse("12345")
	first, err := r.First(2)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if first.String() != "12" {
		t.Fatalf("First(2) = %q, want 12", first.String())
	}
	last, err := r.Last(2)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if last.String() != "45" {
		t.Fatalf("Last(2) = %q, want 45", last.String())
	}
}

func TestGetPrefix(t *testing.T) {
	r := MustParse("12xxx")
	prefix := r.GetPrefix()
	if prefix.String() != "12" {
		t.Fatalf("GetPrefix() = %q, want 12", prefix.String())
	}

	allX := MustParse("xxx")
	if allX.GetPrefix().Length() != 0 {
		t.Fatalf("GetPrefix() of all-ALL spec should be length 0, got %d", allX.GetPrefix().Length())
	}
}

func TestAsRangesSingleInterval(t *testing.T) {
	r := MustParse("1[2-4]x")
	ranges := r.AsRanges()
	if len(ranges) != 1 {
		t.Fatalf("AsRanges() returned %d intervals, want 1", len(ranges))
	}
	if ranges[0].Lo.String() != "120" || ranges[0].Hi.String() != "149" {
		t.Fatalf("AsRanges() = [%s,%s], want [120,149]", ranges[0].Lo, ranges[0].Hi)
	}
}

func TestAsRangesNonTrailingNonAll(t *testing.T) {
	r := MustParse("[1-2][3-4]")
	ranges := r.AsRanges()
	if len(ranges) != 2 {
		t.Fatalf("AsRanges() returned %d intervals, want 2", len(ranges))
	}
}
