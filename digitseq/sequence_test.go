package digitseq

import "testing"

func TestNewAndString(t *testing.T) {
	d, err := New("0123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.String() != "0123" {
		t.Fatalf("String() = %q, want 0123", d.String())
	}
	if d.Length() != 4 {
		t.Fatalf("Length() = %d, want 4", d.Length())
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	if _, err := New("12a4"); err == nil {
		t.Fatal("expected error for non-digit input")
	}
	tooLong := ""
	for i := 0; i <= MaxLength; i++ {
		tooLong += "1"
	}
	if _, err := New(tooLong); err == nil {
		t.Fatal("expected error for over-long input")
	}
}

func TestCompareOrdersByLengthThenLex(t *testing.T) {
	a := MustNew("99")
	b := MustNew("100")
	if !a.Less(b) {
		t.Fatal("shorter sequence should sort before longer regardless of lexical value")
	}

	c := MustNew("12")
	d := MustNew("21")
	if !c.Less(d) {
		t.Fatal("equal length should compare lexicographically")
	}
}

func TestExtendBy(t *testing.T) {
	base := MustNew("12")
	suffix := MustNew("345")
	got := base.ExtendBy(suffix)
	if got.String() != "12345" {
		t.Fatalf("ExtendBy = %q, want 12345", got.String())
	}
}

func TestFirstLast(t *testing.T) {
	d := MustNew("123456")
	if got := d.First(3).String(); got != "123" {
		t.Fatalf("First(3) = %q, want 123", got)
	}
	if got := d.Last(3).String(); got != "456" {
		t.Fatalf("Last(3) = %q, want 456", got)
	}
	if got := d.First(0).String(); got != "" {
		t.Fatalf("First(0) = %q, want empty", got)
	}
}

func TestNextPrevious(t *testing.T) {
	d := MustNew("128")
	next, ok := d.Next()
	if !ok || next.String() != "129" {
		t.Fatalf("Next() = %q,%v want 129,true", next.String(), ok)
	}

	prev, ok := d.Previous()
	if !ok || prev.String() != "127" {
		t.Fatalf("Previous() = %q,%v want 127,true", prev.String(), ok)
	}
}

func TestNextOverflowReturnsFalse(t *testing.T) {
	max := Max(3)
	if max.String() != "999" {
		t.Fatalf("Max(3) = %q, want 999", max.String())
	}
	if _, ok := max.Next(); ok {
		t.Fatal("Next() on max value should report overflow via ok=false")
	}
}

func TestPreviousUnderflowReturnsFalse(t *testing.T) {
	zero := Zero(3)
	if zero.String() != "000" {
		t.Fatalf("Zero(3) = %q, want 000", zero.String())
	}
	if _, ok := zero.Previous(); ok {
		t.Fatal("Previous() on zero value should report underflow via ok=false")
	}
}

func TestDigitPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range Digit index")
		}
	}()
	MustNew("12").Digit(5)
}
