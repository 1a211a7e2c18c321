// Package rangespec implements RangeSpecification: a single disjoint
// ordered set of equal-length digit patterns, one bit-mask per position,
// plus the canonical block-decomposition algorithm that turns an arbitrary
// contiguous DigitSequence range into a minimal ordered list of them.
package rangespec

import (
	"fmt"
	"strings"

	"digitrange/digitseq"
	"digitrange/internal/conv"
)

// MaxLength mirrors digitseq.MaxLength: no specification may describe
// sequences longer than 19 digits.
const MaxLength = digitseq.MaxLength

// RangeSpecification is an ordered sequence of per-position digit masks.
// It is immutable once constructed.
type RangeSpecification struct {
	masks []Mask
}

// New builds a RangeSpecification from an explicit mask list. A
// zero-length list is legal and denotes the specification matching only
// the empty DigitSequence. Returns an error if the list is too long or
// contains a zero mask.
func New(masks []Mask) (RangeSpecification, error) {
	if len(masks) > MaxLength {
		return RangeSpecification{}, &ParseError{
			Input: fmt.Sprintf("<%d masks>", len(masks)),
			Err:   fmt.Errorf("%w: length %d exceeds max %d", ErrInvalidSpec, len(masks), MaxLength),
		}
	}
	out := make([]Mask, len(masks))
	for i, m := range masks {
		if m == 0 {
			return RangeSpecification{}, &ParseError{
				Input: fmt.Sprintf("<%d masks>", len(masks)),
				Err:   fmt.Errorf("%w: zero mask at position %d", ErrInvalidSpec, i),
			}
		}
		out[i] = m
	}
	return RangeSpecification{masks: out}, nil
}

// Length returns the number of digit positions.
func (r RangeSpecification) Length() int {
	return len(r.masks)
}

// Mask returns the mask at position i.
func (r RangeSpecification) Mask(i int) Mask {
	return r.masks[i]
}

// Masks returns a copy of the underlying mask list. Callers must never see
// the internal slice: the specification is immutable.
func (r RangeSpecification) Masks() []Mask {
	out := make([]Mask, len(r.masks))
	copy(out, r.masks)
	return out
}

// String renders the canonical textual form: 'x' for an ALL position,
// the bare digit for a singleton, a bracket expression otherwise.
func (r RangeSpecification) String() string {
	var sb strings.Builder
	for _, m := range r.masks {
		sb.WriteString(m.String())
	}
	return sb.String()
}

// Min returns the lexicographically-lowest DigitSequence the
// specification matches.
func (r RangeSpecification) Min() digitseq.DigitSequence {
	s := ""
	for _, m := range r.masks {
		s += fmt.Sprintf("%d", lowestDigit(m))
	}
	return digitseq.MustNew(s)
}

// Max returns the lexicographically-highest DigitSequence the
// specification matches.
func (r RangeSpecification) Max() digitseq.DigitSequence {
	s := ""
	for _, m := range r.masks {
		s += fmt.Sprintf("%d", highestDigit(m))
	}
	return digitseq.MustNew(s)
}

// SequenceCount returns the number of distinct digit sequences the
// specification matches: the product of each position's popcount.
func (r RangeSpecification) SequenceCount() uint64 {
	var count uint64 = 1
	for _, m := range r.masks {
		count *= uint64(popcount(m))
	}
	return count
}

// Matches reports whether d is accepted by the specification.
func (r RangeSpecification) Matches(d digitseq.DigitSequence) bool {
	if d.Length() != len(r.masks) {
		return false
	}
	for i, m := range r.masks {
		if m&(1<<uint(d.Digit(i))) == 0 {
			return false
		}
	}
	return true
}

// ExtendByMask appends a new trailing position with the given mask.
func (r RangeSpecification) ExtendByMask(m Mask) (RangeSpecification, error) {
	return New(append(append([]Mask{}, r.masks...), m))
}

// ExtendByLength appends n trailing positions all carrying mask m.
func (r RangeSpecification) ExtendByLength(n int, m Mask) (RangeSpecification, error) {
	out := append([]Mask{}, r.masks...)
	for i := 0; i < n; i++ {
		out = append(out, m)
	}
	return New(out)
}

// First returns the length-n prefix specification.
func (r RangeSpecification) First(n int) (RangeSpecification, error) {
	if n < 0 || n > len(r.masks) {
		return RangeSpecification{}, &ParseError{
			Input: fmt.Sprintf("First(%d)", n),
			Err:   fmt.Errorf("%w: out of range for length %d", ErrInvalidSpec, len(r.masks)),
		}
	}
	return New(r.masks[:n])
}

// Last returns the length-n suffix specification.
func (r RangeSpecification) Last(n int) (RangeSpecification, error) {
	if n < 0 || n > len(r.masks) {
		return RangeSpecification{}, &ParseError{
			Input: fmt.Sprintf("Last(%d)", n),
			Err:   fmt.Errorf("%w: out of range for length %d", ErrInvalidSpec, len(r.masks)),
		}
	}
	return New(r.masks[len(r.masks)-n:])
}

// GetPrefix strips any trailing run of ALL masks, returning the shortest
// leading specification that determines the same prefix-constraint. A
// specification made entirely of ALL masks strips down to the zero-length
// specification (matches the empty sequence, i.e. "no constraint").
func (r RangeSpecification) GetPrefix() RangeSpecification {
	end := len(r.masks)
	for end > 0 && r.masks[end-1] == AllDigits {
		end--
	}
	out, _ := New(r.masks[:end])
	return out
}

// AsRanges decomposes the specification into a sorted list of disjoint
// contiguous DigitSequence intervals whose union is exactly the set of
// sequences the specification matches. A specification whose masks are
// all singleton digits except for one trailing contiguous run (the shape
// the decomposition algorithm in decompose.go always emits) yields a
// single interval; a hand-built specification with several independently
// non-trivial positions yields one interval per combination of non-final
// leading digit choices.
func (r RangeSpecification) AsRanges() []digitseq.Interval {
	return asRanges(r.masks, nil)
}

func asRanges(masks []Mask, prefix []uint8) []digitseq.Interval {
	if len(masks) == 0 {
		seq := buildSequence(prefix)
		return []digitseq.Interval{{Lo: seq, Hi: seq}}
	}
	mask := masks[0]
	rest := masks[1:]
	var out []digitseq.Interval
	for _, run := range contiguousRuns(mask) {
		if allDigits(rest) {
			lo := buildSequence(append(append([]uint8{}, prefix...), conv.IntToUint8(run[0])))
			hi := buildSequence(append(append([]uint8{}, prefix...), conv.IntToUint8(run[1])))
			lo = lo.ExtendBy(digitseq.Zero(len(rest)))
			hi = hi.ExtendBy(digitseq.Max(len(rest)))
			out = append(out, digitseq.Interval{Lo: lo, Hi: hi})
			continue
		}
		for d := run[0]; d <= run[1]; d++ {
			out = append(out, asRanges(rest, append(append([]uint8{}, prefix...), conv.IntToUint8(d)))...)
		}
	}
	return out
}

func allDigits(masks []Mask) bool {
	for _, m := range masks {
		if m != AllDigits {
			return false
		}
	}
	return true
}

func buildSequence(digits []uint8) digitseq.DigitSequence {
	var s strings.Builder
	for _, d := range digits {
		fmt.Fprintf(&s, "%d", d)
	}
	return digitseq.MustNew(s.String())
}
