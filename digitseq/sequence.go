// Package digitseq implements DigitSequence: a fixed-length decimal string
// with a total order and a contiguous domain over the full 19-digit space.
//
// A DigitSequence is the atomic value the rest of this module operates on:
// RangeSpecification describes sets of them, RangeTree and PrefixTree are
// automata that accept them, and the NFA/flattener pipeline ultimately
// produces a regular expression matching exactly the sequences a RangeTree
// accepts.
package digitseq

import (
	"fmt"
	"strings"

	"digitrange/internal/conv"
)

// MaxLength is the largest length a DigitSequence may have. 19 decimal
// digits fit in a single 64-bit integer and nothing in phone-number
// metadata needs more.
const MaxLength = 19

// DigitSequence is a fixed-length string over {0..9}, 0 <= length <= 19.
// The zero value is the empty sequence (length 0), which is the minimum
// value of the order.
type DigitSequence struct {
	length int
	digits [MaxLength]uint8
}

// New builds a DigitSequence from a string of ASCII digits.
func New(s string) (DigitSequence, error) {
	if len(s) > MaxLength {
		return DigitSequence{}, &ParseError{Input: s, Err: fmt.Errorf("%w: length %d exceeds max %d", ErrInvalidSequence, len(s), MaxLength)}
	}
	var d DigitSequence
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return DigitSequence{}, &ParseError{Input: s, Err: fmt.Errorf("%w: invalid digit %q at position %d", ErrInvalidSequence, c, i)}
		}
		d.digits[i] = c - '0'
	}
	d.length = len(s)
	return d, nil
}

// MustNew is like New but panics on invalid input. Intended for literal
// sequences embedded in code and tests.
func MustNew(s string) DigitSequence {
	d, err := New(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns the length-n sequence of all zero digits ("00...0"), the
// minimum value at that length.
func Zero(n int) DigitSequence {
	var d DigitSequence
	d.length = n
	return d
}

// Max returns the length-n sequence of all nine digits ("99...9"), the
// maximum value at that length.
func Max(n int) DigitSequence {
	var d DigitSequence
	d.length = n
	for i := 0; i < n; i++ {
		d.digits[i] = 9
	}
	return d
}

// Length returns the number of digits in the sequence.
func (d DigitSequence) Length() int {
	return d.length
}

// Digit returns the digit at position i (0-indexed from the left).
// Panics if i is out of range.
func (d DigitSequence) Digit(i int) int {
	if i < 0 || i >= d.length {
		panic(fmt.Sprintf("digitseq: index %d out of range for length %d", i, d.length))
	}
	return int(d.digits[conv.IntToUint8(i)])
}

// String renders the sequence as its decimal digit string.
func (d DigitSequence) String() string {
	var sb strings.Builder
	sb.Grow(d.length)
	for i := 0; i < d.length; i++ {
		sb.WriteByte('0' + d.digits[i])
	}
	return sb.String()
}

// Compare orders sequences first by length, then lexicographically.
// Returns -1, 0, or 1.
func (d DigitSequence) Compare(o DigitSequence) int {
	if d.length != o.length {
		if d.length < o.length {
			return -1
		}
		return 1
	}
	for i := 0; i < d.length; i++ {
		if d.digits[i] != o.digits[i] {
			if d.digits[i] < o.digits[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether d sorts strictly before o.
func (d DigitSequence) Less(o DigitSequence) bool {
	return d.Compare(o) < 0
}

// Equal reports value equality.
func (d DigitSequence) Equal(o DigitSequence) bool {
	return d == o
}

// ExtendBy appends suffix's digits to d, returning a new sequence of
// length d.Length()+suffix.Length(). Panics if the result would exceed
// MaxLength.
func (d DigitSequence) ExtendBy(suffix DigitSequence) DigitSequence {
	newLen := d.length + suffix.length
	if newLen > MaxLength {
		panic(fmt.Sprintf("digitseq: extended length %d exceeds max %d", newLen, MaxLength))
	}
	out := d
	for i := 0; i < suffix.length; i++ {
		out.digits[d.length+i] = suffix.digits[i]
	}
	out.length = newLen
	return out
}

// First returns the length-n prefix of d. Panics if n is out of [0, Length()].
func (d DigitSequence) First(n int) DigitSequence {
	if n < 0 || n > d.length {
		panic(fmt.Sprintf("digitseq: First(%d) out of range for length %d", n, d.length))
	}
	out := d
	out.length = n
	for i := n; i < MaxLength; i++ {
		out.digits[i] = 0
	}
	return out
}

// Last returns the length-n suffix of d. Panics if n is out of [0, Length()].
func (d DigitSequence) Last(n int) DigitSequence {
	if n < 0 || n > d.length {
		panic(fmt.Sprintf("digitseq: Last(%d) out of range for length %d", n, d.length))
	}
	var out DigitSequence
	out.length = n
	start := d.length - n
	for i := 0; i < n; i++ {
		out.digits[i] = d.digits[start+i]
	}
	return out
}

// Next returns the sequence one greater than d at the same length.
// Returns false if d is already the maximum value at its length
// ("99...9"); cross-length advancement is the caller's job (see
// RangeSpecification decomposition).
func (d DigitSequence) Next() (DigitSequence, bool) {
	out := d
	for i := d.length - 1; i >= 0; i-- {
		if out.digits[i] < 9 {
			out.digits[i]++
			return out, true
		}
		out.digits[i] = 0
	}
	return DigitSequence{}, false
}

// Previous returns the sequence one less than d at the same length.
// Returns false if d is already the minimum value ("00...0").
func (d DigitSequence) Previous() (DigitSequence, bool) {
	out := d
	for i := d.length - 1; i >= 0; i-- {
		if out.digits[i] > 0 {
			out.digits[i]--
			return out, true
		}
		out.digits[i] = 9
	}
	return DigitSequence{}, false
}

// LeadOne returns the length-n sequence "1" followed by n-1 zeros: the
// smallest length-n value not representable at a shorter length. Crossing
// from one length to the next in a numeric (carrying) range walks
// Max(n-1) ("999...9") directly to LeadOne(n) ("100...0"), skipping the
// length-n values that start with a leading zero — those already have a
// shorter-length representative. Panics if n < 1.
func LeadOne(n int) DigitSequence {
	if n < 1 {
		panic(fmt.Sprintf("digitseq: LeadOne(%d) requires n >= 1", n))
	}
	var d DigitSequence
	d.length = n
	d.digits[0] = 1
	return d
}

// Interval is a closed, contiguous range of equal-length DigitSequences
// [Lo, Hi]. Sorted disjoint Interval slices are the range-set view the
// rest of the module exchanges with callers.
type Interval struct {
	Lo, Hi DigitSequence
}
