package rangespec

import (
	"fmt"
	"sort"

	"digitrange/digitseq"
)

// DecomposeRange implements canonical block decomposition: given a
// non-empty contiguous range [lo, hi] of equal-length DigitSequences, it
// emits a minimal ordered list of specifications whose union is the
// range, sorted by Min().
func DecomposeRange(lo, hi digitseq.DigitSequence) ([]RangeSpecification, error) {
	if lo.Length() != hi.Length() {
		return nil, fmt.Errorf("%w: DecomposeRange requires equal-length endpoints, got %d and %d", ErrInvalidSpec, lo.Length(), hi.Length())
	}
	if hi.Less(lo) {
		return nil, fmt.Errorf("%w: DecomposeRange requires lo <= hi, got %s > %s", ErrInvalidSpec, lo, hi)
	}

	length := lo.Length()
	start, end := lo, hi

	var head, tail []RangeSpecification

	// Stage A: peel blocks off the head, walking the rightmost non-zero
	// digit of start leftward, while the upper-digit replacement does
	// not exceed hi.
	exhausted := false
	for !exhausted {
		pos := rightmostNonZero(start)
		if pos < 0 {
			break
		}
		blockMax := replaceFrom(start, pos, 9)
		if hi.Less(blockMax) {
			break
		}
		spec, err := blockSpec(start, pos, start.Digit(pos), 9, length)
		if err != nil {
			return nil, err
		}
		head = append(head, spec)

		if blockMax.Equal(hi) {
			exhausted = true
			break
		}
		next, ok := blockMax.Next()
		if !ok {
			exhausted = true
			break
		}
		start = next
	}
	if exhausted {
		return sortedByMin(head), nil
	}

	// Stage B: peel blocks off the tail, walking the rightmost non-nine
	// digit of end leftward, while the lower-digit replacement does not
	// fall below start.
	for {
		pos := rightmostNonNine(end)
		if pos < 0 {
			break
		}
		blockMin := replaceFrom(end, pos, 0)
		if blockMin.Less(start) {
			break
		}
		spec, err := blockSpec(end, pos, 0, end.Digit(pos), length)
		if err != nil {
			return nil, err
		}
		tail = append(tail, spec)

		if blockMin.Equal(start) {
			exhausted = true
			break
		}
		prev, ok := blockMin.Previous()
		if !ok {
			exhausted = true
			break
		}
		end = prev
	}
	if exhausted {
		return sortedByMin(append(head, tail...)), nil
	}

	// Stage C: the middle. start <= end still holds (neither stage
	// exhausted the range), so emit one block at the highest position
	// where start and end still match.
	var mid []RangeSpecification
	if start.Equal(end) {
		masks := make([]Mask, 0, length)
		for i := 0; i < length; i++ {
			m, err := SingleDigitMask(start.Digit(i))
			if err != nil {
				return nil, err
			}
			masks = append(masks, m)
		}
		spec, err := New(masks)
		if err != nil {
			return nil, err
		}
		mid = append(mid, spec)
	} else {
		pos := commonPrefixLen(start, end)
		spec, err := blockSpec(start, pos, start.Digit(pos), end.Digit(pos), length)
		if err != nil {
			return nil, err
		}
		mid = append(mid, spec)
	}

	return sortedByMin(append(append(head, mid...), tail...)), nil
}

func sortedByMin(specs []RangeSpecification) []RangeSpecification {
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Min().Less(specs[j].Min())
	})
	return specs
}

// rightmostNonZero returns the highest position index whose digit is
// non-zero, or -1 if d is all zeros.
func rightmostNonZero(d digitseq.DigitSequence) int {
	for i := d.Length() - 1; i >= 0; i-- {
		if d.Digit(i) != 0 {
			return i
		}
	}
	return -1
}

// rightmostNonNine returns the highest position index whose digit is not
// 9, or -1 if d is all nines.
func rightmostNonNine(d digitseq.DigitSequence) int {
	for i := d.Length() - 1; i >= 0; i-- {
		if d.Digit(i) != 9 {
			return i
		}
	}
	return -1
}

// replaceFrom returns d with every digit from position pos to the end
// replaced by digit.
func replaceFrom(d digitseq.DigitSequence, pos, digit int) digitseq.DigitSequence {
	s := d.First(pos)
	for i := pos; i < d.Length(); i++ {
		single := digitseq.MustNew(fmt.Sprintf("%d", digit))
		s = s.ExtendBy(single)
	}
	return s
}

// commonPrefixLen returns the length of the longest common prefix of a
// and b, which must have equal length.
func commonPrefixLen(a, b digitseq.DigitSequence) int {
	n := a.Length()
	for i := 0; i < n; i++ {
		if a.Digit(i) != b.Digit(i) {
			return i
		}
	}
	return n
}

// blockSpec builds the specification "<prefix><[lo-hi]><ALL...>" where
// prefix is d's digits before pos, the mask at pos covers lo..hi, and
// every position after pos is ALL.
func blockSpec(d digitseq.DigitSequence, pos, lo, hi, length int) (RangeSpecification, error) {
	masks := make([]Mask, 0, length)
	for i := 0; i < pos; i++ {
		m, err := SingleDigitMask(d.Digit(i))
		if err != nil {
			return RangeSpecification{}, err
		}
		masks = append(masks, m)
	}
	m, err := RangeMask(lo, hi)
	if err != nil {
		return RangeSpecification{}, err
	}
	masks = append(masks, m)
	for i := pos + 1; i < length; i++ {
		masks = append(masks, AllDigits)
	}
	return New(masks)
}

// DecomposeRangeSet canonicalizes an arbitrary set of closed
// DigitSequence intervals (possibly spanning multiple lengths, possibly
// overlapping or adjacent) into the minimal ordered list of
// RangeSpecifications whose union is exactly the set of sequences
// covered, sorted by Min(). Cross-length intervals are split at each
// "999…9 -> 100…0" boundary before decomposition.
func DecomposeRangeSet(intervals []digitseq.Interval) ([]RangeSpecification, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: DecomposeRangeSet requires a non-empty range set", ErrInvalidSpec)
	}

	var pieces []digitseq.Interval
	for _, iv := range intervals {
		split, err := splitByLength(iv)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, split...)
	}

	merged := mergeIntervals(pieces)

	var out []RangeSpecification
	for _, iv := range merged {
		specs, err := DecomposeRange(iv.Lo, iv.Hi)
		if err != nil {
			return nil, err
		}
		out = append(out, specs...)
	}
	return sortedByMin(out), nil
}

// splitByLength splits an interval whose endpoints may have different
// lengths into one same-length interval per length spanned.
func splitByLength(iv digitseq.Interval) ([]digitseq.Interval, error) {
	lo, hi := iv.Lo, iv.Hi
	if lo.Length() > hi.Length() || (lo.Length() == hi.Length() && hi.Less(lo)) {
		return nil, fmt.Errorf("%w: invalid interval %s..%s", ErrInvalidSpec, lo, hi)
	}
	if lo.Length() == hi.Length() {
		return []digitseq.Interval{iv}, nil
	}
	// A range spanning lengths walks like an ordinary carrying decimal
	// number: Max(n) ("999...9") steps directly to LeadOne(n+1)
	// ("100...0"), never through the leading-zero values of length n+1 —
	// those are already covered by their own shorter-length
	// representatives. See digitseq.LeadOne.
	var out []digitseq.Interval
	out = append(out, digitseq.Interval{Lo: lo, Hi: digitseq.Max(lo.Length())})
	for l := lo.Length() + 1; l < hi.Length(); l++ {
		out = append(out, digitseq.Interval{Lo: digitseq.LeadOne(l), Hi: digitseq.Max(l)})
	}
	out = append(out, digitseq.Interval{Lo: digitseq.LeadOne(hi.Length()), Hi: hi})
	return out, nil
}

// mergeIntervals sorts same-length-grouped intervals and merges any that
// are overlapping or exactly adjacent.
func mergeIntervals(in []digitseq.Interval) []digitseq.Interval {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Lo.Length() != in[j].Lo.Length() {
			return in[i].Lo.Length() < in[j].Lo.Length()
		}
		return in[i].Lo.Less(in[j].Lo)
	})
	var out []digitseq.Interval
	for _, iv := range in {
		if len(out) == 0 {
			out = append(out, iv)
			continue
		}
		last := &out[len(out)-1]
		if last.Lo.Length() == iv.Lo.Length() && !iv.Lo.Less(last.Lo) {
			adjacentOrOverlap := !last.Hi.Less(iv.Lo)
			if !adjacentOrOverlap {
				if next, ok := last.Hi.Next(); ok && next.Equal(iv.Lo) {
					adjacentOrOverlap = true
				}
			}
			if adjacentOrOverlap {
				if last.Hi.Less(iv.Hi) {
					last.Hi = iv.Hi
				}
				continue
			}
		}
		out = append(out, iv)
	}
	return out
}
