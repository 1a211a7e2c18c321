// Package lengths parses the ancillary length-set mini-format used to
// describe which digit-sequence lengths a phone-number range covers:
// comma-separated integers and "lo-hi" dash ranges, strictly ascending
// overall, e.g. "4,7-9,11".
package lengths

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses s into its sorted, deduplicated set of lengths. The input
// must be strictly ascending: each term's low bound must exceed the
// previous term's high bound, and each "lo-hi" term must have lo < hi (a
// single length is written "n", not "n-n").
func Parse(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("lengths: empty input")
	}
	terms := strings.Split(s, ",")
	var out []int
	prevHigh := -1
	for _, term := range terms {
		lo, hi, err := parseTerm(term)
		if err != nil {
			return nil, fmt.Errorf("lengths: %w (in %q)", err, s)
		}
		if lo <= prevHigh {
			return nil, fmt.Errorf("lengths: %q is out of order or overlapping (in %q)", term, s)
		}
		for n := lo; n <= hi; n++ {
			out = append(out, n)
		}
		prevHigh = hi
	}
	return out, nil
}

func parseTerm(term string) (lo, hi int, err error) {
	dash := strings.IndexByte(term, '-')
	if dash < 0 {
		n, err := strconv.Atoi(term)
		if err != nil || n < 1 {
			return 0, 0, fmt.Errorf("invalid length %q", term)
		}
		return n, n, nil
	}
	loStr, hiStr := term[:dash], term[dash+1:]
	lo, errLo := strconv.Atoi(loStr)
	hi, errHi := strconv.Atoi(hiStr)
	if errLo != nil || errHi != nil || lo < 1 || hi < 1 {
		return 0, 0, fmt.Errorf("invalid range %q", term)
	}
	if lo >= hi {
		return 0, 0, fmt.Errorf("non-ascending range %q", term)
	}
	return lo, hi, nil
}
