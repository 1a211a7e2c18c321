package factor

import "digitrange/dfa"

// mergeNode folds as much of candidate as strategy allows into factor,
// returning the updated factor and whatever of candidate could not be
// folded in (nil if all of it merged). The traversal follows the factor's
// shape: each candidate edge group is compared against the factor edges on
// the same digits and either descends, grafts, or falls back to the
// remainder.
//
// Termination never blocks a merge: "this path accepts here" has no edge
// structure to disagree about, so it always combines by OR into the merged
// node. Only edge masks can cause a partial overlap that aborts the merge
// for that branch and sends it back to the remainder.
func mergeNode(factor, candidate *dfa.Node, strategy Strategy) (merged *dfa.Node, remainder *dfa.Node) {
	if candidate == nil {
		return factor, nil
	}

	mergedTerminal := candidate.IsTerminal() || factor.IsTerminal()

	var mergedEdges [dfa.Digits]*dfa.Node
	for d := 0; d < dfa.Digits; d++ {
		if c, ok := factor.Edge(d); ok {
			mergedEdges[d] = c
		}
	}
	var remainderEdges [dfa.Digits]*dfa.Node
	haveRemainder := false

	factorGroups := factor.EdgeGroups()
	for _, g := range candidate.EdgeGroups() {
		switch strategy {
		case RequireEqualEdges:
			// Descend only on an exactly-equal factor edge; anything else —
			// disjoint, partial, subset — leaves the whole group unmerged.
			var equal *dfa.EdgeGroup
			for i := range factorGroups {
				if factorGroups[i].Mask == g.Mask {
					equal = &factorGroups[i]
					break
				}
			}
			if equal == nil {
				setDigits(&remainderEdges, g.Mask, g.Target)
				haveRemainder = true
				continue
			}
			childMerged, childRemainder := mergeNode(equal.Target, g.Target, strategy)
			setDigits(&mergedEdges, g.Mask, childMerged)
			if childRemainder != nil {
				setDigits(&remainderEdges, g.Mask, childRemainder)
				haveRemainder = true
			}

		case AllowEdgeSplitting:
			// Descend into every factor edge whose mask is a subset of the
			// candidate's; candidate digits no factor edge covers become a
			// fresh branch. A factor edge straddling the candidate mask's
			// boundary aborts the whole group.
			partial := false
			var subsets []dfa.EdgeGroup
			covered := uint16(0)
			for _, fg := range factorGroups {
				if fg.Mask&g.Mask == 0 {
					continue
				}
				if fg.Mask&^g.Mask != 0 {
					partial = true
					break
				}
				subsets = append(subsets, fg)
				covered |= fg.Mask
			}
			if partial {
				setDigits(&remainderEdges, g.Mask, g.Target)
				haveRemainder = true
				continue
			}
			for _, fg := range subsets {
				childMerged, childRemainder := mergeNode(fg.Target, g.Target, strategy)
				setDigits(&mergedEdges, fg.Mask, childMerged)
				if childRemainder != nil {
					setDigits(&remainderEdges, fg.Mask, childRemainder)
					haveRemainder = true
				}
			}
			if extra := g.Mask &^ covered; extra != 0 {
				setDigits(&mergedEdges, extra, g.Target)
			}
		}
	}

	merged = dfa.New(mergedTerminal, mergedEdges)
	if !haveRemainder {
		return merged, nil
	}
	return merged, dfa.New(false, remainderEdges)
}

func setDigits(edges *[dfa.Digits]*dfa.Node, mask uint16, target *dfa.Node) {
	for d := 0; d < dfa.Digits; d++ {
		if mask&(1<<uint(d)) != 0 {
			edges[d] = target
		}
	}
}
