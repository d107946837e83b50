package core

import (
	"fmt"
	"sort"
)

// Align is the broadcaster: it computes the ordered union of variable
// labels across the given groundings and returns, for each input, a
// view reshaped onto the combined shape so the inputs can be combined
// pointwise.
//
// The combined label order is first-seen order, except that every label
// belonging to an active diagonal group in ds contributes the group's
// shared axis at the first member's position; later members of the same
// group add no axis of their own. An input carrying two or more labels
// of one group is first index-aligned: only the diagonal slice of the
// would-be cross product is addressed, one axis of size n where
// position i names individual i of every member simultaneously.
//
// Missing labels become singleton axes expanded to the slot size, so
// every returned view has len(labels) leading axes of the returned
// sizes, followed by that input's own feature dimensions. The views
// share the input buffers; combinators materialize fresh outputs.
//
// ds may be nil for plain cross-product alignment. Conflicting axis
// sizes for one label are reported as ErrShapeMismatch.
func Align(ds *DiagSet, gs ...*Grounding) (labels []string, sizes []int, views []*Tensor, err error) {
	pos := make(map[string]int)
	for _, g := range gs {
		if err := g.Validate(); err != nil {
			return nil, nil, nil, err
		}
		for i, lb := range g.labels {
			mapped := lb
			if grp := ds.Lookup(lb); grp != nil {
				mapped = grp.label
			}
			size := g.t.Dim(i)
			if j, ok := pos[mapped]; ok {
				if sizes[j] != size {
					return nil, nil, nil, fmt.Errorf("%w: axis %q has %d individuals here, %d elsewhere",
						ErrShapeMismatch, mapped, size, sizes[j])
				}
				continue
			}
			pos[mapped] = len(labels)
			labels = append(labels, mapped)
			sizes = append(sizes, size)
		}
	}

	views = make([]*Tensor, len(gs))
	for gi, g := range gs {
		t, err := alignOne(ds, g, labels, sizes, pos)
		if err != nil {
			return nil, nil, nil, err
		}
		views[gi] = t
	}
	return labels, sizes, views, nil
}

// alignOne reshapes a single grounding onto the combined shape.
func alignOne(ds *DiagSet, g *Grounding, labels []string, sizes []int, pos map[string]int) (*Tensor, error) {
	t := g.t
	mapped := make([]string, len(g.labels))
	for i, lb := range g.labels {
		if grp := ds.Lookup(lb); grp != nil {
			mapped[i] = grp.label
		} else {
			mapped[i] = lb
		}
	}

	// Collapse diagonal members: any two axes mapping to the same group
	// axis are merged into their index-aligned slice.
	for {
		ai, bi := firstDuplicate(mapped)
		if ai < 0 {
			break
		}
		merged, err := t.Diagonal(ai, bi)
		if err != nil {
			return nil, fmt.Errorf("diagonal collapse of %q: %w", mapped[ai], err)
		}
		t = merged
		mapped = append(mapped[:bi], mapped[bi+1:]...)
	}

	// Reorder the label axes into combined order, feature axes last.
	order := make([]int, 0, t.Rank())
	axes := make([]int, len(mapped))
	for i := range axes {
		axes[i] = i
	}
	sort.SliceStable(axes, func(a, b int) bool {
		return pos[mapped[axes[a]]] < pos[mapped[axes[b]]]
	})
	order = append(order, axes...)
	for d := len(mapped); d < t.Rank(); d++ {
		order = append(order, d)
	}
	t, err := t.Permute(order)
	if err != nil {
		return nil, err
	}

	// Insert singleton axes for combined labels this grounding lacks.
	present := make(map[string]bool, len(mapped))
	for _, lb := range mapped {
		present[lb] = true
	}
	cursor := 0
	for _, lb := range labels {
		if !present[lb] {
			t = t.InsertAxis(cursor)
		}
		cursor++
	}

	// Expand singletons to the combined slot sizes.
	target := make([]int, 0, t.Rank())
	target = append(target, sizes...)
	target = append(target, t.Shape()[len(labels):]...)
	return t.Expand(target)
}

func firstDuplicate(labels []string) (int, int) {
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			if labels[i] == labels[j] {
				return i, j
			}
		}
	}
	return -1, -1
}
