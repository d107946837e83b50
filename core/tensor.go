package core

import (
	"fmt"
	"math"
)

// Tensor is a strided view over a float32 buffer. The zero-cost view
// operations (Expand, InsertAxis, Permute, Diagonal) share the backing
// buffer; Clone materializes an independently owned contiguous copy.
//
// Leading axes of a grounded tensor are indexed by variables, trailing
// axes are opaque feature dimensions. The tensor itself knows nothing
// about labels; that bookkeeping lives in Grounding.
type Tensor struct {
	data    []float32
	shape   []int
	strides []int
	offset  int
}

// New allocates a zero-filled contiguous tensor. New() with no
// dimensions yields a rank-0 scalar.
func New(shape ...int) *Tensor {
	size := 1
	for _, d := range shape {
		size *= d
	}
	return &Tensor{
		data:    make([]float32, size),
		shape:   append([]int(nil), shape...),
		strides: contiguousStrides(shape),
	}
}

// FromSlice wraps data as a contiguous tensor of the given shape. The
// slice is used directly, not copied; callers hand over ownership.
func FromSlice(data []float32, shape ...int) (*Tensor, error) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrShapeMismatch, d)
		}
		size *= d
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: %d values for shape %v (need %d)", ErrShapeMismatch, len(data), shape, size)
	}
	return &Tensor{
		data:    data,
		shape:   append([]int(nil), shape...),
		strides: contiguousStrides(shape),
	}, nil
}

// Scalar returns a rank-0 tensor holding v.
func Scalar(v float32) *Tensor {
	return &Tensor{data: []float32{v}}
}

// Full returns a tensor of the given shape with every element set to v.
func Full(v float32, shape ...int) *Tensor {
	t := New(shape...)
	for i := range t.data {
		t.data[i] = v
	}
	return t
}

func contiguousStrides(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = s
		s *= shape[d]
	}
	return strides
}

// Rank returns the number of axes.
func (t *Tensor) Rank() int { return len(t.shape) }

// Shape returns a copy of the dimension sizes.
func (t *Tensor) Shape() []int { return append([]int(nil), t.shape...) }

// Dim returns the size of axis d.
func (t *Tensor) Dim(d int) int { return t.shape[d] }

// Size returns the total element count.
func (t *Tensor) Size() int {
	size := 1
	for _, d := range t.shape {
		size *= d
	}
	return size
}

func (t *Tensor) index(ix []int) int {
	off := t.offset
	for d, i := range ix {
		off += i * t.strides[d]
	}
	return off
}

// At returns the element at the given multi-index.
func (t *Tensor) At(ix ...int) float32 {
	if len(ix) != len(t.shape) {
		panic(fmt.Sprintf("tensor: At with %d indices on rank-%d tensor", len(ix), len(t.shape)))
	}
	return t.data[t.index(ix)]
}

// Set stores v at the given multi-index.
func (t *Tensor) Set(v float32, ix ...int) {
	if len(ix) != len(t.shape) {
		panic(fmt.Sprintf("tensor: Set with %d indices on rank-%d tensor", len(ix), len(t.shape)))
	}
	t.data[t.index(ix)] = v
}

// Floats copies the elements out in row-major order, regardless of how
// the view is strided.
func (t *Tensor) Floats() []float32 {
	out := make([]float32, t.Size())
	w := newWalker(t)
	for i := range out {
		out[i] = t.data[w.off]
		w.next()
	}
	return out
}

// Clone materializes the view into an independently owned contiguous
// tensor.
func (t *Tensor) Clone() *Tensor {
	c, _ := FromSlice(t.Floats(), t.shape...)
	return c
}

// InsertAxis returns a view with a singleton axis inserted at pos.
func (t *Tensor) InsertAxis(pos int) *Tensor {
	if pos < 0 || pos > len(t.shape) {
		panic(fmt.Sprintf("tensor: InsertAxis position %d on rank-%d tensor", pos, len(t.shape)))
	}
	shape := make([]int, 0, len(t.shape)+1)
	strides := make([]int, 0, len(t.shape)+1)
	shape = append(shape, t.shape[:pos]...)
	shape = append(shape, 1)
	shape = append(shape, t.shape[pos:]...)
	strides = append(strides, t.strides[:pos]...)
	strides = append(strides, 0)
	strides = append(strides, t.strides[pos:]...)
	return &Tensor{data: t.data, shape: shape, strides: strides, offset: t.offset}
}

// Expand broadcasts singleton axes of the view up to the target shape.
// Expanded axes have stride zero and alias one source element.
func (t *Tensor) Expand(target []int) (*Tensor, error) {
	if len(target) != len(t.shape) {
		return nil, fmt.Errorf("%w: expand rank %d to rank %d", ErrShapeMismatch, len(t.shape), len(target))
	}
	shape := make([]int, len(target))
	strides := make([]int, len(target))
	for d := range target {
		switch {
		case t.shape[d] == target[d]:
			shape[d] = t.shape[d]
			strides[d] = t.strides[d]
		case t.shape[d] == 1:
			shape[d] = target[d]
			strides[d] = 0
		default:
			return nil, fmt.Errorf("%w: cannot expand axis %d from %d to %d", ErrShapeMismatch, d, t.shape[d], target[d])
		}
	}
	return &Tensor{data: t.data, shape: shape, strides: strides, offset: t.offset}, nil
}

// Permute returns a view with axes reordered so that axis d of the
// result is axis order[d] of the receiver.
func (t *Tensor) Permute(order []int) (*Tensor, error) {
	if len(order) != len(t.shape) {
		return nil, fmt.Errorf("%w: permutation of length %d on rank-%d tensor", ErrShapeMismatch, len(order), len(t.shape))
	}
	seen := make([]bool, len(order))
	shape := make([]int, len(order))
	strides := make([]int, len(order))
	for d, src := range order {
		if src < 0 || src >= len(order) || seen[src] {
			return nil, fmt.Errorf("%w: invalid permutation %v", ErrInvalidParameter, order)
		}
		seen[src] = true
		shape[d] = t.shape[src]
		strides[d] = t.strides[src]
	}
	return &Tensor{data: t.data, shape: shape, strides: strides, offset: t.offset}, nil
}

// Diagonal merges axes a and b (which must have equal size) into the
// single axis at a's position, keeping only the index-aligned slice:
// position i of the merged axis addresses (i, i) of the original pair.
// Implemented as a view whose merged stride is the sum of both strides.
func (t *Tensor) Diagonal(a, b int) (*Tensor, error) {
	if a == b || a < 0 || b < 0 || a >= len(t.shape) || b >= len(t.shape) {
		return nil, fmt.Errorf("%w: diagonal over axes %d,%d of rank-%d tensor", ErrInvalidParameter, a, b, len(t.shape))
	}
	if t.shape[a] != t.shape[b] {
		return nil, fmt.Errorf("%w: diagonal over axes of size %d and %d", ErrShapeMismatch, t.shape[a], t.shape[b])
	}
	shape := make([]int, 0, len(t.shape)-1)
	strides := make([]int, 0, len(t.shape)-1)
	for d := range t.shape {
		switch d {
		case b:
			// dropped
		case a:
			shape = append(shape, t.shape[a])
			strides = append(strides, t.strides[a]+t.strides[b])
		default:
			shape = append(shape, t.shape[d])
			strides = append(strides, t.strides[d])
		}
	}
	return &Tensor{data: t.data, shape: shape, strides: strides, offset: t.offset}, nil
}

// BroadcastPair expands two tensors to a common shape, matching axes
// left-aligned: the shorter operand is padded with trailing singleton
// axes. Combinators call this after Align, when the leading label axes
// of both operands are already pinned to a shared order; right-aligned
// matching would mispair them.
func BroadcastPair(a, b *Tensor) (*Tensor, *Tensor, error) {
	for a.Rank() < b.Rank() {
		a = a.InsertAxis(a.Rank())
	}
	for b.Rank() < a.Rank() {
		b = b.InsertAxis(b.Rank())
	}
	target := make([]int, a.Rank())
	for d := range target {
		da, db := a.Dim(d), b.Dim(d)
		switch {
		case da == db:
			target[d] = da
		case da == 1:
			target[d] = db
		case db == 1:
			target[d] = da
		default:
			return nil, nil, fmt.Errorf("%w: axis %d sizes %d and %d", ErrShapeMismatch, d, da, db)
		}
	}
	ea, err := a.Expand(target)
	if err != nil {
		return nil, nil, err
	}
	eb, err := b.Expand(target)
	if err != nil {
		return nil, nil, err
	}
	return ea, eb, nil
}

// AllClose reports whether two tensors have identical shape and
// elementwise difference within tol.
func (t *Tensor) AllClose(o *Tensor, tol float64) bool {
	if len(t.shape) != len(o.shape) {
		return false
	}
	for d := range t.shape {
		if t.shape[d] != o.shape[d] {
			return false
		}
	}
	a, b := t.Floats(), o.Floats()
	for i := range a {
		if math.Abs(float64(a[i])-float64(b[i])) > tol {
			return false
		}
	}
	return true
}

// walker iterates a view in row-major order, tracking the flat buffer
// offset incrementally instead of recomputing the dot product per step.
type walker struct {
	shape   []int
	strides []int
	idx     []int
	off     int
}

func newWalker(t *Tensor) *walker {
	return &walker{
		shape:   t.shape,
		strides: t.strides,
		idx:     make([]int, len(t.shape)),
		off:     t.offset,
	}
}

func (w *walker) next() {
	for d := len(w.idx) - 1; d >= 0; d-- {
		w.idx[d]++
		w.off += w.strides[d]
		if w.idx[d] < w.shape[d] {
			return
		}
		w.idx[d] = 0
		w.off -= w.strides[d] * w.shape[d]
	}
}
