package offsetgrid

import "iter"

// Vector is a dense sequence of T addressable by an integer column index
// offset from a movable minimum. It grows on demand at either end and
// returns its default value for any column outside the current window.
//
// Storage is always fully dense across [Min, Max]: growth fills every newly
// created slot with the default, and growth is exact-size (no amortized
// over-allocation) so Len always equals the serialized column count.
//
// Vector is not safe for concurrent mutation.
type Vector[T comparable] struct {
	min  int
	data []T
	def  T
}

// NewVector creates an empty vector with the given default value.
func NewVector[T comparable](defaultValue T) *Vector[T] {
	return &Vector[T]{def: defaultValue}
}

// Min returns the smallest addressable column index.
func (v *Vector[T]) Min() int { return v.min }

// Max returns the largest addressable column index.
// Only meaningful when Len() > 0.
func (v *Vector[T]) Max() int { return v.min + len(v.data) - 1 }

// Len returns the number of materialized columns.
func (v *Vector[T]) Len() int { return len(v.data) }

// Default returns the value used for unset and out-of-range columns.
func (v *Vector[T]) Default() T { return v.def }

// Contains reports whether col lies within the current [Min, Max] window.
// An empty vector contains nothing.
func (v *Vector[T]) Contains(col int) bool {
	return len(v.data) > 0 && col >= v.min && col <= v.Max()
}

// Get returns the value stored at col, or the vector's default when col is
// outside the current window. It never fails and never mutates the vector.
func (v *Vector[T]) Get(col int) T {
	return v.GetOr(col, v.def)
}

// GetOr is Get with a caller-supplied default override.
func (v *Vector[T]) GetOr(col int, def T) T {
	if !v.Contains(col) {
		return def
	}
	return v.data[col-v.min]
}

// Set stores val at col, growing the vector as needed. Newly created slots
// are filled with the vector's default value.
func (v *Vector[T]) Set(col int, val T) {
	v.SetWith(col, val, v.def)
}

// SetWith is Set with an explicit fill value for slots created by growth.
// The matrix uses this to seed rows with its shared default.
func (v *Vector[T]) SetWith(col int, val T, def T) {
	switch {
	case len(v.data) == 0:
		v.data = append(v.data, def)
		v.min = col
	case col > v.Max():
		v.extend(col-v.min+1, def)
	case col < v.min:
		v.shiftRight(v.min-col, def)
		v.min = col
	}
	v.data[col-v.min] = val
}

// extend grows the backing slice to n, filling new tail slots with def.
func (v *Vector[T]) extend(n int, def T) {
	for len(v.data) < n {
		v.data = append(v.data, def)
	}
}

// shiftRight grows the backing slice by n and moves the existing elements
// toward the back, preserving order. copy is overlap-safe (memmove), which
// is required here since source and destination ranges overlap. The opened
// front region is filled with def.
func (v *Vector[T]) shiftRight(n int, def T) {
	oldLen := len(v.data)
	v.extend(oldLen+n, def)
	copy(v.data[n:], v.data[:oldLen])
	for i := 0; i < n; i++ {
		v.data[i] = def
	}
}

// Clear resets the vector to the empty state with Min 0.
// The default value is retained.
func (v *Vector[T]) Clear() {
	v.min = 0
	v.data = nil
}

// Fill resets the vector to n materialized default-valued columns starting
// at min. Bulk loaders use this to establish a row's window before
// overwriting the backing buffer in one contiguous read.
func (v *Vector[T]) Fill(min, n int) {
	v.min = min
	v.data = make([]T, n)
	if v.def != *new(T) {
		for i := range v.data {
			v.data[i] = v.def
		}
	}
}

// Data returns the raw backing slice across [Min, Max] in column order.
// Serializers read and write it as one contiguous block; mutating it writes
// through to the vector.
func (v *Vector[T]) Data() []T { return v.data }

// Clone returns an independent deep copy.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{min: v.min, def: v.def}
	if len(v.data) > 0 {
		c.data = make([]T, len(v.data))
		copy(c.data, v.data)
	}
	return c
}

// All returns a forward iterator over the dense [Min, Max] window,
// yielding (column, value) in ascending column order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, val := range v.data {
			if !yield(v.min+i, val) {
				return
			}
		}
	}
}

// Backward returns an iterator over the window in descending column order.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(v.data) - 1; i >= 0; i-- {
			if !yield(v.min+i, v.data[i]) {
				return
			}
		}
	}
}
