package offsetgrid

import "iter"

// Matrix is a dense sequence of Vector rows addressable by an integer row
// index with the same growth discipline as the rows themselves. Every row
// index within [Min, Max] has a row object, though a row may itself be
// empty; each row's own column window is independent of its siblings.
//
// The matrix owns its rows exclusively and seeds each new row with the
// matrix default by value; rows never observe later changes to it.
//
// Matrix is not safe for concurrent mutation.
type Matrix[T comparable] struct {
	min     int
	rows    []*Vector[T]
	def     T
	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty matrix with the given shared default value.
func New[T comparable](defaultValue T, opts ...Option[T]) *Matrix[T] {
	m := &Matrix[T]{
		def:     defaultValue,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Min returns the smallest addressable row index.
func (m *Matrix[T]) Min() int { return m.min }

// Max returns the largest addressable row index.
// Only meaningful when Len() > 0.
func (m *Matrix[T]) Max() int { return m.min + len(m.rows) - 1 }

// Len returns the number of materialized rows.
func (m *Matrix[T]) Len() int { return len(m.rows) }

// Default returns the shared default value.
func (m *Matrix[T]) Default() T { return m.def }

// Logger returns the configured logger.
func (m *Matrix[T]) Logger() *Logger { return m.logger }

// Metrics returns the configured metrics collector.
func (m *Matrix[T]) Metrics() MetricsCollector { return m.metrics }

// Contains reports whether row lies within the current [Min, Max] window.
func (m *Matrix[T]) Contains(row int) bool {
	return len(m.rows) > 0 && row >= m.min && row <= m.Max()
}

// Row returns the row at the given index, growing the row sequence as
// needed. Rows created by growth start empty; they materialize column
// storage lazily on their first Set.
func (m *Matrix[T]) Row(row int) *Vector[T] {
	switch {
	case len(m.rows) == 0:
		m.rows = append(m.rows, NewVector(m.def))
		m.min = row
	case row > m.Max():
		m.extend(row - m.min + 1)
	case row < m.min:
		m.shiftRight(m.min - row)
		m.min = row
	}
	return m.rows[row-m.min]
}

// RowAt returns the row at the given index without growth or bounds
// checking. The caller must have established Contains(row).
func (m *Matrix[T]) RowAt(row int) *Vector[T] {
	return m.rows[row-m.min]
}

func (m *Matrix[T]) extend(n int) {
	for len(m.rows) < n {
		m.rows = append(m.rows, NewVector(m.def))
	}
}

func (m *Matrix[T]) shiftRight(n int) {
	oldLen := len(m.rows)
	m.extend(oldLen + n)
	copy(m.rows[n:], m.rows[:oldLen])
	for i := 0; i < n; i++ {
		m.rows[i] = NewVector(m.def)
	}
}

// Set stores val at (row, col), growing the row sequence and the target
// row as needed.
func (m *Matrix[T]) Set(row, col int, val T) {
	grew := !m.Contains(row)
	r := m.Row(row)
	grew = grew || !r.Contains(col)
	r.SetWith(col, val, m.def)
	m.metrics.RecordSet(grew)
}

// Get returns the value at (row, col). It returns the matrix default when
// row is outside the current window; otherwise the row applies its own
// range check. Never fails, never mutates.
func (m *Matrix[T]) Get(row, col int) T {
	if !m.Contains(row) {
		m.metrics.RecordGet(false)
		return m.def
	}
	r := m.rows[row-m.min]
	hit := r.Contains(col)
	m.metrics.RecordGet(hit)
	return r.Get(col)
}

// Values returns the total number of materialized cells across all rows,
// including default-filled filler cells introduced by growth.
func (m *Matrix[T]) Values() int {
	total := 0
	for _, r := range m.rows {
		total += r.Len()
	}
	return total
}

// Count returns the number of materialized cells equal to val.
func (m *Matrix[T]) Count(val T) int {
	c := 0
	for _, r := range m.rows {
		for _, cell := range r.data {
			if cell == val {
				c++
			}
		}
	}
	return c
}

// Clear drops all rows and resets Min to 0.
// Default value, logger, and metrics are retained.
func (m *Matrix[T]) Clear() {
	m.min = 0
	m.rows = nil
}

// Clone returns an independent deep copy of the matrix and all its rows.
func (m *Matrix[T]) Clone() *Matrix[T] {
	c := &Matrix[T]{min: m.min, def: m.def, logger: m.logger, metrics: m.metrics}
	if len(m.rows) > 0 {
		c.rows = make([]*Vector[T], len(m.rows))
		for i, r := range m.rows {
			c.rows[i] = r.Clone()
		}
	}
	return c
}

// Rows returns a forward iterator over the dense [Min, Max] row window,
// yielding (row index, row) in ascending row order.
func (m *Matrix[T]) Rows() iter.Seq2[int, *Vector[T]] {
	return func(yield func(int, *Vector[T]) bool) {
		for i, r := range m.rows {
			if !yield(m.min+i, r) {
				return
			}
		}
	}
}
