// Package stats computes occupancy statistics over offset matrices.
//
// Column coverage is tracked with roaring bitmaps, which stay compact for
// the clustered column ranges that offset rows typically produce.
package stats

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/offsetgrid"
)

// ColumnSet is a set of column indices backed by a 32-bit Roaring Bitmap.
// Signed columns are zigzag-encoded to bitmap keys, so columns must fit
// in int32. Iteration order is unspecified.
type ColumnSet struct {
	rb *roaring.Bitmap
}

// NewColumnSet creates a new empty column set.
func NewColumnSet() *ColumnSet {
	return &ColumnSet{
		rb: roaring.New(),
	}
}

func encodeColumn(col int) uint32 {
	v := int32(col)
	return uint32((v << 1) ^ (v >> 31))
}

func decodeColumn(k uint32) int {
	return int(int32(k>>1) ^ -int32(k&1))
}

// Add adds a column to the set.
func (s *ColumnSet) Add(col int) {
	s.rb.Add(encodeColumn(col))
}

// Remove removes a column from the set.
func (s *ColumnSet) Remove(col int) {
	s.rb.Remove(encodeColumn(col))
}

// Contains checks if a column is in the set.
func (s *ColumnSet) Contains(col int) bool {
	return s.rb.Contains(encodeColumn(col))
}

// IsEmpty returns true if the set is empty.
func (s *ColumnSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of columns in the set.
func (s *ColumnSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the set.
func (s *ColumnSet) Clone() *ColumnSet {
	return &ColumnSet{
		rb: s.rb.Clone(),
	}
}

// Columns returns an iterator over the columns in the set.
func (s *ColumnSet) Columns() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(decodeColumn(it.Next())) {
				return
			}
		}
	}
}

// And computes the intersection of two sets.
func (s *ColumnSet) And(other *ColumnSet) {
	s.rb.And(other.rb)
}

// Or computes the union of two sets.
func (s *ColumnSet) Or(other *ColumnSet) {
	s.rb.Or(other.rb)
}

// Clear removes all columns from the set.
func (s *ColumnSet) Clear() {
	s.rb.Clear()
}

// GetSizeInBytes returns the size of the set in bytes.
func (s *ColumnSet) GetSizeInBytes() uint64 {
	return s.rb.GetSizeInBytes()
}

// Profile summarizes the occupancy of a matrix.
type Profile struct {
	// Rows is the number of materialized rows.
	Rows int
	// EmptyRows is the number of rows with no materialized columns.
	EmptyRows int
	// Cells is the total number of materialized cells.
	Cells int
	// DefaultCells is the number of materialized cells equal to the
	// matrix default (explicitly set or growth filler).
	DefaultCells int
	// Columns is the set of columns materialized in at least one row.
	Columns *ColumnSet
}

// Occupancy returns the fraction of materialized cells holding a
// non-default value, or 0 for an empty matrix.
func (p Profile) Occupancy() float64 {
	if p.Cells == 0 {
		return 0
	}
	return float64(p.Cells-p.DefaultCells) / float64(p.Cells)
}

// Collect computes the occupancy profile of a matrix.
func Collect[T comparable](m *offsetgrid.Matrix[T]) Profile {
	p := Profile{Columns: NewColumnSet()}
	def := m.Default()

	for _, row := range m.Rows() {
		p.Rows++
		if row.Len() == 0 {
			p.EmptyRows++
			continue
		}
		for col, val := range row.All() {
			p.Cells++
			if val == def {
				p.DefaultCells++
			}
			p.Columns.Add(col)
		}
	}
	return p
}

// RowsCovering returns the set of row indices whose window materializes
// the given column.
func RowsCovering[T comparable](m *offsetgrid.Matrix[T], col int) *ColumnSet {
	rows := NewColumnSet()
	for idx, row := range m.Rows() {
		if row.Contains(col) {
			rows.Add(idx)
		}
	}
	return rows
}
