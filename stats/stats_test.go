package stats

import (
	"sort"
	"testing"

	"github.com/hupe1980/offsetgrid"
	"github.com/stretchr/testify/require"
)

func TestColumnSet_Basics(t *testing.T) {
	s := NewColumnSet()

	require.True(t, s.IsEmpty())

	s.Add(5)
	s.Add(-3)
	s.Add(0)

	require.True(t, s.Contains(5))
	require.True(t, s.Contains(-3))
	require.True(t, s.Contains(0))
	require.False(t, s.Contains(3))
	require.Equal(t, uint64(3), s.Cardinality())

	s.Remove(5)
	require.False(t, s.Contains(5))

	var cols []int
	for col := range s.Columns() {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	require.Equal(t, []int{-3, 0}, cols)

	s.Clear()
	require.True(t, s.IsEmpty())
}

func TestColumnSet_SetOperations(t *testing.T) {
	a := NewColumnSet()
	a.Add(-1)
	a.Add(2)

	b := NewColumnSet()
	b.Add(2)
	b.Add(7)

	union := a.Clone()
	union.Or(b)
	require.Equal(t, uint64(3), union.Cardinality())

	a.And(b)
	require.Equal(t, uint64(1), a.Cardinality())
	require.True(t, a.Contains(2))
}

func TestCollect_Profile(t *testing.T) {
	m := offsetgrid.New(0)
	m.Set(5, 5, 7)
	m.Set(3, 3, 9)
	m.Set(3, 6, 0) // explicit default, still materialized

	p := Collect(m)

	require.Equal(t, 3, p.Rows)
	require.Equal(t, 1, p.EmptyRows) // row 4
	require.Equal(t, 5, p.Cells)     // row 3 spans 3..6, row 5 has one cell
	require.Equal(t, 3, p.DefaultCells)
	require.Equal(t, uint64(4), p.Columns.Cardinality())
	require.True(t, p.Columns.Contains(4)) // growth filler counts as covered
	require.False(t, p.Columns.Contains(7))

	require.InDelta(t, 2.0/5.0, p.Occupancy(), 1e-9)
}

func TestCollect_EmptyMatrix(t *testing.T) {
	p := Collect(offsetgrid.New(0))

	require.Equal(t, 0, p.Rows)
	require.Equal(t, 0, p.Cells)
	require.Equal(t, 0.0, p.Occupancy())
	require.True(t, p.Columns.IsEmpty())
}

func TestRowsCovering(t *testing.T) {
	m := offsetgrid.New(0)
	m.Set(-2, 0, 1)
	m.Set(0, 5, 2)  // row 0 spans only column 5
	m.Set(1, -3, 3)
	m.Set(1, 2, 4)  // row 1 spans -3..2

	rows := RowsCovering(m, 0)

	require.True(t, rows.Contains(-2))
	require.False(t, rows.Contains(-1)) // empty row
	require.False(t, rows.Contains(0))
	require.True(t, rows.Contains(1))
	require.Equal(t, uint64(2), rows.Cardinality())
}
