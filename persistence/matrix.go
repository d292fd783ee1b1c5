package persistence

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/offsetgrid"
	"github.com/hupe1980/offsetgrid/internal/conv"
	"github.com/hupe1980/offsetgrid/internal/mmap"
)

// Save writes the matrix to w in the fixed binary layout.
//
// Each row is written as its header followed by the entire backing buffer
// in one contiguous block.
func Save[T Element](w io.Writer, m *offsetgrid.Matrix[T]) (err error) {
	start := time.Now()
	cells := m.Values()
	defer func() { m.Metrics().RecordSave(cells, time.Since(start), err) }()

	bw := NewBinaryWriter(w)

	total, err := conv.IntToUint64(cells)
	if err != nil {
		return err
	}
	if err = bw.WriteUint64(total); err != nil {
		return err
	}
	if err = bw.WriteInt64(int64(m.Min())); err != nil {
		return err
	}
	if err = bw.WriteUint64(uint64(m.Len())); err != nil {
		return err
	}

	for _, row := range m.Rows() {
		if err = bw.WriteInt64(int64(row.Min())); err != nil {
			return err
		}
		if err = bw.WriteUint64(uint64(row.Len())); err != nil {
			return err
		}
		if err = WriteSlice(bw, row.Data()); err != nil {
			return err
		}
	}

	return nil
}

// Load reads a matrix stream from r into m, replacing its contents.
//
// m is cleared first; its default value seeds every row. The row sequence
// is pre-grown to span the full row window, then each row's backing buffer
// is filled by one contiguous read. Unlike lookups, load is strict: short
// input returns ErrUnexpectedEOF and a header total that disagrees with
// the row headers returns ErrSizeMismatch.
func Load[T Element](r io.Reader, m *offsetgrid.Matrix[T]) (err error) {
	start := time.Now()
	cells := 0
	defer func() { m.Metrics().RecordLoad(cells, time.Since(start), err) }()

	m.Clear()

	br := NewBinaryReader(r)

	total, err := br.ReadUint64()
	if err != nil {
		return err
	}
	rowsMin, err := br.ReadInt64()
	if err != nil {
		return err
	}
	rowsNum, err := br.ReadUint64()
	if err != nil {
		return err
	}

	rowCount, err := conv.Uint64ToInt(rowsNum)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCountOverflow, err)
	}
	if rowCount == 0 {
		if total != 0 {
			return ErrSizeMismatch
		}
		return nil
	}

	// Touching the first and last row index materializes every row in
	// between as empty, via the ordinary row-growth algorithm.
	m.Row(int(rowsMin))
	m.Row(int(rowsMin) + rowCount - 1)

	for row := m.Min(); row <= m.Max(); row++ {
		colsMin, err := br.ReadInt64()
		if err != nil {
			return err
		}
		colsNum, err := br.ReadUint64()
		if err != nil {
			return err
		}
		colCount, err := conv.Uint64ToInt(colsNum)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCountOverflow, err)
		}

		vec := m.RowAt(row)
		vec.Fill(int(colsMin), colCount)
		if err := ReadSliceInto(br, vec.Data()); err != nil {
			return err
		}
		cells += colCount
	}

	expected, err := conv.Uint64ToInt(total)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCountOverflow, err)
	}
	if cells != expected {
		return ErrSizeMismatch
	}

	return nil
}

// SaveFile writes the matrix to filename, atomically (temp file + rename).
func SaveFile[T Element](filename string, m *offsetgrid.Matrix[T]) error {
	err := SaveToFile(filename, func(w io.Writer) error {
		return Save(w, m)
	})
	m.Logger().LogSave(context.Background(), filename, m.Values(), err)
	return err
}

// LoadFile reads a matrix stream from filename into m.
func LoadFile[T Element](filename string, m *offsetgrid.Matrix[T]) error {
	err := LoadFromFile(filename, func(r io.Reader) error {
		return Load(r, m)
	})
	m.Logger().LogLoad(context.Background(), filename, m.Len(), m.Values(), err)
	return err
}

// LoadMapped reads a matrix stream from a memory-mapped file. The mapping
// is released before returning; row buffers are copied out of the mapping
// during the load, so no pages are pinned afterwards.
func LoadMapped[T Element](filename string, m *offsetgrid.Matrix[T]) error {
	f, err := mmap.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return Load(bytes.NewReader(f.Data), m)
}
