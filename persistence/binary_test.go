package persistence

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestBinaryFormat_WriteRead(t *testing.T) {
	var buf bytes.Buffer
	writer := NewBinaryWriter(&buf)

	if err := writer.WriteUint64(3); err != nil {
		t.Fatalf("WriteUint64 failed: %v", err)
	}
	if err := writer.WriteInt64(-42); err != nil {
		t.Fatalf("WriteInt64 failed: %v", err)
	}
	row := []float32{1.0, 2.0, 3.0}
	if err := WriteSlice(writer, row); err != nil {
		t.Fatalf("WriteSlice failed: %v", err)
	}

	reader := NewBinaryReader(&buf)

	count, err := reader.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64 failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count mismatch: got %d, want 3", count)
	}

	minIdx, err := reader.ReadInt64()
	if err != nil {
		t.Fatalf("ReadInt64 failed: %v", err)
	}
	if minIdx != -42 {
		t.Errorf("min mismatch: got %d, want -42", minIdx)
	}

	got := make([]float32, 3)
	if err := ReadSliceInto(reader, got); err != nil {
		t.Fatalf("ReadSliceInto failed: %v", err)
	}
	for i, v := range got {
		if v != row[i] {
			t.Errorf("element %d mismatch: got %f, want %f", i, v, row[i])
		}
	}
}

func TestBinaryFormat_LittleEndianLayout(t *testing.T) {
	var buf bytes.Buffer
	writer := NewBinaryWriter(&buf)

	if err := writer.WriteUint64(0x0102030405060708); err != nil {
		t.Fatalf("WriteUint64 failed: %v", err)
	}

	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("layout mismatch: got %x, want %x", buf.Bytes(), want)
	}
}

func TestBinaryFormat_EmptySlices(t *testing.T) {
	var buf bytes.Buffer
	writer := NewBinaryWriter(&buf)

	if err := WriteSlice(writer, []uint64(nil)); err != nil {
		t.Fatalf("WriteSlice of nil failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty slice wrote %d bytes", buf.Len())
	}

	reader := NewBinaryReader(&buf)
	if err := ReadSliceInto(reader, []uint64(nil)); err != nil {
		t.Fatalf("ReadSliceInto of nil failed: %v", err)
	}
}

func TestBinaryFormat_TruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	writer := NewBinaryWriter(&buf)
	if err := writer.WriteUint64(7); err != nil {
		t.Fatalf("WriteUint64 failed: %v", err)
	}

	// Cut the stream mid-field.
	short := bytes.NewReader(buf.Bytes()[:5])
	reader := NewBinaryReader(short)

	if _, err := reader.ReadUint64(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}

	reader = NewBinaryReader(bytes.NewReader(nil))
	if err := ReadSliceInto(reader, make([]int32, 4)); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestSaveToFile_Atomic(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "data.bin")

	if err := SaveToFile(filename, func(w io.Writer) error {
		_, err := w.Write([]byte("payload"))
		return err
	}); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content mismatch: got %q", data)
	}

	// A failing writeFunc must leave the previous content intact.
	writeErr := errors.New("boom")
	if err := SaveToFile(filename, func(w io.Writer) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return writeErr
	}); !errors.Is(err, writeErr) {
		t.Fatalf("expected writeFunc error, got %v", err)
	}

	data, err = os.ReadFile(filename)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("failed write clobbered the target: got %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
