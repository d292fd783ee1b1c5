package persistence

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"unsafe"
)

// BinaryWriter writes matrix streams in the fixed binary format.
type BinaryWriter struct {
	w         io.Writer
	byteOrder binary.ByteOrder
}

// NewBinaryWriter creates a new binary writer.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{
		w:         w,
		byteOrder: binary.LittleEndian, // Native on x86/ARM
	}
}

// WriteUint64 writes a single unsigned count field.
func (bw *BinaryWriter) WriteUint64(v uint64) error {
	return binary.Write(bw.w, bw.byteOrder, v)
}

// WriteInt64 writes a single signed index field.
func (bw *BinaryWriter) WriteInt64(v int64) error {
	return binary.Write(bw.w, bw.byteOrder, v)
}

// WriteSlice writes a slice of fixed-width elements as raw bytes (zero-copy).
// Safety: validates alignment before the unsafe conversion.
func WriteSlice[T Element](bw *BinaryWriter, s []T) error {
	if len(s) == 0 {
		return nil
	}

	if err := validateSliceAlignment(s); err != nil {
		return err
	}

	// Direct memory conversion (no allocation)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
	_, err := bw.w.Write(byteSlice)
	return err
}

// BinaryReader reads matrix streams from the fixed binary format.
//
// All reads are full reads: a short stream surfaces as ErrUnexpectedEOF
// rather than silently consuming garbage.
type BinaryReader struct {
	r         io.Reader
	byteOrder binary.ByteOrder
}

// NewBinaryReader creates a new binary reader.
func NewBinaryReader(r io.Reader) *BinaryReader {
	return &BinaryReader{
		r:         r,
		byteOrder: binary.LittleEndian,
	}
}

// ReadUint64 reads a single unsigned count field.
func (br *BinaryReader) ReadUint64() (uint64, error) {
	var v uint64
	if err := binary.Read(br.r, br.byteOrder, &v); err != nil {
		return 0, eofErr(err)
	}
	return v, nil
}

// ReadInt64 reads a single signed index field.
func (br *BinaryReader) ReadInt64() (int64, error) {
	var v int64
	if err := binary.Read(br.r, br.byteOrder, &v); err != nil {
		return 0, eofErr(err)
	}
	return v, nil
}

// ReadSliceInto reads raw bytes into the provided slice of fixed-width
// elements, overwriting its contents.
func ReadSliceInto[T Element](br *BinaryReader, s []T) error {
	if len(s) == 0 {
		return nil
	}

	if err := validateSliceAlignment(s); err != nil {
		return err
	}

	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
	if _, err := io.ReadFull(br.r, byteSlice); err != nil {
		return eofErr(err)
	}
	return nil
}

// eofErr normalizes truncation errors so callers can test a single sentinel.
func eofErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return err
}

// SaveToFile is a helper to save data to a file, atomically.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	// Write to a temp file in the same directory to ensure rename is atomic.
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	// Use buffered writer to batch writes (critical for performance)
	buf := bufio.NewWriterSize(tmp, 256*1024) // 256KB buffer
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Atomically replace target.
	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile is a helper to load data from a file.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	// Use buffered reader to batch reads
	buf := bufio.NewReaderSize(f, 256*1024) // 256KB buffer
	return readFunc(buf)
}
