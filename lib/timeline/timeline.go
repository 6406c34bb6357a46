// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/timeflow/lib/codec"
	"github.com/bureau-foundation/timeflow/lib/schedule"
)

// Compression is the on-disk framing of a recording, chosen by file
// extension.
type Compression int

const (
	// CompressionNone writes the CBOR sequence as is.
	CompressionNone Compression = iota
	// CompressionZstd is selected by a ".zst" extension.
	CompressionZstd
	// CompressionLZ4 is selected by a ".lz4" extension (LZ4 frame format).
	CompressionLZ4
)

// CompressionFor returns the compression a path's extension selects.
func CompressionFor(path string) Compression {
	switch filepath.Ext(path) {
	case ".zst":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Record is one controller notification.
type Record struct {
	// Sequence numbers records from 1 in the order they were written.
	Sequence uint64 `json:"sequence"`

	// Instant is the clock's time after the step.
	Instant time.Time `json:"instant"`

	// Firings are the schedule occurrences that became due with this
	// step, if any.
	Firings []schedule.Firing `json:"firings,omitempty"`
}

// Writer appends Records to a CBOR sequence and hashes the encoded
// bytes with BLAKE3. The digest covers the uncompressed CBOR, so the
// same flow has the same digest whether or not it was compressed.
type Writer struct {
	encoder  *codec.Encoder
	hasher   *blake3.Hasher
	closers  []io.Closer
	sequence uint64
	closed   bool
}

// NewWriter returns a Writer encoding to w. Close does not close w.
func NewWriter(w io.Writer) *Writer {
	hasher := blake3.New()
	return &Writer{
		encoder: codec.NewEncoder(io.MultiWriter(w, hasher)),
		hasher:  hasher,
	}
}

// Create creates (or truncates) the file at path and returns a Writer
// for it, compressed as [CompressionFor] selects.
func Create(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating timeline %s: %w", path, err)
	}

	switch CompressionFor(path) {
	case CompressionZstd:
		compressor, err := zstd.NewWriter(file,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("creating zstd encoder for %s: %w", path, err)
		}
		writer := NewWriter(compressor)
		// The compressor flushes into the file, so it closes first.
		writer.closers = []io.Closer{compressor, file}
		return writer, nil

	case CompressionLZ4:
		compressor := lz4.NewWriter(file)
		writer := NewWriter(compressor)
		writer.closers = []io.Closer{compressor, file}
		return writer, nil

	default:
		writer := NewWriter(file)
		writer.closers = []io.Closer{file}
		return writer, nil
	}
}

// Append writes the next record. Its sequence number is assigned here.
func (w *Writer) Append(instant time.Time, firings []schedule.Firing) (Record, error) {
	if w.closed {
		return Record{}, errors.New("timeline: append to closed writer")
	}
	w.sequence++
	record := Record{Sequence: w.sequence, Instant: instant.UTC(), Firings: firings}
	if err := w.encoder.Encode(record); err != nil {
		return Record{}, fmt.Errorf("encoding timeline record %d: %w", record.Sequence, err)
	}
	return record, nil
}

// Count returns the number of records appended.
func (w *Writer) Count() uint64 { return w.sequence }

// Digest returns the hex BLAKE3 digest of everything appended so far.
func (w *Writer) Digest() string {
	return hex.EncodeToString(w.hasher.Sum(nil))
}

// Close flushes and closes the underlying file (if the Writer owns one)
// and returns the final digest. Calling Close again returns the same
// digest and no error.
func (w *Writer) Close() (string, error) {
	if w.closed {
		return w.Digest(), nil
	}
	w.closed = true

	var errs []error
	for _, closer := range w.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return "", fmt.Errorf("closing timeline: %w", err)
	}
	return w.Digest(), nil
}

// Read decodes every record from r and returns them with the digest of
// the bytes read.
func Read(r io.Reader) ([]Record, string, error) {
	hasher := blake3.New()
	decoder := codec.NewDecoder(io.TeeReader(r, hasher))

	var records []Record
	for {
		var record Record
		err := decoder.Decode(&record)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("decoding timeline record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	return records, hex.EncodeToString(hasher.Sum(nil)), nil
}

// ReadFile reads a recording written by Create, decompressing as the
// path's extension selects.
func ReadFile(path string) ([]Record, string, error) {
	var records []Record
	var digest string
	err := withDecompressed(path, func(r io.Reader) error {
		var err error
		records, digest, err = Read(r)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return records, digest, nil
}

// RawFile returns the uncompressed CBOR bytes of the recording at
// path, for diagnostic printing.
func RawFile(path string) ([]byte, error) {
	var raw []byte
	err := withDecompressed(path, func(r io.Reader) error {
		var err error
		if raw, err = io.ReadAll(r); err != nil {
			return fmt.Errorf("decompressing timeline %s: %w", path, err)
		}
		return nil
	})
	return raw, err
}

// withDecompressed opens path and calls read with a reader over its
// uncompressed content.
func withDecompressed(path string, read func(io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening timeline %s: %w", path, err)
	}
	defer file.Close()

	switch CompressionFor(path) {
	case CompressionZstd:
		decompressor, err := zstd.NewReader(file, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return fmt.Errorf("creating zstd decoder for %s: %w", path, err)
		}
		defer decompressor.Close()
		return read(decompressor)
	case CompressionLZ4:
		return read(lz4.NewReader(file))
	default:
		return read(file)
	}
}
