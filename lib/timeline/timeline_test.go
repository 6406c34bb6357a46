// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/timeflow/lib/codec"
	"github.com/bureau-foundation/timeflow/lib/schedule"
)

var epoch = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)

// writeFlow appends ten one-minute steps, with a firing every fifth.
func writeFlow(t *testing.T, writer *Writer) {
	t.Helper()
	for step := 1; step <= 10; step++ {
		instant := epoch.Add(time.Duration(step) * time.Minute)
		var firings []schedule.Firing
		if step%5 == 0 {
			firings = []schedule.Firing{{Schedule: "five", At: instant}}
		}
		if _, err := writer.Append(instant, firings); err != nil {
			t.Fatalf("Append step %d: %v", step, err)
		}
	}
}

func requireFlow(t *testing.T, records []Record) {
	t.Helper()
	if len(records) != 10 {
		t.Fatalf("records = %d, want 10", len(records))
	}
	for i, record := range records {
		want := epoch.Add(time.Duration(i+1) * time.Minute)
		if record.Sequence != uint64(i+1) || !record.Instant.Equal(want) {
			t.Fatalf("record %d = %+v, want sequence %d at %v", i, record, i+1, want)
		}
		wantFirings := 0
		if (i+1)%5 == 0 {
			wantFirings = 1
		}
		if len(record.Firings) != wantFirings {
			t.Fatalf("record %d firings = %v, want %d", i, record.Firings, wantFirings)
		}
	}
	if got := records[4].Firings[0]; got.Schedule != "five" || !got.At.Equal(epoch.Add(5*time.Minute)) {
		t.Fatalf("record 5 firing = %+v", got)
	}
}

func TestWriterReadRoundTrip(t *testing.T) {
	var buffer bytes.Buffer
	writer := NewWriter(&buffer)
	writeFlow(t, writer)
	digest, err := writer.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, readDigest, err := Read(&buffer)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	requireFlow(t, records)
	if readDigest != digest {
		t.Fatalf("read digest %s, want %s", readDigest, digest)
	}
	if len(digest) != 64 {
		t.Fatalf("digest %q is not 32 hex bytes", digest)
	}
}

func TestDigestIsDeterministic(t *testing.T) {
	digests := make([]string, 2)
	for i := range digests {
		var buffer bytes.Buffer
		writer := NewWriter(&buffer)
		writeFlow(t, writer)
		digest, err := writer.Close()
		if err != nil {
			t.Fatalf("Close: %v", err)
		}
		digests[i] = digest
	}
	if digests[0] != digests[1] {
		t.Fatalf("digests differ: %s vs %s", digests[0], digests[1])
	}

	var buffer bytes.Buffer
	writer := NewWriter(&buffer)
	if _, err := writer.Append(epoch, nil); err != nil {
		t.Fatal(err)
	}
	if writer.Digest() == digests[0] {
		t.Fatal("different content produced the same digest")
	}
}

func TestCreateAndReadFile(t *testing.T) {
	directory := t.TempDir()
	digests := map[string]string{}

	for _, name := range []string{"flow.cbor", "flow.cbor.zst", "flow.cbor.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(directory, name)
			writer, err := Create(path)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			writeFlow(t, writer)
			if got := writer.Count(); got != 10 {
				t.Fatalf("Count() = %d, want 10", got)
			}
			digest, err := writer.Close()
			if err != nil {
				t.Fatalf("Close: %v", err)
			}
			digests[name] = digest

			records, readDigest, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			requireFlow(t, records)
			if readDigest != digest {
				t.Fatalf("read digest %s, want %s", readDigest, digest)
			}

			raw, err := RawFile(path)
			if err != nil {
				t.Fatalf("RawFile: %v", err)
			}
			diagnostic, _, err := codec.DiagnoseFirst(raw)
			if err != nil {
				t.Fatalf("DiagnoseFirst: %v", err)
			}
			if !strings.Contains(diagnostic, `"2026-02-18T10:01:00Z"`) {
				t.Fatalf("first record diagnostic = %s", diagnostic)
			}
		})
	}

	for _, name := range []string{"flow.cbor.zst", "flow.cbor.lz4"} {
		if digests[name] != digests["flow.cbor"] {
			t.Fatalf("%s digest %s differs from plain %s", name, digests[name], digests["flow.cbor"])
		}
	}

	plain, err := os.Stat(filepath.Join(directory, "flow.cbor"))
	if err != nil {
		t.Fatal(err)
	}
	if plain.Size() == 0 {
		t.Fatal("plain recording is empty")
	}
}

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"flow.cbor", CompressionNone},
		{"flow.cbor.zst", CompressionZstd},
		{"/tmp/flow.lz4", CompressionLZ4},
		{"zst", CompressionNone},
	}
	for _, test := range tests {
		if got := CompressionFor(test.path); got != test.want {
			t.Errorf("CompressionFor(%q) = %v, want %v", test.path, got, test.want)
		}
	}
	if got := Compression(9).String(); got != "unknown(9)" {
		t.Errorf("String() = %q, want unknown(9)", got)
	}
}

func TestAppendAfterClose(t *testing.T) {
	writer := NewWriter(&bytes.Buffer{})
	first, err := writer.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := writer.Append(epoch, nil); err == nil {
		t.Fatal("Append after Close succeeded")
	}
	second, err := writer.Close()
	if err != nil || second != first {
		t.Fatalf("second Close = %q, %v; want %q, nil", second, err, first)
	}
}

func TestReadTruncated(t *testing.T) {
	var buffer bytes.Buffer
	writer := NewWriter(&buffer)
	writeFlow(t, writer)
	data := buffer.Bytes()

	_, _, err := Read(bytes.NewReader(data[:len(data)-3]))
	if err == nil || !strings.Contains(err.Error(), "decoding timeline record 10") {
		t.Fatalf("Read(truncated) = %v, want a record 10 decode error", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "absent.cbor"))
	if err == nil || !strings.Contains(err.Error(), "opening timeline") {
		t.Fatalf("ReadFile(missing) = %v, want opening error", err)
	}
}
