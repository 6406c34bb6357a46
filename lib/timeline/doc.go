// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package timeline records a simulated flow as a file.
//
// A recording is a CBOR sequence of [Record] values, one per controller
// notification. The file extension picks the framing: ".zst" is zstd,
// ".lz4" is an LZ4 frame, anything else is the bare sequence. Writing
// and reading both compute a BLAKE3 digest of the uncompressed bytes.
// Because lib/codec encodes deterministically and a flow over a fixed
// start clock is deterministic, two runs of the same plan produce the
// same digest in every framing; a changed digest means the schedule
// behavior changed.
//
// Recordings are output only. Nothing reads one back into a clock.
package timeline
