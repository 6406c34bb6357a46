// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the one CBOR configuration every package encodes
// with.
//
// Timeline recordings are CBOR sequences: one self-delimiting item per
// flow step, appended as the flow runs. The encoder uses Core
// Deterministic Encoding (sorted map keys, smallest integer encoding,
// no indefinite-length items), so the same simulated flow always
// produces the same bytes and the same recording digest.
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// Struct tags: a `cbor` tag marks a type that is only ever CBOR. A
// `json` tag marks a type that is also printed as JSON by the CLI;
// fxamacker/cbor reads `json` tags when `cbor` tags are absent. Never
// put both on one field.
package codec
