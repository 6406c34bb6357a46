// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select against a real timer) so that
// tests of flow pacing and fake clocks never block forever when a
// goroutine misbehaves. These are the only place in the test suite where
// real wall-clock timeouts are used; everything else reads time through
// lib/clock or the process time provider.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
