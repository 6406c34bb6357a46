// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package timeflow is the process-wide source of "now" for production
// code.
//
// Production code reads time through this package instead of calling
// time.Now:
//
//	deadline := timeflow.Now().Add(ttl)
//	if timeflow.Now().After(deadline) { ... }
//
// The active clock starts as clock.System() (wall clock, UTC) and stays
// that way in production. Tests replace it through the
// lib/timeflow/timeflowtest package, and every reader in the process
// observes the replacement on its next read. No clock parameter has to
// be threaded through the code under test.
//
// # Concurrency
//
// Reads are lock-free: the active clock sits behind an atomic pointer,
// and replacement is a single atomic store. Any number of goroutines
// may call Now and Clock while a test mutates the clock.
//
// # Restriction
//
// This package exposes no way to change the clock. The write path lives
// in an internal package reachable only from lib/timeflow/timeflowtest.
// Production code must not import timeflowtest or call time.Now
// directly. That is a convention for lint tooling to check; nothing in
// this package can enforce it.
package timeflow
