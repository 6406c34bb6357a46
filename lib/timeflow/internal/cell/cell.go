// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cell holds the process-wide active clock.
//
// The package is internal to lib/timeflow: the read-only provider and
// the test controller both reach the same Cell, and nothing outside
// lib/timeflow can import it. That is the only write path to the clock
// production code reads.
package cell

import (
	"sync/atomic"

	"github.com/bureau-foundation/timeflow/lib/clock"
)

// Cell publishes one clock.Source at a time. Store and Load are atomic
// with release/acquire ordering, so a reader never observes a
// partially constructed source.
type Cell struct {
	active atomic.Pointer[entry]
}

// entry boxes the interface value so it can sit behind an
// atomic.Pointer.
type entry struct {
	source clock.Source
}

// New returns a Cell holding initial.
func New(initial clock.Source) *Cell {
	cell := &Cell{}
	cell.Store(initial)
	return cell
}

// Load returns the active source.
func (c *Cell) Load() clock.Source {
	return c.active.Load().source
}

// Store replaces the active source. Callers serialize writes
// themselves; concurrent Loads are always safe.
func (c *Cell) Store(source clock.Source) {
	c.active.Store(&entry{source: source})
}

var global = New(clock.System())

// Global returns the process-wide Cell. It starts with clock.System()
// and lives for the life of the process.
func Global() *Cell { return global }
