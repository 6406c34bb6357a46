// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package timeflow

import (
	"time"

	"github.com/bureau-foundation/timeflow/lib/clock"
	"github.com/bureau-foundation/timeflow/lib/timeflow/internal/cell"
)

// Provider is the read side of the process-wide clock. It has no
// mutating methods; replacing the clock is the job of
// timeflowtest.Controller, which shares the same cell.
type Provider struct {
	cell *cell.Cell
}

var instance = &Provider{cell: cell.Global()}

// Instance returns the process-wide Provider.
func Instance() *Provider { return instance }

// Now returns the instant reported by the active clock.
func (p *Provider) Now() time.Time {
	return p.cell.Load().Now()
}

// Clock returns the active clock itself, for callers that pass a clock
// on to other time-aware code rather than reading an instant.
//
// The returned value is a snapshot: if a test replaces the clock
// afterwards, a previously returned Source keeps reporting the old
// clock's time.
func (p *Provider) Clock() clock.Source {
	return p.cell.Load()
}

// Now returns Instance().Now().
func Now() time.Time { return instance.Now() }

// Clock returns Instance().Clock().
func Clock() clock.Source { return instance.Clock() }

// Since returns the time elapsed since t according to the active
// clock.
func Since(t time.Time) time.Duration { return instance.Now().Sub(t) }

// Until returns the duration until t according to the active clock.
func Until(t time.Time) time.Duration { return t.Sub(instance.Now()) }
