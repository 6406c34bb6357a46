// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Source produces the current instant. It is the only capability the
// process-wide time provider needs: System, Fixed, Offset, Real, Fake,
// and any third-party clock with a Now method all satisfy it.
type Source interface {
	// Now returns the current time.
	Now() time.Time
}

// Clock is a Source that can also wait. The controller paces flow
// simulation through a Clock so tests can replace real sleeps with
// Fake().Advance.
type Clock interface {
	Source

	// After returns a channel that receives the current time after
	// duration d elapses. Equivalent to time.After. If d <= 0, the
	// channel receives immediately.
	After(d time.Duration) <-chan time.Time

	// Sleep pauses the current goroutine for at least duration d.
	// Equivalent to time.Sleep.
	Sleep(d time.Duration)
}
