// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package timeflowtest

import (
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/timeflow/lib/clock"
)

// Use installs source as the process-wide clock for the duration of the
// test and returns the controller. Cleanup clears observers, resets the
// clock, and restores the real pacer, whether or not the test itself
// touched the controller again.
//
//	func TestExpiry(t *testing.T) {
//	    controller := timeflowtest.Use(t, clock.Fixed(epoch))
//	    session := newSession()
//	    controller.FastForward(2 * time.Hour)
//	    if !session.Expired() { ... }
//	}
//
// The clock is process-wide: tests calling Use must not run in
// parallel with each other or with tests reading timeflow.Now.
func Use(t testing.TB, source clock.Source) *Controller {
	t.Helper()
	controller := Instance()
	controller.SetClock(source)
	t.Cleanup(func() {
		controller.ClearObservers()
		controller.ResetClock()
		controller.SetPacer(nil)
	})
	return controller
}

// Recorder is an Observer that remembers the instant of every
// notification. Safe for concurrent use.
//
//	var recorder timeflowtest.Recorder
//	controller.RegisterObserver(recorder.Observe)
type Recorder struct {
	mu       sync.Mutex
	instants []time.Time
}

// Observe records source.Now(). Pass it to RegisterObserver.
func (r *Recorder) Observe(source clock.Source) {
	now := source.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instants = append(r.instants, now)
}

// Instants returns a copy of the recorded instants in notification
// order.
func (r *Recorder) Instants() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.instants...)
}

// Count returns the number of notifications recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instants)
}
