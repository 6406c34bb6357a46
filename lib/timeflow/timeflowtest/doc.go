// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package timeflowtest controls the process-wide clock read through
// lib/timeflow. It is for tests only; production code reads time and
// never changes it.
//
// The [Controller] can:
//
//   - substitute the clock ([Controller.SetClock]) and restore the
//     original ([Controller.ResetClock]),
//   - jump it ([Controller.FastForward], [Controller.FastBackward]),
//   - animate it ([Controller.TimeFlow]): step forward at a controlled
//     real-time pace until an end instant, for exercising schedulers and
//     expiry logic,
//   - notify [Observer] callbacks after every jump and flow step.
//
// All mutations go through one mutex. Readers of timeflow.Now never
// take it.
//
// Observers are called with that mutex held, and it is not reentrant.
// An observer may read time (timeflow.Now, [Controller.Now], the
// source it is passed) but must not call SetClock, ResetClock,
// FastForward, FastBackward, TimeFlow, RegisterObserver,
// ClearObservers, SetPacer, SetLogger or String: any of them blocks
// forever, and the test hangs inside the mutation that notified the
// observer. A goroutine dump of such a hang shows the observer frame
// under notifyLocked waiting in sync.(*Mutex).Lock. An observer that
// needs to change the clock should hand the request to another
// goroutine.
//
// The clock is global, so a test that changes it must put it back.
// [Use] does that through t.Cleanup:
//
//	controller := timeflowtest.Use(t, clock.Fixed(epoch))
//	controller.FastForward(10 * time.Minute)
//	// timeflow.Now() == epoch + 10m everywhere in the process
//
// Flow simulation waits on a pacing clock between steps. By default
// that is the real clock; [Controller.SetPacer] with a clock.Fake makes
// the wait deterministic.
package timeflowtest
