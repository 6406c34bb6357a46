// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the time primitives behind the process-wide
// time provider.
//
// A [Source] produces the current instant. Production code never holds
// one directly; it reads the active source through lib/timeflow. Tests
// install substitutes through lib/timeflow/timeflowtest:
//
//   - [System] reads the wall clock in UTC (the provider's default).
//   - [Fixed] always reports the same instant.
//   - [Offset] shifts another source by a duration. Fast-forward and
//     fast-backward are built from it.
//
// A [Clock] is a Source that can also wait. [Real] waits on the wall
// clock; [Fake] waits until a test moves it with Advance or Set. The
// flow simulation sleeps on a Clock between steps, so a test can drive a
// ten-step flow without ten real pauses:
//
//	pacer := clock.Fake(epoch)
//	controller.SetPacer(pacer)
//	go controller.TimeFlow(ctx, time.Minute, end, time.Second)
//	for range 10 {
//	    pacer.WaitForTimers(1)
//	    pacer.Advance(time.Second)
//	}
//
// Only this package calls time.Now, time.After, and time.Sleep
// directly; each call site carries a //nolint:realclock annotation.
package clock
