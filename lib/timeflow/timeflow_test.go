// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package timeflow_test

import (
	"testing"
	"time"

	"github.com/bureau-foundation/timeflow/lib/clock"
	"github.com/bureau-foundation/timeflow/lib/timeflow"
	"github.com/bureau-foundation/timeflow/lib/timeflow/timeflowtest"
)

var epoch = time.Date(1983, 10, 23, 8, 15, 0, 0, time.UTC)

func TestNowDefaultsToWallClock(t *testing.T) {
	before := time.Now() //nolint:realclock // comparing against the wall clock
	now := timeflow.Now()
	after := time.Now() //nolint:realclock // comparing against the wall clock

	if now.Before(before.Add(-time.Millisecond)) || now.After(after.Add(time.Millisecond)) {
		t.Fatalf("Now() = %v, want between %v and %v", now, before, after)
	}
	if now.Location() != time.UTC {
		t.Fatalf("Now().Location() = %v, want UTC", now.Location())
	}
}

func TestClockReadsLikeNow(t *testing.T) {
	source := timeflow.Clock()
	delta := source.Now().Sub(timeflow.Now())
	if delta < -time.Millisecond || delta > time.Millisecond {
		t.Fatalf("Clock().Now() and Now() differ by %v", delta)
	}
}

func TestInstanceIsSingleton(t *testing.T) {
	if timeflow.Instance() != timeflow.Instance() {
		t.Fatal("Instance() returned different providers")
	}
}

func TestSubstitutionIsVisibleToProvider(t *testing.T) {
	timeflowtest.Use(t, clock.Fixed(epoch))

	if got := timeflow.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	if got := timeflow.Instance().Clock().Now(); !got.Equal(epoch) {
		t.Fatalf("Instance().Clock().Now() = %v, want %v", got, epoch)
	}
}

func TestClockIsSnapshot(t *testing.T) {
	controller := timeflowtest.Use(t, clock.Fixed(epoch))

	held := timeflow.Clock()
	controller.FastForward(time.Hour)

	if got := held.Now(); !got.Equal(epoch) {
		t.Fatalf("previously returned Clock().Now() = %v, want %v", got, epoch)
	}
	if got := timeflow.Now(); !got.Equal(epoch.Add(time.Hour)) {
		t.Fatalf("Now() = %v, want %v", got, epoch.Add(time.Hour))
	}
}

func TestSinceAndUntil(t *testing.T) {
	controller := timeflowtest.Use(t, clock.Fixed(epoch))

	deadline := epoch.Add(30 * time.Minute)
	if got := timeflow.Until(deadline); got != 30*time.Minute {
		t.Fatalf("Until() = %v, want 30m", got)
	}

	controller.FastForward(45 * time.Minute)
	if got := timeflow.Since(deadline); got != 15*time.Minute {
		t.Fatalf("Since() = %v, want 15m", got)
	}
}
