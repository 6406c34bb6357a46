// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() } //nolint:realclock // the real clock

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) } //nolint:realclock // the real clock

func (realClock) Sleep(d time.Duration) { time.Sleep(d) } //nolint:realclock // the real clock
