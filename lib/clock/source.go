// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"fmt"
	"time"
)

// System returns a Source reading the wall clock in UTC. This is the
// source the process-wide time provider starts with.
func System() Source { return systemSource{} }

type systemSource struct{}

func (systemSource) Now() time.Time { return time.Now().UTC() } //nolint:realclock // the wall clock source

func (systemSource) String() string { return "system" }

// Fixed returns a Source that always reports instant.
func Fixed(instant time.Time) Source { return fixedSource{instant: instant} }

type fixedSource struct {
	instant time.Time
}

func (f fixedSource) Now() time.Time { return f.instant }

func (f fixedSource) String() string {
	return "fixed(" + f.instant.Format(time.RFC3339Nano) + ")"
}

// Offset returns a Source that reports base.Now() shifted by offset.
// A negative offset moves backward.
//
// Offsets collapse: offsetting a Fixed source yields another Fixed
// source, and offsetting an Offset source yields a single Offset over
// the original base. A flow of a thousand steps therefore reads through
// one level of indirection, not a thousand.
func Offset(base Source, offset time.Duration) Source {
	switch typed := base.(type) {
	case fixedSource:
		return fixedSource{instant: typed.instant.Add(offset)}
	case offsetSource:
		return offsetSource{base: typed.base, offset: typed.offset + offset}
	}
	return offsetSource{base: base, offset: offset}
}

type offsetSource struct {
	base   Source
	offset time.Duration
}

func (o offsetSource) Now() time.Time { return o.base.Now().Add(o.offset) }

func (o offsetSource) String() string {
	return fmt.Sprintf("offset(%v, %s)", o.base, o.offset)
}
