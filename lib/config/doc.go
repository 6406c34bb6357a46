// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads flow plans: the start instant, step, end, speed,
// and cron schedules of a simulated time flow.
//
// A plan is loaded from a single file specified by either the
// TIMEFLOW_PLAN environment variable (via [Load]) or a --plan flag (via
// [LoadFile]). There are no fallbacks and no automatic file search.
// YAML and JSON-with-comments are both accepted, chosen by extension.
//
// Command-line values are layered on top with [Plan.Merge], and
// [Plan.Resolve] validates the result into a [Flow]. Validation
// collects every problem at once, each naming its field:
//
//	start: parsing time "yesterday" as "2006-01-02T15:04:05Z07:00": ...
//	speed must be positive, got 0s
//	schedules.backup: cron: expected 5 fields, got 3
package config
