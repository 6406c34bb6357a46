// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schedule turns cron expressions into due occurrences as the
// process-wide clock moves.
//
// A [Watcher] is ordinary production code: it reads time through
// lib/timeflow and never sleeps or sets timers. Callers poll it from
// whatever loop they already have. Under test, the same Watcher can be
// driven by a timeflowtest controller, either by polling after
// FastForward or by registering [Watcher.Observe] so every flow step
// polls automatically.
package schedule
