// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron parses standard 5-field cron expressions and finds the
// minutes they match.
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12)
//	│ │ │ │ ┌───────────── day of week (0-6, 0=Sunday)
//	│ │ │ │ │
//	* * * * *
//
// Each field accepts values (5), ranges (1-5), lists (1,3,5), steps
// (*/15, 1-30/5), and the wildcard. All times are UTC. There are no
// @yearly-style shortcuts, no seconds field, and no named days or
// months.
//
// [Schedule.Next] finds the following match; [Schedule.Between] lists
// the matches in an interval, which is what the schedule watcher needs
// after a clock jump.
package cron
