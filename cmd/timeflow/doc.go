// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// timeflow drives the process-wide time controller from the command
// line.
//
// "timeflow simulate" fixes the clock at a plan's start instant and
// runs a paced time flow to its end, reporting every cron firing the
// flow passes and optionally recording the flow as a timeline.
// "timeflow inspect" prints a recording, "timeflow now" prints the
// provider's current instant, and "timeflow version" prints build
// information.
//
// Exit status is 0 on success, 1 on error, and 130 when a flow is
// interrupted by SIGINT or SIGTERM (after printing what ran).
package main
