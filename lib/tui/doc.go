// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the shared terminal styling for timeflow's
// commands: a color [Theme], its [Styles] bound to one output, and
// ANSI-aware alignment. Commands print plain text when their output is
// not a terminal and the same text with 256-color styling when it is.
package tui
