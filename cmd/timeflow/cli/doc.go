// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the timeflow CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/timeflow and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// Flags are usually declared as tagged struct fields and bound with
// [FlagsFromParams]; [JSONOutput] adds the shared --json flag.
//
// When a user types an unknown subcommand or flag, the framework
// suggests the closest known name by edit distance (at most 3).
package cli
