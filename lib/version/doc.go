// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the timeflow
// binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/timeflow/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When a variable is left at its default ("unknown", "false"), [Current]
// falls back to the VCS stamp in the binary's embedded build info, so a
// plain "go build" from a checkout still reports its commit.
//
//   - [Current] -- the resolved [Build], also emitted by "timeflow version --json"
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full] -- Info plus Go version and GOOS/GOARCH
package version
