// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"

	"github.com/bureau-foundation/timeflow/cmd/timeflow/cli"
)

// rootCommand builds the command tree. Every command writes its
// results to stdout; logs and help go to stderr.
func rootCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "timeflow",
		Description: `timeflow: controllable process time.

Simulate the passage of time against a set of cron schedules, record
the flow as a CBOR timeline, and inspect recordings.`,
		Subcommands: []*cli.Command{
			simulateCommand(stdout),
			inspectCommand(stdout),
			nowCommand(stdout),
			versionCommand(stdout),
		},
		Examples: []cli.Example{
			{
				Description: "Simulate a day in five-minute steps against a plan file",
				Command:     "timeflow simulate --plan nightly.yaml",
			},
			{
				Description: "Simulate an hour from a fixed start with one schedule",
				Command:     "timeflow simulate --start 2026-02-18T10:00:00Z --duration 1h --step 5m --cron quarter='*/15 * * * *'",
			},
			{
				Description: "Record a flow and print its digest later",
				Command:     "timeflow simulate --plan nightly.yaml --record nightly.cbor.zst && timeflow inspect nightly.cbor.zst",
			},
		},
	}
}
