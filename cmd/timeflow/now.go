// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/timeflow/cmd/timeflow/cli"
	"github.com/bureau-foundation/timeflow/lib/timeflow"
)

type nowParams struct {
	cli.JSONOutput
}

type nowReport struct {
	Now      time.Time `json:"now"`
	UnixNano int64     `json:"unix_nano"`
	Clock    string    `json:"clock"`
}

func nowCommand(stdout io.Writer) *cli.Command {
	var params nowParams

	return &cli.Command{
		Name:    "now",
		Summary: "Print the process clock's current instant",
		Description: `Print the instant of the process-wide time provider in RFC 3339 form.
Outside a simulation this is the system clock in UTC.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("now", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			now := timeflow.Now()
			report := nowReport{
				Now:      now,
				UnixNano: now.UnixNano(),
				Clock:    fmt.Sprint(timeflow.Clock()),
			}
			if done, err := params.EmitJSON(stdout, report); done {
				return err
			}
			fmt.Fprintln(stdout, now.Format(time.RFC3339Nano))
			return nil
		},
	}
}
