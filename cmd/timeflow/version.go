// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/timeflow/cmd/timeflow/cli"
	"github.com/bureau-foundation/timeflow/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(stdout io.Writer) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(context.Context, []string, *slog.Logger) error {
			if done, err := params.EmitJSON(stdout, version.Current()); done {
				return err
			}
			fmt.Fprintf(stdout, "timeflow %s\n", version.Full())
			return nil
		},
	}
}
