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
	"github.com/bureau-foundation/timeflow/lib/codec"
	"github.com/bureau-foundation/timeflow/lib/timeline"
	"github.com/bureau-foundation/timeflow/lib/tui"
)

type inspectParams struct {
	cli.JSONOutput
	Diagnose bool `flag:"diagnose" desc:"print each record in CBOR diagnostic notation"`
}

type inspectReport struct {
	Path        string            `json:"path"`
	Compression string            `json:"compression"`
	Digest      string            `json:"digest"`
	Records     []timeline.Record `json:"records"`
}

func inspectCommand(stdout io.Writer) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Print a recorded timeline",
		Description: `Print the records of a timeline written by "timeflow simulate --record",
followed by the BLAKE3 digest of its uncompressed content. Two
recordings of the same plan have the same digest.`,
		Usage: "timeflow inspect <file> [--json | --diagnose]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one recording path, got %d arguments", len(args))
			}
			if params.Diagnose && params.OutputJSON {
				return fmt.Errorf("--diagnose and --json are mutually exclusive")
			}
			path := args[0]
			logger.Debug("inspecting timeline", "path", path)

			if params.Diagnose {
				return diagnoseTimeline(stdout, path)
			}

			records, digest, err := timeline.ReadFile(path)
			if err != nil {
				return err
			}
			report := inspectReport{
				Path:        path,
				Compression: timeline.CompressionFor(path).String(),
				Digest:      digest,
				Records:     records,
			}
			if done, err := params.EmitJSON(stdout, report); done {
				return err
			}
			printReport(stdout, cli.IsTerminal(stdout), report)
			return nil
		},
	}
}

func printReport(w io.Writer, styled bool, report inspectReport) {
	styles := tui.DefaultTheme.Styles(w, styled)

	firings := 0
	for _, record := range report.Records {
		firings += len(record.Firings)
		line := styles.Faint.Render(fmt.Sprintf("%6d", record.Sequence)) + "  " +
			styles.Instant.Render(record.Instant.UTC().Format(time.RFC3339))
		for _, firing := range record.Firings {
			line += "  " + styles.Firing.Render(firing.Schedule) +
				styles.Faint.Render("@"+firing.At.UTC().Format("15:04"))
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("%s: %d records, %d firings (%s)",
		report.Path, len(report.Records), firings, report.Compression)))
	fmt.Fprintln(w, tui.PadRight("digest", 8)+styles.Digest.Render("blake3:"+report.Digest))
}

// diagnoseTimeline prints each record of the recording at path in CBOR
// diagnostic notation, one per line.
func diagnoseTimeline(w io.Writer, path string) error {
	raw, err := timeline.RawFile(path)
	if err != nil {
		return err
	}
	for index := 1; len(raw) > 0; index++ {
		diagnostic, rest, err := codec.DiagnoseFirst(raw)
		if err != nil {
			return fmt.Errorf("diagnosing record %d of %s: %w", index, path, err)
		}
		fmt.Fprintln(w, diagnostic)
		raw = rest
	}
	return nil
}
