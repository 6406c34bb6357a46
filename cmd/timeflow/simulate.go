// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/timeflow/cmd/timeflow/cli"
	"github.com/bureau-foundation/timeflow/lib/clock"
	"github.com/bureau-foundation/timeflow/lib/config"
	"github.com/bureau-foundation/timeflow/lib/schedule"
	"github.com/bureau-foundation/timeflow/lib/timeflow"
	"github.com/bureau-foundation/timeflow/lib/timeflow/timeflowtest"
	"github.com/bureau-foundation/timeflow/lib/timeline"
	"github.com/bureau-foundation/timeflow/lib/tui"
)

type simulateParams struct {
	cli.JSONOutput
	Plan     string   `flag:"plan" desc:"flow plan file (.yaml, .yml, .json, .jsonc); default $TIMEFLOW_PLAN"`
	Start    string   `flag:"start" desc:"RFC 3339 start instant (default: now)"`
	Step     string   `flag:"step" desc:"simulated time per step (default: 1m)"`
	End      string   `flag:"end" desc:"RFC 3339 instant to flow until"`
	Duration string   `flag:"duration" desc:"simulated span to flow, instead of --end"`
	Speed    string   `flag:"speed" desc:"real time spent per step (default: 10ms)"`
	Cron     []string `flag:"cron" desc:"schedule as name=expression (repeatable)"`
	Record   string   `flag:"record" desc:"write the timeline to FILE (.zst or .lz4 compresses)"`
}

// simulateSummary is the --json output of simulate, and the source of
// its closing text lines.
type simulateSummary struct {
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Final       time.Time         `json:"final"`
	Step        string            `json:"step"`
	Speed       string            `json:"speed"`
	Steps       int               `json:"steps"`
	Schedules   []string          `json:"schedules"`
	Firings     []schedule.Firing `json:"firings"`
	Interrupted bool              `json:"interrupted"`
	Recording   string            `json:"recording,omitempty"`
	Digest      string            `json:"digest,omitempty"`
}

func simulateCommand(stdout io.Writer) *cli.Command {
	var params simulateParams

	return &cli.Command{
		Name:    "simulate",
		Summary: "Run a time flow and report schedule firings",
		Description: `Fix the process clock at the plan's start instant, then advance it one
step at a time until it reaches the end, pausing --speed of real time
before each step. After every step, each schedule's occurrences that the
step passed over are reported, in time order.

The plan comes from --plan, else from the file named by $TIMEFLOW_PLAN,
else from flags alone. Flags override plan values; --cron adds to or
replaces the plan's schedules by name.

On SIGINT or SIGTERM the flow stops after the step in progress, the
summary covers the steps taken, and the exit status is 130.`,
		Usage: "timeflow simulate [--plan FILE] [--start T] [--step D] [--end T | --duration D] [--speed D] [--cron name=expr]... [--record FILE] [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("simulate", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			flow, err := resolvePlan(&params)
			if err != nil {
				return err
			}
			return runSimulate(ctx, stdout, &params, flow, logger)
		},
	}
}

// resolvePlan loads the plan file, layers the flags on top, and
// validates the result.
func resolvePlan(params *simulateParams) (*config.Flow, error) {
	var plan *config.Plan
	var err error
	switch {
	case params.Plan != "":
		plan, err = config.LoadFile(params.Plan)
	case os.Getenv(config.EnvironmentVariable) != "":
		plan, err = config.Load()
	default:
		plan = config.Default()
	}
	if err != nil {
		return nil, err
	}

	schedules, err := parseCronFlags(params.Cron)
	if err != nil {
		return nil, err
	}
	plan.Merge(config.Plan{
		Start:     params.Start,
		Step:      params.Step,
		End:       params.End,
		Duration:  params.Duration,
		Speed:     params.Speed,
		Schedules: schedules,
	})
	if plan.Start == "" {
		plan.Start = timeflow.Now().Format(time.RFC3339Nano)
	}

	flow, err := plan.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid plan:\n%w", err)
	}
	return flow, nil
}

func parseCronFlags(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	schedules := make(map[string]string, len(values))
	for _, value := range values {
		name, expression, found := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("--cron %q: want name=expression", value)
		}
		schedules[name] = expression
	}
	return schedules, nil
}

func runSimulate(ctx context.Context, stdout io.Writer, params *simulateParams, flow *config.Flow, logger *slog.Logger) error {
	controller := timeflowtest.Instance()
	controller.SetLogger(logger)
	controller.SetClock(clock.Fixed(flow.Start))
	defer func() {
		controller.ClearObservers()
		controller.ResetClock()
		controller.SetLogger(nil)
	}()

	watcher := schedule.New(nil, logger)
	summary := simulateSummary{
		Start: flow.Start,
		End:   flow.End,
		Step:  flow.Step.String(),
		Speed: flow.Speed.String(),
	}
	for _, named := range flow.Schedules {
		if err := watcher.Add(named.Name, named.Schedule.String()); err != nil {
			return err
		}
		summary.Schedules = append(summary.Schedules, named.Name)
	}
	if _, err := watcher.Poll(); err != nil {
		return err
	}

	var recorder *timeline.Writer
	if params.Record != "" {
		var err error
		if recorder, err = timeline.Create(params.Record); err != nil {
			return err
		}
		summary.Recording = params.Record
	}

	// A failed schedule poll stops the flow after the current step.
	flowCtx, stopFlow := context.WithCancel(ctx)
	defer stopFlow()

	printer := newStepPrinter(stdout, cli.IsTerminal(stdout), params.OutputJSON)
	var recordErr, pollErr error
	controller.RegisterObserver(watcher.Observe)
	controller.RegisterObserver(func(active clock.Source) {
		instant := active.Now()
		firings, err := watcher.Drain()
		if err != nil && pollErr == nil {
			pollErr = err
			stopFlow()
		}
		summary.Steps++
		summary.Firings = append(summary.Firings, firings...)
		if recorder != nil && recordErr == nil {
			if _, err := recorder.Append(instant, firings); err != nil {
				recordErr = err
			}
		}
		printer.step(summary.Steps, instant, firings)
	})

	logger.Info("time flow starting",
		"start", flow.Start,
		"end", flow.End,
		"step", flow.Step,
		"speed", flow.Speed,
		"expected_steps", flow.Steps(),
		"schedules", len(flow.Schedules),
	)
	flowErr := controller.TimeFlow(flowCtx, flow.Step, flow.End, flow.Speed)
	summary.Final = controller.Now()
	summary.Interrupted = pollErr == nil && errors.Is(flowErr, timeflowtest.ErrFlowInterrupted)

	if recorder != nil {
		digest, err := recorder.Close()
		if err != nil && recordErr == nil {
			recordErr = err
		}
		summary.Digest = digest
	}

	switch {
	case pollErr != nil:
		return fmt.Errorf("polling schedules: %w", pollErr)
	case flowErr != nil && !summary.Interrupted:
		return fmt.Errorf("running time flow: %w", flowErr)
	case recordErr != nil:
		return fmt.Errorf("recording timeline: %w", recordErr)
	}

	logger.Info("time flow finished",
		"steps", summary.Steps,
		"firings", len(summary.Firings),
		"interrupted", summary.Interrupted,
	)
	if done, err := params.EmitJSON(stdout, summary); done {
		if err != nil {
			return err
		}
	} else {
		printer.summary(summary)
	}

	if summary.Interrupted {
		return &cli.ExitError{Code: cli.ExitInterrupted}
	}
	return nil
}

// stepPrinter writes the per-step text lines and the closing summary.
// In JSON mode it prints nothing per step.
type stepPrinter struct {
	w      io.Writer
	styles tui.Styles
	quiet  bool
}

func newStepPrinter(w io.Writer, styled, quiet bool) *stepPrinter {
	return &stepPrinter{w: w, styles: tui.DefaultTheme.Styles(w, styled), quiet: quiet}
}

func (p *stepPrinter) step(number int, instant time.Time, firings []schedule.Firing) {
	if p.quiet {
		return
	}
	line := p.styles.Faint.Render(fmt.Sprintf("%6d", number)) + "  " +
		p.styles.Instant.Render(instant.UTC().Format(time.RFC3339))
	for _, firing := range firings {
		line += "  " + p.styles.Firing.Render(firing.Schedule) +
			p.styles.Faint.Render("@"+firing.At.UTC().Format("15:04"))
	}
	fmt.Fprintln(p.w, line)
}

func (p *stepPrinter) summary(summary simulateSummary) {
	fmt.Fprintln(p.w, p.styles.Header.Render(fmt.Sprintf("simulated %s to %s in %d steps, %d firings",
		summary.Start.UTC().Format(time.RFC3339),
		summary.Final.UTC().Format(time.RFC3339),
		summary.Steps,
		len(summary.Firings),
	)))
	if summary.Interrupted {
		fmt.Fprintln(p.w, p.styles.Warning.Render(fmt.Sprintf("interrupted before %s",
			summary.End.UTC().Format(time.RFC3339))))
	}
	if summary.Recording != "" {
		fmt.Fprintf(p.w, "recorded %s  %s\n", summary.Recording,
			p.styles.Digest.Render("blake3:"+summary.Digest))
	}
}
