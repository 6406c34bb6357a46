// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

var discard = slog.New(slog.DiscardHandler)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name:   "timeflow",
		Logger: discard,
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "simulate",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "simulate"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"simulate"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "simulate" {
		t.Errorf("dispatched to %q, want %q", called, "simulate")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string
	var logged bytes.Buffer

	root := &Command{
		Name:   "timeflow",
		Logger: slog.New(slog.NewTextHandler(&logged, nil)),
		Subcommands: []*Command{
			{
				Name: "recording",
				Subcommands: []*Command{
					{
						Name: "inspect",
						Run: func(_ context.Context, args []string, logger *slog.Logger) error {
							receivedArgs = args
							logger.Info("inspecting")
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"recording", "inspect", "flow.cbor"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "flow.cbor" {
		t.Errorf("args = %v, want [flow.cbor]", receivedArgs)
	}
	if !strings.Contains(logged.String(), "command=recording/inspect") {
		t.Errorf("log output = %q, want command=recording/inspect", logged.String())
	}
}

func TestCommand_Execute_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var got any
	command := &Command{
		Name:   "now",
		Logger: discard,
		Run: func(ctx context.Context, _ []string, _ *slog.Logger) error {
			got = ctx.Value(key{})
			return nil
		},
	}
	if err := command.Execute(ctx, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got != "marker" {
		t.Errorf("ctx value = %v, want marker", got)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var speed string
	var target string

	command := &Command{
		Name:   "inspect",
		Logger: discard,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.StringVar(&speed, "speed", "10ms", "real time per step")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--speed", "1ms", "flow.cbor"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if speed != "1ms" {
		t.Errorf("speed = %q, want %q", speed, "1ms")
	}
	if target != "flow.cbor" {
		t.Errorf("target = %q, want %q", target, "flow.cbor")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "inspect",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.Bool("diagnose", false, "print CBOR diagnostic notation")
			flagSet.Bool("json", false, "output as JSON")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--diagnsoe"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	message := err.Error()
	if !strings.Contains(message, "did you mean --diagnose") {
		t.Errorf("error = %q, want suggestion for '--diagnose'", message)
	}
	if !strings.Contains(message, "diagnsoe") {
		t.Errorf("error = %q, should mention the bad flag", message)
	}
	if !strings.Contains(message, "--help") {
		t.Errorf("error = %q, should point to --help", message)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "inspect",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.Bool("diagnose", false, "print CBOR diagnostic notation")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommand(t *testing.T) {
	root := &Command{
		Name: "timeflow",
		Subcommands: []*Command{
			{Name: "simulate"},
			{Name: "inspect"},
			{Name: "version"},
		},
	}

	err := root.Execute(context.Background(), []string{"simulte"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "simulate"`) {
		t.Errorf("error = %q, want suggestion for 'simulate'", err.Error())
	}

	err = root.Execute(context.Background(), []string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var help bytes.Buffer
			root := &Command{
				Name:       "timeflow",
				Summary:    "Controllable process time",
				HelpOutput: &help,
				Subcommands: []*Command{
					{Name: "simulate", Summary: "Run a flow plan"},
				},
			}

			if err := root.Execute(context.Background(), []string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
			if !strings.Contains(help.String(), "Run a flow plan") {
				t.Errorf("help output = %q", help.String())
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "timeflow",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "simulate", Summary: "Run a flow plan"},
		},
	}

	err := root.Execute(context.Background(), []string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
	if !strings.Contains(help.String(), "Commands:") {
		t.Errorf("help output = %q, want command listing", help.String())
	}
}

func TestCommand_Execute_RunError(t *testing.T) {
	command := &Command{
		Name:   "simulate",
		Logger: discard,
		Run: func(context.Context, []string, *slog.Logger) error {
			return &ExitError{Code: ExitInterrupted}
		},
	}

	err := command.Execute(context.Background(), nil)
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 130 {
		t.Fatalf("Execute() = %v, want exit code 130", err)
	}
	if err.Error() != "exit code 130" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "timeflow",
		Description: "Controllable process time.",
		Subcommands: []*Command{
			{Name: "simulate", Summary: "Run a flow plan"},
			{Name: "inspect", Summary: "Print a recorded timeline"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Simulate a day in five-minute steps",
				Command:     "timeflow simulate --start 2026-02-18T00:00:00Z --duration 24h --step 5m",
			},
			{Command: "timeflow inspect flow.cbor.zst"},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Controllable process time.",
		"Usage:",
		"timeflow <command> [flags]",
		"Commands:",
		"simulate",
		"Run a flow plan",
		"Examples:",
		"# Simulate a day in five-minute steps",
		"timeflow inspect flow.cbor.zst",
		"Run 'timeflow <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "inspect",
		Summary: "Print a recorded timeline",
		Usage:   "timeflow inspect <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.Bool("diagnose", false, "print CBOR diagnostic notation")
			flagSet.Bool("json", false, "output as JSON")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"timeflow inspect <file> [flags]",
		"Flags:",
		"--diagnose",
		"print CBOR diagnostic notation",
		"--json",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_Names(t *testing.T) {
	root := &Command{Name: "timeflow"}
	recording := &Command{Name: "recording", parent: root}
	inspect := &Command{Name: "inspect", parent: recording}

	tests := []struct {
		command  *Command
		fullName string
		path     string
	}{
		{root, "timeflow", "timeflow"},
		{recording, "timeflow recording", "recording"},
		{inspect, "timeflow recording inspect", "recording/inspect"},
	}
	for _, test := range tests {
		if got := test.command.fullName(); got != test.fullName {
			t.Errorf("fullName() = %q, want %q", got, test.fullName)
		}
		if got := test.command.path(); got != test.path {
			t.Errorf("path() = %q, want %q", got, test.path)
		}
		if test.command.root() != root {
			t.Errorf("%s: root() is not the root", test.fullName)
		}
	}
}
