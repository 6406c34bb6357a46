// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"simulate", "simulte", 1},
		{"inspect", "inpsect", 2},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			if got := levenshtein(test.a, test.b); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if got := levenshtein(test.b, test.a); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, got, test.want)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	names := []string{"simulate", "inspect", "now", "version"}

	tests := []struct {
		input string
		want  string
	}{
		{"simulat", "simulate"},
		{"insepct", "inspect"},
		{"nwo", "now"},
		{"verison", "version"},
		{"zzzzzzzzz", ""},
		{"", "now"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			if got := closest(test.input, names); got != test.want {
				t.Errorf("closest(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	makeFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flagSet.String("start", "", "")
		flagSet.String("duration", "", "")
		flagSet.String("record", "", "")
		flagSet.BoolP("verbose", "v", false, "")
		flagSet.Bool("json", false, "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"close typo with double dash", []string{"--duraton"}, "--duration"},
		{"close typo with single dash", []string{"-duraton"}, "--duration"},
		{"known flags are skipped", []string{"--start", "x", "-v", "--recrod"}, "--record"},
		{"nothing close", []string{"--zzzzzzzzz"}, ""},
		{"no flags", []string{"positional"}, ""},
		{"flag with equals", []string{"--strat=2026-02-18T00:00:00Z"}, "--start"},
		{"after terminator", []string{"--", "--duraton"}, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, makeFlagSet()); got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
