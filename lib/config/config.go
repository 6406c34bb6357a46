// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/timeflow/lib/cron"
)

// EnvironmentVariable names the plan file when no --plan flag is given.
const EnvironmentVariable = "TIMEFLOW_PLAN"

// Plan is a flow plan as written in a plan file. Instants and durations
// stay as strings until [Plan.Resolve] so that validation errors can
// name the offending field.
type Plan struct {
	// Start is the RFC 3339 instant the simulated clock is fixed to
	// before the flow begins.
	Start string `yaml:"start" json:"start"`

	// Step is how far simulated time moves per flow step.
	// Default: 1m
	Step string `yaml:"step" json:"step"`

	// End is the RFC 3339 instant the flow runs until. Exactly one of
	// End and Duration must be set.
	End string `yaml:"end" json:"end"`

	// Duration is the simulated span of the flow, measured from Start.
	Duration string `yaml:"duration" json:"duration"`

	// Speed is the real time spent per step.
	// Default: 10ms
	Speed string `yaml:"speed" json:"speed"`

	// Schedules maps schedule names to five-field cron expressions.
	Schedules map[string]string `yaml:"schedules" json:"schedules"`
}

// Default returns the plan values used when neither the plan file nor
// the command line sets them.
func Default() *Plan {
	return &Plan{
		Step:  "1m",
		Speed: "10ms",
	}
}

// Load loads the plan named by the TIMEFLOW_PLAN environment variable.
// There is no search path: if the variable is unset, Load fails.
func Load() (*Plan, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a plan file, or use --plan flag", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads a plan from path on top of [Default]. The format is
// chosen by extension: .yaml and .yml are YAML, .json and .jsonc are
// JSON with comments and trailing commas allowed. Unknown keys are
// rejected in both formats.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	plan := Default()
	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(plan); err != nil {
			return nil, fmt.Errorf("parsing plan %s: %w", path, err)
		}
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(plan); err != nil {
			return nil, fmt.Errorf("parsing plan %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("plan %s: unsupported extension %q (want .yaml, .yml, .json, or .jsonc)", path, extension)
	}
	return plan, nil
}

// Merge layers the non-empty fields of override on top of p. Setting
// End in override clears Duration and vice versa, so a command-line
// --duration replaces a plan file's end. Schedules merge by name.
func (p *Plan) Merge(override Plan) {
	if override.Start != "" {
		p.Start = override.Start
	}
	if override.Step != "" {
		p.Step = override.Step
	}
	if override.End != "" {
		p.End = override.End
		p.Duration = ""
	}
	if override.Duration != "" {
		p.Duration = override.Duration
		p.End = ""
	}
	if override.Speed != "" {
		p.Speed = override.Speed
	}
	if len(override.Schedules) > 0 && p.Schedules == nil {
		p.Schedules = make(map[string]string, len(override.Schedules))
	}
	for name, expression := range override.Schedules {
		p.Schedules[name] = expression
	}
}

// Flow is a validated plan, ready to drive a time controller.
type Flow struct {
	Start     time.Time
	Step      time.Duration
	End       time.Time
	Speed     time.Duration
	Schedules []NamedSchedule
}

// NamedSchedule is one plan schedule after parsing.
type NamedSchedule struct {
	Name     string
	Schedule cron.Schedule
}

// Steps returns how many flow steps the plan takes to reach End.
func (f *Flow) Steps() int64 {
	span := f.End.Sub(f.Start)
	steps := int64(span / f.Step)
	if span%f.Step != 0 {
		steps++
	}
	return steps
}

// Resolve validates p and converts it to a [Flow]. Every problem is
// reported, each prefixed with the field it concerns. Schedules are
// returned sorted by name.
func (p *Plan) Resolve() (*Flow, error) {
	var errs []error
	flow := &Flow{}

	if p.Start == "" {
		errs = append(errs, fmt.Errorf("start is required"))
	} else if start, err := time.Parse(time.RFC3339Nano, p.Start); err != nil {
		errs = append(errs, fmt.Errorf("start: %w", err))
	} else {
		flow.Start = start
	}

	flow.Step = positiveDuration("step", p.Step, &errs)
	flow.Speed = positiveDuration("speed", p.Speed, &errs)

	switch {
	case p.End != "" && p.Duration != "":
		errs = append(errs, fmt.Errorf("end and duration are mutually exclusive"))
	case p.End == "" && p.Duration == "":
		errs = append(errs, fmt.Errorf("one of end or duration is required"))
	case p.End != "":
		end, err := time.Parse(time.RFC3339Nano, p.End)
		if err != nil {
			errs = append(errs, fmt.Errorf("end: %w", err))
		} else if !flow.Start.IsZero() && !end.After(flow.Start) {
			errs = append(errs, fmt.Errorf("end must be after start"))
		} else {
			flow.End = end
		}
	default:
		if span := positiveDuration("duration", p.Duration, &errs); span > 0 {
			flow.End = flow.Start.Add(span)
		}
	}

	names := make([]string, 0, len(p.Schedules))
	for name := range p.Schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" {
			errs = append(errs, fmt.Errorf("schedules: empty schedule name"))
			continue
		}
		schedule, err := cron.Parse(p.Schedules[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("schedules.%s: %w", name, err))
			continue
		}
		flow.Schedules = append(flow.Schedules, NamedSchedule{Name: name, Schedule: schedule})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return flow, nil
}

func positiveDuration(field, value string, errs *[]error) time.Duration {
	if value == "" {
		*errs = append(*errs, fmt.Errorf("%s is required", field))
		return 0
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", field, err))
		return 0
	}
	if duration <= 0 {
		*errs = append(*errs, fmt.Errorf("%s must be positive, got %s", field, value))
		return 0
	}
	return duration
}
