// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field positions in an expression.
const (
	minuteField = iota
	hourField
	dayOfMonthField
	monthField
	dayOfWeekField
	fieldCount
)

// fieldSpecs gives each position its name and inclusive bounds.
var fieldSpecs = [fieldCount]struct {
	name     string
	min, max int
}{
	minuteField:     {"minute", 0, 59},
	hourField:       {"hour", 0, 23},
	dayOfMonthField: {"day-of-month", 1, 31},
	monthField:      {"month", 1, 12},
	dayOfWeekField:  {"day-of-week", 0, 6},
}

// searchHorizon bounds Next. Four years covers every leap-year cycle,
// so an expression with no match inside it (Feb 31) never matches.
const searchHorizon = 4

// Schedule is a parsed cron expression.
type Schedule struct {
	expression string
	fields     [fieldCount]bitset64
}

// bitset64 is a set of integers 0-63.
type bitset64 uint64

func (b bitset64) has(value int) bool { return b&(1<<uint(value)) != 0 }
func (b *bitset64) set(value int)     { *b |= 1 << uint(value) }

// Parse parses a 5-field cron expression.
func Parse(expression string) (Schedule, error) {
	terms := strings.Fields(expression)
	if len(terms) != fieldCount {
		return Schedule{}, fmt.Errorf("cron: expected %d fields, got %d", fieldCount, len(terms))
	}

	schedule := Schedule{expression: strings.Join(terms, " ")}
	for position, term := range terms {
		spec := fieldSpecs[position]
		bits, err := parseField(term, spec.min, spec.max)
		if err != nil {
			return Schedule{}, fmt.Errorf("cron: %s field: %w", spec.name, err)
		}
		schedule.fields[position] = bits
	}
	return schedule, nil
}

// String returns the expression the schedule was parsed from, with
// whitespace normalized.
func (s Schedule) String() string { return s.expression }

// matchesDay reports whether the day of t satisfies both the
// day-of-month and the day-of-week fields. A wildcard field has every
// bit set, so requiring both is the usual cron semantics whenever at
// most one of the two is restricted.
func (s Schedule) matchesDay(t time.Time) bool {
	return s.fields[dayOfMonthField].has(t.Day()) && s.fields[dayOfWeekField].has(int(t.Weekday()))
}

// Next returns the earliest matching minute strictly after t, in UTC.
// Returns an error when nothing matches within four years of t.
func (s Schedule) Next(t time.Time) (time.Time, error) {
	cursor := t.UTC().Truncate(time.Minute).Add(time.Minute)
	limit := cursor.AddDate(searchHorizon, 0, 0)

	for cursor.Before(limit) {
		year, month, day := cursor.Date()
		switch {
		case !s.fields[monthField].has(int(month)):
			cursor = time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
		case !s.matchesDay(cursor):
			cursor = time.Date(year, month, day+1, 0, 0, 0, 0, time.UTC)
		case !s.fields[hourField].has(cursor.Hour()):
			cursor = time.Date(year, month, day, cursor.Hour()+1, 0, 0, 0, time.UTC)
		case !s.fields[minuteField].has(cursor.Minute()):
			cursor = cursor.Add(time.Minute)
		default:
			return cursor, nil
		}
	}
	return time.Time{}, fmt.Errorf("cron: %q has no match within %d years of %s",
		s.expression, searchHorizon, t.UTC().Format(time.RFC3339))
}

// Between returns every matching minute in (after, through], oldest
// first. An empty or inverted interval yields nothing.
func (s Schedule) Between(after, through time.Time) ([]time.Time, error) {
	var matches []time.Time
	cursor := after
	for cursor.Before(through) {
		next, err := s.Next(cursor)
		if err != nil {
			return nil, err
		}
		if next.After(through) {
			break
		}
		matches = append(matches, next)
		cursor = next
	}
	return matches, nil
}

// parseField parses a comma-separated list of terms into a bitset.
func parseField(field string, minimum, maximum int) (bitset64, error) {
	var result bitset64
	for _, term := range strings.Split(field, ",") {
		bits, err := parseTerm(term, minimum, maximum)
		if err != nil {
			return 0, err
		}
		result |= bits
	}
	return result, nil
}

// parseTerm parses one of: *, */N, V, V-V, V-V/N.
func parseTerm(term string, minimum, maximum int) (bitset64, error) {
	span, stepText, stepped := strings.Cut(term, "/")
	step := 1
	if stepped {
		parsed, err := strconv.Atoi(stepText)
		if err != nil {
			return 0, fmt.Errorf("invalid step %q: %w", stepText, err)
		}
		if parsed <= 0 {
			return 0, fmt.Errorf("step must be positive, got %d", parsed)
		}
		step = parsed
	}

	low, high, err := parseSpan(span, minimum, maximum)
	if err != nil {
		return 0, err
	}
	if low < minimum || high > maximum {
		return 0, fmt.Errorf("value out of range [%d-%d]: got %d-%d", minimum, maximum, low, high)
	}

	var result bitset64
	for value := low; value <= high; value += step {
		result.set(value)
	}
	return result, nil
}

// parseSpan parses the part of a term before any step: a wildcard, a
// single value, or an inclusive range.
func parseSpan(span string, minimum, maximum int) (int, int, error) {
	if span == "*" {
		return minimum, maximum, nil
	}

	lowText, highText, isRange := strings.Cut(span, "-")
	if !isRange {
		value, err := strconv.Atoi(span)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid value %q: %w", span, err)
		}
		return value, value, nil
	}

	low, err := strconv.Atoi(lowText)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q: %w", lowText, err)
	}
	high, err := strconv.Atoi(highText)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q: %w", highText, err)
	}
	if low > high {
		return 0, 0, fmt.Errorf("range start %d > end %d", low, high)
	}
	return low, high, nil
}
