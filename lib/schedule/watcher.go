// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bureau-foundation/timeflow/lib/clock"
	"github.com/bureau-foundation/timeflow/lib/cron"
	"github.com/bureau-foundation/timeflow/lib/timeflow"
)

// Firing is one cron occurrence that became due.
type Firing struct {
	// Schedule is the name the schedule was added under.
	Schedule string `json:"schedule"`

	// At is the matching minute, in UTC.
	At time.Time `json:"at"`
}

// Watcher reports cron occurrences as time passes. It keeps the instant
// of the previous poll and, on each poll, returns every occurrence in
// (previous, now]. A jump of several hours therefore yields every
// occurrence it skipped over, not just the latest.
//
// Watcher is safe for concurrent use.
type Watcher struct {
	source clock.Source
	logger *slog.Logger

	mu        sync.Mutex
	entries   []entry
	baseline  time.Time
	hasPolled bool
	pending   []Firing

	// pollErr is the first error Observe hit since the last Drain.
	pollErr error
}

type entry struct {
	name     string
	schedule cron.Schedule
}

// New returns a Watcher reading time from source. A nil source reads
// the process-wide clock through timeflow.Instance(); a nil logger
// discards.
func New(source clock.Source, logger *slog.Logger) *Watcher {
	if source == nil {
		source = timeflow.Instance()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{source: source, logger: logger}
}

// Add registers a cron expression under name. Names must be unique,
// and the expression must match at least once within four years of
// now.
func (w *Watcher) Add(name, expression string) error {
	parsed, err := cron.Parse(expression)
	if err != nil {
		return fmt.Errorf("schedule %q: %w", name, err)
	}
	if _, err := parsed.Next(w.source.Now()); err != nil {
		return fmt.Errorf("schedule %q: %w", name, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.entries {
		if existing.name == name {
			return fmt.Errorf("schedule %q already added", name)
		}
	}
	w.entries = append(w.entries, entry{name: name, schedule: parsed})
	return nil
}

// Names returns the schedule names in the order they were added.
func (w *Watcher) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, len(w.entries))
	for i, existing := range w.entries {
		names[i] = existing.name
	}
	return names
}

// Poll returns the occurrences that became due since the previous
// poll, ordered by time and then by schedule name. The first poll only
// records the baseline and returns nothing. If time moved backward
// since the previous poll, nothing is returned and the baseline moves
// back with it.
func (w *Watcher) Poll() ([]Firing, error) {
	return w.pollAt(w.source.Now())
}

func (w *Watcher) pollAt(now time.Time) ([]Firing, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.hasPolled || !now.After(w.baseline) {
		w.baseline = now
		w.hasPolled = true
		return nil, nil
	}

	var firings []Firing
	for _, existing := range w.entries {
		matches, err := existing.schedule.Between(w.baseline, now)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", existing.name, err)
		}
		for _, at := range matches {
			firings = append(firings, Firing{Schedule: existing.name, At: at})
		}
	}
	sort.SliceStable(firings, func(i, j int) bool {
		if !firings[i].At.Equal(firings[j].At) {
			return firings[i].At.Before(firings[j].At)
		}
		return firings[i].Schedule < firings[j].Schedule
	})

	w.baseline = now
	return firings, nil
}

// Observe polls at the instant of active and queues the resulting
// firings for Drain. Its signature matches timeflowtest.Observer, so a
// Watcher can follow a controller directly:
//
//	controller.RegisterObserver(watcher.Observe)
//
// Observers cannot return errors, so a failed poll is kept and
// reported by the next Drain.
func (w *Watcher) Observe(active clock.Source) {
	firings, err := w.pollAt(active.Now())

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.logger.Error("polling schedules", "error", err)
		if w.pollErr == nil {
			w.pollErr = err
		}
		return
	}
	w.pending = append(w.pending, firings...)
}

// Drain returns and clears the firings queued by Observe, together
// with the first poll error Observe hit since the previous Drain.
func (w *Watcher) Drain() ([]Firing, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	drained, err := w.pending, w.pollErr
	w.pending, w.pollErr = nil, nil
	return drained, err
}
