// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package timeflowtest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/timeflow/lib/clock"
	"github.com/bureau-foundation/timeflow/lib/timeflow/internal/cell"
)

// Observer is notified after every FastForward, FastBackward, and
// TimeFlow step with the newly active clock. Observers run
// synchronously on the mutating goroutine while the controller is
// locked: they may read time, but calling a controller method other
// than Now or Clock deadlocks (see the package documentation).
type Observer func(clock.Source)

// Controller is the single writer of the process-wide clock read by
// lib/timeflow. All mutating methods are mutually exclusive.
type Controller struct {
	cell *cell.Cell

	// mu guards everything below, and every write to cell.
	mu sync.Mutex

	// original is the clock that was active before the first SetClock
	// of the current substitution, or nil when no substitution is
	// active.
	original clock.Source

	observers []Observer

	// pacer supplies the real-time pause between TimeFlow steps.
	pacer clock.Clock

	logger *slog.Logger
}

var instance = newController(cell.Global())

// Instance returns the process-wide Controller. It shares its clock
// with timeflow.Instance().
func Instance() *Controller { return instance }

func newController(shared *cell.Cell) *Controller {
	return &Controller{
		cell:   shared,
		pacer:  clock.Real(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// Now returns the instant of the active clock. Same as timeflow.Now.
func (c *Controller) Now() time.Time {
	return c.cell.Load().Now()
}

// Clock returns the active clock. Same as timeflow.Clock.
func (c *Controller) Clock() clock.Source {
	return c.cell.Load()
}

// SetClock installs source as the process-wide clock. The first call
// of a substitution remembers the clock it replaces; later calls leave
// that snapshot alone, so ResetClock always restores the clock from
// before the first substitution. Panics if source is nil.
func (c *Controller) SetClock(source clock.Source) {
	if source == nil {
		panic("timeflowtest: SetClock called with nil clock")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.original == nil {
		c.original = c.cell.Load()
		c.logger.Debug("clock substituted",
			"original", c.original,
			"substitute", source,
		)
	}
	c.cell.Store(source)
}

// ResetClock restores the clock that was active before the first
// SetClock and ends the substitution. Without an active substitution it
// does nothing, so it is safe to call after every test.
func (c *Controller) ResetClock() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.original == nil {
		return
	}
	c.cell.Store(c.original)
	c.logger.Debug("clock reset", "restored", c.original)
	c.original = nil
}

// Substituted reports whether a substitution is active, that is,
// whether ResetClock would change the clock.
func (c *Controller) Substituted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.original != nil
}

// FastForward moves the clock forward by d and notifies observers. A
// negative d moves it backward.
func (c *Controller) FastForward(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shiftLocked(d)
}

// FastBackward moves the clock backward by d and notifies observers.
func (c *Controller) FastBackward(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shiftLocked(-d)
}

// shiftLocked installs the active clock offset by d and notifies
// observers. Must be called with c.mu held.
func (c *Controller) shiftLocked(d time.Duration) {
	shifted := clock.Offset(c.cell.Load(), d)
	c.cell.Store(shifted)
	c.notifyLocked(shifted)
}

// RegisterObserver appends observer to the notification list. The same
// function may be registered more than once and is then called once
// per registration.
func (c *Controller) RegisterObserver(observer Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, observer)
}

// ClearObservers removes every registered observer.
func (c *Controller) ClearObservers() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = nil
}

// notifyLocked calls every observer in registration order. A panicking
// observer is not recovered: the panic unwinds through the caller's
// deferred Unlock and out of the mutating method. Must be called with
// c.mu held.
func (c *Controller) notifyLocked(active clock.Source) {
	for _, observer := range c.observers {
		observer(active)
	}
}

// SetPacer replaces the clock TimeFlow waits on between steps. Tests
// pass a clock.Fake and drive the flow with Advance. A nil pacer
// restores the real clock.
func (c *Controller) SetPacer(pacer clock.Clock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pacer == nil {
		pacer = clock.Real()
	}
	c.pacer = pacer
}

// SetLogger replaces the controller's logger. A nil logger discards.
func (c *Controller) SetLogger(logger *slog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.logger = logger
}

// String describes the controller state for test failure messages.
func (c *Controller) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("timeflowtest.Controller{active: %v, substituted: %t, observers: %d}",
		c.cell.Load(), c.original != nil, len(c.observers))
}

// TimeFlow simulates time passing: while the clock is before end, it
// waits speed on the pacer and then moves the clock forward by step,
// notifying observers after each step. The last step may overshoot end
// by up to one step.
//
// speed must be positive and end must be after the current time;
// otherwise TimeFlow returns an *ArgumentError and leaves the clock
// untouched. The end check and the first step share one critical
// section, so a mutation that lands while TimeFlow waits for the lock
// is seen by the check.
//
// Each step holds the controller lock for its wait and its advance.
// The lock is released between steps, so another goroutine's mutation
// waits for at most one step.
//
// If ctx is done during a wait, TimeFlow stops and returns an error
// wrapping ErrFlowInterrupted and the context's error. Steps already
// taken stay applied.
func (c *Controller) TimeFlow(ctx context.Context, step time.Duration, end time.Time, speed time.Duration) error {
	if speed <= 0 {
		return &ArgumentError{Message: "Flow speed must be positive"}
	}

	steps := 0
	for {
		advanced, err := c.flowStep(ctx, step, end, speed, steps == 0)
		if err != nil {
			if errors.Is(err, ErrFlowInterrupted) {
				c.debug("time flow interrupted", "steps", steps, "now", c.Now())
			}
			return err
		}
		if !advanced {
			break
		}
		steps++
	}

	c.debug("time flow finished", "steps", steps, "now", c.Now())
	return nil
}

// flowStep performs one wait-and-advance under the lock. Returns false
// without waiting once the clock has reached end. The first step also
// checks that end is still ahead of the clock.
func (c *Controller) flowStep(ctx context.Context, step time.Duration, end time.Time, speed time.Duration, first bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cell.Load().Now()
	if first {
		if !end.After(now) {
			return false, &ArgumentError{Message: "End time must be after current time"}
		}
		c.logger.Debug("time flow started",
			"start", now,
			"end", end,
			"step", step,
			"speed", speed,
		)
	}
	if !now.Before(end) {
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrFlowInterrupted, err)
	}
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%w: %w", ErrFlowInterrupted, ctx.Err())
	case <-c.pacer.After(speed):
	}

	c.shiftLocked(step)
	return true, nil
}

// debug logs through the controller's current logger.
func (c *Controller) debug(message string, args ...any) {
	c.mu.Lock()
	logger := c.logger
	c.mu.Unlock()
	logger.Debug(message, args...)
}
