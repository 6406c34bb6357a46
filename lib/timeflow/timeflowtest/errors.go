// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package timeflowtest

import "errors"

// ErrInvalidArgument matches (via errors.Is) every *ArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrFlowInterrupted is wrapped by the error TimeFlow returns when its
// context is done mid-flow. The same error also wraps the context's
// own error, so errors.Is(err, context.Canceled) holds after a cancel.
var ErrFlowInterrupted = errors.New("time flow interrupted")

// ArgumentError reports a rejected TimeFlow argument. No clock mutation
// has happened when one is returned.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
