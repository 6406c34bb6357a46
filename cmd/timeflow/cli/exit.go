// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitInterrupted is the exit code for a command stopped by SIGINT or
// SIGTERM, following the shell's 128+SIGINT convention.
const ExitInterrupted = 130

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output (for example, a partial simulation summary before an
// interrupt).
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish a handled non-zero exit from an
// unexpected error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
