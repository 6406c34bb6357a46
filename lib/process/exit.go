// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that carry their own exit status.
// The command has already reported such an error, so [Report] prints
// nothing for it.
type ExitCoder interface {
	ExitCode() int
}

// Fatal reports err to stderr and exits with the matching status. Use
// it in main() for errors from run() where the structured logger may
// not be initialized.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes "error: err" to w unless err carries an exit code, and
// returns the status the process should exit with: 0 for nil, the
// carried code for an [ExitCoder] anywhere in the chain, 1 otherwise.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
