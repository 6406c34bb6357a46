// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper for timeflow.
// It centralizes the one legitimate raw write to stderr that happens
// outside the structured logger: the final error report from main().
//
//	func main() {
//	    if err := run(); err != nil {
//	        process.Fatal(err)
//	    }
//	}
//
// Errors implementing [ExitCoder] exit with their own code and print
// nothing further; everything else prints "error: ..." and exits 1.
package process
