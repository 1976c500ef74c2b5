// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for the harness's
// command-line programs. It centralizes the one legitimate raw I/O
// pattern that exists before or after the structured logger is set up:
// fatal error reporting to stderr followed by process exit, for errors
// surfaced by a run() function in main() where the logger may not yet
// be initialized.
package process
