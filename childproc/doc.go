// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package childproc spawns and supervises the native child process: it
// builds the child's command-line arguments, starts it with os/exec,
// and runs a waiter goroutine that classifies the child's exit. It
// also provides LogStreamReader, which relays the child's stdout and
// stderr into structured logs.
package childproc
