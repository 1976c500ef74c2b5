// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package testutil

import (
	"syscall"
	"testing"
)

// PipePair creates two named FIFOs under SocketDir(t), named in-pipe
// and out-pipe, for tests that need to drive a supervisor against a
// real blocking-open pipe pair without spawning a native child. The
// caller decides which end plays which role: supervisor.Connect reads
// inPipe and writes outPipe, so a mock child does the opposite.
func PipePair(t *testing.T) (inPipe, outPipe string) {
	t.Helper()
	dir := SocketDir(t)

	inPipe = dir + "/in-pipe"
	outPipe = dir + "/out-pipe"

	if err := syscall.Mkfifo(inPipe, 0o600); err != nil {
		t.Fatalf("creating in-pipe FIFO: %v", err)
	}
	if err := syscall.Mkfifo(outPipe, 0o600); err != nil {
		t.Fatalf("creating out-pipe FIFO: %v", err)
	}

	return inPipe, outPipe
}
