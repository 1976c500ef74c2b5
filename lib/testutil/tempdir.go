// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for this module's
// packages.
package testutil

import (
	"os"
	"testing"
)

// SocketDir creates a temporary directory suitable for pipe and socket
// files.
//
// FIFOs and Unix domain sockets share a 108-byte path limit
// (sun_path in sockaddr_un) on most platforms, and test runners often
// set TMPDIR to deeply nested paths that exceed it, making t.TempDir()
// unsuitable. This creates a short-named directory directly under
// /tmp instead.
//
// The directory is automatically removed when the test completes.
func SocketDir(t *testing.T) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "kpl-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(directory)
	})
	return directory
}
