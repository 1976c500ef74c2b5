// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package pipefactory

import (
	"context"

	"github.com/aws-kpl-go/kpl-supervisor/lib/clock"
)

// Create allocates two unused named-pipe paths under \\.\pipe\. No
// creation syscall happens here -- the child process creates the
// server end of each named pipe itself, matching the original
// daemon's Windows behavior. ctx and clk are accepted for parity with
// the POSIX implementation's signature but are unused.
func Create(ctx context.Context, clk clock.Clock, workingDir string) (Pair, error) {
	var pair Pair
	for {
		pair.In = `\\.\pipe\amz-aws-kpl-in-pipe-` + uuid8Chars()
		if !pathExists(pair.In) {
			break
		}
	}
	for {
		pair.Out = `\\.\pipe\amz-aws-kpl-out-pipe-` + uuid8Chars()
		if !pathExists(pair.Out) {
			break
		}
	}
	return pair, nil
}

// Remove is a no-op on Windows: named pipes have no filesystem entry
// to unlink once the last handle closes.
func Remove(pair Pair) {}
