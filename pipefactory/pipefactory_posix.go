// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package pipefactory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aws-kpl-go/kpl-supervisor/lib/clock"
)

// fifoMode is the permission bits passed to mkfifo(2): owner
// read/write, nothing for group or other.
const fifoMode = 0o600

// visibilityPollInterval is how often Create checks whether a freshly
// created FIFO inode has become visible to stat(2).
const visibilityPollInterval = 10 * time.Millisecond

// visibilityTimeout is how long Create waits for both FIFOs to appear
// before giving up. The original daemon observed that mkfifo's effect
// is not always immediately visible and budgeted 15 seconds for it.
const visibilityTimeout = 15 * time.Second

// Create ensures workingDir exists, allocates two unused pipe paths
// inside it, and creates both as POSIX FIFOs via mkfifo(2). It then
// polls until both inodes are visible to stat, returning an error if
// they fail to appear within visibilityTimeout.
//
// clk supplies the current time for the deadline and the Sleep between
// polls; pass clock.Real() in
// production and a fake in tests that need to exercise the timeout
// path deterministically.
func Create(ctx context.Context, clk clock.Clock, workingDir string) (Pair, error) {
	if err := os.MkdirAll(workingDir, 0o700); err != nil {
		return Pair{}, fmt.Errorf("pipefactory: creating working directory: %w", err)
	}

	var pair Pair
	for {
		pair.In = filepath.Join(workingDir, "amz-aws-kpl-in-pipe-"+uuid8Chars())
		if !pathExists(pair.In) {
			break
		}
	}
	for {
		pair.Out = filepath.Join(workingDir, "amz-aws-kpl-out-pipe-"+uuid8Chars())
		if !pathExists(pair.Out) {
			break
		}
	}

	if err := syscall.Mkfifo(pair.In, fifoMode); err != nil {
		return Pair{}, fmt.Errorf("pipefactory: mkfifo %s: %w", pair.In, err)
	}
	if err := syscall.Mkfifo(pair.Out, fifoMode); err != nil {
		return Pair{}, fmt.Errorf("pipefactory: mkfifo %s: %w", pair.Out, err)
	}

	if err := waitVisible(ctx, clk, pair); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// waitVisible polls until both of pair's paths are stat-able, or
// returns an error once visibilityTimeout has elapsed. The deadline is
// measured against clk so tests can fake time instead of sleeping for
// the real 15 seconds.
func waitVisible(ctx context.Context, clk clock.Clock, pair Pair) error {
	deadline := clk.Now().Add(visibilityTimeout)
	for !pathExists(pair.In) || !pathExists(pair.Out) {
		if clk.Now().After(deadline) {
			return fmt.Errorf("pipefactory: pipes did not appear within %s of calling mkfifo", visibilityTimeout)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("pipefactory: waiting for pipes to appear: %w", ctx.Err())
		default:
		}
		clk.Sleep(visibilityPollInterval)
	}
	return nil
}

// Remove unlinks both FIFOs named by pair. Errors from a missing file
// are ignored -- teardown is best-effort and may race a child process
// that has already exited and cleaned up after itself.
func Remove(pair Pair) {
	_ = os.Remove(pair.In)
	_ = os.Remove(pair.Out)
}
