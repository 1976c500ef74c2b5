// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws-kpl-go/kpl-supervisor/lib/clock"
	"github.com/aws-kpl-go/kpl-supervisor/pipefactory"
)

// connectBackoff is the delay between failed connection attempts.
const connectBackoff = 100 * time.Millisecond

// connectBudget is the total time connectChannels spends retrying
// before giving up and propagating the last error.
const connectBudget = 2 * time.Second

// connectChannels opens the read end of pipes.In and the write end of
// pipes.Out. Both ends are blocking opens on a POSIX FIFO: each blocks
// until a peer has opened the other end. The two opens are started
// concurrently with each other (not just with the child's own opens)
// because the peer is free to open its two ends in either order;
// opening pipes.In and pipes.Out one after another here would deadlock
// against a peer that happens to open them in the opposite order.
// Failures are retried with a fixed backoff until connectBudget is
// exhausted; any half-opened file is closed before the next attempt so
// a retry never leaks a descriptor.
func connectChannels(ctx context.Context, clk clock.Clock, pipes pipefactory.Pair) (in *os.File, out *os.File, err error) {
	deadline := clk.Now().Add(connectBudget)

	for {
		in, out, err = openBothEnds(pipes)
		if err == nil {
			return in, out, nil
		}

		if clk.Now().After(deadline) {
			return nil, nil, fmt.Errorf("supervisor: connecting to child process: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-clk.After(connectBackoff):
		}
	}
}

// openBothEnds opens pipes.In (read) and pipes.Out (write) concurrently,
// closing whichever one succeeded if the other fails.
func openBothEnds(pipes pipefactory.Pair) (in *os.File, out *os.File, err error) {
	type opened struct {
		f   *os.File
		err error
	}
	inCh := make(chan opened, 1)
	go func() {
		f, err := os.OpenFile(pipes.In, os.O_RDONLY, 0)
		inCh <- opened{f, err}
	}()

	out, outErr := os.OpenFile(pipes.Out, os.O_WRONLY, 0)
	inResult := <-inCh

	if inResult.err != nil || outErr != nil {
		if inResult.f != nil {
			inResult.f.Close()
		}
		if out != nil {
			out.Close()
		}
		if inResult.err != nil {
			return nil, nil, inResult.err
		}
		return nil, nil, outErr
	}

	return inResult.f, out, nil
}
