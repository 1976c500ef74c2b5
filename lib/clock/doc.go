// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock interface parameter instead of calling
// time.Now, time.After, or time.Sleep directly. In production, Real()
// provides the standard library behavior. In tests, Fake() provides a
// deterministic clock that advances only when Advance is called.
//
// # Wiring Pattern
//
// This module's timer-driven call sites carry a clock.Clock instead of
// reaching for the time package directly:
//
//	// supervisor.Config.Clock drives credentialRefreshLoop's delay
//	// between SetCredentials refresh cycles and connectChannels'
//	// retry backoff.
//	type Config struct {
//	    Clock clock.Clock
//	    // ...
//	}
//
//	// pipefactory.Create and waitVisible take a Clock parameter for
//	// the poll loop that waits for a freshly created FIFO to become
//	// visible to a peer.
//	func Create(ctx context.Context, clk clock.Clock, workingDir string) (Pair, error)
//
// In production, both default to Real() when left unset. In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	cfg := supervisor.Config{Clock: c /* ... */}
//	// ... start the supervisor ...
//	c.WaitForTimers(1)         // wait for credentialRefreshLoop to register its delay
//	c.Advance(5 * time.Minute) // fire the refresh deterministically
//
// # FakeClock Synchronization
//
// When a goroutine calls Sleep or After on a FakeClock, it registers a
// pending waiter. Use WaitForTimers to block until a specific number
// of waiters are registered before calling Advance. This eliminates
// the race between waiter registration and time advancement that
// plagues tests using time.Sleep for synchronization.
package clock
