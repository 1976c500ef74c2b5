// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts time operations for testability. Production code
// injects Real(); tests inject Fake() with deterministic time control.
//
// The surface is deliberately narrow: this module's callers --
// supervisor's credential refresh loop and channel connector backoff,
// and pipefactory's pipe visibility wait -- only ever need the current
// time, a one-shot delay channel, and a blocking sleep between polls.
// None needs a
// repeating ticker or a callback-based timer, so Clock does not
// expose time.NewTicker or time.AfterFunc.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time after
	// duration d elapses. Equivalent to time.After. If d <= 0, the
	// channel receives immediately.
	After(d time.Duration) <-chan time.Time

	// Sleep pauses the current goroutine for at least duration d.
	// Equivalent to time.Sleep.
	Sleep(d time.Duration)
}
