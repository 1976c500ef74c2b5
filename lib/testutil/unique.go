// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now()
// when a test needs a distinguishable Message payload -- for example
// a scenario test echoing frames through a mock child alongside the
// credential refresh loop's own SetCredentials traffic, where the test
// must be able to pick its own frames back out of the interleaved
// stream by prefix.
//
//	frame := supervisor.Message(testutil.UniqueID("frame")) // "frame-1", "frame-2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
