// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package supervisor owns a native child process's lifecycle and the
// framed transport connecting it to an in-process caller: it spawns
// (or, for tests, attaches to) the child, pumps messages to and from
// it over a pair of pipes, refreshes its credentials on a timer, and
// collapses into a terminal failure state exactly once when anything
// goes wrong.
//
// Two constructors are exported: New spawns the child process and
// creates its pipes; Connect attaches to pipes that already exist
// (opened by a test's mock child) without spawning anything, mirroring
// the original daemon's package-private testing constructor. Both
// return a *Supervisor whose Add, Destroy, and QueueSize methods are
// the module's public contract.
package supervisor
