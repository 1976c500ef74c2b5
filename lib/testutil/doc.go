// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for this module's
// packages.
//
// [SocketDir] creates a temporary directory in /tmp suitable for pipe
// and socket files. This exists because FIFOs and Unix domain sockets
// share a 108-byte path limit (sun_path in sockaddr_un), and test
// runners often set TMPDIR to deeply nested paths that exceed this
// limit, making t.TempDir() unsuitable. The directory is automatically
// removed when the test completes.
//
// [PipePair] creates a pair of named FIFOs under SocketDir, letting
// supervisor tests exercise a real blocking-open pipe pair against an
// in-process mock child without spawning an external binary.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. These are
// the only place scenario tests use a real wall-clock timeout rather
// than supervisor.Config's injected clock.Clock, since they are
// waiting on external child-process and filesystem behavior that the
// fake clock has no control over.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it instead of time.Now() when a scenario test
// needs a Message payload it can pick back out of a stream that also
// carries the credential refresh loop's own interleaved traffic.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on the rest of this module.
package testutil
