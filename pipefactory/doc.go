// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipefactory creates the pair of named pipes the supervisor
// uses to talk to its child process: one the supervisor reads from,
// one it writes to.
//
// Path generation is shared across platforms: each name takes the
// form amz-aws-kpl-{in,out}-pipe-<8 hex chars>, re-rolled until both
// paths are free. POSIX and Windows differ in what happens next --
// POSIX creates the FIFO inodes itself via mkfifo(2) and waits for
// them to become visible; Windows only allocates the path names and
// leaves server-end creation to the child process.
package pipefactory
