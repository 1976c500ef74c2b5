// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipefactory

import (
	"os"

	"github.com/google/uuid"
)

// Pair names the two pipe endpoints connecting supervisor and child.
// In is the path the supervisor reads messages from (the child's
// write end); Out is the path the supervisor writes messages to (the
// child's read end).
type Pair struct {
	In  string
	Out string
}

// uuid8Chars returns the first 8 hex characters of a random UUID,
// matching the suffix scheme the original daemon used for pipe names.
func uuid8Chars() string {
	return uuid.New().String()[:8]
}

// pathExists reports whether a filesystem entry already occupies
// path, re-roll candidates that collide with an existing pipe name
// (or an unrelated file left over from a previous run).
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
