// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
)

// StdinPath, passed as the path argument to ReadFromPath, reads the
// secret access key from stdin instead of a file. credentials.FileProvider
// accepts this so an operator can pipe a key in rather than leave it
// sitting in a file on disk.
const StdinPath = "-"

// ReadFromPath reads a secret access key from a file path, or from
// stdin if path is StdinPath. This is how credentials.FileProvider
// obtains the value it copies into Credentials.SecretKey on every
// call, so that a rotated key file takes effect without restarting
// the supervisor. The returned buffer is mmap-backed (locked into
// RAM, excluded from core dumps) and must be closed by the caller.
// Leading/trailing whitespace is trimmed before storing, matching how
// operators hand-edit key files with a trailing newline. Returns an
// error if the source is empty after trimming.
func ReadFromPath(path string) (*Buffer, error) {
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		Zero(raw)
		return nil, fmt.Errorf("secret: key at %q is empty", path)
	}

	// NewFromBytes copies trimmed into mmap-backed memory and zeros it
	// in place; Zero(raw) below still needs to run to scrub any
	// whitespace bytes outside the trimmed window.
	buffer, bufErr := NewFromBytes(trimmed)
	Zero(raw)
	if bufErr != nil {
		return nil, bufErr
	}
	return buffer, nil
}

// readRaw returns the untrimmed bytes of the key material at path,
// reading a single line from stdin when path is StdinPath.
func readRaw(path string) ([]byte, error) {
	if path != StdinPath {
		return os.ReadFile(path)
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("secret: reading stdin: %w", err)
		}
		return nil, fmt.Errorf("secret: stdin closed without a key")
	}
	return scanner.Bytes(), nil
}
