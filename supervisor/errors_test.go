// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"errors"
	"testing"
)

func TestRetryableErrorUnwrap(t *testing.T) {
	cause := errors.New("broken pipe")
	err := &RetryableError{Message: "error writing message to child process", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through RetryableError to its cause")
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestIrrecoverableErrorWithoutCause(t *testing.T) {
	err := &IrrecoverableError{Message: "native child process exited"}
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil when Cause is nil")
	}
	if err.Error() != "native child process exited" {
		t.Errorf("Error() = %q, want the bare message", err.Error())
	}
}

func TestErrShutdownIsStable(t *testing.T) {
	if !errors.Is(ErrShutdown, ErrShutdown) {
		t.Fatal("ErrShutdown should equal itself via errors.Is")
	}
}
