// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"math"

	"github.com/aws-kpl-go/kpl-supervisor/lib/codec"
)

// SentinelID is the correlation ID every SetCredentials payload
// carries, mirroring the original daemon's use of Long.MAX_VALUE to
// mark this one control message as distinct from ordinary data
// messages (original_source/Daemon.java, makeSetCredentialsMessage).
const SentinelID int64 = math.MaxInt64

// SetCredentialsPayload is the typed control message pushed to the
// child process to (re)establish its credentials. Two instances are
// sent each refresh cycle: one with ForMetrics false for the primary
// provider, one with ForMetrics true for the metrics provider.
//
// Unlike ordinary Messages, which this module treats as fully opaque
// bytes, this payload has a concrete shape because the supervisor
// itself constructs it from a Provider -- the native child's own
// wire schema for this message is out of scope, so this module
// defines its own compact, deterministic, CBOR-encoded contract.
type SetCredentialsPayload struct {
	ID           int64  `cbor:"id"`
	AccessKeyID  string `cbor:"access_key_id"`
	SecretKey    string `cbor:"secret_key"`
	SessionToken string `cbor:"session_token,omitempty"`
	ForMetrics   bool   `cbor:"for_metrics"`
}

// Encode builds and CBOR-marshals the SetCredentials payload for the
// given credentials, ready to be queued as a Message's bytes.
func Encode(creds Credentials, forMetrics bool) ([]byte, error) {
	payload := SetCredentialsPayload{
		ID:           SentinelID,
		AccessKeyID:  creds.AccessKeyID,
		SecretKey:    creds.SecretKey,
		SessionToken: creds.SessionToken,
		ForMetrics:   forMetrics,
	}
	return codec.Marshal(payload)
}

// Decode parses a SetCredentials payload previously produced by
// Encode. Exposed mainly for tests that need to assert on what the
// supervisor sent without hard-coding CBOR byte layouts.
func Decode(data []byte) (SetCredentialsPayload, error) {
	var payload SetCredentialsPayload
	err := codec.Unmarshal(data, &payload)
	return payload, err
}
