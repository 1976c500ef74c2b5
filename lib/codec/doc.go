// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR encoding
// configuration.
//
// The one payload this module serializes as anything other than
// opaque bytes is the SetCredentials control message exchanged with
// the child process, so this package exists to give that one struct
// (and any future typed payload) a single deterministic encoding
// rather than a bespoke ad hoc layout.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes, which matters
// here because the credentials refresh loop re-marshals and resends a
// SetCredentials payload every cycle.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// Struct fields destined for CBOR use a `cbor` tag; this package never
// interacts with JSON.
package codec
