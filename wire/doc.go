// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the length-prefixed framing used on the
// supervisor's two FIFO pipes: a big-endian uint32 byte count followed
// by that many opaque payload bytes.
//
//	Frame := LengthBE32 Payload
//	LengthBE32 := uint32, big-endian, 1 <= n <= MaxFrameSize
//	Payload    := opaque bytes, len(Payload) == LengthBE32
//
// Reader owns a fixed-capacity receive buffer reused across frames —
// callers must copy a decoded frame's bytes before the next call to
// Decode, since the returned slice is only valid until then.
package wire
