// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize bounds the length a single frame's payload may declare.
// Matches the fixed receive buffer capacity used by the original native
// child protocol (8 MiB).
const MaxFrameSize = 8 * 1024 * 1024

// lengthPrefixSize is the width of the frame length header in bytes.
const lengthPrefixSize = 4

// ErrInvalidFrameSize is returned by Decode when a frame declares a
// length of zero or greater than MaxFrameSize. The caller should treat
// this as a protocol violation — fatal and retryable per the
// supervisor's error taxonomy.
var ErrInvalidFrameSize = errors.New("wire: invalid frame size")

// Encode writes payload as a single frame to w: a 4-byte big-endian length
// prefix followed by the payload. Returns any write error from w
// unmodified so the caller can classify it.
func Encode(w io.Writer, payload []byte) error {
	var header [lengthPrefixSize]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("wire: writing frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: writing frame payload: %w", err)
	}
	return nil
}

// Reader decodes a stream of length-prefixed frames from an underlying
// io.Reader. It owns a single reusable receive buffer sized
// MaxFrameSize — the slice returned by Decode aliases that buffer and
// is only valid until the next call to Decode. Callers that need to
// retain a frame's bytes across calls must copy them out first.
//
// A Reader is not safe for concurrent use; the supervisor's receive
// loop is the sole reader of a given channel.
type Reader struct {
	r   io.Reader
	buf []byte
}

// NewReader returns a Reader that decodes frames from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:   r,
		buf: make([]byte, MaxFrameSize),
	}
}

// Decode reads and returns the next frame's payload. The returned
// slice aliases the Reader's internal buffer and is overwritten by the
// next call to Decode — copy it before enqueuing it anywhere that
// outlives this call.
//
// A short read on the underlying stream is retried until the full
// length header and payload have arrived. An EOF or other read error
// encountered mid-frame is returned wrapped, matching "EOF reached
// during read" in the supervisor's fatal-event taxonomy — a partial
// read never yields a Message.
func (r *Reader) Decode() ([]byte, error) {
	var header [lengthPrefixSize]byte
	if err := readFull(r.r, header[:]); err != nil {
		return nil, fmt.Errorf("wire: reading frame length: %w", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length == 0 || length > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes, at most %d supported", ErrInvalidFrameSize, length, MaxFrameSize)
	}

	payload := r.buf[:length]
	if err := readFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("wire: reading frame payload: %w", err)
	}
	return payload, nil
}

// readFull fills buf completely, looping over short reads exactly as
// the original implementation's readSome does. Any read error —
// including io.EOF — that leaves buf short is fatal; it is returned to
// the caller rather than swallowed, since a partial frame must never
// be surfaced. An io.EOF that arrives together with the final bytes is
// accepted.
func readFull(r io.Reader, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if errors.Is(err, io.EOF) && total == len(buf) {
				break
			}
			return fmt.Errorf("EOF reached during read: %w", err)
		}
	}
	return nil
}
