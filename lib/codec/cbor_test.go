// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

// setCredentialsFixture mirrors credentials.SetCredentialsPayload's
// cbor tags without importing the credentials package (which already
// imports this one). lib/codec's tests exercise the one concrete wire
// shape this module actually sends: the SetCredentials control message
// pushed to the native child on every credential refresh.
type setCredentialsFixture struct {
	ID           int64  `cbor:"id"`
	AccessKeyID  string `cbor:"access_key_id"`
	SecretKey    string `cbor:"secret_key"`
	SessionToken string `cbor:"session_token,omitempty"`
	ForMetrics   bool   `cbor:"for_metrics"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := setCredentialsFixture{
		ID:          math.MaxInt64,
		AccessKeyID: "AKIDEXAMPLE",
		SecretKey:   "secret",
		ForMetrics:  false,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded setCredentialsFixture
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	// Every refresh cycle re-marshals the same logical payload; the
	// bytes must not jitter between otherwise-identical refreshes.
	message := setCredentialsFixture{
		ID:           math.MaxInt64,
		AccessKeyID:  "AKIDEXAMPLE",
		SecretKey:    "secret",
		SessionToken: "session-token",
		ForMetrics:   true,
	}

	first, err := Marshal(message)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(message)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	// The supervisor sends a primary-provider SetCredentials payload
	// followed by a metrics-provider one on every refresh cycle; stream
	// encode/decode must keep the two in order on one connection.
	messages := []setCredentialsFixture{
		{ID: math.MaxInt64, AccessKeyID: "primary", SecretKey: "primary-secret", ForMetrics: false},
		{ID: math.MaxInt64, AccessKeyID: "metrics", SecretKey: "metrics-secret", SessionToken: "metrics-token", ForMetrics: true},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, message := range messages {
		if err := encoder.Encode(message); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range messages {
		var got setCredentialsFixture
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode message %d: %v", i, err)
		}
		if got != want {
			t.Errorf("message %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestOmitemptySessionTokenNotSent(t *testing.T) {
	// A primary-credentials refresh that carries no session token
	// (long-lived IAM user keys rather than STS-issued temporary
	// credentials) must not put an empty session_token on the wire.
	withToken := setCredentialsFixture{ID: math.MaxInt64, AccessKeyID: "a", SecretKey: "b", SessionToken: "t"}
	withoutToken := setCredentialsFixture{ID: math.MaxInt64, AccessKeyID: "a", SecretKey: "b"}

	dataWith, err := Marshal(withToken)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutToken)
	if err != nil {
		t.Fatal(err)
	}

	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes", len(dataWithout), len(dataWith))
	}

	notation, err := Diagnose(dataWithout)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if strings.Contains(notation, "session_token") {
		t.Errorf("expected no session_token key in output, got %s", notation)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var message setCredentialsFixture
	err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &message)
	if err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestByteStringRoundtrip(t *testing.T) {
	// A child's config blob (the argument pipefactory/childproc hand to
	// the native process) is carried as opaque bytes; verify []byte
	// fields encode as CBOR byte strings (major type 2), not text
	// strings, so arbitrary binary content survives unchanged.
	type envelope struct {
		ConfigBlob []byte `cbor:"config_blob"`
	}

	original := envelope{ConfigBlob: []byte{0x00, 0x01, 0xFF, 'a', 'b', 0x00}}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded envelope
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !bytes.Equal(decoded.ConfigBlob, original.ConfigBlob) {
		t.Errorf("byte string roundtrip: got %v, want %v", decoded.ConfigBlob, original.ConfigBlob)
	}
}

func BenchmarkMarshal(b *testing.B) {
	message := setCredentialsFixture{
		ID:          math.MaxInt64,
		AccessKeyID: "AKIDEXAMPLE",
		SecretKey:   "secret",
		ForMetrics:  false,
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Marshal(message)
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	message := setCredentialsFixture{
		ID:          math.MaxInt64,
		AccessKeyID: "AKIDEXAMPLE",
		SecretKey:   "secret",
		ForMetrics:  false,
	}
	data, err := Marshal(message)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var decoded setCredentialsFixture
		Unmarshal(data, &decoded)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"access_key_id": "AKIDEXAMPLE"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"access_key_id"`) {
		t.Errorf("notation %q does not contain \"access_key_id\"", notation)
	}
	if !strings.Contains(notation, `"AKIDEXAMPLE"`) {
		t.Errorf("notation %q does not contain \"AKIDEXAMPLE\"", notation)
	}
}

func TestDiagnoseFirst(t *testing.T) {
	// Mirrors decoding the sentinel ID ahead of the rest of a
	// SetCredentials payload one CBOR item at a time.
	item1, err := Marshal(int64(math.MaxInt64))
	if err != nil {
		t.Fatalf("Marshal item 1: %v", err)
	}
	item2, err := Marshal("AKIDEXAMPLE")
	if err != nil {
		t.Fatalf("Marshal item 2: %v", err)
	}

	var sequence []byte
	sequence = append(sequence, item1...)
	sequence = append(sequence, item2...)

	notation, remaining, err := DiagnoseFirst(sequence)
	if err != nil {
		t.Fatalf("DiagnoseFirst: %v", err)
	}
	if !strings.Contains(notation, "9223372036854775807") {
		t.Errorf("first item notation %q does not contain the sentinel ID", notation)
	}
	if len(remaining) == 0 {
		t.Fatal("expected remaining bytes after first item")
	}

	notation2, remaining2, err := DiagnoseFirst(remaining)
	if err != nil {
		t.Fatalf("DiagnoseFirst second: %v", err)
	}
	if !strings.Contains(notation2, `"AKIDEXAMPLE"`) {
		t.Errorf("second item notation %q does not contain \"AKIDEXAMPLE\"", notation2)
	}
	if len(remaining2) != 0 {
		t.Errorf("expected no remaining bytes, got %d", len(remaining2))
	}
}
