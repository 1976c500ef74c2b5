// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credentials

import "context"

// StaticProvider returns a fixed, pre-resolved Credentials value.
// Useful for tests and for callers that have already obtained
// credentials through their own means (an STS assume-role call made
// once at startup, for example).
type StaticProvider struct {
	Value Credentials
}

// Credentials returns p.Value unconditionally; ctx is accepted only to
// satisfy Provider.
func (p StaticProvider) Credentials(ctx context.Context) (Credentials, error) {
	return p.Value, nil
}
