// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credentials

import "context"

// Credentials holds the access key pair (and optional session token)
// pushed into the child process via a SetCredentials message.
type Credentials struct {
	AccessKeyID  string
	SecretKey    string
	SessionToken string // empty for non-session credentials
}

// Provider supplies Credentials on demand. Implementations may cache,
// refresh from STS, or simply return a fixed value -- the supervisor
// calls Credentials once per refresh cycle and does not assume
// anything about how the result was produced.
type Provider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// ProviderFunc adapts a plain function to Provider, mirroring the
// standard library's http.HandlerFunc idiom for single-method
// capabilities.
type ProviderFunc func(ctx context.Context) (Credentials, error)

// Credentials calls f.
func (f ProviderFunc) Credentials(ctx context.Context) (Credentials, error) {
	return f(ctx)
}

// Resolve returns metrics if it is non-nil, otherwise primary. The
// original daemon applies this fallback both when building its
// initial launch arguments and on every credential refresh cycle; this
// function is the single place that logic lives so both call sites
// (childproc's argument builder and supervisor's refresh loop) agree.
func Resolve(primary, metrics Provider) Provider {
	if metrics != nil {
		return metrics
	}
	return primary
}
