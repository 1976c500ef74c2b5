// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"context"
	"fmt"
	"os"
)

// Environment variable names read by EnvProvider, matching the names
// the AWS SDKs themselves read.
const (
	EnvAccessKeyID  = "AWS_ACCESS_KEY_ID"
	EnvSecretKey    = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken = "AWS_SESSION_TOKEN"
)

// EnvProvider reads credentials from the process environment on
// every call, so a long-running supervisor picks up credentials
// rotated into its environment by an external process (an ECS task
// role refresh, for instance) without a restart.
type EnvProvider struct{}

// Credentials reads EnvAccessKeyID and EnvSecretKey, returning an
// error if either is unset. EnvSessionToken is optional.
func (EnvProvider) Credentials(ctx context.Context) (Credentials, error) {
	accessKeyID := os.Getenv(EnvAccessKeyID)
	secretKey := os.Getenv(EnvSecretKey)
	if accessKeyID == "" || secretKey == "" {
		return Credentials{}, fmt.Errorf("credentials: %s and %s must both be set", EnvAccessKeyID, EnvSecretKey)
	}
	return Credentials{
		AccessKeyID:  accessKeyID,
		SecretKey:    secretKey,
		SessionToken: os.Getenv(EnvSessionToken),
	}, nil
}

// Environment variable names read by MetricsEnvProvider, for
// deployments that grant the metrics destination a distinct role from
// the stream itself.
const (
	EnvMetricsAccessKeyID  = "AWS_METRICS_ACCESS_KEY_ID"
	EnvMetricsSecretKey    = "AWS_METRICS_SECRET_ACCESS_KEY"
	EnvMetricsSessionToken = "AWS_METRICS_SESSION_TOKEN"
)

// MetricsEnvProvider reads credentials for the metrics destination
// from its own set of environment variables, for callers that want
// metrics reported under a distinct role instead of falling back to
// the primary provider via Resolve.
type MetricsEnvProvider struct{}

// Credentials reads EnvMetricsAccessKeyID and EnvMetricsSecretKey,
// returning an error if either is unset. EnvMetricsSessionToken is
// optional.
func (MetricsEnvProvider) Credentials(ctx context.Context) (Credentials, error) {
	accessKeyID := os.Getenv(EnvMetricsAccessKeyID)
	secretKey := os.Getenv(EnvMetricsSecretKey)
	if accessKeyID == "" || secretKey == "" {
		return Credentials{}, fmt.Errorf("credentials: %s and %s must both be set", EnvMetricsAccessKeyID, EnvMetricsSecretKey)
	}
	return Credentials{
		AccessKeyID:  accessKeyID,
		SecretKey:    secretKey,
		SessionToken: os.Getenv(EnvMetricsSessionToken),
	}, nil
}
