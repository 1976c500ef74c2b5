// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package credentials defines the supervisor's pluggable credential
// source and the wire payload used to push credentials into the child
// process.
//
// A Provider is a one-method capability, satisfied by a plain
// function via ProviderFunc -- the same adapter-over-interface shape
// the rest of the module's ambient stack uses for single-method
// capabilities. StaticProvider and EnvProvider cover the two common
// cases (fixed test credentials, environment-variable-sourced
// credentials); MetricsEnvProvider reads a distinct AWS_METRICS_*
// variable set for deployments that grant the metrics destination its
// own role; FileProvider reads the secret key from a file through a
// memory-locked lib/secret.Buffer on every call. Production callers
// are free to supply their own, backed by an STS client, a secrets
// manager, or anything else that can answer Credentials(ctx).
package credentials
