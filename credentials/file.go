// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"context"
	"fmt"

	"github.com/aws-kpl-go/kpl-supervisor/lib/secret"
)

// FileProvider reads the secret access key from a file on every call,
// via a memory-locked, core-dump-excluded secret.Buffer that is
// released as soon as the key has been copied out. AccessKeyID and
// SessionToken are not considered sensitive enough to need the same
// treatment and are supplied directly.
//
// Re-reading on every call means a long-running supervisor picks up a
// rotated secret key file without a restart, the same rationale
// EnvProvider applies to environment variables.
type FileProvider struct {
	AccessKeyID   string
	SecretKeyPath string
	SessionToken  string
}

// Credentials reads p.SecretKeyPath through secret.ReadFromPath,
// copies it into the returned Credentials, and releases the
// intermediate buffer before returning.
func (p FileProvider) Credentials(ctx context.Context) (Credentials, error) {
	if p.AccessKeyID == "" {
		return Credentials{}, fmt.Errorf("credentials: FileProvider.AccessKeyID must be set")
	}
	if p.SecretKeyPath == "" {
		return Credentials{}, fmt.Errorf("credentials: FileProvider.SecretKeyPath must be set")
	}

	buffer, err := secret.ReadFromPath(p.SecretKeyPath)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials: reading secret key file %s: %w", p.SecretKeyPath, err)
	}
	defer buffer.Close()

	return Credentials{
		AccessKeyID:  p.AccessKeyID,
		SecretKey:    buffer.String(),
		SessionToken: p.SessionToken,
	}, nil
}
