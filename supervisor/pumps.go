// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"

	"github.com/aws-kpl-go/kpl-supervisor/credentials"
	"github.com/aws-kpl-go/kpl-supervisor/wire"
)

// sendLoop takes messages off the outgoing queue and writes them to
// the out-pipe (the child's read end), one length-prefixed frame per
// message. It exits when the queue reports closed (s.outgoing.take's
// ok == false,
// meaning the arbiter has already begun teardown) or when a write
// fails, in which case the failure is fatal and retryable: a broken
// pipe means the child is gone or going.
func (s *Supervisor) sendLoop() {
	defer s.loopGroup.Done()

	for !s.shutdown.Load() {
		msg, ok := s.outgoing.take()
		if !ok {
			return
		}
		if err := wire.Encode(s.outChannel, msg); err != nil {
			s.fatal("error writing message to child process", err, true)
			return
		}
	}
}

// receiveLoop decodes frames from the in-pipe (the child's write end)
// and enqueues
// them for dispatch. wire.Reader.Decode reuses its internal buffer
// across calls, so the decoded payload is copied into a fresh Message
// before it is handed to the queue -- otherwise the next Decode call
// would silently overwrite a message still waiting to be dispatched.
func (s *Supervisor) receiveLoop() {
	defer s.loopGroup.Done()

	reader := wire.NewReader(s.inChannel)
	for !s.shutdown.Load() {
		payload, err := reader.Decode()
		if err != nil {
			s.fatal("error reading message from child process", err, true)
			return
		}
		msg := make(Message, len(payload))
		copy(msg, payload)
		s.incoming.put(msg)
	}
}

// dispatchLoop takes messages off the incoming queue and delivers them
// to the configured Handler. A panic or a slow handler never brings
// down the pump: this loop only logs and continues, since a malformed
// message handled badly by caller code is not a supervisor failure.
func (s *Supervisor) dispatchLoop() {
	defer s.loopGroup.Done()

	for !s.shutdown.Load() {
		msg, ok := s.incoming.take()
		if !ok {
			return
		}
		s.dispatch(msg)
	}
}

func (s *Supervisor) dispatch(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("message handler panicked", "panic", r)
		}
	}()
	if s.handler != nil {
		s.handler.OnMessage(msg)
	}
}

// credentialRefreshLoop re-encodes and resends both the primary and
// the metrics SetCredentials payloads on every tick of
// s.config.CredentialsRefreshDelay. A refresh error is logged and
// retried on the next tick rather than treated as fatal -- a
// transient credentials-provider hiccup should not tear down an
// otherwise healthy child. The wait races the delay against s.done so
// a concurrent shutdown wakes the loop immediately instead of leaving
// it asleep for up to a full refresh interval.
func (s *Supervisor) credentialRefreshLoop() {
	defer s.loopGroup.Done()

	for !s.shutdown.Load() {
		if err := s.refreshCredentials(); err != nil {
			s.logger.Error("error refreshing credentials, will retry next cycle", "error", err)
		}

		select {
		case <-s.clock.After(s.config.refreshDelayOrDefault()):
		case <-s.done:
			return
		}
	}
}

func (s *Supervisor) refreshCredentials() error {
	ctx := context.Background()

	primaryCreds, err := s.config.CredentialsProvider.Credentials(ctx)
	if err != nil {
		return err
	}
	primaryPayload, err := credentials.Encode(primaryCreds, false)
	if err != nil {
		return err
	}
	s.outgoing.put(Message(primaryPayload))

	metricsCreds, err := credentials.Resolve(s.config.CredentialsProvider, s.config.MetricsCredentialsProvider).Credentials(ctx)
	if err != nil {
		return err
	}
	metricsPayload, err := credentials.Encode(metricsCreds, true)
	if err != nil {
		return err
	}
	s.outgoing.put(Message(metricsPayload))

	return nil
}
