// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"
	"time"

	"github.com/aws-kpl-go/kpl-supervisor/pipefactory"
)

// loopStopGrace bounds how long fatal waits for the pump loops to
// notice shutdown and return before it gives up waiting and proceeds
// with teardown anyway.
const loopStopGrace = time.Second

// fatal is the supervisor's single failure entry point. Every pump
// loop, the channel connector, and the child's exit callback all route
// through it, and atomic.Bool.CompareAndSwap guarantees the teardown
// sequence below runs exactly once no matter how many of them fail at
// once -- a losing caller returns immediately.
//
// cause may be nil (Destroy and a clean child exit have no underlying
// error); message is always present and becomes the wrapped error's
// text.
func (s *Supervisor) fatal(message string, cause error, retryable bool) {
	if !s.shutdown.CompareAndSwap(false, true) {
		return
	}

	s.logger.Error("supervisor entering terminal state", "message", message, "retryable", retryable, "cause", cause)

	// Wake anything blocked on a clean shutdown signal: the
	// credentials refresh loop's select, and both message queues'
	// blocked Take calls.
	s.closeOnce.Do(func() { close(s.done) })
	s.outgoing.close()
	s.incoming.close()

	if s.process != nil {
		s.process.PrepareForShutdown()
		if proc := s.process.OSProcess(); proc != nil {
			_ = proc.Kill()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), loopStopGrace)
	defer cancel()
	loopsStopped := make(chan struct{})
	go func() {
		s.loopGroup.Wait()
		close(loopsStopped)
	}()
	select {
	case <-loopsStopped:
	case <-ctx.Done():
		s.logger.Warn("pump loops did not stop within grace period, proceeding with teardown")
	}

	if s.inChannel != nil {
		_ = s.inChannel.Close()
	}
	if s.outChannel != nil {
		_ = s.outChannel.Close()
	}
	if s.ownsPipes {
		pipefactory.Remove(s.pipes)
	}

	if s.handler != nil {
		s.handler.OnError(s.wrapError(message, cause, retryable))
	}
}

func (s *Supervisor) wrapError(message string, cause error, retryable bool) error {
	if retryable {
		return &RetryableError{Message: message, Cause: cause}
	}
	return &IrrecoverableError{Message: message, Cause: cause}
}
