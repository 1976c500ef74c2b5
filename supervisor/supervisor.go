// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws-kpl-go/kpl-supervisor/childproc"
	"github.com/aws-kpl-go/kpl-supervisor/credentials"
	"github.com/aws-kpl-go/kpl-supervisor/lib/clock"
	"github.com/aws-kpl-go/kpl-supervisor/pipefactory"
)

// Config describes everything needed to launch and run the native
// child process: its executable, working directory, environment, the
// opaque configuration blob it is started with, its credential
// providers, and the cadence at which credentials are refreshed.
type Config struct {
	// ExecutablePath is the path to the native child binary. Required
	// for New; ignored by Connect.
	ExecutablePath string

	// WorkingDir is the directory both the pipes and the child process
	// are created/started in.
	WorkingDir string

	// EnvironmentVariables are merged over the supervisor's own
	// environment before the child is spawned.
	EnvironmentVariables map[string]string

	// ChildConfig is the pre-serialized producer configuration blob
	// passed to the child as its "-c" argument.
	ChildConfig []byte

	// CredentialsProvider supplies the primary AWS credentials sent to
	// the child at startup and on every refresh cycle. Required.
	CredentialsProvider credentials.Provider

	// MetricsCredentialsProvider supplies metrics-specific credentials.
	// If nil, CredentialsProvider is used for metrics too.
	MetricsCredentialsProvider credentials.Provider

	// CredentialsRefreshDelay is the interval between credential
	// refresh cycles. Defaults to 5 minutes if zero.
	CredentialsRefreshDelay time.Duration

	// Handler receives dispatched messages and the single terminal
	// error. May be nil, in which case both callbacks are dropped.
	Handler Handler

	// Logger receives structured events. Defaults to slog.Default().
	Logger *slog.Logger

	// Clock abstracts time for the credentials refresh loop and the
	// channel connector's backoff. Defaults to clock.Real().
	Clock clock.Clock
}

func (cfg Config) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}

func (cfg Config) clockOrReal() clock.Clock {
	if cfg.Clock != nil {
		return cfg.Clock
	}
	return clock.Real()
}

func (cfg Config) refreshDelayOrDefault() time.Duration {
	if cfg.CredentialsRefreshDelay > 0 {
		return cfg.CredentialsRefreshDelay
	}
	return 5 * time.Minute
}

// Supervisor owns the framed transport to a native child process: an
// unbounded outgoing queue drained by a send loop, an incoming queue
// fed by a receive loop and drained by a dispatch loop, and a
// credentials refresh loop, all torn down together exactly once by the
// failure arbiter (fatal).
type Supervisor struct {
	config  Config
	logger  *slog.Logger
	clock   clock.Clock
	handler Handler

	inPipe, outPipe string
	ownsPipes       bool
	pipes           pipefactory.Pair

	inChannel  io.ReadCloser
	outChannel io.WriteCloser

	process *childproc.Process

	outgoing *messageQueue
	incoming *messageQueue

	shutdown  atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	loopGroup sync.WaitGroup
}

// New creates the supervisor's pipes, spawns the native child process,
// and starts the four pump loops. It returns as soon as the child has
// been started; connecting to its pipes and any subsequent failure
// happen asynchronously and are reported through cfg.Handler.OnError,
// mirroring the reference daemon's non-blocking public constructor.
func New(ctx context.Context, cfg Config) (*Supervisor, error) {
	clk := cfg.clockOrReal()

	pipes, err := pipefactory.Create(ctx, clk, cfg.WorkingDir)
	if err != nil {
		return nil, err
	}

	s := &Supervisor{
		config:    cfg,
		logger:    cfg.logger(),
		clock:     clk,
		handler:   cfg.Handler,
		inPipe:    pipes.In,
		outPipe:   pipes.Out,
		ownsPipes: true,
		pipes:     pipes,
		outgoing:  newMessageQueue(),
		incoming:  newMessageQueue(),
		done:      make(chan struct{}),
	}

	connected := make(chan struct{})
	go func() {
		defer close(connected)
		in, out, err := connectChannels(ctx, clk, pipes)
		if err != nil {
			s.fatal("error connecting to child process pipes", err, true)
			return
		}
		s.inChannel, s.outChannel = in, out
		s.startLoops()
	}()

	process, err := childproc.Launch(ctx, childproc.Config{
		ExecutablePath:             cfg.ExecutablePath,
		WorkingDir:                 cfg.WorkingDir,
		EnvironmentVariables:       cfg.EnvironmentVariables,
		ChildConfig:                cfg.ChildConfig,
		CredentialsProvider:        cfg.CredentialsProvider,
		MetricsCredentialsProvider: cfg.MetricsCredentialsProvider,
		Logger:                     s.logger,
	}, pipes, s.onChildExit)
	if err != nil {
		pipefactory.Remove(pipes)
		return nil, err
	}
	s.process = process

	return s, nil
}

// Connect attaches to a pair of pipes that already exist, without
// spawning a child process. It mirrors the reference daemon's
// package-private testing constructor: used by this module's own
// tests to drive the pump loops against an in-process mock child
// without an external binary. Connect never owns the pipe files and
// never deletes them on teardown.
//
// Connect blocks until the connection succeeds or connectChannels'
// budget is exhausted; on failure it invokes cfg.Handler.OnError
// through the arbiter and returns the already-terminal Supervisor,
// exactly as the reference constructor does (the error is reported,
// not returned).
func Connect(ctx context.Context, inPipe, outPipe string, cfg Config) (*Supervisor, error) {
	clk := cfg.clockOrReal()

	s := &Supervisor{
		config:    cfg,
		logger:    cfg.logger(),
		clock:     clk,
		handler:   cfg.Handler,
		inPipe:    inPipe,
		outPipe:   outPipe,
		ownsPipes: false,
		outgoing:  newMessageQueue(),
		incoming:  newMessageQueue(),
		done:      make(chan struct{}),
	}

	in, out, err := connectChannels(ctx, clk, pipefactory.Pair{In: inPipe, Out: outPipe})
	if err != nil {
		s.fatal("error connecting to child process pipes", err, true)
		return s, nil
	}
	s.inChannel, s.outChannel = in, out
	s.startLoops()

	return s, nil
}

// startLoops launches the four pump goroutines. Called exactly once,
// after the channel connector has succeeded.
func (s *Supervisor) startLoops() {
	s.loopGroup.Add(4)
	go s.sendLoop()
	go s.receiveLoop()
	go s.dispatchLoop()
	go s.credentialRefreshLoop()
}

// onChildExit is childproc.Launch's onExit callback: any exit, even a
// clean one, is fatal to the supervisor, since this module's contract
// is to supervise exactly one child process instance for its whole
// lifetime.
func (s *Supervisor) onChildExit(exit childproc.Exit) {
	if exit.Err != nil {
		s.fatal("native child process could not be waited on", exit.Err, true)
		return
	}
	message := "native child process exited"
	s.fatal(message, nil, exit.Retryable)
}

// Add enqueues msg for delivery to the child process. It returns
// ErrShutdown once the supervisor has entered its terminal state, and
// ctx.Err() if ctx is already done -- the idiomatic replacement for
// the reference implementation's InterruptedException, which also
// treats cancellation during enqueue as fatal.
func (s *Supervisor) Add(ctx context.Context, msg Message) error {
	if s.shutdown.Load() {
		return ErrShutdown
	}

	select {
	case <-ctx.Done():
		err := ctx.Err()
		s.fatal("interrupted while adding message to outgoing queue", err, true)
		return err
	default:
	}

	s.outgoing.put(msg)
	return nil
}

// Destroy tears the supervisor down: it terminates the child process
// (if any), stops the pump loops, closes the pipes, and invokes the
// handler's error callback with a message-only retryable error,
// exactly as the reference daemon's public destroy() does.
func (s *Supervisor) Destroy() {
	s.fatal("destroy() was called", nil, true)
}

// QueueSize returns the number of messages currently waiting to be
// sent to the child process.
func (s *Supervisor) QueueSize() int {
	return s.outgoing.len()
}

// InPipe returns the path of the pipe the supervisor reads from.
func (s *Supervisor) InPipe() string { return s.inPipe }

// OutPipe returns the path of the pipe the supervisor writes to.
func (s *Supervisor) OutPipe() string { return s.outPipe }

// ExecutablePath returns the native child executable's path, or "" for
// a Supervisor built with Connect.
func (s *Supervisor) ExecutablePath() string { return s.config.ExecutablePath }

// WorkingDir returns the directory the supervisor's pipes and child
// process were created in.
func (s *Supervisor) WorkingDir() string { return s.config.WorkingDir }

// Handler returns the configured message and error handler.
func (s *Supervisor) Handler() Handler { return s.handler }

// Process returns the underlying *os.Process, or nil for a Supervisor
// built with Connect or one whose child has not yet started.
func (s *Supervisor) Process() *os.Process {
	if s.process == nil {
		return nil
	}
	return s.process.OSProcess()
}
