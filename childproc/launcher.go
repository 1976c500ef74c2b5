// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package childproc

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/aws-kpl-go/kpl-supervisor/credentials"
	"github.com/aws-kpl-go/kpl-supervisor/pipefactory"
)

// Config describes how to launch and supervise the native child
// process.
type Config struct {
	// ExecutablePath is the path to the native child binary.
	ExecutablePath string

	// WorkingDir is the directory the child is started in.
	WorkingDir string

	// EnvironmentVariables are merged over the supervisor's own
	// environment before the child is spawned.
	EnvironmentVariables map[string]string

	// ChildConfig is the pre-serialized producer configuration blob
	// passed as the "-c" argument. Its own schema is out of scope for
	// this module; it is carried opaquely.
	ChildConfig []byte

	// CredentialsProvider supplies the primary AWS credentials.
	CredentialsProvider credentials.Provider

	// MetricsCredentialsProvider supplies metrics-specific
	// credentials. If nil, CredentialsProvider is used for metrics
	// too (credentials.Resolve).
	MetricsCredentialsProvider credentials.Provider

	// Logger receives structured events for the launch and the
	// child's relayed stdout/stderr. Defaults to slog.Default().
	Logger *slog.Logger
}

// logger returns cfg.Logger, falling back to slog.Default().
func (cfg Config) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}

// Exit describes how the child process ended.
type Exit struct {
	// Code is the process exit code, or -1 if the process was killed
	// by a signal or could not be waited on cleanly.
	Code int

	// Retryable is true unless Code == 1, matching the original
	// daemon's fatalError(msg, code != 1) classification.
	Retryable bool

	// Err carries a non-exit-status failure from Wait, if any.
	Err error
}

// BuildArgs constructs the child process's argument list:
//
//	<executable> -o <outPipe> -i <inPipe> -c <hex config> \
//	             -k <hex primary SetCredentials> -t \
//	             -w <hex metrics SetCredentials>
//
// pipes.Out is the pipe the child reads from (the supervisor writes to
// it); pipes.In is the pipe the child writes to. The metrics provider
// falls back to the primary provider when unset, via
// credentials.Resolve, exactly once, in this one place.
func BuildArgs(ctx context.Context, executablePath string, pipes pipefactory.Pair, childConfig []byte, primary, metrics credentials.Provider) ([]string, error) {
	primaryCreds, err := primary.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("childproc: resolving primary credentials: %w", err)
	}
	primaryPayload, err := credentials.Encode(primaryCreds, false)
	if err != nil {
		return nil, fmt.Errorf("childproc: encoding primary SetCredentials: %w", err)
	}

	metricsCreds, err := credentials.Resolve(primary, metrics).Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("childproc: resolving metrics credentials: %w", err)
	}
	metricsPayload, err := credentials.Encode(metricsCreds, true)
	if err != nil {
		return nil, fmt.Errorf("childproc: encoding metrics SetCredentials: %w", err)
	}

	return []string{
		executablePath,
		"-o", pipes.Out,
		"-i", pipes.In,
		"-c", toHex(childConfig),
		"-k", toHex(primaryPayload),
		"-t",
		"-w", toHex(metricsPayload),
	}, nil
}

// toHex renders b as uppercase hex, matching the original daemon's
// protobufToHex (DatatypeConverter.printHexBinary is uppercase;
// encoding/hex emits lowercase, so the result is upper-cased here).
func toHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Process wraps the running child, its relayed log readers, and the
// waiter goroutine that reports its exit.
type Process struct {
	cmd    *exec.Cmd
	stdout *LogStreamReader
	stderr *LogStreamReader
}

// OSProcess returns the underlying *os.Process, or nil if the child
// has not been started.
func (p *Process) OSProcess() *os.Process {
	if p == nil || p.cmd == nil {
		return nil
	}
	return p.cmd.Process
}

// PrepareForShutdown tells both log readers to stop relaying after the
// line each is currently on (see LogStreamReader.PrepareForShutdown),
// in the place of the original's
// stdOutReader.shutdown()/stdErrReader.shutdown() calls made in
// startChildProcess's finally block.
func (p *Process) PrepareForShutdown() {
	if p.stdout != nil {
		p.stdout.PrepareForShutdown()
	}
	if p.stderr != nil {
		p.stderr.PrepareForShutdown()
	}
}

// Launch builds the argument list, starts the child process with its
// environment merged over the supervisor's own, wires up stdout/stderr
// log relaying, and starts a waiter goroutine that calls onExit
// exactly once when the child terminates.
//
// Launch returns as soon as the process has started; onExit runs on
// its own goroutine and may fire arbitrarily later.
func Launch(ctx context.Context, cfg Config, pipes pipefactory.Pair, onExit func(Exit)) (*Process, error) {
	args, err := BuildArgs(ctx, cfg.ExecutablePath, pipes, cfg.ChildConfig, cfg.CredentialsProvider, cfg.MetricsCredentialsProvider)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = cfg.WorkingDir
	cmd.Env = mergeEnv(os.Environ(), cfg.EnvironmentVariables)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("childproc: attaching stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("childproc: attaching stderr pipe: %w", err)
	}

	logger := cfg.logger()
	logger.Info("starting native child process", "executable", cfg.ExecutablePath, "args", args)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("childproc: starting child process: %w", err)
	}

	process := &Process{
		cmd:    cmd,
		stdout: NewLogStreamReader(stdout, logger, "stdout", slog.LevelInfo),
		stderr: NewLogStreamReader(stderr, logger, "stderr", slog.LevelWarn),
	}
	process.stdout.Start()
	process.stderr.Start()

	go process.wait(logger, onExit)

	return process, nil
}

// wait blocks on the child's exit, classifies it, and invokes onExit
// exactly once.
func (p *Process) wait(logger *slog.Logger, onExit func(Exit)) {
	err := p.cmd.Wait()

	exit := Exit{Code: -1, Retryable: true}
	switch e := err.(type) {
	case nil:
		exit.Code = 0
		exit.Retryable = true
	case *exec.ExitError:
		exit.Code = e.ExitCode()
		exit.Retryable = exit.Code != 1
	default:
		exit.Err = err
	}

	logger.Info("native child process exited", "code", exit.Code, "retryable", exit.Retryable)
	onExit(exit)
}

// mergeEnv overlays overrides on top of base, returning a new slice in
// "KEY=VALUE" form. Keys present in overrides replace any occurrence
// in base rather than appending a duplicate.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	merged := make([]string, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(overrides))

	for _, kv := range base {
		key, _, found := strings.Cut(kv, "=")
		if found {
			if value, overridden := overrides[key]; overridden {
				merged = append(merged, key+"="+value)
				seen[key] = true
				continue
			}
		}
		merged = append(merged, kv)
	}

	for key, value := range overrides {
		if !seen[key] {
			merged = append(merged, key+"="+value)
		}
	}

	return merged
}
