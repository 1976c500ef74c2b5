// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Kpl-supervisor-harness runs a single native child process under a
// supervisor.Supervisor until it is signaled to stop. It loads its
// configuration via lib/config, resolves AWS credentials from the
// process environment, and logs every message and terminal error it
// sees to stderr as structured lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws-kpl-go/kpl-supervisor/credentials"
	"github.com/aws-kpl-go/kpl-supervisor/lib/config"
	"github.com/aws-kpl-go/kpl-supervisor/lib/process"
	"github.com/aws-kpl-go/kpl-supervisor/lib/version"
	"github.com/aws-kpl-go/kpl-supervisor/supervisor"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to the harness's YAML config (overrides KPL_SUPERVISOR_CONFIG)")
	metricsDistinct := flag.Bool("metrics-credentials-distinct", false,
		"resolve metrics credentials from AWS_METRICS_* rather than falling back to the primary provider")
	accessKeyID := flag.String("access-key-id", "", "AWS access key ID (with -secret-key-file, reads the secret key from disk instead of AWS_SECRET_ACCESS_KEY)")
	secretKeyFile := flag.String("secret-key-file", "", "path to a file holding the AWS secret access key, read into a memory-locked buffer on every credential refresh")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *metricsDistinct {
		cfg.MetricsCredentialsDistinct = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	refreshDelay, err := cfg.RefreshDelay()
	if err != nil {
		return err
	}
	childConfig, err := cfg.LoadChildConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var primaryProvider credentials.Provider = credentials.EnvProvider{}
	if *secretKeyFile != "" {
		if *accessKeyID == "" {
			return fmt.Errorf("-access-key-id is required when -secret-key-file is set")
		}
		primaryProvider = credentials.FileProvider{
			AccessKeyID:   *accessKeyID,
			SecretKeyPath: *secretKeyFile,
		}
	}

	var metricsProvider credentials.Provider
	if cfg.MetricsCredentialsDistinct {
		metricsProvider = credentials.MetricsEnvProvider{}
	}

	terminal := make(chan error, 1)
	handler := supervisor.FuncHandler{
		OnMessageFunc: func(msg supervisor.Message) {
			logger.Info("received message from child", "bytes", len(msg))
		},
		OnErrorFunc: func(err error) {
			logger.Error("supervisor terminated", "error", err)
			select {
			case terminal <- err:
			default:
			}
		},
	}

	sup, err := supervisor.New(ctx, supervisor.Config{
		ExecutablePath:             cfg.ExecutablePath,
		WorkingDir:                 cfg.WorkingDir,
		EnvironmentVariables:       cfg.EnvironmentVariables,
		ChildConfig:                childConfig,
		CredentialsProvider:        primaryProvider,
		MetricsCredentialsProvider: metricsProvider,
		CredentialsRefreshDelay:    refreshDelay,
		Handler:                    handler,
		Logger:                     logger,
	})
	if err != nil {
		return fmt.Errorf("starting supervisor: %w", err)
	}

	logger.Info("supervisor running",
		"executable", sup.ExecutablePath(),
		"working_dir", sup.WorkingDir(),
		"in_pipe", sup.InPipe(),
		"out_pipe", sup.OutPipe(),
	)

	select {
	case <-ctx.Done():
		logger.Info("shutting down", "reason", ctx.Err())
		sup.Destroy()
	case err := <-terminal:
		return err
	}

	return nil
}

func loadConfig(explicitPath string) (*config.Config, error) {
	if explicitPath != "" {
		return config.LoadFile(explicitPath)
	}
	return config.Load()
}
