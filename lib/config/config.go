// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the supervisor harness's configuration.
//
// Configuration is loaded from a single file specified by:
//   - KPL_SUPERVISOR_CONFIG environment variable, or
//   - an explicit path passed to LoadFile
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the harness's configuration: everything needed to
// construct a supervisor.Config and launch the native child process.
type Config struct {
	// ExecutablePath is the path to the native child binary.
	ExecutablePath string `yaml:"executable_path"`

	// WorkingDir is the directory the supervisor's pipes and the child
	// process are created/started in.
	WorkingDir string `yaml:"working_dir"`

	// EnvironmentVariables are merged over the harness's own
	// environment before the child is spawned.
	EnvironmentVariables map[string]string `yaml:"environment_variables"`

	// ChildConfigFile is the path to a file holding the opaque
	// producer configuration blob passed to the child as its "-c"
	// argument. The file's contents are carried as raw bytes; this
	// module never parses them.
	ChildConfigFile string `yaml:"child_config_file"`

	// CredentialsRefreshDelay is a duration string (e.g. "5m")
	// controlling how often SetCredentials is resent to the child.
	// Defaults to "5m" if empty.
	CredentialsRefreshDelay string `yaml:"credentials_refresh_delay"`

	// MetricsCredentialsDistinct, when true, tells the harness to
	// resolve metrics credentials from a separate provider (its own
	// environment variable set, AWS_METRICS_*) rather than falling
	// back to the primary credentials for both.
	MetricsCredentialsDistinct bool `yaml:"metrics_credentials_distinct"`
}

// Default returns a Config with every field at its zero value except
// CredentialsRefreshDelay, which is seeded with the harness's default.
// These exist to give every field a sensible zero-value before a file
// is loaded over them, not as a fallback -- ExecutablePath and
// WorkingDir are still required by Validate.
func Default() *Config {
	return &Config{
		CredentialsRefreshDelay: "5m",
	}
}

// Load loads configuration from the path named by KPL_SUPERVISOR_CONFIG.
func Load() (*Config, error) {
	path := os.Getenv("KPL_SUPERVISOR_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("KPL_SUPERVISOR_CONFIG environment variable not set; " +
			"set it to the path of your supervisor config file")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, expanding
// ${VAR} and ${VAR:-default} references in path-like fields against
// the process environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) expandVariables() {
	c.ExecutablePath = expandVars(c.ExecutablePath)
	c.WorkingDir = expandVars(c.WorkingDir)
	c.ChildConfigFile = expandVars(c.ChildConfigFile)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// RefreshDelay parses CredentialsRefreshDelay as a time.Duration.
func (c *Config) RefreshDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.CredentialsRefreshDelay)
	if err != nil {
		return 0, fmt.Errorf("config: credentials_refresh_delay %q: %w", c.CredentialsRefreshDelay, err)
	}
	return d, nil
}

// LoadChildConfig reads ChildConfigFile's contents. Returns nil, nil
// if ChildConfigFile is unset -- an empty child configuration blob is
// valid.
func (c *Config) LoadChildConfig() ([]byte, error) {
	if c.ChildConfigFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.ChildConfigFile)
	if err != nil {
		return nil, fmt.Errorf("config: reading child_config_file %s: %w", c.ChildConfigFile, err)
	}
	return data, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ExecutablePath == "" {
		return fmt.Errorf("config: executable_path is required")
	}
	if c.WorkingDir == "" {
		return fmt.Errorf("config: working_dir is required")
	}
	if _, err := c.RefreshDelay(); err != nil {
		return err
	}
	return nil
}
