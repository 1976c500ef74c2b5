// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.CredentialsRefreshDelay != "5m" {
		t.Errorf("expected credentials_refresh_delay=5m, got %s", cfg.CredentialsRefreshDelay)
	}
	if cfg.ExecutablePath != "" {
		t.Errorf("expected executable_path to be empty by default, got %s", cfg.ExecutablePath)
	}
}

func TestLoadRequiresEnvVar(t *testing.T) {
	origConfig := os.Getenv("KPL_SUPERVISOR_CONFIG")
	defer os.Setenv("KPL_SUPERVISOR_CONFIG", origConfig)
	os.Unsetenv("KPL_SUPERVISOR_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when KPL_SUPERVISOR_CONFIG not set, got nil")
	}
}

func TestLoadWithEnvVar(t *testing.T) {
	origConfig := os.Getenv("KPL_SUPERVISOR_CONFIG")
	defer os.Setenv("KPL_SUPERVISOR_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "supervisor.yaml")
	configContent := `
executable_path: /usr/local/bin/kinesis_producer
working_dir: /var/run/kpl-supervisor
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("KPL_SUPERVISOR_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ExecutablePath != "/usr/local/bin/kinesis_producer" {
		t.Errorf("executable_path = %q, want %q", cfg.ExecutablePath, "/usr/local/bin/kinesis_producer")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "supervisor.yaml")

	configContent := `
executable_path: /usr/local/bin/kinesis_producer
working_dir: /custom/work
environment_variables:
  LD_LIBRARY_PATH: /usr/local/lib
credentials_refresh_delay: 90s
metrics_credentials_distinct: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.ExecutablePath != "/usr/local/bin/kinesis_producer" {
		t.Errorf("executable_path = %q", cfg.ExecutablePath)
	}
	if cfg.WorkingDir != "/custom/work" {
		t.Errorf("working_dir = %q", cfg.WorkingDir)
	}
	if cfg.EnvironmentVariables["LD_LIBRARY_PATH"] != "/usr/local/lib" {
		t.Errorf("environment_variables[LD_LIBRARY_PATH] = %q", cfg.EnvironmentVariables["LD_LIBRARY_PATH"])
	}
	if cfg.CredentialsRefreshDelay != "90s" {
		t.Errorf("credentials_refresh_delay = %q", cfg.CredentialsRefreshDelay)
	}
	if !cfg.MetricsCredentialsDistinct {
		t.Error("expected metrics_credentials_distinct=true")
	}
}

func TestLoadFileExpandsVariables(t *testing.T) {
	origHome := os.Getenv("KPL_TEST_HOME")
	defer os.Setenv("KPL_TEST_HOME", origHome)
	os.Setenv("KPL_TEST_HOME", "/opt/kpl")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "supervisor.yaml")
	configContent := `
executable_path: ${KPL_TEST_HOME}/bin/kinesis_producer
working_dir: ${KPL_TEST_WORKDIR:-/var/run/kpl-supervisor}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.ExecutablePath != "/opt/kpl/bin/kinesis_producer" {
		t.Errorf("executable_path = %q, want expansion of KPL_TEST_HOME", cfg.ExecutablePath)
	}
	if cfg.WorkingDir != "/var/run/kpl-supervisor" {
		t.Errorf("working_dir = %q, want the ${VAR:-default} fallback", cfg.WorkingDir)
	}
}

func TestExpandVars(t *testing.T) {
	os.Setenv("KPL_TEST_A", "first")
	os.Setenv("KPL_TEST_B", "second")
	defer os.Unsetenv("KPL_TEST_A")
	defer os.Unsetenv("KPL_TEST_B")

	tests := []struct {
		input    string
		expected string
	}{
		{"${KPL_TEST_A}/bureau", "first/bureau"},
		{"${KPL_TEST_MISSING:-default}", "default"},
		{"${KPL_TEST_A}/${KPL_TEST_B}", "first/second"},
		{"no variables here", "no variables here"},
	}

	for _, tt := range tests {
		if got := expandVars(tt.input); got != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name: "valid config",
			modify: func(c *Config) {
				c.ExecutablePath = "/bin/kinesis_producer"
				c.WorkingDir = "/var/run/kpl"
			},
			wantErr: false,
		},
		{
			name:    "missing executable path",
			modify:  func(c *Config) { c.WorkingDir = "/var/run/kpl" },
			wantErr: true,
		},
		{
			name: "missing working dir",
			modify: func(c *Config) {
				c.ExecutablePath = "/bin/kinesis_producer"
			},
			wantErr: true,
		},
		{
			name: "invalid refresh delay",
			modify: func(c *Config) {
				c.ExecutablePath = "/bin/kinesis_producer"
				c.WorkingDir = "/var/run/kpl"
				c.CredentialsRefreshDelay = "not-a-duration"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRefreshDelay(t *testing.T) {
	cfg := Default()
	cfg.CredentialsRefreshDelay = "2m30s"

	d, err := cfg.RefreshDelay()
	if err != nil {
		t.Fatalf("RefreshDelay: %v", err)
	}
	if d != 2*time.Minute+30*time.Second {
		t.Errorf("RefreshDelay() = %v, want 2m30s", d)
	}
}

func TestLoadChildConfigUnsetReturnsNil(t *testing.T) {
	cfg := Default()
	data, err := cfg.LoadChildConfig()
	if err != nil {
		t.Fatalf("LoadChildConfig: %v", err)
	}
	if data != nil {
		t.Errorf("LoadChildConfig() = %v, want nil for an unset file", data)
	}
}

func TestLoadChildConfigReadsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "producer.cfg")
	want := []byte{0x01, 0x02, 0x03, 0xff}
	if err := os.WriteFile(path, want, 0644); err != nil {
		t.Fatalf("failed to write child config: %v", err)
	}

	cfg := Default()
	cfg.ChildConfigFile = path

	got, err := cfg.LoadChildConfig()
	if err != nil {
		t.Fatalf("LoadChildConfig: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("LoadChildConfig() = %v, want %v", got, want)
	}
}
