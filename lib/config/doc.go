// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the
// supervisor harness.
//
// Configuration is loaded from a single file specified by either the
// KPL_SUPERVISOR_CONFIG environment variable (via [Load]) or an
// explicit path (via [LoadFile]). There are no fallbacks, no
// ~/.config discovery, and no automatic file search. This ensures
// deterministic, auditable configuration with no hidden overrides.
//
// Variable expansion is performed on path-like fields after loading:
// ${VAR} and ${VAR:-default} patterns are expanded against the
// process environment. No other environment variables override
// config values.
//
// Key exports:
//
//   - [Config] -- the harness's configuration struct
//   - [Default] -- returns a Config with the harness's defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other package in this module.
package config
