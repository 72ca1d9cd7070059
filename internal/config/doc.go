// SPDX-License-Identifier: MPL-2.0

// Package config handles workspace configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from .strata/workspace.cue at the workspace root,
// located by walking up from the working directory. Workspaces that have not
// migrated to CUE yet may keep a .strata/workspace.toml instead; it is parsed
// with go-toml and skips schema unification. The config maps project ids to
// their source directories and carries toolchain and UI settings.
//
// CUE files are validated against a schema (workspace_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
