// SPDX-License-Identifier: MPL-2.0

// Package projfile provides types and parsing for strata.cue project
// configuration files and for the workspace task-inheritance layers
// under .strata/tasks.
//
// The file shape is validated twice: structurally by the embedded CUE
// schema during decoding, then by Go-side validators for the rules CUE
// cannot express (command emptiness, dependency target scopes, env-file
// shapes). Workspaces that have not migrated to CUE can keep a legacy
// strata.yml; it decodes into the same types and passes through the same
// Go-side validators.
//
// This package uses pkg/cueutil for CUE parsing implementation details.
// External consumers should use Load, ParseBytes, and
// ParseInheritedTasksBytes; the CUE internals are not part of the
// public API.
package projfile
