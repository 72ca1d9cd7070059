// SPDX-License-Identifier: MPL-2.0

// Package portpath defines the portable path pattern used by file groups
// and task inputs/outputs. Patterns are written project-relative by
// default and converted to workspace-relative form during project
// resolution; a leading "/" scopes a pattern to the workspace root, and
// a "$VAR" form references an environment variable.
package portpath
