// SPDX-License-Identifier: MPL-2.0

package project

import (
	"strings"

	"strata-cli/pkg/types"
)

// FileGroup is a named, ordered set of path patterns, resolved to
// workspace-relative form. Pattern order within a group is preserved
// from the source declaration and is significant; groups themselves
// carry no ordering relative to each other.
type FileGroup struct {
	// ID names the group.
	ID types.ID
	// Patterns are the workspace-relative patterns, in declaration
	// order. Environment variable references pass through unresolved.
	Patterns []types.WorkspaceRelPath
}

// NewFileGroup builds a FileGroup, copying the pattern list so the
// result does not alias caller-owned storage.
func NewFileGroup(id types.ID, patterns []types.WorkspaceRelPath) FileGroup {
	copied := make([]types.WorkspaceRelPath, len(patterns))
	copy(copied, patterns)
	return FileGroup{ID: id, Patterns: copied}
}

// Files returns the literal (non-glob, non-env) patterns in order.
func (g FileGroup) Files() []types.WorkspaceRelPath {
	return g.filter(func(s string) bool {
		return !isGlobPattern(s) && !strings.HasPrefix(s, "$")
	})
}

// Globs returns the glob patterns in order, negations included.
func (g FileGroup) Globs() []types.WorkspaceRelPath {
	return g.filter(isGlobPattern)
}

// EnvVars returns the environment variable references in order.
func (g FileGroup) EnvVars() []types.WorkspaceRelPath {
	return g.filter(func(s string) bool { return strings.HasPrefix(s, "$") })
}

func (g FileGroup) filter(keep func(string) bool) []types.WorkspaceRelPath {
	var out []types.WorkspaceRelPath
	for _, p := range g.Patterns {
		if keep(strings.TrimPrefix(string(p), "!")) {
			out = append(out, p)
		}
	}
	return out
}

func isGlobPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
