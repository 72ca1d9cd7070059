// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath and path
// functions that accept and return the typed paths from pkg/types. Callers
// get typed-in/typed-out path operations without casting at every site.
//
// FilesystemPath operations use OS-native separators; WorkspaceRelPath
// operations are always slash-separated, independent of OS.
package fspath

import (
	"fmt"
	"path"
	"path/filepath"

	"strata-cli/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments. Use this when joining a validated path with literal constants
// (e.g., "strata.cue") or OS-provided file names (e.g., from os.ReadDir).
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// WorkspaceJoin joins slash-separated workspace-relative segments onto a
// base WorkspaceRelPath. The result is cleaned with path.Join semantics,
// so a base of "." disappears from the output.
func WorkspaceJoin(base types.WorkspaceRelPath, elem ...string) types.WorkspaceRelPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.WorkspaceRelPath(path.Join(parts...))
}

// ToLogical resolves a WorkspaceRelPath against an absolute workspace root,
// producing the OS-native absolute path of the referenced location.
func ToLogical(rel types.WorkspaceRelPath, workspaceRoot types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Join(string(workspaceRoot), filepath.FromSlash(string(rel))))
}
