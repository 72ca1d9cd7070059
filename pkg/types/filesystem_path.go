// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
	ErrInvalidFilesystemPath = errors.New("invalid filesystem path")
	// ErrInvalidWorkspaceRelPath is the sentinel error wrapped by InvalidWorkspaceRelPathError.
	ErrInvalidWorkspaceRelPath = errors.New("invalid workspace-relative path")
)

type (
	// FilesystemPath represents an absolute, OS-native filesystem path.
	// A valid path must be non-empty and not whitespace-only.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath value
	// is empty or whitespace-only. It wraps ErrInvalidFilesystemPath.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}

	// WorkspaceRelPath represents a path relative to the workspace root,
	// always slash-separated regardless of OS. A valid path must be
	// non-empty, must not be absolute, and must not escape the workspace
	// via a leading "..".
	WorkspaceRelPath string

	// InvalidWorkspaceRelPathError is returned when a WorkspaceRelPath
	// value is empty, absolute, or escapes the workspace root.
	// It wraps ErrInvalidWorkspaceRelPath for errors.Is() compatibility.
	InvalidWorkspaceRelPathError struct {
		Value WorkspaceRelPath
	}
)

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// IsValid returns whether the FilesystemPath is non-empty and not
// whitespace-only.
func (p FilesystemPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidFilesystemPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }

// String returns the string representation of the WorkspaceRelPath.
func (p WorkspaceRelPath) String() string { return string(p) }

// IsValid returns whether the WorkspaceRelPath stays inside the workspace.
func (p WorkspaceRelPath) IsValid() (bool, []error) {
	s := string(p)
	if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "/") ||
		s == ".." || strings.HasPrefix(s, "../") {
		return false, []error{&InvalidWorkspaceRelPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWorkspaceRelPathError.
func (e *InvalidWorkspaceRelPathError) Error() string {
	return fmt.Sprintf("invalid workspace-relative path %q: must be non-empty, relative, and inside the workspace", e.Value)
}

// Unwrap returns ErrInvalidWorkspaceRelPath for errors.Is() compatibility.
func (e *InvalidWorkspaceRelPathError) Unwrap() error { return ErrInvalidWorkspaceRelPath }
