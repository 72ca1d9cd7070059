// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"strata-cli/pkg/types"
)

var (
	// ErrMissingFromPath is the sentinel error wrapped by MissingFromPathError.
	ErrMissingFromPath = errors.New("no workspace found from path")
	// ErrUnconfiguredID is the sentinel error wrapped by UnconfiguredIDError.
	ErrUnconfiguredID = errors.New("unconfigured project id")
)

type (
	// MissingFromPathError is returned when no workspace root (and so no
	// project) can be located walking up from a filesystem path.
	MissingFromPathError struct {
		Path types.FilesystemPath
	}

	// UnconfiguredIDError is returned when a project id is referenced but
	// not declared in the workspace configuration.
	UnconfiguredIDError struct {
		ID types.ID
	}
)

// Error implements the error interface for MissingFromPathError.
func (e *MissingFromPathError) Error() string {
	return fmt.Sprintf("no workspace could be located from path %q", e.Path)
}

// Unwrap returns ErrMissingFromPath for errors.Is() compatibility.
func (e *MissingFromPathError) Unwrap() error { return ErrMissingFromPath }

// Error implements the error interface for UnconfiguredIDError.
func (e *UnconfiguredIDError) Error() string {
	return fmt.Sprintf("project %s is not configured in this workspace", e.ID)
}

// Unwrap returns ErrUnconfiguredID for errors.Is() compatibility.
func (e *UnconfiguredIDError) Unwrap() error { return ErrUnconfiguredID }
