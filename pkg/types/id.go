// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidID is the sentinel error wrapped by InvalidIDError.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrInvalidTag is the sentinel error wrapped by InvalidTagError.
	ErrInvalidTag = errors.New("invalid tag")
)

type (
	// ID is a unique identifier for a project, task, or file group.
	// IDs are namespaced per workspace; workspace-level uniqueness is
	// enforced by the surrounding project graph, not here.
	//
	// A valid ID starts with an alphanumeric character and contains only
	// alphanumerics, '-', '_', '.', and '/'.
	ID string

	// InvalidIDError is returned when an ID value does not match the
	// allowed identifier shape. It wraps ErrInvalidID for errors.Is().
	InvalidIDError struct {
		Value ID
	}

	// Tag is a freeform label attached to a project, used to select
	// applicable inherited task configuration layers.
	// A valid tag is non-empty and not whitespace-only.
	Tag string

	// InvalidTagError is returned when a Tag value is empty or
	// whitespace-only. It wraps ErrInvalidTag for errors.Is().
	InvalidTagError struct {
		Value Tag
	}
)

// String returns the string representation of the ID.
func (id ID) String() string { return string(id) }

// IsValid returns whether the ID matches the allowed identifier shape.
func (id ID) IsValid() (bool, []error) {
	if id == "" {
		return false, []error{&InvalidIDError{Value: id}}
	}
	for i, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case i > 0 && (c == '-' || c == '_' || c == '.' || c == '/'):
		default:
			return false, []error{&InvalidIDError{Value: id}}
		}
	}
	return true, nil
}

// Error implements the error interface for InvalidIDError.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid identifier %q: must start with an alphanumeric and contain only alphanumerics, '-', '_', '.', '/'", e.Value)
}

// Unwrap returns ErrInvalidID for errors.Is() compatibility.
func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }

// String returns the string representation of the Tag.
func (t Tag) String() string { return string(t) }

// IsValid returns whether the Tag is non-empty and not whitespace-only.
func (t Tag) IsValid() (bool, []error) {
	if strings.TrimSpace(string(t)) == "" {
		return false, []error{&InvalidTagError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTagError.
func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidTag for errors.Is() compatibility.
func (e *InvalidTagError) Unwrap() error { return ErrInvalidTag }
