// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"strata-cli/pkg/types"
)

var (
	// ErrInvalidDependencyScope is the sentinel error wrapped by InvalidDependencyScopeError.
	ErrInvalidDependencyScope = errors.New("invalid dependency scope")
	// ErrInvalidDependencySource is the sentinel error wrapped by InvalidDependencySourceError.
	ErrInvalidDependencySource = errors.New("invalid dependency source")
)

const (
	// DependencyScopeProduction marks a dependency needed at runtime.
	DependencyScopeProduction DependencyScope = "production"
	// DependencyScopeDevelopment marks a dependency needed only during development.
	DependencyScopeDevelopment DependencyScope = "development"
	// DependencyScopePeer marks a dependency expected to be provided by consumers.
	DependencyScopePeer DependencyScope = "peer"

	// DependencySourceExplicit marks a dependency declared by the user in
	// the project configuration file.
	DependencySourceExplicit DependencySource = "explicit"
	// DependencySourceImplicit marks a dependency derived from graph
	// analysis (lockfiles, manifests) and injected during resolution.
	DependencySourceImplicit DependencySource = "implicit"
)

type (
	// DependencyScope categorizes how a project dependency is consumed.
	// The zero value ("") reads as DependencyScopeProduction.
	DependencyScope string

	// InvalidDependencyScopeError is returned when a DependencyScope
	// value is not recognized. It wraps ErrInvalidDependencyScope.
	InvalidDependencyScopeError struct {
		Value DependencyScope
	}

	// DependencySource records the provenance of a dependency entry. It
	// is a closed enumeration rather than a boolean so future provenance
	// kinds can be added without breaking call sites; switch over it
	// exhaustively. The zero value ("") means "not yet assigned" and
	// never survives project resolution.
	DependencySource string

	// InvalidDependencySourceError is returned when a DependencySource
	// value is not recognized. It wraps ErrInvalidDependencySource.
	InvalidDependencySourceError struct {
		Value DependencySource
	}

	// DependencyConfig is the full form of a project dependency
	// declaration.
	DependencyConfig struct {
		// ID is the target project id.
		ID types.ID `json:"id" yaml:"id"`
		// Scope categorizes the dependency (default: production).
		Scope DependencyScope `json:"scope,omitempty" yaml:"scope,omitempty"`
		// Source records whether the dependency was declared explicitly
		// or injected implicitly. Left empty in configuration files; the
		// resolver assigns it and never changes it afterwards.
		Source DependencySource `json:"source,omitempty" yaml:"source,omitempty"`
	}

	// DependsOnEntry is a raw dependency declaration, polymorphic over a
	// bare project id string and the full DependencyConfig object form.
	// Both decode into the embedded DependencyConfig; the bare form sets
	// only the ID.
	DependsOnEntry struct {
		DependencyConfig
	}
)

// String returns the string representation of the DependencyScope.
func (s DependencyScope) String() string { return string(s) }

// OrProduction maps the zero value to DependencyScopeProduction.
func (s DependencyScope) OrProduction() DependencyScope {
	if s == "" {
		return DependencyScopeProduction
	}
	return s
}

// IsValid returns whether the DependencyScope is recognized.
// The zero value is valid (treated as production).
func (s DependencyScope) IsValid() (bool, []error) {
	switch s {
	case "", DependencyScopeProduction, DependencyScopeDevelopment, DependencyScopePeer:
		return true, nil
	default:
		return false, []error{&InvalidDependencyScopeError{Value: s}}
	}
}

// Error implements the error interface for InvalidDependencyScopeError.
func (e *InvalidDependencyScopeError) Error() string {
	return fmt.Sprintf("invalid dependency scope %q (valid: production, development, peer)", e.Value)
}

// Unwrap returns ErrInvalidDependencyScope for errors.Is() compatibility.
func (e *InvalidDependencyScopeError) Unwrap() error { return ErrInvalidDependencyScope }

// String returns the string representation of the DependencySource.
func (s DependencySource) String() string { return string(s) }

// IsSet reports whether a provenance has been assigned.
func (s DependencySource) IsSet() bool { return s != "" }

// IsValid returns whether the DependencySource is recognized.
// The zero value is valid (treated as unassigned).
func (s DependencySource) IsValid() (bool, []error) {
	switch s {
	case "", DependencySourceExplicit, DependencySourceImplicit:
		return true, nil
	default:
		return false, []error{&InvalidDependencySourceError{Value: s}}
	}
}

// Error implements the error interface for InvalidDependencySourceError.
func (e *InvalidDependencySourceError) Error() string {
	return fmt.Sprintf("invalid dependency source %q (valid: explicit, implicit)", e.Value)
}

// Unwrap returns ErrInvalidDependencySource for errors.Is() compatibility.
func (e *InvalidDependencySourceError) Unwrap() error { return ErrInvalidDependencySource }

// UnmarshalJSON accepts either a bare id string or the full object form.
func (e *DependsOnEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id types.ID
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		e.DependencyConfig = DependencyConfig{ID: id}
		return nil
	}

	var cfg DependencyConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("expected a project id or a dependency object: %w", err)
	}
	e.DependencyConfig = cfg
	return nil
}

// MarshalJSON always renders the full object form.
func (e DependsOnEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.DependencyConfig)
}

// UnmarshalYAML accepts either a bare id scalar or the full mapping form.
func (e *DependsOnEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var id types.ID
		if err := node.Decode(&id); err != nil {
			return err
		}
		e.DependencyConfig = DependencyConfig{ID: id}
		return nil
	}

	var cfg DependencyConfig
	if err := node.Decode(&cfg); err != nil {
		return fmt.Errorf("expected a project id or a dependency object: %w", err)
	}
	e.DependencyConfig = cfg
	return nil
}
