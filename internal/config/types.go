// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"strata-cli/internal/toolchain"
	"strata-cli/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidProjectEntry is the sentinel error wrapped by InvalidProjectEntryError.
	ErrInvalidProjectEntry = errors.New("invalid project entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidProjectEntryError is returned when a projects entry has an
	// invalid id or source path. It wraps ErrInvalidProjectEntry.
	InvalidProjectEntryError struct {
		ID          types.ID
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// Config holds the workspace configuration loaded from
	// .strata/workspace.cue (or the workspace.toml fallback).
	Config struct {
		// Projects maps project ids to their workspace-relative source
		// directories.
		Projects map[types.ID]types.WorkspaceRelPath `json:"projects" mapstructure:"projects" toml:"projects"`
		// Toolchain configures the workspace toolchains.
		Toolchain toolchain.Config `json:"toolchain" mapstructure:"toolchain" toml:"toolchain"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidProjectEntryError.
func (e *InvalidProjectEntryError) Error() string {
	return fmt.Sprintf("invalid project entry %q: %d field error(s)", e.ID, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidProjectEntry for errors.Is() compatibility.
func (e *InvalidProjectEntryError) Unwrap() error { return ErrInvalidProjectEntry }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, fieldErrs
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields. It validates
// every projects entry and the UI section; the toolchain section needs
// no validation beyond the schema.
func (c Config) IsValid() (bool, []error) {
	var errs []error

	for id, source := range c.Projects {
		var fieldErrs []error
		if valid, idErrs := id.IsValid(); !valid {
			fieldErrs = append(fieldErrs, idErrs...)
		}
		if valid, srcErrs := source.IsValid(); !valid {
			fieldErrs = append(fieldErrs, srcErrs...)
		}
		if len(fieldErrs) > 0 {
			errs = append(errs, &InvalidProjectEntryError{ID: id, FieldErrors: fieldErrs})
		}
	}

	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// ProjectSource resolves a project id to its configured source path.
func (c *Config) ProjectSource(id types.ID) (types.WorkspaceRelPath, error) {
	source, ok := c.Projects[id]
	if !ok {
		return "", &UnconfiguredIDError{ID: id}
	}
	return source, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Projects:  map[types.ID]types.WorkspaceRelPath{},
		Toolchain: toolchain.Config{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
