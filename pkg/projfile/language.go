// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLanguage is the sentinel error wrapped by InvalidLanguageError.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrInvalidPlatform is the sentinel error wrapped by InvalidPlatformError.
	ErrInvalidPlatform = errors.New("invalid platform")
	// ErrInvalidProjectType is the sentinel error wrapped by InvalidProjectTypeError.
	ErrInvalidProjectType = errors.New("invalid project type")
)

const (
	// LanguageBash is a Bash project.
	LanguageBash LanguageType = "bash"
	// LanguageBatch is a Windows batch project.
	LanguageBatch LanguageType = "batch"
	// LanguageGo is a Go project.
	LanguageGo LanguageType = "go"
	// LanguageJavaScript is a JavaScript project.
	LanguageJavaScript LanguageType = "javascript"
	// LanguagePython is a Python project.
	LanguagePython LanguageType = "python"
	// LanguageRuby is a Ruby project.
	LanguageRuby LanguageType = "ruby"
	// LanguageRust is a Rust project.
	LanguageRust LanguageType = "rust"
	// LanguageTypeScript is a TypeScript project.
	LanguageTypeScript LanguageType = "typescript"
	// LanguageUnknown means the language was neither declared nor detected.
	LanguageUnknown LanguageType = "unknown"

	// PlatformNode runs tasks through the Node.js toolchain.
	PlatformNode PlatformType = "node"
	// PlatformSystem runs tasks directly on the host system.
	PlatformSystem PlatformType = "system"
	// PlatformUnknown means the platform has not been resolved yet.
	PlatformUnknown PlatformType = "unknown"

	// ProjectTypeApplication is a deployable application.
	ProjectTypeApplication ProjectType = "application"
	// ProjectTypeLibrary is a shared library consumed by other projects.
	ProjectTypeLibrary ProjectType = "library"
	// ProjectTypeTool is an internal tool.
	ProjectTypeTool ProjectType = "tool"
	// ProjectTypeUnknown means the project type was not declared.
	ProjectTypeUnknown ProjectType = "unknown"
)

type (
	// LanguageType is the primary programming language of a project.
	// The zero value ("") reads as LanguageUnknown.
	LanguageType string

	// InvalidLanguageError is returned when a LanguageType value is not
	// recognized. It wraps ErrInvalidLanguage for errors.Is().
	InvalidLanguageError struct {
		Value LanguageType
	}

	// PlatformType is the toolchain platform tasks of a project (or a
	// single task) run through. The zero value ("") means "unset" and is
	// distinct from PlatformUnknown, which is a resolved "no platform".
	PlatformType string

	// InvalidPlatformError is returned when a PlatformType value is not
	// recognized. It wraps ErrInvalidPlatform for errors.Is().
	InvalidPlatformError struct {
		Value PlatformType
	}

	// ProjectType categorizes what a project produces.
	ProjectType string

	// InvalidProjectTypeError is returned when a ProjectType value is not
	// recognized. It wraps ErrInvalidProjectType for errors.Is().
	InvalidProjectTypeError struct {
		Value ProjectType
	}
)

// String returns the string representation of the LanguageType.
func (l LanguageType) String() string { return string(l) }

// OrUnknown maps the zero value to LanguageUnknown.
func (l LanguageType) OrUnknown() LanguageType {
	if l == "" {
		return LanguageUnknown
	}
	return l
}

// IsValid returns whether the LanguageType is one of the supported
// languages. The zero value is valid (treated as unknown).
func (l LanguageType) IsValid() (bool, []error) {
	switch l {
	case "", LanguageBash, LanguageBatch, LanguageGo, LanguageJavaScript,
		LanguagePython, LanguageRuby, LanguageRust, LanguageTypeScript, LanguageUnknown:
		return true, nil
	default:
		return false, []error{&InvalidLanguageError{Value: l}}
	}
}

// Platform derives the task platform implied by the language: JavaScript
// and TypeScript projects run through the Node toolchain, every other
// known language runs on the host system.
func (l LanguageType) Platform() PlatformType {
	switch l.OrUnknown() {
	case LanguageJavaScript, LanguageTypeScript:
		return PlatformNode
	case LanguageUnknown:
		return PlatformUnknown
	default:
		return PlatformSystem
	}
}

// Error implements the error interface for InvalidLanguageError.
func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid language %q (valid: bash, batch, go, javascript, python, ruby, rust, typescript, unknown)", e.Value)
}

// Unwrap returns ErrInvalidLanguage for errors.Is() compatibility.
func (e *InvalidLanguageError) Unwrap() error { return ErrInvalidLanguage }

// String returns the string representation of the PlatformType.
func (p PlatformType) String() string { return string(p) }

// IsSet reports whether the platform was explicitly declared.
func (p PlatformType) IsSet() bool { return p != "" }

// OrUnknown maps the zero value to PlatformUnknown.
func (p PlatformType) OrUnknown() PlatformType {
	if p == "" {
		return PlatformUnknown
	}
	return p
}

// IsValid returns whether the PlatformType is one of the supported
// platforms. The zero value is valid (treated as unset).
func (p PlatformType) IsValid() (bool, []error) {
	switch p {
	case "", PlatformNode, PlatformSystem, PlatformUnknown:
		return true, nil
	default:
		return false, []error{&InvalidPlatformError{Value: p}}
	}
}

// Error implements the error interface for InvalidPlatformError.
func (e *InvalidPlatformError) Error() string {
	return fmt.Sprintf("invalid platform %q (valid: node, system, unknown)", e.Value)
}

// Unwrap returns ErrInvalidPlatform for errors.Is() compatibility.
func (e *InvalidPlatformError) Unwrap() error { return ErrInvalidPlatform }

// String returns the string representation of the ProjectType.
func (p ProjectType) String() string { return string(p) }

// OrUnknown maps the zero value to ProjectTypeUnknown.
func (p ProjectType) OrUnknown() ProjectType {
	if p == "" {
		return ProjectTypeUnknown
	}
	return p
}

// IsValid returns whether the ProjectType is one of the supported types.
// The zero value is valid (treated as unknown).
func (p ProjectType) IsValid() (bool, []error) {
	switch p {
	case "", ProjectTypeApplication, ProjectTypeLibrary, ProjectTypeTool, ProjectTypeUnknown:
		return true, nil
	default:
		return false, []error{&InvalidProjectTypeError{Value: p}}
	}
}

// Error implements the error interface for InvalidProjectTypeError.
func (e *InvalidProjectTypeError) Error() string {
	return fmt.Sprintf("invalid project type %q (valid: application, library, tool, unknown)", e.Value)
}

// Unwrap returns ErrInvalidProjectType for errors.Is() compatibility.
func (e *InvalidProjectTypeError) Unwrap() error { return ErrInvalidProjectType }
