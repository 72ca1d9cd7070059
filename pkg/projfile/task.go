// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"errors"
	"fmt"

	"strata-cli/pkg/portpath"
	"strata-cli/pkg/target"
)

// ErrInvalidTaskType is the sentinel error wrapped by InvalidTaskTypeError.
var ErrInvalidTaskType = errors.New("invalid task type")

const (
	// TaskTypeBuild produces artifacts from inputs.
	TaskTypeBuild TaskType = "build"
	// TaskTypeRun starts a long-lived process.
	TaskTypeRun TaskType = "run"
	// TaskTypeTest verifies the project (the default).
	TaskTypeTest TaskType = "test"
)

type (
	// TaskType categorizes what a task does. The zero value ("") reads
	// as TaskTypeTest unless the task resolver infers otherwise.
	TaskType string

	// InvalidTaskTypeError is returned when a TaskType value is not
	// recognized. It wraps ErrInvalidTaskType for errors.Is().
	InvalidTaskTypeError struct {
		Value TaskType
	}

	// TaskConfig is a task declaration as written in configuration,
	// before inheritance and option resolution.
	TaskConfig struct {
		// Command is what the task executes. Required in the final
		// resolved task; a task with no command anywhere resolves to the
		// "noop" placeholder only when never declared at all.
		Command CommandArgs `json:"command,omitempty" yaml:"command,omitempty"`
		// Args are extra arguments appended to the command.
		Args CommandArgs `json:"args,omitempty" yaml:"args,omitempty"`
		// Deps are tasks that must run before this one. All- and
		// tag-scoped targets are rejected at load time.
		Deps []target.Target `json:"deps,omitempty" yaml:"deps,omitempty"`
		// Env is the task environment.
		Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
		// Inputs are path patterns hashed to decide staleness.
		Inputs []portpath.PortablePath `json:"inputs,omitempty" yaml:"inputs,omitempty"`
		// Outputs are path patterns produced by the task. Environment
		// variable references are not allowed here.
		Outputs []portpath.PortablePath `json:"outputs,omitempty" yaml:"outputs,omitempty"`
		// Options tune merge behavior and runtime flags.
		Options TaskOptionsConfig `json:"options,omitempty" yaml:"options,omitempty"`
		// Platform pins the task to a toolchain platform; unset means
		// "infer from the project or detect".
		Platform PlatformType `json:"platform,omitempty" yaml:"platform,omitempty"`
		// Type categorizes the task; unset lets the resolver infer it.
		Type TaskType `json:"type,omitempty" yaml:"type,omitempty"`
	}
)

// String returns the string representation of the TaskType.
func (t TaskType) String() string { return string(t) }

// OrTest maps the zero value to TaskTypeTest.
func (t TaskType) OrTest() TaskType {
	if t == "" {
		return TaskTypeTest
	}
	return t
}

// IsValid returns whether the TaskType is recognized.
// The zero value is valid (resolver infers it).
func (t TaskType) IsValid() (bool, []error) {
	switch t {
	case "", TaskTypeBuild, TaskTypeRun, TaskTypeTest:
		return true, nil
	default:
		return false, []error{&InvalidTaskTypeError{Value: t}}
	}
}

// Error implements the error interface for InvalidTaskTypeError.
func (e *InvalidTaskTypeError) Error() string {
	return fmt.Sprintf("invalid task type %q (valid: build, run, test)", e.Value)
}

// Unwrap returns ErrInvalidTaskType for errors.Is() compatibility.
func (e *InvalidTaskTypeError) Unwrap() error { return ErrInvalidTaskType }
