// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"strata-cli/pkg/portpath"
)

var (
	// ErrInvalidMergeStrategy is the sentinel error wrapped by InvalidMergeStrategyError.
	ErrInvalidMergeStrategy = errors.New("invalid merge strategy")
	// ErrInvalidOutputStyle is the sentinel error wrapped by InvalidOutputStyleError.
	ErrInvalidOutputStyle = errors.New("invalid output style")
)

const (
	// MergeAppend appends the local list after the inherited one.
	MergeAppend MergeStrategy = "append"
	// MergePrepend prepends the local list before the inherited one.
	MergePrepend MergeStrategy = "prepend"
	// MergeReplace replaces the inherited list with the local one when
	// the local one is non-empty.
	MergeReplace MergeStrategy = "replace"

	// OutputStyleBuffer buffers task output and prints it on completion.
	OutputStyleBuffer OutputStyle = "buffer"
	// OutputStyleBufferOnlyFailure buffers and prints only on failure.
	OutputStyleBufferOnlyFailure OutputStyle = "buffer-only-failure"
	// OutputStyleHash prints only the computed output hash.
	OutputStyleHash OutputStyle = "hash"
	// OutputStyleNone discards task output.
	OutputStyleNone OutputStyle = "none"
	// OutputStyleStream streams task output as it is produced.
	OutputStyleStream OutputStyle = "stream"
)

type (
	// MergeStrategy selects how a local list-valued task field combines
	// with its inherited counterpart. Each mergeable field carries its
	// own independent strategy. The zero value ("") reads as MergeAppend.
	MergeStrategy string

	// InvalidMergeStrategyError is returned when a MergeStrategy value is
	// not recognized. It wraps ErrInvalidMergeStrategy for errors.Is().
	InvalidMergeStrategyError struct {
		Value MergeStrategy
	}

	// OutputStyle controls how a task's output is presented during a run.
	// The zero value ("") reads as OutputStyleBuffer.
	OutputStyle string

	// InvalidOutputStyleError is returned when an OutputStyle value is
	// not recognized. It wraps ErrInvalidOutputStyle for errors.Is().
	InvalidOutputStyleError struct {
		Value OutputStyle
	}

	// AffectedFiles controls whether only affected files are passed to a
	// task, polymorphic over a boolean and the modes "args" and "env".
	AffectedFiles struct {
		// Enabled reports whether affected-files handling is on at all.
		Enabled bool
		// Args passes affected files as trailing command arguments.
		Args bool
		// Env passes affected files via an environment variable.
		Env bool
	}

	// EnvFile controls loading of a dotenv file before a task runs,
	// polymorphic over a boolean (load the default ".env") and an
	// explicit path.
	EnvFile struct {
		// Enabled reports whether an env file should be loaded.
		Enabled bool
		// Path is the explicit file path, empty for the default ".env".
		Path portpath.PortablePath
	}

	// TaskOptionsConfig is the per-task option block. Scalar fields are
	// pointers so that "explicitly set locally" can be told apart from
	// "inherit or default" during task resolution (last writer wins).
	TaskOptionsConfig struct {
		// AffectedFiles restricts inputs to affected files.
		AffectedFiles *AffectedFiles `json:"affectedFiles,omitempty" yaml:"affectedFiles,omitempty"`
		// Cache persists task outputs for reuse (default: true).
		Cache *bool `json:"cache,omitempty" yaml:"cache,omitempty"`
		// EnvFile loads a dotenv file before running.
		EnvFile *EnvFile `json:"envFile,omitempty" yaml:"envFile,omitempty"`
		// MergeArgs merges the args list (default: append).
		MergeArgs MergeStrategy `json:"mergeArgs,omitempty" yaml:"mergeArgs,omitempty"`
		// MergeDeps merges the deps list (default: append).
		MergeDeps MergeStrategy `json:"mergeDeps,omitempty" yaml:"mergeDeps,omitempty"`
		// MergeEnv merges the env map (default: append).
		MergeEnv MergeStrategy `json:"mergeEnv,omitempty" yaml:"mergeEnv,omitempty"`
		// MergeInputs merges the inputs list (default: append).
		MergeInputs MergeStrategy `json:"mergeInputs,omitempty" yaml:"mergeInputs,omitempty"`
		// MergeOutputs merges the outputs list (default: append).
		MergeOutputs MergeStrategy `json:"mergeOutputs,omitempty" yaml:"mergeOutputs,omitempty"`
		// OutputStyle presents task output (default: buffer).
		OutputStyle OutputStyle `json:"outputStyle,omitempty" yaml:"outputStyle,omitempty"`
		// Persistent marks a long-running task that never completes.
		Persistent *bool `json:"persistent,omitempty" yaml:"persistent,omitempty"`
		// RetryCount re-runs a failed task this many times.
		RetryCount *int `json:"retryCount,omitempty" yaml:"retryCount,omitempty"`
		// RunDepsInParallel runs dependency tasks concurrently (default: true).
		RunDepsInParallel *bool `json:"runDepsInParallel,omitempty" yaml:"runDepsInParallel,omitempty"`
		// RunInCI includes the task in CI pipelines (default: true).
		RunInCI *bool `json:"runInCI,omitempty" yaml:"runInCI,omitempty"`
		// RunFromWorkspaceRoot runs the command from the workspace root
		// instead of the project root.
		RunFromWorkspaceRoot *bool `json:"runFromWorkspaceRoot,omitempty" yaml:"runFromWorkspaceRoot,omitempty"`
		// Shell wraps the command in a shell (default: true).
		Shell *bool `json:"shell,omitempty" yaml:"shell,omitempty"`
	}
)

// String returns the string representation of the MergeStrategy.
func (m MergeStrategy) String() string { return string(m) }

// OrAppend maps the zero value to MergeAppend.
func (m MergeStrategy) OrAppend() MergeStrategy {
	if m == "" {
		return MergeAppend
	}
	return m
}

// IsValid returns whether the MergeStrategy is recognized.
// The zero value is valid (treated as append).
func (m MergeStrategy) IsValid() (bool, []error) {
	switch m {
	case "", MergeAppend, MergePrepend, MergeReplace:
		return true, nil
	default:
		return false, []error{&InvalidMergeStrategyError{Value: m}}
	}
}

// Error implements the error interface for InvalidMergeStrategyError.
func (e *InvalidMergeStrategyError) Error() string {
	return fmt.Sprintf("invalid merge strategy %q (valid: append, prepend, replace)", e.Value)
}

// Unwrap returns ErrInvalidMergeStrategy for errors.Is() compatibility.
func (e *InvalidMergeStrategyError) Unwrap() error { return ErrInvalidMergeStrategy }

// String returns the string representation of the OutputStyle.
func (s OutputStyle) String() string { return string(s) }

// OrBuffer maps the zero value to OutputStyleBuffer.
func (s OutputStyle) OrBuffer() OutputStyle {
	if s == "" {
		return OutputStyleBuffer
	}
	return s
}

// IsValid returns whether the OutputStyle is recognized.
// The zero value is valid (treated as buffer).
func (s OutputStyle) IsValid() (bool, []error) {
	switch s {
	case "", OutputStyleBuffer, OutputStyleBufferOnlyFailure, OutputStyleHash, OutputStyleNone, OutputStyleStream:
		return true, nil
	default:
		return false, []error{&InvalidOutputStyleError{Value: s}}
	}
}

// Error implements the error interface for InvalidOutputStyleError.
func (e *InvalidOutputStyleError) Error() string {
	return fmt.Sprintf("invalid output style %q (valid: buffer, buffer-only-failure, hash, none, stream)", e.Value)
}

// Unwrap returns ErrInvalidOutputStyle for errors.Is() compatibility.
func (e *InvalidOutputStyleError) Unwrap() error { return ErrInvalidOutputStyle }

// UnmarshalJSON accepts a boolean or the mode strings "args" and "env".
func (a *AffectedFiles) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return a.fromScalar(raw)
}

// MarshalJSON renders the most specific scalar form.
func (a AffectedFiles) MarshalJSON() ([]byte, error) {
	switch {
	case a.Enabled && a.Args && !a.Env:
		return json.Marshal("args")
	case a.Enabled && a.Env && !a.Args:
		return json.Marshal("env")
	default:
		return json.Marshal(a.Enabled)
	}
}

// UnmarshalYAML accepts a boolean or the mode strings "args" and "env".
func (a *AffectedFiles) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return a.fromScalar(raw)
}

func (a *AffectedFiles) fromScalar(raw any) error {
	switch v := raw.(type) {
	case bool:
		*a = AffectedFiles{Enabled: v, Args: v, Env: v}
		return nil
	case string:
		switch v {
		case "args":
			*a = AffectedFiles{Enabled: true, Args: true}
			return nil
		case "env":
			*a = AffectedFiles{Enabled: true, Env: true}
			return nil
		}
	}
	return fmt.Errorf("expected `args`, `env`, or a boolean, got %v", raw)
}

// UnmarshalJSON accepts a boolean or a file path.
func (f *EnvFile) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return f.fromScalar(raw)
}

// MarshalJSON renders the path when set, otherwise the boolean form.
func (f EnvFile) MarshalJSON() ([]byte, error) {
	if f.Path != "" {
		return json.Marshal(string(f.Path))
	}
	return json.Marshal(f.Enabled)
}

// UnmarshalYAML accepts a boolean or a file path.
func (f *EnvFile) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return f.fromScalar(raw)
}

func (f *EnvFile) fromScalar(raw any) error {
	switch v := raw.(type) {
	case bool:
		*f = EnvFile{Enabled: v}
		return nil
	case string:
		*f = EnvFile{Enabled: true, Path: portpath.PortablePath(v)}
		return nil
	}
	return fmt.Errorf("expected a boolean or a file system path, got %v", raw)
}
