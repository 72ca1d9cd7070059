// SPDX-License-Identifier: MPL-2.0

package project

import (
	"strata-cli/pkg/portpath"
	"strata-cli/pkg/projfile"
	"strata-cli/pkg/target"
	"strata-cli/pkg/types"
)

type (
	// TaskOptions is the fully resolved option block of a Task. Unlike
	// projfile.TaskOptionsConfig it carries no "unset" states: every
	// field holds either the declared value (local winning over
	// inherited) or the documented default.
	TaskOptions struct {
		// AffectedFiles restricts inputs to affected files.
		AffectedFiles projfile.AffectedFiles
		// Cache persists task outputs for reuse. Default true.
		Cache bool
		// EnvFile loads a dotenv file before running.
		EnvFile projfile.EnvFile
		// MergeArgs merges the args list on later override layers.
		MergeArgs projfile.MergeStrategy
		// MergeDeps merges the deps list on later override layers.
		MergeDeps projfile.MergeStrategy
		// MergeEnv merges the env map on later override layers.
		MergeEnv projfile.MergeStrategy
		// MergeInputs merges the inputs list on later override layers.
		MergeInputs projfile.MergeStrategy
		// MergeOutputs merges the outputs list on later override layers.
		MergeOutputs projfile.MergeStrategy
		// OutputStyle presents task output. Default buffer.
		OutputStyle projfile.OutputStyle
		// Persistent marks a long-running task that never completes.
		Persistent bool
		// RetryCount re-runs a failed task this many times.
		RetryCount int
		// RunDepsInParallel runs dependency tasks concurrently. Default
		// true.
		RunDepsInParallel bool
		// RunInCI includes the task in CI pipelines. Default true.
		RunInCI bool
		// RunFromWorkspaceRoot runs the command from the workspace root.
		RunFromWorkspaceRoot bool
		// Shell wraps the command in a shell. Default true.
		Shell bool
	}

	// Task is a resolved task: local declaration merged over its
	// inherited counterpart, command split into executable parts, and
	// options resolved to concrete values.
	Task struct {
		// ID names the task within its project.
		ID types.ID
		// Target is the fully qualified project:task reference.
		Target target.Target
		// Command is the resolved executable, never empty.
		Command string
		// Args are the resolved arguments after merging.
		Args []string
		// Deps are the resolved task dependencies after merging.
		Deps []target.Target
		// Env is the resolved environment after merging.
		Env map[string]string
		// Inputs are the input patterns after merging, unconverted.
		Inputs []portpath.PortablePath
		// Outputs are the output patterns after merging, unconverted.
		Outputs []portpath.PortablePath
		// Options is the resolved option block.
		Options TaskOptions
		// Platform the task runs on, detected when not declared.
		Platform projfile.PlatformType
		// Type categorizes the task. Default test.
		Type projfile.TaskType
		// Inherited reports whether the task originated from a
		// workspace inheritance layer rather than the project file.
		Inherited bool
	}
)

// DefaultTaskOptions returns the option block all tasks start from.
func DefaultTaskOptions() TaskOptions {
	return TaskOptions{
		Cache:             true,
		MergeArgs:         projfile.MergeAppend,
		MergeDeps:         projfile.MergeAppend,
		MergeEnv:          projfile.MergeAppend,
		MergeInputs:       projfile.MergeAppend,
		MergeOutputs:      projfile.MergeAppend,
		OutputStyle:       projfile.OutputStyleBuffer,
		RunDepsInParallel: true,
		RunInCI:           true,
		Shell:             true,
	}
}
