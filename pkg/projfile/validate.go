// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"fmt"
	"strings"

	"strata-cli/pkg/types"
)

// ValidationErrors collects every rule violation found in one
// configuration tree so users can fix them in a single pass.
type ValidationErrors []error

// Error implements the error interface, joining all collected messages.
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is/As.
func (v ValidationErrors) Unwrap() []error { return v }

// Validate runs the Go-side rules that the CUE schema cannot express:
// enum membership on typed fields, command emptiness, dependency target
// scopes, env-file shapes, and output path restrictions.
func (c *ProjectConfig) Validate() error {
	var errs ValidationErrors

	collect := func(ok bool, fieldErrs []error) {
		if !ok {
			errs = append(errs, fieldErrs...)
		}
	}

	collect(c.Language.IsValid())
	collect(c.Platform.IsValid())
	collect(c.Type.IsValid())

	for _, tag := range c.Tags {
		collect(tag.IsValid())
	}

	for i, dep := range c.DependsOn {
		if ok, fieldErrs := dep.ID.IsValid(); !ok {
			errs = append(errs, fmt.Errorf("dependsOn[%d]: %w", i, fieldErrs[0]))
		}
		collect(dep.Scope.IsValid())
		collect(dep.Source.IsValid())
	}

	for id, patterns := range c.FileGroups {
		if ok, fieldErrs := id.IsValid(); !ok {
			errs = append(errs, fmt.Errorf("fileGroups: %w", fieldErrs[0]))
		}
		for _, pattern := range patterns {
			if ok, fieldErrs := pattern.IsValid(); !ok {
				errs = append(errs, fmt.Errorf("fileGroups.%s: %w", id, fieldErrs[0]))
			}
		}
	}

	errs = append(errs, validateTasks(c.Tasks)...)

	override := c.Workspace.InheritedTasks
	if err := validIDList(override.Exclude); err != nil {
		errs = append(errs, fmt.Errorf("workspace.inheritedTasks.exclude%w", err))
	}
	if override.Include != nil {
		if err := validIDList(*override.Include); err != nil {
			errs = append(errs, fmt.Errorf("workspace.inheritedTasks.include%w", err))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate runs the Go-side rules for one inheritance layer. Layer tasks
// obey the same constraints as project-local tasks.
func (c *InheritedTasksConfig) Validate() error {
	var errs ValidationErrors

	for id, patterns := range c.FileGroups {
		if ok, fieldErrs := id.IsValid(); !ok {
			errs = append(errs, fmt.Errorf("fileGroups: %w", fieldErrs[0]))
		}
		for _, pattern := range patterns {
			if ok, fieldErrs := pattern.IsValid(); !ok {
				errs = append(errs, fmt.Errorf("fileGroups.%s: %w", id, fieldErrs[0]))
			}
		}
	}

	errs = append(errs, validateTasks(c.Tasks)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateTasks(tasks TasksMap) []error {
	var errs []error

	for id, task := range tasks {
		if ok, fieldErrs := id.IsValid(); !ok {
			errs = append(errs, fmt.Errorf("tasks: %w", fieldErrs[0]))
		}
		for _, err := range task.validate() {
			errs = append(errs, fmt.Errorf("tasks.%s: %w", id, err))
		}
	}

	return errs
}

// validate checks a single task declaration.
func (t *TaskConfig) validate() []error {
	var errs []error

	if err := validateCommand(t.Command); err != nil {
		errs = append(errs, err)
	}

	for i, dep := range t.Deps {
		if !dep.AllowedAsDep() {
			errs = append(errs, fmt.Errorf("deps[%d]: target scope not supported as a task dependency (got %s)", i, dep))
		}
	}

	for _, path := range t.Outputs {
		if path.IsEnvVar() {
			errs = append(errs, fmt.Errorf("outputs: environment variables are not supported (got %s)", path))
		}
	}

	if ok, fieldErrs := t.Platform.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := t.Type.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}

	errs = append(errs, t.Options.validate()...)

	return errs
}

// validateCommand rejects commands that resolve to nothing runnable: an
// empty string, an empty sequence, or a sequence with an empty first
// element. The absent form stays valid so tasks can inherit their
// command. Args have no such constraint.
func validateCommand(cmd CommandArgs) error {
	if cmd.IsSet() && cmd.FirstPart() == "" {
		return fmt.Errorf("a command is required; use %q otherwise", "noop")
	}
	return nil
}

// validate checks the option block.
func (o *TaskOptionsConfig) validate() []error {
	var errs []error

	for _, m := range []MergeStrategy{o.MergeArgs, o.MergeDeps, o.MergeEnv, o.MergeInputs, o.MergeOutputs} {
		if ok, fieldErrs := m.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}

	if ok, fieldErrs := o.OutputStyle.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}

	if o.RetryCount != nil && *o.RetryCount < 0 {
		errs = append(errs, fmt.Errorf("options.retryCount: must not be negative (got %d)", *o.RetryCount))
	}

	if o.EnvFile != nil && o.EnvFile.Path != "" {
		switch {
		case o.EnvFile.Path.IsEnvVar():
			errs = append(errs, fmt.Errorf("options.envFile: environment variables are not supported (got %s)", o.EnvFile.Path))
		case o.EnvFile.Path.IsGlob():
			errs = append(errs, fmt.Errorf("options.envFile: globs are not supported (got %s)", o.EnvFile.Path))
		}
	}

	return errs
}

// validIDList reports the first invalid id in a list, used by override
// validation below.
func validIDList(ids []types.ID) error {
	for i, id := range ids {
		if ok, fieldErrs := id.IsValid(); !ok {
			return fmt.Errorf("[%d]: %w", i, fieldErrs[0])
		}
	}
	return nil
}
