// SPDX-License-Identifier: MPL-2.0

package target

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"strata-cli/pkg/types"
)

// ErrInvalidTarget is the sentinel error wrapped by InvalidTargetError.
var ErrInvalidTarget = errors.New("invalid target")

// Scope identifies which projects a target reference covers.
type Scope int

const (
	// ScopeOwnSelf targets a task within the declaring project ("~:task"
	// or a bare "task").
	ScopeOwnSelf Scope = iota
	// ScopeProject targets a task in a specific project ("proj:task").
	ScopeProject
	// ScopeDeps targets a task in every direct dependency ("^:task").
	ScopeDeps
	// ScopeAll targets a task in every project (":task").
	ScopeAll
	// ScopeTag targets a task in every project carrying a tag
	// ("#tag:task").
	ScopeTag
)

type (
	// Target is a reference to a task, scoped over one or more projects.
	// The zero value is an own-self reference to the empty task and is
	// not valid; build targets with Parse or the constructors.
	Target struct {
		// Scope selects the projects the reference covers.
		Scope Scope
		// Project is the referenced project id (ScopeProject only).
		Project types.ID
		// Tag is the matched tag (ScopeTag only).
		Tag types.Tag
		// Task is the referenced task id.
		Task types.ID
	}

	// InvalidTargetError is returned when a target string cannot be
	// parsed. It wraps ErrInvalidTarget for errors.Is() compatibility.
	InvalidTargetError struct {
		Value string
	}
)

// Self builds an own-self target for the given task id.
func Self(task types.ID) Target {
	return Target{Scope: ScopeOwnSelf, Task: task}
}

// ForProject builds a project-scoped target.
func ForProject(project, task types.ID) Target {
	return Target{Scope: ScopeProject, Project: project, Task: task}
}

// Parse parses a target string of the form "scope:task":
//
//	build           own project (shorthand)
//	~:build         own project (explicit)
//	app:build       specific project
//	^:build         direct dependencies
//	:build          all projects
//	#react:build    projects tagged "react"
func Parse(value string) (Target, error) {
	scopePart, taskPart, sep := strings.Cut(value, ":")
	if !sep {
		scopePart, taskPart = "~", scopePart
	}

	task := types.ID(taskPart)
	if ok, _ := task.IsValid(); !ok {
		return Target{}, &InvalidTargetError{Value: value}
	}

	switch {
	case scopePart == "":
		return Target{Scope: ScopeAll, Task: task}, nil
	case scopePart == "~":
		return Target{Scope: ScopeOwnSelf, Task: task}, nil
	case scopePart == "^":
		return Target{Scope: ScopeDeps, Task: task}, nil
	case strings.HasPrefix(scopePart, "#"):
		tag := types.Tag(scopePart[1:])
		if ok, _ := tag.IsValid(); !ok {
			return Target{}, &InvalidTargetError{Value: value}
		}
		return Target{Scope: ScopeTag, Tag: tag, Task: task}, nil
	default:
		project := types.ID(scopePart)
		if ok, _ := project.IsValid(); !ok {
			return Target{}, &InvalidTargetError{Value: value}
		}
		return Target{Scope: ScopeProject, Project: project, Task: task}, nil
	}
}

// String renders the target back into its "scope:task" form.
func (t Target) String() string {
	switch t.Scope {
	case ScopeAll:
		return ":" + t.Task.String()
	case ScopeDeps:
		return "^:" + t.Task.String()
	case ScopeTag:
		return "#" + t.Tag.String() + ":" + t.Task.String()
	case ScopeProject:
		return t.Project.String() + ":" + t.Task.String()
	default:
		return "~:" + t.Task.String()
	}
}

// AllowedAsDep reports whether the target may appear as a task
// dependency. All- and tag-scoped targets fan out to an unbounded
// project set and are rejected at configuration load time.
func (t Target) AllowedAsDep() bool {
	return t.Scope != ScopeAll && t.Scope != ScopeTag
}

// UnmarshalJSON parses a target from its string form. CUE decoding and
// the YAML fallback both route through this representation.
func (t *Target) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON renders the target as its string form.
func (t Target) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalYAML parses a target from a YAML scalar.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Error implements the error interface for InvalidTargetError.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: expected \"scope:task\" with scope one of '~', '^', '', '#tag', or a project id", e.Value)
}

// Unwrap returns ErrInvalidTarget for errors.Is() compatibility.
func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

// unquote decodes a JSON string scalar.
func unquote(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("expected a string: %w", err)
	}
	return s, nil
}
