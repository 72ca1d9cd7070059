// SPDX-License-Identifier: MPL-2.0

package project

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

type (
	// InheritedSnapshot is the workspace configuration that applied to a
	// project during resolution: the merged inherited file groups and
	// tasks, plus the ordered list of layers that contributed to them.
	// Retained on the Project for precedence tracing and debugging;
	// read-only once produced.
	InheritedSnapshot struct {
		// Config is the merged inherited configuration.
		Config projfile.InheritedTasksConfig
		// Order lists the contributing layer names, most generic first.
		// Later layers won where layers overlapped.
		Order []string
	}

	// Project is the resolved definition of one buildable unit inside
	// the workspace. Immutable once constructed; a configuration change
	// produces a replacement Project, never an in-place edit.
	Project struct {
		// ID uniquely names the project within the workspace.
		ID types.ID
		// Source is the project root relative to the workspace root.
		Source types.WorkspaceRelPath
		// Root is the absolute project root on disk.
		Root types.FilesystemPath
		// Language the project is written in, declared or detected.
		Language projfile.LanguageType
		// Platform the project's tasks run on by default.
		Platform projfile.PlatformType
		// Type categorizes the project.
		Type projfile.ProjectType
		// DependsOn maps dependency project ids to their resolved
		// declarations. Every entry carries a provenance.
		DependsOn map[types.ID]projfile.DependencyConfig
		// FileGroups maps group ids to their resolved groups.
		FileGroups map[types.ID]FileGroup
		// Tasks maps task ids to their resolved tasks. Use TaskIDs for
		// deterministic iteration.
		Tasks map[types.ID]Task
		// Inherited is the workspace configuration snapshot that applied
		// during resolution, nil when inheritance was skipped.
		Inherited *InheritedSnapshot
		// Config is the raw local configuration the project resolved
		// from, including injected dependencies and tasks.
		Config *projfile.ProjectConfig
	}
)

// TaskIDs returns the project's task ids in sorted order.
func (p *Project) TaskIDs() []types.ID {
	ids := maps.Keys(p.Tasks)
	slices.Sort(ids)
	return ids
}

// DependencyIDs returns the dependency project ids in sorted order.
func (p *Project) DependencyIDs() []types.ID {
	ids := maps.Keys(p.DependsOn)
	slices.Sort(ids)
	return ids
}

// GetTask looks up a resolved task by id.
func (p *Project) GetTask(id types.ID) (Task, bool) {
	task, ok := p.Tasks[id]
	return task, ok
}

// HasTag reports whether the project's local configuration declares the
// given tag.
func (p *Project) HasTag(tag types.Tag) bool {
	if p.Config == nil {
		return false
	}
	return slices.Contains(p.Config.Tags, tag)
}
