// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"strata-cli/pkg/portpath"
	"strata-cli/pkg/types"
)

const (
	// ProjectFileName is the project configuration file at a project root.
	ProjectFileName = "strata.cue"
	// LegacyProjectFileName is the YAML project configuration file
	// accepted for workspaces that have not migrated to CUE yet.
	LegacyProjectFileName = "strata.yml"
)

type (
	// FileGroupsMap maps file-group ids to their ordered pattern lists.
	FileGroupsMap = map[types.ID][]portpath.PortablePath

	// TasksMap maps task ids to their declarations. Iteration order is
	// established by sorting ids wherever ordering matters.
	TasksMap = map[types.ID]TaskConfig

	// ProjectConfig is the project-local configuration tree loaded from
	// strata.cue (or the legacy strata.yml). All fields are optional; a
	// missing configuration file resolves to the zero value.
	ProjectConfig struct {
		// Language is the declared project language; unset triggers
		// detection during resolution.
		Language LanguageType `json:"language,omitempty" yaml:"language,omitempty"`
		// Platform is the declared task platform; unset derives from the
		// language.
		Platform PlatformType `json:"platform,omitempty" yaml:"platform,omitempty"`
		// Type categorizes the project.
		Type ProjectType `json:"type,omitempty" yaml:"type,omitempty"`
		// Tags select inherited task configuration layers and allow
		// tag-scoped targeting.
		Tags []types.Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
		// DependsOn declares dependencies on other projects.
		DependsOn []DependsOnEntry `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
		// FileGroups declares named pattern lists reusable in task
		// inputs and outputs.
		FileGroups FileGroupsMap `json:"fileGroups,omitempty" yaml:"fileGroups,omitempty"`
		// Tasks declares the project's tasks.
		Tasks TasksMap `json:"tasks,omitempty" yaml:"tasks,omitempty"`
		// Workspace tunes how workspace-level configuration applies to
		// this project.
		Workspace ProjectWorkspaceConfig `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	}

	// ProjectWorkspaceConfig tunes workspace-to-project inheritance.
	ProjectWorkspaceConfig struct {
		// InheritedTasks filters and renames inherited workspace tasks.
		InheritedTasks InheritedTasksOverride `json:"inheritedTasks,omitempty" yaml:"inheritedTasks,omitempty"`
	}

	// InheritedTasksOverride filters which workspace-inherited tasks
	// apply to a project. Exclude is applied first, then Include (nil
	// means "include everything"), then Rename.
	InheritedTasksOverride struct {
		// Exclude drops the listed inherited tasks.
		Exclude []types.ID `json:"exclude,omitempty" yaml:"exclude,omitempty"`
		// Include keeps only the listed inherited tasks. nil includes
		// all; an empty non-nil list includes none.
		Include *[]types.ID `json:"include,omitempty" yaml:"include,omitempty"`
		// Rename maps an inherited task id to a new local id.
		Rename map[types.ID]types.ID `json:"rename,omitempty" yaml:"rename,omitempty"`
	}

	// InheritedTasksConfig is one workspace inheritance layer: the file
	// groups and tasks contributed by a single `.strata/tasks` file.
	InheritedTasksConfig struct {
		// FileGroups contributed by this layer. Patterns stay exactly as
		// written; conversion to workspace-relative form happens during
		// project resolution.
		FileGroups FileGroupsMap `json:"fileGroups,omitempty" yaml:"fileGroups,omitempty"`
		// Tasks contributed by this layer.
		Tasks TasksMap `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	}
)
