// SPDX-License-Identifier: MPL-2.0

// Package builder resolves one project into its final immutable form.
// A ProjectBuilder is a single-use state machine:
//
//	Created -> LocalLoaded -> [GlobalInherited] -> Built
//
// Exactly one Project is produced per instance; the terminal Build call
// consumes it. Calling steps out of order is a programming mistake and
// panics rather than returning an error. A builder is single-owner and
// must not be mutated concurrently; building independent projects in
// parallel is safe as long as the shared inputs (inheritance manager,
// toolchain configuration) stay immutable.
package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"strata-cli/internal/taskbuilder"
	"strata-cli/internal/toolchain"
	"strata-cli/pkg/project"
	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

// phase tracks the builder's position in its lifecycle.
type phase int

const (
	phaseCreated phase = iota
	phaseLocalLoaded
	phaseGlobalInherited
	phaseBuilt
)

func (p phase) String() string {
	switch p {
	case phaseCreated:
		return "created"
	case phaseLocalLoaded:
		return "local-loaded"
	case phaseGlobalInherited:
		return "global-inherited"
	default:
		return "built"
	}
}

type (
	// LanguageDetector infers a project's language from its root
	// directory. Detectors must be pure; they run only when the local
	// configuration leaves the language unspecified.
	LanguageDetector func(projectRoot types.FilesystemPath) projfile.LanguageType

	// InheritanceResolver serves the merged workspace configuration
	// applying to a project's traits. Implemented by inherit.Manager.
	InheritanceResolver interface {
		GetInheritedConfig(
			platform projfile.PlatformType,
			language projfile.LanguageType,
			projectType projfile.ProjectType,
			tags []types.Tag,
		) (*project.InheritedSnapshot, error)
	}

	// ProjectBuilder resolves a single project. Construct with
	// NewProjectBuilder, drive the lifecycle steps in order, and finish
	// with Build.
	ProjectBuilder struct {
		id            types.ID
		source        types.WorkspaceRelPath
		workspaceRoot types.FilesystemPath
		root          types.FilesystemPath

		phase    phase
		language projfile.LanguageType
		platform projfile.PlatformType

		langDetector LanguageDetector
		platDetector taskbuilder.PlatformDetector
		toolchain    *toolchain.Config

		local     *projfile.ProjectConfig
		inherited *project.InheritedSnapshot

		logger *log.Logger
	}
)

// NewProjectBuilder starts resolution for the project identified by id
// at the given workspace-relative source. The project root must exist
// on disk.
func NewProjectBuilder(id types.ID, source types.WorkspaceRelPath, workspaceRoot types.FilesystemPath) (*ProjectBuilder, error) {
	root := types.FilesystemPath(filepath.Join(string(workspaceRoot), filepath.FromSlash(string(source))))

	info, err := os.Stat(string(root))
	if err != nil || !info.IsDir() {
		return nil, &MissingAtSourceError{ID: id, Source: source}
	}

	return &ProjectBuilder{
		id:            id,
		source:        source,
		workspaceRoot: workspaceRoot,
		root:          root,
		phase:         phaseCreated,
		language:      projfile.LanguageUnknown,
		platform:      projfile.PlatformUnknown,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "resolver",
		}),
	}, nil
}

// WithLanguageDetector registers a language detection strategy. It is
// held until LoadLocalConfig needs it and has no effect before then.
func (b *ProjectBuilder) WithLanguageDetector(detector LanguageDetector) *ProjectBuilder {
	b.mustNotBeBuilt("WithLanguageDetector")
	b.langDetector = detector
	return b
}

// WithPlatformDetector registers a platform detection strategy together
// with the toolchain configuration it consumes. Both are held for the
// task resolution that runs inside Build.
func (b *ProjectBuilder) WithPlatformDetector(detector taskbuilder.PlatformDetector, tc *toolchain.Config) *ProjectBuilder {
	b.mustNotBeBuilt("WithPlatformDetector")
	b.platDetector = detector
	b.toolchain = tc
	return b
}

// LoadLocalConfig loads the project's own configuration file and
// resolves language and platform. It must be the first lifecycle step
// after construction. A missing file yields the default configuration.
func (b *ProjectBuilder) LoadLocalConfig() error {
	b.mustBePhase(phaseCreated, "LoadLocalConfig")

	cfg, err := projfile.Load(b.workspaceRoot, types.FilesystemPath(filepath.Join(string(b.root), projfile.ProjectFileName)))
	if err != nil {
		return err
	}
	b.local = cfg

	// Explicit declarations win; detection only fills gaps.
	if lang := cfg.Language.OrUnknown(); lang != projfile.LanguageUnknown {
		b.language = lang
	} else if b.langDetector != nil {
		b.language = b.langDetector(b.root).OrUnknown()
	}

	if cfg.Platform.IsSet() {
		b.platform = cfg.Platform
	} else {
		// Task-level platform detection is deferred to task
		// resolution; this layer only derives from the language.
		b.platform = b.language.Platform()
	}

	b.logger.Debug("Loaded local config",
		"project", b.id, "language", b.language, "platform", b.platform)

	b.phase = phaseLocalLoaded
	return nil
}

// InheritGlobalConfig queries the workspace inheritance resolver with
// the project's resolved traits and stores the returned snapshot for
// file-group and task resolution. Optional; requires LoadLocalConfig
// first.
func (b *ProjectBuilder) InheritGlobalConfig(resolver InheritanceResolver) error {
	b.mustBePhase(phaseLocalLoaded, "InheritGlobalConfig")

	snap, err := resolver.GetInheritedConfig(b.platform, b.language, b.local.Type, b.local.Tags)
	if err != nil {
		return err
	}
	b.inherited = snap

	b.logger.Debug("Inherited global config",
		"project", b.id, "layers", snap.Order)

	b.phase = phaseGlobalInherited
	return nil
}

// ExtendWithDependency injects a graph-derived dependency into the
// working local configuration. Idempotent per id: a dependency the
// project already declares, or a previous injection with the same id,
// is left untouched. Injected entries without a provenance default to
// implicit; explicit user declarations are never overridden here.
func (b *ProjectBuilder) ExtendWithDependency(dep projfile.DependencyConfig) {
	b.mustBeLoaded("ExtendWithDependency")

	for _, existing := range b.local.DependsOn {
		if existing.ID == dep.ID {
			return
		}
	}

	if !dep.Source.IsSet() {
		dep.Source = projfile.DependencySourceImplicit
	}

	b.local.DependsOn = append(b.local.DependsOn, projfile.DependsOnEntry{DependencyConfig: dep})
}

// ExtendWithTask injects a graph-derived task into the working local
// configuration. A task the project already declares with the same id
// is left untouched.
func (b *ProjectBuilder) ExtendWithTask(id types.ID, cfg projfile.TaskConfig) {
	b.mustBeLoaded("ExtendWithTask")

	if b.local.Tasks == nil {
		b.local.Tasks = projfile.TasksMap{}
	}
	if _, exists := b.local.Tasks[id]; exists {
		return
	}
	b.local.Tasks[id] = cfg
}

// Build produces the immutable Project and consumes the builder.
func (b *ProjectBuilder) Build() (*project.Project, error) {
	b.mustBeLoaded("Build")
	b.phase = phaseBuilt

	tasks, err := b.buildTasks()
	if err != nil {
		return nil, err
	}

	proj := &project.Project{
		ID:         b.id,
		Source:     b.source,
		Root:       b.root,
		Language:   b.language,
		Platform:   b.platform,
		Type:       b.local.Type.OrUnknown(),
		DependsOn:  b.buildDependencies(),
		FileGroups: b.buildFileGroups(),
		Tasks:      tasks,
		Inherited:  b.inherited,
		Config:     b.local,
	}

	b.logger.Debug("Built project",
		"project", b.id,
		"dependencies", len(proj.DependsOn),
		"fileGroups", len(proj.FileGroups),
		"tasks", len(proj.Tasks))

	return proj, nil
}

// buildDependencies normalizes the raw dependency declarations. Any
// entry still without a provenance was declared by the user and becomes
// explicit; injected entries keep the provenance they were assigned.
func (b *ProjectBuilder) buildDependencies() map[types.ID]projfile.DependencyConfig {
	deps := make(map[types.ID]projfile.DependencyConfig, len(b.local.DependsOn))

	for _, entry := range b.local.DependsOn {
		dep := entry.DependencyConfig
		dep.Scope = dep.Scope.OrProduction()
		if !dep.Source.IsSet() {
			dep.Source = projfile.DependencySourceExplicit
		}
		deps[dep.ID] = dep
	}

	return deps
}

// buildFileGroups seeds groups from the inherited snapshot, overlays
// local declarations wholesale per id, then converts every pattern to
// workspace-relative form. Groups merge at whole-group granularity
// only: a local id replaces the inherited pattern list entirely.
func (b *ProjectBuilder) buildFileGroups() map[types.ID]project.FileGroup {
	raw := projfile.FileGroupsMap{}

	if b.inherited != nil {
		for id, patterns := range b.inherited.Config.FileGroups {
			raw[id] = patterns
		}
	}
	for id, patterns := range b.local.FileGroups {
		raw[id] = patterns
	}

	groups := make(map[types.ID]project.FileGroup, len(raw))
	for id, patterns := range raw {
		rel := make([]types.WorkspaceRelPath, len(patterns))
		for i, p := range patterns {
			rel[i] = p.ToWorkspaceRelative(b.source)
		}
		groups[id] = project.NewFileGroup(id, rel)
	}

	return groups
}

// buildTasks delegates to the task resolver.
func (b *ProjectBuilder) buildTasks() (map[types.ID]project.Task, error) {
	tb := taskbuilder.NewBuilder(b.id, b.platform).
		LoadLocalTasks(b.local.Tasks)

	if b.platDetector != nil {
		tb.WithPlatformDetector(b.platDetector, b.toolchain)
	}
	if b.inherited != nil {
		tb.InheritTasks(b.inherited.Config.Tasks, b.local.Workspace.InheritedTasks)
	}

	return tb.Build()
}

// mustBePhase asserts the builder sits exactly at the given phase.
func (b *ProjectBuilder) mustBePhase(want phase, step string) {
	if b.phase != want {
		panic(fmt.Sprintf("builder: %s called in phase %s, want %s (project %s)", step, b.phase, want, b.id))
	}
}

// mustBeLoaded asserts local configuration was loaded and the builder
// is not yet consumed.
func (b *ProjectBuilder) mustBeLoaded(step string) {
	if b.phase == phaseCreated {
		panic(fmt.Sprintf("builder: %s called before LoadLocalConfig (project %s)", step, b.id))
	}
	b.mustNotBeBuilt(step)
}

// mustNotBeBuilt asserts the builder has not been consumed.
func (b *ProjectBuilder) mustNotBeBuilt(step string) {
	if b.phase == phaseBuilt {
		panic(fmt.Sprintf("builder: %s called after Build (project %s)", step, b.id))
	}
}
