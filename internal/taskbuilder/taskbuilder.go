// SPDX-License-Identifier: MPL-2.0

// Package taskbuilder resolves a project's final task set. It layers
// the project's local task declarations over the workspace-inherited
// ones, applying the per-field merge algebra, and lowers every merged
// declaration into an executable task with concrete options.
package taskbuilder

import (
	"fmt"
	"sort"

	"mvdan.cc/sh/v3/shell"

	"strata-cli/internal/merge"
	"strata-cli/internal/toolchain"
	"strata-cli/pkg/portpath"
	"strata-cli/pkg/project"
	"strata-cli/pkg/projfile"
	"strata-cli/pkg/target"
	"strata-cli/pkg/types"
)

// noopCommand is the placeholder for tasks that declare no command.
const noopCommand = "noop"

// PlatformDetector infers the platform a task should run on from its
// declared hint and the workspace toolchain configuration. Detectors
// must be pure.
type PlatformDetector func(hint projfile.PlatformType, tc *toolchain.Config) projfile.PlatformType

// Builder resolves the task set for one project. Like the project
// resolver that drives it, a Builder is single-use and single-owner.
type Builder struct {
	projectID types.ID
	platform  projfile.PlatformType
	detector  PlatformDetector
	toolchain *toolchain.Config
	inherited projfile.TasksMap
	override  projfile.InheritedTasksOverride
	local     projfile.TasksMap
}

// NewBuilder prepares task resolution for the project identified by
// projectID. platform is the project-level resolved platform, used as
// the fallback hint for tasks that declare none.
func NewBuilder(projectID types.ID, platform projfile.PlatformType) *Builder {
	return &Builder{
		projectID: projectID,
		platform:  platform,
		inherited: projfile.TasksMap{},
		local:     projfile.TasksMap{},
	}
}

// WithPlatformDetector registers a platform detection strategy and the
// toolchain configuration it consumes.
func (b *Builder) WithPlatformDetector(detector PlatformDetector, tc *toolchain.Config) *Builder {
	b.detector = detector
	b.toolchain = tc
	return b
}

// InheritTasks supplies the workspace-inherited tasks and the project's
// override controlling which of them apply.
func (b *Builder) InheritTasks(tasks projfile.TasksMap, override projfile.InheritedTasksOverride) *Builder {
	b.inherited = tasks
	b.override = override
	return b
}

// LoadLocalTasks supplies the project's own task declarations.
func (b *Builder) LoadLocalTasks(tasks projfile.TasksMap) *Builder {
	b.local = tasks
	return b
}

// Build resolves the final task map. Inherited tasks are filtered and
// renamed by the override, local declarations merge over their
// inherited counterparts field by field, and every result is lowered
// into an executable task.
func (b *Builder) Build() (map[types.ID]project.Task, error) {
	inherited := applyOverride(b.inherited, b.override)

	tasks := make(map[types.ID]project.Task, len(inherited)+len(b.local))

	for _, id := range sortedIDs(inherited) {
		cfg := inherited[id]
		fromLayer := true

		if local, ok := b.local[id]; ok {
			cfg = mergeConfigs(cfg, local)
			fromLayer = false
		}

		task, err := b.resolve(id, cfg, fromLayer)
		if err != nil {
			return nil, err
		}
		tasks[id] = task
	}

	for _, id := range sortedIDs(b.local) {
		if _, done := tasks[id]; done {
			continue
		}
		task, err := b.resolve(id, b.local[id], false)
		if err != nil {
			return nil, err
		}
		tasks[id] = task
	}

	return tasks, nil
}

// applyOverride filters and renames inherited tasks: exclusions drop
// first, then the include list (nil meaning "everything") keeps, then
// renames apply.
func applyOverride(tasks projfile.TasksMap, override projfile.InheritedTasksOverride) projfile.TasksMap {
	out := make(projfile.TasksMap, len(tasks))

	excluded := make(map[types.ID]struct{}, len(override.Exclude))
	for _, id := range override.Exclude {
		excluded[id] = struct{}{}
	}

	var included map[types.ID]struct{}
	if override.Include != nil {
		included = make(map[types.ID]struct{}, len(*override.Include))
		for _, id := range *override.Include {
			included[id] = struct{}{}
		}
	}

	for id, task := range tasks {
		if _, drop := excluded[id]; drop {
			continue
		}
		if included != nil {
			if _, keep := included[id]; !keep {
				continue
			}
		}
		if renamed, ok := override.Rename[id]; ok {
			id = renamed
		}
		out[id] = task
	}

	return out
}

// mergeConfigs layers a local task declaration over its inherited
// counterpart. List- and map-valued fields follow the local task's
// declared merge strategies; scalars are last writer wins.
func mergeConfigs(global, local projfile.TaskConfig) projfile.TaskConfig {
	strategies := resolveStrategies(global.Options, local.Options)

	out := projfile.TaskConfig{
		Command: global.Command,
		Deps:    merge.Lists(global.Deps, local.Deps, strategies.deps),
		Env:     merge.Maps(global.Env, local.Env, strategies.env),
		Inputs:  merge.Lists(global.Inputs, local.Inputs, strategies.inputs),
		Outputs: merge.Lists(global.Outputs, local.Outputs, strategies.outputs),
		Options: mergeOptions(global.Options, local.Options),
	}

	if local.Command.IsSet() {
		out.Command = local.Command
	}

	// Args carry shell-ish content, so both sides split before the
	// algebra applies.
	if args := merge.Lists(splitArgs(global.Args), splitArgs(local.Args), strategies.args); args != nil {
		out.Args = projfile.CommandList(args...)
	}

	out.Platform = local.Platform
	if !out.Platform.IsSet() {
		out.Platform = global.Platform
	}
	out.Type = local.Type
	if out.Type == "" {
		out.Type = global.Type
	}

	return out
}

type strategySet struct {
	args    projfile.MergeStrategy
	deps    projfile.MergeStrategy
	env     projfile.MergeStrategy
	inputs  projfile.MergeStrategy
	outputs projfile.MergeStrategy
}

// resolveStrategies picks the effective strategy per field: the local
// declaration wins, then the inherited one, then append.
func resolveStrategies(global, local projfile.TaskOptionsConfig) strategySet {
	pick := func(g, l projfile.MergeStrategy) projfile.MergeStrategy {
		if l != "" {
			return l
		}
		return g.OrAppend()
	}
	return strategySet{
		args:    pick(global.MergeArgs, local.MergeArgs),
		deps:    pick(global.MergeDeps, local.MergeDeps),
		env:     pick(global.MergeEnv, local.MergeEnv),
		inputs:  pick(global.MergeInputs, local.MergeInputs),
		outputs: pick(global.MergeOutputs, local.MergeOutputs),
	}
}

// mergeOptions applies last-writer-wins to the option block: any field
// the local declaration sets overrides the inherited value.
func mergeOptions(global, local projfile.TaskOptionsConfig) projfile.TaskOptionsConfig {
	out := global

	if local.AffectedFiles != nil {
		out.AffectedFiles = local.AffectedFiles
	}
	if local.Cache != nil {
		out.Cache = local.Cache
	}
	if local.EnvFile != nil {
		out.EnvFile = local.EnvFile
	}
	if local.MergeArgs != "" {
		out.MergeArgs = local.MergeArgs
	}
	if local.MergeDeps != "" {
		out.MergeDeps = local.MergeDeps
	}
	if local.MergeEnv != "" {
		out.MergeEnv = local.MergeEnv
	}
	if local.MergeInputs != "" {
		out.MergeInputs = local.MergeInputs
	}
	if local.MergeOutputs != "" {
		out.MergeOutputs = local.MergeOutputs
	}
	if local.OutputStyle != "" {
		out.OutputStyle = local.OutputStyle
	}
	if local.Persistent != nil {
		out.Persistent = local.Persistent
	}
	if local.RetryCount != nil {
		out.RetryCount = local.RetryCount
	}
	if local.RunDepsInParallel != nil {
		out.RunDepsInParallel = local.RunDepsInParallel
	}
	if local.RunInCI != nil {
		out.RunInCI = local.RunInCI
	}
	if local.RunFromWorkspaceRoot != nil {
		out.RunFromWorkspaceRoot = local.RunFromWorkspaceRoot
	}
	if local.Shell != nil {
		out.Shell = local.Shell
	}

	return out
}

// resolve lowers a merged declaration into an executable task.
func (b *Builder) resolve(id types.ID, cfg projfile.TaskConfig, fromLayer bool) (project.Task, error) {
	command, commandArgs, err := splitCommand(cfg.Command)
	if err != nil {
		return project.Task{}, fmt.Errorf("tasks.%s: %w", id, err)
	}

	args := append(commandArgs, splitArgs(cfg.Args)...)

	task := project.Task{
		ID:        id,
		Target:    target.ForProject(b.projectID, id),
		Command:   command,
		Args:      args,
		Deps:      cfg.Deps,
		Env:       cfg.Env,
		Inputs:    append([]portpath.PortablePath(nil), cfg.Inputs...),
		Outputs:   append([]portpath.PortablePath(nil), cfg.Outputs...),
		Options:   resolveOptions(cfg.Options),
		Platform:  b.resolvePlatform(cfg.Platform),
		Type:      cfg.Type.OrTest(),
		Inherited: fromLayer,
	}

	return task, nil
}

// resolvePlatform picks the task platform: a declared hint wins, then a
// registered detector, then the project-level platform.
func (b *Builder) resolvePlatform(hint projfile.PlatformType) projfile.PlatformType {
	if hint.IsSet() && hint != projfile.PlatformUnknown {
		return hint
	}
	if b.detector != nil {
		return b.detector(hint, b.toolchain)
	}
	if b.platform.IsSet() && b.platform != projfile.PlatformUnknown {
		return b.platform
	}
	return projfile.PlatformSystem
}

// resolveOptions turns the sparse option block into concrete values,
// filling the documented defaults.
func resolveOptions(cfg projfile.TaskOptionsConfig) project.TaskOptions {
	out := project.DefaultTaskOptions()

	if cfg.AffectedFiles != nil {
		out.AffectedFiles = *cfg.AffectedFiles
	}
	if cfg.Cache != nil {
		out.Cache = *cfg.Cache
	}
	if cfg.EnvFile != nil {
		out.EnvFile = *cfg.EnvFile
	}
	out.MergeArgs = cfg.MergeArgs.OrAppend()
	out.MergeDeps = cfg.MergeDeps.OrAppend()
	out.MergeEnv = cfg.MergeEnv.OrAppend()
	out.MergeInputs = cfg.MergeInputs.OrAppend()
	out.MergeOutputs = cfg.MergeOutputs.OrAppend()
	out.OutputStyle = cfg.OutputStyle.OrBuffer()
	if cfg.Persistent != nil {
		out.Persistent = *cfg.Persistent
	}
	if cfg.RetryCount != nil {
		out.RetryCount = *cfg.RetryCount
	}
	if cfg.RunDepsInParallel != nil {
		out.RunDepsInParallel = *cfg.RunDepsInParallel
	}
	if cfg.RunInCI != nil {
		out.RunInCI = *cfg.RunInCI
	}
	if cfg.RunFromWorkspaceRoot != nil {
		out.RunFromWorkspaceRoot = *cfg.RunFromWorkspaceRoot
	}
	if cfg.Shell != nil {
		out.Shell = *cfg.Shell
	}

	return out
}

// splitCommand resolves the command declaration into the executable
// and its leading arguments. The string form splits with shell word
// rules; the absent form resolves to the noop placeholder.
func splitCommand(cmd projfile.CommandArgs) (string, []string, error) {
	if !cmd.IsSet() {
		return noopCommand, nil, nil
	}

	if list, ok := cmd.AsList(); ok {
		if len(list) == 0 {
			return noopCommand, nil, nil
		}
		return list[0], append([]string(nil), list[1:]...), nil
	}

	s, _ := cmd.AsString()
	fields, err := shell.Fields(s, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to split command %q: %w", s, err)
	}
	if len(fields) == 0 {
		return noopCommand, nil, nil
	}
	return fields[0], fields[1:], nil
}

// splitArgs resolves an args declaration into a flat argument list.
// Unlike commands, args that fail shell splitting degrade to the raw
// string as a single argument.
func splitArgs(args projfile.CommandArgs) []string {
	if !args.IsSet() {
		return nil
	}
	if list, ok := args.AsList(); ok {
		return append([]string(nil), list...)
	}

	s, _ := args.AsString()
	if s == "" {
		return nil
	}
	fields, err := shell.Fields(s, nil)
	if err != nil {
		return []string{s}
	}
	return fields
}

func sortedIDs(tasks projfile.TasksMap) []types.ID {
	ids := make([]types.ID, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
