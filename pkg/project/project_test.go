// SPDX-License-Identifier: MPL-2.0

package project

import (
	"reflect"
	"testing"

	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

func TestFileGroup_Partitions(t *testing.T) {
	t.Parallel()

	group := NewFileGroup("sources", []types.WorkspaceRelPath{
		"apps/web/src/**/*.ts",
		"apps/web/package.json",
		"!apps/web/src/**/*.test.ts",
		"$NODE_ENV",
		"typings/env.d.ts",
	})

	wantGlobs := []types.WorkspaceRelPath{"apps/web/src/**/*.ts", "!apps/web/src/**/*.test.ts"}
	if got := group.Globs(); !reflect.DeepEqual(got, wantGlobs) {
		t.Errorf("Globs() = %v, want %v", got, wantGlobs)
	}

	wantFiles := []types.WorkspaceRelPath{"apps/web/package.json", "typings/env.d.ts"}
	if got := group.Files(); !reflect.DeepEqual(got, wantFiles) {
		t.Errorf("Files() = %v, want %v", got, wantFiles)
	}

	wantEnv := []types.WorkspaceRelPath{"$NODE_ENV"}
	if got := group.EnvVars(); !reflect.DeepEqual(got, wantEnv) {
		t.Errorf("EnvVars() = %v, want %v", got, wantEnv)
	}
}

func TestNewFileGroup_CopiesPatterns(t *testing.T) {
	t.Parallel()

	src := []types.WorkspaceRelPath{"a", "b"}
	group := NewFileGroup("g", src)
	src[0] = "mutated"

	if group.Patterns[0] != "a" {
		t.Errorf("FileGroup aliased caller storage: %v", group.Patterns)
	}
}

func TestDefaultTaskOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultTaskOptions()

	if !opts.Cache || !opts.RunInCI || !opts.RunDepsInParallel || !opts.Shell {
		t.Errorf("boolean defaults wrong: %+v", opts)
	}
	if opts.Persistent || opts.RunFromWorkspaceRoot {
		t.Errorf("persistent and runFromWorkspaceRoot must default off: %+v", opts)
	}
	if opts.RetryCount != 0 {
		t.Errorf("RetryCount = %d, want 0", opts.RetryCount)
	}
	if opts.OutputStyle != projfile.OutputStyleBuffer {
		t.Errorf("OutputStyle = %q, want buffer", opts.OutputStyle)
	}
	for _, m := range []projfile.MergeStrategy{opts.MergeArgs, opts.MergeDeps, opts.MergeEnv, opts.MergeInputs, opts.MergeOutputs} {
		if m != projfile.MergeAppend {
			t.Errorf("merge strategy default = %q, want append", m)
		}
	}
}

func TestProject_SortedAccessors(t *testing.T) {
	t.Parallel()

	proj := &Project{
		ID: "web",
		DependsOn: map[types.ID]projfile.DependencyConfig{
			"zeta":   {ID: "zeta", Source: projfile.DependencySourceImplicit},
			"shared": {ID: "shared", Source: projfile.DependencySourceExplicit},
		},
		Tasks: map[types.ID]Task{
			"test":  {ID: "test"},
			"build": {ID: "build"},
			"lint":  {ID: "lint"},
		},
		Config: &projfile.ProjectConfig{Tags: []types.Tag{"react"}},
	}

	if got := proj.TaskIDs(); !reflect.DeepEqual(got, []types.ID{"build", "lint", "test"}) {
		t.Errorf("TaskIDs() = %v", got)
	}
	if got := proj.DependencyIDs(); !reflect.DeepEqual(got, []types.ID{"shared", "zeta"}) {
		t.Errorf("DependencyIDs() = %v", got)
	}

	if _, ok := proj.GetTask("build"); !ok {
		t.Error("GetTask(build) not found")
	}
	if _, ok := proj.GetTask("deploy"); ok {
		t.Error("GetTask(deploy) unexpectedly found")
	}

	if !proj.HasTag("react") || proj.HasTag("vue") {
		t.Error("HasTag mismatch")
	}
}
