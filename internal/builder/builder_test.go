// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"strata-cli/internal/inherit"
	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

// writeFile writes content at a path under root, creating directories.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newWorkspace lays out a workspace with one project directory and
// returns the root.
func newWorkspace(t *testing.T, files map[string]string) types.FilesystemPath {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		writeFile(t, root, rel, content)
	}
	return types.FilesystemPath(root)
}

func TestNewProjectBuilder_MissingAtSource(t *testing.T) {
	t.Parallel()

	root := newWorkspace(t, nil)

	_, err := NewProjectBuilder("ghost", "apps/ghost", root)
	if err == nil {
		t.Fatal("expected construction to fail")
	}
	if !errors.Is(err, ErrMissingAtSource) {
		t.Errorf("error = %v, want ErrMissingAtSource", err)
	}

	var missing *MissingAtSourceError
	if !errors.As(err, &missing) || missing.ID != "ghost" {
		t.Errorf("error detail = %v", err)
	}
}

func TestLoadLocalConfig_LanguageResolution(t *testing.T) {
	t.Parallel()

	t.Run("explicit declaration wins over detector", func(t *testing.T) {
		t.Parallel()

		root := newWorkspace(t, map[string]string{
			"apps/web/strata.cue": `language: "typescript"`,
		})

		b, err := NewProjectBuilder("web", "apps/web", root)
		if err != nil {
			t.Fatal(err)
		}
		b.WithLanguageDetector(func(types.FilesystemPath) projfile.LanguageType {
			return projfile.LanguageRust
		})

		if err := b.LoadLocalConfig(); err != nil {
			t.Fatal(err)
		}
		if b.language != projfile.LanguageTypeScript {
			t.Errorf("language = %s", b.language)
		}
		if b.platform != projfile.PlatformNode {
			t.Errorf("platform = %s, want node derived from typescript", b.platform)
		}
	})

	t.Run("detector fills the gap", func(t *testing.T) {
		t.Parallel()

		root := newWorkspace(t, map[string]string{
			"apps/api/strata.cue": `type: "application"`,
		})

		b, err := NewProjectBuilder("api", "apps/api", root)
		if err != nil {
			t.Fatal(err)
		}
		b.WithLanguageDetector(func(projectRoot types.FilesystemPath) projfile.LanguageType {
			if _, err := os.Stat(filepath.Join(string(projectRoot), "strata.cue")); err != nil {
				t.Errorf("detector received wrong root: %s", projectRoot)
			}
			return projfile.LanguageGo
		})

		if err := b.LoadLocalConfig(); err != nil {
			t.Fatal(err)
		}
		if b.language != projfile.LanguageGo || b.platform != projfile.PlatformSystem {
			t.Errorf("language = %s, platform = %s", b.language, b.platform)
		}
	})

	t.Run("no declaration, no detector", func(t *testing.T) {
		t.Parallel()

		root := newWorkspace(t, map[string]string{
			"apps/misc/.keep": "",
		})

		b, err := NewProjectBuilder("misc", "apps/misc", root)
		if err != nil {
			t.Fatal(err)
		}
		if err := b.LoadLocalConfig(); err != nil {
			t.Fatal(err)
		}
		if b.language != projfile.LanguageUnknown || b.platform != projfile.PlatformUnknown {
			t.Errorf("language = %s, platform = %s", b.language, b.platform)
		}
	})
}

func TestExtendWithDependency_IdempotentPerID(t *testing.T) {
	t.Parallel()

	root := newWorkspace(t, map[string]string{"apps/web/.keep": ""})

	b, err := NewProjectBuilder("web", "apps/web", root)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.LoadLocalConfig(); err != nil {
		t.Fatal(err)
	}

	d1 := projfile.DependencyConfig{ID: "shared", Scope: projfile.DependencyScopeDevelopment}
	d2 := projfile.DependencyConfig{ID: "shared", Scope: projfile.DependencyScopePeer}
	b.ExtendWithDependency(d1)
	b.ExtendWithDependency(d2)

	proj, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if len(proj.DependsOn) != 1 {
		t.Fatalf("DependsOn = %v, want exactly one entry", proj.DependsOn)
	}
	dep := proj.DependsOn["shared"]
	if dep.Scope != projfile.DependencyScopeDevelopment {
		t.Errorf("second injection must not replace the first: %+v", dep)
	}
	if dep.Source != projfile.DependencySourceImplicit {
		t.Errorf("injected dependency provenance = %q, want implicit", dep.Source)
	}
}

func TestBuild_DependencyProvenance(t *testing.T) {
	t.Parallel()

	root := newWorkspace(t, map[string]string{
		"apps/web/strata.cue": `dependsOn: ["shared"]`,
	})

	b, err := NewProjectBuilder("web", "apps/web", root)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.LoadLocalConfig(); err != nil {
		t.Fatal(err)
	}
	b.ExtendWithDependency(projfile.DependencyConfig{ID: "design-system"})
	// Injecting an id the user already declared must not flip its
	// provenance to implicit.
	b.ExtendWithDependency(projfile.DependencyConfig{ID: "shared"})

	proj, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if got := proj.DependsOn["shared"].Source; got != projfile.DependencySourceExplicit {
		t.Errorf("declared dependency provenance = %q, want explicit", got)
	}
	if got := proj.DependsOn["design-system"].Source; got != projfile.DependencySourceImplicit {
		t.Errorf("injected dependency provenance = %q, want implicit", got)
	}
	if got := proj.DependsOn["shared"].Scope; got != projfile.DependencyScopeProduction {
		t.Errorf("scope = %q, want production default", got)
	}
}

func TestExtendWithTask_NeverOverwritesExplicit(t *testing.T) {
	t.Parallel()

	root := newWorkspace(t, map[string]string{
		"apps/web/strata.cue": `tasks: build: command: "webpack build"`,
	})

	b, err := NewProjectBuilder("web", "apps/web", root)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.LoadLocalConfig(); err != nil {
		t.Fatal(err)
	}

	b.ExtendWithTask("build", projfile.TaskConfig{Command: projfile.CommandString("vite build")})
	b.ExtendWithTask("dev", projfile.TaskConfig{Command: projfile.CommandString("vite dev")})

	proj, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if got := proj.Tasks["build"].Command; got != "webpack" {
		t.Errorf("explicit task overwritten, command = %q", got)
	}
	if got := proj.Tasks["dev"].Command; got != "vite" {
		t.Errorf("injected task missing, command = %q", got)
	}
}

func TestBuild_FileGroups(t *testing.T) {
	t.Parallel()

	root := newWorkspace(t, map[string]string{
		".strata/tasks.cue": `
fileGroups: {
	sources: ["src/**/*", "/configs/base.json"]
	assets:  ["public/**/*"]
}
`,
		"apps/web/strata.cue": `fileGroups: sources: ["lib/**/*.ts"]`,
	})

	mgr, err := inherit.NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewProjectBuilder("web", "apps/web", root)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.LoadLocalConfig(); err != nil {
		t.Fatal(err)
	}
	if err := b.InheritGlobalConfig(mgr); err != nil {
		t.Fatal(err)
	}

	proj, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	// Shared id: local replaces wholesale, then converts.
	sources := proj.FileGroups["sources"]
	if want := []types.WorkspaceRelPath{"apps/web/lib/**/*.ts"}; !reflect.DeepEqual(sources.Patterns, want) {
		t.Errorf("sources = %v, want %v", sources.Patterns, want)
	}

	// Inherited-only id survives with converted patterns.
	assets := proj.FileGroups["assets"]
	if want := []types.WorkspaceRelPath{"apps/web/public/**/*"}; !reflect.DeepEqual(assets.Patterns, want) {
		t.Errorf("assets = %v, want %v", assets.Patterns, want)
	}
}

func TestBuild_InheritedTasks(t *testing.T) {
	t.Parallel()

	root := newWorkspace(t, map[string]string{
		".strata/tasks.cue": `tasks: format: command: "prettier --write ."`,
		"apps/web/strata.cue": `
language: "typescript"
tasks: build: command: "vite build"
`,
	})

	mgr, err := inherit.NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewProjectBuilder("web", "apps/web", root)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.LoadLocalConfig(); err != nil {
		t.Fatal(err)
	}
	if err := b.InheritGlobalConfig(mgr); err != nil {
		t.Fatal(err)
	}

	proj, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if !proj.Tasks["format"].Inherited {
		t.Error("format should be marked inherited")
	}
	if proj.Tasks["build"].Inherited {
		t.Error("build is local, not inherited")
	}
	if proj.Inherited == nil || len(proj.Inherited.Order) == 0 {
		t.Error("inherited snapshot missing from the built project")
	}
}

func TestBuilder_SequencingPanics(t *testing.T) {
	t.Parallel()

	mustPanic := func(t *testing.T, step func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Error("expected a panic")
			}
		}()
		step()
	}

	root := newWorkspace(t, map[string]string{"apps/web/.keep": "", ".strata/tasks.cue": "tasks: {}"})
	mgr, err := inherit.NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("inherit before load", func(t *testing.T) {
		b, err := NewProjectBuilder("web", "apps/web", root)
		if err != nil {
			t.Fatal(err)
		}
		mustPanic(t, func() { _ = b.InheritGlobalConfig(mgr) })
	})

	t.Run("extend before load", func(t *testing.T) {
		b, err := NewProjectBuilder("web", "apps/web", root)
		if err != nil {
			t.Fatal(err)
		}
		mustPanic(t, func() { b.ExtendWithDependency(projfile.DependencyConfig{ID: "x"}) })
	})

	t.Run("build before load", func(t *testing.T) {
		b, err := NewProjectBuilder("web", "apps/web", root)
		if err != nil {
			t.Fatal(err)
		}
		mustPanic(t, func() { _, _ = b.Build() })
	})

	t.Run("build consumes the builder", func(t *testing.T) {
		b, err := NewProjectBuilder("web", "apps/web", root)
		if err != nil {
			t.Fatal(err)
		}
		if err := b.LoadLocalConfig(); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Build(); err != nil {
			t.Fatal(err)
		}
		mustPanic(t, func() { _, _ = b.Build() })
	})
}

// TestBuild_ConcurrentDeterminism resolves the same two projects
// sequentially and concurrently against one shared inheritance manager
// and expects identical results.
func TestBuild_ConcurrentDeterminism(t *testing.T) {
	t.Parallel()

	root := newWorkspace(t, map[string]string{
		".strata/tasks.cue":      `tasks: format: command: "prettier --write ."`,
		".strata/tasks/node.cue": `tasks: typecheck: command: "tsc --noEmit"`,
		"apps/web/strata.cue": `
language: "typescript"
fileGroups: sources: ["src/**/*"]
tasks: build: command: "vite build"
`,
		"apps/api/strata.cue": `
language: "go"
tasks: build: command: "go build ./..."
`,
	})

	mgr, err := inherit.NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	resolve := func(id types.ID, source types.WorkspaceRelPath) (map[types.ID]struct{}, error) {
		b, err := NewProjectBuilder(id, source, root)
		if err != nil {
			return nil, err
		}
		if err := b.LoadLocalConfig(); err != nil {
			return nil, err
		}
		if err := b.InheritGlobalConfig(mgr); err != nil {
			return nil, err
		}
		proj, err := b.Build()
		if err != nil {
			return nil, err
		}
		ids := map[types.ID]struct{}{}
		for _, taskID := range proj.TaskIDs() {
			ids[taskID] = struct{}{}
		}
		return ids, nil
	}

	sequentialWeb, err := resolve("web", "apps/web")
	if err != nil {
		t.Fatal(err)
	}
	sequentialAPI, err := resolve("api", "apps/api")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]map[types.ID]struct{}, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = resolve("web", "apps/web")
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = resolve("api", "apps/api")
	}()
	wg.Wait()

	if errs[0] != nil || errs[1] != nil {
		t.Fatalf("concurrent resolution failed: %v, %v", errs[0], errs[1])
	}
	if !reflect.DeepEqual(results[0], sequentialWeb) {
		t.Errorf("web: concurrent %v != sequential %v", results[0], sequentialWeb)
	}
	if !reflect.DeepEqual(results[1], sequentialAPI) {
		t.Errorf("api: concurrent %v != sequential %v", results[1], sequentialAPI)
	}
}
