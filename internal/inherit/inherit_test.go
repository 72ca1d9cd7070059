// SPDX-License-Identifier: MPL-2.0

package inherit

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

// writeWorkspace lays out a .strata directory with the given layer
// files and returns the workspace root.
func writeWorkspace(t *testing.T, layers map[string]string) types.FilesystemPath {
	t.Helper()

	root := t.TempDir()
	for name, content := range layers {
		var path string
		if name == "*" {
			path = filepath.Join(root, ConfigDirName, "tasks.cue")
		} else {
			path = filepath.Join(root, ConfigDirName, "tasks", name+".cue")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return types.FilesystemPath(root)
}

func TestLookupOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		platform    projfile.PlatformType
		language    projfile.LanguageType
		projectType projfile.ProjectType
		tags        []types.Tag
		want        []string
	}{
		{
			name: "no traits",
			want: []string{"*"},
		},
		{
			name:     "platform and language",
			platform: projfile.PlatformNode,
			language: projfile.LanguageJavaScript,
			want:     []string{"*", "node", "javascript", "javascript-node"},
		},
		{
			name:        "everything",
			platform:    projfile.PlatformSystem,
			language:    projfile.LanguageRust,
			projectType: projfile.ProjectTypeApplication,
			tags:        []types.Tag{"cli", "daemon"},
			want:        []string{"*", "system", "rust", "rust-system", "application", "tag-cli", "tag-daemon"},
		},
		{
			name:     "unknown traits contribute nothing",
			platform: projfile.PlatformUnknown,
			language: projfile.LanguageUnknown,
			want:     []string{"*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := lookupOrder(tt.platform, tt.language, tt.projectType, tt.tags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lookupOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManager_GetInheritedConfig(t *testing.T) {
	t.Parallel()

	root := writeWorkspace(t, map[string]string{
		"*": `
fileGroups: sources: ["src/**/*"]
tasks: format: command: "prettier --write ."
`,
		"node": `
tasks: {
	format: command: "biome format ."
	typecheck: command: "tsc --noEmit"
}
`,
		"rust": `
tasks: check: command: "cargo check"
`,
	})

	mgr, err := NewManager(root)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	snap, err := mgr.GetInheritedConfig(projfile.PlatformNode, projfile.LanguageTypeScript, "", nil)
	if err != nil {
		t.Fatalf("GetInheritedConfig returned error: %v", err)
	}

	if want := []string{"*", "node"}; !reflect.DeepEqual(snap.Order, want) {
		t.Errorf("Order = %v, want %v", snap.Order, want)
	}

	// The node layer redeclared format, so it wins wholesale.
	format, ok := snap.Config.Tasks["format"]
	if !ok {
		t.Fatal("format task missing")
	}
	if s, _ := format.Command.AsString(); s != "biome format ." {
		t.Errorf("format command = %q, want the node layer's", s)
	}

	if _, ok := snap.Config.Tasks["typecheck"]; !ok {
		t.Error("typecheck task missing")
	}
	if _, ok := snap.Config.Tasks["check"]; ok {
		t.Error("rust layer leaked into a node lookup")
	}

	if got := snap.Config.FileGroups["sources"]; len(got) != 1 {
		t.Errorf("wildcard file group missing: %v", snap.Config.FileGroups)
	}
}

func TestManager_CachesPerTraitCombination(t *testing.T) {
	t.Parallel()

	root := writeWorkspace(t, map[string]string{
		"*": `tasks: format: command: "prettier --write ."`,
	})

	mgr, err := NewManager(root)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	first, err := mgr.GetInheritedConfig(projfile.PlatformNode, projfile.LanguageJavaScript, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.GetInheritedConfig(projfile.PlatformNode, projfile.LanguageJavaScript, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("identical trait combinations should share a snapshot")
	}

	other, err := mgr.GetInheritedConfig(projfile.PlatformSystem, projfile.LanguageRust, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if first == other {
		t.Error("distinct trait combinations must not share a snapshot")
	}
}

func TestManager_EmptyWorkspace(t *testing.T) {
	t.Parallel()

	mgr, err := NewManager(types.FilesystemPath(t.TempDir()))
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	snap, err := mgr.GetInheritedConfig(projfile.PlatformNode, projfile.LanguageJavaScript, "", nil)
	if err != nil {
		t.Fatalf("GetInheritedConfig returned error: %v", err)
	}
	if len(snap.Order) != 0 || len(snap.Config.Tasks) != 0 {
		t.Errorf("expected an empty snapshot, got %+v", snap)
	}
}

func TestManager_LayerNames(t *testing.T) {
	t.Parallel()

	root := writeWorkspace(t, map[string]string{
		"*":    `tasks: format: command: "prettier --write ."`,
		"node": `tasks: typecheck: command: "tsc --noEmit"`,
		"rust": `tasks: check: command: "cargo check"`,
	})

	mgr, err := NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := mgr.LayerNames(), []string{"*", "node", "rust"}; !reflect.DeepEqual(got, want) {
		t.Errorf("LayerNames() = %v, want %v", got, want)
	}
}

func TestManager_MalformedLayerFails(t *testing.T) {
	t.Parallel()

	root := writeWorkspace(t, map[string]string{
		"node": `tasks: broken: command: ""`,
	})

	if _, err := NewManager(root); err == nil {
		t.Fatal("NewManager should surface layer validation errors")
	}
}
