// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"os"
	"path/filepath"
	"testing"

	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		markers []string
		want    projfile.LanguageType
	}{
		{"typescript", []string{"tsconfig.json", "package.json"}, projfile.LanguageTypeScript},
		{"javascript", []string{"package.json"}, projfile.LanguageJavaScript},
		{"go", []string{"go.mod"}, projfile.LanguageGo},
		{"rust", []string{"Cargo.toml"}, projfile.LanguageRust},
		{"python pyproject", []string{"pyproject.toml"}, projfile.LanguagePython},
		{"python requirements", []string{"requirements.txt"}, projfile.LanguagePython},
		{"ruby", []string{"Gemfile"}, projfile.LanguageRuby},
		{"no markers", nil, projfile.LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			for _, marker := range tt.markers {
				if err := os.WriteFile(filepath.Join(root, marker), []byte("{}"), 0o644); err != nil {
					t.Fatalf("failed to write marker: %v", err)
				}
			}

			got := DetectLanguage(types.FilesystemPath(root))
			if got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectLanguage_DirectoryMarkerIgnored(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "go.mod"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	if got := DetectLanguage(types.FilesystemPath(root)); got != projfile.LanguageUnknown {
		t.Errorf("DetectLanguage() = %q, want unknown for directory marker", got)
	}
}
