// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"os"
	"path/filepath"

	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

// languageMarkers maps well-known manifest files to the language they
// indicate. Ordered by specificity; the first match wins.
var languageMarkers = []struct {
	file     string
	language projfile.LanguageType
}{
	{"tsconfig.json", projfile.LanguageTypeScript},
	{"package.json", projfile.LanguageJavaScript},
	{"go.mod", projfile.LanguageGo},
	{"Cargo.toml", projfile.LanguageRust},
	{"pyproject.toml", projfile.LanguagePython},
	{"requirements.txt", projfile.LanguagePython},
	{"Gemfile", projfile.LanguageRuby},
}

// DetectLanguage infers a project's language from manifest files at its
// root. It is the default LanguageDetector used by the CLI; returns
// LanguageUnknown when no marker file is present.
func DetectLanguage(projectRoot types.FilesystemPath) projfile.LanguageType {
	for _, marker := range languageMarkers {
		path := filepath.Join(string(projectRoot), marker.file)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return marker.language
		}
	}
	return projfile.LanguageUnknown
}
