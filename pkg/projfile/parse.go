// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"strata-cli/pkg/cueutil"
	"strata-cli/pkg/types"
)

//go:embed projfile_schema.cue
var projfileSchema string

// Load reads the project configuration at path, which points at the
// strata.cue inside a project root. A missing file is not an error: Load
// falls back to the legacy strata.yml alongside it, and when neither
// exists returns the zero configuration. workspaceRoot is used only to
// shorten paths in error messages.
func Load(workspaceRoot, path types.FilesystemPath) (*ProjectConfig, error) {
	data, err := os.ReadFile(string(path))
	if err == nil {
		return ParseBytes(data, displayPath(workspaceRoot, path))
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read project config at %s: %w", path, err)
	}

	legacy := filepath.Join(filepath.Dir(string(path)), LegacyProjectFileName)
	data, err = os.ReadFile(legacy)
	if err == nil {
		return ParseYAMLBytes(data, displayPath(workspaceRoot, types.FilesystemPath(legacy)))
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read project config at %s: %w", legacy, err)
	}

	return &ProjectConfig{}, nil
}

// ParseBytes parses strata.cue content through the schema-unify-decode
// flow, then runs the Go-side validators.
func ParseBytes(data []byte, path string) (*ProjectConfig, error) {
	cfg, err := cueutil.Decode[ProjectConfig](
		projfileSchema,
		data,
		"#Project",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ParseYAMLBytes parses legacy strata.yml content. The YAML tree decodes
// into the same configuration types as CUE and passes through the same
// Go-side validators; only the schema-unification step is skipped.
func ParseYAMLBytes(data []byte, path string) (*ProjectConfig, error) {
	var cfg ProjectConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// ParseInheritedTasksBytes parses one workspace task-inheritance layer
// (.strata/tasks.cue or a file under .strata/tasks/).
func ParseInheritedTasksBytes(data []byte, path string) (*InheritedTasksConfig, error) {
	cfg, err := cueutil.Decode[InheritedTasksConfig](
		projfileSchema,
		data,
		"#InheritedTasks",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// displayPath renders path relative to the workspace root when possible,
// keeping error messages short.
func displayPath(workspaceRoot, path types.FilesystemPath) string {
	rel, err := filepath.Rel(string(workspaceRoot), string(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return string(path)
	}
	return filepath.ToSlash(rel)
}
