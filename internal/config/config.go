// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"strata-cli/internal/issue"
	"strata-cli/pkg/cueutil"
	"strata-cli/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "strata"
	// WorkspaceDirName is the workspace configuration directory at the
	// workspace root.
	WorkspaceDirName = ".strata"
	// WorkspaceFileName is the workspace configuration file inside
	// WorkspaceDirName.
	WorkspaceFileName = "workspace.cue"
	// WorkspaceTOMLFileName is the TOML fallback accepted for
	// workspaces that have not migrated to CUE yet.
	WorkspaceTOMLFileName = "workspace.toml"
)

//go:embed workspace_schema.cue
var workspaceSchema string

// FindWorkspaceRoot walks up from startDir looking for a directory
// containing the workspace configuration directory.
func FindWorkspaceRoot(startDir types.FilesystemPath) (types.FilesystemPath, error) {
	// Allow tests to pin the workspace root
	if workspaceRootOverride != "" {
		return workspaceRootOverride, nil
	}

	dir := filepath.Clean(string(startDir))
	for {
		candidate := filepath.Join(dir, WorkspaceDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return types.FilesystemPath(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &MissingFromPathError{Path: startDir}
		}
		dir = parent
	}
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, types.FilesystemPath, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	root := opts.WorkspaceRoot
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		root, err = FindWorkspaceRoot(types.FilesystemPath(cwd))
		if err != nil {
			return nil, "", err
		}
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	cuePath := filepath.Join(string(root), WorkspaceDirName, WorkspaceFileName)
	tomlPath := filepath.Join(string(root), WorkspaceDirName, WorkspaceTOMLFileName)

	switch {
	case fileExists(cuePath):
		if err := loadCUEIntoViper(v, cuePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load workspace configuration").
				WithResource(cuePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
	case fileExists(tomlPath):
		if err := loadTOMLIntoViper(v, tomlPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load workspace configuration").
				WithResource(tomlPath).
				WithSuggestion("Check that the file contains valid TOML syntax").
				WithSuggestion("Consider migrating to workspace.cue for schema validation").
				Wrap(err).
				BuildError()
		}
	default:
		// No workspace file: defaults only, not an error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate workspace configuration").
			WithResource(string(root)).
			WithSuggestion("Ensure every projects entry maps a valid id to a workspace-relative path").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, root, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Workspace
// schema, and merges its contents into Viper.
//
// Note: This uses manual CUE parsing instead of cueutil.Decode because:
// 1. Config decodes to map[string]any (not a struct) for Viper integration
// 2. Uses Concrete(false) because config fields are optional
// 3. Needs to merge into Viper's config map, not return a struct
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if int64(len(data)) > cueutil.DefaultMaxFileSize {
		return fmt.Errorf("%s: file size %d exceeds maximum of %d bytes", path, len(data), cueutil.DefaultMaxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(workspaceSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile workspace schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Workspace"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// loadTOMLIntoViper parses a TOML fallback file and merges its contents
// into Viper. TOML files skip schema unification; Config.IsValid covers
// the semantic rules afterwards.
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
