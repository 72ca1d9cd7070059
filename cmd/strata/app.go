// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"strata-cli/internal/builder"
	"strata-cli/internal/config"
	"strata-cli/internal/inherit"
	"strata-cli/internal/toolchain"
	"strata-cli/pkg/project"
	"strata-cli/pkg/projfile"
	"strata-cli/pkg/types"
)

type (
	workspaceRootContextKey struct{}

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; all Cobra command handlers receive an App
	// reference and delegate business logic through its service interfaces.
	App struct {
		Config   ConfigProvider
		Resolver ResolverService
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply mock implementations to isolate specific service behavior.
	Dependencies struct {
		Config   ConfigProvider
		Resolver ResolverService
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads workspace configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, types.FilesystemPath, error)
	}

	// ResolverService resolves configured projects against the workspace.
	ResolverService interface {
		ResolveProject(ctx context.Context, id types.ID) (*project.Project, error)
		ResolveWorkspace(ctx context.Context) ([]*project.Project, error)
	}

	// workspaceResolver implements ResolverService on top of the project
	// builder. An inheritance manager is created per workspace and shared
	// across project resolutions so layer snapshots stay cached.
	workspaceResolver struct {
		config ConfigProvider
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Resolver == nil {
		deps.Resolver = &workspaceResolver{config: deps.Config}
	}

	return &App{
		Config:   deps.Config,
		Resolver: deps.Resolver,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// contextWithWorkspaceRoot attaches the explicit --workspace value to the
// context. The RunE handler calls this once; all downstream resolutions
// share the same root.
func contextWithWorkspaceRoot(ctx context.Context, root string) context.Context {
	if root == "" {
		return ctx
	}
	return context.WithValue(ctx, workspaceRootContextKey{}, types.FilesystemPath(root))
}

// workspaceRootFromContext extracts the explicit workspace root from context.
func workspaceRootFromContext(ctx context.Context) types.FilesystemPath {
	if v, ok := ctx.Value(workspaceRootContextKey{}).(types.FilesystemPath); ok {
		return v
	}
	return ""
}

// ResolveProject resolves a single configured project through the full
// builder lifecycle.
func (s *workspaceResolver) ResolveProject(ctx context.Context, id types.ID) (*project.Project, error) {
	cfg, root, err := s.loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}

	mgr, err := inherit.NewManager(root)
	if err != nil {
		return nil, err
	}

	return resolveOne(cfg, root, mgr, id)
}

// ResolveWorkspace resolves every configured project in id order.
func (s *workspaceResolver) ResolveWorkspace(ctx context.Context) ([]*project.Project, error) {
	cfg, root, err := s.loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}

	mgr, err := inherit.NewManager(root)
	if err != nil {
		return nil, err
	}

	ids := maps.Keys(cfg.Projects)
	slices.Sort(ids)

	projects := make([]*project.Project, 0, len(ids))
	for _, id := range ids {
		p, err := resolveOne(cfg, root, mgr, id)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, nil
}

func (s *workspaceResolver) loadWorkspace(ctx context.Context) (*config.Config, types.FilesystemPath, error) {
	return s.config.Load(ctx, config.LoadOptions{
		WorkspaceRoot: workspaceRootFromContext(ctx),
	})
}

// resolveOne drives the builder lifecycle for a single project.
func resolveOne(cfg *config.Config, root types.FilesystemPath, mgr *inherit.Manager, id types.ID) (*project.Project, error) {
	source, err := cfg.ProjectSource(id)
	if err != nil {
		return nil, err
	}

	b, err := builder.NewProjectBuilder(id, source, root)
	if err != nil {
		return nil, err
	}

	b.WithLanguageDetector(builder.DetectLanguage).
		WithPlatformDetector(detectTaskPlatform, &cfg.Toolchain)

	if err := b.LoadLocalConfig(); err != nil {
		return nil, err
	}
	if err := b.InheritGlobalConfig(mgr); err != nil {
		return nil, err
	}

	return b.Build()
}

// detectTaskPlatform adapts toolchain platform detection to the shape the
// builder expects.
func detectTaskPlatform(hint projfile.PlatformType, tc *toolchain.Config) projfile.PlatformType {
	if tc == nil {
		tc = &toolchain.Config{}
	}
	return tc.DetectTaskPlatform(hint)
}
