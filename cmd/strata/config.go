// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"strata-cli/internal/config"
	"strata-cli/internal/issue"
)

// newConfigCommand creates the `strata config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage workspace configuration",
		Long: `Manage workspace configuration.

Configuration is stored in .strata/workspace.cue at the workspace root.
A .strata/workspace.toml fallback is accepted for workspaces that have
not migrated to CUE yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current workspace configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show workspace configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.Context(), app)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, root, err := app.Config.Load(ctx, config.LoadOptions{
		WorkspaceRoot: workspaceRootFromContext(ctx),
	})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(app.stderr, rendered)
		return err
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s: %s\n", IDStyle.Render("Workspace root"), root)
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", IDStyle.Render("projects"))
	if len(cfg.Projects) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		ids := maps.Keys(cfg.Projects)
		slices.Sort(ids)
		for _, id := range ids {
			fmt.Fprintf(app.stdout, "  %s: %s\n", id, SuccessStyle.Render(cfg.Projects[id].String()))
		}
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", IDStyle.Render("toolchain"))
	if cfg.Toolchain.Node != nil {
		fmt.Fprintf(app.stdout, "  node.version: %s\n", SuccessStyle.Render(cfg.Toolchain.Node.Version))
		fmt.Fprintf(app.stdout, "  node.packageManager: %s\n", SuccessStyle.Render(cfg.Toolchain.Node.PackageManager))
	} else {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", IDStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", SuccessStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func showConfigPath(ctx context.Context, app *App) error {
	_, root, err := app.Config.Load(ctx, config.LoadOptions{
		WorkspaceRoot: workspaceRootFromContext(ctx),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Workspace root: %s\n", root)
	fmt.Fprintf(app.stdout, "Config file: %s\n",
		filepath.Join(root.String(), config.WorkspaceDirName, config.WorkspaceFileName))
	fmt.Fprintf(app.stdout, "Inheritance layers: %s\n",
		filepath.Join(root.String(), config.WorkspaceDirName, "tasks"))

	return nil
}
