// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for strata.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"strata-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the base command and wires subcommands to the App.
func newRootCommand(app *App) *cobra.Command {
	var (
		verbose       bool
		workspaceRoot string
	)

	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "A layered monorepo project resolver",
		Long: TitleStyle.Render("strata") + SubtitleStyle.Render(" - A layered monorepo project resolver") + `

strata resolves the projects of a monorepo by layering each project's
own configuration over task and file-group defaults inherited from the
workspace, with deterministic merge rules and provenance tracking for
injected dependencies.

Projects are declared in '.strata/workspace.cue' and configured with
'strata.cue' files at their roots. Workspace-level task defaults live
under '.strata/tasks'.

` + SubtitleStyle.Render("Examples:") + `
  strata project list       List all configured projects
  strata project show web   Show the resolved 'web' project
  strata task show web:build  Show one resolved task
  strata config show        Show current workspace configuration`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(contextWithWorkspaceRoot(cmd.Context(), workspaceRoot))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&workspaceRoot, "workspace", "", "workspace root (default is found by walking up from the working directory)")

	rootCmd.AddCommand(newProjectCommand(app, &verbose))
	rootCmd.AddCommand(newTaskCommand(app, &verbose))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	app := NewApp(Dependencies{})

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
