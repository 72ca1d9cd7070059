// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"strata-cli/internal/config"
	"strata-cli/internal/dag"
	"strata-cli/internal/issue"
	"strata-cli/pkg/project"
	"strata-cli/pkg/types"
)

// newProjectCommand creates the `strata project` command tree.
func newProjectCommand(app *App, verbose *bool) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect resolved projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	projectCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all configured projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProjects(cmd.Context(), app, *verbose)
		},
	})

	projectCmd.AddCommand(&cobra.Command{
		Use:   "order",
		Short: "Print projects in dependency order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return orderProjects(cmd.Context(), app, *verbose)
		},
	})

	projectCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a fully resolved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProject(cmd.Context(), app, types.ID(args[0]), *verbose)
		},
	})

	return projectCmd
}

func listProjects(ctx context.Context, app *App, verbose bool) error {
	projects, err := app.Resolver.ResolveWorkspace(ctx)
	if err != nil {
		return reportResolveError(app, err, verbose)
	}

	if len(projects) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("No projects configured."))
		return nil
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Projects"))
	fmt.Fprintln(app.stdout)
	for _, p := range projects {
		fmt.Fprintf(app.stdout, "  %s  %s %s\n",
			IDStyle.Render(p.ID.String()),
			SubtitleStyle.Render(p.Source.String()),
			SubtitleStyle.Render(fmt.Sprintf("(%s, %d tasks)", p.Language, len(p.Tasks))))
	}

	return nil
}

// orderProjects resolves every project and prints a dependency-respecting
// order: each project after the projects it depends on.
func orderProjects(ctx context.Context, app *App, verbose bool) error {
	projects, err := app.Resolver.ResolveWorkspace(ctx)
	if err != nil {
		return reportResolveError(app, err, verbose)
	}

	graph := dag.New()
	for _, p := range projects {
		graph.AddProject(p.ID)
		for _, depID := range p.DependencyIDs() {
			graph.AddDependency(p.ID, depID)
		}
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		return reportResolveError(app, err, verbose)
	}

	for _, id := range order {
		fmt.Fprintln(app.stdout, IDStyle.Render(id.String()))
	}
	return nil
}

func showProject(ctx context.Context, app *App, id types.ID, verbose bool) error {
	p, err := app.Resolver.ResolveProject(ctx, id)
	if err != nil {
		if errors.Is(err, config.ErrUnconfiguredID) {
			rendered, _ := issue.Get(issue.ProjectNotFoundId).Render("dark")
			fmt.Fprint(app.stderr, rendered)
		}
		return reportResolveError(app, err, verbose)
	}

	renderProject(app, p)
	return nil
}

// renderProject prints one resolved project with all its sections.
func renderProject(app *App, p *project.Project) {
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render(p.ID.String()))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("source"), p.Source)
	fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("language"), p.Language)
	fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("platform"), p.Platform)
	fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("type"), p.Type)
	if p.Config != nil && len(p.Config.Tags) > 0 {
		tags := make([]string, len(p.Config.Tags))
		for i, tag := range p.Config.Tags {
			tags[i] = tag.String()
		}
		fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("tags"), strings.Join(tags, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", IDStyle.Render("dependsOn"))
	depIDs := p.DependencyIDs()
	if len(depIDs) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, depID := range depIDs {
		dep := p.DependsOn[depID]
		fmt.Fprintf(out, "  - %s %s\n", depID,
			SubtitleStyle.Render(fmt.Sprintf("(%s, %s)", dep.Scope, dep.Source)))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", IDStyle.Render("fileGroups"))
	if len(p.FileGroups) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, groupID := range sortedGroupIDs(p) {
		group := p.FileGroups[groupID]
		fmt.Fprintf(out, "  %s:\n", groupID)
		for _, pattern := range group.Patterns {
			fmt.Fprintf(out, "    - %s\n", pattern)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", IDStyle.Render("tasks"))
	if len(p.Tasks) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, taskID := range p.TaskIDs() {
		task := p.Tasks[taskID]
		origin := ""
		if task.Inherited {
			origin = SubtitleStyle.Render(" (inherited)")
		}
		fmt.Fprintf(out, "  %s%s\n", IDStyle.Render(task.Target.String()), origin)
		fmt.Fprintf(out, "    command: %s\n", strings.Join(append([]string{task.Command}, task.Args...), " "))
	}
}

func sortedGroupIDs(p *project.Project) []types.ID {
	ids := maps.Keys(p.FileGroups)
	slices.Sort(ids)
	return ids
}

// reportResolveError renders a resolution failure and converts it into an
// ExitError so fang keeps the message.
func reportResolveError(app *App, err error, verbose bool) error {
	fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	return &ExitError{Code: 1, Err: err}
}
