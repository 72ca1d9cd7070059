// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"strata-cli/internal/issue"
	"strata-cli/pkg/target"
)

// newTaskCommand creates the `strata task` command tree.
func newTaskCommand(app *App, verbose *bool) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect resolved tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	taskCmd.AddCommand(&cobra.Command{
		Use:   "show <project:task>",
		Short: "Show a fully resolved task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTask(cmd.Context(), app, args[0], *verbose)
		},
	})

	return taskCmd
}

func showTask(ctx context.Context, app *App, ref string, verbose bool) error {
	tgt, err := target.Parse(ref)
	if err != nil {
		return reportResolveError(app, err, verbose)
	}
	if tgt.Scope != target.ScopeProject {
		return reportResolveError(app,
			fmt.Errorf("task reference %q must name a project (form: project:task)", ref), verbose)
	}

	p, err := app.Resolver.ResolveProject(ctx, tgt.Project)
	if err != nil {
		return reportResolveError(app, err, verbose)
	}

	task, ok := p.GetTask(tgt.Task)
	if !ok {
		rendered, _ := issue.Get(issue.TaskNotFoundId).Render("dark")
		fmt.Fprint(app.stderr, rendered)
		return reportResolveError(app,
			fmt.Errorf("task %s not found in project %s", tgt.Task, tgt.Project), verbose)
	}

	out := app.stdout
	fmt.Fprintln(out, TitleStyle.Render(task.Target.String()))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("command"), task.Command)
	if len(task.Args) > 0 {
		fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("args"), strings.Join(task.Args, " "))
	}
	fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("platform"), task.Platform)
	fmt.Fprintf(out, "%s: %s\n", IDStyle.Render("type"), task.Type)
	fmt.Fprintf(out, "%s: %v\n", IDStyle.Render("inherited"), task.Inherited)

	if len(task.Deps) > 0 {
		fmt.Fprintf(out, "%s:\n", IDStyle.Render("deps"))
		for _, dep := range task.Deps {
			fmt.Fprintf(out, "  - %s\n", dep)
		}
	}
	if len(task.Env) > 0 {
		fmt.Fprintf(out, "%s:\n", IDStyle.Render("env"))
		for _, key := range sortedEnvKeys(task.Env) {
			fmt.Fprintf(out, "  %s=%s\n", key, task.Env[key])
		}
	}
	if len(task.Inputs) > 0 {
		fmt.Fprintf(out, "%s:\n", IDStyle.Render("inputs"))
		for _, in := range task.Inputs {
			fmt.Fprintf(out, "  - %s\n", in)
		}
	}
	if len(task.Outputs) > 0 {
		fmt.Fprintf(out, "%s:\n", IDStyle.Render("outputs"))
		for _, o := range task.Outputs {
			fmt.Fprintf(out, "  - %s\n", o)
		}
	}

	opts := task.Options
	fmt.Fprintf(out, "%s:\n", IDStyle.Render("options"))
	fmt.Fprintf(out, "  cache: %v\n", opts.Cache)
	fmt.Fprintf(out, "  outputStyle: %s\n", opts.OutputStyle)
	fmt.Fprintf(out, "  retryCount: %d\n", opts.RetryCount)
	fmt.Fprintf(out, "  runDepsInParallel: %v\n", opts.RunDepsInParallel)
	fmt.Fprintf(out, "  runInCI: %v\n", opts.RunInCI)
	fmt.Fprintf(out, "  shell: %v\n", opts.Shell)

	return nil
}

func sortedEnvKeys(env map[string]string) []string {
	keys := maps.Keys(env)
	slices.Sort(keys)
	return keys
}
