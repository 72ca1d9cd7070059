// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	WorkspaceNotFoundId Id = iota + 1
	ProjectFileParseErrorId
	ProjectNotFoundId
	TaskNotFoundId
	InheritanceLayerInvalidId
	ConfigLoadFailedId
	InvalidTaskCommandId
	InvalidTaskDependencyId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	workspaceNotFoundIssue = &Issue{
		id: WorkspaceNotFoundId,
		mdMsg: `
# No workspace found!

We walked up from your current directory but never found a workspace
root (a directory containing ` + "`.strata/`" + `).

## Things you can try:
- Move into a directory inside your workspace:
~~~
$ cd /path/to/your/monorepo
~~~

- Or initialize a workspace at the repository root:
~~~
$ mkdir .strata
$ $EDITOR .strata/workspace.cue
~~~`,
	}

	projectFileParseErrorIssue = &Issue{
		id: ProjectFileParseErrorId,
		mdMsg: `
# Failed to parse project file!

A strata.cue (or legacy strata.yml) contains syntax errors or invalid
configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- An empty task command
- A task dependency using the all (":task") or tag ("#tag:task") scope

## Things you can try:
- Check the error message above for the specific field
- Validate your CUE syntax using the cue command-line tool

## Example of a valid project file:
~~~cue
language: "typescript"
type:     "application"

dependsOn: ["shared"]

tasks: {
  build: {
    command: "vite build"
    inputs: ["src/**/*"]
    outputs: ["dist"]
  }
}
~~~`,
	}

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# Project not found!

The project id you specified is not configured in this workspace.

## Things you can try:
- List the configured projects:
~~~
$ strata project list
~~~

- Check for typos in the project id
- Add the project to .strata/workspace.cue:
~~~cue
projects: {
  web: "apps/web"
}
~~~`,
	}

	taskNotFoundIssue = &Issue{
		id: TaskNotFoundId,
		mdMsg: `
# Task not found!

The task you referenced does not exist in the resolved project.

## Things you can try:
- Show the project's resolved tasks:
~~~
$ strata project show <id>
~~~

- Check for typos in the task id
- If the task is inherited, make sure the project's
  workspace.inheritedTasks override does not exclude it`,
	}

	inheritanceLayerInvalidIssue = &Issue{
		id: InheritanceLayerInvalidId,
		mdMsg: `
# Invalid inheritance layer!

A workspace task layer under .strata/ failed to load.

## Layer files:
- ` + "`.strata/tasks.cue`" + ` applies to every project
- ` + "`.strata/tasks/<scope>.cue`" + ` applies by platform, language,
  project type, or tag (e.g. node.cue, javascript.cue, tag-react.cue)

## Things you can try:
- Check the error message above for the offending field
- Layers may only declare fileGroups and tasks; project-level fields
  like language or dependsOn belong in each project's strata.cue`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load workspace configuration!

Could not load .strata/workspace.cue (or the workspace.toml fallback).

## Things you can try:
- Check the configuration syntax
- Remove the file to use defaults

## Example configuration:
~~~cue
projects: {
  web: "apps/web"
  api: "apps/api"
}

toolchain: node: {
  version: "22.0.0"
  packageManager: "pnpm"
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	invalidTaskCommandIssue = &Issue{
		id: InvalidTaskCommandId,
		mdMsg: `
# Invalid task command!

A task declared a command that resolves to nothing runnable: an empty
string, an empty sequence, or a sequence starting with an empty string.

## Things you can try:
- Give the task a real command:
~~~cue
tasks: build: command: "vite build"
~~~

- If the task exists only to group dependencies, use the placeholder:
~~~cue
tasks: prepare: command: "noop"
~~~`,
	}

	invalidTaskDependencyIssue = &Issue{
		id: InvalidTaskDependencyId,
		mdMsg: `
# Invalid task dependency!

A task dependency used the all (":task") or tag ("#tag:task") scope.
Task dependencies must point at a bounded project set.

## Allowed dependency scopes:
- ` + "`build`" + ` or ` + "`~:build`" + ` for a task in the same project
- ` + "`other:build`" + ` for a task in a specific project
- ` + "`^:build`" + ` for a task in every direct dependency

## Things you can try:
- Replace the all/tag scoped target with one of the allowed forms
- The error message names the deps index that needs fixing`,
	}

	issues = map[Id]*Issue{
		workspaceNotFoundIssue.Id():       workspaceNotFoundIssue,
		projectFileParseErrorIssue.Id():   projectFileParseErrorIssue,
		projectNotFoundIssue.Id():         projectNotFoundIssue,
		taskNotFoundIssue.Id():            taskNotFoundIssue,
		inheritanceLayerInvalidIssue.Id(): inheritanceLayerInvalidIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		invalidTaskCommandIssue.Id():      invalidTaskCommandIssue,
		invalidTaskDependencyIssue.Id():   invalidTaskDependencyIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
