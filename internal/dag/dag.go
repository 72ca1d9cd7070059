// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed acyclic graph operations for topological
// sorting and cycle detection over project ids. It orders a workspace's
// projects so every project appears after the projects it depends on.
package dag

import (
	"fmt"
	"strings"

	"strata-cli/pkg/types"
)

type (
	// CycleError indicates that the graph contains a dependency cycle,
	// preventing topological ordering.
	CycleError struct {
		// Cycle contains the project ids involved in the cycle (not
		// necessarily all of them, but enough to identify the problem).
		Cycle []types.ID
	}

	// Graph is a directed graph of project ids for topological sorting.
	// An edge from A to B means A must be resolved before B.
	Graph struct {
		// adjacency maps each project to the projects depending on it.
		adjacency map[types.ID][]types.ID
		// nodes tracks all projects in insertion order for deterministic
		// output.
		nodes []types.ID
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[types.ID]bool
	}
)

func (e *CycleError) Error() string {
	ids := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		ids[i] = id.String()
	}
	return fmt.Sprintf("project dependency cycle detected: %s", strings.Join(ids, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[types.ID][]types.ID),
		nodeSet:   make(map[types.ID]bool),
	}
}

// AddProject adds a project to the graph. Adding an existing project is
// a no-op.
func (g *Graph) AddProject(id types.ID) {
	if g.nodeSet[id] {
		return
	}
	g.nodeSet[id] = true
	g.nodes = append(g.nodes, id)
}

// AddDependency records that dependent depends on dependency, so the
// dependency must come first in any valid order. Both projects are
// implicitly added if absent.
func (g *Graph) AddDependency(dependent, dependency types.ID) {
	g.AddProject(dependent)
	g.AddProject(dependency)
	g.adjacency[dependency] = append(g.adjacency[dependency], dependent)
}

// TopologicalSort returns a dependency-respecting project order using
// Kahn's algorithm. Returns CycleError if the graph contains a cycle.
// The order is deterministic: projects at the same depth appear in the
// order they were first added to the graph.
func (g *Graph) TopologicalSort() ([]types.ID, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[types.ID]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = 0
	}
	for _, dependents := range g.adjacency {
		for _, dependent := range dependents {
			inDegree[dependent]++
		}
	}

	// Seed the queue with projects that depend on nothing, in insertion order.
	queue := make([]types.ID, 0)
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []types.ID
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dependent := range g.adjacency[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		// Remaining projects with non-zero in-degree form the cycle.
		var cycleNodes []types.ID
		for _, node := range g.nodes {
			if inDegree[node] > 0 {
				cycleNodes = append(cycleNodes, node)
			}
		}
		return nil, &CycleError{Cycle: cycleNodes}
	}

	return result, nil
}
