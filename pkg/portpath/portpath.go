// SPDX-License-Identifier: MPL-2.0

package portpath

import (
	"errors"
	"fmt"
	"strings"

	"strata-cli/pkg/fspath"
	"strata-cli/pkg/types"
)

// ErrInvalidPortablePath is the sentinel error wrapped by InvalidPortablePathError.
var ErrInvalidPortablePath = errors.New("invalid portable path")

// Kind classifies the shape of a PortablePath.
type Kind int

const (
	// KindProjectFile is a literal path relative to the project root.
	KindProjectFile Kind = iota
	// KindProjectGlob is a glob pattern relative to the project root.
	KindProjectGlob
	// KindWorkspaceFile is a literal path relative to the workspace root
	// (leading "/").
	KindWorkspaceFile
	// KindWorkspaceGlob is a glob pattern relative to the workspace root
	// (leading "/").
	KindWorkspaceGlob
	// KindEnvVar is an environment variable reference ("$VAR").
	KindEnvVar
)

type (
	// PortablePath is a path pattern as written in configuration. It is
	// polymorphic over literal paths, project- and workspace-scoped globs,
	// and environment variable references, distinguished purely by shape:
	//
	//	src/**/*.ts     project-scoped glob
	//	package.json    project-relative file
	//	/scripts/ci.sh  workspace-relative file
	//	/**/*.yml       workspace-scoped glob
	//	$CI             environment variable reference
	//
	// A leading "!" negates a glob and is preserved across conversion.
	PortablePath string

	// InvalidPortablePathError is returned when a PortablePath value is
	// empty or whitespace-only. It wraps ErrInvalidPortablePath.
	InvalidPortablePathError struct {
		Value PortablePath
	}
)

// String returns the string representation of the PortablePath.
func (p PortablePath) String() string { return string(p) }

// IsValid returns whether the PortablePath is non-empty.
func (p PortablePath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidPortablePathError{Value: p}}
	}
	return true, nil
}

// Kind classifies the path by shape. Negation ("!") is ignored for
// classification.
func (p PortablePath) Kind() Kind {
	s := strings.TrimPrefix(string(p), "!")

	if strings.HasPrefix(s, "$") {
		return KindEnvVar
	}

	workspace := strings.HasPrefix(s, "/")
	if isGlob(s) {
		if workspace {
			return KindWorkspaceGlob
		}
		return KindProjectGlob
	}
	if workspace {
		return KindWorkspaceFile
	}
	return KindProjectFile
}

// IsEnvVar reports whether the path is an environment variable reference.
func (p PortablePath) IsEnvVar() bool { return p.Kind() == KindEnvVar }

// IsGlob reports whether the path is a glob pattern (project- or
// workspace-scoped).
func (p PortablePath) IsGlob() bool {
	k := p.Kind()
	return k == KindProjectGlob || k == KindWorkspaceGlob
}

// ToWorkspaceRelative converts the path into its workspace-relative form,
// given the owning project's workspace-relative source path. Env var
// references pass through untouched, workspace-scoped paths only lose
// their leading "/", and project-scoped paths are joined onto the project
// source. Glob negation survives the conversion.
func (p PortablePath) ToWorkspaceRelative(projectSource types.WorkspaceRelPath) types.WorkspaceRelPath {
	s := string(p)

	negated := strings.HasPrefix(s, "!")
	if negated {
		s = s[1:]
	}

	var rel types.WorkspaceRelPath
	switch {
	case strings.HasPrefix(s, "$"):
		return types.WorkspaceRelPath(string(p))
	case strings.HasPrefix(s, "/"):
		rel = types.WorkspaceRelPath(strings.TrimPrefix(s, "/"))
	default:
		rel = fspath.WorkspaceJoin(projectSource, s)
	}

	if negated {
		rel = "!" + rel
	}
	return rel
}

// Error implements the error interface for InvalidPortablePathError.
func (e *InvalidPortablePathError) Error() string {
	return fmt.Sprintf("invalid portable path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidPortablePath for errors.Is() compatibility.
func (e *InvalidPortablePathError) Unwrap() error { return ErrInvalidPortablePath }

// isGlob reports whether s contains glob metacharacters.
func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
