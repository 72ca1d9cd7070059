// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "resolve project"},
			want: "failed to resolve project",
		},
		{
			name: "operation and resource",
			err: &ActionableError{
				Operation: "load project file",
				Resource:  "apps/web/strata.cue",
			},
			want: "failed to load project file: apps/web/strata.cue",
		},
		{
			name: "operation and cause",
			err: &ActionableError{
				Operation: "parse workspace config",
				Cause:     errors.New("syntax error at line 5"),
			},
			want: "failed to parse workspace config: syntax error at line 5",
		},
		{
			name: "all fields",
			err: &ActionableError{
				Operation: "load project file",
				Resource:  "apps/web/strata.cue",
				Cause:     errors.New("file not found"),
			},
			want: "failed to load project file: apps/web/strata.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "inherit tasks", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through to the cause")
	}
	if (&ActionableError{Operation: "inherit tasks"}).Unwrap() != nil {
		t.Error("Unwrap() without a cause should return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "bare operation",
			err:      &ActionableError{Operation: "load workspace config"},
			contains: []string{"failed to load workspace config"},
		},
		{
			name: "suggestions rendered as bullets",
			err: &ActionableError{
				Operation: "load project file",
				Resource:  "apps/web/strata.cue",
				Suggestions: []string{
					"Create a strata.cue at the project root",
					"Check file permissions",
				},
			},
			contains: []string{
				"failed to load project file",
				"apps/web/strata.cue",
				"• Create a strata.cue at the project root",
				"• Check file permissions",
			},
		},
		{
			name: "cause chain only in verbose mode",
			err: &ActionableError{
				Operation: "parse workspace config",
				Cause:     errors.New("syntax error"),
			},
			verbose:  true,
			contains: []string{"Error chain:", "1. syntax error"},
		},
		{
			name: "non-verbose hides the chain",
			err: &ActionableError{
				Operation: "parse workspace config",
				Cause:     errors.New("syntax error"),
			},
			contains: []string{"failed to parse workspace config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested causes numbered in order",
			err: &ActionableError{
				Operation: "resolve project",
				Cause: &ActionableError{
					Operation: "load project file",
					Cause:     errors.New("file not found"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to load project file: file not found",
				"2. file not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	t.Parallel()

	with := &ActionableError{Operation: "x", Suggestions: []string{"Try this"}}
	if !with.HasSuggestions() {
		t.Error("HasSuggestions() = false with suggestions present")
	}
	if (&ActionableError{Operation: "x"}).HasSuggestions() {
		t.Error("HasSuggestions() = true with no suggestions")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	t.Run("operation is required", func(t *testing.T) {
		t.Parallel()

		if got := NewErrorContext().WithResource("some/path").Build(); got != nil {
			t.Errorf("Build() without operation = %v, want nil", got)
		}
	})

	t.Run("all fields carried through", func(t *testing.T) {
		t.Parallel()

		err := NewErrorContext().
			WithOperation("load workspace config").
			WithResource(".strata/workspace.cue").
			WithSuggestion("Check the file syntax").
			WithSuggestion("Run strata config path to locate the file").
			Wrap(errors.New("parse error")).
			Build()

		if err == nil {
			t.Fatal("Build() returned nil")
		}
		if err.Operation != "load workspace config" {
			t.Errorf("Operation = %q", err.Operation)
		}
		if err.Resource != ".strata/workspace.cue" {
			t.Errorf("Resource = %q", err.Resource)
		}
		if len(err.Suggestions) != 2 {
			t.Errorf("Suggestions count = %d, want 2", len(err.Suggestions))
		}
		if err.Cause == nil || err.Cause.Error() != "parse error" {
			t.Errorf("Cause = %v", err.Cause)
		}
	})

	t.Run("variadic suggestions", func(t *testing.T) {
		t.Parallel()

		err := NewErrorContext().
			WithOperation("resolve project").
			WithSuggestions("one", "two", "three").
			Build()

		if err == nil {
			t.Fatal("Build() returned nil")
		}
		if len(err.Suggestions) != 3 {
			t.Errorf("Suggestions count = %d, want 3", len(err.Suggestions))
		}
	})
}

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().WithOperation("resolve project").BuildError()
	if err == nil {
		t.Fatal("BuildError() returned nil")
	}
	if _, ok := errors.AsType[*ActionableError](err); !ok {
		t.Error("BuildError() should return *ActionableError")
	}

	// A nil *ActionableError must become a nil interface, not a typed nil.
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().
		WithOperation("load project file").
		WithResource("packages/shared/strata.cue")

	first := ctx.Wrap(errors.New("first")).Build()
	second := ctx.Wrap(errors.New("second")).Build()

	if first.Cause.Error() == second.Cause.Error() {
		t.Error("rewrapping should replace the cause")
	}
	if first.Operation != second.Operation {
		t.Error("rewrapping should preserve the operation")
	}
}

func TestNewActionableError(t *testing.T) {
	t.Parallel()

	err := NewActionableError("resolve project")
	if err.Operation != "resolve project" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != "" || err.Cause != nil || err.HasSuggestions() {
		t.Error("only the operation should be set")
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Parallel()

	cause := errors.New("original error")

	err := WrapWithOperation(cause, "load project file")
	if err == nil {
		t.Fatal("WrapWithOperation returned nil")
	}
	if err.Operation != "load project file" || !errors.Is(err, cause) {
		t.Errorf("WrapWithOperation = %v", err)
	}
	if WrapWithOperation(nil, "x") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}

	err = WrapWithContext(cause, "load project file", "apps/web/strata.cue")
	if err == nil {
		t.Fatal("WrapWithContext returned nil")
	}
	if err.Resource != "apps/web/strata.cue" || !errors.Is(err, cause) {
		t.Errorf("WrapWithContext = %v", err)
	}
	if WrapWithContext(nil, "x", "y") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}
