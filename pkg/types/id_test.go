// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestID_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   ID
		want bool
	}{
		{name: "simple", id: "app", want: true},
		{name: "nested path style", id: "apps/client", want: true},
		{name: "dashes and dots", id: "web-app.v2", want: true},
		{name: "underscore", id: "web_app", want: true},
		{name: "empty", id: "", want: false},
		{name: "leading dash", id: "-app", want: false},
		{name: "leading slash", id: "/app", want: false},
		{name: "whitespace", id: "my app", want: false},
		{name: "colon", id: "app:build", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, errs := tt.id.IsValid()
			if got != tt.want {
				t.Errorf("ID(%q).IsValid() = %v, want %v", tt.id, got, tt.want)
			}
			if !tt.want {
				if len(errs) != 1 {
					t.Fatalf("expected exactly one error, got %d", len(errs))
				}
				if !errors.Is(errs[0], ErrInvalidID) {
					t.Errorf("error does not wrap ErrInvalidID: %v", errs[0])
				}
			}
		})
	}
}

func TestTag_IsValid(t *testing.T) {
	t.Parallel()

	if ok, _ := Tag("react").IsValid(); !ok {
		t.Error("expected tag 'react' to be valid")
	}
	if ok, errs := Tag("  ").IsValid(); ok {
		t.Error("expected whitespace-only tag to be invalid")
	} else if !errors.Is(errs[0], ErrInvalidTag) {
		t.Errorf("error does not wrap ErrInvalidTag: %v", errs[0])
	}
}

func TestWorkspaceRelPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path WorkspaceRelPath
		want bool
	}{
		{name: "simple", path: "apps/client", want: true},
		{name: "dot", path: ".", want: true},
		{name: "empty", path: "", want: false},
		{name: "absolute", path: "/apps/client", want: false},
		{name: "escapes root", path: "../other", want: false},
		{name: "bare parent", path: "..", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, _ := tt.path.IsValid(); got != tt.want {
				t.Errorf("WorkspaceRelPath(%q).IsValid() = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
