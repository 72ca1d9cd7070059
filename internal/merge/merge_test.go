// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"reflect"
	"testing"

	"strata-cli/pkg/projfile"
)

func TestLists(t *testing.T) {
	t.Parallel()

	global := []string{"a", "b"}
	local := []string{"c"}

	tests := []struct {
		name     string
		global   []string
		local    []string
		strategy projfile.MergeStrategy
		want     []string
	}{
		{name: "append", global: global, local: local, strategy: projfile.MergeAppend, want: []string{"a", "b", "c"}},
		{name: "prepend", global: global, local: local, strategy: projfile.MergePrepend, want: []string{"c", "a", "b"}},
		{name: "replace with non-empty local", global: global, local: local, strategy: projfile.MergeReplace, want: []string{"c"}},
		{name: "replace with empty local", global: global, local: nil, strategy: projfile.MergeReplace, want: []string{"a", "b"}},
		{name: "zero strategy reads as append", global: global, local: local, strategy: "", want: []string{"a", "b", "c"}},
		{name: "no dedup", global: []string{"a"}, local: []string{"a"}, strategy: projfile.MergeAppend, want: []string{"a", "a"}},
		{name: "both empty", global: nil, local: nil, strategy: projfile.MergeAppend, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Lists(tt.global, tt.local, tt.strategy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lists(%v, %v, %s) = %v, want %v", tt.global, tt.local, tt.strategy, got, tt.want)
			}
		})
	}
}

func TestLists_DoesNotAliasInputs(t *testing.T) {
	t.Parallel()

	global := []string{"a", "b"}
	got := Lists(global, nil, projfile.MergeReplace)
	got[0] = "mutated"

	if global[0] != "a" {
		t.Errorf("result aliases the global input: %v", global)
	}
}

func TestMaps(t *testing.T) {
	t.Parallel()

	global := map[string]string{"A": "global", "B": "global"}
	local := map[string]string{"B": "local", "C": "local"}

	tests := []struct {
		name     string
		strategy projfile.MergeStrategy
		want     map[string]string
	}{
		{
			name:     "append lets local win conflicts",
			strategy: projfile.MergeAppend,
			want:     map[string]string{"A": "global", "B": "local", "C": "local"},
		},
		{
			name:     "prepend lets global win conflicts",
			strategy: projfile.MergePrepend,
			want:     map[string]string{"A": "global", "B": "global", "C": "local"},
		},
		{
			name:     "replace takes local wholesale",
			strategy: projfile.MergeReplace,
			want:     map[string]string{"B": "local", "C": "local"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Maps(global, local, tt.strategy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Maps(append=%s) = %v, want %v", tt.strategy, got, tt.want)
			}
		})
	}
}

func TestMaps_ReplaceEmptyLocalKeepsGlobal(t *testing.T) {
	t.Parallel()

	global := map[string]string{"A": "global"}
	got := Maps(global, nil, projfile.MergeReplace)
	if !reflect.DeepEqual(got, global) {
		t.Errorf("Maps = %v, want %v", got, global)
	}

	got["A"] = "mutated"
	if global["A"] != "global" {
		t.Error("result aliases the global input")
	}
}
