// SPDX-License-Identifier: MPL-2.0

// Package merge implements the strategy algebra used when a local
// list- or map-valued task field combines with its inherited
// counterpart. The algebra is independent of any specific field so it
// can be tested in isolation from task resolution.
package merge

import (
	"maps"

	"strata-cli/pkg/projfile"
)

// Lists combines a global and a local list under the given strategy:
//
//	append   global followed by local
//	prepend  local followed by global
//	replace  local when non-empty, otherwise global
//
// Internal order of each side is preserved and nothing is
// de-duplicated. The result never aliases either input.
func Lists[T any](global, local []T, strategy projfile.MergeStrategy) []T {
	switch strategy.OrAppend() {
	case projfile.MergePrepend:
		return concat(local, global)
	case projfile.MergeReplace:
		if len(local) > 0 {
			return concat(local, nil)
		}
		return concat(global, nil)
	default:
		return concat(global, local)
	}
}

// Maps combines a global and a local map under the given strategy. On
// key conflicts append lets local win and prepend lets global win,
// mirroring which side lands "later" in the list forms. Replace takes
// local wholesale when non-empty. The result never aliases either
// input.
func Maps[K comparable, V any](global, local map[K]V, strategy projfile.MergeStrategy) map[K]V {
	switch strategy.OrAppend() {
	case projfile.MergePrepend:
		return overlay(local, global)
	case projfile.MergeReplace:
		if len(local) > 0 {
			return overlay(local, nil)
		}
		return overlay(global, nil)
	default:
		return overlay(global, local)
	}
}

func concat[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// overlay copies base and writes over with the entries of top.
func overlay[K comparable, V any](base, top map[K]V) map[K]V {
	if len(base) == 0 && len(top) == 0 {
		return nil
	}
	out := make(map[K]V, len(base)+len(top))
	maps.Copy(out, base)
	maps.Copy(out, top)
	return out
}
