// SPDX-License-Identifier: MPL-2.0

// Package project defines the resolved, immutable entities produced by
// project resolution: the Project itself, its FileGroups, and its Tasks
// with fully resolved options.
//
// Values in this package are snapshots. They are constructed once per
// resolution pass and never mutated afterwards; when source
// configuration changes, a new Project replaces the old one wholesale.
// Downstream stages (scheduling, hashing, execution) rely on that
// immutability to share resolved projects across goroutines without
// locking.
package project
