// SPDX-License-Identifier: MPL-2.0

// Package target defines the "scope:task" reference syntax used to point
// at tasks across the workspace, and the scope restrictions that apply
// when such references appear as task dependencies.
package target
