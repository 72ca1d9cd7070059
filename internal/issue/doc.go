// SPDX-License-Identifier: MPL-2.0

// Package issue turns resolver failures into actionable CLI output.
//
// It provides ActionableError (operation, resource, suggestions, cause)
// built through ErrorContext, plus a small catalog of known issues
// rendered as Markdown for the terminal.
package issue
