// SPDX-License-Identifier: MPL-2.0

package config

import "strata-cli/pkg/types"

// workspaceRootOverride allows tests to pin the workspace root without
// depending on the process working directory.
var workspaceRootOverride types.FilesystemPath

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	workspaceRootOverride = ""
}

// SetWorkspaceRootOverride pins the workspace root returned by
// FindWorkspaceRoot. This is primarily intended for testing, where the
// working directory of the test process is unrelated to the fixture
// workspace.
func SetWorkspaceRootOverride(root types.FilesystemPath) {
	workspaceRootOverride = root
}
