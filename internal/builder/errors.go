// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"errors"
	"fmt"

	"strata-cli/pkg/types"
)

// ErrMissingAtSource is the sentinel error wrapped by MissingAtSourceError.
var ErrMissingAtSource = errors.New("project root missing at source")

// MissingAtSourceError is returned when a project's configured source
// directory does not exist under the workspace root.
type MissingAtSourceError struct {
	ID     types.ID
	Source types.WorkspaceRelPath
}

// Error implements the error interface for MissingAtSourceError.
func (e *MissingAtSourceError) Error() string {
	return fmt.Sprintf("project %s does not exist at source %q", e.ID, e.Source)
}

// Unwrap returns ErrMissingAtSource for errors.Is() compatibility.
func (e *MissingAtSourceError) Unwrap() error { return ErrMissingAtSource }
