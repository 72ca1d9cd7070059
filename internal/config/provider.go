// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"strata-cli/pkg/types"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// WorkspaceRoot pins the workspace root when set, skipping the
	// upward search from the working directory.
	WorkspaceRoot types.FilesystemPath
}

// Provider loads workspace configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, types.FilesystemPath, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested workspace and returns the
// parsed config together with the resolved workspace root.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, types.FilesystemPath, error) {
	return loadWithOptions(ctx, opts)
}
