// SPDX-License-Identifier: MPL-2.0

// Package toolchain models the workspace toolchain configuration.
// Project resolution treats it as opaque: it is handed to registered
// platform detectors and otherwise only carried along.
package toolchain

import "strata-cli/pkg/projfile"

type (
	// NodeConfig configures the Node.js toolchain for the workspace.
	NodeConfig struct {
		// Version pins the Node.js version, empty for the system one.
		Version string `json:"version,omitempty" mapstructure:"version" toml:"version,omitempty"`
		// PackageManager selects npm, pnpm, or yarn.
		PackageManager string `json:"packageManager,omitempty" mapstructure:"packageManager" toml:"packageManager,omitempty"`
	}

	// Config is the resolved workspace toolchain configuration. A nil
	// section means the corresponding toolchain is not enabled.
	Config struct {
		// Node is the Node.js toolchain section.
		Node *NodeConfig `json:"node,omitempty" mapstructure:"node" toml:"node,omitempty"`
	}
)

// NodeEnabled reports whether the Node.js toolchain is configured.
func (c *Config) NodeEnabled() bool {
	return c != nil && c.Node != nil
}

// DetectTaskPlatform resolves a task's platform from its hint and the
// enabled toolchains. A set hint wins; otherwise node is assumed when
// the Node.js toolchain is enabled, falling back to system. Registered
// platform detectors may replace this default policy.
func (c *Config) DetectTaskPlatform(hint projfile.PlatformType) projfile.PlatformType {
	if hint.IsSet() && hint != projfile.PlatformUnknown {
		return hint
	}
	if c.NodeEnabled() {
		return projfile.PlatformNode
	}
	return projfile.PlatformSystem
}
