// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the maximum accepted configuration file size (2MB).
// Configuration files near this size are already pathological; the cap keeps
// a corrupted or hostile file from ballooning memory during unification.
const DefaultMaxFileSize int64 = 2 * 1024 * 1024

type (
	// decodeOptions holds configuration for the decode flow.
	decodeOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures decoding behavior.
	Option func(*decodeOptions)
)

// defaultOptions returns the default decode options.
func defaultOptions() decodeOptions {
	return decodeOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		filename:    "",
	}
}

// WithMaxFileSize overrides the maximum accepted file size.
// A size of 0 disables the check.
func WithMaxFileSize(size int64) Option {
	return func(o *decodeOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete controls whether all values must be concrete after
// unification. Default is true. Set to false for schemas where optional
// fields may stay unset.
func WithConcrete(concrete bool) Option {
	return func(o *decodeOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *decodeOptions) {
		o.filename = name
	}
}
