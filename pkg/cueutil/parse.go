// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Decode runs the schema-unify-decode flow for a CUE configuration file:
//
//  1. Compile the embedded schema and look up the root definition
//  2. Compile the user data and unify it with the schema
//  3. Validate the unified value and decode it into T
//
// schema is the embedded schema source (from //go:embed), data the user
// file contents, and rootDef the schema definition to unify against
// (e.g., "#Project"). Validation failures come back as errors carrying
// the JSON path of the offending field.
func Decode[T any](schema string, data []byte, rootDef string, opts ...Option) (*T, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if max := options.maxFileSize; max > 0 && int64(len(data)) > max {
		return nil, fmt.Errorf("%s: file size %d exceeds maximum of %d bytes", filename, len(data), max)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(rootDef))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", rootDef, schemaRoot.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &result, nil
}
