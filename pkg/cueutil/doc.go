// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// It consolidates the schema-unify-decode pattern used by the projfile,
// inherit, and config packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed projfile_schema.cue
//	var schema string
//
//	cfg, err := cueutil.Decode[ProjectConfig](
//	    schema,
//	    fileBytes,
//	    "#Project",
//	    cueutil.WithFilename("strata.cue"),
//	)
//	if err != nil {
//	    return nil, err // error carries the CUE path of the bad field
//	}
package cueutil
