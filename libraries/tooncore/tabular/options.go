// Copyright 2025 Toonlite Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tabular

import "math"

// RaggedPolicy decides what happens when a row's field count differs from
// the current schema.
type RaggedPolicy string

const (
	// RaggedExpandWarn appends V<n> columns for long rows, fills short rows
	// with NA, and emits one aggregated warning.
	RaggedExpandWarn RaggedPolicy = "expand_warn"
	// RaggedError fails on the first mismatched row.
	RaggedError RaggedPolicy = "error"
)

// MismatchPolicy decides what happens when the declared [N] row count does
// not match the observed count. It only applies when a count was declared;
// a missing count is no constraint.
type MismatchPolicy string

const (
	MismatchWarn  MismatchPolicy = "warn"
	MismatchError MismatchPolicy = "error"
)

// Options configure the tabular decoder.
type Options struct {
	Strict        bool
	AllowComments bool
	Warn          bool

	// Key selects a top-level key whose value is the tabular array. Empty
	// means the first tabular header in the input.
	Key string

	// ColTypes pins types for named columns before any row is read.
	ColTypes map[string]ColType

	RaggedRows RaggedPolicy
	NMismatch  MismatchPolicy

	// MaxExtraCols bounds total schema expansion under RaggedExpandWarn.
	MaxExtraCols int
}

// DefaultOptions returns the decoder defaults: strict, comments allowed,
// warnings on, expand-and-warn raggedness, unbounded expansion.
func DefaultOptions() Options {
	return Options{
		Strict:        true,
		AllowComments: true,
		Warn:          true,
		RaggedRows:    RaggedExpandWarn,
		NMismatch:     MismatchWarn,
		MaxExtraCols:  math.MaxInt,
	}
}

// StreamOptions configure the row streamer.
type StreamOptions struct {
	Options

	// BatchSize is the number of rows per emitted batch.
	BatchSize int
}

// DefaultStreamOptions returns streaming defaults with a batch size of
// 10,000 rows.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{Options: DefaultOptions(), BatchSize: 10000}
}
