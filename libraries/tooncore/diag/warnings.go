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

package diag

// Warning categories. The tabular decoder emits at most one warning per
// category per call. The DOM parser emits one duplicate_key warning for each
// object that repeats a key and one n_mismatch warning for each array whose
// item count differs from its declared [N].
const (
	WarnDuplicateKey = "duplicate_key"
	WarnRaggedRows   = "ragged_rows"
	WarnNMismatch    = "n_mismatch"
	WarnForceType    = "force_type"
	WarnOther        = "other"
)

// Warning is a non-fatal anomaly observed during a decode.
type Warning struct {
	Category string
	Message  string
}

// ValidationResult is a value, not an error. Valid results have every other
// field zero.
type ValidationResult struct {
	Valid   bool
	Kind    string
	Message string
	Line    int
	Column  int
	Snippet string
	File    string
}

func ValidOK() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid builds a failed result from a ParseError.
func Invalid(pe *ParseError) ValidationResult {
	return ValidationResult{
		Valid:   false,
		Kind:    "parse_error",
		Message: pe.Message,
		Line:    pe.Line,
		Column:  pe.Column,
		Snippet: pe.Snippet,
		File:    pe.File,
	}
}
