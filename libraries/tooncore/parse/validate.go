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

package parse

import (
	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// Validate checks TOON text without surfacing a DOM. Syntactic failures are
// reported in the result, never raised.
func Validate(data []byte, opts ParseOptions) diag.ValidationResult {
	p := NewParser(opts)
	_, err := p.Parse(data)
	return toValidationResult(err)
}

// ValidateFile checks a TOON file. The returned error is non-nil only for
// I/O failures; parse failures land in the result.
func ValidateFile(fs filesys.ReadableFS, path string, opts ParseOptions) (diag.ValidationResult, error) {
	p := NewParser(opts)
	_, err := p.ParseFile(fs, path)
	if diag.ErrIO.Is(err) {
		return diag.ValidationResult{}, err
	}
	return toValidationResult(err), nil
}

func toValidationResult(err error) diag.ValidationResult {
	if err == nil {
		return diag.ValidOK()
	}
	if pe, ok := err.(*diag.ParseError); ok {
		return diag.Invalid(pe)
	}
	return diag.ValidationResult{Valid: false, Kind: "parse_error", Message: err.Error()}
}
