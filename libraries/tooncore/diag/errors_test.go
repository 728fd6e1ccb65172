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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorFormatted(t *testing.T) {
	pe := &ParseError{
		Message: "Invalid tabular header",
		Line:    3,
		Column:  7,
		Snippet: "[x]{:",
		File:    "data.toon",
	}

	formatted := pe.Formatted()
	assert.Equal(t, "Invalid tabular header", pe.Error())
	assert.Contains(t, formatted, "File: data.toon")
	assert.Contains(t, formatted, "line 3, column 7")
	assert.Contains(t, formatted, "Snippet: [x]{:")
}

func TestParseErrorFormattedOmitsEmptyFields(t *testing.T) {
	pe := &ParseError{Message: "boom"}
	assert.Equal(t, "boom", pe.Formatted())

	pe = &ParseError{Message: "boom", Line: 2}
	assert.Equal(t, "boom\n  Location: line 2", pe.Formatted())
}

func TestSnippetTruncation(t *testing.T) {
	long := strings.Repeat("x", 100)
	snip := Snippet(long)
	assert.Len(t, snip, 60)
	assert.True(t, strings.HasSuffix(snip, "..."))

	assert.Equal(t, "short", Snippet("short"))
}

func TestErrorKinds(t *testing.T) {
	err := ErrIO.New("cannot open")
	assert.True(t, ErrIO.Is(err))
	assert.False(t, ErrCancelled.Is(err))

	assert.True(t, ErrCancelled.Is(ErrCancelled.New()))
}

func TestValidationResult(t *testing.T) {
	ok := ValidOK()
	assert.True(t, ok.Valid)

	bad := Invalid(&ParseError{Message: "m", Line: 4, File: "f"})
	assert.False(t, bad.Valid)
	assert.Equal(t, "parse_error", bad.Kind)
	assert.Equal(t, 4, bad.Line)
	assert.Equal(t, "f", bad.File)
}
