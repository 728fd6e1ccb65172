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
	"strconv"
	"strings"

	goerrors "gopkg.in/src-d/go-errors.v1"
)

// Error kinds for failures that carry no source location. ParseError covers
// everything that does.
var (
	ErrIO        = goerrors.NewKind("io: %s")
	ErrEncode    = goerrors.NewKind("encode: %s")
	ErrCancelled = goerrors.NewKind("operation cancelled")
)

const snippetMaxLen = 60

// ParseError is a syntactic or semantic decode failure with optional source
// location. Line and Column are 1-based; zero means unknown.
type ParseError struct {
	Message string
	Line    int
	Column  int
	Snippet string
	File    string
}

func NewParseError(msg string, line int) *ParseError {
	return &ParseError{Message: msg, Line: line}
}

func (pe *ParseError) Error() string {
	return pe.Message
}

// Formatted returns the message with file, location, and snippet interleaved
// on successive indented lines.
func (pe *ParseError) Formatted() string {
	var sb strings.Builder
	sb.WriteString(pe.Message)
	if pe.File != "" {
		sb.WriteString("\n  File: ")
		sb.WriteString(pe.File)
	}
	if pe.Line > 0 {
		sb.WriteString("\n  Location: line ")
		sb.WriteString(strconv.Itoa(pe.Line))
		if pe.Column > 0 {
			sb.WriteString(", column ")
			sb.WriteString(strconv.Itoa(pe.Column))
		}
	}
	if pe.Snippet != "" {
		sb.WriteString("\n  Snippet: ")
		sb.WriteString(pe.Snippet)
	}
	return sb.String()
}

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}

// Snippet truncates the offending line for inclusion in a ParseError.
func Snippet(line string) string {
	if len(line) > snippetMaxLen {
		return line[:snippetMaxLen-3] + "..."
	}
	return line
}
