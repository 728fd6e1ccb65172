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

// Package toon is the public surface of the TOON engine: reading, writing,
// validating, formatting, and streaming, with the parse/tabular/encode
// packages doing the work.
package toon

import (
	"context"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/tooncore/dom"
	"github.com/toonlite/toonlite/libraries/tooncore/encode"
	"github.com/toonlite/toonlite/libraries/tooncore/parse"
	"github.com/toonlite/toonlite/libraries/tooncore/tabular"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// Option records re-exported so callers need only this package.
type (
	ParseOptions   = parse.ParseOptions
	EncodeOptions  = encode.Options
	TabularOptions = tabular.Options
	StreamOptions  = tabular.StreamOptions
)

// FromText parses TOON text into a DOM node. Warnings accumulated during
// the parse are returned alongside.
func FromText(data []byte, opts ParseOptions) (*dom.Node, []diag.Warning, error) {
	p := parse.NewParser(opts)
	node, err := p.Parse(data)
	return node, p.Warnings(), err
}

// FromFile parses a TOON file into a DOM node.
func FromFile(fs filesys.ReadableFS, path string, opts ParseOptions) (*dom.Node, []diag.Warning, error) {
	p := parse.NewParser(opts)
	node, err := p.ParseFile(fs, path)
	return node, p.Warnings(), err
}

// ToText encodes a host value as TOON text.
func ToText(v interface{}, opts EncodeOptions) (string, error) {
	return encode.NewEncoder(opts).Encode(v)
}

// Validate checks TOON text; syntactic failures land in the result, never
// in an error.
func Validate(data []byte, opts ParseOptions) diag.ValidationResult {
	return parse.Validate(data, opts)
}

// ValidateFile checks a TOON file. The error is non-nil only for I/O
// failures.
func ValidateFile(fs filesys.ReadableFS, path string, opts ParseOptions) (diag.ValidationResult, error) {
	return parse.ValidateFile(fs, path, opts)
}

// ReadTable decodes the tabular block in a file into a Table.
func ReadTable(ctx context.Context, fs filesys.ReadableFS, path string, opts TabularOptions) (*tabular.Table, []diag.Warning, error) {
	return tabular.ReadTable(ctx, fs, path, opts)
}

// FromTextTable decodes the tabular block in a byte buffer into a Table.
func FromTextTable(ctx context.Context, data []byte, opts TabularOptions) (*tabular.Table, []diag.Warning, error) {
	return tabular.FromText(ctx, data, opts)
}

// WriteTable encodes a table to a file.
func WriteTable(fs filesys.WritableFS, path string, t *tabular.Table, opts EncodeOptions) error {
	return encode.WriteTable(fs, path, t, opts)
}

// StreamRows emits fixed-size row batches from a file's tabular block to
// consumer.
func StreamRows(ctx context.Context, fs filesys.ReadableFS, path string, opts StreamOptions, consumer tabular.Consumer) ([]diag.Warning, error) {
	return tabular.StreamRows(ctx, fs, path, opts, consumer)
}

// NewStreamWriter opens an incremental tabular writer; see
// encode.StreamWriter.
func NewStreamWriter(fs filesys.ReadWriteFS, path string, schema []string, indent int) (*encode.StreamWriter, error) {
	return encode.NewStreamWriter(fs, path, schema, indent)
}

// FormatText reparses TOON text and re-emits it deterministically. Only
// meaning is preserved, not the source layout.
func FormatText(data []byte, indent int, canonical, allowComments bool) (string, error) {
	popts := parse.DefaultParseOptions()
	popts.Simplify = false
	popts.AllowComments = allowComments

	node, _, err := FromText(data, popts)
	if err != nil {
		return "", err
	}
	return formatNode(node, indent, canonical)
}

// FormatFile is FormatText over a file.
func FormatFile(fs filesys.ReadableFS, path string, indent int, canonical, allowComments bool) (string, error) {
	popts := parse.DefaultParseOptions()
	popts.Simplify = false
	popts.AllowComments = allowComments

	node, _, err := FromFile(fs, path, popts)
	if err != nil {
		return "", err
	}
	return formatNode(node, indent, canonical)
}

func formatNode(node *dom.Node, indent int, canonical bool) (string, error) {
	eopts := encode.DefaultOptions()
	eopts.Indent = indent
	eopts.Canonical = canonical
	return encode.NewEncoder(eopts).Encode(node)
}
