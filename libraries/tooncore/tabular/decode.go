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

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/tooncore/parse"
)

// interruptCheckInterval is how many input lines pass between cancellation
// polls.
const interruptCheckInterval = 10000

// builderCapacity is the initial per-column row capacity when the header
// declares no count.
const builderCapacity = 1000

// decoder is the shared front half of the tabular reader and the row
// streamer: it seeks the header, splits rows, drives the column builders,
// and tracks the anomalies that become end-of-call warnings.
type decoder struct {
	opts Options
	file string
	rd   *parse.LineReader

	fieldNames   []string
	builders     []*ColBuilder
	declaredRows int
	headerIndent int

	observedRows     int
	batchRows        int
	minFields        int
	maxFields        int
	schemaExpansions int

	warnings []diag.Warning
}

func newDecoder(opts Options, file string, r io.Reader) *decoder {
	return &decoder{
		opts:      opts,
		file:      file,
		rd:        parse.NewLineReader(r),
		minFields: math.MaxInt,
	}
}

func (d *decoder) parseError(msg string, line int, snippet string) error {
	return &diag.ParseError{Message: msg, Line: line, Snippet: snippet, File: d.file}
}

// rowIndent counts leading whitespace, failing on tabs in strict mode.
func (d *decoder) rowIndent(line []byte, lineNo int) (int, error) {
	indent := 0
	for _, b := range line {
		if b == ' ' {
			indent++
		} else if b == '\t' {
			if d.opts.Strict {
				return 0, d.parseError("Tab characters not allowed in indentation", lineNo, diag.Snippet(string(line)))
			}
			indent++
		} else {
			break
		}
	}
	return indent, nil
}

func (d *decoder) skippable(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	return d.opts.AllowComments && parse.IsCommentContent(content)
}

// findHeader seeks and parses the tabular header, creating one column
// builder per field. When a key is requested the scan looks for that key's
// inline header first.
func (d *decoder) findHeader() error {
	if d.opts.Key != "" {
		found := false
		for {
			line, lineNo, err := d.rd.NextLine()
			if err == io.EOF {
				break
			}
			if err != nil {
				return diag.ErrIO.New(err.Error())
			}

			trimmed := bytes.TrimSpace(line)
			if d.skippable(trimmed) {
				continue
			}
			if line[0] == ' ' || line[0] == '\t' {
				// Only top-level keys are candidates.
				continue
			}

			colon := bytes.IndexByte(trimmed, ':')
			if colon < 0 {
				continue
			}
			if string(bytes.TrimSpace(trimmed[:colon])) != d.opts.Key {
				continue
			}

			found = true
			value := bytes.TrimSpace(trimmed[colon+1:])
			if len(value) > 0 && value[0] == '[' {
				indent, ierr := d.rowIndent(line, lineNo)
				if ierr != nil {
					return ierr
				}
				return d.parseHeader(value, lineNo, indent)
			}
			// The header follows on a later line; fall through to the scan.
			break
		}

		if !found {
			return d.parseError("Key not found: "+d.opts.Key, 0, "")
		}
	}

	for {
		line, lineNo, err := d.rd.NextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return diag.ErrIO.New(err.Error())
		}

		trimmed := bytes.TrimSpace(line)
		if d.skippable(trimmed) {
			continue
		}

		if trimmed[0] == '[' && bytes.IndexByte(trimmed, '{') >= 0 && bytes.IndexByte(trimmed, '}') >= 0 {
			indent, ierr := d.rowIndent(line, lineNo)
			if ierr != nil {
				return ierr
			}
			return d.parseHeader(trimmed, lineNo, indent)
		}
	}

	return d.parseError("No tabular array found", 0, "")
}

func (d *decoder) parseHeader(text []byte, lineNo, indent int) error {
	header := parse.ParseArrayHeader(text)
	if !header.IsTabular || len(header.Fields) == 0 {
		return d.parseError("Invalid tabular header", lineNo, diag.Snippet(string(text)))
	}

	d.declaredRows = header.DeclaredCount
	d.fieldNames = header.Fields
	d.headerIndent = indent

	capacity := builderCapacity
	if d.declaredRows > capacity {
		capacity = d.declaredRows
	}

	d.builders = make([]*ColBuilder, len(d.fieldNames))
	for i, name := range d.fieldNames {
		d.builders[i] = NewColBuilder(name, capacity)
		if t, ok := d.opts.ColTypes[name]; ok {
			d.builders[i].ForceType(t)
		}
	}
	return nil
}

// decodeRows reads the tabular block. When batchSize > 0 it flushes a batch
// table to flush every batchSize rows and resets the builders; a partial
// trailing batch is always flushed.
func (d *decoder) decodeRows(ctx context.Context, batchSize int, flush func(*Table) error) error {
	linesSinceCheck := 0

	for {
		line, lineNo, err := d.rd.NextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return diag.ErrIO.New(err.Error())
		}

		linesSinceCheck++
		if linesSinceCheck >= interruptCheckInterval {
			linesSinceCheck = 0
			if ctx != nil && ctx.Err() != nil {
				return diag.ErrCancelled.New()
			}
		}

		indent, ierr := d.rowIndent(line, lineNo)
		if ierr != nil {
			return ierr
		}

		content := bytes.TrimSpace(line[indent:])
		if d.skippable(content) {
			continue
		}

		if indent <= d.headerIndent {
			// Dedent: the block is over.
			break
		}

		if d.opts.AllowComments {
			content = parse.StripTrailingComment(content)
		}

		if err := d.addRow(content, lineNo); err != nil {
			return err
		}

		if batchSize > 0 && d.batchRows >= batchSize {
			if err := flush(d.finalizeBatch()); err != nil {
				return err
			}
		}
	}

	if batchSize > 0 && d.batchRows > 0 {
		if err := flush(d.finalizeBatch()); err != nil {
			return err
		}
	}

	return nil
}

// addRow splits one row and writes its fields, applying the ragged-row
// policy when the field count differs from the current schema.
func (d *decoder) addRow(content []byte, lineNo int) error {
	fields := parse.SplitRow(content, ',')
	n := len(fields)

	if n < d.minFields {
		d.minFields = n
	}
	if n > d.maxFields {
		d.maxFields = n
	}

	if n != len(d.builders) {
		if d.opts.RaggedRows == RaggedError {
			return d.parseError(
				fmt.Sprintf("Row has %d fields but expected %d", n, len(d.builders)),
				lineNo, diag.Snippet(string(content)))
		}

		if n > len(d.builders) {
			extra := n - len(d.builders)
			if d.schemaExpansions+extra > d.opts.MaxExtraCols {
				return d.parseError("max_extra_cols exceeded", lineNo, "")
			}

			for i := len(d.builders); i < n; i++ {
				name := "V" + strconv.Itoa(i+1)
				nb := NewColBuilder(name, builderCapacity)
				for r := 0; r < d.batchRows; r++ {
					nb.SetNull(r)
				}
				d.builders = append(d.builders, nb)
				d.fieldNames = append(d.fieldNames, name)
			}
			d.schemaExpansions += extra
		}
	}

	row := d.batchRows
	for i, b := range d.builders {
		if i < n {
			b.Set(row, fields[i])
		} else {
			b.SetNull(row)
		}
	}

	d.batchRows++
	d.observedRows++
	return nil
}

// finalizeBatch materializes the current rows as a Table and resets the
// builders, keeping names and types stable for the next batch.
func (d *decoder) finalizeBatch() *Table {
	t := &Table{NRows: d.batchRows}
	t.Cols = make([]Column, len(d.builders))
	for i, b := range d.builders {
		b.extendTo(d.batchRows)
		t.Cols[i] = b.Finalize()
		d.builders[i] = b.cloneEmpty()
	}
	d.batchRows = 0
	return t
}

// cloneEmpty returns a fresh builder carrying over the name, inferred or
// forced type, and the forced-miss count.
func (b *ColBuilder) cloneEmpty() *ColBuilder {
	nb := NewColBuilder(b.name, cap(b.na))
	nb.typ = b.typ
	nb.forced = b.forced
	nb.forcedMisses = b.forcedMisses
	return nb
}

// finish applies the end-of-block policies and emits the aggregate warnings.
func (d *decoder) finish() error {
	if d.declaredRows > 0 && d.observedRows != d.declaredRows {
		if d.opts.NMismatch == MismatchError {
			return d.parseError(
				fmt.Sprintf("Declared [%d] but observed %d rows", d.declaredRows, d.observedRows), 0, "")
		}
		if d.opts.Warn {
			d.warnings = append(d.warnings, diag.Warning{
				Category: diag.WarnNMismatch,
				Message: fmt.Sprintf("Declared [%d] but observed %d rows; using observed.",
					d.declaredRows, d.observedRows),
			})
		}
	}

	if d.observedRows > 0 && d.minFields != d.maxFields && d.opts.Warn {
		msg := fmt.Sprintf("Tabular rows had inconsistent field counts (min=%d, max=%d).",
			d.minFields, d.maxFields)
		if d.schemaExpansions > 0 {
			msg += fmt.Sprintf(" Schema expanded to %d columns;", len(d.builders))
		}
		msg += " missing values filled with NA."
		d.warnings = append(d.warnings, diag.Warning{Category: diag.WarnRaggedRows, Message: msg})
	}

	if d.opts.Warn {
		msg := ""
		for _, b := range d.builders {
			if b.ForcedMisses() > 0 {
				if msg != "" {
					msg += "; "
				}
				msg += fmt.Sprintf("column '%s': %d values could not be coerced to %s",
					b.Name(), b.ForcedMisses(), b.Type())
			}
		}
		if msg != "" {
			d.warnings = append(d.warnings, diag.Warning{Category: diag.WarnForceType, Message: msg + "; written as NA."})
		}
	}

	return nil
}
