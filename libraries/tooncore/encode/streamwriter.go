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

package encode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/tooncore/tabular"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
	"github.com/toonlite/toonlite/libraries/utils/iohelp"
)

// WriteBufSize is the size of the buffer used when writing tabular output.
var WriteBufSize = 256 * 1024

// WriteTable encodes a table and writes it to a file in one shot.
func WriteTable(fs filesys.WritableFS, path string, t *tabular.Table, opts Options) error {
	enc := NewEncoder(opts)
	text, err := enc.Encode(t)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(path, []byte(text)); err != nil {
		return diag.ErrIO.New(err.Error())
	}
	return nil
}

// StreamWriter writes a tabular block incrementally. The header goes out
// with a placeholder row count that Close rewrites to the actual count.
type StreamWriter struct {
	fs     filesys.ReadWriteFS
	path   string
	schema []string
	indent int
	enc    *Encoder

	closer io.Closer
	bWr    *bufio.Writer

	headerWritten bool
	rowsWritten   int
	closed        bool
}

// NewStreamWriter opens path for writing rows with the given column schema.
// indent is the number of spaces before each row.
func NewStreamWriter(fs filesys.ReadWriteFS, path string, schema []string, indent int) (*StreamWriter, error) {
	if len(schema) == 0 {
		return nil, diag.ErrEncode.New("stream writer needs at least one column")
	}
	if indent <= 0 {
		indent = 2
	}

	wc, err := fs.OpenForWrite(path)
	if err != nil {
		return nil, diag.ErrIO.New(err.Error())
	}

	return &StreamWriter{
		fs:     fs,
		path:   path,
		schema: schema,
		indent: indent,
		enc:    NewEncoder(Options{Pretty: true, Indent: indent, Strict: false}),
		closer: wc,
		bWr:    bufio.NewWriterSize(wc, WriteBufSize),
	}, nil
}

func (sw *StreamWriter) writeHeader() error {
	if sw.headerWritten {
		return nil
	}

	line := "[0]{" + strings.Join(sw.schema, ",") + "}:"
	if err := iohelp.WriteLine(sw.bWr, line); err != nil {
		return diag.ErrIO.New(err.Error())
	}

	sw.headerWritten = true
	return nil
}

// WriteBatch appends one row per table row. The batch must carry as many
// columns as the writer's schema.
func (sw *StreamWriter) WriteBatch(t *tabular.Table) error {
	if sw.closed {
		return diag.ErrIO.New("stream writer is closed")
	}
	if t.NumCols() != len(sw.schema) {
		return diag.ErrEncode.New(fmt.Sprintf("batch has %d columns, schema has %d", t.NumCols(), len(sw.schema)))
	}

	if err := sw.writeHeader(); err != nil {
		return err
	}

	var sb strings.Builder
	for r := 0; r < t.NumRows(); r++ {
		sb.Reset()
		for i := 0; i < sw.indent; i++ {
			sb.WriteByte(' ')
		}
		for c := range t.Cols {
			if c > 0 {
				sb.WriteString(", ")
			}
			tok, err := sw.enc.rowFieldToken(&t.Cols[c], r)
			if err != nil {
				return err
			}
			sb.WriteString(tok)
		}
		if err := iohelp.WriteLine(sw.bWr, sb.String()); err != nil {
			return diag.ErrIO.New(err.Error())
		}
		sw.rowsWritten++
	}

	return nil
}

// Close flushes, closes the file exactly once, and rewrites the placeholder
// row count with the actual count. Further calls are no-ops.
func (sw *StreamWriter) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true

	if err := sw.writeHeader(); err != nil {
		sw.closer.Close()
		return err
	}
	if err := sw.bWr.Flush(); err != nil {
		sw.closer.Close()
		return diag.ErrIO.New(err.Error())
	}
	if err := sw.closer.Close(); err != nil {
		return diag.ErrIO.New(err.Error())
	}

	return sw.rewriteCount()
}

// CloseQuiet closes on cleanup paths. It swallows I/O failures so implicit
// cleanup never masks an outer error.
func (sw *StreamWriter) CloseQuiet() {
	_ = sw.Close()
}

// rewriteCount splices the actual row count over the reserved [0]
// placeholder, shifting subsequent content when the count is wider.
func (sw *StreamWriter) rewriteCount() error {
	content, err := sw.fs.ReadFile(sw.path)
	if err != nil {
		return diag.ErrIO.New(pkgerrors.Wrap(err, "rewriting row count").Error())
	}

	placeholder := []byte("[0]")
	pos := bytes.Index(content, placeholder)
	if pos < 0 {
		return nil
	}

	count := []byte("[" + strconv.Itoa(sw.rowsWritten) + "]")
	patched := make([]byte, 0, len(content)+len(count)-len(placeholder))
	patched = append(patched, content[:pos]...)
	patched = append(patched, count...)
	patched = append(patched, content[pos+len(placeholder):]...)

	if err := sw.fs.WriteFile(sw.path, patched); err != nil {
		return diag.ErrIO.New(pkgerrors.Wrap(err, "rewriting row count").Error())
	}
	return nil
}
