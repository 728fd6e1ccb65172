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

// Package encode walks host values and emits indented TOON, including the
// compact tabular form for tables. Output is deterministic for a given
// input and options.
package encode

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/tooncore/dom"
	"github.com/toonlite/toonlite/libraries/tooncore/tabular"
)

// Options control the encoder's output shape.
type Options struct {
	// Pretty selects the indented multi-line form. Indentation is semantic
	// in TOON, so the compact form still breaks lines; it just narrows each
	// indent level to a single space.
	Pretty bool
	// Indent is the number of spaces per level in pretty mode.
	Indent int
	// Strict rejects NaN and the infinities instead of writing null.
	Strict bool
	// Canonical reorders object keys lexicographically; insertion order
	// otherwise.
	Canonical bool
}

// DefaultOptions returns the encoder defaults: pretty, two-space indent,
// strict.
func DefaultOptions() Options {
	return Options{Pretty: true, Indent: 2, Strict: true}
}

// Encoder emits TOON text for host values.
type Encoder struct {
	opts   Options
	indent int
	buf    bytes.Buffer
}

// NewEncoder creates an Encoder with the given options.
func NewEncoder(opts Options) *Encoder {
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	if !opts.Pretty {
		indent = 1
	}
	return &Encoder{opts: opts, indent: indent}
}

// Encode renders v as TOON text. Scalars render as a bare token; compound
// values render as newline-terminated lines.
func (e *Encoder) Encode(v interface{}) (string, error) {
	e.buf.Reset()

	tok, scalar, err := e.scalarToken(v)
	if err != nil {
		return "", err
	}
	if scalar {
		return tok, nil
	}

	if err := e.writeBlock(v, 0); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

func (e *Encoder) writeIndent(depth int) {
	for i := 0; i < depth*e.indent; i++ {
		e.buf.WriteByte(' ')
	}
}

// scalarToken renders v inline when it has a single-token form. Length-one
// homogeneous vectors collapse to their element, matching how column hosts
// treat them.
func (e *Encoder) scalarToken(v interface{}) (string, bool, error) {
	switch tv := v.(type) {
	case nil:
		return "null", true, nil
	case bool:
		return boolToken(tv), true, nil
	case int:
		return strconv.FormatInt(int64(tv), 10), true, nil
	case int32:
		return strconv.FormatInt(int64(tv), 10), true, nil
	case int64:
		return strconv.FormatInt(tv, 10), true, nil
	case float32:
		return e.doubleToken(float64(tv))
	case float64:
		return e.doubleToken(tv)
	case string:
		return quoteEscape(tv), true, nil
	case Date:
		return dateToken(tv), true, nil
	case time.Time:
		return datetimeToken(tv), true, nil

	case Factor:
		if len(tv.Codes) == 1 {
			return factorToken(tv, 0), true, nil
		}
		return "", false, nil

	case tabular.Column:
		return e.scalarToken(&tv)
	case *tabular.Column:
		if tv.Len() == 1 {
			return e.columnToken(tv, 0)
		}
		return "", false, nil

	case []bool:
		if len(tv) == 1 {
			return boolToken(tv[0]), true, nil
		}
	case []int:
		if len(tv) == 1 {
			return strconv.FormatInt(int64(tv[0]), 10), true, nil
		}
	case []int32:
		if len(tv) == 1 {
			return strconv.FormatInt(int64(tv[0]), 10), true, nil
		}
	case []int64:
		if len(tv) == 1 {
			return strconv.FormatInt(tv[0], 10), true, nil
		}
	case []float64:
		if len(tv) == 1 {
			return e.doubleToken(tv[0])
		}
	case []string:
		if len(tv) == 1 {
			return quoteEscape(tv[0]), true, nil
		}
	case []Date:
		if len(tv) == 1 {
			return dateToken(tv[0]), true, nil
		}
	case []time.Time:
		if len(tv) == 1 {
			return datetimeToken(tv[0]), true, nil
		}

	case *dom.Node:
		if tv == nil {
			return "null", true, nil
		}
		switch tv.Kind {
		case dom.NullKind:
			return "null", true, nil
		case dom.BoolKind:
			return boolToken(tv.Bool), true, nil
		case dom.IntKind:
			return strconv.FormatInt(tv.Int, 10), true, nil
		case dom.DoubleKind:
			return e.doubleToken(tv.Double)
		case dom.StringKind:
			return quoteEscape(tv.Str), true, nil
		}
	}

	return "", false, nil
}

// writeBlock renders a compound value as complete lines starting at depth.
func (e *Encoder) writeBlock(v interface{}, depth int) error {
	switch tv := v.(type) {
	case *dom.Node:
		switch tv.Kind {
		case dom.ArrayKind:
			return e.writeSeqBlock(len(tv.Items), func(i int) interface{} { return tv.Items[i] }, depth)
		case dom.ObjectKind:
			fields := make([]Field, len(tv.Fields))
			for i, f := range tv.Fields {
				fields[i] = Field{Key: f.Key, Value: f.Value}
			}
			return e.writeObjectBlock(fields, depth)
		}

	case Object:
		return e.writeObjectBlock(tv, depth)

	case *tabular.Table:
		return e.writeTableBlock(tv, depth)

	case tabular.Column:
		return e.writeBlock(&tv, depth)
	case *tabular.Column:
		return e.writeSeqBlock(tv.Len(), func(i int) interface{} { return columnValue(tv, i) }, depth)

	case Factor:
		return e.writeSeqBlock(len(tv.Codes), func(i int) interface{} {
			if s, ok := factorLevel(tv, i); ok {
				return s
			}
			return nil
		}, depth)

	case []interface{}:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []bool:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []int:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []int32:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []int64:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []float64:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []string:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []Date:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	case []time.Time:
		return e.writeSeqBlock(len(tv), func(i int) interface{} { return tv[i] }, depth)
	}

	return diag.ErrEncode.New(fmt.Sprintf("unsupported value of type %T", v))
}

// writeSeqBlock writes an [N]: header and one "- " line per element.
func (e *Encoder) writeSeqBlock(n int, get func(int) interface{}, depth int) error {
	e.writeIndent(depth)
	e.buf.WriteByte('[')
	e.buf.WriteString(strconv.Itoa(n))
	e.buf.WriteString("]:\n")

	for i := 0; i < n; i++ {
		item := get(i)

		tok, scalar, err := e.scalarToken(item)
		if err != nil {
			return err
		}

		e.writeIndent(depth + 1)
		e.buf.WriteString("- ")
		if scalar {
			e.buf.WriteString(tok)
			e.buf.WriteByte('\n')
			continue
		}

		e.buf.WriteByte('\n')
		if err := e.writeBlock(item, depth+2); err != nil {
			return err
		}
	}
	return nil
}

// writeObjectBlock writes key: value lines; compound values nest one level
// deeper under a bare key.
func (e *Encoder) writeObjectBlock(fields []Field, depth int) error {
	if e.opts.Canonical {
		sorted := make([]Field, len(fields))
		copy(sorted, fields)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		fields = sorted
	}

	for _, f := range fields {
		tok, scalar, err := e.scalarToken(f.Value)
		if err != nil {
			return err
		}

		e.writeIndent(depth)
		e.buf.WriteString(keyToken(f.Key))
		e.buf.WriteByte(':')

		if scalar {
			e.buf.WriteByte(' ')
			e.buf.WriteString(tok)
			e.buf.WriteByte('\n')
			continue
		}

		e.buf.WriteByte('\n')
		if err := e.writeBlock(f.Value, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// writeTableBlock writes the compact tabular form: [N]{fields}: then one
// comma-separated row per line.
func (e *Encoder) writeTableBlock(t *tabular.Table, depth int) error {
	e.writeIndent(depth)
	e.buf.WriteByte('[')
	e.buf.WriteString(strconv.Itoa(t.NumRows()))
	e.buf.WriteString("]{")
	for i := range t.Cols {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteString(t.Cols[i].Name)
	}
	e.buf.WriteString("}:\n")

	for r := 0; r < t.NumRows(); r++ {
		e.writeIndent(depth + 1)
		for c := range t.Cols {
			if c > 0 {
				e.buf.WriteString(", ")
			}
			tok, err := e.rowFieldToken(&t.Cols[c], r)
			if err != nil {
				return err
			}
			e.buf.WriteString(tok)
		}
		e.buf.WriteByte('\n')
	}
	return nil
}

// rowFieldToken renders one cell of a tabular row.
func (e *Encoder) rowFieldToken(col *tabular.Column, i int) (string, error) {
	if i >= col.Len() || col.NA[i] {
		return "null", nil
	}

	switch col.Type {
	case tabular.LogicalType:
		return boolToken(col.Lgl[i]), nil
	case tabular.IntegerType:
		return strconv.FormatInt(int64(col.Int[i]), 10), nil
	case tabular.DoubleType:
		tok, _, err := e.doubleToken(col.Dbl[i])
		return tok, err
	case tabular.StringType:
		return quoteEscape(col.Str[i]), nil
	}
	return "null", nil
}

// columnToken renders a length-one column as its scalar element.
func (e *Encoder) columnToken(col *tabular.Column, i int) (string, bool, error) {
	tok, err := e.rowFieldToken(col, i)
	return tok, true, err
}

func columnValue(col *tabular.Column, i int) interface{} {
	if col.NA[i] {
		return nil
	}
	switch col.Type {
	case tabular.LogicalType:
		return col.Lgl[i]
	case tabular.IntegerType:
		return col.Int[i]
	case tabular.DoubleType:
		return col.Dbl[i]
	case tabular.StringType:
		return col.Str[i]
	}
	return nil
}

func factorLevel(f Factor, i int) (string, bool) {
	if f.NA != nil && f.NA[i] {
		return "", false
	}
	code := int(f.Codes[i])
	if code < 1 || code > len(f.Levels) {
		return "", false
	}
	return f.Levels[code-1], true
}

func factorToken(f Factor, i int) string {
	if s, ok := factorLevel(f, i); ok {
		return quoteEscape(s)
	}
	return "null"
}

func boolToken(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// doubleToken renders the shortest decimal that round-trips, keeping a '.'
// or exponent so the token reads back as a double. NaN and the infinities
// error in strict mode and render as null otherwise.
func (e *Encoder) doubleToken(v float64) (string, bool, error) {
	if math.IsNaN(v) {
		if e.opts.Strict {
			return "", true, diag.ErrEncode.New("NaN values not allowed in strict mode")
		}
		return "null", true, nil
	}
	if math.IsInf(v, 0) {
		if e.opts.Strict {
			return "", true, diag.ErrEncode.New("Inf/-Inf values not allowed in strict mode")
		}
		return "null", true, nil
	}

	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, true, nil
}

// keyToken quotes a key iff it is empty or contains ':', whitespace, or '"'.
func keyToken(key string) string {
	if key == "" || strings.ContainsAny(key, ": \t\n\r\v\f\"") {
		return quoteEscape(key)
	}
	return key
}

// quoteEscape writes a double-quoted string, escaping the TOON escapes and
// rendering other control characters as \uXXXX.
func quoteEscape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if b < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Civil date range encodable as "YYYY-MM-DD"; out-of-range dates render as
// null.
const (
	minCivilDays = -719528
	maxCivilDays = 2932896
)

// dateToken renders days-since-epoch as a quoted ISO date using the
// civil-from-days algorithm.
func dateToken(d Date) string {
	days := int64(d)
	if days < minCivilDays || days > maxCivilDays {
		return "null"
	}

	y, m, day := civilFromDays(days)
	return fmt.Sprintf("\"%04d-%02d-%02d\"", y, m, day)
}

// civilFromDays converts days since 1970-01-01 to a proleptic Gregorian
// calendar date.
func civilFromDays(z int64) (y int64, m int, d int) {
	z += 719468
	era := z
	if z < 0 {
		era = z - 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y = yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		m = int(mp + 3)
	} else {
		m = int(mp - 9)
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}

// datetimeToken renders a timestamp as a quoted UTC ISO datetime; years
// outside 0-9999 render as null.
func datetimeToken(t time.Time) string {
	u := t.UTC()
	if u.Year() < 0 || u.Year() > 9999 {
		return "null"
	}
	return `"` + u.Format("2006-01-02T15:04:05Z") + `"`
}
