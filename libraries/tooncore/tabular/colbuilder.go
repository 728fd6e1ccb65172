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

	"github.com/toonlite/toonlite/libraries/tooncore/parse"
)

// tokenClass is the primitive classification of one row field.
type tokenClass int

const (
	tokenNull tokenClass = iota
	tokenBool
	tokenInt
	tokenDouble
	tokenString
)

// ColBuilder accumulates row values for one column while inferring and
// promoting its type. Promotion preserves values and NA positions for all
// earlier rows.
type ColBuilder struct {
	name   string
	typ    ColType
	forced bool

	lgl  []bool
	ints []int32
	dbl  []float64
	str  []string
	na   []bool

	// forcedMisses counts tokens that could not be coerced to a forced type
	// and were written as NA.
	forcedMisses int
}

// NewColBuilder creates a builder for one named column.
func NewColBuilder(name string, capacity int) *ColBuilder {
	return &ColBuilder{
		name: name,
		na:   make([]bool, 0, capacity),
	}
}

func (b *ColBuilder) Name() string {
	return b.name
}

func (b *ColBuilder) Type() ColType {
	return b.typ
}

func (b *ColBuilder) Len() int {
	return len(b.na)
}

// ForcedMisses returns how many values were dropped to NA under a forced
// type.
func (b *ColBuilder) ForcedMisses() int {
	return b.forcedMisses
}

// ForceType pins the column type. Later tokens that cannot be coerced are
// written as NA and counted. A pin narrower than what is already inferred
// keeps the inferred type; a column never demotes.
func (b *ColBuilder) ForceType(t ColType) {
	b.promoteTo(widerType(b.typ, t))
	b.forced = true
}

// Reset clears the accumulated rows but keeps the name and the inferred or
// forced type, so a streaming decode keeps stable column types across
// batches.
func (b *ColBuilder) Reset() {
	b.lgl = b.lgl[:0]
	b.ints = b.ints[:0]
	b.dbl = b.dbl[:0]
	b.str = b.str[:0]
	b.na = b.na[:0]
}

// SetNull records NA at row, extending the column if needed.
func (b *ColBuilder) SetNull(row int) {
	b.extendTo(row + 1)
	b.na[row] = true
	b.clearAt(row)
}

// Set trims and classifies token, promotes the column if needed, and writes
// the value at row. Gaps below row are filled with NA.
func (b *ColBuilder) Set(row int, token []byte) {
	token = bytes.TrimSpace(token)

	class, lv, iv, dv, sv := classifyToken(token)
	if class == tokenNull {
		b.SetNull(row)
		return
	}

	if b.forced {
		b.setForced(row, class, lv, iv, dv, sv, token)
		return
	}

	switch class {
	case tokenBool:
		switch b.typ {
		case UnknownType:
			b.typ = LogicalType
			b.storeLogical(row, lv)
		case LogicalType:
			b.storeLogical(row, lv)
		case IntegerType:
			b.storeInteger(row, boolToInt(lv))
		case DoubleType:
			b.storeDouble(row, float64(boolToInt(lv)))
		case StringType:
			b.storeString(row, boolToString(lv))
		}

	case tokenInt:
		switch b.typ {
		case UnknownType:
			b.promoteTo(IntegerType)
			b.storeInteger(row, iv)
		case LogicalType:
			b.promoteTo(IntegerType)
			b.storeInteger(row, iv)
		case IntegerType:
			b.storeInteger(row, iv)
		case DoubleType:
			b.storeDouble(row, float64(iv))
		case StringType:
			b.storeString(row, string(token))
		}

	case tokenDouble:
		switch b.typ {
		case UnknownType, LogicalType, IntegerType:
			b.promoteTo(DoubleType)
			b.storeDouble(row, dv)
		case DoubleType:
			b.storeDouble(row, dv)
		case StringType:
			b.storeString(row, string(token))
		}

	case tokenString:
		b.promoteTo(StringType)
		b.storeString(row, sv)
	}
}

// setForced writes a token under a pinned type, degrading to NA when the
// token cannot be coerced.
func (b *ColBuilder) setForced(row int, class tokenClass, lv bool, iv int32, dv float64, sv string, token []byte) {
	switch b.typ {
	case LogicalType:
		if class == tokenBool {
			b.storeLogical(row, lv)
			return
		}
	case IntegerType:
		switch class {
		case tokenBool:
			b.storeInteger(row, boolToInt(lv))
			return
		case tokenInt:
			b.storeInteger(row, iv)
			return
		}
	case DoubleType:
		switch class {
		case tokenBool:
			b.storeDouble(row, float64(boolToInt(lv)))
			return
		case tokenInt:
			b.storeDouble(row, float64(iv))
			return
		case tokenDouble:
			b.storeDouble(row, dv)
			return
		}
	case StringType:
		switch class {
		case tokenString:
			b.storeString(row, sv)
		default:
			b.storeString(row, string(token))
		}
		return
	}

	b.forcedMisses++
	b.SetNull(row)
}

// Finalize materializes the typed column vector. A still-unknown column
// defaults to logical.
func (b *ColBuilder) Finalize() Column {
	typ := b.typ
	if typ == UnknownType {
		typ = LogicalType
	}

	col := Column{Name: b.name, Type: typ, NA: b.na}
	switch typ {
	case LogicalType:
		col.Lgl = b.lgl
		if col.Lgl == nil {
			col.Lgl = make([]bool, len(b.na))
		}
	case IntegerType:
		col.Int = b.ints
	case DoubleType:
		col.Dbl = b.dbl
	case StringType:
		col.Str = b.str
	}
	return col
}

// classifyToken applies the shared primitive rules to one field token.
func classifyToken(token []byte) (class tokenClass, lv bool, iv int32, dv float64, sv string) {
	if len(token) == 0 || bytes.Equal(token, litNull) {
		return tokenNull, false, 0, 0, ""
	}
	if bytes.Equal(token, litTrue) {
		return tokenBool, true, 0, 0, ""
	}
	if bytes.Equal(token, litFalse) {
		return tokenBool, false, 0, 0, ""
	}

	if token[0] == '"' {
		if s, ok := parse.UnquoteString(token, false); ok {
			return tokenString, false, 0, 0, s
		}
		return tokenString, false, 0, 0, string(token)
	}

	if v, ok := parse.ParseIntToken(token); ok {
		return tokenInt, false, int32(v), 0, ""
	}
	if v, ok := parse.ParseDoubleToken(token, false); ok {
		return tokenDouble, false, 0, v, ""
	}

	return tokenString, false, 0, 0, string(token)
}

var (
	litNull  = []byte("null")
	litTrue  = []byte("true")
	litFalse = []byte("false")
)

func boolToInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

func boolToString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// extendTo grows every live buffer to n entries, filling the gap with NA.
func (b *ColBuilder) extendTo(n int) {
	for len(b.na) < n {
		b.na = append(b.na, true)
		switch b.typ {
		case IntegerType:
			b.ints = append(b.ints, 0)
		case DoubleType:
			b.dbl = append(b.dbl, 0)
		case StringType:
			b.str = append(b.str, "")
		default:
			b.lgl = append(b.lgl, false)
		}
	}
}

func (b *ColBuilder) clearAt(row int) {
	switch b.typ {
	case IntegerType:
		b.ints[row] = 0
	case DoubleType:
		b.dbl[row] = 0
	case StringType:
		b.str[row] = ""
	default:
		b.lgl[row] = false
	}
}

func (b *ColBuilder) storeLogical(row int, v bool) {
	b.extendTo(row + 1)
	b.lgl[row] = v
	b.na[row] = false
}

func (b *ColBuilder) storeInteger(row int, v int32) {
	b.extendTo(row + 1)
	b.ints[row] = v
	b.na[row] = false
}

func (b *ColBuilder) storeDouble(row int, v float64) {
	b.extendTo(row + 1)
	b.dbl[row] = v
	b.na[row] = false
}

func (b *ColBuilder) storeString(row int, v string) {
	b.extendTo(row + 1)
	b.str[row] = v
	b.na[row] = false
}

// promoteTo widens the builder's buffers, converting earlier values and
// preserving NA positions bit for bit.
func (b *ColBuilder) promoteTo(newType ColType) {
	if newType == b.typ || widerType(b.typ, newType) != newType {
		b.typ = widerType(b.typ, newType)
		return
	}

	n := len(b.na)
	switch newType {
	case LogicalType:
		if b.lgl == nil {
			b.lgl = make([]bool, n)
		}

	case IntegerType:
		ints := make([]int32, n)
		for i := 0; i < n; i++ {
			if !b.na[i] && b.typ == LogicalType {
				ints[i] = boolToInt(b.lgl[i])
			}
		}
		b.ints = ints
		b.lgl = nil

	case DoubleType:
		dbl := make([]float64, n)
		for i := 0; i < n; i++ {
			if b.na[i] {
				continue
			}
			switch b.typ {
			case LogicalType:
				dbl[i] = float64(boolToInt(b.lgl[i]))
			case IntegerType:
				dbl[i] = float64(b.ints[i])
			}
		}
		b.dbl = dbl
		b.lgl, b.ints = nil, nil

	case StringType:
		str := make([]string, n)
		for i := 0; i < n; i++ {
			if b.na[i] {
				continue
			}
			switch b.typ {
			case LogicalType:
				str[i] = boolToString(b.lgl[i])
			case IntegerType:
				str[i] = formatInt(b.ints[i])
			case DoubleType:
				str[i] = formatDouble(b.dbl[i])
			}
		}
		b.str = str
		b.lgl, b.ints, b.dbl = nil, nil, nil
	}

	b.typ = newType
}
