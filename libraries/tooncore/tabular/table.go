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

// Package tabular decodes the compact tabular array form into typed,
// same-length columns, incrementally inferring each column's type.
package tabular

// ColType is a column's inferred or forced type. Promotion is monotonic along
// Unknown -> Logical -> Integer -> Double -> String; a column never demotes.
type ColType int

const (
	UnknownType ColType = iota
	LogicalType
	IntegerType
	DoubleType
	StringType
)

func (t ColType) String() string {
	switch t {
	case LogicalType:
		return "logical"
	case IntegerType:
		return "integer"
	case DoubleType:
		return "double"
	case StringType:
		return "string"
	}
	return "unknown"
}

// Column is a typed vector with an NA mask. Only the buffer matching Type is
// populated; NA[i] true means position i holds no value.
type Column struct {
	Name string
	Type ColType

	Lgl []bool
	Int []int32
	Dbl []float64
	Str []string

	NA []bool
}

// Len returns the column length.
func (c *Column) Len() int {
	return len(c.NA)
}

// Table is an ordered set of same-length named columns.
type Table struct {
	Cols  []Column
	NRows int
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return t.NRows
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Cols)
}

// Names returns the column names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Cols))
	for i := range t.Cols {
		names[i] = t.Cols[i].Name
	}
	return names
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Cols {
		if t.Cols[i].Name == name {
			return &t.Cols[i]
		}
	}
	return nil
}

// Concat stacks the rows of tables, in order, into a new Table. Column sets
// are matched by name; columns missing from a table are padded with NA, and a
// narrower column type is promoted to the wider of the two.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		base := out.NRows
		for i := range t.Cols {
			src := &t.Cols[i]
			dst := out.Column(src.Name)
			if dst == nil {
				out.Cols = append(out.Cols, Column{Name: src.Name, Type: src.Type})
				dst = &out.Cols[len(out.Cols)-1]
				padColumn(dst, base)
			}
			appendColumn(dst, src)
		}
		out.NRows = base + t.NRows
		for i := range out.Cols {
			padColumn(&out.Cols[i], out.NRows)
		}
	}
	return out
}

func padColumn(c *Column, toLen int) {
	for c.Len() < toLen {
		c.NA = append(c.NA, true)
		switch c.Type {
		case IntegerType:
			c.Int = append(c.Int, 0)
		case DoubleType:
			c.Dbl = append(c.Dbl, 0)
		case StringType:
			c.Str = append(c.Str, "")
		default:
			c.Lgl = append(c.Lgl, false)
		}
	}
}

func appendColumn(dst *Column, src *Column) {
	if widerType(src.Type, dst.Type) != dst.Type {
		promoteColumn(dst, widerType(src.Type, dst.Type))
	}
	for i := 0; i < src.Len(); i++ {
		if src.NA[i] {
			padColumn(dst, dst.Len()+1)
			continue
		}
		dst.NA = append(dst.NA, false)
		switch dst.Type {
		case LogicalType:
			dst.Lgl = append(dst.Lgl, src.Lgl[i])
		case IntegerType:
			dst.Int = append(dst.Int, srcInt(src, i))
		case DoubleType:
			dst.Dbl = append(dst.Dbl, srcDouble(src, i))
		case StringType:
			dst.Str = append(dst.Str, srcString(src, i))
		}
	}
}

func widerType(a, b ColType) ColType {
	if a > b {
		return a
	}
	return b
}

func srcInt(c *Column, i int) int32 {
	switch c.Type {
	case LogicalType:
		if c.Lgl[i] {
			return 1
		}
		return 0
	default:
		return c.Int[i]
	}
}

func srcDouble(c *Column, i int) float64 {
	switch c.Type {
	case LogicalType:
		if c.Lgl[i] {
			return 1
		}
		return 0
	case IntegerType:
		return float64(c.Int[i])
	default:
		return c.Dbl[i]
	}
}

func srcString(c *Column, i int) string {
	switch c.Type {
	case LogicalType:
		if c.Lgl[i] {
			return "true"
		}
		return "false"
	case IntegerType:
		return formatInt(c.Int[i])
	case DoubleType:
		return formatDouble(c.Dbl[i])
	default:
		return c.Str[i]
	}
}

// promoteColumn widens a finalized column in place.
func promoteColumn(c *Column, to ColType) {
	if to == c.Type {
		return
	}
	n := c.Len()
	switch to {
	case IntegerType:
		c.Int = make([]int32, n)
		for i := 0; i < n; i++ {
			if !c.NA[i] {
				c.Int[i] = srcInt(c, i)
			}
		}
		c.Lgl = nil
	case DoubleType:
		dbl := make([]float64, n)
		for i := 0; i < n; i++ {
			if !c.NA[i] {
				dbl[i] = srcDouble(c, i)
			}
		}
		c.Dbl = dbl
		c.Lgl, c.Int = nil, nil
	case StringType:
		str := make([]string, n)
		for i := 0; i < n; i++ {
			if !c.NA[i] {
				str[i] = srcString(c, i)
			}
		}
		c.Str = str
		c.Lgl, c.Int, c.Dbl = nil, nil, nil
	}
	c.Type = to
}
