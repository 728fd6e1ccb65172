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

package toon

import (
	"github.com/toonlite/toonlite/libraries/tooncore/dom"
	"github.com/toonlite/toonlite/libraries/tooncore/encode"
	"github.com/toonlite/toonlite/libraries/tooncore/tabular"
)

// Simplify materializes a DOM tree as host values: scalars become Go
// scalars, homogeneous primitive arrays become typed columns with NA for
// nulls, other arrays become slices, and objects become ordered
// encode.Object mappings. The DOM itself is unchanged; this is a view.
func Simplify(n *dom.Node) interface{} {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case dom.NullKind:
		return nil
	case dom.BoolKind:
		return n.Bool
	case dom.IntKind:
		return int32(n.Int)
	case dom.DoubleKind:
		return n.Double
	case dom.StringKind:
		return n.Str

	case dom.ArrayKind:
		if col, ok := SimplifyArray(n); ok {
			return col
		}
		items := make([]interface{}, len(n.Items))
		for i, item := range n.Items {
			items[i] = Simplify(item)
		}
		return items

	case dom.ObjectKind:
		obj := make(encode.Object, len(n.Fields))
		for i, f := range n.Fields {
			obj[i] = encode.Field{Key: f.Key, Value: Simplify(f.Value)}
		}
		return obj
	}

	return nil
}

// SimplifyArray converts a homogeneous primitive array (nulls allowed) into
// a typed column, with NA at the null positions. ok is false when the array
// is heterogeneous, nested, or empty.
func SimplifyArray(n *dom.Node) (*tabular.Column, bool) {
	if n.Kind != dom.ArrayKind || len(n.Items) == 0 {
		return nil, false
	}

	elemKind := dom.NullKind
	for _, item := range n.Items {
		switch item.Kind {
		case dom.ArrayKind, dom.ObjectKind:
			return nil, false
		case dom.NullKind:
			continue
		}
		if elemKind == dom.NullKind {
			elemKind = item.Kind
		} else if item.Kind != elemKind {
			return nil, false
		}
	}

	count := len(n.Items)
	col := &tabular.Column{NA: make([]bool, count)}

	switch elemKind {
	case dom.NullKind, dom.BoolKind:
		col.Type = tabular.LogicalType
		col.Lgl = make([]bool, count)
		for i, item := range n.Items {
			if item.Kind == dom.NullKind {
				col.NA[i] = true
			} else {
				col.Lgl[i] = item.Bool
			}
		}
	case dom.IntKind:
		col.Type = tabular.IntegerType
		col.Int = make([]int32, count)
		for i, item := range n.Items {
			if item.Kind == dom.NullKind {
				col.NA[i] = true
			} else {
				col.Int[i] = int32(item.Int)
			}
		}
	case dom.DoubleKind:
		col.Type = tabular.DoubleType
		col.Dbl = make([]float64, count)
		for i, item := range n.Items {
			if item.Kind == dom.NullKind {
				col.NA[i] = true
			} else {
				col.Dbl[i] = item.Double
			}
		}
	case dom.StringKind:
		col.Type = tabular.StringType
		col.Str = make([]string, count)
		for i, item := range n.Items {
			if item.Kind == dom.NullKind {
				col.NA[i] = true
			} else {
				col.Str[i] = item.Str
			}
		}
	}

	return col, true
}
