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
	"time"

	"github.com/toonlite/toonlite/libraries/tooncore/dom"
	"github.com/toonlite/toonlite/libraries/tooncore/tabular"
)

// Kind is the encoder's view of a host value. Classify is the single entry
// point a host must satisfy; everything else the encoder needs is reached
// through the concrete types below.
type Kind int

const (
	NullVal Kind = iota
	BoolVal
	IntVal
	DoubleVal
	StringVal
	SequenceVal
	MappingVal
	TableVal
	DateVal
	DatetimeVal
	FactorVal
	OtherVal
)

// Date is a civil day as days since 1970-01-01.
type Date int64

// Factor is an integer-coded categorical vector: 1-based codes into Levels.
// NA is optional; a nil mask means no missing values.
type Factor struct {
	Codes  []int32
	Levels []string
	NA     []bool
}

// Field is one ordered entry of an Object.
type Field struct {
	Key   string
	Value interface{}
}

// Object is an ordered mapping literal for hosts without ordered maps.
type Object []Field

// Classify maps a host value onto the encoder's kind lattice.
func Classify(v interface{}) Kind {
	switch tv := v.(type) {
	case nil:
		return NullVal
	case bool:
		return BoolVal
	case int, int32, int64:
		return IntVal
	case float64, float32:
		return DoubleVal
	case string:
		return StringVal
	case Date:
		return DateVal
	case time.Time:
		return DatetimeVal
	case Factor:
		return FactorVal
	case Object:
		return MappingVal
	case *tabular.Table:
		return TableVal
	case tabular.Column, *tabular.Column:
		return SequenceVal
	case []interface{}, []bool, []int, []int32, []int64, []float64, []string, []Date, []time.Time:
		return SequenceVal
	case *dom.Node:
		if tv == nil {
			return NullVal
		}
		switch tv.Kind {
		case dom.NullKind:
			return NullVal
		case dom.BoolKind:
			return BoolVal
		case dom.IntKind:
			return IntVal
		case dom.DoubleKind:
			return DoubleVal
		case dom.StringKind:
			return StringVal
		case dom.ArrayKind:
			return SequenceVal
		case dom.ObjectKind:
			return MappingVal
		}
		return OtherVal
	}
	return OtherVal
}
