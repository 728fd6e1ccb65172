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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/tooncore/dom"
	"github.com/toonlite/toonlite/libraries/tooncore/tabular"
)

func encodeDefault(t *testing.T, v interface{}) string {
	t.Helper()

	out, err := NewEncoder(DefaultOptions()).Encode(v)
	require.NoError(t, err)
	return out
}

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		in       interface{}
		expected string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{0, "0"},
		{42, "42"},
		{-123, "-123"},
		{int64(2147483647), "2147483647"},
		{3.14, "3.14"},
		{-2.5, "-2.5"},
		{1e10, "1e+10"},
		{2.0, "2.0"},
		{"", `""`},
		{"hello", `"hello"`},
		{"line1\nline2", `"line1\nline2"`},
		{`say "hi"`, `"say \"hi\""`},
		{dom.Int(7), "7"},
		{dom.Null(), "null"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, encodeDefault(t, test.in), "input: %v", test.in)
	}
}

func TestEncodeStrictSpecialDoubles(t *testing.T) {
	enc := NewEncoder(DefaultOptions())
	_, err := enc.Encode(math.NaN())
	require.Error(t, err)
	assert.True(t, diag.ErrEncode.Is(err))

	_, err = enc.Encode(math.Inf(1))
	require.Error(t, err)
	assert.True(t, diag.ErrEncode.Is(err))

	lax := NewEncoder(Options{Pretty: true, Indent: 2, Strict: false})
	out, err := lax.Encode(math.NaN())
	require.NoError(t, err)
	assert.Equal(t, "null", out)
}

func TestEncodeSequence(t *testing.T) {
	assert.Equal(t, "[3]:\n  - 1\n  - 2\n  - 3\n", encodeDefault(t, []int{1, 2, 3}))
	assert.Equal(t, "[2]:\n  - \"a\"\n  - \"b\"\n", encodeDefault(t, []string{"a", "b"}))

	// Length-one homogeneous sequences collapse to scalars.
	assert.Equal(t, "5", encodeDefault(t, []int{5}))

	// Empty sequences still get their header.
	assert.Equal(t, "[0]:\n", encodeDefault(t, []int{}))
}

func TestEncodeObject(t *testing.T) {
	obj := Object{
		{Key: "name", Value: "Alice"},
		{Key: "age", Value: 30},
	}
	assert.Equal(t, "name: \"Alice\"\nage: 30\n", encodeDefault(t, obj))
}

func TestEncodeNestedObject(t *testing.T) {
	obj := Object{
		{Key: "name", Value: "Alice"},
		{Key: "address", Value: Object{
			{Key: "city", Value: "NYC"},
			{Key: "zip", Value: 10001},
		}},
	}
	expected := "name: \"Alice\"\naddress:\n  city: \"NYC\"\n  zip: 10001\n"
	assert.Equal(t, expected, encodeDefault(t, obj))
}

func TestEncodeCanonicalKeyOrder(t *testing.T) {
	obj := Object{
		{Key: "b", Value: 1},
		{Key: "a", Value: 2},
	}

	assert.Equal(t, "b: 1\na: 2\n", encodeDefault(t, obj))

	canonical := NewEncoder(Options{Pretty: true, Indent: 2, Strict: true, Canonical: true})
	out, err := canonical.Encode(obj)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\nb: 1\n", out)
}

func TestEncodeKeyQuoting(t *testing.T) {
	obj := Object{
		{Key: "plain", Value: 1},
		{Key: "has space", Value: 2},
		{Key: "has:colon", Value: 3},
		{Key: "", Value: 4},
	}
	expected := "plain: 1\n\"has space\": 2\n\"has:colon\": 3\n\"\": 4\n"
	assert.Equal(t, expected, encodeDefault(t, obj))
}

func TestEncodeDOMTree(t *testing.T) {
	node := dom.Object(
		dom.Field{Key: "xs", Value: dom.Array(dom.Int(1), dom.Int(2))},
		dom.Field{Key: "flag", Value: dom.Bool(true)},
	)
	expected := "xs:\n  [2]:\n    - 1\n    - 2\nflag: true\n"
	assert.Equal(t, expected, encodeDefault(t, node))
}

func TestEncodeColumnWithNA(t *testing.T) {
	col := &tabular.Column{
		Name: "x",
		Type: tabular.IntegerType,
		Int:  []int32{1, 0, 3},
		NA:   []bool{false, true, false},
	}
	assert.Equal(t, "[3]:\n  - 1\n  - null\n  - 3\n", encodeDefault(t, col))
}

func TestEncodeTable(t *testing.T) {
	table := &tabular.Table{
		NRows: 2,
		Cols: []tabular.Column{
			{Name: "name", Type: tabular.StringType, Str: []string{"A", "B"}, NA: []bool{false, false}},
			{Name: "n", Type: tabular.IntegerType, Int: []int32{1, 0}, NA: []bool{false, true}},
			{Name: "ok", Type: tabular.LogicalType, Lgl: []bool{true, false}, NA: []bool{false, false}},
		},
	}

	expected := "[2]{name,n,ok}:\n  \"A\", 1, true\n  \"B\", null, false\n"
	assert.Equal(t, expected, encodeDefault(t, table))
}

func TestEncodeTableStrictNaN(t *testing.T) {
	table := &tabular.Table{
		NRows: 1,
		Cols: []tabular.Column{
			{Name: "x", Type: tabular.DoubleType, Dbl: []float64{math.NaN()}, NA: []bool{false}},
		},
	}

	_, err := NewEncoder(DefaultOptions()).Encode(table)
	require.Error(t, err)
	assert.True(t, diag.ErrEncode.Is(err))

	lax := NewEncoder(Options{Pretty: true, Indent: 2})
	out, err := lax.Encode(table)
	require.NoError(t, err)
	assert.Equal(t, "[1]{x}:\n  null\n", out)
}

func TestEncodeDates(t *testing.T) {
	assert.Equal(t, `"1970-01-01"`, encodeDefault(t, Date(0)))
	assert.Equal(t, `"1969-12-31"`, encodeDefault(t, Date(-1)))
	assert.Equal(t, `"2000-03-01"`, encodeDefault(t, Date(11017)))

	// Out of range renders as null.
	assert.Equal(t, "null", encodeDefault(t, Date(maxCivilDays+1)))
}

func TestEncodeDatetimes(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, `"2024-01-15T10:30:00Z"`, encodeDefault(t, ts))

	// Non-UTC times render in UTC.
	est := time.FixedZone("EST", -5*3600)
	ts = time.Date(2024, 1, 15, 5, 30, 0, 0, est)
	assert.Equal(t, `"2024-01-15T10:30:00Z"`, encodeDefault(t, ts))
}

func TestEncodeFactor(t *testing.T) {
	f := Factor{Codes: []int32{1, 2, 1}, Levels: []string{"lo", "hi"}}
	assert.Equal(t, "[3]:\n  - \"lo\"\n  - \"hi\"\n  - \"lo\"\n", encodeDefault(t, f))

	// A code outside the levels renders as null.
	f = Factor{Codes: []int32{1, 9}, Levels: []string{"lo"}}
	assert.Equal(t, "[2]:\n  - \"lo\"\n  - null\n", encodeDefault(t, f))

	// Scalar factor.
	f = Factor{Codes: []int32{2}, Levels: []string{"lo", "hi"}}
	assert.Equal(t, `"hi"`, encodeDefault(t, f))
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := NewEncoder(DefaultOptions()).Encode(struct{}{})
	require.Error(t, err)
	assert.True(t, diag.ErrEncode.Is(err))
}

func TestEncodeDeterministic(t *testing.T) {
	obj := Object{{Key: "a", Value: []int{1, 2}}, {Key: "b", Value: "x"}}
	first := encodeDefault(t, obj)
	second := encodeDefault(t, obj)
	assert.Equal(t, first, second)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, NullVal, Classify(nil))
	assert.Equal(t, BoolVal, Classify(true))
	assert.Equal(t, IntVal, Classify(42))
	assert.Equal(t, DoubleVal, Classify(3.14))
	assert.Equal(t, StringVal, Classify("s"))
	assert.Equal(t, SequenceVal, Classify([]int{1}))
	assert.Equal(t, MappingVal, Classify(Object{}))
	assert.Equal(t, TableVal, Classify(&tabular.Table{}))
	assert.Equal(t, DateVal, Classify(Date(0)))
	assert.Equal(t, DatetimeVal, Classify(time.Now()))
	assert.Equal(t, FactorVal, Classify(Factor{}))
	assert.Equal(t, OtherVal, Classify(struct{}{}))
}
