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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAll(b *ColBuilder, tokens ...string) {
	for i, tok := range tokens {
		b.Set(i, []byte(tok))
	}
}

func TestColBuilderInference(t *testing.T) {
	tests := []struct {
		tokens   []string
		expected ColType
	}{
		{[]string{"true", "false"}, LogicalType},
		{[]string{"1", "2", "3"}, IntegerType},
		{[]string{"1.5", "2"}, DoubleType},
		{[]string{`"a"`, `"b"`}, StringType},
		{[]string{"null", "null"}, LogicalType},
		{[]string{"null", "7"}, IntegerType},
	}

	for _, test := range tests {
		b := NewColBuilder("c", 8)
		setAll(b, test.tokens...)
		assert.Equal(t, test.expected, b.Finalize().Type, "tokens: %v", test.tokens)
	}
}

func TestColBuilderLogicalToIntegerPromotion(t *testing.T) {
	b := NewColBuilder("c", 8)
	setAll(b, "true", "false", "5")

	col := b.Finalize()
	require.Equal(t, IntegerType, col.Type)
	assert.Equal(t, []int32{1, 0, 5}, col.Int)
	assert.Equal(t, []bool{false, false, false}, col.NA)
}

func TestColBuilderIntegerToDoublePromotion(t *testing.T) {
	b := NewColBuilder("c", 8)
	setAll(b, "1", "null", "2.5")

	col := b.Finalize()
	require.Equal(t, DoubleType, col.Type)
	assert.Equal(t, []float64{1, 0, 2.5}, col.Dbl)
	assert.Equal(t, []bool{false, true, false}, col.NA)
}

func TestColBuilderNumericToStringPromotion(t *testing.T) {
	b := NewColBuilder("c", 8)
	setAll(b, "1", "2.5", "null", "words")

	col := b.Finalize()
	require.Equal(t, StringType, col.Type)
	// The first value passed through the double buffer before stringifying.
	assert.Equal(t, []string{"1.0", "2.5", "", "words"}, col.Str)
	assert.Equal(t, []bool{false, false, true, false}, col.NA)
}

func TestColBuilderNeverDemotes(t *testing.T) {
	b := NewColBuilder("c", 8)
	setAll(b, `"str"`, "5", "true")

	col := b.Finalize()
	require.Equal(t, StringType, col.Type)
	assert.Equal(t, []string{"str", "5", "true"}, col.Str)
}

func TestColBuilderGapsFillWithNA(t *testing.T) {
	b := NewColBuilder("c", 8)
	b.Set(0, []byte("1"))
	b.Set(3, []byte("4"))

	col := b.Finalize()
	require.Equal(t, 4, col.Len())
	assert.Equal(t, []bool{false, true, true, false}, col.NA)
	assert.Equal(t, []int32{1, 0, 0, 4}, col.Int)
}

func TestColBuilderQuotedStringsUnescape(t *testing.T) {
	b := NewColBuilder("c", 8)
	setAll(b, `"a, b"`, `"line1\nline2"`)

	col := b.Finalize()
	require.Equal(t, StringType, col.Type)
	assert.Equal(t, "a, b", col.Str[0])
	assert.Equal(t, "line1\nline2", col.Str[1])
}

func TestColBuilderForceType(t *testing.T) {
	b := NewColBuilder("c", 8)
	b.ForceType(StringType)
	setAll(b, "1", "true", `"x"`)

	col := b.Finalize()
	require.Equal(t, StringType, col.Type)
	assert.Equal(t, []string{"1", "true", "x"}, col.Str)
	assert.Zero(t, b.ForcedMisses())
}

func TestColBuilderForceTypeMisses(t *testing.T) {
	b := NewColBuilder("c", 8)
	b.ForceType(IntegerType)
	setAll(b, "5", "words", "7")

	col := b.Finalize()
	require.Equal(t, IntegerType, col.Type)
	assert.Equal(t, []bool{false, true, false}, col.NA)
	assert.Equal(t, 1, b.ForcedMisses())
}

func TestColBuilderUnknownDefaultsToLogical(t *testing.T) {
	b := NewColBuilder("c", 8)
	b.SetNull(0)
	b.SetNull(1)

	col := b.Finalize()
	assert.Equal(t, LogicalType, col.Type)
	assert.Equal(t, []bool{true, true}, col.NA)
}
