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

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line   string
		typ    LineType
		indent int
		key    string
		value  string
	}{
		{"", EmptyLine, 0, "", ""},
		{"   ", EmptyLine, 3, "", ""},
		{"# a comment", CommentLine, 0, "", ""},
		{"  // also a comment", CommentLine, 2, "", ""},
		{"- 1", ListItemLine, 0, "", "1"},
		{"  - \"two\"", ListItemLine, 2, "", "\"two\""},
		{"key: value", KeyValueLine, 0, "key", "value"},
		{"key:", KeyNestedLine, 0, "key", ""},
		{"  nested: 1", KeyValueLine, 2, "nested", "1"},
		{"\"quoted key\": 1", KeyValueLine, 0, "quoted key", "1"},
		{"age: 30 # years", KeyValueLine, 0, "age", "30"},
		{"url: http://example.com", KeyValueLine, 0, "url", "http://example.com"},
		{"foo://bar", KeyValueLine, 0, "foo", "//bar"},
		{"42", RawValueLine, 0, "", "42"},
		{"null", RawValueLine, 0, "", "null"},
	}

	cls := classifier{strict: true, allowComments: true}
	for _, test := range tests {
		info, err := cls.classify([]byte(test.line), 1)
		require.NoError(t, err, "line: %q", test.line)
		assert.Equal(t, test.typ, info.Type, "line: %q", test.line)
		assert.Equal(t, test.indent, info.Indent, "line: %q", test.line)
		assert.Equal(t, test.key, string(info.Key), "line: %q", test.line)
		assert.Equal(t, test.value, string(info.Value), "line: %q", test.line)
	}
}

func TestClassifyTabStrict(t *testing.T) {
	cls := classifier{strict: true, allowComments: true}
	_, err := cls.classify([]byte("\tkey: 1"), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tab")

	lax := classifier{strict: false, allowComments: true}
	info, err := lax.classify([]byte("\tkey: 1"), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Indent)
}

func TestClassifyHeaders(t *testing.T) {
	cls := classifier{strict: true, allowComments: true}

	info, err := cls.classify([]byte("[3]:"), 1)
	require.NoError(t, err)
	assert.Equal(t, ArrayHeaderLine, info.Type)
	assert.Equal(t, 3, info.Header.DeclaredCount)
	assert.False(t, info.Header.IsTabular)

	info, err = cls.classify([]byte("[10]{a, b ,c}:"), 1)
	require.NoError(t, err)
	assert.Equal(t, TabularHeaderLine, info.Type)
	assert.Equal(t, 10, info.Header.DeclaredCount)
	assert.Equal(t, []string{"a", "b", "c"}, info.Header.Fields)

	// Missing digits mean no declared count.
	info, err = cls.classify([]byte("[]{x,y}:"), 1)
	require.NoError(t, err)
	assert.Equal(t, TabularHeaderLine, info.Type)
	assert.Equal(t, 0, info.Header.DeclaredCount)
	assert.Equal(t, []string{"x", "y"}, info.Header.Fields)

	// Empty fields are skipped.
	info, err = cls.classify([]byte("[2]{a,,b}:"), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, info.Header.Fields)
}

func TestStripTrailingComment(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"plain", "plain"},
		{"value # comment", "value"},
		{"value // comment", "value"},
		{"value#not-a-comment", "value#not-a-comment"},
		{"http://example.com", "http://example.com"},
		{`"a # b"`, `"a # b"`},
		{`"x" # trailing`, `"x"`},
		{`"a \" b # c"`, `"a \" b # c"`},
	}

	for _, test := range tests {
		assert.Equal(t, test.out, string(StripTrailingComment([]byte(test.in))), "input: %q", test.in)
	}
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"1, 2, 3", []string{"1", "2", "3"}},
		{"one", []string{"one"}},
		{"a,", []string{"a", ""}},
		{`"x, y", 2`, []string{`"x, y"`, "2"}},
		{`"a \" b", 1`, []string{`"a \" b"`, "1"}},
		{`  spaced  ,  out  `, []string{"spaced", "out"}},
		{"", []string{""}},
	}

	for _, test := range tests {
		fields := SplitRow([]byte(test.in), ',')
		require.Len(t, fields, len(test.expected), "input: %q", test.in)
		for i := range fields {
			assert.Equal(t, test.expected[i], string(fields[i]), "input: %q", test.in)
		}
	}
}
