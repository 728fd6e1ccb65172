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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllLines(t *testing.T, input string) []string {
	t.Helper()

	lr := NewLineReader(strings.NewReader(input))
	var lines []string
	expectedNo := 0
	for {
		line, lineNo, err := lr.NextLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		expectedNo++
		assert.Equal(t, expectedNo, lineNo)
		lines = append(lines, string(line))
	}
	return lines
}

func TestLineReader(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"one line", []string{"one line"}},
		{"a\nb\nc\n", []string{"a", "b", "c"}},
		{"a\r\nb\r\nc", []string{"a", "b", "c"}},
		{"\n\nx\n", []string{"", "", "x"}},
		{"mixed\r\nendings\nhere\r\n", []string{"mixed", "endings", "here"}},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, readAllLines(t, test.input), "input: %q", test.input)
	}
}

func TestLineReaderCRLFMatchesLF(t *testing.T) {
	lf := "a: 1\nb: 2\n"
	crlf := "a: 1\r\nb: 2\r\n"
	assert.Equal(t, readAllLines(t, lf), readAllLines(t, crlf))
}

func TestLineReaderLongLines(t *testing.T) {
	defer func(old int) { ReadBufSize = old }(ReadBufSize)
	ReadBufSize = 16

	long := strings.Repeat("x", 100)
	lines := readAllLines(t, long+"\nshort\n"+long)
	require.Len(t, lines, 3)
	assert.Equal(t, long, lines[0])
	assert.Equal(t, "short", lines[1])
	assert.Equal(t, long, lines[2])
}
