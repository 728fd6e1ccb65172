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
	"bytes"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
)

// LineType classifies the syntactic role of a single line.
type LineType int

const (
	EmptyLine LineType = iota
	CommentLine
	ListItemLine      // - value
	KeyValueLine      // key: value
	KeyNestedLine     // key: followed by a nested block
	ArrayHeaderLine   // [N]:
	TabularHeaderLine // [N]{fields}:
	RawValueLine      // bare primitive
)

// ArrayHeader is the parsed form of an [N] or [N]{fields} header.
type ArrayHeader struct {
	DeclaredCount int
	Fields        []string
	IsTabular     bool
	Delim         byte
}

// LineInfo is the classification of one raw line. The byte slices borrow from
// the reader's buffer and are only valid until it advances.
type LineInfo struct {
	Type    LineType
	Indent  int
	Content []byte
	Key     []byte
	Value   []byte
	Header  ArrayHeader
	LineNo  int
}

type classifier struct {
	strict        bool
	allowComments bool
}

// countIndent counts leading whitespace units. Tabs count as one unit each
// but are fatal in strict mode.
func (c *classifier) countIndent(line []byte, lineNo int) (int, error) {
	indent := 0
	for _, b := range line {
		if b == ' ' {
			indent++
		} else if b == '\t' {
			if c.strict {
				return 0, &diag.ParseError{
					Message: "Tab characters not allowed in indentation (strict mode)",
					Line:    lineNo,
					Snippet: diag.Snippet(string(line)),
				}
			}
			indent++
		} else {
			break
		}
	}
	return indent, nil
}

func IsCommentContent(content []byte) bool {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return false
	}
	if content[0] == '#' {
		return true
	}
	return len(content) >= 2 && content[0] == '/' && content[1] == '/'
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// StripTrailingComment truncates content at a # or // that sits outside a
// double-quoted string and is preceded by whitespace.
func StripTrailingComment(content []byte) []byte {
	inString := false
	escape := false

	for i := 0; i < len(content); i++ {
		b := content[i]

		if escape {
			escape = false
			continue
		}
		if b == '\\' && inString {
			escape = true
			continue
		}
		if b == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if b == '#' && i > 0 && isSpaceByte(content[i-1]) {
			return bytes.TrimRight(content[:i], " \t\r\n\v\f")
		}
		if b == '/' && i+1 < len(content) && content[i+1] == '/' && i > 0 && isSpaceByte(content[i-1]) {
			return bytes.TrimRight(content[:i], " \t\r\n\v\f")
		}
	}
	return content
}

// findColon locates the first ':' outside a double-quoted string, or -1.
func findColon(content []byte) int {
	inString := false
	escape := false

	for i := 0; i < len(content); i++ {
		b := content[i]

		if escape {
			escape = false
			continue
		}
		if b == '\\' && inString {
			escape = true
			continue
		}
		if b == '"' {
			inString = !inString
			continue
		}
		if !inString && b == ':' {
			return i
		}
	}
	return -1
}

// classify computes the LineInfo for one raw line.
func (c *classifier) classify(line []byte, lineNo int) (LineInfo, error) {
	info := LineInfo{LineNo: lineNo}

	indent, err := c.countIndent(line, lineNo)
	if err != nil {
		return info, err
	}
	info.Indent = indent
	info.Content = line[indent:]

	if len(info.Content) == 0 {
		info.Type = EmptyLine
		return info, nil
	}

	if c.allowComments && IsCommentContent(info.Content) {
		info.Type = CommentLine
		return info, nil
	}

	content := info.Content
	if c.allowComments {
		content = StripTrailingComment(content)
	}

	if len(content) >= 2 && content[0] == '-' && content[1] == ' ' {
		info.Type = ListItemLine
		info.Value = bytes.TrimSpace(content[2:])
		return info, nil
	}

	if content[0] == '[' {
		info.Header = ParseArrayHeader(content)
		if info.Header.IsTabular {
			info.Type = TabularHeaderLine
		} else {
			info.Type = ArrayHeaderLine
		}
		return info, nil
	}

	if colon := findColon(content); colon >= 0 {
		key := bytes.TrimSpace(content[:colon])
		if len(key) >= 2 && key[0] == '"' && key[len(key)-1] == '"' {
			// Quoted keys keep their interior verbatim.
			key = key[1 : len(key)-1]
		}
		info.Key = key

		afterColon := bytes.TrimSpace(content[colon+1:])
		if len(afterColon) == 0 {
			info.Type = KeyNestedLine
		} else {
			info.Type = KeyValueLine
			info.Value = afterColon
		}
		return info, nil
	}

	info.Type = RawValueLine
	info.Value = bytes.TrimSpace(content)
	return info, nil
}

// ParseArrayHeader parses [N]: and [N]{field1,field2,...}: headers. Inputs
// that are not headers yield a zero ArrayHeader with IsTabular false.
func ParseArrayHeader(text []byte) ArrayHeader {
	header := ArrayHeader{Delim: ','}

	if len(text) == 0 || text[0] != '[' {
		return header
	}

	pos := 1
	for pos < len(text) && text[pos] >= '0' && text[pos] <= '9' {
		header.DeclaredCount = header.DeclaredCount*10 + int(text[pos]-'0')
		pos++
	}

	if pos >= len(text) || text[pos] != ']' {
		return ArrayHeader{Delim: ','}
	}
	pos++

	if pos < len(text) && text[pos] == '{' {
		header.IsTabular = true
		fieldEnd := bytes.IndexByte(text[pos+1:], '}')
		if fieldEnd >= 0 {
			header.Fields = splitHeaderFields(text[pos+1 : pos+1+fieldEnd])
		}
	}

	return header
}

func splitHeaderFields(fieldsStr []byte) []string {
	var fields []string
	for len(fieldsStr) > 0 {
		var field []byte
		if comma := bytes.IndexByte(fieldsStr, ','); comma >= 0 {
			field = fieldsStr[:comma]
			fieldsStr = fieldsStr[comma+1:]
		} else {
			field = fieldsStr
			fieldsStr = nil
		}
		field = bytes.TrimSpace(field)
		if len(field) > 0 {
			fields = append(fields, string(field))
		}
	}
	return fields
}

// SplitRow splits a tabular row on delim, respecting double-quoted strings
// with backslash escapes. Each field is trimmed. The returned slices borrow
// from line.
func SplitRow(line []byte, delim byte) [][]byte {
	var fields [][]byte

	start := 0
	inString := false
	escape := false

	for i := 0; i < len(line); i++ {
		b := line[i]

		if escape {
			escape = false
			continue
		}
		if b == '\\' && inString {
			escape = true
			continue
		}
		if b == '"' {
			inString = !inString
			continue
		}
		if !inString && b == delim {
			fields = append(fields, bytes.TrimSpace(line[start:i]))
			start = i + 1
		}
	}

	fields = append(fields, bytes.TrimSpace(line[start:]))
	return fields
}
