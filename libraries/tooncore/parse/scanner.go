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
	"math"
	"strconv"
	"strings"

	"github.com/toonlite/toonlite/libraries/tooncore/dom"
)

// ParsePrimitive classifies a trimmed token and returns its node. ok is false
// when the token matches no rule; in non-strict mode that never happens
// because unmatched tokens become unquoted strings.
func ParsePrimitive(text []byte, strict bool) (*dom.Node, bool) {
	text = bytes.TrimSpace(text)

	if len(text) == 0 {
		return nil, false
	}

	if bytes.Equal(text, tokenNull) {
		return dom.Null(), true
	}
	if bytes.Equal(text, tokenTrue) {
		return dom.Bool(true), true
	}
	if bytes.Equal(text, tokenFalse) {
		return dom.Bool(false), true
	}

	if text[0] == '"' {
		if s, ok := UnquoteString(text, strict); ok {
			return dom.String(s), true
		}
		if !strict {
			return dom.String(string(text)), true
		}
		return nil, false
	}

	if v, ok := ParseIntToken(text); ok {
		return dom.Int(v), true
	}
	if v, ok := ParseDoubleToken(text, strict); ok {
		return dom.Double(v), true
	}

	if !strict {
		return dom.String(string(text)), true
	}
	return nil, false
}

var (
	tokenNull  = []byte("null")
	tokenTrue  = []byte("true")
	tokenFalse = []byte("false")
)

// ParseIntToken parses a decimal integer with no point or exponent. Values
// outside (INT32_MIN, INT32_MAX] fall through to the double path; INT32_MIN
// itself is excluded because it collides with the integer NA sentinel used by
// column hosts.
func ParseIntToken(text []byte) (int64, bool) {
	if len(text) > 0 && text[0] == '+' {
		return 0, false
	}
	for _, b := range text {
		if b == '.' || b == 'e' || b == 'E' {
			return 0, false
		}
	}

	v, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		return 0, false
	}
	if v > math.MinInt32 && v <= math.MaxInt32 {
		return v, true
	}
	return 0, false
}

// isNumericToken enforces the decimal grammar: optional leading minus, digits
// with optional point, optional exponent. Leading '+', hex floats, and digit
// separators are all rejected.
func isNumericToken(text []byte) bool {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}

	digits := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
		digits++
	}
	if i < len(text) && text[i] == '.' {
		i++
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}

	return i == len(text)
}

// ParseDoubleToken parses an IEEE-754 double. In strict mode NaN and the
// infinities are rejected; otherwise their textual forms are admitted.
func ParseDoubleToken(text []byte, strict bool) (float64, bool) {
	if !isNumericToken(text) {
		if strict {
			return 0, false
		}
		// Non-strict mode admits the textual special values.
		switch strings.ToLower(string(text)) {
		case "nan":
			return math.NaN(), true
		case "inf", "infinity":
			return math.Inf(1), true
		case "-inf", "-infinity":
			return math.Inf(-1), true
		}
		return 0, false
	}

	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return 0, false
	}
	if strict && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return 0, false
	}
	return v, true
}

// UnquoteString decodes a double-quoted token, resolving the escapes
// \\ \" \n \r \t and \uXXXX (BMP only). Unknown escapes are fatal in strict
// mode and passed through otherwise.
func UnquoteString(text []byte, strict bool) (string, bool) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}

	var sb strings.Builder
	sb.Grow(len(text) - 2)

	inner := text[1 : len(text)-1]
	for i := 0; i < len(inner); i++ {
		b := inner[i]

		if b != '\\' || i+1 >= len(inner) {
			sb.WriteByte(b)
			continue
		}

		switch inner[i+1] {
		case '"':
			sb.WriteByte('"')
			i++
		case '\\':
			sb.WriteByte('\\')
			i++
		case 'n':
			sb.WriteByte('\n')
			i++
		case 'r':
			sb.WriteByte('\r')
			i++
		case 't':
			sb.WriteByte('\t')
			i++
		case 'u':
			if i+5 < len(inner) {
				cp, err := strconv.ParseUint(string(inner[i+2:i+6]), 16, 32)
				if err != nil {
					if strict {
						return "", false
					}
					sb.WriteByte(b)
					continue
				}
				writeCodepoint(&sb, uint32(cp))
				i += 5
			} else {
				if strict {
					return "", false
				}
				sb.WriteByte(b)
			}
		default:
			if strict {
				return "", false
			}
			sb.WriteByte(b)
		}
	}

	return sb.String(), true
}

// writeCodepoint emits a BMP codepoint as UTF-8.
func writeCodepoint(sb *strings.Builder, cp uint32) {
	switch {
	case cp < 0x80:
		sb.WriteByte(byte(cp))
	case cp < 0x800:
		sb.WriteByte(byte(0xC0 | (cp >> 6)))
		sb.WriteByte(byte(0x80 | (cp & 0x3F)))
	default:
		sb.WriteByte(byte(0xE0 | (cp >> 12)))
		sb.WriteByte(byte(0x80 | ((cp >> 6) & 0x3F)))
		sb.WriteByte(byte(0x80 | (cp & 0x3F)))
	}
}
