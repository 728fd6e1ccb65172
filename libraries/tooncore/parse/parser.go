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

// Package parse turns TOON text into the dom.Node tree. The parser is an
// indentation-driven state machine with a one-line peek buffer.
package parse

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/tooncore/dom"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
	"github.com/toonlite/toonlite/libraries/utils/set"
)

// ParseOptions control the parser's strictness and relaxations.
type ParseOptions struct {
	Strict             bool
	Simplify           bool
	AllowComments      bool
	AllowDuplicateKeys bool
	Warn               bool
}

// DefaultParseOptions returns the default options: everything enabled.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Strict:             true,
		Simplify:           true,
		AllowComments:      true,
		AllowDuplicateKeys: true,
		Warn:               true,
	}
}

// Parser consumes classified lines and produces a Node tree. A Parser may be
// reused; each Parse call resets its state and warning log.
type Parser struct {
	opts ParseOptions
	cls  classifier
	file string

	rd        *LineReader
	peeked    LineInfo
	hasPeeked bool

	warnings []diag.Warning
}

// NewParser creates a Parser with the given options.
func NewParser(opts ParseOptions) *Parser {
	return &Parser{
		opts: opts,
		cls:  classifier{strict: opts.Strict, allowComments: opts.AllowComments},
	}
}

// Warnings returns the warnings accumulated by the most recent parse.
func (p *Parser) Warnings() []diag.Warning {
	return p.warnings
}

// Parse parses TOON text. Empty input yields a Null node.
func (p *Parser) Parse(data []byte) (*dom.Node, error) {
	p.reset("")
	p.rd = NewLineReader(bytes.NewReader(data))
	return p.parseTop()
}

// ParseReader parses TOON from an arbitrary reader.
func (p *Parser) ParseReader(r io.Reader) (*dom.Node, error) {
	p.reset("")
	p.rd = NewLineReader(r)
	return p.parseTop()
}

// ParseFile parses a TOON file. An unopenable path surfaces as an ErrIO
// before any line is read.
func (p *Parser) ParseFile(fs filesys.ReadableFS, path string) (*dom.Node, error) {
	r, err := fs.OpenForRead(path)
	if err != nil {
		return nil, diag.ErrIO.New(err.Error())
	}
	defer r.Close()

	p.reset(path)
	p.rd = NewLineReader(r)
	return p.parseTop()
}

func (p *Parser) reset(file string) {
	p.file = file
	p.hasPeeked = false
	p.warnings = p.warnings[:0]
}

func (p *Parser) parseTop() (*dom.Node, error) {
	node, err := p.parseValue(-1)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = dom.Null()
	}
	return node, nil
}

func (p *Parser) warn(category, message string) {
	p.warnings = append(p.warnings, diag.Warning{Category: category, Message: message})
}

func (p *Parser) errorAt(msg string, lineNo int) error {
	return &diag.ParseError{Message: msg, Line: lineNo, File: p.file}
}

// nextMeaningful returns the next non-empty, non-comment line from the peek
// buffer or the reader. ok is false at end of input.
func (p *Parser) nextMeaningful() (info LineInfo, ok bool, err error) {
	if p.hasPeeked {
		p.hasPeeked = false
		if p.peeked.Type != EmptyLine && p.peeked.Type != CommentLine {
			return p.peeked, true, nil
		}
	}

	for {
		raw, lineNo, rerr := p.rd.NextLine()
		if rerr == io.EOF {
			return LineInfo{}, false, nil
		}
		if rerr != nil {
			return LineInfo{}, false, diag.ErrIO.New(rerr.Error())
		}

		info, err = p.cls.classify(raw, lineNo)
		if err != nil {
			if pe, ok := err.(*diag.ParseError); ok && pe.File == "" {
				pe.File = p.file
			}
			return LineInfo{}, false, err
		}
		if info.Type == EmptyLine || info.Type == CommentLine {
			continue
		}
		return info, true, nil
	}
}

// pushBack holds a line for the enclosing frame. The reader must not advance
// while the buffer is full, so the borrowed views inside info stay valid.
func (p *Parser) pushBack(info LineInfo) {
	p.peeked = info
	p.hasPeeked = true
}

// parseValue parses the next value whose indent is strictly greater than
// parentIndent. A nil node (with nil error) signals a dedent or end of input.
func (p *Parser) parseValue(parentIndent int) (*dom.Node, error) {
	info, ok, err := p.nextMeaningful()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if info.Indent <= parentIndent {
		p.pushBack(info)
		return nil, nil
	}

	switch info.Type {
	case KeyValueLine, KeyNestedLine:
		return p.parseObject(info, parentIndent)

	case ListItemLine:
		return p.parseListArray(info, parentIndent)

	case ArrayHeaderLine, TabularHeaderLine:
		return p.parseArray(info.Header, parentIndent)

	case RawValueLine:
		if n, pok := ParsePrimitive(info.Value, p.opts.Strict); pok {
			return n, nil
		}
		return nil, p.errorAt("Invalid value: "+string(info.Value), info.LineNo)
	}

	return nil, nil
}

// parseListArray parses consecutive "- " items sharing first's indent.
func (p *Parser) parseListArray(first LineInfo, parentIndent int) (*dom.Node, error) {
	arr := dom.Array()
	listIndent := first.Indent

	addItem := func(info LineInfo) error {
		if len(info.Value) > 0 {
			if n, ok := ParsePrimitive(info.Value, p.opts.Strict); ok {
				arr.Append(n)
			} else {
				arr.Append(dom.String(string(info.Value)))
			}
			return nil
		}

		nested, err := p.parseValue(info.Indent)
		if err != nil {
			return err
		}
		if nested == nil {
			nested = dom.Null()
		}
		arr.Append(nested)
		return nil
	}

	if err := addItem(first); err != nil {
		return nil, err
	}

	for {
		info, ok, err := p.nextMeaningful()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if info.Indent <= parentIndent || info.Type != ListItemLine || info.Indent != listIndent {
			p.pushBack(info)
			break
		}
		if err := addItem(info); err != nil {
			return nil, err
		}
	}

	return arr, nil
}

// parseObject parses key/value lines sharing first's indent. Under
// allow-duplicate-keys the last occurrence wins and the earlier entry is
// removed, so key ordering reflects last write.
func (p *Parser) parseObject(first LineInfo, parentIndent int) (*dom.Node, error) {
	obj := dom.Object()
	objIndent := first.Indent

	seen := set.NewStrSet(nil)
	dupCounts := make(map[string]int)
	var dupOrder []string

	processKeyValue := func(info LineInfo) error {
		key := string(info.Key)

		if seen.Contains(key) {
			if !p.opts.AllowDuplicateKeys {
				return p.errorAt("Duplicate key: "+key, info.LineNo)
			}
			if p.opts.Warn {
				if dupCounts[key] == 0 {
					dupOrder = append(dupOrder, key)
				}
				dupCounts[key]++
			}
			obj.Remove(key)
		}
		seen.Add(key)

		var value *dom.Node
		switch info.Type {
		case KeyValueLine:
			if len(info.Value) > 0 && info.Value[0] == '[' {
				header := ParseArrayHeader(info.Value)
				if header.DeclaredCount > 0 || header.IsTabular {
					arr, err := p.parseArray(header, info.Indent)
					if err != nil {
						return err
					}
					value = arr
					break
				}
			}
			if n, ok := ParsePrimitive(info.Value, p.opts.Strict); ok {
				value = n
			} else {
				value = dom.String(string(info.Value))
			}

		default: // KeyNestedLine
			nested, err := p.parseValue(info.Indent)
			if err != nil {
				return err
			}
			if nested == nil {
				nested = dom.Null()
			}
			value = nested
		}

		obj.Set(key, value)
		return nil
	}

	if err := processKeyValue(first); err != nil {
		return nil, err
	}

	for {
		info, ok, err := p.nextMeaningful()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if info.Indent <= parentIndent || info.Indent != objIndent ||
			(info.Type != KeyValueLine && info.Type != KeyNestedLine) {
			p.pushBack(info)
			break
		}
		if err := processKeyValue(info); err != nil {
			return nil, err
		}
	}

	if p.opts.Warn && len(dupOrder) > 0 {
		var sb strings.Builder
		sb.WriteString("Duplicate keys found: ")
		for i, key := range dupOrder {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(key)
			sb.WriteString(" (")
			sb.WriteString(strconv.Itoa(dupCounts[key] + 1))
			sb.WriteString(" times)")
		}
		p.warn(diag.WarnDuplicateKey, sb.String())
	}

	return obj, nil
}

// parseArray parses the body following an array or tabular header.
func (p *Parser) parseArray(header ArrayHeader, parentIndent int) (*dom.Node, error) {
	if header.IsTabular {
		return p.parseTabularBlock(header, parentIndent)
	}
	return p.parsePlainArray(header, parentIndent)
}

// parseTabularBlock parses tabular rows into an array of per-row objects.
func (p *Parser) parseTabularBlock(header ArrayHeader, parentIndent int) (*dom.Node, error) {
	arr := dom.Array()
	arrIndent := -1

	for {
		info, ok, err := p.nextMeaningful()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if arrIndent < 0 {
			arrIndent = info.Indent
		}
		if info.Indent <= parentIndent || info.Indent < arrIndent {
			p.pushBack(info)
			break
		}

		content := info.Content
		if p.opts.AllowComments {
			content = StripTrailingComment(content)
		}

		rowObj := dom.Object()
		fields := SplitRow(content, header.Delim)
		for i := 0; i < len(fields) && i < len(header.Fields); i++ {
			fieldVal, pok := ParsePrimitive(fields[i], p.opts.Strict)
			if !pok {
				fieldVal = dom.String(string(fields[i]))
			}
			rowObj.Set(header.Fields[i], fieldVal)
		}
		arr.Append(rowObj)
	}

	if p.opts.Warn && header.DeclaredCount > 0 && len(arr.Items) != header.DeclaredCount {
		p.warn(diag.WarnNMismatch, "Declared ["+strconv.Itoa(header.DeclaredCount)+
			"] but observed "+strconv.Itoa(len(arr.Items))+" rows; using observed.")
	}

	return arr, nil
}

// parsePlainArray parses "- " items after an [N]: header. The first item
// establishes the item indent.
func (p *Parser) parsePlainArray(header ArrayHeader, parentIndent int) (*dom.Node, error) {
	arr := dom.Array()
	arrIndent := -1

	for {
		info, ok, err := p.nextMeaningful()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if arrIndent < 0 && info.Type == ListItemLine {
			arrIndent = info.Indent
		}
		if info.Indent <= parentIndent || info.Type != ListItemLine || info.Indent != arrIndent {
			p.pushBack(info)
			break
		}

		if len(info.Value) > 0 {
			if n, pok := ParsePrimitive(info.Value, p.opts.Strict); pok {
				arr.Append(n)
			} else {
				arr.Append(dom.String(string(info.Value)))
			}
		} else {
			nested, err := p.parseValue(info.Indent)
			if err != nil {
				return nil, err
			}
			if nested == nil {
				nested = dom.Null()
			}
			arr.Append(nested)
		}
	}

	if p.opts.Warn && header.DeclaredCount > 0 && len(arr.Items) != header.DeclaredCount {
		p.warn(diag.WarnNMismatch, "Declared ["+strconv.Itoa(header.DeclaredCount)+
			"] but observed "+strconv.Itoa(len(arr.Items))+" items; using observed.")
	}

	return arr, nil
}
