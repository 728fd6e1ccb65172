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
	"bufio"
	"strings"

	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
	"github.com/toonlite/toonlite/libraries/utils/iohelp"
)

const peekMaxKeys = 5

// PeekResult is a cheap structural glance at a file: its top-level kind, up
// to five top-level keys, and the first preview lines verbatim.
type PeekResult struct {
	Kind      string   `json:"kind"`
	FirstKeys []string `json:"first_keys"`
	Preview   []string `json:"preview_lines"`
}

// Peek reads at most n lines of a file and reports its top-level shape
// without a full parse.
func Peek(fs filesys.ReadableFS, path string, n int, allowComments bool) (*PeekResult, error) {
	r, err := fs.OpenForRead(path)
	if err != nil {
		return nil, diag.ErrIO.New(err.Error())
	}
	defer r.Close()

	res := &PeekResult{Kind: "unknown"}
	br := bufio.NewReader(r)

	for len(res.Preview) < n {
		line, done, err := iohelp.ReadLine(br)
		if err != nil {
			return nil, diag.ErrIO.New(err.Error())
		}
		if done && line == "" {
			break
		}
		res.Preview = append(res.Preview, line)

		trimmed := strings.TrimLeft(line, " \t")
		indent := len(line) - len(trimmed)

		switch {
		case trimmed == "":
			// skip
		case res.Kind == "unknown":
			switch {
			case trimmed[0] == '[':
				if strings.ContainsRune(trimmed, '{') {
					res.Kind = "tabular_array"
				} else {
					res.Kind = "array"
				}
			case trimmed[0] == '-':
				res.Kind = "array"
			case allowComments && (trimmed[0] == '#' || strings.HasPrefix(trimmed, "//")):
				// skip
			default:
				if colon := strings.IndexByte(trimmed, ':'); colon >= 0 {
					res.Kind = "object"
					if key := strings.TrimSpace(trimmed[:colon]); key != "" {
						res.FirstKeys = append(res.FirstKeys, key)
					}
				}
			}
		case res.Kind == "object" && indent == 0 && len(res.FirstKeys) < peekMaxKeys:
			if allowComments && (trimmed[0] == '#' || strings.HasPrefix(trimmed, "//")) {
				break
			}
			if colon := strings.IndexByte(trimmed, ':'); colon >= 0 {
				if key := strings.TrimSpace(trimmed[:colon]); key != "" {
					res.FirstKeys = append(res.FirstKeys, key)
				}
			}
		}

		if done {
			break
		}
	}

	return res, nil
}
