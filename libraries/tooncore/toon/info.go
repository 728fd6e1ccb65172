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
	"github.com/toonlite/toonlite/libraries/tooncore/parse"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// InfoResult summarizes a parsed file's structure. DeclaredRows is the number
// of items parsed in the last tabular-shaped array visited; the [N] written in
// that array's header is not consulted.
type InfoResult struct {
	Arrays       int  `json:"arrays"`
	Objects      int  `json:"objects"`
	HasTabular   bool `json:"has_tabular"`
	DeclaredRows int  `json:"declared_rows"`
}

// Info parses a file and counts its arrays and objects, detecting whether a
// tabular-shaped array (all items objects) is present and how many rows it
// carries.
func Info(fs filesys.ReadableFS, path string, allowComments bool) (*InfoResult, error) {
	popts := parse.DefaultParseOptions()
	popts.Simplify = false
	popts.AllowComments = allowComments

	node, _, err := FromFile(fs, path, popts)
	if err != nil {
		return nil, err
	}

	res := &InfoResult{}
	countNodes(node, res)
	return res, nil
}

func countNodes(n *dom.Node, res *InfoResult) {
	if n == nil {
		return
	}

	switch n.Kind {
	case dom.ArrayKind:
		res.Arrays++
		if len(n.Items) > 0 {
			allObjects := true
			for _, item := range n.Items {
				if item.Kind != dom.ObjectKind {
					allObjects = false
					break
				}
			}
			if allObjects {
				res.HasTabular = true
				res.DeclaredRows = len(n.Items)
			}
		}
		for _, item := range n.Items {
			countNodes(item, res)
		}

	case dom.ObjectKind:
		res.Objects++
		for _, f := range n.Fields {
			countNodes(f.Value, res)
		}
	}
}
