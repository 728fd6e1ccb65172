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

package commands

import (
	"context"
	"strings"

	"github.com/goccy/go-json"

	"github.com/toonlite/toonlite/cmd/toon/cli"
	"github.com/toonlite/toonlite/libraries/tooncore/toon"
	"github.com/toonlite/toonlite/libraries/utils/argparser"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// PeekCmd shows a file's top-level shape without a full parse.
type PeekCmd struct{}

func (cmd PeekCmd) Name() string {
	return "peek"
}

func (cmd PeekCmd) Description() string {
	return "Glance at a file: top-level kind, first keys, preview lines."
}

func (cmd PeekCmd) ArgParser() *argparser.ArgParser {
	ap := argparser.NewArgParser(cmd.Name())
	ap.SupportsInt("lines", "n", "n", "How many lines to preview (default 10).")
	ap.SupportsFlag("json", "j", "Emit the result as JSON.")
	ap.SupportsFlag("no-comments", "", "Treat comment markers as content.")
	return ap
}

func (cmd PeekCmd) Exec(ctx context.Context, apr *argparser.ArgParseResults) int {
	if apr.NArg() != 1 {
		cli.PrintErrln("peek takes exactly one file")
		return 1
	}

	res, err := toon.Peek(filesys.LocalFS, apr.Arg(0), apr.GetInt("lines", 10), !apr.Contains("no-comments"))
	if err != nil {
		printError(err)
		return 1
	}

	if apr.Contains("json") {
		data, jerr := json.Marshal(res)
		if jerr != nil {
			printError(jerr)
			return 1
		}
		cli.Println(string(data))
		return 0
	}

	cli.Printf("kind: %s\n", res.Kind)
	if len(res.FirstKeys) > 0 {
		cli.Printf("keys: %s\n", strings.Join(res.FirstKeys, ", "))
	}
	for _, line := range res.Preview {
		cli.Printf("| %s\n", line)
	}
	return 0
}
