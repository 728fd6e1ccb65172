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

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/toonlite/toonlite/cmd/toon/cli"
	"github.com/toonlite/toonlite/libraries/tooncore/toon"
	"github.com/toonlite/toonlite/libraries/utils/argparser"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// InfoCmd summarizes the structure of a TOON file.
type InfoCmd struct{}

func (cmd InfoCmd) Name() string {
	return "info"
}

func (cmd InfoCmd) Description() string {
	return "Summarize a file: array/object counts and tabular shape."
}

func (cmd InfoCmd) ArgParser() *argparser.ArgParser {
	ap := argparser.NewArgParser(cmd.Name())
	ap.SupportsFlag("json", "j", "Emit the summary as JSON.")
	ap.SupportsFlag("no-comments", "", "Treat comment markers as content.")
	return ap
}

func (cmd InfoCmd) Exec(ctx context.Context, apr *argparser.ArgParseResults) int {
	if apr.NArg() != 1 {
		cli.PrintErrln("info takes exactly one file")
		return 1
	}

	res, err := toon.Info(filesys.LocalFS, apr.Arg(0), !apr.Contains("no-comments"))
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

	cli.Printf("arrays:        %s\n", humanize.Comma(int64(res.Arrays)))
	cli.Printf("objects:       %s\n", humanize.Comma(int64(res.Objects)))
	cli.Printf("has tabular:   %v\n", res.HasTabular)
	if res.HasTabular {
		cli.Printf("declared rows: %s\n", humanize.Comma(int64(res.DeclaredRows)))
	}
	return 0
}
