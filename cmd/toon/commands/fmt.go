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

	"github.com/sirupsen/logrus"

	"github.com/toonlite/toonlite/cmd/toon/cli"
	"github.com/toonlite/toonlite/libraries/tooncore/diag"
	"github.com/toonlite/toonlite/libraries/tooncore/toon"
	"github.com/toonlite/toonlite/libraries/utils/argparser"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// FmtCmd reformats a TOON file deterministically.
type FmtCmd struct{}

func (cmd FmtCmd) Name() string {
	return "fmt"
}

func (cmd FmtCmd) Description() string {
	return "Reformat a TOON file; only meaning is preserved, not layout."
}

func (cmd FmtCmd) ArgParser() *argparser.ArgParser {
	ap := argparser.NewArgParser(cmd.Name())
	ap.SupportsInt("indent", "i", "n", "Spaces per indentation level (default 2).")
	ap.SupportsFlag("canonical", "c", "Sort object keys lexicographically.")
	ap.SupportsFlag("no-comments", "", "Treat comment markers as content.")
	ap.SupportsFlag("write", "w", "Rewrite the file in place instead of printing.")
	return ap
}

func (cmd FmtCmd) Exec(ctx context.Context, apr *argparser.ArgParseResults) int {
	if apr.NArg() != 1 {
		cli.PrintErrln("fmt takes exactly one file")
		return 1
	}
	path := apr.Arg(0)

	out, err := toon.FormatFile(
		filesys.LocalFS,
		path,
		apr.GetInt("indent", 2),
		apr.Contains("canonical"),
		!apr.Contains("no-comments"),
	)
	if err != nil {
		printError(err)
		return 1
	}

	if apr.Contains("write") {
		if err := filesys.LocalFS.WriteFile(path, []byte(out)); err != nil {
			printError(err)
			return 1
		}
		logrus.Debugf("rewrote %s", path)
		return 0
	}

	cli.Printf("%s", out)
	return 0
}

func printError(err error) {
	if pe, ok := err.(*diag.ParseError); ok {
		cli.PrintErrln(pe.Formatted())
		return
	}
	cli.PrintErrln(err.Error())
}
