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
	"github.com/sirupsen/logrus"

	"github.com/toonlite/toonlite/cmd/toon/cli"
	"github.com/toonlite/toonlite/libraries/tooncore/tabular"
	"github.com/toonlite/toonlite/libraries/tooncore/toon"
	"github.com/toonlite/toonlite/libraries/utils/argparser"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// ReadCmd decodes a tabular block and prints a column summary.
type ReadCmd struct{}

func (cmd ReadCmd) Name() string {
	return "read"
}

func (cmd ReadCmd) Description() string {
	return "Decode a file's tabular array and summarize its columns."
}

func (cmd ReadCmd) ArgParser() *argparser.ArgParser {
	ap := argparser.NewArgParser(cmd.Name())
	ap.SupportsString("key", "k", "name", "Top-level key holding the tabular array.")
	ap.SupportsInt("head", "", "n", "Also print the first n rows as TOON.")
	ap.SupportsFlag("strict-counts", "", "Fail when the declared [N] does not match.")
	return ap
}

func (cmd ReadCmd) Exec(ctx context.Context, apr *argparser.ArgParseResults) int {
	if apr.NArg() != 1 {
		cli.PrintErrln("read takes exactly one file")
		return 1
	}

	opts := tabular.DefaultOptions()
	opts.Key, _ = apr.GetValue("key")
	if apr.Contains("strict-counts") {
		opts.NMismatch = tabular.MismatchError
	}

	t, warnings, err := toon.ReadTable(ctx, filesys.LocalFS, apr.Arg(0), opts)
	if err != nil {
		printError(err)
		return 1
	}

	for _, w := range warnings {
		logrus.Warnf("%s: %s", w.Category, w.Message)
	}

	cli.Printf("rows: %s\n", humanize.Comma(int64(t.NumRows())))
	for i := range t.Cols {
		cli.Printf("  %s: %s\n", t.Cols[i].Name, t.Cols[i].Type)
	}

	if head := apr.GetInt("head", 0); head > 0 {
		if head > t.NumRows() {
			head = t.NumRows()
		}
		preview := &tabular.Table{NRows: head}
		for _, col := range t.Cols {
			c := col
			c.NA = c.NA[:head]
			switch c.Type {
			case tabular.LogicalType:
				c.Lgl = c.Lgl[:head]
			case tabular.IntegerType:
				c.Int = c.Int[:head]
			case tabular.DoubleType:
				c.Dbl = c.Dbl[:head]
			case tabular.StringType:
				c.Str = c.Str[:head]
			}
			preview.Cols = append(preview.Cols, c)
		}

		text, terr := toon.ToText(preview, toon.EncodeOptions{Pretty: true, Indent: 2})
		if terr != nil {
			printError(terr)
			return 1
		}
		cli.Printf("%s", text)
	}

	return 0
}
