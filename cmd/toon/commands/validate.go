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
	"strconv"

	"github.com/toonlite/toonlite/cmd/toon/cli"
	"github.com/toonlite/toonlite/libraries/tooncore/parse"
	"github.com/toonlite/toonlite/libraries/tooncore/toon"
	"github.com/toonlite/toonlite/libraries/utils/argparser"
	"github.com/toonlite/toonlite/libraries/utils/filesys"
)

// ValidateCmd syntax-checks a TOON file without building anything.
type ValidateCmd struct{}

func (cmd ValidateCmd) Name() string {
	return "validate"
}

func (cmd ValidateCmd) Description() string {
	return "Check whether a file is well-formed TOON."
}

func (cmd ValidateCmd) ArgParser() *argparser.ArgParser {
	ap := argparser.NewArgParser(cmd.Name())
	ap.SupportsFlag("lax", "", "Allow tab indentation, unknown escapes, and unquoted strings.")
	ap.SupportsFlag("no-comments", "", "Treat comment markers as content.")
	ap.SupportsFlag("no-duplicate-keys", "", "Fail on duplicate object keys.")
	return ap
}

func (cmd ValidateCmd) Exec(ctx context.Context, apr *argparser.ArgParseResults) int {
	if apr.NArg() != 1 {
		cli.PrintErrln("validate takes exactly one file")
		return 1
	}

	opts := parse.DefaultParseOptions()
	opts.Strict = !apr.Contains("lax")
	opts.AllowComments = !apr.Contains("no-comments")
	opts.AllowDuplicateKeys = !apr.Contains("no-duplicate-keys")

	result, err := toon.ValidateFile(filesys.LocalFS, apr.Arg(0), opts)
	if err != nil {
		printError(err)
		return 1
	}

	if result.Valid {
		cli.PrintOKln("OK")
		return 0
	}

	msg := result.Message
	if result.Line > 0 {
		msg += " (line " + strconv.Itoa(result.Line) + ")"
	}
	if result.Snippet != "" {
		msg += "\n  " + result.Snippet
	}
	cli.PrintErrln(msg)
	return 1
}
