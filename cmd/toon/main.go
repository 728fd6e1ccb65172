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

// toon is a small host around the TOON engine: format, validate, inspect,
// and read TOON files from the command line.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/toonlite/toonlite/cmd/toon/cli"
	"github.com/toonlite/toonlite/cmd/toon/commands"
	"github.com/toonlite/toonlite/libraries/utils/argparser"
)

var toonCommands = []cli.Command{
	commands.FmtCmd{},
	commands.ValidateCmd{},
	commands.InfoCmd{},
	commands.PeekCmd{},
	commands.ReadCmd{},
}

func main() {
	os.Exit(runMain(os.Args[1:]))
}

func runMain(args []string) int {
	logrus.SetLevel(logrus.WarnLevel)

	for len(args) > 0 && (args[0] == "--verbose" || args[0] == "-v") {
		logrus.SetLevel(logrus.DebugLevel)
		args = args[1:]
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		printUsage()
		return 0
	}

	name := args[0]
	for _, cmd := range toonCommands {
		if cmd.Name() != name {
			continue
		}

		apr, err := cmd.ArgParser().Parse(args[1:])
		if err == argparser.ErrHelp {
			cli.PrintUsage(cmd)
			return 0
		}
		if err != nil {
			cli.PrintErrln(err.Error())
			return 1
		}

		return cmd.Exec(context.Background(), apr)
	}

	cli.PrintErrln("unknown command: " + name)
	printUsage()
	return 1
}

func printUsage() {
	cli.Println("usage: toon [--verbose] <command> [options] <file>")
	cli.Println()
	cli.Println("commands:")
	for _, cmd := range toonCommands {
		cli.Printf("  %-10s %s\n", cmd.Name(), cmd.Description())
	}
}
