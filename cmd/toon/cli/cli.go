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

// Package cli defines the command interface and output helpers for the toon
// command line tool.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/toonlite/toonlite/libraries/utils/argparser"
)

// Command is the interface which defines a toon cli command.
type Command interface {
	// Name returns what is used on the command line to invoke the command.
	Name() string
	// Description returns a description of the command.
	Description() string
	// ArgParser returns the parser for the command's flags.
	ArgParser() *argparser.ArgParser
	// Exec executes the command and returns its exit code.
	Exec(ctx context.Context, apr *argparser.ArgParseResults) int
}

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// Println writes a line to standard out.
func Println(a ...interface{}) {
	fmt.Fprintln(os.Stdout, a...)
}

// Printf writes formatted output to standard out.
func Printf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stdout, format, a...)
}

// PrintErrln writes a line to standard error in red.
func PrintErrln(a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString(fmt.Sprint(a...)))
}

// PrintOKln writes a line to standard out in green.
func PrintOKln(a ...interface{}) {
	fmt.Fprintln(os.Stdout, color.GreenString(fmt.Sprint(a...)))
}

// PrintUsage writes a command's flag summary to standard error.
func PrintUsage(cmd Command) {
	fmt.Fprintf(os.Stderr, "usage: toon %s [options] <file>\n", cmd.Name())
	for _, opt := range cmd.ArgParser().Supported {
		name := "--" + opt.Name
		if opt.Abbrev != "" {
			name = "-" + opt.Abbrev + ", " + name
		}
		if opt.ValDesc != "" {
			name += " <" + opt.ValDesc + ">"
		}
		fmt.Fprintf(os.Stderr, "  %-28s %s\n", name, opt.Desc)
	}
}
