// This file is part of the E80 assembler.
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

// Command e80asm translates E80 assembly read from stdin into VHDL
// firmware written to stdout, using Template.vhd as the substitution
// source.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Stokpan/E80/asm"
)

const banner = `E80 CPU Assembler - translates E80 assembly to firmware VHDL code.

e80asm [-dump] [/Q]

  -dump       Print a disassembly listing to stderr after assembling.
  /Q          Silent mode, hides this message.

I/O is handled via stdin/stdout. E.g. to read 'program.e80asm' and
write the result to 'firmware.vhd', type:

e80asm < program.e80asm > firmware.vhd

You can also paste your code here and then press Ctrl-D & [Enter] to
translate it, or Ctrl-C to exit.

`

func main() {
	quiet, args := stripQuietFlag(os.Args[1:])
	dump := flag.Bool("dump", false, "print a disassembly listing to stderr after assembling")
	flag.CommandLine.Parse(args)

	if !quiet {
		fmt.Fprint(os.Stderr, banner)
	}
	fmt.Fprint(os.Stderr, "Assembling... ")

	template, err := os.Open(asm.TemplateFileName)
	if err != nil {
		exit(asm.ErrOpenTemplateFailure())
	}
	defer template.Close()

	result, err := asm.Assemble(os.Stdin)
	if err != nil {
		exit(err)
	}

	if err := result.Emit(template, os.Stdout); err != nil {
		exit(err)
	}

	if *dump {
		printDump(result)
	}

	fmt.Fprintln(os.Stderr, "Done.")
}

// stripQuietFlag removes every "/Q" or "/q" switch (the original
// implementation's silent-mode flag) from args before they reach the
// standard flag package, which would otherwise reject a "/"-prefixed
// argument.
func stripQuietFlag(args []string) (quiet bool, rest []string) {
	for _, a := range args {
		if a == "/Q" || a == "/q" {
			quiet = true
			continue
		}
		rest = append(rest, a)
	}
	return quiet, rest
}

func printDump(result *asm.Result) {
	fmt.Fprintln(os.Stderr, "\nDisassembly:")
	for _, c := range result.Disassemble() {
		kind := "instr"
		if c.Data {
			kind = "data "
		}
		fmt.Fprintf(os.Stderr, "%3d %s %s  %s\n", c.Addr, c.Bits, kind, c.Comment)
	}
}

// exit reports err and stops the process with its *asm.Error.Kind as
// the exit code, or 1 for any other kind of failure (e.g. an I/O error
// reading the source or writing the output).
func exit(err error) {
	fmt.Fprintf(os.Stderr, "\n%v\n", err)
	if aerr, ok := err.(*asm.Error); ok {
		os.Exit(int(aerr.Kind))
	}
	os.Exit(1)
}
