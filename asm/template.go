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

package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Stokpan/E80/internal/e80io"
)

// emitTemplate reads template line by line and writes the result to dst,
// substituting four placeholders (spec §4.7):
//
//	TITLE_PLACEHOLDER         -> "-- " + the .TITLE string, or DefaultTitle
//	a line containing DefaultFrequency -> that line, %d-formatted with img.freq
//	a line containing SimDIP          -> that line, %s-formatted with img.simdip
//	MACHINE_CODE_PLACEHOLDER  -> one VHDL line per populated RAM address
//
// All other lines pass through unmodified.
func emitTemplate(template io.Reader, dst io.Writer, img *image) error {
	w := e80io.NewErrWriter(dst)
	scanner := bufio.NewScanner(template)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "TITLE_PLACEHOLDER"):
			title := img.title
			if title == "" {
				title = DefaultTitle
			}
			fmt.Fprintf(w, "-- %s\n", title)
		case strings.Contains(line, "DefaultFrequency"):
			fmt.Fprintf(w, line+"\n", img.freq)
		case strings.Contains(line, "SimDIP"):
			fmt.Fprintf(w, line+"\n", string(img.simdip[:]))
		case strings.Contains(line, "MACHINE_CODE_PLACEHOLDER"):
			writeMachineCode(w, img)
		default:
			w.WriteString(line)
			w.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read template failed")
	}
	if w.Err != nil {
		return w.Err
	}
	return nil
}

// writeMachineCode renders one VHDL line per populated RAM address,
// pairing a two-word instruction's first and second words on a single
// line (addr => "instr1", addr+1 => "instr2" -- comment), matching the
// original template's fixed-column layout (spec §4.7). A cell carries
// a comment exactly when it is the last word of an instruction or a
// .DATA element, so a populated, comment-less cell is always followed
// immediately by the comment-bearing second word of the same
// instruction.
func writeMachineCode(w *e80io.ErrWriter, img *image) {
	var b strings.Builder
	var hex string
	for addr := 0; addr < RAMSize; addr++ {
		c := &img.ram[addr]
		if !c.used {
			continue
		}
		fmt.Fprintf(&b, "%d", addr)
		n, _ := strconv.ParseUint(c.String(), 2, 8)

		var spaces int
		if b.Len() < 15 {
			// first word of the line: space for a 1-3 digit address.
			spaces = 4 - b.Len()
			if c.data {
				hex = "data"
			} else {
				hex = fmt.Sprintf("%02X", n)
			}
		} else {
			// second word of a two-word instruction: append its hex
			// digits after the first word's, giving a 4-digit combined
			// hex value for the line's comment.
			spaces = 23 - b.Len()
			hex += fmt.Sprintf("%02X", n)
		}
		fmt.Fprintf(&b, "%*c=> \"%s\", ", spaces, ' ', c.String())

		if c.comment != "" {
			spaces = 39 - b.Len()
			fmt.Fprintf(&b, "%*c-- %-6s%s", spaces, ' ', hex, c.comment)
			w.WriteString(b.String())
			w.WriteString("\n")
			b.Reset()
			hex = ""
		}
	}
}
