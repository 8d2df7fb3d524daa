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
	"io"

	"github.com/pkg/errors"
)

// sourceLine is one line of trimmed source text, numbered from 1.
type sourceLine struct {
	Text string
	Num  int
}

// readSource consumes r line by line. An ASCII EOT (0x04) byte truncates
// the current line and stops reading entirely, matching a Ctrl-D paste
// session being ended mid-line. Each line is trimmed (comment stripping
// and whitespace, §4.1).
func readSource(r io.Reader) ([]sourceLine, error) {
	br := bufio.NewReader(r)
	var lines []sourceLine
	num := 0
	for {
		raw, eotHit, err := readRawLine(br)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			break
		}
		num++
		lines = append(lines, sourceLine{Text: trimLine(raw), Num: num})
		if eotHit {
			break
		}
	}
	return lines, nil
}

// readRawLine reads one line: up to and including a '\n', up to an EOT
// byte (which is reported via eotHit and not included in the returned
// line), or up to EOF; a nil line means the input is exhausted. A line
// that reaches MaxLineLength bytes without a newline is rejected unless
// the stream ends right there, so a final line of exactly MaxLineLength
// bytes with no trailing newline is accepted and any longer line is not.
func readRawLine(br *bufio.Reader) (line []byte, eotHit bool, err error) {
	var buf []byte
	for {
		b, rerr := br.ReadByte()
		if rerr == io.EOF {
			if len(buf) == 0 {
				return nil, false, nil
			}
			return buf, false, nil
		}
		if rerr != nil {
			return nil, false, errors.Wrap(rerr, "read source failed")
		}
		if b == eot {
			return buf, true, nil
		}
		if b == '\n' {
			if buf == nil {
				buf = []byte{} // an empty line, not the end of input
			}
			return buf, false, nil
		}
		buf = append(buf, b)
		if len(buf) >= MaxLineLength {
			if _, perr := br.Peek(1); perr == io.EOF {
				return buf, false, nil
			}
			return nil, false, newErrNoLine(ErrMaxLengthExceeded)
		}
	}
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// trimLine strips everything from the first unquoted ';' onward, then
// trims leading and trailing whitespace from what remains. \" inside a
// quoted string does not terminate the quote.
func trimLine(b []byte) string {
	end := len(b)
	quoted := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == '"' && (i == 0 || b[i-1] != '\\') {
			quoted = !quoted
		}
		if !quoted && c == ';' {
			end = i
			break
		}
	}
	start := 0
	for start < end && isSpaceByte(b[start]) {
		start++
	}
	for end > start && isSpaceByte(b[end-1]) {
		end--
	}
	return string(b[start:end])
}
