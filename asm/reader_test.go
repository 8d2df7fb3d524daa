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
	"strings"
	"testing"
)

func TestTrimLine(t *testing.T) {
	data := []struct {
		in   string
		want string
	}{
		{"  MOV R1, 5  ", "MOV R1, 5"},
		{"MOV R1, 5 ; a comment", "MOV R1, 5"},
		{`.TITLE "a ; b" ; real comment`, `.TITLE "a ; b"`},
		{"; only a comment", ""},
		{"", ""},
	}
	for _, d := range data {
		if got := trimLine([]byte(d.in)); got != d.want {
			t.Errorf("trimLine(%q) = %q, want %q", d.in, got, d.want)
		}
	}
}

func TestReadSource(t *testing.T) {
	lines, err := readSource(strings.NewReader("HLT\n  NOP ; x\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []sourceLine{{Text: "HLT", Num: 1}, {Text: "NOP", Num: 2}}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestReadSource_eot(t *testing.T) {
	lines, err := readSource(strings.NewReader("HLT\nNOP\x04garbage"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[1].Text != "NOP" {
		t.Fatalf("got %+v, want 2 lines ending at NOP", lines)
	}
}

func TestReadSource_maxLength(t *testing.T) {
	longLine := strings.Repeat("A", MaxLineLength+1) + "\nHLT\n"
	_, err := readSource(strings.NewReader(longLine))
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != ErrMaxLengthExceeded {
		t.Fatalf("readSource() error = %v, want ErrMaxLengthExceeded", err)
	}
}

func TestReadSource_maxLengthAllowedAtEOF(t *testing.T) {
	// exactly MaxLineLength bytes with stream EOF immediately after: this is
	// indistinguishable from a line that was merely missing its trailing
	// newline, so it must be accepted (spec §4.1).
	lastLine := strings.Repeat("A", MaxLineLength)
	_, err := readSource(strings.NewReader(lastLine))
	if err != nil {
		t.Fatalf("unexpected error for the final line with no trailing newline: %v", err)
	}
}
