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

package asm_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Stokpan/E80/asm"
)

func assembleCells(t *testing.T, src string) []asm.DisassembledCell {
	t.Helper()
	result, err := asm.Assemble(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble(%q) unexpected error: %v", src, err)
	}
	return result.Disassemble()
}

func cellAt(t *testing.T, cells []asm.DisassembledCell, addr int) asm.DisassembledCell {
	t.Helper()
	for _, c := range cells {
		if c.Addr == addr {
			return c
		}
	}
	t.Fatalf("no populated cell at address %d", addr)
	return asm.DisassembledCell{}
}

// Scenario 1: a single no-argument instruction.
func TestAssemble_hltAlone(t *testing.T) {
	cells := assembleCells(t, "HLT")
	if len(cells) != 1 {
		t.Fatalf("got %d populated cells, want 1", len(cells))
	}
	c := cellAt(t, cells, 0)
	if c.Bits != "00000000" || c.Comment != "HLT" {
		t.Errorf("cell 0 = %+v", c)
	}
}

// Scenario 2: a .LABEL constant, defined earlier, used as a JMP target.
func TestAssemble_labelDirectiveAndJump(t *testing.T) {
	cells := assembleCells(t, ".LABEL X 5\nJMP X")
	if len(cells) != 2 {
		t.Fatalf("got %d populated cells, want 2", len(cells))
	}
	c0, c1 := cellAt(t, cells, 0), cellAt(t, cells, 1)
	if c0.Bits != "00000010" {
		t.Errorf("cell 0 = %+v, want bits 00000010", c0)
	}
	if c1.Bits != "00000101" || c1.Comment != "JMP 5" {
		t.Errorf("cell 1 = %+v", c1)
	}
}

// Scenario 3: a code label used by a later JMP, resolving to its own address.
func TestAssemble_codeLabelLoop(t *testing.T) {
	cells := assembleCells(t, "loop: NOP\nJMP loop")
	c0, c1, c2 := cellAt(t, cells, 0), cellAt(t, cells, 1), cellAt(t, cells, 2)
	if c0.Bits != "00000001" || c0.Comment != "NOP" {
		t.Errorf("cell 0 = %+v", c0)
	}
	if c1.Bits != "00000010" {
		t.Errorf("cell 1 = %+v", c1)
	}
	if c2.Bits != "00000000" || c2.Comment != "JMP 0" {
		t.Errorf("cell 2 = %+v", c2)
	}
}

// Scenario 4: an out-of-range immediate gets a signed-equivalent comment.
func TestAssemble_movSignedComment(t *testing.T) {
	cells := assembleCells(t, "MOV R1, 200")
	c0, c1 := cellAt(t, cells, 0), cellAt(t, cells, 1)
	if c0.Bits != "00010001" {
		t.Errorf("cell 0 = %+v, want bits 00010001", c0)
	}
	if c1.Bits != "11001000" || c1.Comment != "MOV R1, 200 (-56)" {
		t.Errorf("cell 1 = %+v", c1)
	}
}

// Scenario 5: LOAD/STORE require a bracketed register operand.
func TestAssemble_loadBracketedRegister(t *testing.T) {
	cells := assembleCells(t, "LOAD R2, [R3]")
	c0, c1 := cellAt(t, cells, 0), cellAt(t, cells, 1)
	if c0.Bits != "10011000" {
		t.Errorf("cell 0 = %+v, want bits 10011000", c0)
	}
	if c1.Bits != "00100011" || c1.Comment != "LOAD R2, [R3]" {
		t.Errorf("cell 1 = %+v", c1)
	}
}

// Scenario 6: a .DATA string in the preamble reserves RAM after the code
// that follows it, each character getting its own RAM byte and
// disassembly comment, with the label resolving to the first data byte.
func TestAssemble_dataString(t *testing.T) {
	result, err := asm.Assemble(strings.NewReader(".DATA greet \"Hi\"\nHLT\nHLT\nHLT\nHLT"))
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}
	cells := result.Disassemble()
	c4, c5 := cellAt(t, cells, 4), cellAt(t, cells, 5)
	if c4.Comment != "'H' (72)" || !c4.Data {
		t.Errorf("cell 4 = %+v", c4)
	}
	if c5.Comment != "'i' (105)" || !c5.Data {
		t.Errorf("cell 5 = %+v", c5)
	}
}

// A .DATA label used as a jump target resolves to the address it was
// actually placed at (the code size computed during pass one), not to 0.
func TestAssemble_dataLabelResolvesAfterCode(t *testing.T) {
	cells := assembleCells(t, ".DATA greet \"Hi\"\nJMP greet\nHLT\nHLT\nHLT")
	jmp := cellAt(t, cells, 1)
	if jmp.Comment != "JMP 5" {
		t.Errorf("JMP operand = %+v, want comment %q (greet should resolve to address 5)", jmp, "JMP 5")
	}
	h := cellAt(t, cells, 5)
	if h.Comment != "'H' (72)" || !h.Data {
		t.Errorf("cell 5 = %+v, want the data byte 'greet' resolved to", h)
	}
}

// Scenario 7: a register name cannot be used as a label.
func TestAssemble_reservedLabelRejected(t *testing.T) {
	_, err := asm.Assemble(strings.NewReader("R0: NOP"))
	aerr, ok := err.(*asm.Error)
	if !ok || aerr.Kind != asm.ErrReserved {
		t.Fatalf("Assemble() error = %v, want ErrReserved", err)
	}
}

// Scenario 8: a line longer than the configured maximum is rejected when
// more input follows it.
func TestAssemble_maxLineLength(t *testing.T) {
	_, err := asm.Assemble(strings.NewReader(strings.Repeat("A", asm.MaxLineLength+1) + "\nHLT\n"))
	aerr, ok := err.(*asm.Error)
	if !ok || aerr.Kind != asm.ErrMaxLengthExceeded {
		t.Fatalf("Assemble() error = %v, want ErrMaxLengthExceeded", err)
	}
}

func TestAssemble_duplicateLabel(t *testing.T) {
	_, err := asm.Assemble(strings.NewReader("loop: NOP\nloop: NOP"))
	if err == nil {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestAssemble_ramLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < asm.RAMSize; i++ {
		b.WriteString("HLT\n")
	}
	b.WriteString("HLT\n") // one more than fits
	_, err := asm.Assemble(strings.NewReader(b.String()))
	aerr, ok := err.(*asm.Error)
	if !ok || aerr.Kind != asm.ErrRAMLimit {
		t.Fatalf("Assemble() error = %v, want ErrRAMLimit", err)
	}
}

// Full-disassembly comparison for a short mixed program, using go-cmp to
// diff the whole []DisassembledCell at once rather than checking one
// field at a time.
func TestAssemble_disassembleDiff(t *testing.T) {
	result, err := asm.Assemble(strings.NewReader("loop: NOP\nJMP loop"))
	if err != nil {
		t.Fatal(err)
	}
	want := []asm.DisassembledCell{
		{Addr: 0, Bits: "00000001", Comment: "NOP"},
		{Addr: 1, Bits: "00000010", Comment: ""},
		{Addr: 2, Bits: "00000000", Comment: "JMP 0"},
	}
	if diff := cmp.Diff(want, result.Disassemble()); diff != "" {
		t.Errorf("Disassemble() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_fitsExactly(t *testing.T) {
	var b strings.Builder
	for i := 0; i < asm.RAMSize; i++ {
		b.WriteString("HLT\n")
	}
	result, err := asm.Assemble(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("exactly %d single-word instructions should fit: %v", asm.RAMSize, err)
	}
	if n := len(result.Disassemble()); n != asm.RAMSize {
		t.Fatalf("got %d populated cells, want %d", n, asm.RAMSize)
	}
}
