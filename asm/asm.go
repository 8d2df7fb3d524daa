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

// Package asm implements a two-pass assembler for the E80 instruction
// set, emitting a VHDL initial-RAM image by substituting placeholders
// in a template file. See doc.go for the instruction and directive
// reference.
package asm

import "io"

// Result is a successfully assembled program: the populated RAM image
// and the inputs needed to render it, either into a template (Emit) or
// as a standalone disassembly listing (Disassemble).
type Result struct {
	img *image
}

// Assemble reads E80 source from src and assembles it into a Result.
// It stops and returns the first *Error encountered; there is no error
// accumulation (spec §6).
func Assemble(src io.Reader) (*Result, error) {
	lines, err := readSource(src)
	if err != nil {
		return nil, err
	}

	a := &Assembler{lines: lines, img: newImage()}

	cur := newCursor(lines)
	if err := a.passOne(cur); err != nil {
		return nil, err
	}
	a.labels.sortByName()

	cur = newCursor(lines)
	if err := cur.firstLine(); err != nil {
		return nil, err
	}
	if err := a.passTwoDirectives(cur); err != nil {
		return nil, err
	}
	if err := a.passTwoInstructions(cur); err != nil {
		return nil, err
	}

	return &Result{img: a.img}, nil
}

// Emit writes the VHDL source to dst by substituting the machine code,
// title, frequency and simulated DIP-switch placeholders into template.
func (r *Result) Emit(template io.Reader, dst io.Writer) error {
	return emitTemplate(template, dst, r.img)
}

// Disassemble returns the program's populated addresses, lowest first
// (spec §4.11): one entry per used address, regardless of whether it is
// the first or second word of a two-word instruction. Unlike the
// template's machine-code section, it does not pair the two words of an
// instruction onto one entry and carries no hex column.
func (r *Result) Disassemble() []DisassembledCell {
	var out []DisassembledCell
	for addr, c := range r.img.ram {
		if !c.used {
			continue
		}
		out = append(out, DisassembledCell{
			Addr:    addr,
			Bits:    c.String(),
			Comment: c.comment,
			Data:    c.data,
		})
	}
	return out
}

// DisassembledCell is one populated RAM address as reported by
// Result.Disassemble.
type DisassembledCell struct {
	Addr    int
	Bits    string
	Comment string
	Data    bool
}
