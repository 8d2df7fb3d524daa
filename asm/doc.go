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

// Package asm translates E80 assembly source into an E80 firmware VHDL
// image.
//
// The E80 is an 8-bit register machine with a 254-byte Von Neumann address
// space (code and data share RAM). Assembly is line oriented and
// case-insensitive outside of quoted strings.
//
// # Instructions
//
//	Shape        Syntax                          Encoding
//	noarg        HLT, NOP, RETURN                 full 8-bit opcode, 1 word
//	reg          RSHIFT/LSHIFT/PUSH/POP reg       5-bit prefix + 3-bit reg, 1 word
//	n            JC/JNC/JZ/JNZ/JS/JNS/JV/JNV/CALL  opcode word, then value word
//	op1          JMP op                           mode-bit word, then value/reg word
//	reg,op2      MOV/ADD/SUB/ROR/AND/OR/XOR/       opcode+reg word, then value/reg word
//	             STORE/LOAD/CMP reg, op2
//	reg,n        BIT reg, n                       prefix+reg word, then value word
//
// STORE and LOAD additionally require their op2 to be bracketed:
// STORE R0, [42].
//
// # Directives
//
//	.TITLE "string"          sets the VHDL header comment (once)
//	.FREQUENCY n             sets the clock frequency constant, 1..1000
//	.SIMDIP value            sets the simulated DIP-switch byte
//	.LABEL name number       defines a named byte value
//	.DATA name elem, elem... reserves RAM starting at the current address;
//	                         name resolves to that address. Elements are
//	                         numbers or quoted strings (emitted byte by
//	                         byte as ASCII).
//	.NAME name number        alias for .LABEL (earlier dialect, kept for
//	                         compatibility; see spec.md's Open Question)
//
// Directives must all appear before the first instruction in the source;
// once an instruction or a label definition is seen, no further directive
// is recognized even if one appears later in the file.
//
// # Labels
//
// A label is `letter (letter | digit | '_')*`, case-insensitive, and may
// not be one of the instruction mnemonics or register names (R0-R7, SP,
// FLAGS; SP aliases R7, FLAGS aliases R6). A label is defined either by
// `name:` before an instruction, or by `.LABEL`/`.DATA`.
//
// # Numbers
//
// `0x` followed by 1-2 hex digits, `0b` followed by 1-8 binary digits, or
// a decimal value 0-255 with no leading zero.
//
// # Output
//
// Assemble returns a Result holding the populated RAM image. Result.Emit
// reads a template VHDL file and substitutes the assembled program,
// title, frequency and DIP byte into its named placeholders
// (TITLE_PLACEHOLDER, DefaultFrequency, SimDIP, MACHINE_CODE_PLACEHOLDER);
// every other template line is copied through unchanged.
// Result.Disassemble returns the same populated addresses as a plain
// slice, for callers such as the -dump CLI flag that want a listing
// without a template.
package asm
