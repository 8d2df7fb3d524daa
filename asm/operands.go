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

import "strings"

// shapeClass names one of the six syntactic patterns an instruction may
// take (spec §4.5).
type shapeClass int

const (
	shapeNone shapeClass = iota
	shapeNoArg
	shapeReg
	shapeN
	shapeOp1
	shapeRegOp2
	shapeRegN
)

var noArgPrefixes = map[string]string{
	"HLT":    "00000000",
	"NOP":    "00000001",
	"RETURN": "00001111",
}

var regPrefixes = map[string]string{
	"RSHIFT": "10100",
	"LSHIFT": "11000",
	"PUSH":   "11100",
	"POP":    "11110",
}

var nPrefixes = map[string]string{
	"JC":   "00000100",
	"JNC":  "00000101",
	"JZ":   "00000110",
	"JNZ":  "00000111",
	"JS":   "00001010",
	"JNS":  "00001011",
	"JV":   "00001100",
	"JNV":  "00001101",
	"CALL": "00001110",
}

var op1Prefixes = map[string]string{
	"JMP": "0000001",
}

var regOp2Prefixes = map[string]string{
	"MOV":   "0001",
	"ADD":   "0010",
	"SUB":   "0011",
	"ROR":   "0100",
	"AND":   "0101",
	"OR":    "0110",
	"XOR":   "0111",
	"STORE": "1000",
	"LOAD":  "1001",
	"CMP":   "1011",
}

var regNPrefixes = map[string]string{
	"BIT": "11010",
}

// classifyInstruction reports which shape class, if any, mnemonic belongs
// to, and the opcode-prefix bit-string the encoder should write into the
// first word's RAM cell. Pure: unlike the original instr_* family, it
// never touches RAM itself.
func classifyInstruction(mnemonic string) (shapeClass, string) {
	u := strings.ToUpper(mnemonic)
	if p, ok := noArgPrefixes[u]; ok {
		return shapeNoArg, p
	}
	if p, ok := regPrefixes[u]; ok {
		return shapeReg, p
	}
	if p, ok := nPrefixes[u]; ok {
		return shapeN, p
	}
	if p, ok := op1Prefixes[u]; ok {
		return shapeOp1, p
	}
	if p, ok := regOp2Prefixes[u]; ok {
		return shapeRegOp2, p
	}
	if p, ok := regNPrefixes[u]; ok {
		return shapeRegN, p
	}
	return shapeNone, ""
}

// instrSize1 reports whether s is a single-word instruction mnemonic.
func instrSize1(s string) bool {
	u := strings.ToUpper(s)
	_, ok := noArgPrefixes[u]
	if ok {
		return true
	}
	_, ok = regPrefixes[u]
	return ok
}

// instrSize2 reports whether s is a two-word instruction mnemonic.
func instrSize2(s string) bool {
	u := strings.ToUpper(s)
	if _, ok := nPrefixes[u]; ok {
		return true
	}
	if _, ok := op1Prefixes[u]; ok {
		return true
	}
	if _, ok := regOp2Prefixes[u]; ok {
		return true
	}
	_, ok := regNPrefixes[u]
	return ok
}

// isLoadStore reports whether mnemonic is STORE or LOAD, whose op2 must
// be bracketed.
func isLoadStore(mnemonic string) bool {
	u := strings.ToUpper(mnemonic)
	return u == "STORE" || u == "LOAD"
}
