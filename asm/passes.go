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
	"strconv"
	"strings"
)

// Assembler bundles every stage's state for one translation: the stored
// source lines, the label table built in Pass One, and the output image
// Pass Two writes into. The original implementation keeps this as two
// process-wide global structs (In, Out); spec §9's Design Notes call for
// an explicit value instead, so every stage here is a method on
// *Assembler with no package-level mutable state.
type Assembler struct {
	lines  []sourceLine
	labels labelTable
	img    *image
}

// checkLabelName validates name's syntax and reservedness, anchoring any
// error at cur's current position.
func checkLabelName(cur *cursor, name string) (ok bool, err error) {
	if !labelSyntax(name) {
		return false, nil
	}
	if isReserved(name) {
		return false, newErr(cur, ErrReserved)
	}
	return true, nil
}

// passOne walks the source once, collecting labels and simulating the
// address counter (spec §4.3). It never writes img's RAM cells; it only
// establishes where each label points and rejects programs that
// obviously can't fit or whose labels are malformed. On return,
// a.img.addr holds the total size of the instruction stream, which
// passTwoDirectives needs as the starting address for .DATA (matching
// main.c's Out.addr, set to 0 once before pass one and never reset
// before the directive loop, so .DATA lands after the code).
func (a *Assembler) passOne(cur *cursor) error {
	addr := 0
	if err := cur.firstLine(); err != nil {
		return err
	}
	for cur.hasLine() {
		tok := cur.current()
		switch {
		case tok.Eq(".LABEL") || tok.Eq(".NAME"):
			nameTok, err := cur.nextToken()
			if err != nil {
				return err
			}
			ok, err := checkLabelName(cur, nameTok.text)
			if err != nil {
				return err
			}
			if !ok {
				return newErr(cur, ErrLabel)
			}
			numTok, err := cur.nextToken()
			if err != nil {
				return err
			}
			n, nerr := parseNumber(numTok.text)
			if nerr != numErrNone {
				return newErr(cur, ErrNumber)
			}
			if err := a.labels.insert(nameTok.text, n); err != nil {
				return err
			}

		case tok.Eq(".DATA"):
			nameTok, err := cur.nextToken()
			if err != nil {
				return err
			}
			ok, err := checkLabelName(cur, nameTok.text)
			if err != nil {
				return err
			}
			if !ok {
				return newErr(cur, ErrLabel)
			}
			// the true address is patched in during Pass Two, once the
			// preceding directives and code have claimed their addresses.
			if err := a.labels.insert(nameTok.text, 0); err != nil {
				return err
			}

		case instrSize1(tok.text):
			if !advanceAddr(&addr, 1) {
				return newErr(cur, ErrRAMLimit)
			}

		case instrSize2(tok.text):
			if !advanceAddr(&addr, 2) {
				return newErr(cur, ErrRAMLimit)
			}

		case labelSyntax(tok.text):
			if isReserved(tok.text) {
				return newErr(cur, ErrReserved)
			}
			if last, ok := a.labels.last(); ok && int(last.val) == addr {
				return newErr(cur, ErrInstruction)
			}
			name := tok.text
			colon, err := cur.nextToken()
			if err != nil {
				return err
			}
			if !colon.Eq(":") {
				return newErr(cur, ErrInstructionColon)
			}
			if err := a.labels.insert(name, byte(addr)); err != nil {
				return err
			}
			// stay on the same line: `label: instruction` continues here.
			if _, err := cur.nextToken(); err != nil {
				return err
			}
			continue
		}
		if err := cur.nextLine(); err != nil {
			return err
		}
	}
	a.img.addr = addr
	return nil
}

// passTwoDirectives interprets the directive preamble (spec §4.4),
// sharing cur with passTwoInstructions: the first non-directive,
// non-empty token ends this phase without consuming it, so instruction
// parsing resumes exactly where directive parsing left off.
func (a *Assembler) passTwoDirectives(cur *cursor) error {
	for cur.hasLine() {
		tok := cur.current()
		switch {
		case tok.Eq(".TITLE"):
			if a.img.titleSet {
				return newErr(cur, ErrDuplicateTitle)
			}
			nt, err := cur.nextToken()
			if err != nil {
				return err
			}
			if !strings.HasPrefix(nt.text, "\"") {
				return newErr(cur, ErrUnquotedTitle)
			}
			a.img.title = unquote(nt.text)
			a.img.titleSet = true

		case tok.Eq(".FREQUENCY"):
			nt, err := cur.nextToken()
			if err != nil {
				return err
			}
			freq := parseLeadingInt(nt.text)
			if freq < MinFrequency || freq > MaxFrequency {
				return newErr(cur, ErrFrequency)
			}
			a.img.freq = freq

		case tok.Eq(".SIMDIP"):
			nt, err := cur.nextToken()
			if err != nil {
				return err
			}
			writeBits(&a.img.simdip, a.value(nt.text), 7, 0)

		case tok.Eq(".LABEL") || tok.Eq(".NAME"):
			nt, err := cur.nextToken()
			if err != nil {
				return err
			}
			if _, _, ferr := a.labels.find(nt.text); ferr != nil {
				return ferr
			}
			if _, err := cur.nextToken(); err != nil { // number, already validated
				return err
			}

		case tok.Eq(".DATA"):
			nt, err := cur.nextToken()
			if err != nil {
				return err
			}
			if _, ok, ferr := a.labels.find(nt.text); ferr != nil {
				return ferr
			} else if !ok {
				return newErr(cur, ErrLabel)
			}
			a.labels.setValue(nt.text, byte(a.img.addr))
			if err := a.encodeDataArray(cur); err != nil {
				return err
			}

		case strings.HasPrefix(tok.text, "."):
			return newErr(cur, ErrDirective)

		case tok.text != "":
			return nil // first instruction/label token: hand off, cursor untouched
		}
		// blank lines fall through here with no case matched above.
		nt, err := cur.nextToken()
		if err != nil {
			return err
		}
		if nt.text != "" {
			return newErr(cur, ErrExtraneous)
		}
		if err := cur.nextLine(); err != nil {
			return err
		}
	}
	return nil
}

// encodeDataArray writes a .DATA directive's comma-separated elements
// starting at the current address (spec §4.4).
func (a *Assembler) encodeDataArray(cur *cursor) error {
	first := true
	for {
		nt, err := cur.nextToken()
		if err != nil {
			return err
		}
		if nt.text == "" {
			if first {
				return newErr(cur, ErrArrayElement)
			}
			return newErr(cur, ErrComma)
		}
		first = false
		if strings.HasPrefix(nt.text, "\"") {
			if len(nt.text) < 3 {
				return newErr(cur, ErrEmptyString)
			}
			for i := 1; i < len(nt.text)-1; i++ {
				ch := nt.text[i]
				if !a.img.write("") {
					return newErr(cur, ErrRAMLimit)
				}
				a.img.bitcopy(ch, 7, 0)
				a.img.setComment("'%c' (%d)", ch, ch)
				a.img.markData()
				a.img.advance()
			}
		} else {
			n, nerr := parseNumber(nt.text)
			if nerr != numErrNone {
				return newErr(cur, ErrArrayElement)
			}
			if !a.img.write("") {
				return newErr(cur, ErrRAMLimit)
			}
			a.img.bitcopy(n, 7, 0)
			a.img.setComment("%s", nt.text)
			a.img.markData()
			a.img.advance()
		}
		ct, err := cur.nextToken()
		if err != nil {
			return err
		}
		if !ct.Eq(",") {
			if ct.text != "" {
				return newErr(cur, ErrComma)
			}
			break
		}
	}
	return nil
}

// value resolves s to a byte: a numeric literal if s parses as one,
// else a label lookup, else 0xFF. The original's value() returns -1 on
// total failure and most callers check that, except .SIMDIP, which
// blindly bitcopies whatever value() returns; this preserves that one
// quirk (see DESIGN.md) by returning 0xFF, the low byte of -1, for an
// unresolved token, while every other caller goes through valueOK
// instead and checks its ok result.
func (a *Assembler) value(s string) byte {
	v, ok := a.valueOK(s)
	if !ok {
		return 0xFF
	}
	return v
}

// valueOK resolves s to a byte via number(s), falling back to a label
// lookup (spec §4.5's value(s)).
func (a *Assembler) valueOK(s string) (byte, bool) {
	if n, nerr := parseNumber(s); nerr == numErrNone {
		return n, true
	}
	lbl, ok, err := a.labels.find(s)
	if err != nil || !ok {
		return 0, false
	}
	return lbl.val, true
}

// unquote strips the surrounding quotes from a quoted-string token.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "\"") && strings.HasSuffix(s, "\"") {
		return s[1 : len(s)-1]
	}
	return s
}

// passTwoInstructions encodes the instruction body (spec §4.5), sharing
// cur with passTwoDirectives so it resumes from wherever that phase
// stopped.
func (a *Assembler) passTwoInstructions(cur *cursor) error {
	a.img.addr = 0
	for cur.hasLine() {
		tok := cur.current()
		class, prefix := classifyInstruction(tok.text)
		var err error
		switch class {
		case shapeNoArg:
			err = a.encodeNoArg(cur, tok.text, prefix)
		case shapeReg:
			err = a.encodeReg(cur, tok.text, prefix)
		case shapeN:
			err = a.encodeN(cur, tok.text, prefix)
		case shapeOp1:
			err = a.encodeOp1(cur, tok.text, prefix)
		case shapeRegOp2:
			err = a.encodeRegOp2(cur, tok.text, prefix)
		case shapeRegN:
			err = a.encodeRegN(cur, tok.text, prefix)
		default:
			if _, ok, ferr := a.labels.find(tok.text); ferr != nil {
				err = ferr
			} else if ok {
				// label syntax was already checked during Pass One.
				if _, e := cur.nextToken(); e != nil {
					return e
				}
				if _, e := cur.nextToken(); e != nil {
					return e
				}
				continue
			} else if tok.text != "" {
				err = newErr(cur, ErrInstructionLabel)
			}
		}
		if err != nil {
			return err
		}
		nt, err := cur.nextToken()
		if err != nil {
			return err
		}
		if nt.text != "" {
			return newErr(cur, ErrExtraneous)
		}
		if err := cur.nextLine(); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) encodeNoArg(cur *cursor, mnemonic, prefix string) error {
	if !a.img.write(prefix) {
		return newErr(cur, ErrRAMLimit)
	}
	a.img.setComment("%s", strings.ToUpper(mnemonic))
	a.img.advance()
	return nil
}

func (a *Assembler) encodeReg(cur *cursor, mnemonic, prefix string) error {
	if !a.img.write(prefix) {
		return newErr(cur, ErrRAMLimit)
	}
	rt, err := cur.nextToken()
	if err != nil {
		return err
	}
	reg := regnum(rt.text)
	if reg < 0 {
		return newErr(cur, ErrRegister)
	}
	a.img.bitcopy(byte(reg), 2, 0)
	a.img.setComment("%s R%d", strings.ToUpper(mnemonic), reg)
	a.img.advance()
	return nil
}

func (a *Assembler) encodeN(cur *cursor, mnemonic, prefix string) error {
	if !a.img.write(prefix) {
		return newErr(cur, ErrRAMLimit)
	}
	vt, err := cur.nextToken()
	if err != nil {
		return err
	}
	n, ok := a.valueOK(vt.text)
	if !ok {
		return newErr(cur, ErrValue)
	}
	a.img.advance()
	if !a.img.write("") {
		return newErr(cur, ErrRAMLimit)
	}
	a.img.bitcopy(n, 7, 0)
	a.img.setComment("%s %d", strings.ToUpper(mnemonic), n)
	a.img.advance()
	return nil
}

func (a *Assembler) encodeOp1(cur *cursor, mnemonic, prefix string) error {
	if !a.img.write(prefix) {
		return newErr(cur, ErrRAMLimit)
	}
	ot, err := cur.nextToken()
	if err != nil {
		return err
	}
	n, numOK := a.valueOK(ot.text)
	reg := regnum(ot.text)
	switch {
	case numOK:
		a.img.bitcopy(0, 0, 0) // mode bit 0: immediate
		a.img.advance()
		if !a.img.write("") {
			return newErr(cur, ErrRAMLimit)
		}
		a.img.bitcopy(n, 7, 0)
		a.img.setComment("%s %d", strings.ToUpper(mnemonic), n)
		a.img.advance()
	case reg >= 0:
		a.img.bitcopy(1, 0, 0) // mode bit 1: register
		a.img.advance()
		if !a.img.write("00000") {
			return newErr(cur, ErrRAMLimit)
		}
		a.img.bitcopy(byte(reg), 3, 0)
		a.img.setComment("%s R%d", strings.ToUpper(mnemonic), reg)
		a.img.advance()
	default:
		return newErr(cur, ErrOp)
	}
	return nil
}

func (a *Assembler) encodeRegOp2(cur *cursor, mnemonic, prefix string) error {
	if !a.img.write(prefix) {
		return newErr(cur, ErrRAMLimit)
	}
	bracketed := isLoadStore(mnemonic)
	rt, err := cur.nextToken()
	if err != nil {
		return err
	}
	reg := regnum(rt.text)
	if reg < 0 {
		return newErr(cur, ErrRegister)
	}
	ct, err := cur.nextToken()
	if err != nil {
		return err
	}
	if !ct.Eq(",") {
		return newErr(cur, ErrComma)
	}
	commentPrefix := strings.ToUpper(mnemonic) + " R" + strconv.Itoa(reg) + ", "

	ot, err := cur.nextToken()
	if err != nil {
		return err
	}
	if bracketed {
		if !ot.Eq("[") {
			return newErr(cur, ErrLeftBracket)
		}
		commentPrefix += "["
		ot, err = cur.nextToken()
		if err != nil {
			return err
		}
	}

	n, numOK := a.valueOK(ot.text)
	reg2 := regnum(ot.text)
	switch {
	case numOK:
		a.img.bitcopy(byte(reg), 3, 0)
		a.img.advance()
		if !a.img.write("") {
			return newErr(cur, ErrRAMLimit)
		}
		a.img.bitcopy(n, 7, 0)
		if n < 128 || bracketed {
			a.img.setComment("%s%d", commentPrefix, n)
		} else {
			a.img.setComment("%s%d (-%d)", commentPrefix, n, 256-int(n))
		}
	case reg2 >= 0:
		a.img.bitcopy(0x8, 3, 0) // marker: op2 is a register
		a.img.advance()
		if !a.img.write("") {
			return newErr(cur, ErrRAMLimit)
		}
		a.img.bitcopy(byte(reg), 7, 4)
		a.img.bitcopy(byte(reg2), 3, 0)
		a.img.setComment("%sR%d", commentPrefix, reg2)
	default:
		return newErr(cur, ErrOp)
	}

	if bracketed {
		rb, err := cur.nextToken()
		if err != nil {
			return err
		}
		if !rb.Eq("]") {
			return newErr(cur, ErrRightBracket)
		}
		a.img.appendComment("]")
	}
	a.img.advance()
	return nil
}

func (a *Assembler) encodeRegN(cur *cursor, mnemonic, prefix string) error {
	if !a.img.write(prefix) {
		return newErr(cur, ErrRAMLimit)
	}
	rt, err := cur.nextToken()
	if err != nil {
		return err
	}
	reg := regnum(rt.text)
	if reg < 0 {
		return newErr(cur, ErrRegister)
	}
	ct, err := cur.nextToken()
	if err != nil {
		return err
	}
	if !ct.Eq(",") {
		return newErr(cur, ErrComma)
	}
	vt, err := cur.nextToken()
	if err != nil {
		return err
	}
	n, ok := a.valueOK(vt.text)
	if !ok {
		return newErr(cur, ErrValue)
	}
	a.img.bitcopy(byte(reg), 2, 0)
	a.img.advance()
	if !a.img.write("") {
		return newErr(cur, ErrRAMLimit)
	}
	a.img.bitcopy(n, 7, 0)
	if n < 128 {
		a.img.setComment("%s R%d, %d", strings.ToUpper(mnemonic), reg, n)
	} else {
		a.img.setComment("%s R%d, %d (-%d)", strings.ToUpper(mnemonic), reg, n, 256-int(n))
	}
	a.img.advance()
	return nil
}
