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

import "fmt"

// ramCell bundles one RAM byte's bit-string with its disassembly comment.
// The original implementation keeps these as two parallel 254-entry
// arrays (Out.ram, Out.comment) that the assembler must keep in lockstep
// by hand; bundling them here removes that synchronization hazard (spec
// §3's redesign).
type ramCell struct {
	bits    [8]byte
	comment string
	used    bool
	data    bool // populated by a .DATA element, not an instruction word
}

func blankCell() ramCell {
	return ramCell{bits: [8]byte{'0', '0', '0', '0', '0', '0', '0', '0'}}
}

func (c ramCell) String() string { return string(c.bits[:]) }

// image is the OutputImage: the assembled RAM, title, clock frequency and
// simulated DIP-switch byte, plus the address counter Pass Two advances
// as it writes.
type image struct {
	ram      [RAMSize]ramCell
	addr     int
	title    string
	titleSet bool
	freq     int
	simdip   [8]byte
}

func newImage() *image {
	img := &image{freq: DefaultFrequency}
	for i := range img.ram {
		img.ram[i] = blankCell()
	}
	for i := range img.simdip {
		img.simdip[i] = '0'
	}
	return img
}

// write stores prefix (left-aligned) into the current address's cell and
// marks it used, reporting false if the current address is outside the
// 254-byte space (the caller turns that into a RAM_LIMIT *Error with its
// own line context). Instruction words have already passed the same
// bound in Pass One's advanceAddr check; .DATA bytes are not counted in
// Pass One, so for them this is where RAM_LIMIT is first detected.
func (img *image) write(prefix string) bool {
	if img.addr < 0 || img.addr >= RAMSize {
		return false
	}
	c := &img.ram[img.addr]
	copy(c.bits[:], prefix)
	c.used = true
	return true
}

// writeBits writes num's [high:low] bits (MSB-first, matching VHDL's
// `downto` bit order) into dst.
func writeBits(dst *[8]byte, num byte, high, low int) {
	msb := 7 - high
	lsb := 7 - low
	for i := lsb; i >= msb; i-- {
		if num&1 != 0 {
			dst[i] = '1'
		} else {
			dst[i] = '0'
		}
		num >>= 1
	}
}

// bitcopy writes num's [high:low] bits (MSB-first, matching VHDL's
// `downto` bit order) into the current address's cell.
func (img *image) bitcopy(num byte, high, low int) {
	c := &img.ram[img.addr]
	writeBits(&c.bits, num, high, low)
	c.used = true
}

func (img *image) setComment(format string, args ...any) {
	img.ram[img.addr].comment = fmt.Sprintf(format, args...)
}

// markData flags the current address as holding a .DATA element rather
// than an instruction word. The original implementation infers this at
// template-emission time from whether the comment's first character's
// code is below 57 (digits and the opening quote of a 'c' char comment
// both qualify, mnemonics don't); tagging it explicitly here avoids
// reviving that coincidence (spec §4.11's disassemble redesign).
func (img *image) markData() {
	img.ram[img.addr].data = true
}

func (img *image) appendComment(s string) {
	img.ram[img.addr].comment += s
}

// advance moves to the next address. It never fails: every write it
// follows has already been bounds-checked, and overshooting to exactly
// RAMSize with no further write is harmless (mirrors the original
// nextaddr()'s tolerance of a one-past-the-end counter value).
func (img *image) advance() {
	img.addr++
}

// advanceAddr reports whether n more bytes can be written starting at
// *addr and, if so, advances *addr by n. Pass One uses it to simulate
// address bookkeeping without a RAM array.
func advanceAddr(addr *int, n int) bool {
	if *addr+n > RAMSize {
		return false
	}
	*addr += n
	return true
}
