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
	"sort"
	"strings"
)

// label is a (name, value) pair discovered during Pass One: either a code
// address or a .LABEL/.DATA value.
type label struct {
	name string
	val  byte
}

// labelTable accumulates labels in declaration order during Pass One and
// is sorted once afterward to allow the binary-search lookups Pass Two
// performs. Duplicate detection happens at the first post-sort lookup of
// a name by inspecting both of its sorted neighbours, mirroring the
// original implementation's deferred check rather than rejecting
// duplicates eagerly at insert time.
type labelTable struct {
	entries []label
	sorted  bool
}

func (t *labelTable) insert(name string, val byte) error {
	if len(t.entries) >= MaxLabels {
		return &Error{Kind: ErrManyLabels}
	}
	t.entries = append(t.entries, label{name: name, val: val})
	t.sorted = false
	return nil
}

// last returns the most recently inserted label, in declaration order.
// Used by Pass One to reject two label definitions at the same address
// with nothing between them.
func (t *labelTable) last() (label, bool) {
	if len(t.entries) == 0 {
		return label{}, false
	}
	return t.entries[len(t.entries)-1], true
}

func (t *labelTable) sortByName() {
	sort.Slice(t.entries, func(i, j int) bool {
		return strings.ToUpper(t.entries[i].name) < strings.ToUpper(t.entries[j].name)
	})
	t.sorted = true
}

// find looks up name, sorting the table on first use if needed. It
// reports a DuplicateLabel error if name appears more than once, mirrored
// from the original's bsearch-then-check-neighbours approach. The spec's
// stated case-insensitivity for labels governs the comparison key here,
// even though the original reference implementation's qsort/bsearch
// compared names with a plain case-sensitive strcmp (see DESIGN.md).
func (t *labelTable) find(name string) (label, bool, error) {
	if !t.sorted {
		t.sortByName()
	}
	key := strings.ToUpper(name)
	i := sort.Search(len(t.entries), func(i int) bool {
		return strings.ToUpper(t.entries[i].name) >= key
	})
	if i >= len(t.entries) || !strings.EqualFold(t.entries[i].name, name) {
		return label{}, false, nil
	}
	if i > 0 && strings.EqualFold(t.entries[i-1].name, name) {
		return label{}, false, &Error{Kind: ErrDuplicateLabel}
	}
	if i+1 < len(t.entries) && strings.EqualFold(t.entries[i+1].name, name) {
		return label{}, false, &Error{Kind: ErrDuplicateLabel}
	}
	return t.entries[i], true, nil
}

// setValue updates the stored value for an already-inserted label, used
// by Pass Two to patch a .DATA label's provisional zero value to its real
// address.
func (t *labelTable) setValue(name string, val byte) {
	key := strings.ToUpper(name)
	for i := range t.entries {
		if strings.ToUpper(t.entries[i].name) == key {
			t.entries[i].val = val
			return
		}
	}
}

var registerNumbers = map[string]int{
	"R0": 0, "R1": 1, "R2": 2, "R3": 3,
	"R4": 4, "R5": 5, "R6": 6, "R7": 7,
	"FLAGS": 6, "SP": 7,
}

// regnum maps a register name (R0..R7, FLAGS, SP) to 0..7, or -1 if s is
// not a register name.
func regnum(s string) int {
	if n, ok := registerNumbers[strings.ToUpper(s)]; ok {
		return n
	}
	return -1
}

func isReserved(s string) bool {
	u := strings.ToUpper(s)
	if _, ok := registerNumbers[u]; ok {
		return true
	}
	class, _ := classifyInstruction(u)
	return class != shapeNone
}

// isLabelChar reports whether c may appear after the first character of
// a label: letter, digit or underscore.
func isLabelChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// labelSyntax reports whether s has valid label syntax:
// letter (letter|digit|'_')*.
func labelSyntax(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLabelChar(s[i]) {
			return false
		}
	}
	return true
}
