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

import "testing"

func TestCursor_tokenize(t *testing.T) {
	lines := []sourceLine{{Text: `MOV R1, [R2]`, Num: 1}}
	c := newCursor(lines)
	if err := c.firstLine(); err != nil {
		t.Fatal(err)
	}
	var got []string
	for {
		tok := c.current()
		if tok.Empty() {
			break
		}
		got = append(got, tok.text)
		if _, err := c.nextToken(); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"MOV", "R1", ",", "[", "R2", "]"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCursor_quotedString(t *testing.T) {
	lines := []sourceLine{{Text: `.DATA greet "Hi \"there\""`, Num: 1}}
	c := newCursor(lines)
	if err := c.firstLine(); err != nil {
		t.Fatal(err)
	}
	c.nextToken() // greet
	tok, err := c.nextToken()
	if err != nil {
		t.Fatal(err)
	}
	want := `"Hi \"there\""`
	if tok.text != want {
		t.Errorf("quoted token = %q, want %q", tok.text, want)
	}
}

func TestCursor_unclosedString(t *testing.T) {
	lines := []sourceLine{{Text: `.DATA greet "Hi`, Num: 1}}
	c := newCursor(lines)
	if err := c.firstLine(); err != nil {
		t.Fatal(err)
	}
	c.nextToken() // greet
	_, err := c.nextToken()
	aerr, ok := err.(*Error)
	if !ok || aerr.Kind != ErrUnclosedString {
		t.Fatalf("nextToken() error = %v, want ErrUnclosedString", err)
	}
}

func TestCursor_multiline(t *testing.T) {
	lines := []sourceLine{{Text: "HLT", Num: 1}, {Text: "NOP", Num: 2}}
	c := newCursor(lines)
	if err := c.firstLine(); err != nil {
		t.Fatal(err)
	}
	if !c.current().Eq("HLT") {
		t.Fatalf("current() = %q, want HLT", c.current().text)
	}
	if err := c.nextLine(); err != nil {
		t.Fatal(err)
	}
	if !c.current().Eq("NOP") {
		t.Fatalf("current() = %q, want NOP", c.current().text)
	}
	if err := c.nextLine(); err != nil {
		t.Fatal(err)
	}
	if c.hasLine() {
		t.Fatal("hasLine() = true after the last line")
	}
}

func TestToken_eqIsCaseInsensitive(t *testing.T) {
	tok := token{text: "Mov"}
	if !tok.Eq("mov") || !tok.Eq("MOV") {
		t.Fatal("Eq should be case-insensitive")
	}
}
