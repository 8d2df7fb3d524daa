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

// ErrKind is the closed enumeration of ways assembly can fail. Its integer
// value doubles as the process exit code.
type ErrKind int

const (
	_ ErrKind = iota // 0 is reserved for success
	ErrOpenTemplate
	ErrMaxLengthExceeded
	ErrLabel
	ErrEmptyString
	ErrUnclosedString
	ErrArrayElement
	ErrFrequency
	ErrNumber
	ErrManyLabels
	ErrDuplicateLabel
	ErrMemoryAllocation
	ErrExtraneous
	ErrDirective
	ErrInstructionLabel
	ErrInstructionColon
	ErrInstruction
	ErrReserved
	ErrRegister
	ErrValue
	ErrComma
	ErrLeftBracket
	ErrRightBracket
	ErrOp
	ErrRAMLimit
	ErrUnquotedTitle
	ErrDuplicateTitle
)

var errKindNames = map[ErrKind]string{
	ErrOpenTemplate:      "OPEN_TEMPLATE",
	ErrMaxLengthExceeded: "MAX_LENGTH_EXCEEDED",
	ErrLabel:             "LABEL",
	ErrEmptyString:       "EMPTY_STRING",
	ErrUnclosedString:    "UNCLOSED_STRING",
	ErrArrayElement:      "ARRAY_ELEMENT",
	ErrFrequency:         "FREQUENCY",
	ErrNumber:            "NUMBER",
	ErrManyLabels:        "MANY_LABELS",
	ErrDuplicateLabel:    "DUPLICATE_LABEL",
	ErrMemoryAllocation:  "MEMORY_ALLOCATION_ERROR",
	ErrExtraneous:        "EXTRANEOUS",
	ErrDirective:         "DIRECTIVE",
	ErrInstructionLabel:  "INSTRUCTION_LABEL",
	ErrInstructionColon:  "INSTRUCTION_COLON",
	ErrInstruction:       "INSTRUCTION",
	ErrReserved:          "RESERVED",
	ErrRegister:          "REGISTER",
	ErrValue:             "VALUE",
	ErrComma:             "COMMA",
	ErrLeftBracket:       "LEFTBRACKET",
	ErrRightBracket:      "RIGHTBRACKET",
	ErrOp:                "OP",
	ErrRAMLimit:          "RAM_LIMIT",
	ErrUnquotedTitle:     "UNQUOTED_TITLE",
	ErrDuplicateTitle:    "DUPLICATE_TITLE",
}

func (k ErrKind) String() string {
	if s, ok := errKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Error is a single assembly diagnostic. There is no error accumulation:
// assembly stops at the first Error raised.
type Error struct {
	Kind ErrKind
	Line int    // 1-based source line, 0 when not tied to a line
	Text string // the (trimmed) source line, empty when Line is 0

	token    string
	previous string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.message())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.message())
}

func (e *Error) message() string {
	switch e.Kind {
	case ErrOpenTemplate:
		return fmt.Sprintf("can't open the template file %q", TemplateFileName)
	case ErrMaxLengthExceeded:
		return fmt.Sprintf("line exceeds maximum %d characters", MaxLineLength)
	case ErrLabel:
		return fmt.Sprintf("%q is not a valid label", e.token)
	case ErrEmptyString:
		return "empty strings are not permitted"
	case ErrUnclosedString:
		return fmt.Sprintf("quote expected after string %q", e.token)
	case ErrArrayElement:
		return e.arrayElementMessage()
	case ErrFrequency:
		return fmt.Sprintf("frequency must be between %d and %d", MinFrequency, MaxFrequency)
	case ErrNumber:
		return fmt.Sprintf("%q is not a valid number\n%s", e.token, numberFormatHelp)
	case ErrManyLabels:
		return fmt.Sprintf("maximum number of labels (%d) reached", MaxLabels)
	case ErrDuplicateLabel:
		return "this label has been set in a previous line"
	case ErrMemoryAllocation:
		return "memory allocation error"
	case ErrExtraneous:
		return fmt.Sprintf("%q was unexpected", e.token)
	case ErrDirective:
		return fmt.Sprintf("%q is not a directive", e.token)
	case ErrInstructionLabel:
		return fmt.Sprintf("%q is no instruction or label", e.token)
	case ErrInstructionColon:
		return fmt.Sprintf("%q is no instruction, or missing a colon", e.previous)
	case ErrInstruction:
		return fmt.Sprintf("%q is no instruction", e.token)
	case ErrReserved:
		return fmt.Sprintf("%q is reserved and cannot be used here", e.token)
	case ErrRegister:
		if e.token == "" {
			return fmt.Sprintf("expected register after %q", e.previous)
		}
		return fmt.Sprintf("%q is not a register", e.token)
	case ErrValue:
		return fmt.Sprintf("%q is not a number or label\n%s", e.token, numberErrorHint(e.token))
	case ErrComma:
		return fmt.Sprintf("comma expected after %q", e.previous)
	case ErrLeftBracket:
		return fmt.Sprintf("LOAD/STORE requires a left bracket before %q", e.token)
	case ErrRightBracket:
		return fmt.Sprintf("LOAD/STORE requires a right bracket after %q", e.previous)
	case ErrOp:
		if e.token == "" {
			return "expected number, label or register after comma"
		}
		return fmt.Sprintf("%q is not a number, label or register\n%s", e.token, numberErrorHint(e.token))
	case ErrRAMLimit:
		return fmt.Sprintf("%d-byte RAM limit exceeded", RAMSize)
	case ErrUnquotedTitle:
		return "quoted title string expected"
	case ErrDuplicateTitle:
		return "only one .TITLE directive is allowed"
	default:
		return "unknown error"
	}
}

func (e *Error) arrayElementMessage() string {
	if e.token == "" {
		return "expected an array element"
	}
	if _, nerr := parseNumber(e.token); nerr != numErrNotANumber {
		if hint := numberErrorHint(e.token); hint != "" {
			return hint
		}
	}
	return fmt.Sprintf("%q is not a literal; example of an array: .DATA str 12, \"abc\", 0xAF, 0b1011", e.token)
}

// numErr identifies why a token failed to parse as a number; the zero
// value (numErrNone) means parseNumber succeeded.
type numErr int

const (
	numErrNone numErr = iota
	numErrHex
	numErrBin
	numErrOctal
	numErrRange
	numErrNotANumber
)

func numberErrorHint(s string) string {
	_, e := parseNumber(s)
	switch e {
	case numErrHex:
		return "hexadecimals are limited to 2 digits (e.g. 0xF or 0x1A)"
	case numErrBin:
		return "binaries are limited to 8 digits (e.g. 0b00101011)"
	case numErrOctal:
		return "leading zeroes are not allowed on decimal numbers"
	case numErrRange:
		return "unsigned numbers are limited to 0-255"
	default:
		return ""
	}
}

const numberFormatHelp = "numbers can either be:\n" +
	"1) hexadecimal preceded by 0x, up to 2 digits (e.g. 0x0F)\n" +
	"2) binary preceded by 0b, up to 8 digits (e.g. 0b00001111)\n" +
	"3) decimal 0-255 with no leading zeroes (e.g. 15)"

// newErr builds an *Error anchored at cur's current position, capturing
// its current and previous tokens the way the original implementation's
// TOKEN/PREVIOUS macros always referred to whatever nexttoken() had most
// recently produced.
func newErr(cur *cursor, kind ErrKind) *Error {
	return &Error{
		Kind:     kind,
		Line:     cur.lineNum(),
		Text:     cur.lineText(),
		token:    cur.current().text,
		previous: cur.previous().text,
	}
}

// newErrNoLine builds an *Error with no line context, for failures that
// happen before any source line has been read (opening the template,
// exceeding the maximum line length while still reading).
func newErrNoLine(kind ErrKind) *Error {
	return &Error{Kind: kind}
}

// ErrOpenTemplateFailure reports that the VHDL template file could not
// be opened, for callers (the e80asm command) that fail before any
// source has been read.
func ErrOpenTemplateFailure() *Error {
	return newErrNoLine(ErrOpenTemplate)
}
