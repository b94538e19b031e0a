// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package asmerr defines the positioned error taxonomy shared by the
// lexer, parser, assembler, and opcode tables. Every fallible routine in
// those packages returns one of these (wrapped in nothing else) on the
// first failure; there is no multi-error collection.
package asmerr

import (
	"fmt"

	"go6502/pkg/token"
)

// Kind tags which member of the taxonomy an Error carries.
type Kind int

const (
	IllegalCharacter Kind = iota
	InvalidNumber
	UnexpectedToken
	InvalidOperand
	InvalidLabel
	InvalidMnemonic
	InvalidInstruction
	InvalidOpcode
)

// Error is a single positioned assembler/CPU-decode failure. Position is
// the (line, column) pair for source-derived errors; ByteOffset is set
// instead for errors arising from decoding an assembled byte stream
// (disassembly), where there is no source position to report.
type Error struct {
	Kind       Kind
	Message    string
	Position   token.Position
	ByteOffset int
	HasOffset  bool
}

func (e *Error) Error() string {
	if e.HasOffset {
		return fmt.Sprintf("%s at byte offset %d", e.Message, e.ByteOffset)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

func at(kind Kind, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Position: pos}
}

func atOffset(kind Kind, offset int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), ByteOffset: offset, HasOffset: true}
}

// NewIllegalCharacter reports a lexer failure: a byte the lexer has no
// recognizer for.
func NewIllegalCharacter(c rune, pos token.Position) *Error {
	return at(IllegalCharacter, pos, "illegal character %q", c)
}

// NewInvalidNumber reports a lexer failure: a numeric literal that doesn't
// match any of the recognized hex/decimal shapes.
func NewInvalidNumber(text string, pos token.Position) *Error {
	return at(InvalidNumber, pos, "invalid number %q", text)
}

// NewUnexpectedToken reports a parser syntax mismatch.
func NewUnexpectedToken(expected, found string, pos token.Position) *Error {
	return at(UnexpectedToken, pos, "unexpected token: expected %s, found %s", expected, found)
}

// NewInvalidOperand reports a parser/encoder semantic mismatch: the
// operand text parsed fine but doesn't form a legal addressing mode for
// how it's being used (e.g. a 16-bit value after '#').
func NewInvalidOperand(text string, pos token.Position) *Error {
	return at(InvalidOperand, pos, "invalid operand %q", text)
}

// NewInvalidLabel reports a pass-2 assembler failure: a label (and, after
// define-substitution, its define chain) that never resolves.
func NewInvalidLabel(name string, pos token.Position) *Error {
	return at(InvalidLabel, pos, "invalid label %q", name)
}

// NewInvalidMnemonic reports an identifier used as a mnemonic that isn't
// one of the 56 legal ones.
func NewInvalidMnemonic(text string, pos token.Position) *Error {
	return at(InvalidMnemonic, pos, "invalid mnemonic %q", text)
}

// NewInvalidInstruction reports an encoder failure: the (mnemonic, mode)
// pair has no opcode in the 151-entry table.
func NewInvalidInstruction(mnemonic, mode string, pos token.Position) *Error {
	return at(InvalidInstruction, pos, "invalid instruction: %s does not support addressing mode %s", mnemonic, mode)
}

// NewInvalidOpcode reports a decoder failure: the byte isn't one of the
// 151 legal opcodes. offset is the byte's position within the decoded
// stream.
func NewInvalidOpcode(b byte, offset int) *Error {
	return atOffset(InvalidOpcode, offset, "invalid opcode 0x%02X", b)
}
