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

package ast

import "go6502/pkg/token"

// NumberType distinguishes the four numeric literal shapes the lexer can
// produce. The byte-width half of this (8 vs 16) is what drives the
// assembler's choice between zero-page and absolute encoding.
type NumberType int

const (
	Decimal8 NumberType = iota
	Decimal16
	Hex8
	Hex16
)

// Width returns 1 for 8-bit number types, 2 for 16-bit.
func (t NumberType) Width() int {
	if t == Decimal8 || t == Hex8 {
		return 1
	}
	return 2
}

// Number is a numeric operand value tagged with its literal width.
type Number struct {
	Type  NumberType
	Value uint16
}

// OperandData is either a literal Number or a forward/backward Label
// reference. Exactly one of the two is meaningful, selected by IsLabel.
type OperandData struct {
	IsLabel bool
	Number  Number
	Label   string
}

// NumberData builds an OperandData holding a literal number.
func NumberData(n Number) OperandData {
	return OperandData{Number: n}
}

// LabelData builds an OperandData holding a label reference.
func LabelData(name string) OperandData {
	return OperandData{IsLabel: true, Label: name}
}

// Operand is an addressing mode plus the operand data it was parsed with,
// if any (IMP/ACC operands carry none).
type Operand struct {
	Mode AddressingMode
	Data *OperandData
}

// Instruction is a single assembly-language instruction: its mnemonic, the
// operand it was parsed with, and the position the mnemonic token started
// at (for error reporting against the emitted bytes).
type Instruction struct {
	Mnemonic Mnemonic
	Operand  Operand
	Position token.Position
}

// Statement is one top-level unit the parser produces: a label
// declaration, a define directive, or an instruction.
type Statement struct {
	Label       string       // set when Kind == StatementLabel
	DefineName  string       // set when Kind == StatementDefine
	DefineValue Operand      // set when Kind == StatementDefine
	Instruction *Instruction // set when Kind == StatementInstruction
	Kind        StatementKind
	Position    token.Position
}

// StatementKind tags which of Statement's fields is populated.
type StatementKind int

const (
	StatementLabel StatementKind = iota
	StatementDefine
	StatementInstruction
)

// NewLabelStatement builds a label-declaration statement.
func NewLabelStatement(name string, pos token.Position) Statement {
	return Statement{Kind: StatementLabel, Label: name, Position: pos}
}

// NewDefineStatement builds a define-directive statement.
func NewDefineStatement(name string, value Operand, pos token.Position) Statement {
	return Statement{Kind: StatementDefine, DefineName: name, DefineValue: value, Position: pos}
}

// NewInstructionStatement builds an instruction statement.
func NewInstructionStatement(inst Instruction) Statement {
	return Statement{Kind: StatementInstruction, Instruction: &inst, Position: inst.Position}
}
