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

// Package assembler drives the two-pass layout and encode: pass 1 sizes
// every instruction and resolves labels/defines to byte offsets; pass 2
// emits the opcode and operand bytes, fixing up branch displacements and
// ROM-relative absolute addresses.
package assembler

import (
	"go6502/pkg/asmerr"
	"go6502/pkg/ast"
	"go6502/pkg/memory"
	"go6502/pkg/opcode"
	"go6502/pkg/parser"
)

// Assembler holds the symbol tables built during pass 1 and consulted
// during pass 2. A fresh Assembler is created for every Assemble call;
// nothing survives between calls.
type Assembler struct {
	labels  map[string]uint16
	defines map[string]ast.Operand
}

// Assemble parses source and runs both passes, returning the assembled
// byte vector or the first error encountered in either phase.
func Assemble(source string) ([]byte, error) {
	statements, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	a := &Assembler{
		labels:  make(map[string]uint16),
		defines: make(map[string]ast.Operand),
	}
	a.pass1(statements)
	return a.pass2(statements)
}

// pass1 walks the statement list maintaining a byte cursor, recording
// where every label lands and what every define is bound to.
func (a *Assembler) pass1(statements []ast.Statement) {
	pointer := 0
	for _, st := range statements {
		switch st.Kind {
		case ast.StatementLabel:
			a.labels[st.Label] = uint16(pointer)
		case ast.StatementDefine:
			a.defines[st.DefineName] = st.DefineValue
		case ast.StatementInstruction:
			pointer += 1 + operandWidth(st.Instruction)
		}
	}
}

// operandWidth is the pass-1 sizing rule: a numeric operand's width comes
// from its literal type; a label operand is 1 byte for the eight branch
// mnemonics (a relative displacement) and 2 otherwise (an absolute
// address). No operand at all (IMPACC resolved away) is 0.
func operandWidth(inst *ast.Instruction) int {
	data := inst.Operand.Data
	if data == nil {
		return 0
	}
	if data.IsLabel {
		if inst.Mnemonic.IsBranch() {
			return 1
		}
		return 2
	}
	return data.Number.Type.Width()
}

// pass2 re-walks the statement list, this time emitting bytes. pointer is
// reset to 0 and advances in lockstep with pass1's, so label/branch
// arithmetic computed here matches what pass1 already sized.
func (a *Assembler) pass2(statements []ast.Statement) ([]byte, error) {
	var out []byte
	pointer := 0

	for _, st := range statements {
		if st.Kind != ast.StatementInstruction {
			continue
		}
		inst := st.Instruction

		mode := opcode.Resolve(inst.Mnemonic, inst.Operand.Mode)
		opByte, err := opcode.Encode(inst.Mnemonic, mode, inst.Position)
		if err != nil {
			return nil, err
		}

		operandBytes, err := a.encodeOperand(inst, pointer)
		if err != nil {
			return nil, err
		}

		out = append(out, opByte)
		out = append(out, operandBytes...)
		pointer += 1 + len(operandBytes)
	}

	return out, nil
}

func (a *Assembler) encodeOperand(inst *ast.Instruction, pointer int) ([]byte, error) {
	data := inst.Operand.Data
	if data == nil {
		return nil, nil
	}
	if data.IsLabel {
		return a.encodeLabelOperand(inst, data.Label, pointer)
	}
	return encodeNumber(data.Number), nil
}

func encodeNumber(n ast.Number) []byte {
	if n.Type.Width() == 1 {
		return []byte{uint8(n.Value)}
	}
	return []byte{uint8(n.Value & 0xFF), uint8(n.Value >> 8)}
}

// encodeLabelOperand resolves a label reference against the labels table
// built in pass 1. If the name isn't a label, it falls back to the
// defines table (a forward reference to a `define` appearing later in
// source) and recurses on the substituted operand; if neither table
// knows the name, the label is genuinely unresolved.
func (a *Assembler) encodeLabelOperand(inst *ast.Instruction, name string, pointer int) ([]byte, error) {
	if addr, ok := a.labels[name]; ok {
		if inst.Mnemonic.IsBranch() {
			offset := (int(addr) - pointer - 2) % 256
			if offset < 0 {
				offset += 256
			}
			return []byte{uint8(offset)}, nil
		}
		abs := int(addr) + memory.ROMBase
		return []byte{uint8(abs & 0xFF), uint8(abs >> 8)}, nil
	}

	if operand, ok := a.defines[name]; ok {
		substituted := &ast.Instruction{
			Mnemonic: inst.Mnemonic,
			Operand:  operand,
			Position: inst.Position,
		}
		return a.encodeOperand(substituted, pointer)
	}

	return nil, asmerr.NewInvalidLabel(name, inst.Position)
}
