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

// Package disassembler linearly decodes an assembled byte slice back into
// one text line per instruction, reproducing the assembler's own surface
// syntax.
package disassembler

import (
	"fmt"

	"go6502/pkg/ast"
	"go6502/pkg/memory"
	"go6502/pkg/opcode"
)

// Line is one decoded instruction: the byte offset its opcode starts at,
// and the reassembled-looking source text.
type Line struct {
	ByteOffset int
	Text       string
}

// Disassemble linearly decodes program, returning one Line per
// instruction. It stops at the first byte that isn't one of the 151
// legal opcodes, per opcode.Decode.
func Disassemble(program []byte) ([]Line, error) {
	var lines []Line
	offset := 0

	for offset < len(program) {
		start := offset
		b := program[offset]

		mnemonic, mode, err := opcode.Decode(b, offset)
		if err != nil {
			return nil, err
		}
		offset++

		width := opcode.OperandWidth(mode)
		if offset+width > len(program) {
			return nil, opcodeErrorTruncated(b, start)
		}

		operandText := ""
		switch mode {
		case ast.IMP, ast.ACC:
			// no operand text, matching the assembler's own *(no operand)*
			// surface form for both implicit and accumulator instructions.
		case ast.IMM:
			operandText = fmt.Sprintf("#$%02X", program[offset])
		case ast.ZPG:
			operandText = fmt.Sprintf("$%02X", program[offset])
		case ast.ZPX:
			operandText = fmt.Sprintf("$%02X,X", program[offset])
		case ast.ZPY:
			operandText = fmt.Sprintf("$%02X,Y", program[offset])
		case ast.REL:
			// offset indexes the displacement byte itself; the runtime PC
			// the CPU branches from is the address immediately after it.
			target := relativeTarget(memory.ROMBase+offset+1, program[offset])
			operandText = fmt.Sprintf("$%04X", target)
		case ast.ABS:
			operandText = fmt.Sprintf("$%04X", read16(program, offset))
		case ast.ABX:
			operandText = fmt.Sprintf("$%04X,X", read16(program, offset))
		case ast.ABY:
			operandText = fmt.Sprintf("$%04X,Y", read16(program, offset))
		case ast.IND:
			operandText = fmt.Sprintf("($%04X)", read16(program, offset))
		case ast.IDX:
			operandText = fmt.Sprintf("($%02X,X)", program[offset])
		case ast.IDY:
			operandText = fmt.Sprintf("($%02X),Y", program[offset])
		}
		offset += width

		text := mnemonic.String()
		if operandText != "" {
			text += " " + operandText
		}
		lines = append(lines, Line{ByteOffset: start, Text: text})
	}

	return lines, nil
}

// relativeTarget computes the absolute address a branch's signed 8-bit
// displacement resolves to, given pcAfterOperand (the address immediately
// following the displacement byte).
func relativeTarget(pcAfterOperand int, offsetByte byte) int {
	return pcAfterOperand + int(int8(offsetByte))
}

func read16(program []byte, offset int) uint16 {
	return uint16(program[offset]) | uint16(program[offset+1])<<8
}

func opcodeErrorTruncated(b byte, offset int) error {
	return truncatedOpcodeError{b: b, offset: offset}
}

// truncatedOpcodeError reports an opcode whose operand bytes run past the
// end of the decoded slice.
type truncatedOpcodeError struct {
	b      byte
	offset int
}

func (e truncatedOpcodeError) Error() string {
	return fmt.Sprintf("truncated operand for opcode 0x%02X at byte offset %d", e.b, e.offset)
}
