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

// Package opcode holds the exhaustive 151-entry legal-opcode table and its
// two total functions: Encode (mnemonic, mode) -> byte and Decode byte ->
// (mnemonic, mode). Unofficial/illegal 6502 opcodes (including the
// single-byte NOP clones at $1A/$3A/$5A/$7A/$DA/$FA and the SBC clone at
// $EB) are deliberately absent from both directions.
package opcode

import (
	"go6502/pkg/asmerr"
	"go6502/pkg/ast"
	"go6502/pkg/token"
)

// entry is one occupied cell of the 256-byte opcode space.
type entry struct {
	mnemonic ast.Mnemonic
	mode     ast.AddressingMode
	valid    bool
}

// table is indexed directly by opcode byte; this is the decode direction.
// It is built once in init from the same 16x16 layout a 6502 reference
// card uses, row-major from $00.
var table [256]entry

// encodeIndex is the reverse of table, built in init.
var encodeIndex map[encodeKey]byte

type encodeKey struct {
	mnemonic ast.Mnemonic
	mode     ast.AddressingMode
}

// row describes one populated cell during table construction.
type row struct {
	mnemonic string
	mode     ast.AddressingMode
}

func init() {
	// "-" marks a byte with no legal instruction (illegal/unofficial
	// opcode space). BRK is IMP despite classically being followed by a
	// padding byte: that byte isn't an operand in this instruction set.
	grid := [256]row{}
	set := func(b byte, mnemonic string, mode ast.AddressingMode) {
		grid[b] = row{mnemonic: mnemonic, mode: mode}
	}

	set(0x00, "BRK", ast.IMP)
	set(0x01, "ORA", ast.IDX)
	set(0x05, "ORA", ast.ZPG)
	set(0x06, "ASL", ast.ZPG)
	set(0x08, "PHP", ast.IMP)
	set(0x09, "ORA", ast.IMM)
	set(0x0A, "ASL", ast.ACC)
	set(0x0D, "ORA", ast.ABS)
	set(0x0E, "ASL", ast.ABS)

	set(0x10, "BPL", ast.REL)
	set(0x11, "ORA", ast.IDY)
	set(0x15, "ORA", ast.ZPX)
	set(0x16, "ASL", ast.ZPX)
	set(0x18, "CLC", ast.IMP)
	set(0x19, "ORA", ast.ABY)
	set(0x1D, "ORA", ast.ABX)
	set(0x1E, "ASL", ast.ABX)

	set(0x20, "JSR", ast.ABS)
	set(0x21, "AND", ast.IDX)
	set(0x24, "BIT", ast.ZPG)
	set(0x25, "AND", ast.ZPG)
	set(0x26, "ROL", ast.ZPG)
	set(0x28, "PLP", ast.IMP)
	set(0x29, "AND", ast.IMM)
	set(0x2A, "ROL", ast.ACC)
	set(0x2C, "BIT", ast.ABS)
	set(0x2D, "AND", ast.ABS)
	set(0x2E, "ROL", ast.ABS)

	set(0x30, "BMI", ast.REL)
	set(0x31, "AND", ast.IDY)
	set(0x35, "AND", ast.ZPX)
	set(0x36, "ROL", ast.ZPX)
	set(0x38, "SEC", ast.IMP)
	set(0x39, "AND", ast.ABY)
	set(0x3D, "AND", ast.ABX)
	set(0x3E, "ROL", ast.ABX)

	set(0x40, "RTI", ast.IMP)
	set(0x41, "EOR", ast.IDX)
	set(0x45, "EOR", ast.ZPG)
	set(0x46, "LSR", ast.ZPG)
	set(0x48, "PHA", ast.IMP)
	set(0x49, "EOR", ast.IMM)
	set(0x4A, "LSR", ast.ACC)
	set(0x4C, "JMP", ast.ABS)
	set(0x4D, "EOR", ast.ABS)
	set(0x4E, "LSR", ast.ABS)

	set(0x50, "BVC", ast.REL)
	set(0x51, "EOR", ast.IDY)
	set(0x55, "EOR", ast.ZPX)
	set(0x56, "LSR", ast.ZPX)
	set(0x58, "CLI", ast.IMP)
	set(0x59, "EOR", ast.ABY)
	set(0x5D, "EOR", ast.ABX)
	set(0x5E, "LSR", ast.ABX)

	set(0x60, "RTS", ast.IMP)
	set(0x61, "ADC", ast.IDX)
	set(0x65, "ADC", ast.ZPG)
	set(0x66, "ROR", ast.ZPG)
	set(0x68, "PLA", ast.IMP)
	set(0x69, "ADC", ast.IMM)
	set(0x6A, "ROR", ast.ACC)
	set(0x6C, "JMP", ast.IND)
	set(0x6D, "ADC", ast.ABS)
	set(0x6E, "ROR", ast.ABS)

	set(0x70, "BVS", ast.REL)
	set(0x71, "ADC", ast.IDY)
	set(0x75, "ADC", ast.ZPX)
	set(0x76, "ROR", ast.ZPX)
	set(0x78, "SEI", ast.IMP)
	set(0x79, "ADC", ast.ABY)
	set(0x7D, "ADC", ast.ABX)
	set(0x7E, "ROR", ast.ABX)

	set(0x81, "STA", ast.IDX)
	set(0x84, "STY", ast.ZPG)
	set(0x85, "STA", ast.ZPG)
	set(0x86, "STX", ast.ZPG)
	set(0x88, "DEY", ast.IMP)
	set(0x8A, "TXA", ast.IMP)
	set(0x8C, "STY", ast.ABS)
	set(0x8D, "STA", ast.ABS)
	set(0x8E, "STX", ast.ABS)

	set(0x90, "BCC", ast.REL)
	set(0x91, "STA", ast.IDY)
	set(0x94, "STY", ast.ZPX)
	set(0x95, "STA", ast.ZPX)
	set(0x96, "STX", ast.ZPY)
	set(0x98, "TYA", ast.IMP)
	set(0x99, "STA", ast.ABY)
	set(0x9A, "TXS", ast.IMP)
	set(0x9D, "STA", ast.ABX)

	set(0xA0, "LDY", ast.IMM)
	set(0xA1, "LDA", ast.IDX)
	set(0xA2, "LDX", ast.IMM)
	set(0xA4, "LDY", ast.ZPG)
	set(0xA5, "LDA", ast.ZPG)
	set(0xA6, "LDX", ast.ZPG)
	set(0xA8, "TAY", ast.IMP)
	set(0xA9, "LDA", ast.IMM)
	set(0xAA, "TAX", ast.IMP)
	set(0xAC, "LDY", ast.ABS)
	set(0xAD, "LDA", ast.ABS)
	set(0xAE, "LDX", ast.ABS)

	set(0xB0, "BCS", ast.REL)
	set(0xB1, "LDA", ast.IDY)
	set(0xB4, "LDY", ast.ZPX)
	set(0xB5, "LDA", ast.ZPX)
	set(0xB6, "LDX", ast.ZPY)
	set(0xB8, "CLV", ast.IMP)
	set(0xB9, "LDA", ast.ABY)
	set(0xBA, "TSX", ast.IMP)
	set(0xBC, "LDY", ast.ABX)
	set(0xBD, "LDA", ast.ABX)
	set(0xBE, "LDX", ast.ABY)

	set(0xC0, "CPY", ast.IMM)
	set(0xC1, "CMP", ast.IDX)
	set(0xC4, "CPY", ast.ZPG)
	set(0xC5, "CMP", ast.ZPG)
	set(0xC6, "DEC", ast.ZPG)
	set(0xC8, "INY", ast.IMP)
	set(0xC9, "CMP", ast.IMM)
	set(0xCA, "DEX", ast.IMP)
	set(0xCC, "CPY", ast.ABS)
	set(0xCD, "CMP", ast.ABS)
	set(0xCE, "DEC", ast.ABS)

	set(0xD0, "BNE", ast.REL)
	set(0xD1, "CMP", ast.IDY)
	set(0xD5, "CMP", ast.ZPX)
	set(0xD6, "DEC", ast.ZPX)
	set(0xD8, "CLD", ast.IMP)
	set(0xD9, "CMP", ast.ABY)
	set(0xDD, "CMP", ast.ABX)
	set(0xDE, "DEC", ast.ABX)

	set(0xE0, "CPX", ast.IMM)
	set(0xE1, "SBC", ast.IDX)
	set(0xE4, "CPX", ast.ZPG)
	set(0xE5, "SBC", ast.ZPG)
	set(0xE6, "INC", ast.ZPG)
	set(0xE8, "INX", ast.IMP)
	set(0xE9, "SBC", ast.IMM)
	set(0xEA, "NOP", ast.IMP)
	set(0xEC, "CPX", ast.ABS)
	set(0xED, "SBC", ast.ABS)
	set(0xEE, "INC", ast.ABS)

	set(0xF0, "BEQ", ast.REL)
	set(0xF1, "SBC", ast.IDY)
	set(0xF5, "SBC", ast.ZPX)
	set(0xF6, "INC", ast.ZPX)
	set(0xF8, "SED", ast.IMP)
	set(0xF9, "SBC", ast.ABY)
	set(0xFD, "SBC", ast.ABX)
	set(0xFE, "INC", ast.ABX)

	encodeIndex = make(map[encodeKey]byte, 151)
	for b := 0; b < 256; b++ {
		r := grid[b]
		if r.mnemonic == "" {
			continue
		}
		m, ok := ast.LookupMnemonic(r.mnemonic)
		if !ok {
			panic("opcode: unknown mnemonic in table: " + r.mnemonic)
		}
		table[b] = entry{mnemonic: m, mode: r.mode, valid: true}
		encodeIndex[encodeKey{m, r.mode}] = byte(b)
	}
}

// Resolve turns a parse-time ambiguous mode (RELZPG, IMPACC) into its
// concrete form for mnemonic, per spec.md §4.3. Modes that are already
// concrete pass through unchanged.
func Resolve(mnemonic ast.Mnemonic, mode ast.AddressingMode) ast.AddressingMode {
	switch mode {
	case ast.RELZPG:
		if mnemonic.IsBranch() {
			return ast.REL
		}
		if mnemonic == ast.JMP || mnemonic == ast.JSR {
			return ast.ABS
		}
		return ast.ZPG
	case ast.IMPACC:
		switch mnemonic {
		case ast.ASL, ast.LSR, ast.ROL, ast.ROR:
			return ast.ACC
		default:
			return ast.IMP
		}
	default:
		return mode
	}
}

// Encode returns the opcode byte for (mnemonic, mode). mode must already
// be resolved (Resolve, or produced directly non-ambiguous); an ambiguous
// mode is rejected the same as any other unsupported combination.
func Encode(mnemonic ast.Mnemonic, mode ast.AddressingMode, pos token.Position) (byte, error) {
	b, ok := encodeIndex[encodeKey{mnemonic, mode}]
	if !ok {
		return 0, asmerr.NewInvalidInstruction(mnemonic.String(), mode.String(), pos)
	}
	return b, nil
}

// Decode returns the (mnemonic, mode) pair opcode b encodes. offset is the
// byte's position in the stream being decoded, used only to position the
// error when b isn't one of the 151 legal opcodes.
func Decode(b byte, offset int) (ast.Mnemonic, ast.AddressingMode, error) {
	e := table[b]
	if !e.valid {
		return 0, 0, asmerr.NewInvalidOpcode(b, offset)
	}
	return e.mnemonic, e.mode, nil
}

// OperandWidth returns the number of operand bytes that follow an opcode
// encoded with mode (0, 1, or 2). mode must be a concrete (non-ambiguous)
// addressing mode.
func OperandWidth(mode ast.AddressingMode) int {
	switch mode {
	case ast.IMP, ast.ACC:
		return 0
	case ast.IMM, ast.ZPG, ast.ZPX, ast.ZPY, ast.REL, ast.IDX, ast.IDY:
		return 1
	case ast.ABS, ast.ABX, ast.ABY, ast.IND:
		return 2
	default:
		return 0
	}
}
