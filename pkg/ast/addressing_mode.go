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

// AddressingMode tags how an operand's bytes are turned into an effective
// address or immediate value. Nine tags are unambiguous from surface
// syntax alone (IMM, ABS, ABX, ABY, IND, IDX, IDY, ZPX, ZPY); four more
// (IMP, ACC, ZPG, REL) are the *resolved* forms of the two surface-level
// ambiguities the parser can't disambiguate without knowing the mnemonic:
//
//   - RELZPG: either a branch's relative displacement, or a plain
//     zero-page address. Resolved to REL for the eight branch mnemonics,
//     to ZPG for everything else that supports zero-page addressing, and
//     aliased to ABS for JMP/JSR given a label operand (see pkg/opcode).
//   - IMPACC: either an implicit operand (CLC, TAX, ...) or the
//     accumulator (ASL/LSR/ROL/ROR with no operand). Resolved to IMP or
//     ACC by the mnemonic.
//
// Encoding and decoding only ever use the resolved forms; RELZPG/IMPACC
// exist solely as a parse-time convenience so the parser never has to look
// up a mnemonic's legal modes before parsing its operand.
type AddressingMode int

const (
	IMP AddressingMode = iota
	IMM
	ZPG
	ZPX
	ZPY
	REL
	ABS
	ABX
	ABY
	IND
	IDX
	IDY
	ACC

	// RELZPG and IMPACC are parse-time-only; they never appear in an
	// opcode table and must be resolved before Encode is called.
	RELZPG
	IMPACC

	addressingModeCount
)

var addressingModeNames = [addressingModeCount]string{
	IMP: "IMP", IMM: "IMM", ZPG: "ZPG", ZPX: "ZPX", ZPY: "ZPY", REL: "REL",
	ABS: "ABS", ABX: "ABX", ABY: "ABY", IND: "IND", IDX: "IDX", IDY: "IDY",
	ACC: "ACC", RELZPG: "RELZPG", IMPACC: "IMPACC",
}

func (m AddressingMode) String() string {
	if m < 0 || m >= addressingModeCount {
		return "UNKNOWN"
	}
	return addressingModeNames[m]
}

// IsAmbiguous reports whether m is one of the two parse-time tags that
// still needs mnemonic-driven resolution before it can be encoded.
func (m AddressingMode) IsAmbiguous() bool {
	return m == RELZPG || m == IMPACC
}
