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

// Package ast defines the statement tree the parser produces: labels,
// define directives, and instructions, along with the shared Mnemonic and
// AddressingMode enumerations the lexer, parser, opcode tables, and CPU all
// key off of.
package ast

// Mnemonic is one of the 56 legal 6502 instruction mnemonics. Declaration
// order is the type's total order; String returns the uppercase mnemonic.
type Mnemonic int

const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
}

// String returns the uppercase mnemonic text, e.g. "LDA".
func (m Mnemonic) String() string {
	if m < 0 || m >= mnemonicCount {
		return "???"
	}
	return mnemonicNames[m]
}

var mnemonicsByName map[string]Mnemonic

func init() {
	mnemonicsByName = make(map[string]Mnemonic, mnemonicCount)
	for m := Mnemonic(0); m < mnemonicCount; m++ {
		mnemonicsByName[mnemonicNames[m]] = m
	}
}

// LookupMnemonic resolves source text (matched case-insensitively, per
// spec.md's "case-insensitive mnemonics") to a Mnemonic. ok is false for
// any identifier that isn't one of the 56 legal mnemonics.
func LookupMnemonic(text string) (m Mnemonic, ok bool) {
	m, ok = mnemonicsByName[upperASCII(text)]
	return
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// IsBranch reports whether m is one of the eight relative-branch
// mnemonics (BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS). These are the
// mnemonics for which RELZPG resolves to the relative addressing mode
// instead of zero-page, and whose label operands assemble to a one-byte
// signed displacement rather than an absolute address.
func (m Mnemonic) IsBranch() bool {
	switch m {
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS:
		return true
	}
	return false
}
