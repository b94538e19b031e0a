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

package token

// Kind tags the closed set of lexical token types the lexer can produce.
type Kind int

const (
	// KindIllegal is never produced by a well-formed lex; it exists so the
	// zero value of Kind is distinguishable from any real token.
	KindIllegal Kind = iota
	KindLParen
	KindRParen
	KindComma
	KindColon
	KindHash
	KindNewline
	KindX
	KindY
	KindDecimal
	KindHex8
	KindHex16
	KindIdentifier
	KindDefine
	KindEOF
)

var kindNames = [...]string{
	KindIllegal:    "ILLEGAL",
	KindLParen:     "(",
	KindRParen:     ")",
	KindComma:      ",",
	KindColon:      ":",
	KindHash:       "#",
	KindNewline:    "\\n",
	KindX:          "X",
	KindY:          "Y",
	KindDecimal:    "DECIMAL",
	KindHex8:       "HEX8",
	KindHex16:      "HEX16",
	KindIdentifier: "IDENTIFIER",
	KindDefine:     "define",
	KindEOF:        "EOF",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) || kindNames[k] == "" {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Token is one lexical unit: a Kind, its Position, and the Kind-dependent
// literal value. Only one of the literal fields is meaningful for a given
// Kind (Decimal/Hex16 use Number, Hex8 uses Byte, Identifier uses Text);
// the others are left at their zero value.
type Token struct {
	Kind     Kind
	Position Position

	Text   string // KindIdentifier
	Byte   uint8  // KindHex8
	Number uint16 // KindDecimal, KindHex16
}

// New builds a Token carrying no literal value (punctuation, registers, EOF).
func New(kind Kind, pos Position) Token {
	return Token{Kind: kind, Position: pos}
}

// NewIdentifier builds an Identifier or Define token (Define is recognized
// by the lexer when the literal text is exactly "define").
func NewIdentifier(text string, pos Position) Token {
	if text == "define" {
		return Token{Kind: KindDefine, Position: pos, Text: text}
	}
	return Token{Kind: KindIdentifier, Position: pos, Text: text}
}

// NewDecimal builds a Decimal(u16) token.
func NewDecimal(value uint16, pos Position) Token {
	return Token{Kind: KindDecimal, Position: pos, Number: value}
}

// NewHex8 builds a Hex8(u8) token.
func NewHex8(value uint8, pos Position) Token {
	return Token{Kind: KindHex8, Position: pos, Byte: value}
}

// NewHex16 builds a Hex16(u16) token.
func NewHex16(value uint16, pos Position) Token {
	return Token{Kind: KindHex16, Position: pos, Number: value}
}
