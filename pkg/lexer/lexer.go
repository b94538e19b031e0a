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

// Package lexer tokenizes 6502 assembly source text into the token stream
// pkg/parser consumes.
package lexer

import (
	"strconv"
	"strings"

	"go6502/pkg/asmerr"
	"go6502/pkg/token"
)

// Lexer turns a source string into a token stream, one Next() call at a
// time. It tracks a (line, column) cursor: newline advances the line and
// resets the column. Whitespace other than newline is skipped silently;
// ';' begins a line comment that runs to end of line.
type Lexer struct {
	src    []rune
	pos    int
	line   int
	column int
}

// New creates a Lexer over source.
func New(source string) *Lexer {
	return &Lexer{src: []rune(source), line: 1, column: 1}
}

func (l *Lexer) currentPosition() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peekRune() rune {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekRuneAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() rune {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch c := l.peekRune(); {
		case c == '\n':
			return
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == ';':
			for !l.atEnd() && l.peekRune() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token in the stream. Once the source is
// exhausted, it returns KindEOF forever.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	if l.atEnd() {
		return token.New(token.KindEOF, l.currentPosition()), nil
	}

	pos := l.currentPosition()
	c := l.peekRune()

	switch {
	case c == '\n':
		l.advance()
		return token.New(token.KindNewline, pos), nil
	case c == '(':
		l.advance()
		return token.New(token.KindLParen, pos), nil
	case c == ')':
		l.advance()
		return token.New(token.KindRParen, pos), nil
	case c == ',':
		l.advance()
		return token.New(token.KindComma, pos), nil
	case c == ':':
		l.advance()
		return token.New(token.KindColon, pos), nil
	case c == '#':
		l.advance()
		return token.New(token.KindHash, pos), nil
	case c == '$':
		return l.lexDollarHex(pos)
	case c == '0' && l.peekRuneAt(1) == 'x':
		return l.lex0xHex(pos)
	case c >= '1' && c <= '9':
		return l.lexDecimal(pos)
	case c == '0':
		// A bare "0" (not followed by 'x') is a one-digit decimal literal.
		return l.lexDecimal(pos)
	case isIdentStart(c):
		return l.lexIdentifier(pos)
	default:
		l.advance()
		return token.Token{}, asmerr.NewIllegalCharacter(c, pos)
	}
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// lexDollarHex handles "$" followed by 1-2 hex digits (Hex8) or 3-4 hex
// digits (Hex16).
func (l *Lexer) lexDollarHex(pos token.Position) (token.Token, error) {
	l.advance() // consume '$'

	start := l.pos
	for isHexDigit(l.peekRune()) {
		l.advance()
	}
	digits := string(l.src[start:l.pos])

	switch len(digits) {
	case 1, 2:
		v, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return token.Token{}, asmerr.NewInvalidNumber("$"+digits, pos)
		}
		return token.NewHex8(uint8(v), pos), nil
	case 3, 4:
		v, err := strconv.ParseUint(digits, 16, 16)
		if err != nil {
			return token.Token{}, asmerr.NewInvalidNumber("$"+digits, pos)
		}
		return token.NewHex16(uint16(v), pos), nil
	default:
		return token.Token{}, asmerr.NewInvalidNumber("$"+digits, pos)
	}
}

// lex0xHex handles "0x" followed by exactly 2 hex digits (Hex8) or exactly
// 4 (Hex16).
func (l *Lexer) lex0xHex(pos token.Position) (token.Token, error) {
	l.advance() // '0'
	l.advance() // 'x'

	start := l.pos
	for isHexDigit(l.peekRune()) {
		l.advance()
	}
	digits := string(l.src[start:l.pos])

	switch len(digits) {
	case 2:
		v, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return token.Token{}, asmerr.NewInvalidNumber("0x"+digits, pos)
		}
		return token.NewHex8(uint8(v), pos), nil
	case 4:
		v, err := strconv.ParseUint(digits, 16, 16)
		if err != nil {
			return token.Token{}, asmerr.NewInvalidNumber("0x"+digits, pos)
		}
		return token.NewHex16(uint16(v), pos), nil
	default:
		return token.Token{}, asmerr.NewInvalidNumber("0x"+digits, pos)
	}
}

// lexDecimal handles a leading digit 0-9 followed by further digits. The
// 8-vs-16-bit split happens at the parser, which degrades values <= 255
// to Decimal8 where that's legal; the lexer always returns the full u16.
func (l *Lexer) lexDecimal(pos token.Position) (token.Token, error) {
	start := l.pos
	for l.peekRune() >= '0' && l.peekRune() <= '9' {
		l.advance()
	}
	digits := string(l.src[start:l.pos])

	v, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return token.Token{}, asmerr.NewInvalidNumber(digits, pos)
	}
	return token.NewDecimal(uint16(v), pos), nil
}

// lexIdentifier handles alphabetic-start identifiers, including the
// single-letter X/Y register tokens and the "define" keyword.
func (l *Lexer) lexIdentifier(pos token.Position) (token.Token, error) {
	start := l.pos
	for isIdentCont(l.peekRune()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])

	if len(text) == 1 {
		switch strings.ToUpper(text) {
		case "X":
			return token.New(token.KindX, pos), nil
		case "Y":
			return token.New(token.KindY, pos), nil
		}
	}

	return token.NewIdentifier(text, pos), nil
}
