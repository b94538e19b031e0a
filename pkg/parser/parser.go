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

// Package parser builds the ast.Statement list from a token stream, with
// two-token lookahead recursive descent.
package parser

import (
	"fmt"

	"go6502/pkg/asmerr"
	"go6502/pkg/ast"
	"go6502/pkg/lexer"
	"go6502/pkg/token"
)

// Parser consumes tokens from a Lexer and produces a statement list.
type Parser struct {
	lex *lexer.Lexer

	cur     token.Token
	next    token.Token
	curErr  error
	nextErr error

	// defines accumulates `define name operand` bindings as they're seen,
	// so a later bare-identifier operand can be recognized as a define
	// reference (spec.md §4.2: "substituted inline") rather than treated
	// as a forward label.
	defines map[string]ast.Operand
}

// Parse tokenizes and parses source in one call.
func Parse(source string) ([]ast.Statement, error) {
	p := New(lexer.New(source))
	return p.ParseProgram()
}

// New creates a Parser over lex, priming the two-token lookahead buffer.
// Any lex error hit while priming is surfaced on the first ParseProgram
// call, via p.curErr.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex, defines: make(map[string]ast.Operand)}
	p.cur, p.curErr = lex.Next()
	p.next, p.nextErr = lex.Next()
	return p
}

// advance shifts the lookahead window forward by one token. The error (if
// any) produced while the lexer filled the *current* slot travels with it:
// nextErr becomes curErr on the shift, so it surfaces the next time
// ParseProgram checks p.curErr, rather than being silently dropped.
func (p *Parser) advance() error {
	if p.curErr != nil {
		return p.curErr
	}
	p.cur = p.next
	p.curErr = p.nextErr
	next, err := p.lex.Next()
	p.next = next
	p.nextErr = err
	return nil
}

// ParseProgram consumes the full token stream and returns the statement
// list, or the first error encountered.
func (p *Parser) ParseProgram() ([]ast.Statement, error) {
	var statements []ast.Statement

	for {
		if p.curErr != nil {
			return nil, p.curErr
		}
		if p.cur.Kind == token.KindNewline {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.cur.Kind == token.KindEOF {
			return statements, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	}
}

// expectStatementEnd consumes the newline or EOF that must terminate a
// statement.
func (p *Parser) expectStatementEnd() error {
	if p.cur.Kind == token.KindNewline {
		return p.advance()
	}
	if p.cur.Kind == token.KindEOF {
		return nil
	}
	return asmerr.NewUnexpectedToken("newline", p.cur.Kind.String(), p.cur.Position)
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	if p.cur.Kind == token.KindIdentifier && p.next.Kind == token.KindColon {
		return p.parseLabel()
	}
	if p.cur.Kind == token.KindDefine {
		return p.parseDefine()
	}
	return p.parseInstruction()
}

func (p *Parser) parseLabel() (ast.Statement, error) {
	name := p.cur.Text
	pos := p.cur.Position
	if err := p.advance(); err != nil { // consume identifier
		return ast.Statement{}, err
	}
	if err := p.advance(); err != nil { // consume ':'
		return ast.Statement{}, err
	}
	return ast.NewLabelStatement(name, pos), nil
}

func (p *Parser) parseDefine() (ast.Statement, error) {
	pos := p.cur.Position
	if err := p.advance(); err != nil { // consume 'define'
		return ast.Statement{}, err
	}

	if p.cur.Kind != token.KindIdentifier {
		return ast.Statement{}, asmerr.NewUnexpectedToken("identifier", p.cur.Kind.String(), p.cur.Position)
	}
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return ast.Statement{}, err
	}

	operand, err := p.parseOperand()
	if err != nil {
		return ast.Statement{}, err
	}

	p.defines[name] = operand
	return ast.NewDefineStatement(name, operand, pos), nil
}

func (p *Parser) parseInstruction() (ast.Statement, error) {
	if p.cur.Kind != token.KindIdentifier {
		return ast.Statement{}, asmerr.NewUnexpectedToken("mnemonic", p.cur.Kind.String(), p.cur.Position)
	}
	pos := p.cur.Position
	text := p.cur.Text
	mnemonic, ok := ast.LookupMnemonic(text)
	if !ok {
		return ast.Statement{}, asmerr.NewInvalidMnemonic(text, pos)
	}
	if err := p.advance(); err != nil {
		return ast.Statement{}, err
	}

	operand, err := p.parseOperand()
	if err != nil {
		return ast.Statement{}, err
	}

	return ast.NewInstructionStatement(ast.Instruction{
		Mnemonic: mnemonic,
		Operand:  operand,
		Position: pos,
	}), nil
}

// operandEnd reports whether the current token can't start an operand,
// meaning the instruction/define takes none (IMPACC with no operand).
func (p *Parser) operandEnd() bool {
	return p.cur.Kind == token.KindNewline || p.cur.Kind == token.KindEOF
}

// parseOperand implements the operand grammar of spec.md §4.2's surface
// form table.
func (p *Parser) parseOperand() (ast.Operand, error) {
	if p.operandEnd() {
		return ast.Operand{Mode: ast.IMPACC}, nil
	}

	switch p.cur.Kind {
	case token.KindHash:
		return p.parseImmediate()
	case token.KindLParen:
		return p.parseIndirect()
	default:
		return p.parseDirect()
	}
}

// parseImmediate parses "#<Hex8|Decimal<=255>".
func (p *Parser) parseImmediate() (ast.Operand, error) {
	pos := p.cur.Position
	if err := p.advance(); err != nil { // consume '#'
		return ast.Operand{}, err
	}

	num, text, err := p.parseNumberLiteral()
	if err != nil {
		return ast.Operand{}, err
	}
	if num.Type == ast.Decimal16 || num.Type == ast.Hex16 {
		return ast.Operand{}, asmerr.NewInvalidOperand("#"+text, pos)
	}

	data := ast.NumberData(num)
	return ast.Operand{Mode: ast.IMM, Data: &data}, nil
}

// parseIndirect parses "(op)", "(op,X)", "(op),Y".
func (p *Parser) parseIndirect() (ast.Operand, error) {
	pos := p.cur.Position
	if err := p.advance(); err != nil { // consume '('
		return ast.Operand{}, err
	}

	data, _, err := p.parseOperandData()
	if err != nil {
		return ast.Operand{}, err
	}

	if p.cur.Kind == token.KindComma {
		if err := p.advance(); err != nil { // consume ','
			return ast.Operand{}, err
		}
		if p.cur.Kind != token.KindX {
			return ast.Operand{}, asmerr.NewUnexpectedToken("X", p.cur.Kind.String(), p.cur.Position)
		}
		if err := p.advance(); err != nil { // consume 'X'
			return ast.Operand{}, err
		}
		if p.cur.Kind != token.KindRParen {
			return ast.Operand{}, asmerr.NewUnexpectedToken(")", p.cur.Kind.String(), p.cur.Position)
		}
		if err := p.advance(); err != nil { // consume ')'
			return ast.Operand{}, err
		}
		return ast.Operand{Mode: ast.IDX, Data: &data}, nil
	}

	if p.cur.Kind != token.KindRParen {
		return ast.Operand{}, asmerr.NewUnexpectedToken(")", p.cur.Kind.String(), p.cur.Position)
	}
	if err := p.advance(); err != nil { // consume ')'
		return ast.Operand{}, err
	}

	if p.cur.Kind == token.KindComma {
		if err := p.advance(); err != nil { // consume ','
			return ast.Operand{}, err
		}
		if p.cur.Kind != token.KindY {
			return ast.Operand{}, asmerr.NewUnexpectedToken("Y", p.cur.Kind.String(), p.cur.Position)
		}
		if err := p.advance(); err != nil { // consume 'Y'
			return ast.Operand{}, err
		}
		return ast.Operand{Mode: ast.IDY, Data: &data}, nil
	}

	_ = pos
	return ast.Operand{Mode: ast.IND, Data: &data}, nil
}

// parseDirect parses the non-immediate, non-indirect forms: a bare
// number/label optionally followed by ",X" or ",Y".
func (p *Parser) parseDirect() (ast.Operand, error) {
	pos := p.cur.Position

	// A define reference with no trailing index reuses the define's whole
	// operand, addressing mode included.
	if p.cur.Kind == token.KindIdentifier && p.next.Kind != token.KindComma {
		if defined, ok := p.defines[p.cur.Text]; ok && defined.Data != nil {
			if err := p.advance(); err != nil {
				return ast.Operand{}, err
			}
			return defined, nil
		}
	}

	data, wide, err := p.parseOperandData()
	if err != nil {
		return ast.Operand{}, err
	}

	indexed, indexIsX, err := p.parseOptionalIndex()
	if err != nil {
		return ast.Operand{}, err
	}

	if !indexed {
		if data.IsLabel {
			return ast.Operand{Mode: ast.RELZPG, Data: &data}, nil
		}
		if wide {
			return ast.Operand{Mode: ast.ABS, Data: &data}, nil
		}
		return ast.Operand{Mode: ast.RELZPG, Data: &data}, nil
	}

	// A raw (undefined) label has no indexed surface form in the operand
	// grammar — only a define's reused operand can carry ",X"/",Y".
	if data.IsLabel {
		return ast.Operand{}, asmerr.NewInvalidOperand(data.Label, pos)
	}

	if wide {
		if indexIsX {
			return ast.Operand{Mode: ast.ABX, Data: &data}, nil
		}
		return ast.Operand{Mode: ast.ABY, Data: &data}, nil
	}
	if indexIsX {
		return ast.Operand{Mode: ast.ZPX, Data: &data}, nil
	}
	return ast.Operand{Mode: ast.ZPY, Data: &data}, nil
}

func (p *Parser) parseOptionalIndex() (indexed bool, isX bool, err error) {
	if p.cur.Kind != token.KindComma {
		return false, false, nil
	}
	if err := p.advance(); err != nil { // consume ','
		return false, false, err
	}
	switch p.cur.Kind {
	case token.KindX:
		if err := p.advance(); err != nil {
			return false, false, err
		}
		return true, true, nil
	case token.KindY:
		if err := p.advance(); err != nil {
			return false, false, err
		}
		return true, false, nil
	default:
		return false, false, asmerr.NewUnexpectedToken("X or Y", p.cur.Kind.String(), p.cur.Position)
	}
}

// parseOperandData parses either a define-reference/label/number and
// reports whether a numeric operand is 16-bit wide (meaningless for
// labels, which are always reported narrow and resolved later).
func (p *Parser) parseOperandData() (data ast.OperandData, wide bool, err error) {
	if p.cur.Kind == token.KindIdentifier {
		name := p.cur.Text
		pos := p.cur.Position
		if err := p.advance(); err != nil {
			return ast.OperandData{}, false, err
		}
		if defined, ok := p.defines[name]; ok {
			// Reached for indexed and indirect references (parseDirect
			// returns an unindexed reference's whole operand itself).
			// Re-use the define's operand data verbatim; any trailing
			// ",X"/",Y" on this reference is re-applied by the caller via
			// the addressing-mode choice, per spec.md §4.2.
			if defined.Data == nil {
				return ast.OperandData{}, false, asmerr.NewInvalidOperand(name, pos)
			}
			wide = defined.Data.Number.Type == ast.Decimal16 || defined.Data.Number.Type == ast.Hex16
			return *defined.Data, wide, nil
		}
		return ast.LabelData(name), false, nil
	}

	num, _, err := p.parseNumberLiteral()
	if err != nil {
		return ast.OperandData{}, false, err
	}
	wide = num.Type == ast.Decimal16 || num.Type == ast.Hex16
	return ast.NumberData(num), wide, nil
}

// parseNumberLiteral consumes a Hex8/Hex16/Decimal token and classifies a
// decimal literal as 8- or 16-bit by magnitude (<=255 degrades to 8-bit,
// per spec.md §3's NumberType note).
func (p *Parser) parseNumberLiteral() (ast.Number, string, error) {
	switch p.cur.Kind {
	case token.KindHex8:
		v := p.cur.Byte
		if err := p.advance(); err != nil {
			return ast.Number{}, "", err
		}
		return ast.Number{Type: ast.Hex8, Value: uint16(v)}, fmt.Sprintf("$%02X", v), nil
	case token.KindHex16:
		v := p.cur.Number
		if err := p.advance(); err != nil {
			return ast.Number{}, "", err
		}
		return ast.Number{Type: ast.Hex16, Value: v}, fmt.Sprintf("$%04X", v), nil
	case token.KindDecimal:
		v := p.cur.Number
		if err := p.advance(); err != nil {
			return ast.Number{}, "", err
		}
		if v <= 255 {
			return ast.Number{Type: ast.Decimal8, Value: v}, fmt.Sprintf("%d", v), nil
		}
		return ast.Number{Type: ast.Decimal16, Value: v}, fmt.Sprintf("%d", v), nil
	default:
		return ast.Number{}, "", asmerr.NewUnexpectedToken("number or identifier", p.cur.Kind.String(), p.cur.Position)
	}
}
