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

package parser

import (
	"testing"

	"go6502/pkg/ast"
)

func mustParse(t *testing.T, source string) []ast.Statement {
	t.Helper()
	stmts, err := Parse(source)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", source, err)
	}
	return stmts
}

func TestParseImmediateOperand(t *testing.T) {
	stmts := mustParse(t, "LDA #$01\n")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	inst := stmts[0].Instruction
	if inst.Mnemonic != ast.LDA || inst.Operand.Mode != ast.IMM {
		t.Fatalf("expected LDA IMM, got %s %s", inst.Mnemonic, inst.Operand.Mode)
	}
	if inst.Operand.Data.Number.Value != 1 {
		t.Fatalf("expected operand value 1, got %d", inst.Operand.Data.Number.Value)
	}
}

func TestParseImmediate16BitIsRejected(t *testing.T) {
	if _, err := Parse("LDA #$1234\n"); err == nil {
		t.Fatal("expected a 16-bit immediate operand to be rejected")
	}
}

func TestParseBareNumberIsRELZPG(t *testing.T) {
	stmts := mustParse(t, "LDA $01\n")
	if stmts[0].Instruction.Operand.Mode != ast.RELZPG {
		t.Fatalf("expected RELZPG, got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseWideNumberIsABS(t *testing.T) {
	stmts := mustParse(t, "LDA $1234\n")
	if stmts[0].Instruction.Operand.Mode != ast.ABS {
		t.Fatalf("expected ABS, got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseIndexedAbsolute(t *testing.T) {
	stmts := mustParse(t, "LDA $1234,X\n")
	if stmts[0].Instruction.Operand.Mode != ast.ABX {
		t.Fatalf("expected ABX, got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseIndexedZeroPage(t *testing.T) {
	stmts := mustParse(t, "LDA $01,Y\n")
	if stmts[0].Instruction.Operand.Mode != ast.ZPY {
		t.Fatalf("expected ZPY, got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseIndexedIndirect(t *testing.T) {
	stmts := mustParse(t, "LDA ($01,X)\n")
	if stmts[0].Instruction.Operand.Mode != ast.IDX {
		t.Fatalf("expected IDX, got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseIndirectIndexed(t *testing.T) {
	stmts := mustParse(t, "LDA ($01),Y\n")
	if stmts[0].Instruction.Operand.Mode != ast.IDY {
		t.Fatalf("expected IDY, got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseIndirectJMP(t *testing.T) {
	stmts := mustParse(t, "JMP ($1234)\n")
	if stmts[0].Instruction.Operand.Mode != ast.IND {
		t.Fatalf("expected IND, got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseImplicitHasNoOperand(t *testing.T) {
	stmts := mustParse(t, "CLC\n")
	if stmts[0].Instruction.Operand.Mode != ast.IMPACC {
		t.Fatalf("expected IMPACC, got %s", stmts[0].Instruction.Operand.Mode)
	}
	if stmts[0].Instruction.Operand.Data != nil {
		t.Fatal("expected no operand data for an implicit instruction")
	}
}

func TestParseAccumulatorShift(t *testing.T) {
	stmts := mustParse(t, "ASL\n")
	if stmts[0].Instruction.Operand.Mode != ast.IMPACC {
		t.Fatalf("expected IMPACC (resolved later to ACC), got %s", stmts[0].Instruction.Operand.Mode)
	}
}

func TestParseLabelDeclarationAndReference(t *testing.T) {
	stmts := mustParse(t, "LOOP:\n  DEX\n  BNE LOOP\n")
	if len(stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	if stmts[0].Kind != ast.StatementLabel || stmts[0].Label != "LOOP" {
		t.Fatalf("expected a LOOP label statement, got %+v", stmts[0])
	}
	branch := stmts[2].Instruction
	if branch.Mnemonic != ast.BNE || !branch.Operand.Data.IsLabel || branch.Operand.Data.Label != "LOOP" {
		t.Fatalf("expected BNE LOOP, got %+v", branch)
	}
}

func TestParseDefineSubstitution(t *testing.T) {
	stmts := mustParse(t, "define VALUE $01\nLDA VALUE\n")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	inst := stmts[1].Instruction
	if inst.Operand.Mode != ast.RELZPG {
		t.Fatalf("expected the substituted define operand's own mode, got %s", inst.Operand.Mode)
	}
	if inst.Operand.Data.Number.Value != 1 {
		t.Fatalf("expected the define's value 1 to be reused, got %d", inst.Operand.Data.Number.Value)
	}
}

func TestParseIndexedRawLabelIsRejected(t *testing.T) {
	// Only a define's reused operand can carry ",X"/",Y" — a bare,
	// not-yet-defined identifier has no indexed surface form.
	if _, err := Parse("LDA FOO,X\n"); err == nil {
		t.Fatal("expected an indexed raw label to be rejected")
	}
}

func TestParseCommentsAreIgnored(t *testing.T) {
	stmts := mustParse(t, "; a comment\nLDA #$01 ; trailing comment\n")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
}

func TestParseUnknownMnemonicErrors(t *testing.T) {
	if _, err := Parse("FOO #$01\n"); err == nil {
		t.Fatal("expected an unknown mnemonic to error")
	}
}

func TestParseMissingStatementSeparatorErrors(t *testing.T) {
	if _, err := Parse("LDA #$01 LDA #$02\n"); err == nil {
		t.Fatal("expected a missing newline between statements to error")
	}
}
