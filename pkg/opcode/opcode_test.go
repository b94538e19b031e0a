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

package opcode

import (
	"testing"

	"go6502/pkg/ast"
	"go6502/pkg/token"
)

// TestEncodeDecodeRoundTrip walks every populated cell of the decode table
// and checks that Encode(Decode(b)) == b, i.e. the two directions agree on
// all 151 legal opcodes.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	count := 0
	for b := 0; b < 256; b++ {
		e := table[b]
		if !e.valid {
			continue
		}
		count++

		got, err := Encode(e.mnemonic, e.mode, token.Position{})
		if err != nil {
			t.Fatalf("Encode(%s, %s) failed for byte %#02x: %v", e.mnemonic, e.mode, b, err)
		}
		if got != byte(b) {
			t.Fatalf("Encode(%s, %s) = %#02x, want %#02x", e.mnemonic, e.mode, got, b)
		}
	}
	if count != 151 {
		t.Fatalf("expected exactly 151 legal opcodes, found %d", count)
	}
}

func TestDecodeRejectsIllegalOpcode(t *testing.T) {
	illegal := []byte{0x02, 0x03, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xEB, 0xFA}
	for _, b := range illegal {
		if _, _, err := Decode(b, 0); err == nil {
			t.Fatalf("expected %#02x to be illegal, but it decoded", b)
		}
	}
}

func TestResolveRELZPG(t *testing.T) {
	if got := Resolve(ast.BNE, ast.RELZPG); got != ast.REL {
		t.Fatalf("branch mnemonic should resolve RELZPG to REL, got %s", got)
	}
	if got := Resolve(ast.JMP, ast.RELZPG); got != ast.ABS {
		t.Fatalf("JMP should resolve RELZPG to ABS, got %s", got)
	}
	if got := Resolve(ast.LDA, ast.RELZPG); got != ast.ZPG {
		t.Fatalf("non-branch, non-jump mnemonic should resolve RELZPG to ZPG, got %s", got)
	}
}

func TestResolveIMPACC(t *testing.T) {
	if got := Resolve(ast.ASL, ast.IMPACC); got != ast.ACC {
		t.Fatalf("ASL should resolve IMPACC to ACC, got %s", got)
	}
	if got := Resolve(ast.CLC, ast.IMPACC); got != ast.IMP {
		t.Fatalf("CLC should resolve IMPACC to IMP, got %s", got)
	}
}

func TestOperandWidth(t *testing.T) {
	cases := []struct {
		mode  ast.AddressingMode
		width int
	}{
		{ast.IMP, 0}, {ast.ACC, 0},
		{ast.IMM, 1}, {ast.ZPG, 1}, {ast.ZPX, 1}, {ast.ZPY, 1}, {ast.REL, 1}, {ast.IDX, 1}, {ast.IDY, 1},
		{ast.ABS, 2}, {ast.ABX, 2}, {ast.ABY, 2}, {ast.IND, 2},
	}
	for _, c := range cases {
		if got := OperandWidth(c.mode); got != c.width {
			t.Fatalf("OperandWidth(%s) = %d, want %d", c.mode, got, c.width)
		}
	}
}

func TestEncodeUnknownCombinationErrors(t *testing.T) {
	if _, err := Encode(ast.LDA, ast.IND, token.Position{}); err == nil {
		t.Fatal("expected LDA with IND addressing to be rejected")
	}
}
