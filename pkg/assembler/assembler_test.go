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

package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go6502/pkg/cpu"
	"go6502/pkg/memory"
)

func TestAssembleSimpleStore(t *testing.T) {
	program, err := Assemble("LDX #$01\nSTX $0000\n")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xA2, 0x01, 0x8E, 0x00, 0x00}, program)
}

func TestAssembleLabeledBranchProgram(t *testing.T) {
	source := `LDA #$02
CMP #$01
BNE FOO
LDA #$01
STA $00
BRK
FOO:
  LDA #$01
  STA $01
  BRK
`
	program, err := Assemble(source)
	assert.NoError(t, err)
	want := []byte{
		0xA9, 0x02,
		0xC9, 0x01,
		0xD0, 0x05,
		0xA9, 0x01,
		0x85, 0x00,
		0x00,
		0xA9, 0x01,
		0x85, 0x01,
		0x00,
	}
	assert.Equal(t, want, program)

	mem := memory.New()
	c := cpu.New(mem)
	c.Load(program)
	assert.NoError(t, c.Execute())
	assert.Equal(t, uint8(0x01), mem.Read(0x01))
	assert.Equal(t, uint8(0x00), mem.Read(0x00))
}

func TestAssembleJMPAndINXSkip(t *testing.T) {
	// JMP $8004 ; INX ; DEX ; BRK -- at $8000, the JMP skips the INX byte,
	// landing directly on DEX.
	program, err := Assemble("JMP $8004\nINX\nDEX\n")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x4C, 0x04, 0x80, 0xE8, 0xCA}, program)

	mem := memory.New()
	c := cpu.New(mem)
	c.X = 1
	c.Load(program)
	assert.NoError(t, c.Execute())
	assert.Equal(t, uint8(0), c.X)
	assert.Equal(t, uint16(0x8006), c.PC)
}

func TestAssembleDefineSubstitution(t *testing.T) {
	program, err := Assemble("define ZERO_PAGE_SLOT $10\nLDA ZERO_PAGE_SLOT\n")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xA5, 0x10}, program)
}

func TestAssembleForwardDefineReference(t *testing.T) {
	// The define appears after its use; pass 2's defines-table fallback
	// resolves what pass 1 had to treat as a forward label.
	program, err := Assemble("LDA LATER\ndefine LATER $42\n")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xA5, 0x42}, program)
}

func TestAssembleUnresolvedLabelErrors(t *testing.T) {
	_, err := Assemble("BNE NOWHERE\n")
	assert.Error(t, err)
}

func TestAssembleBackwardBranchOffset(t *testing.T) {
	program, err := Assemble("LOOP:\n  DEX\n  BNE LOOP\n")
	assert.NoError(t, err)
	// DEX at offset 0 (1 byte), BNE at offset 1; branch back to offset 0:
	// pc_of_branch=1, +2 = 3, label=0, offset = 0-3 = -3 = 0xFD.
	assert.Equal(t, []byte{0xCA, 0xD0, 0xFD}, program)
}
