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

package cpu

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go6502/pkg/memory"
)

// fromHex turns a space-separated hex byte listing (as found in disassembly
// listings and test fixtures) into a byte slice.
func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	assert.NoError(t, err)
	return b
}

// TestMultiplyByRepeatedAddition loads the classic "multiply 10 by 3 via
// repeated ADC in a DEY/BNE loop" program and checks the final register and
// memory state once BRK halts execution.
func TestMultiplyByRepeatedAddition(t *testing.T) {
	program := fromHex(t, "A2 0A 8E 00 00 A2 03 8E 01 00 AC 00 00 A9 00 18 6D 01 00 88 D0 FA 8D 02 00 EA EA EA")

	mem := memory.New()
	c := New(mem)
	c.Load(program)

	assert.NoError(t, c.Execute())

	assert.Equal(t, uint8(30), c.A)
	assert.Equal(t, uint8(3), c.X)
	assert.Equal(t, uint8(0), c.Y)
	assert.Equal(t, uint8(0x0A), mem.Read(0x0000))
	assert.Equal(t, uint8(0x03), mem.Read(0x0001))
	assert.Equal(t, uint8(0x1E), mem.Read(0x0002))
}

func newTestCPU() (*CPU, *memory.Plain) {
	mem := memory.New()
	return New(mem), mem
}

func TestADCSetsOverflowAndCarry(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x78
	c.SetFlag(FlagCarry, true)
	c.Mem.Load(memory.ROMBase, []byte{0x69, 0x07}) // ADC #$07

	_, err := c.Step()
	assert.NoError(t, err)

	assert.Equal(t, uint8(0x80), c.A)
	assert.False(t, c.GetFlag(FlagCarry))
	assert.False(t, c.GetFlag(FlagZero))
	assert.True(t, c.GetFlag(FlagOverflow))
	assert.True(t, c.GetFlag(FlagNegative))
}

func TestSBCBorrow(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x00
	c.SetFlag(FlagCarry, true) // no borrow going in
	c.Mem.Load(memory.ROMBase, []byte{0xE9, 0x01}) // SBC #$01

	_, err := c.Step()
	assert.NoError(t, err)

	assert.Equal(t, uint8(0xFF), c.A)
	assert.False(t, c.GetFlag(FlagCarry)) // borrow occurred
	assert.True(t, c.GetFlag(FlagNegative))
}

func TestASLAccumulator(t *testing.T) {
	c, _ := newTestCPU()
	c.A = 0x78
	c.Mem.Load(memory.ROMBase, []byte{0x0A}) // ASL A

	_, err := c.Step()
	assert.NoError(t, err)

	assert.Equal(t, uint8(0xF0), c.A)
	assert.False(t, c.GetFlag(FlagCarry))
	assert.True(t, c.GetFlag(FlagNegative))
}

func TestBranchWraparound(t *testing.T) {
	c, _ := newTestCPU()
	// Placed near the top of the address space so the branch target
	// wraps past 0xFFFF back to 0x0007.
	c.PC = 0xFFF0
	c.Mem.Write(0xFFF0, 0xF0) // BEQ
	c.Mem.Write(0xFFF1, 0x15) // +21 -> 0xFFF2 + 21 = 0x10007 -> wraps to 0x0007
	c.SetFlag(FlagZero, true)

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0007), c.PC)
}

func TestJSRThenRTSReturnsToInstructionAfterCall(t *testing.T) {
	c, _ := newTestCPU()
	// JSR $8005 ; NOP ; (callee at $8005) RTS
	c.Mem.Load(memory.ROMBase, []byte{
		0x20, 0x05, 0x80, // JSR $8005
		0xEA,             // NOP (return lands here)
		0x00,             // BRK (padding, never reached by callee)
		0x60,             // RTS at $8005
	})

	_, err := c.Step() // JSR
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8005), c.PC)

	_, err = c.Step() // RTS
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8003), c.PC)
}

func TestStackPushPopWrapsWithinPage(t *testing.T) {
	c, _ := newTestCPU()
	c.SP = 0x00
	c.push(0x42)
	assert.Equal(t, uint8(0xFF), c.SP)
	assert.Equal(t, uint8(0x42), c.Mem.Read(memory.StackBase+0x00))

	v := c.pop()
	assert.Equal(t, uint8(0x42), v)
	assert.Equal(t, uint8(0x00), c.SP)
}

func TestLDAImmediateSetsZeroFlag(t *testing.T) {
	c, _ := newTestCPU()
	c.Mem.Load(memory.ROMBase, []byte{0xA9, 0x00}) // LDA #$00

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), c.A)
	assert.True(t, c.GetFlag(FlagZero))
	assert.False(t, c.GetFlag(FlagNegative))
}

func TestInvalidOpcodeReturnsError(t *testing.T) {
	c, _ := newTestCPU()
	c.Mem.Load(memory.ROMBase, []byte{0x02}) // unofficial/illegal, never assigned

	_, err := c.Step()
	assert.Error(t, err)
}

func TestDebugHookIsStructOwnedNotGlobal(t *testing.T) {
	var messages []string
	c, _ := newTestCPU()
	c.Debug = func(message string, severity Severity) {
		messages = append(messages, message)
	}
	c.Mem.Load(memory.ROMBase, []byte{0xEA}) // NOP

	_, err := c.Step()
	assert.NoError(t, err)
	assert.NotEmpty(t, messages)

	// A second CPU sharing no state must not see the first one's hook.
	other, _ := newTestCPU()
	assert.Nil(t, other.Debug)
}
