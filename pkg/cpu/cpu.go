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

// Package cpu models the MOS 6502's register file, flag word, stack, and
// addressing modes, and executes the 151-opcode instruction set one
// instruction per Step.
package cpu

import (
	"go6502/pkg/asmerr"
	"go6502/pkg/memory"
	"go6502/pkg/opcode"
)

// CPU is the 6502 register file plus the memory it's attached to. A/X/Y/P
// are the accumulator, index registers, and status flags; SP is the stack
// pointer (an offset within the 0x0100-0x01FF page); PC is the program
// counter.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16
	P  uint8

	Mem memory.Memory

	// Debug, if set, is invoked after each significant event. It is
	// struct-owned state the front-end supplies, not a package global.
	Debug DebugFunc
}

// New creates a CPU over mem, in the reset state.
func New(mem memory.Memory) *CPU {
	c := &CPU{Mem: mem}
	c.Reset()
	return c
}

// Reset sets pc := memory.ROMBase and clears A/X/Y/P/SP. SP starts at
// 0x00 rather than hardware's 0xFF, so the first push writes 0x0100 and
// then wraps SP to 0xFF; later pushes continue down from 0x01FF.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0
	c.P = 0
	c.PC = memory.ROMBase
	c.debug(Info, "reset: pc=%#04x", c.PC)
}

// Load copies program into memory at memory.ROMBase. It does not reset the
// register file; callers that want a clean run call Reset first.
func (c *CPU) Load(program []byte) {
	c.Mem.Load(memory.ROMBase, program)
	c.debug(Info, "load: %d bytes at %#04x", len(program), uint16(memory.ROMBase))
}

// Step executes exactly one instruction: fetch the opcode at pc, advance
// pc past it, decode, compute the effective address for its addressing
// mode (advancing pc past the operand), perform the operation, and update
// flags. It returns the fetched opcode byte; the front-end treats 0x00
// (BRK) as a halt signal.
func (c *CPU) Step() (uint8, error) {
	pc := c.PC
	op := c.Mem.Read(c.PC)
	c.PC++

	mnemonic, mode, err := opcode.Decode(op, int(pc))
	if err != nil {
		c.debug(Error, "invalid opcode %#02x at %#04x", op, pc)
		return op, err
	}
	c.debug(Info, "fetch %s at %#04x (opcode %#02x)", mnemonic, pc, op)

	handler, ok := handlers[mnemonic]
	if !ok {
		return op, asmerr.NewInvalidOpcode(op, int(pc))
	}
	handler(c, mode)

	return op, nil
}

// Execute runs Step repeatedly until a BRK (opcode 0x00) is fetched, or
// until Step returns an error.
func (c *CPU) Execute() error {
	for {
		op, err := c.Step()
		if err != nil {
			return err
		}
		if op == 0x00 {
			return nil
		}
	}
}

func (c *CPU) read(addr uint16) uint8 {
	return c.Mem.Read(addr)
}

func (c *CPU) write(addr uint16, v uint8) {
	c.Mem.Write(addr, v)
	c.debug(Info, "write %#02x to %#04x", v, addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	return c.Mem.Read16(addr)
}

// push writes v to the stack page and moves SP down by one, wrapping
// within the 8-bit page per spec.md's stack discipline.
func (c *CPU) push(v uint8) {
	c.write(memory.StackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(memory.StackBase + uint16(c.SP))
}

// pushPC pushes PC as two bytes, most-significant byte first, so the
// resulting little-endian layout in memory has the LSB at the lower
// address.
func (c *CPU) pushPC() {
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC & 0xFF))
}

func (c *CPU) popPC() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}
