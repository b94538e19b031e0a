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

import "go6502/pkg/ast"

// effectiveAddress computes the address an operand resolves to for every
// addressing mode except IMP, ACC, and REL (handled by their own
// instruction logic, since none of the three yields a plain memory
// address). It advances PC past the operand bytes as it goes, per the
// table in spec.md §4.4.
func (c *CPU) effectiveAddress(mode ast.AddressingMode) uint16 {
	switch mode {
	case ast.IMM:
		addr := c.PC
		c.PC++
		return addr
	case ast.ZPG:
		addr := uint16(c.read(c.PC))
		c.PC++
		return addr
	case ast.ZPX:
		b := c.read(c.PC)
		c.PC++
		return uint16(b + c.X)
	case ast.ZPY:
		b := c.read(c.PC)
		c.PC++
		return uint16(b + c.Y)
	case ast.ABS:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr
	case ast.ABX:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr + uint16(c.X)
	case ast.ABY:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr + uint16(c.Y)
	case ast.IND:
		ptr := c.read16(c.PC)
		c.PC += 2
		return c.read16(ptr)
	case ast.IDX:
		b := c.read(c.PC)
		c.PC++
		zp := uint16(b + c.X)
		return c.read16(zp)
	case ast.IDY:
		b := c.read(c.PC)
		c.PC++
		base := c.read16(uint16(b))
		return base + uint16(c.Y)
	default:
		return 0
	}
}

// operandValue reads the byte an instruction operates on: the accumulator
// for ACC, or the memory cell at the mode's effective address otherwise. Instructions that need the address itself (STA, INC, shifts)
// call effectiveAddress directly instead.
func (c *CPU) operandValue(mode ast.AddressingMode) uint8 {
	if mode == ast.ACC {
		return c.A
	}
	addr := c.effectiveAddress(mode)
	return c.read(addr)
}
