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

// handler implements one mnemonic's effect, given its resolved addressing
// mode. It is responsible for calling effectiveAddress/operandValue itself
// (some instructions need the address, some the value, some neither).
type handler func(c *CPU, mode ast.AddressingMode)

var handlers = map[ast.Mnemonic]handler{
	ast.ADC: execADC,
	ast.AND: execAND,
	ast.ASL: execASL,
	ast.BCC: execBranch(FlagCarry, false),
	ast.BCS: execBranch(FlagCarry, true),
	ast.BEQ: execBranch(FlagZero, true),
	ast.BIT: execBIT,
	ast.BMI: execBranch(FlagNegative, true),
	ast.BNE: execBranch(FlagZero, false),
	ast.BPL: execBranch(FlagNegative, false),
	ast.BRK: execBRK,
	ast.BVC: execBranch(FlagOverflow, false),
	ast.BVS: execBranch(FlagOverflow, true),
	ast.CLC: execFlagSet(FlagCarry, false),
	ast.CLD: execFlagSet(FlagDecimal, false),
	ast.CLI: execFlagSet(FlagInterrupt, false),
	ast.CLV: execFlagSet(FlagOverflow, false),
	ast.CMP: execCompare(func(c *CPU) uint8 { return c.A }),
	ast.CPX: execCompare(func(c *CPU) uint8 { return c.X }),
	ast.CPY: execCompare(func(c *CPU) uint8 { return c.Y }),
	ast.DEC: execIncDecMem(-1),
	ast.DEX: execIncDecReg(regX, -1),
	ast.DEY: execIncDecReg(regY, -1),
	ast.EOR: execEOR,
	ast.INC: execIncDecMem(1),
	ast.INX: execIncDecReg(regX, 1),
	ast.INY: execIncDecReg(regY, 1),
	ast.JMP: execJMP,
	ast.JSR: execJSR,
	ast.LDA: execLoad(regA),
	ast.LDX: execLoad(regX),
	ast.LDY: execLoad(regY),
	ast.LSR: execLSR,
	ast.NOP: execNOP,
	ast.ORA: execORA,
	ast.PHA: execPHA,
	ast.PHP: execPHP,
	ast.PLA: execPLA,
	ast.PLP: execPLP,
	ast.ROL: execROL,
	ast.ROR: execROR,
	ast.RTI: execRTI,
	ast.RTS: execRTS,
	ast.SBC: execSBC,
	ast.SEC: execFlagSet(FlagCarry, true),
	ast.SED: execFlagSet(FlagDecimal, true),
	ast.SEI: execFlagSet(FlagInterrupt, true),
	ast.STA: execStore(func(c *CPU) uint8 { return c.A }),
	ast.STX: execStore(func(c *CPU) uint8 { return c.X }),
	ast.STY: execStore(func(c *CPU) uint8 { return c.Y }),
	ast.TAX: execTransfer(func(c *CPU) uint8 { return c.A }, regX, true),
	ast.TAY: execTransfer(func(c *CPU) uint8 { return c.A }, regY, true),
	ast.TSX: execTransfer(func(c *CPU) uint8 { return c.SP }, regX, true),
	ast.TXA: execTransfer(func(c *CPU) uint8 { return c.X }, regA, true),
	ast.TXS: execTransfer(func(c *CPU) uint8 { return c.X }, regSP, false),
	ast.TYA: execTransfer(func(c *CPU) uint8 { return c.Y }, regA, true),
}

// regA/regX/regY/regSP identify which field a register-typed handler
// targets; execIncDecReg/execLoad/execTransfer switch on identity rather
// than holding a *uint8 into the CPU struct, since CPU fields move with
// each call's receiver.
type regID int

const (
	regA regID = iota
	regX
	regY
	regSP
)

func (c *CPU) getReg(r regID) uint8 {
	switch r {
	case regA:
		return c.A
	case regX:
		return c.X
	case regY:
		return c.Y
	default:
		return c.SP
	}
}

func (c *CPU) setReg(r regID, v uint8) {
	switch r {
	case regA:
		c.A = v
	case regX:
		c.X = v
	case regY:
		c.Y = v
	default:
		c.SP = v
	}
}

func execADC(c *CPU, mode ast.AddressingMode) {
	m := c.operandValue(mode)
	carryIn := uint16(0)
	if c.GetFlag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(m) + carryIn
	result := uint8(sum)

	c.SetFlag(FlagCarry, sum > 0xFF)
	overflow := (^(uint16(c.A) ^ uint16(m)) & (uint16(c.A) ^ sum) & 0x80) != 0
	c.SetFlag(FlagOverflow, overflow)
	c.setNZ(result)
	c.A = result
}

func execSBC(c *CPU, mode ast.AddressingMode) {
	m := c.operandValue(mode)
	// SBC is ADC with the operand's bits inverted, per spec.md §4.6.
	notM := ^m
	carryIn := uint16(0)
	if c.GetFlag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(notM) + carryIn
	result := uint8(sum)

	c.SetFlag(FlagCarry, sum > 0xFF)
	overflow := (^(uint16(c.A) ^ uint16(notM)) & (uint16(c.A) ^ sum) & 0x80) != 0
	c.SetFlag(FlagOverflow, overflow)
	c.setNZ(result)
	c.A = result
}

func execAND(c *CPU, mode ast.AddressingMode) {
	c.A &= c.operandValue(mode)
	c.setNZ(c.A)
}

func execORA(c *CPU, mode ast.AddressingMode) {
	c.A |= c.operandValue(mode)
	c.setNZ(c.A)
}

func execEOR(c *CPU, mode ast.AddressingMode) {
	c.A ^= c.operandValue(mode)
	c.setNZ(c.A)
}

// shift applies op to the accumulator (mode == ACC) or a memory cell,
// writing the result back and setting C from the shifted-out bit.
func shift(c *CPU, mode ast.AddressingMode, op func(v uint8, carryIn bool) (result uint8, carryOut bool)) {
	if mode == ast.ACC {
		result, carryOut := op(c.A, c.GetFlag(FlagCarry))
		c.A = result
		c.SetFlag(FlagCarry, carryOut)
		c.setNZ(result)
		return
	}
	addr := c.effectiveAddress(mode)
	v := c.read(addr)
	result, carryOut := op(v, c.GetFlag(FlagCarry))
	c.write(addr, result)
	c.SetFlag(FlagCarry, carryOut)
	c.setNZ(result)
}

func execASL(c *CPU, mode ast.AddressingMode) {
	shift(c, mode, func(v uint8, _ bool) (uint8, bool) {
		return v << 1, v&0x80 != 0
	})
}

func execLSR(c *CPU, mode ast.AddressingMode) {
	shift(c, mode, func(v uint8, _ bool) (uint8, bool) {
		return v >> 1, v&0x01 != 0
	})
}

func execROL(c *CPU, mode ast.AddressingMode) {
	shift(c, mode, func(v uint8, carryIn bool) (uint8, bool) {
		result := v << 1
		if carryIn {
			result |= 0x01
		}
		return result, v&0x80 != 0
	})
}

func execROR(c *CPU, mode ast.AddressingMode) {
	shift(c, mode, func(v uint8, carryIn bool) (uint8, bool) {
		result := v >> 1
		if carryIn {
			result |= 0x80
		}
		return result, v&0x01 != 0
	})
}

func execCompare(reg func(c *CPU) uint8) handler {
	return func(c *CPU, mode ast.AddressingMode) {
		m := c.operandValue(mode)
		r := reg(c)
		result := r - m
		c.SetFlag(FlagCarry, r >= m)
		c.setNZ(result)
	}
}

func execBIT(c *CPU, mode ast.AddressingMode) {
	m := c.operandValue(mode)
	c.SetFlag(FlagZero, c.A&m == 0)
	c.SetFlag(FlagNegative, m&0x80 != 0)
	c.SetFlag(FlagOverflow, m&0x40 != 0)
}

func execIncDecMem(delta int8) handler {
	return func(c *CPU, mode ast.AddressingMode) {
		addr := c.effectiveAddress(mode)
		v := c.read(addr) + uint8(delta)
		c.write(addr, v)
		c.setNZ(v)
	}
}

func execIncDecReg(reg regID, delta int8) handler {
	return func(c *CPU, _ ast.AddressingMode) {
		v := c.getReg(reg) + uint8(delta)
		c.setReg(reg, v)
		c.setNZ(v)
	}
}

func execLoad(reg regID) handler {
	return func(c *CPU, mode ast.AddressingMode) {
		v := c.operandValue(mode)
		c.setReg(reg, v)
		c.setNZ(v)
	}
}

func execStore(reg func(c *CPU) uint8) handler {
	return func(c *CPU, mode ast.AddressingMode) {
		addr := c.effectiveAddress(mode)
		c.write(addr, reg(c))
	}
}

func execTransfer(src func(c *CPU) uint8, dst regID, affectsFlags bool) handler {
	return func(c *CPU, _ ast.AddressingMode) {
		v := src(c)
		c.setReg(dst, v)
		if affectsFlags {
			c.setNZ(v)
		}
	}
}

func execFlagSet(flag uint8, v bool) handler {
	return func(c *CPU, _ ast.AddressingMode) {
		c.SetFlag(flag, v)
	}
}

func execBranch(flag uint8, when bool) handler {
	return func(c *CPU, _ ast.AddressingMode) {
		offset := int8(c.read(c.PC))
		c.PC++
		if c.GetFlag(flag) == when {
			c.PC = uint16(int32(c.PC) + int32(offset))
		}
	}
}

func execJMP(c *CPU, mode ast.AddressingMode) {
	c.PC = c.effectiveAddress(mode)
}

func execJSR(c *CPU, mode ast.AddressingMode) {
	target := c.effectiveAddress(mode)
	c.PC--
	c.pushPC()
	c.PC = target
}

func execRTS(c *CPU, _ ast.AddressingMode) {
	c.PC = c.popPC() + 1
}

func execRTI(c *CPU, _ ast.AddressingMode) {
	c.P = c.pop()
	c.PC = c.popPC()
}

func execBRK(c *CPU, _ ast.AddressingMode) {
	// Acts as a program terminator: Step's caller sees opcode 0x00 and
	// halts. No interrupt vector is fetched (spec.md §9).
}

func execNOP(c *CPU, _ ast.AddressingMode) {}

func execPHA(c *CPU, _ ast.AddressingMode) {
	c.push(c.A)
}

func execPHP(c *CPU, _ ast.AddressingMode) {
	c.push(c.P)
}

func execPLA(c *CPU, _ ast.AddressingMode) {
	c.A = c.pop()
	c.setNZ(c.A)
}

func execPLP(c *CPU, _ ast.AddressingMode) {
	c.P = c.pop()
}
