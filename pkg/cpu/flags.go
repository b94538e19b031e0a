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

// Flag bits of the P status register.
const (
	FlagNegative  uint8 = 0x80
	FlagOverflow  uint8 = 0x40
	FlagUnused    uint8 = 0x20
	FlagBreak     uint8 = 0x10
	FlagDecimal   uint8 = 0x08
	FlagInterrupt uint8 = 0x04
	FlagZero      uint8 = 0x02
	FlagCarry     uint8 = 0x01
)

// GetFlag reports whether flag is set in P.
func (c *CPU) GetFlag(flag uint8) bool {
	return c.P&flag != 0
}

// SetFlag sets or clears flag in P.
func (c *CPU) SetFlag(flag uint8, v bool) {
	if v {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// setNZ sets N from bit 7 of v and Z from v == 0, the shared tail of
// nearly every flag-affecting instruction.
func (c *CPU) setNZ(v uint8) {
	c.SetFlag(FlagNegative, v&0x80 != 0)
	c.SetFlag(FlagZero, v == 0)
}
