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

// Package memory is the CPU's 64 KiB address space: a flat byte array with
// 8-bit and little-endian 16-bit access.
package memory

const (
	// Capacity is the full 64 KiB address space a 6502 can address. Every
	// byte, including 0xFFFF, is reachable here.
	Capacity = 65536

	// StackBase is where the stack page (0x0100-0x01FF) begins.
	StackBase = 0x0100

	// ROMBase is the fixed load address for assembled programs and the
	// reset value of PC.
	ROMBase = 0x8000

	// VideoBase and VideoEnd bound the video buffer convention front-ends
	// use; the core neither reads nor writes this range specially.
	VideoBase = 0x0200
	VideoEnd  = 0x05FF
)

// Memory is the interface the CPU needs from its address space. A second
// implementation (e.g. one that traps writes to a video window) can be
// substituted without changing pkg/cpu.
type Memory interface {
	Reset()
	Read(addr uint16) uint8
	Write(addr uint16, value uint8) (oldValue uint8)
	Read16(addr uint16) uint16
	Write16(addr uint16, value uint16)
	Load(base uint16, program []byte)
}

// Plain is a full 64 KiB array of bytes, initialized to zero on Reset.
type Plain [Capacity]uint8

// New creates a Plain memory, already reset.
func New() *Plain {
	m := &Plain{}
	m.Reset()
	return m
}

func (m *Plain) Reset() {
	for i := range m {
		m[i] = 0x00
	}
}

func (m *Plain) Read(addr uint16) uint8 {
	return m[addr]
}

func (m *Plain) Write(addr uint16, value uint8) (oldValue uint8) {
	oldValue = m[addr]
	m[addr] = value
	return
}

// Read16 reads a little-endian 16-bit value starting at addr. addr+1 wraps
// around the 64 KiB space if addr is 0xFFFF.
func (m *Plain) Read16(addr uint16) uint16 {
	lo := m.Read(addr)
	hi := m.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// Write16 writes a little-endian 16-bit value starting at addr.
func (m *Plain) Write16(addr uint16, value uint16) {
	m.Write(addr, uint8(value&0xFF))
	m.Write(addr+1, uint8(value>>8))
}

// Load copies program into memory starting at base, e.g. load(bytes)
// copying to ROMBase.
func (m *Plain) Load(base uint16, program []byte) {
	for i, b := range program {
		m[int(base)+i] = b
	}
}
