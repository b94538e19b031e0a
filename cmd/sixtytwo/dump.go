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

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go6502/pkg/memory"
)

// binaryDump writes program as a hex listing, 16 bytes per line, prefixed
// with the address the line's first byte loads at (ROM base plus offset).
func binaryDump(w io.Writer, program []byte) error {
	for i := 0; i < len(program); i += 16 {
		end := i + 16
		if end > len(program) {
			end = len(program)
		}
		line := program[i:end]

		if _, err := fmt.Fprintf(w, "$%04X:", memory.ROMBase+i); err != nil {
			return err
		}
		for _, b := range line {
			if _, err := fmt.Fprintf(w, " %02X", b); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// parseMemoryRange parses "lo:hi" as two 16-bit addresses, each read as
// hex with or without a 0x prefix.
func parseMemoryRange(spec string) (lo, hi uint16, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid memory range %q, expected lo:hi", spec)
	}
	loVal, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "0x"), 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q: %w", parts[0], err)
	}
	hiVal, err := strconv.ParseUint(strings.TrimPrefix(parts[1], "0x"), 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q: %w", parts[1], err)
	}
	return uint16(loVal), uint16(hiVal), nil
}

// dumpMemoryRange prints mem[lo:hi] (inclusive) as a hex listing.
func dumpMemoryRange(w io.Writer, mem *memory.Plain, lo, hi uint16) error {
	for addr := uint32(lo); addr <= uint32(hi); addr += 16 {
		if _, err := fmt.Fprintf(w, "$%04X:", addr); err != nil {
			return err
		}
		for col := uint32(0); col < 16 && addr+col <= uint32(hi); col++ {
			if _, err := fmt.Fprintf(w, " %02X", mem.Read(uint16(addr+col))); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if addr+16 < addr {
			break // overflow guard, unreachable for addr <= 0xFFFF
		}
	}
	return nil
}
