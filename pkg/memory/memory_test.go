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

package memory

import "testing"

func TestReadWriteRoundTrip(t *testing.T) {
	m := New()
	old := m.Write(0x1234, 0xAB)
	if old != 0 {
		t.Fatalf("expected old value 0, got %#02x", old)
	}
	if got := m.Read(0x1234); got != 0xAB {
		t.Fatalf("expected 0xAB, got %#02x", got)
	}
}

func TestWriteReturnsPreviousValue(t *testing.T) {
	m := New()
	m.Write(0x0010, 0x01)
	old := m.Write(0x0010, 0x02)
	if old != 0x01 {
		t.Fatalf("expected old value 0x01, got %#02x", old)
	}
}

func TestRead16LittleEndian(t *testing.T) {
	m := New()
	m.Write(0x2000, 0x34)
	m.Write(0x2001, 0x12)
	if got := m.Read16(0x2000); got != 0x1234 {
		t.Fatalf("expected 0x1234, got %#04x", got)
	}
}

func TestRead16WrapsAtTopOfAddressSpace(t *testing.T) {
	m := New()
	m.Write(0xFFFF, 0x78)
	m.Write(0x0000, 0x56)
	if got := m.Read16(0xFFFF); got != 0x5678 {
		t.Fatalf("expected 0x5678 (wrapped), got %#04x", got)
	}
}

func TestWrite16LittleEndian(t *testing.T) {
	m := New()
	m.Write16(0x3000, 0xBEEF)
	if got := m.Read(0x3000); got != 0xEF {
		t.Fatalf("expected low byte 0xEF, got %#02x", got)
	}
	if got := m.Read(0x3001); got != 0xBE {
		t.Fatalf("expected high byte 0xBE, got %#02x", got)
	}
}

func TestLoadCopiesAtBase(t *testing.T) {
	m := New()
	m.Load(ROMBase, []byte{0xA9, 0x01, 0x00})
	if got := m.Read(ROMBase); got != 0xA9 {
		t.Fatalf("expected 0xA9 at ROMBase, got %#02x", got)
	}
	if got := m.Read(ROMBase + 2); got != 0x00 {
		t.Fatalf("expected 0x00, got %#02x", got)
	}
}

func TestResetZeroesEverything(t *testing.T) {
	m := New()
	m.Write(0x5000, 0xFF)
	m.Reset()
	if got := m.Read(0x5000); got != 0 {
		t.Fatalf("expected reset to zero memory, got %#02x", got)
	}
}

func TestCapacityCoversFullAddressSpace(t *testing.T) {
	if Capacity != 65536 {
		t.Fatalf("expected a full 64 KiB address space, got %d", Capacity)
	}
}
