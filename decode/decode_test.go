/*
 * Ridge32 - Decode tests
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package decode

import "testing"

// memFetcher is a flat byte-addressed Fetcher backed by a plain slice, for
// test purposes only -- it never faults unless told to.
type memFetcher struct {
	bytes     []byte
	faultAddr map[uint32]bool
}

func (f memFetcher) ReadHalfword(addr uint32) (uint32, bool) {
	if f.faultAddr[addr] {
		return 0, true
	}
	return uint32(f.bytes[addr])<<8 | uint32(f.bytes[addr+1]), false
}

func (f memFetcher) ReadWord(addr uint32) (uint32, bool) {
	if f.faultAddr[addr] {
		return 0, true
	}
	return uint32(f.bytes[addr])<<24 | uint32(f.bytes[addr+1])<<16 |
		uint32(f.bytes[addr+2])<<8 | uint32(f.bytes[addr+3]), false
}

// MOVE R1,R0 = 00 10, per the worked example.
func TestDecodeRegisterForm(t *testing.T) {
	f := memFetcher{bytes: []byte{0x00, 0x10}}
	inst, fault := Decode(f, 0)
	if fault {
		t.Fatalf("unexpected fault")
	}
	if inst.Op != 0x00 || inst.Rx != 1 || inst.Ry != 0 || inst.Length != 2 {
		t.Errorf("got %+v", inst)
	}
}

// MOVEI R2,#3 / ADD R3,R2 = 11 23 / 03 32, per the worked example.
func TestDecodeImmediateForm(t *testing.T) {
	f := memFetcher{bytes: []byte{0x11, 0x23, 0x03, 0x32}}
	inst, fault := Decode(f, 0)
	if fault {
		t.Fatalf("unexpected fault")
	}
	if inst.Op != 0x11 || inst.Rx != 2 || inst.Ry != 3 || inst.Length != 2 {
		t.Errorf("got %+v", inst)
	}
	inst2, fault := Decode(f, 2)
	if fault {
		t.Fatalf("unexpected fault")
	}
	if inst2.Op != 0x03 || inst2.Rx != 3 || inst2.Ry != 2 {
		t.Errorf("got %+v", inst2)
	}
}

// BR_eql long form: 92 12 + 00 00 00 10, per the worked example.
func TestDecodeLongDisplacementForm(t *testing.T) {
	f := memFetcher{bytes: []byte{0x92, 0x12, 0x00, 0x00, 0x00, 0x10}}
	inst, fault := Decode(f, 0)
	if fault {
		t.Fatalf("unexpected fault")
	}
	if inst.Op != 0x92 || inst.Length != 6 {
		t.Errorf("got %+v", inst)
	}
	if inst.Displacement != 0x10 {
		t.Errorf("Displacement = %#x, want 0x10", inst.Displacement)
	}
	if inst.BranchAddress != 0x10 {
		t.Errorf("BranchAddress = %#x, want 0x10", inst.BranchAddress)
	}
}

func TestDecodeShortDisplacementForm(t *testing.T) {
	// memory-reference bit set, long-displacement bit clear -> 4 bytes,
	// 16-bit signed displacement.
	mem := make([]byte, 0x104)
	copy(mem[0x100:], []byte{0x82, 0x12, 0xFF, 0xF0})
	f := memFetcher{bytes: mem}
	inst, fault := Decode(f, 0x100)
	if fault {
		t.Fatalf("unexpected fault")
	}
	if inst.Length != 4 {
		t.Errorf("Length = %d, want 4", inst.Length)
	}
	if inst.Displacement != -16 {
		t.Errorf("Displacement = %d, want -16", inst.Displacement)
	}
	want := uint32(0x100 - 16)
	if inst.BranchAddress != want {
		t.Errorf("BranchAddress = %#x, want %#x", inst.BranchAddress, want)
	}
}

func TestDecodeFetchFaultOnFirstHalfword(t *testing.T) {
	f := memFetcher{bytes: []byte{0, 0}, faultAddr: map[uint32]bool{0: true}}
	_, fault := Decode(f, 0)
	if !fault {
		t.Fatalf("expected fault")
	}
}

func TestDecodeFetchFaultOnDisplacement(t *testing.T) {
	f := memFetcher{
		bytes:     []byte{0x82, 0x00, 0, 0},
		faultAddr: map[uint32]bool{2: true},
	}
	_, fault := Decode(f, 0)
	if !fault {
		t.Fatalf("expected fault reading the displacement halfword")
	}
}

func TestDecodeBranchAddressClearsLowBit(t *testing.T) {
	f := memFetcher{bytes: []byte{0x86, 0x00, 0x00, 0x05}}
	inst, fault := Decode(f, 0)
	if fault {
		t.Fatalf("unexpected fault")
	}
	if inst.BranchAddress&1 != 0 {
		t.Errorf("BranchAddress = %#x, low bit not cleared", inst.BranchAddress)
	}
}
