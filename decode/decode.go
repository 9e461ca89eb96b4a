/*
 * Ridge32 - Instruction decode
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

// Package decode parses the Ridge32 2/4/6-byte instruction formats. Decode
// is a pure function of a Fetcher and an address: it never allocates on the
// heap beyond the Instruction value itself, and that value is never mutated
// once returned.
package decode

// Fetcher is the minimal read surface decode needs. The cpu package
// supplies a raw-backed Fetcher in kernel mode and a translating one in
// user mode; decode itself never knows which.
type Fetcher interface {
	ReadHalfword(addr uint32) (uint32, bool)
	ReadWord(addr uint32) (uint32, bool)
}

// Instruction is the immutable decoded record. It is produced once per
// fetch and never mutated afterward.
type Instruction struct {
	Op            uint8
	Rx            uint8
	Ry            uint8 // register index 0..15, or a raw 4-bit immediate field
	Displacement  int32
	BranchAddress uint32
	Length        uint8
}

// longDisplacement and memRefBit classify the first opcode byte per the
// spec's format table.
const (
	memRefBit        = 0x80
	longDisplacement = 0x10
)

// Decode fetches and parses one instruction at address. It issues two
// distinct memory reads for long-displacement instructions; either may
// fault independently, and a fault on the second sub-read is reported the
// same way as a fault on the first -- the spec leaves which address value
// accompanies the page-fault event as implementation-defined when the
// second fetch straddles a page boundary by itself (see DESIGN.md).
func Decode(f Fetcher, address uint32) (Instruction, bool) {
	word, fault := f.ReadHalfword(address)
	if fault {
		return Instruction{}, true
	}

	inst := Instruction{
		Op: uint8((word >> 8) & 0xff),
		Rx: uint8((word >> 4) & 0xf),
		Ry: uint8(word & 0xf),
	}

	if inst.Op&memRefBit == 0 {
		inst.Length = 2
		return inst, false
	}

	if inst.Op&longDisplacement != 0 {
		disp, fault := f.ReadWord(address + 2)
		if fault {
			return Instruction{}, true
		}
		inst.Displacement = int32(disp)
		inst.Length = 6
	} else {
		disp, fault := f.ReadHalfword(address + 2)
		if fault {
			return Instruction{}, true
		}
		inst.Displacement = int32(int16(uint16(disp)))
		inst.Length = 4
	}

	inst.BranchAddress = uint32(int64(address)+int64(inst.Displacement)) &^ 1
	return inst, false
}
