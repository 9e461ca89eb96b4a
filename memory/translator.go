/*
 * Ridge32 - Virtual Resource Table walk
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

package memory

// maxWalkSteps bounds the VRT link chain walk. The chain is caller
// constructed; a well-formed table never approaches this, but a
// pathological cycle must not hang the CPU. Exceeding the bound is
// reported as a page fault, not a host error -- the spec treats it as a
// safety valve on otherwise-normal translation, not an impossibility.
const maxWalkSteps = 4096

// VRT entry field masks, in Ridge bit numbering (bit 0 = MSB).
const (
	entryValidMask      = 0x7000
	entryRealPageMask   = 0x07ff
	entryModifiedBit    = 0x0800
	entryReferencedBit  = 0x8000
	entryLinkShift      = 16
	entryMatchTagMask   = 0xffff
	probeIndexShift     = 3 // entry is two words (8 bytes): index << 3
	pageOffsetMask      = 0x0fff
	pageNumberShift     = 12
	segmentMatchShift   = 16
)

// Translator implements the VRT walk described in the spec: a single pure
// operation that reads and, on success, rewrites one VRT entry's M/R bits
// through the raw (non-translating) memory interface.
type Translator struct{}

// Translate walks the VRT rooted at vrtBase (SR12) masked by vrtMask
// (SR13) for the given segment number and virtual address. modified and
// referenced select which access bits to set on a successful match (a
// plain read sets only referenced; a write sets both; DIRT forces
// modified). It returns the real address and whether a page fault was
// raised -- on fault the real return is meaningless and must be ignored.
func (Translator) Translate(raw RawAccessor, segment, vaddr, vrtBase, vrtMask uint32, modified, referenced bool) (uint32, bool) {
	probe := ((vaddr >> pageNumberShift) + segment) & vrtMask
	probe = (probe << probeIndexShift) + vrtBase

	for step := 0; step < maxWalkSteps; step++ {
		e0 := raw.ReadWord(probe)
		e1 := raw.ReadWord(probe + 4)

		if (e0>>segmentMatchShift) == segment && (e0&entryMatchTagMask) == (vaddr>>16) {
			if (e1 & entryValidMask) == 0 {
				return 0, true
			}
			real := ((e1 & entryRealPageMask) << pageNumberShift) | (vaddr & pageOffsetMask)
			if modified {
				e1 |= entryModifiedBit
			}
			if referenced {
				e1 |= entryReferencedBit
			}
			raw.WriteWord(probe+4, e1)
			return real, false
		}

		link := e1 >> entryLinkShift
		if link == 0 {
			return 0, true
		}
		probe = link + vrtBase
	}
	// Walk exceeded its safety bound: treat as a fault rather than loop
	// forever on a caller-constructed cycle.
	return 0, true
}

// RawAccessor is the non-translating word interface the VRT walk reads and
// writes entries through. PhysicalMemory satisfies it directly.
type RawAccessor interface {
	ReadWord(addr uint32) uint32
	WriteWord(addr uint32, v uint32)
}
