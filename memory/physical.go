/*
 * Ridge32 - Physical memory
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

// Package memory implements the Ridge32 physical store, the VRT-walking
// translator, and the controller that composes the two for the CPU's raw
// and virtual load/store paths.
package memory

// PhysicalMemory is a flat, byte-addressed, big-endian store of a fixed
// size chosen at construction. Reads past the end of the store return zero;
// writes past the end are silently dropped. No host-endianness conversion
// is ever exposed -- every multi-byte value handed to or received from a
// caller is an ordinary unsigned integer, and the big-endian layout is only
// visible in the byte sequence written to the backing slice.
type PhysicalMemory struct {
	bytes []byte
}

// New allocates a PhysicalMemory of the given size in bytes.
func New(sizeBytes uint32) *PhysicalMemory {
	return &PhysicalMemory{bytes: make([]byte, sizeBytes)}
}

// Size returns the configured size in bytes.
func (m *PhysicalMemory) Size() uint32 {
	return uint32(len(m.bytes))
}

// ReadByte reads one byte. Out of range reads return 0.
func (m *PhysicalMemory) ReadByte(addr uint32) uint8 {
	if addr >= uint32(len(m.bytes)) {
		return 0
	}
	return m.bytes[addr]
}

// WriteByte writes one byte. Out of range writes are silent no-ops.
func (m *PhysicalMemory) WriteByte(addr uint32, v uint8) {
	if addr >= uint32(len(m.bytes)) {
		return
	}
	m.bytes[addr] = v
}

// ReadHalfword reads a big-endian 16 bit value as the concatenation of two
// sequential byte reads.
func (m *PhysicalMemory) ReadHalfword(addr uint32) uint32 {
	return uint32(m.ReadByte(addr))<<8 | uint32(m.ReadByte(addr+1))
}

// WriteHalfword writes a big-endian 16 bit value as two sequential byte
// writes.
func (m *PhysicalMemory) WriteHalfword(addr uint32, v uint32) {
	m.WriteByte(addr, uint8(v>>8))
	m.WriteByte(addr+1, uint8(v))
}

// ReadWord reads a big-endian 32 bit value.
func (m *PhysicalMemory) ReadWord(addr uint32) uint32 {
	return uint32(m.ReadByte(addr))<<24 | uint32(m.ReadByte(addr+1))<<16 |
		uint32(m.ReadByte(addr+2))<<8 | uint32(m.ReadByte(addr+3))
}

// WriteWord writes a big-endian 32 bit value.
func (m *PhysicalMemory) WriteWord(addr uint32, v uint32) {
	m.WriteByte(addr, uint8(v>>24))
	m.WriteByte(addr+1, uint8(v>>16))
	m.WriteByte(addr+2, uint8(v>>8))
	m.WriteByte(addr+3, uint8(v))
}

// ReadDoubleword reads a big-endian 64 bit value.
func (m *PhysicalMemory) ReadDoubleword(addr uint32) uint64 {
	return uint64(m.ReadWord(addr))<<32 | uint64(m.ReadWord(addr+4))
}

// WriteDoubleword writes a big-endian 64 bit value.
func (m *PhysicalMemory) WriteDoubleword(addr uint32, v uint64) {
	m.WriteWord(addr, uint32(v>>32))
	m.WriteWord(addr+4, uint32(v))
}

// LoadImage copies data verbatim into physical memory starting at base,
// stopping silently at the end of memory. It is the only bulk-loading
// primitive the package exposes; it performs no framing or checksums --
// bootstrapping and image-format parsing are a host-harness concern.
func (m *PhysicalMemory) LoadImage(base uint32, data []byte) {
	for i, b := range data {
		m.WriteByte(base+uint32(i), b)
	}
}
