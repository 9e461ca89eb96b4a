/*
 * Ridge32 - Memory controller
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

// Mode mirrors cpu.Mode without importing the cpu package (memory must not
// depend on cpu -- see the design note on breaking the Processor/Controller
// cycle by passing register state into each call instead of holding a
// back-reference to the Processor).
type Mode int

const (
	Kernel Mode = iota
	User
)

// Controller composes PhysicalMemory and Translator. It never raises
// architectural events itself; every call that can fault returns a bool the
// caller (the Processor) turns into a PageFault event. Alignment is not
// checked here -- the spec places that responsibility on the Processor so
// that a single DataAlignment check precedes both the raw and virtual
// paths uniformly.
type Controller struct {
	phys  *PhysicalMemory
	trans Translator
}

// NewController builds a Controller over the given physical store.
func NewController(phys *PhysicalMemory) *Controller {
	return &Controller{phys: phys}
}

// Physical exposes the backing store for the debugger/host-harness views
// the design notes allow (read-only use only while Step is not in flight).
func (c *Controller) Physical() *PhysicalMemory {
	return c.phys
}

// --- Raw family: bypass translation entirely. ---

func (c *Controller) ReadByte(addr uint32) uint8        { return c.phys.ReadByte(addr) }
func (c *Controller) ReadHalfword(addr uint32) uint32   { return c.phys.ReadHalfword(addr) }
func (c *Controller) ReadWord(addr uint32) uint32       { return c.phys.ReadWord(addr) }
func (c *Controller) ReadDoubleword(addr uint32) uint64 { return c.phys.ReadDoubleword(addr) }

func (c *Controller) WriteByte(addr uint32, v uint8)        { c.phys.WriteByte(addr, v) }
func (c *Controller) WriteHalfword(addr uint32, v uint32)   { c.phys.WriteHalfword(addr, v) }
func (c *Controller) WriteWord(addr uint32, v uint32)       { c.phys.WriteWord(addr, v) }
func (c *Controller) WriteDoubleword(addr uint32, v uint64) { c.phys.WriteDoubleword(addr, v) }

// translateIfUser runs the VRT walk when mode is User, and is a no-op
// pass-through returning (addr, false) in Kernel mode -- matching the
// "in kernel mode, pass-through to raw" contract exactly: no M/R side
// effect happens unless a translation actually occurred.
func (c *Controller) translateIfUser(mode Mode, addr, segment, vrtBase, vrtMask uint32, modified, referenced bool) (uint32, bool) {
	if mode == Kernel {
		return addr, false
	}
	return c.trans.Translate(c.phys, segment, addr, vrtBase, vrtMask, modified, referenced)
}

// --- Virtual family. segment is the caller-selected SR8 (code) or SR9
// (data) value; vrtBase/vrtMask are SR12/SR13. ---

func (c *Controller) ReadByteV(addr, segment, vrtBase, vrtMask uint32, mode Mode) (uint8, bool) {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, false, true)
	if fault {
		return 0, true
	}
	return c.phys.ReadByte(real), false
}

func (c *Controller) ReadHalfwordV(addr, segment, vrtBase, vrtMask uint32, mode Mode) (uint32, bool) {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, false, true)
	if fault {
		return 0, true
	}
	return c.phys.ReadHalfword(real), false
}

func (c *Controller) ReadWordV(addr, segment, vrtBase, vrtMask uint32, mode Mode) (uint32, bool) {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, false, true)
	if fault {
		return 0, true
	}
	return c.phys.ReadWord(real), false
}

func (c *Controller) ReadDoublewordV(addr, segment, vrtBase, vrtMask uint32, mode Mode) (uint64, bool) {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, false, true)
	if fault {
		return 0, true
	}
	return c.phys.ReadDoubleword(real), false
}

func (c *Controller) WriteByteV(addr, segment, vrtBase, vrtMask uint32, mode Mode, v uint8) bool {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, true, true)
	if fault {
		return true
	}
	c.phys.WriteByte(real, v)
	return false
}

func (c *Controller) WriteHalfwordV(addr, segment, vrtBase, vrtMask uint32, mode Mode, v uint32) bool {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, true, true)
	if fault {
		return true
	}
	c.phys.WriteHalfword(real, v)
	return false
}

func (c *Controller) WriteWordV(addr, segment, vrtBase, vrtMask uint32, mode Mode, v uint32) bool {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, true, true)
	if fault {
		return true
	}
	c.phys.WriteWord(real, v)
	return false
}

func (c *Controller) WriteDoublewordV(addr, segment, vrtBase, vrtMask uint32, mode Mode, v uint64) bool {
	real, fault := c.translateIfUser(mode, addr, segment, vrtBase, vrtMask, true, true)
	if fault {
		return true
	}
	c.phys.WriteDoubleword(real, v)
	return false
}

// TranslateFor implements the TRANS/DIRT opcodes: a direct, Processor-driven
// call to the translator with explicit modified/referenced flags (DIRT
// forces modified=true; both always set referenced=true per the spec).
func (c *Controller) TranslateFor(segment, vaddr, vrtBase, vrtMask uint32, modified bool) (uint32, bool) {
	return c.trans.Translate(c.phys, segment, vaddr, vrtBase, vrtMask, modified, true)
}

// Alignment checks. The Processor calls these before issuing a load/store;
// a misaligned access never reaches the controller's read/write methods.
func AlignedHalfword(addr uint32) bool   { return addr%2 == 0 }
func AlignedWord(addr uint32) bool       { return addr%4 == 0 }
func AlignedDoubleword(addr uint32) bool { return addr%8 == 0 }
