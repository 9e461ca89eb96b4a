/*
 * Ridge32 - Event dispatch (CCB vectoring)
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

// Package event encapsulates the per-event-type special-register writes and
// the Control Communications Block vector fetch described in the spec.
// Architectural events never travel as Go errors or panics -- Signal
// applies its effects directly to the register file passed in and reports
// nothing but what actually happened, matching the "events vs exceptions"
// design note: the step loop observes state, it does not catch anything.
package event

// Mode mirrors cpu.Mode without an import cycle; cpu.Processor converts.
type Mode int

const (
	Kernel Mode = iota
	User
)

// Type is the closed set of event types the CCB can vector through.
type Type int

const (
	KCall Type = iota
	DataAlignment
	IllegalInstruction
	PageFault
	KernelViolation
	ArithmeticTrap
	ExternalInterrupt
	Switch0Interrupt
	Timer1Interrupt
	Timer2Interrupt
)

// CCB offsets, per the spec's event table. KCall has no fixed offset --
// its vector lives at 4*num, computed in Signal.
const (
	offDataAlignment     = 0x400
	offIllegalInstr      = 0x404
	offPageFault         = 0x410
	offKernelViolation   = 0x414
	offArithmeticTrap    = 0x41C
	offExternalInterrupt = 0x420
	offSwitch0Interrupt  = 0x424
	offTimer1Interrupt   = 0x430
	offTimer2Interrupt   = 0x434
)

// Regs is the register-file surface Signal needs: enough to read SR11 (the
// CCB base) and the rest of the special registers, and to set SR/PC/Mode on
// entry. cpu.Processor implements this directly; event never reaches back
// into cpu to avoid the cyclic dependency the design notes call out.
type Regs interface {
	Special(i int) uint32
	SetSpecial(i int, v uint32)
	SetPC(v uint32)
	SetMode(m Mode)
}

// RawMemory is the non-translating word read Signal uses to fetch the CCB
// vector.
type RawMemory interface {
	ReadWord(addr uint32) uint32
}

// Dispatcher applies one event's effects. It carries no state of its own --
// every event is independent -- but is a named type so call sites read
// dispatcher.Signal(...) rather than a bare function.
type Dispatcher struct{}

// Signal applies typ's special-register writes for the given mode, then
// vectors through the CCB if the event type calls for it. pc is the PC
// value the spec's table calls "opc" or "PC" for this event -- callers
// supply whichever the table names for typ (see the table in spec.md §4.6
// and the callers in the cpu package for which value that is per event).
// num is only meaningful for KCall (the event number 0..255 carried by the
// KCALL instruction); it is ignored for every other type. d0, d1, d2 are
// the event's parameter words exactly as named in the spec's per-event
// column (e.g. for PageFault: 0xFFFFFFFF, segment, faulting address).
func (Dispatcher) Signal(typ Type, num uint8, mode Mode, regs Regs, raw RawMemory, pc uint32, d0, d1, d2 uint32) {
	doVector := true
	offset := uint32(0)

	switch typ {
	case KCall:
		offset = 4 * uint32(num)
		if mode == User {
			regs.SetSpecial(15, pc)
		}

	case DataAlignment:
		offset = offDataAlignment
		if mode == Kernel {
			regs.SetSpecial(0, pc)
		} else {
			regs.SetSpecial(0, 1)
			regs.SetSpecial(15, pc)
		}

	case IllegalInstruction:
		offset = offIllegalInstr
		regs.SetSpecial(1, d0)
		regs.SetSpecial(2, d1)
		regs.SetSpecial(3, d2)
		if mode == Kernel {
			regs.SetSpecial(0, pc)
		} else {
			regs.SetSpecial(0, 1)
			regs.SetSpecial(15, pc)
		}

	case PageFault:
		offset = offPageFault
		regs.SetSpecial(0, 1)
		regs.SetSpecial(1, d0)
		regs.SetSpecial(2, d1)
		regs.SetSpecial(3, d2)
		regs.SetSpecial(15, pc)

	case KernelViolation:
		offset = offKernelViolation
		regs.SetSpecial(1, d0)
		regs.SetSpecial(2, d1)
		regs.SetSpecial(3, d2)
		if mode == Kernel {
			regs.SetSpecial(0, pc)
		} else {
			regs.SetSpecial(0, 1)
			regs.SetSpecial(15, pc)
		}

	case ArithmeticTrap:
		offset = offArithmeticTrap
		// No SR writes for either mode, per the spec's table.

	case ExternalInterrupt:
		offset = offExternalInterrupt
		if mode != User {
			// Kernel consumes pending interrupts via ITEST instead;
			// delivering this event in kernel mode is a no-op.
			return
		}
		regs.SetSpecial(0, d0) // d0 = device.AckInterrupt() result, fetched by the caller
		regs.SetSpecial(15, pc)

	case Switch0Interrupt:
		offset = offSwitch0Interrupt
		if mode == Kernel {
			regs.SetSpecial(0, pc)
		} else {
			regs.SetSpecial(0, 1)
			regs.SetSpecial(15, pc)
		}

	case Timer1Interrupt:
		offset = offTimer1Interrupt
		if mode != User {
			return
		}
		regs.SetSpecial(0, 1)
		regs.SetSpecial(15, pc)

	case Timer2Interrupt:
		offset = offTimer2Interrupt
		if mode != User {
			return
		}
		regs.SetSpecial(0, 1)
		regs.SetSpecial(15, pc)
	}

	if !doVector {
		return
	}
	vector := raw.ReadWord(regs.Special(11) + offset)
	regs.SetMode(Kernel)
	regs.SetPC(vector)
}
