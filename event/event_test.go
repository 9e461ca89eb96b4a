/*
 * Ridge32 - Event dispatch tests
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

package event

import "testing"

type fakeRegs struct {
	sr   [16]uint32
	pc   uint32
	mode Mode
}

func (r *fakeRegs) Special(i int) uint32       { return r.sr[i] }
func (r *fakeRegs) SetSpecial(i int, v uint32) { r.sr[i] = v }
func (r *fakeRegs) SetPC(v uint32)             { r.pc = v }
func (r *fakeRegs) SetMode(m Mode)             { r.mode = m }

type fakeMem struct {
	words map[uint32]uint32
}

func (m fakeMem) ReadWord(addr uint32) uint32 { return m.words[addr] }

func TestKCallVectorsByNum(t *testing.T) {
	regs := &fakeRegs{mode: User}
	regs.sr[11] = 0x9000
	mem := fakeMem{words: map[uint32]uint32{0x9000 + 4*5: 0x12340000}}

	(Dispatcher{}).Signal(KCall, 5, User, regs, mem, 0x100, 0, 0, 0)

	if regs.pc != 0x12340000 {
		t.Errorf("PC = %#x, want 0x12340000", regs.pc)
	}
	if regs.mode != Kernel {
		t.Errorf("mode = %v, want Kernel", regs.mode)
	}
	if regs.sr[15] != 0x100 {
		t.Errorf("SR15 = %#x, want 0x100 (user-mode KCALL return address)", regs.sr[15])
	}
}

func TestKCallFromKernelDoesNotSaveSR15(t *testing.T) {
	regs := &fakeRegs{mode: Kernel}
	regs.sr[11] = 0x9000
	regs.sr[15] = 0xDEADBEEF
	mem := fakeMem{words: map[uint32]uint32{0x9000: 0x1000}}

	(Dispatcher{}).Signal(KCall, 0, Kernel, regs, mem, 0x200, 0, 0, 0)

	if regs.sr[15] != 0xDEADBEEF {
		t.Errorf("SR15 was overwritten in kernel mode")
	}
}

func TestPageFaultWritesParametersUniformlyAcrossModes(t *testing.T) {
	for _, mode := range []Mode{Kernel, User} {
		regs := &fakeRegs{mode: mode}
		regs.sr[11] = 0x9000
		mem := fakeMem{words: map[uint32]uint32{0x9000 + offPageFault: 0x4000}}

		(Dispatcher{}).Signal(PageFault, 0, mode, regs, mem, 0x300, 0xFFFFFFFF, 7, 0x7000)

		if regs.sr[0] != 1 || regs.sr[1] != 0xFFFFFFFF || regs.sr[2] != 7 || regs.sr[3] != 0x7000 {
			t.Errorf("mode %v: SR0-3 = %#x %#x %#x %#x", mode, regs.sr[0], regs.sr[1], regs.sr[2], regs.sr[3])
		}
		if regs.sr[15] != 0x300 {
			t.Errorf("mode %v: SR15 = %#x, want 0x300", mode, regs.sr[15])
		}
		if regs.pc != 0x4000 || regs.mode != Kernel {
			t.Errorf("mode %v: vector not taken", mode)
		}
	}
}

func TestIllegalInstructionSplitsByMode(t *testing.T) {
	kernel := &fakeRegs{mode: Kernel}
	kernel.sr[11] = 0x9000
	mem := fakeMem{words: map[uint32]uint32{0x9000 + offIllegalInstr: 0x5000}}
	(Dispatcher{}).Signal(IllegalInstruction, 0, Kernel, kernel, mem, 0x400, 0x11, 8, 0x400)
	if kernel.sr[0] != 0x400 {
		t.Errorf("kernel SR0 = %#x, want opc 0x400", kernel.sr[0])
	}

	user := &fakeRegs{mode: User}
	user.sr[11] = 0x9000
	(Dispatcher{}).Signal(IllegalInstruction, 0, User, user, mem, 0x400, 0x11, 8, 0x400)
	if user.sr[0] != 1 {
		t.Errorf("user SR0 = %#x, want 1", user.sr[0])
	}
	if user.sr[15] != 0x400 {
		t.Errorf("user SR15 = %#x, want 0x400", user.sr[15])
	}
}

func TestArithmeticTrapHasNoSRWrites(t *testing.T) {
	regs := &fakeRegs{mode: User}
	regs.sr[11] = 0x9000
	regs.sr[0], regs.sr[1] = 0xAAAA, 0xBBBB
	mem := fakeMem{words: map[uint32]uint32{0x9000 + offArithmeticTrap: 0x6000}}

	(Dispatcher{}).Signal(ArithmeticTrap, 0, User, regs, mem, 0x500, 0, 0, 0)

	if regs.sr[0] != 0xAAAA || regs.sr[1] != 0xBBBB {
		t.Errorf("ArithmeticTrap must not touch SR0/SR1, got %#x %#x", regs.sr[0], regs.sr[1])
	}
	if regs.pc != 0x6000 {
		t.Errorf("PC = %#x, want vector 0x6000", regs.pc)
	}
}

func TestTimerInterruptsNoOpInKernelMode(t *testing.T) {
	regs := &fakeRegs{mode: Kernel, pc: 0x700}
	regs.sr[11] = 0x9000
	mem := fakeMem{words: map[uint32]uint32{0x9000 + offTimer1Interrupt: 0x7000}}

	(Dispatcher{}).Signal(Timer1Interrupt, 0, Kernel, regs, mem, 0x700, 0, 0, 0)

	if regs.pc != 0x700 {
		t.Errorf("kernel-mode Timer1Interrupt must be a no-op, PC changed to %#x", regs.pc)
	}
}

func TestExternalInterruptCarriesAckInD0(t *testing.T) {
	regs := &fakeRegs{mode: User}
	regs.sr[11] = 0x9000
	mem := fakeMem{words: map[uint32]uint32{0x9000 + offExternalInterrupt: 0x8000}}

	(Dispatcher{}).Signal(ExternalInterrupt, 0, User, regs, mem, 0x900, 0x42, 0, 0)

	if regs.sr[0] != 0x42 {
		t.Errorf("SR0 = %#x, want IOIR 0x42", regs.sr[0])
	}
}
