/*
 * Ridge32 - Processor
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

// Package cpu implements the Ridge32 interpreter: register file,
// decode-dispatch-execute loop, event signalling and privilege checks. It
// is the one package that ties memory, decode, event and bus together;
// none of those packages import it back.
package cpu

import (
	"log/slog"

	"github.com/rcornwell/ridge32/bus"
	"github.com/rcornwell/ridge32/decode"
	"github.com/rcornwell/ridge32/event"
	"github.com/rcornwell/ridge32/memory"
)

// Mode is the processor's privilege mode.
type Mode int

const (
	Kernel Mode = iota
	User
)

// Reset-time architectural constants, per the spec's lifecycle section.
const (
	ResetPC   = 0x3E000
	ResetSR11 = 1
	ResetSR14 = 1
)

// timerThreshold is the step count between timer ticks: roughly 1ms at the
// Ridge's nominal 120ns cycle time, expressed in emulator steps rather than
// wall-clock time since the core has no notion of real time.
const timerThreshold = 8333

// CCB timer word offsets, relative to SR11.
const (
	ccbTimer1  = 0x440
	ccbTimer23 = 0x444
)

// PCB field offsets, relative to SR14.
const (
	pcbUserPC    = 0x40
	pcbSegments  = 0x44
	pcbTraps     = 0x4C
	pcbClock     = 0x50
	pcbRegOffset = 0x00 // R[k] at pcbRegOffset + 4*k
)

// HostErrorKind classifies a host-detected impossibility -- a condition
// the architecture has no event for, per the spec's two-channel error
// design.
type HostErrorKind int

const (
	BusStatusUnrecognized HostErrorKind = iota
	VRTWalkBound
	DeviceRegistrationCycle
)

// HostError is returned from Step when the core hits something outside
// the architectural event model. The Processor halts -- the caller must
// not call Step again without deciding what to do about it.
type HostError struct {
	Kind HostErrorKind
	Msg  string
}

func (e *HostError) Error() string { return e.Msg }

// opFunc is one opcode's handler. opc is the PC at the start of the
// instruction (before the length advance in step 3) -- most handlers that
// need it are PC-relative address computations or event parameter words.
type opFunc func(p *Processor, inst decode.Instruction, opc uint32)

// Processor is the Ridge32 register file plus execution loop.
type Processor struct {
	R    [16]uint32
	SR   [16]uint32
	PC   uint32
	mode Mode

	mem   *memory.Controller
	bus   *bus.Bus
	table [256]opFunc

	dispatcher event.Dispatcher
	steps      uint64
	hostErr    *HostError

	log *slog.Logger
}

// New builds a Processor over the given memory controller and bus, with
// registers at their architectural reset values.
func New(mem *memory.Controller, b *bus.Bus, log *slog.Logger) *Processor {
	p := &Processor{mem: mem, bus: b, log: log}
	p.buildTable()
	p.Reset()
	return p
}

// Reset initialises the architectural state per the spec's lifecycle
// section: Mode=Kernel, PC=0x3E000, SR11=1, SR2=memory size, SR14=1,
// everything else zero.
func (p *Processor) Reset() {
	p.R = [16]uint32{}
	p.SR = [16]uint32{}
	p.mode = Kernel
	p.PC = ResetPC
	p.SR[11] = ResetSR11
	p.SR[2] = p.mem.Physical().Size()
	p.SR[14] = ResetSR14
	p.steps = 0
}

func (p *Processor) Mode() Mode { return p.mode }

// --- event.Regs ---

// Special and SetSpecial satisfy event.Regs, giving the dispatcher access
// to the SR file without it importing cpu.
func (p *Processor) Special(i int) uint32       { return p.SR[i] }
func (p *Processor) SetSpecial(i int, v uint32) { p.SR[i] = v }
func (p *Processor) SetPC(v uint32)             { p.PC = v }
func (p *Processor) SetMode(m event.Mode) {
	if m == event.Kernel {
		p.mode = Kernel
	} else {
		p.mode = User
	}
}

func (p *Processor) eventMode() event.Mode {
	if p.mode == Kernel {
		return event.Kernel
	}
	return event.User
}

func (p *Processor) memMode() memory.Mode {
	if p.mode == Kernel {
		return memory.Kernel
	}
	return memory.User
}

// ReadWord satisfies event.RawMemory for the CCB vector fetch.
func (p *Processor) ReadWord(addr uint32) uint32 { return p.mem.ReadWord(addr) }

// privileged reports whether the current mode may execute a privileged
// opcode: kernel always may; user mode may only when SR10 bit 31 (PP) is
// set.
func (p *Processor) privileged() bool {
	return p.mode == Kernel || p.SR[10]&0x80000000 != 0
}

// pair reads the 64-bit big-endian quantity formed by (R[rx], R[(rx+1)&0xF]).
func (p *Processor) pair(rx uint8) uint64 {
	hi := p.R[rx&0xF]
	lo := p.R[(rx+1)&0xF]
	return uint64(hi)<<32 | uint64(lo)
}

// setPair writes v back across the same register pair.
func (p *Processor) setPair(rx uint8, v uint64) {
	p.R[rx&0xF] = uint32(v >> 32)
	p.R[(rx+1)&0xF] = uint32(v)
}

// fetcher adapts Processor to decode.Fetcher, always going through the V
// family -- the controller itself chooses raw vs. translated based on
// mode, per the design note on keeping that distinction at the
// MemoryController boundary.
type fetcher struct{ p *Processor }

func (f fetcher) ReadHalfword(addr uint32) (uint32, bool) {
	return f.p.mem.ReadHalfwordV(addr, f.p.SR[8], f.p.SR[12], f.p.SR[13], f.p.memMode())
}

func (f fetcher) ReadWord(addr uint32) (uint32, bool) {
	return f.p.mem.ReadWordV(addr, f.p.SR[8], f.p.SR[12], f.p.SR[13], f.p.memMode())
}

// dispatchIndex folds the decoder's short/long displacement bit out of a
// memory-reference-format opcode before a table lookup, so both encodings
// of the same instruction share one handler.
func dispatchIndex(op uint8) uint8 {
	if op&0x80 != 0 {
		return op &^ 0x10
	}
	return op
}

// Step executes exactly one instruction, per the algorithm in the spec:
// fetch, advance, dispatch, poll for interrupt, tick timers. It returns a
// non-nil *HostError only for a host-detected impossibility; every
// architectural condition (alignment, page fault, illegal instruction,
// kernel violation, arithmetic trap) is folded into SR/PC/mode changes and
// reported as a nil error.
func (p *Processor) Step() *HostError {
	p.hostErr = nil
	opc := p.PC

	inst, fault := decode.Decode(fetcher{p}, p.PC)
	if fault {
		p.dispatcher.Signal(event.PageFault, 0, p.eventMode(), p, p.mem, opc, 0xFFFFFFFF, p.SR[8], opc)
		return nil
	}
	p.PC = opc + uint32(inst.Length)

	handler := p.table[dispatchIndex(inst.Op)]
	if handler == nil {
		p.signalIllegal(inst.Op)
	} else {
		handler(p, inst, opc)
	}
	if p.hostErr != nil {
		return p.hostErr
	}

	// The poll/latch happens every step regardless of mode, per §5 --
	// only delivery as an ExternalInterrupt event is user-mode-only (a
	// kernel-mode ITEST/ELOGR still needs to observe a request that
	// arrived while the core was in kernel mode).
	if _, pending := p.bus.PollInterrupt(); pending && p.mode == User {
		ack := p.bus.Ack()
		p.dispatcher.Signal(event.ExternalInterrupt, 0, p.eventMode(), p, p.mem, p.PC, ack, 0, 0)
	}

	p.tickTimers()
	return nil
}

func (p *Processor) signalIllegal(op uint8) {
	pc := p.PC // already advanced, per the CORE's IllegalInstruction convention
	p.dispatcher.Signal(event.IllegalInstruction, 0, p.eventMode(), p, p.mem, pc, uint32(op), p.SR[8], pc)
}

func (p *Processor) signalKernelViolation(op uint8, opc uint32) {
	p.dispatcher.Signal(event.KernelViolation, 0, p.eventMode(), p, p.mem, opc, uint32(op), 0, 0)
}

func (p *Processor) signalDataAlignment(opc uint32) {
	p.dispatcher.Signal(event.DataAlignment, 0, p.eventMode(), p, p.mem, opc, 0, 0, 0)
}

func (p *Processor) signalPageFault(opc, segment, vaddr uint32) {
	p.dispatcher.Signal(event.PageFault, 0, p.eventMode(), p, p.mem, opc, 0xFFFFFFFF, segment, vaddr)
}

// raiseHostError records a host-detected impossibility for Step to return.
// Unlike the signal* helpers, this does not touch SR/PC/mode -- a HostError
// is not an architectural event, it halts interpretation outright.
func (p *Processor) raiseHostError(kind HostErrorKind, msg string) {
	p.hostErr = &HostError{Kind: kind, Msg: msg}
}

// tickTimers implements §4.5.4: a tick counter advances once per step;
// crossing the threshold decrements the two CCB timer words and raises
// Timer1Interrupt or Timer2Interrupt. A running process clock only
// advances in user mode with a PCB attached.
func (p *Processor) tickTimers() {
	p.steps++
	if p.steps < timerThreshold {
		return
	}
	p.steps = 0

	t1 := p.mem.ReadWord(p.SR[11]+ccbTimer1) - 1
	p.mem.WriteWord(p.SR[11]+ccbTimer1, t1)
	t23 := p.mem.ReadWord(p.SR[11]+ccbTimer23) - 1
	p.mem.WriteWord(p.SR[11]+ccbTimer23, t23)
	if int32(t1) < 0 {
		p.dispatcher.Signal(event.Timer1Interrupt, 0, p.eventMode(), p, p.mem, p.PC, 0, 0, 0)
	} else if int32(t23) < 0 {
		p.dispatcher.Signal(event.Timer2Interrupt, 0, p.eventMode(), p, p.mem, p.PC, 0, 0, 0)
	}

	if p.mode == User && p.SR[14] != 1 {
		clock := p.mem.ReadWord(p.SR[14] + pcbClock)
		p.mem.WriteWord(p.SR[14]+pcbClock, clock+1)
	}
}
