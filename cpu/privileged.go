/*
 * Ridge32 - Privileged opcodes
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

package cpu

import (
	"github.com/rcornwell/ridge32/bus"
	"github.com/rcornwell/ridge32/decode"
)

// kernelOnly reports whether the current mode may execute an opcode that
// the spec restricts to kernel mode strictly -- unlike MAINT/READ/WRITE,
// SR10's PP bit does not relax these.
func kernelOnly(p *Processor) bool { return p.mode == Kernel }

// opSUS implements SUS: save the user context into the PCB at SR14,
// unless SR14==1 (no PCB attached), per the invariant that the core must
// never dereference SR14 when it equals 1.
func opSUS(p *Processor, inst decode.Instruction, opc uint32) {
	if !kernelOnly(p) {
		p.signalKernelViolation(opSus, opc)
		return
	}
	if p.SR[14] == 1 {
		return
	}
	base := p.SR[14]
	p.mem.WriteWord(base+pcbUserPC, p.SR[15])
	p.mem.WriteWord(base+pcbSegments, (p.SR[8]<<16)|(p.SR[9]&0xFFFF))
	p.mem.WriteWord(base+pcbTraps, p.SR[10])

	hi := inst.Ry
	if inst.Rx > hi {
		p.mem.WriteWord(base+4*uint32(inst.Rx), p.R[inst.Rx])
		return
	}
	for k := inst.Rx; k <= hi; k++ {
		p.mem.WriteWord(base+4*uint32(k), p.R[k])
	}
}

// opLUS is SUS's inverse.
func opLUS(p *Processor, inst decode.Instruction, opc uint32) {
	if !kernelOnly(p) {
		p.signalKernelViolation(opLus, opc)
		return
	}
	if p.SR[14] == 1 {
		return
	}
	base := p.SR[14]
	p.SR[15] = p.mem.ReadWord(base + pcbUserPC)
	segs := p.mem.ReadWord(base + pcbSegments)
	p.SR[8] = segs >> 16
	p.SR[9] = segs & 0xFFFF
	p.SR[10] = p.mem.ReadWord(base + pcbTraps)

	hi := inst.Ry
	if inst.Rx > hi {
		p.R[inst.Rx] = p.mem.ReadWord(base + 4*uint32(inst.Rx))
		return
	}
	for k := inst.Rx; k <= hi; k++ {
		p.R[k] = p.mem.ReadWord(base + 4*uint32(k))
	}
}

// opRUM implements RUM: drop to user mode at SR15. SR14==1 (no PCB) is a
// KernelViolation with d0=opcode, per the spec's resolution of the
// open question (source throws; this is the documented replacement).
func opRUM(p *Processor, inst decode.Instruction, opc uint32) {
	if !kernelOnly(p) {
		p.signalKernelViolation(opRum, opc)
		return
	}
	if p.SR[14] == 1 {
		p.signalKernelViolation(opRum, opc)
		return
	}
	p.PC = p.SR[15]
	p.mode = User
}

// opLDREGS bulk-loads R[Rx..15] from consecutive words starting at
// R[Ry]. The spec names LDREGS alongside SUS/LUS but does not detail its
// addressing; this mirrors their PCB-relative bulk load pattern against
// an arbitrary register-supplied base instead (see DESIGN.md).
func opLDREGS(p *Processor, inst decode.Instruction, opc uint32) {
	if !kernelOnly(p) {
		p.signalKernelViolation(opLdregs, opc)
		return
	}
	addr := p.R[inst.Ry]
	for k := inst.Rx; k <= 15; k++ {
		p.R[k] = p.mem.ReadWord(addr)
		addr += 4
	}
}

// opTransDirt implements TRANS (dirt=false) and DIRT (dirt=true): a
// direct translator call with segment=R[Ry], vaddr=R[(Ry+1)&0xF]. Unlike
// ordinary load/store, a translation miss here does not raise PageFault --
// it reports 0xFFFFFFFF in R[Rx], per the spec.
func opTransDirt(dirt bool) opFunc {
	op := uint8(opTrans)
	if dirt {
		op = opDirt
	}
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		if !kernelOnly(p) {
			p.signalKernelViolation(op, opc)
			return
		}
		segment := p.R[inst.Ry]
		vaddr := p.R[(inst.Ry+1)&0xF]
		real, fault := p.mem.TranslateFor(segment, vaddr, p.SR[12], p.SR[13], dirt)
		if fault {
			p.R[inst.Rx] = 0xFFFFFFFF
		} else {
			p.R[inst.Rx] = real
		}
	}
}

func opMOVEsr(p *Processor, inst decode.Instruction, opc uint32) {
	if !kernelOnly(p) {
		p.signalKernelViolation(opMoveSR, opc)
		return
	}
	p.SR[inst.Rx] = p.R[inst.Ry]
}

func opMOVErs(p *Processor, inst decode.Instruction, opc uint32) {
	if !kernelOnly(p) {
		p.signalKernelViolation(opMoveRS, opc)
		return
	}
	p.R[inst.Rx] = p.SR[inst.Ry]
}

// opMAINT dispatches on Ry's sub-op code. Kernel mode or PP-user mode may
// execute it.
func opMAINT(p *Processor, inst decode.Instruction, opc uint32) {
	if !p.privileged() {
		p.signalKernelViolation(opMaint, opc)
		return
	}
	switch inst.Ry {
	case maintElogr:
		if _, pending := p.bus.Pending(); pending {
			p.R[inst.Rx] = 0x10
		} else {
			p.R[inst.Rx] = 0x00
		}
	case maintFlush:
		// No cache is modelled; FLUSH is a no-op.
	case maintTrapexit:
		p.PC = p.SR[0]
	case maintItest:
		if _, pending := p.bus.Pending(); pending {
			ack := p.bus.Ack()
			p.R[(inst.Rx+1)&0xF] = ack
			p.R[inst.Rx] = 0
		} else {
			p.R[inst.Rx] = 1
		}
	case maintMachineID:
		p.R[inst.Rx] = 0x000100F0
	default:
		p.signalIllegal(inst.Op)
	}
}

// busDataFields splits R[Ry] into device/deviceData per Ridge bit
// numbering: device occupies bits 0..7 (the top byte in LSB-first terms),
// deviceData the remaining bits 8..31.
func busDataFields(addrWord uint32) (device uint8, deviceData uint32) {
	return uint8(addrWord >> 24), addrWord & 0x00FFFFFF
}

// opREAD implements READ: R[(Rx+1)&0xF] is assigned before R[Rx], which
// matters when the two alias the same register.
func opREAD(p *Processor, inst decode.Instruction, opc uint32) {
	if !p.privileged() {
		p.signalKernelViolation(opRead, opc)
		return
	}
	device, deviceData := busDataFields(p.R[inst.Ry])
	data, status := p.bus.Read(device, deviceData)
	if status&^(bus.StatusNotReady|bus.StatusTimeout) != 0 {
		p.raiseHostError(BusStatusUnrecognized, "bus returned an unrecognized status on READ")
		return
	}
	p.R[(inst.Rx+1)&0xF] = data
	p.R[inst.Rx] = status
}

func opWRITE(p *Processor, inst decode.Instruction, opc uint32) {
	if !p.privileged() {
		p.signalKernelViolation(opWrite, opc)
		return
	}
	device, deviceData := busDataFields(p.R[inst.Ry])
	status := p.bus.Write(device, deviceData, p.R[inst.Rx])
	if status&^(bus.StatusNotReady|bus.StatusTimeout) != 0 {
		p.raiseHostError(BusStatusUnrecognized, "bus returned an unrecognized status on WRITE")
		return
	}
	p.R[inst.Rx] = status
}
