/*
 * Ridge32 - Register-relative control-flow and trap opcodes
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
	"github.com/rcornwell/ridge32/decode"
	"github.com/rcornwell/ridge32/event"
)

// opCALLR implements CALLR Rx,Ry: target = opc + R[Ry] (register-relative,
// not the fixed displacement CALL uses), return address = the
// already-advanced PC, saved in R[Rx] after the target is computed so that
// Rx==Ry is well defined.
func opCALLR(p *Processor, inst decode.Instruction, opc uint32) {
	target := opc + p.R[inst.Ry]
	retAddr := p.PC
	p.PC = target
	p.R[inst.Rx] = retAddr
}

// opRET implements RET Rx,Ry: PC takes R[Ry], and the prior PC is saved into
// R[Rx] afterward -- ordering that matters only when Rx==Ry, per the
// worked scenario in the spec.
func opRET(p *Processor, inst decode.Instruction, opc uint32) {
	oldPC := p.PC
	p.PC = p.R[inst.Ry]
	p.R[inst.Rx] = oldPC
}

// opKCALL implements KCALL: valid only from user mode (a kernel-mode KCALL
// is a KernelViolation with d0=opcode); num is packed from Rx/Ry into the
// CCB's KCALL vector selection per §4.6.
func opKCALL(p *Processor, inst decode.Instruction, opc uint32) {
	if p.mode != User {
		p.signalKernelViolation(opKcall, opc)
		return
	}
	num := (inst.Rx << 4) | inst.Ry
	p.dispatcher.Signal(event.KCall, num, p.eventMode(), p, p.mem, p.PC, 0, 0, 0)
}

// trapVectorNum is the reserved KCALL vector slot TRAP uses -- the spec
// describes a TrapInstruction event but the closed event Type set has no
// such member, so TRAP is implemented as a KCALL with this otherwise-unused
// selector (see DESIGN.md).
const trapVectorNum = 0xFF

// opTRAP implements TRAP Rx,Ry: Ry carries a 4-bit trap code, recorded in
// SR3 before the vector fires.
func opTRAP(p *Processor, inst decode.Instruction, opc uint32) {
	p.SR[3] = uint32(inst.Ry)
	p.dispatcher.Signal(event.KCall, trapVectorNum, p.eventMode(), p, p.mem, p.PC, 0, 0, 0)
}
