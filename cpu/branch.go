/*
 * Ridge32 - Branch, loop and load/store opcodes
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
	"github.com/rcornwell/ridge32/memory"
)

// opBranch builds the BR_xx family: branch on the signed difference
// R[Rx]-R[Ry], to the decoder-computed BranchAddress.
func opBranch(pred func(int32) bool) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		diff := int32(p.R[inst.Rx]) - int32(p.R[inst.Ry])
		if pred(diff) {
			p.PC = inst.BranchAddress
		}
	}
}

// opCALL implements CALL: unconditional branch to BranchAddress, saving
// the already-advanced PC in R[Rx].
func opCALL(p *Processor, inst decode.Instruction, opc uint32) {
	retAddr := p.PC
	p.R[inst.Rx] = retAddr
	p.PC = inst.BranchAddress
}

// opLOOP implements LOOP: R[Rx] += sign-extended Ry; branch to
// BranchAddress while the updated value is still negative, the classic
// decrement-and-loop idiom expressed with a signed step instead of -1.
func opLOOP(p *Processor, inst decode.Instruction, opc uint32) {
	v := int32(p.R[inst.Rx]) + signExtend4(inst.Ry)
	p.R[inst.Rx] = uint32(v)
	if v < 0 {
		p.PC = inst.BranchAddress
	}
}

// effectiveAddress computes a load/store's address: form C is PC-relative
// (base = opc, the instruction's own address), form D is absolute (base =
// 0); either may additionally be indexed by R[Ry].
func effectiveAddress(e loadStoreEntry, inst decode.Instruction, opc uint32, p *Processor) uint32 {
	base := uint32(0)
	if e.form == formC {
		base = opc
	}
	ea := base + uint32(inst.Displacement)
	if e.indexed {
		ea += p.R[inst.Ry]
	}
	return ea
}

// makeLoadStore builds one LOAD/STORE/LADDR handler from its table entry.
// LADDR never touches memory -- it only materialises the computed address,
// with no alignment or translation check, matching its role as the
// address-only counterpart of the memory-accessing forms.
func makeLoadStore(e loadStoreEntry) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		ea := effectiveAddress(e, inst, opc, p)

		if e.kind == kindLaddr {
			p.R[inst.Rx] = ea
			return
		}

		switch e.kind {
		case kindLoadH, kindStoreH:
			if !memory.AlignedHalfword(ea) {
				p.signalDataAlignment(opc)
				return
			}
		case kindLoadW, kindStoreW:
			if !memory.AlignedWord(ea) {
				p.signalDataAlignment(opc)
				return
			}
		case kindLoadD, kindStoreD:
			if !memory.AlignedDoubleword(ea) {
				p.signalDataAlignment(opc)
				return
			}
		}

		segment := p.SR[9]
		switch e.kind {
		case kindLoadB:
			v, fault := p.mem.ReadByteV(ea, segment, p.SR[12], p.SR[13], p.memMode())
			if fault {
				p.signalPageFault(opc, segment, ea)
				return
			}
			p.R[inst.Rx] = uint32(v)

		case kindLoadH:
			v, fault := p.mem.ReadHalfwordV(ea, segment, p.SR[12], p.SR[13], p.memMode())
			if fault {
				p.signalPageFault(opc, segment, ea)
				return
			}
			p.R[inst.Rx] = v

		case kindLoadW:
			v, fault := p.mem.ReadWordV(ea, segment, p.SR[12], p.SR[13], p.memMode())
			if fault {
				p.signalPageFault(opc, segment, ea)
				return
			}
			p.R[inst.Rx] = v

		case kindLoadD:
			v, fault := p.mem.ReadDoublewordV(ea, segment, p.SR[12], p.SR[13], p.memMode())
			if fault {
				p.signalPageFault(opc, segment, ea)
				return
			}
			p.setPair(inst.Rx, v)

		case kindStoreB:
			fault := p.mem.WriteByteV(ea, segment, p.SR[12], p.SR[13], p.memMode(), uint8(p.R[inst.Rx]))
			if fault {
				p.signalPageFault(opc, segment, ea)
			}

		case kindStoreH:
			fault := p.mem.WriteHalfwordV(ea, segment, p.SR[12], p.SR[13], p.memMode(), p.R[inst.Rx])
			if fault {
				p.signalPageFault(opc, segment, ea)
			}

		case kindStoreW:
			fault := p.mem.WriteWordV(ea, segment, p.SR[12], p.SR[13], p.memMode(), p.R[inst.Rx])
			if fault {
				p.signalPageFault(opc, segment, ea)
			}

		case kindStoreD:
			fault := p.mem.WriteDoublewordV(ea, segment, p.SR[12], p.SR[13], p.memMode(), p.pair(inst.Rx))
			if fault {
				p.signalPageFault(opc, segment, ea)
			}
		}
	}
}
