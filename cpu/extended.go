/*
 * Ridge32 - Extended-precision integer opcodes
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

// The true floating-point opcodes (FIXT, RCOMP, DFLOAT and the rest of
// that family) are registered as stubIllegal in dispatch.go, per the
// spec's explicit allowance to stub floating-point to IllegalInstruction.
// This file only covers the required "extended integer" operations:
// EADD/ESUB/EMPY/EDIV operate on 64-bit register-pair operands, and
// LCOMP/DCOMP materialise a three-way signed comparison.
package cpu

import "github.com/rcornwell/ridge32/decode"

// opPairOp builds EADD/ESUB/EMPY: R[Rx] pair = fn(pair at Rx, pair at Ry).
func opPairOp(fn func(rx, ry uint64) uint64) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		p.setPair(inst.Rx, fn(p.pair(inst.Rx), p.pair(inst.Ry)))
	}
}

// opPairDiv implements EDIV; division by a zero pair resolves to zero,
// matching the scalar DIV/REM convention (see DESIGN.md).
func opPairDiv(p *Processor, inst decode.Instruction, opc uint32) {
	ry := p.pair(inst.Ry)
	if ry == 0 {
		p.setPair(inst.Rx, 0)
		return
	}
	rx := p.pair(inst.Rx)
	p.setPair(inst.Rx, uint64(int64(rx)/int64(ry)))
}

// cmp3 returns the classic three-way signed comparison result: all-ones
// (-1) if a<b, 0 if equal, 1 if a>b.
func cmp3(a, b int32) uint32 {
	switch {
	case a < b:
		return 0xFFFFFFFF
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmp3_64(a, b int64) uint32 {
	switch {
	case a < b:
		return 0xFFFFFFFF
	case a > b:
		return 1
	default:
		return 0
	}
}

// opLComp compares R[Rx] and R[Ry] as signed 32-bit values.
func opLComp(p *Processor, inst decode.Instruction, opc uint32) {
	p.R[inst.Rx] = cmp3(int32(p.R[inst.Rx]), int32(p.R[inst.Ry]))
}

// opDComp compares the 64-bit pairs at Rx and Ry as signed values.
func opDComp(p *Processor, inst decode.Instruction, opc uint32) {
	p.R[inst.Rx] = cmp3_64(int64(p.pair(inst.Rx)), int64(p.pair(inst.Ry)))
}
