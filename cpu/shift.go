/*
 * Ridge32 - Shift and sign-extend opcodes
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
	"math/bits"

	"github.com/rcornwell/ridge32/decode"
	"github.com/rcornwell/ridge32/event"
)

func shiftLSL(v, count uint32) uint32 { return v << (count & 0x1F) }
func shiftLSR(v, count uint32) uint32 { return v >> (count & 0x1F) }
func shiftASR(v, count uint32) uint32 { return uint32(int32(v) >> (count & 0x1F)) }
func shiftCSL(v, count uint32) uint32 { return bits.RotateLeft32(v, int(count&0x1F)) }

func dshiftLSL(v uint64, count uint32) uint64 { return v << (count & 0x3F) }
func dshiftLSR(v uint64, count uint32) uint64 { return v >> (count & 0x3F) }

// opShiftReg builds a single-width (5-bit count) register-form shift/rotate.
func opShiftReg(fn func(v, count uint32) uint32) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		p.R[inst.Rx] = fn(p.R[inst.Rx], p.R[inst.Ry])
	}
}

// opShiftImm builds the immediate-count variant: Ry itself (0..15) is the
// shift count, not sign-extended -- it names a position, not a value.
func opShiftImm(fn func(v, count uint32) uint32) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		p.R[inst.Rx] = fn(p.R[inst.Rx], uint32(inst.Ry))
	}
}

func opDShiftReg(fn func(v uint64, count uint32) uint64) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		p.setPair(inst.Rx, fn(p.pair(inst.Rx), p.R[inst.Ry]))
	}
}

func opDShiftImm(fn func(v uint64, count uint32) uint64) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		p.setPair(inst.Rx, fn(p.pair(inst.Rx), uint32(inst.Ry)))
	}
}

// aslStep performs one one-bit arithmetic shift left with sign-bit
// restoration, reporting whether the bit shifted into the sign position
// differed from the saved original sign -- the condition the 1983-edition
// ASL raises ArithmeticTrap on.
func aslStep(v uint32, signBit uint32) (uint32, bool) {
	v <<= 1
	changed := (v & 0x80000000) != signBit
	v = (v &^ 0x80000000) | signBit
	return v, changed
}

// opASL implements ASL: shift left one bit at a time, restoring the
// original sign bit after each step, stopping (and raising
// ArithmeticTrap) at the first step whose pre-restore sign differs from
// the saved one. The testable property in the spec is explicit that the
// trap fires "after performing k partial shifts" -- so the remaining
// shifts the count called for are not performed once it fires.
func opASL(p *Processor, inst decode.Instruction, opc uint32) {
	count := p.R[inst.Ry] & 0x1F
	v := p.R[inst.Rx]
	signBit := v & 0x80000000
	trapped := false
	for i := uint32(0); i < count; i++ {
		var changed bool
		v, changed = aslStep(v, signBit)
		if changed {
			trapped = true
			break
		}
	}
	p.R[inst.Rx] = v
	if trapped {
		p.dispatcher.Signal(event.ArithmeticTrap, 0, p.eventMode(), p, p.mem, opc, 0, 0, 0)
	}
}

// opASLImm is ASL's immediate-count form.
func opASLImm(p *Processor, inst decode.Instruction, opc uint32) {
	count := uint32(inst.Ry)
	v := p.R[inst.Rx]
	signBit := v & 0x80000000
	trapped := false
	for i := uint32(0); i < count; i++ {
		var changed bool
		v, changed = aslStep(v, signBit)
		if changed {
			trapped = true
			break
		}
	}
	p.R[inst.Rx] = v
	if trapped {
		p.dispatcher.Signal(event.ArithmeticTrap, 0, p.eventMode(), p, p.mem, opc, 0, 0, 0)
	}
}

func opSEB(p *Processor, inst decode.Instruction, opc uint32) {
	p.R[inst.Rx] = uint32(int32(int8(uint8(p.R[inst.Ry]))))
}

func opSEH(p *Processor, inst decode.Instruction, opc uint32) {
	p.R[inst.Rx] = uint32(int32(int16(uint16(p.R[inst.Ry]))))
}
