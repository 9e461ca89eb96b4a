/*
 * Ridge32 - ALU opcodes
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

// signExtend4 sign-extends a 4-bit field (as carried in the Ry slot of an
// immediate-form instruction) to a full 32-bit signed value.
func signExtend4(ry uint8) int32 {
	v := int32(ry & 0xF)
	if v >= 8 {
		v -= 16
	}
	return v
}

// opALUReg builds a register-register ALU handler: R[Rx] = fn(R[Rx], R[Ry]).
// ADD/SUB/MPY overflow is left unimplemented (wraps silently in ordinary
// Go unsigned arithmetic) per the CORE's documented TODO -- see DESIGN.md.
func opALUReg(fn func(rx, ry uint32) uint32) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		p.R[inst.Rx] = fn(p.R[inst.Rx], p.R[inst.Ry])
	}
}

// opALUDivReg builds DIV/REM: division by zero has no architectural
// definition in the CORE, so it resolves to zero rather than panicking.
func opALUDivReg(fn func(rx, ry int32) int32) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		ry := int32(p.R[inst.Ry])
		if ry == 0 {
			p.R[inst.Rx] = 0
			return
		}
		p.R[inst.Rx] = uint32(fn(int32(p.R[inst.Rx]), ry))
	}
}

// opChkReg implements CHK Rx,Ry using the signed R[Rx] > R[Ry] variant the
// spec resolves the manual conflict with. There is no dedicated Check
// event in the closed event set, so a failed check raises ArithmeticTrap
// (see DESIGN.md).
func opChkReg(p *Processor, inst decode.Instruction, opc uint32) {
	if int32(p.R[inst.Rx]) > int32(p.R[inst.Ry]) {
		p.dispatcher.Signal(event.ArithmeticTrap, 0, p.eventMode(), p, p.mem, opc, 0, 0, 0)
	}
}

func opChkImm(p *Processor, inst decode.Instruction, opc uint32) {
	if int32(p.R[inst.Rx]) > signExtend4(inst.Ry) {
		p.dispatcher.Signal(event.ArithmeticTrap, 0, p.eventMode(), p, p.mem, opc, 0, 0, 0)
	}
}

// opALUImm builds an immediate-form ALU handler over the sign-extended
// 4-bit Ry field.
func opALUImm(fn func(rx uint32, imm int32) uint32) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		p.R[inst.Rx] = fn(p.R[inst.Rx], signExtend4(inst.Ry))
	}
}

// bitEffect selects CBIT/SBIT/TBIT's behavior within the shared pair-bit
// handler.
type bitEffect int

const (
	bitClear bitEffect = iota
	bitSet
	bitTest
)

// opBitOp implements CBIT/SBIT/TBIT: bit index = R[Ry] & 0x3F into the
// 64-bit pair at Rx, bit 0 the pair's MSB (Ridge numbering). TBIT writes
// only R[Rx] with the tested bit's value; it does not rewrite the pair.
func opBitOp(eff bitEffect) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		bit := p.R[inst.Ry] & 0x3F
		mask := uint64(1) << (63 - bit)
		pair := p.pair(inst.Rx)
		switch eff {
		case bitClear:
			p.setPair(inst.Rx, pair&^mask)
		case bitSet:
			p.setPair(inst.Rx, pair|mask)
		case bitTest:
			if pair&mask != 0 {
				p.R[inst.Rx] = 1
			} else {
				p.R[inst.Rx] = 0
			}
		}
	}
}
