/*
 * Ridge32 - ALU opcode tests
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
	"testing"

	"github.com/rcornwell/ridge32/decode"
)

func TestAddWrapsSilentlyOnOverflow(t *testing.T) {
	p := newTestProc(0x100)
	p.R[1] = 0x7FFFFFFF
	p.R[2] = 1
	p.table[opAdd](p, decode.Instruction{Rx: 1, Ry: 2}, 0)
	if p.R[1] != 0x80000000 {
		t.Errorf("R1 = %#x, want 0x80000000 (silent wrap, no trap)", p.R[1])
	}
}

func TestSubWrapsSilentlyOnUnderflow(t *testing.T) {
	p := newTestProc(0x100)
	p.R[1] = 0
	p.R[2] = 1
	p.table[opSub](p, decode.Instruction{Rx: 1, Ry: 2}, 0)
	if p.R[1] != 0xFFFFFFFF {
		t.Errorf("R1 = %#x, want 0xFFFFFFFF", p.R[1])
	}
}

func TestDivByZeroResolvesToZero(t *testing.T) {
	p := newTestProc(0x100)
	p.R[1] = 42
	p.R[2] = 0
	p.table[opDiv](p, decode.Instruction{Rx: 1, Ry: 2}, 0)
	if p.R[1] != 0 {
		t.Errorf("R1 = %d, want 0 on divide-by-zero", p.R[1])
	}
}

func TestDivOrdinary(t *testing.T) {
	p := newTestProc(0x100)
	neg := int32(-9)
	p.R[1] = uint32(neg)
	p.R[2] = 2
	p.table[opDiv](p, decode.Instruction{Rx: 1, Ry: 2}, 0)
	if int32(p.R[1]) != -4 {
		t.Errorf("R1 = %d, want -4", int32(p.R[1]))
	}
}

func TestChkRegTrapsWhenRxGreaterThanRy(t *testing.T) {
	p := newTestProc(0x10000)
	p.SR[11] = 0x9000
	p.mem.WriteWord(0x9000+0x41C, 0x5000) // ArithmeticTrap vector
	p.R[1] = 10
	p.R[2] = 5
	p.table[opChk](p, decode.Instruction{Rx: 1, Ry: 2}, 0x1234)
	if p.PC != 0x5000 {
		t.Errorf("PC = %#x, want the ArithmeticTrap vector 0x5000", p.PC)
	}
}

func TestChkRegDoesNotTrapWhenRxLessEqualRy(t *testing.T) {
	p := newTestProc(0x100)
	p.PC = 0x1234
	p.R[1] = 3
	p.R[2] = 5
	p.table[opChk](p, decode.Instruction{Rx: 1, Ry: 2}, 0x1234)
	if p.PC != 0x1234 {
		t.Errorf("PC changed on a passing CHK")
	}
}

func TestBitOpSetClearTest(t *testing.T) {
	p := newTestProc(0x100)
	p.R[1], p.R[2] = 0, 0
	p.R[3] = 0 // bit index 0 -> MSB of the pair

	p.table[opSbit](p, decode.Instruction{Rx: 1, Ry: 3}, 0)
	if p.R[1] != 0x80000000 {
		t.Errorf("SBIT on bit 0 = %#x, want 0x80000000 in the high word", p.R[1])
	}

	p.table[opTbit](p, decode.Instruction{Rx: 1, Ry: 3}, 0)
	if p.R[1] != 1 {
		t.Errorf("TBIT result = %d, want 1", p.R[1])
	}
}

func TestALUImmAddSignExtends(t *testing.T) {
	p := newTestProc(0x100)
	p.R[1] = 10
	// Ry nibble 0xF sign-extends to -1.
	p.table[opAddI](p, decode.Instruction{Rx: 1, Ry: 0xF}, 0)
	if p.R[1] != 9 {
		t.Errorf("R1 = %d, want 9 (10 + -1)", p.R[1])
	}
}
