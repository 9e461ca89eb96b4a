/*
 * Ridge32 - Test opcodes
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

import "github.com/rcornwell/ridge32/decode"

// opTestReg builds the register-form TEST_xx family: R[Rx] becomes 1 or 0
// depending on whether pred holds for the signed difference R[Rx]-R[Ry].
func opTestReg(pred func(int32) bool) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		diff := int32(p.R[inst.Rx]) - int32(p.R[inst.Ry])
		p.R[inst.Rx] = boolToWord(pred(diff))
	}
}

// opTestImm builds the immediate-form TESTI_xx family, comparing against
// the sign-extended 4-bit Ry field instead of a second register.
func opTestImm(pred func(int32) bool) opFunc {
	return func(p *Processor, inst decode.Instruction, opc uint32) {
		diff := int32(p.R[inst.Rx]) - signExtend4(inst.Ry)
		p.R[inst.Rx] = boolToWord(pred(diff))
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
