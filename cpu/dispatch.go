/*
 * Ridge32 - Opcode dispatch table
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

// buildTable wires every implemented opcode into p.table. A nil entry
// after this runs is an opcode hole: Step reports IllegalInstruction for
// it, so opcodes the CORE intentionally leaves unimplemented (the true
// floating-point ones) need no special casing here beyond not being
// registered -- stubIllegal exists only to make that omission visible to
// a reader rather than relying on a quiet nil.
func (p *Processor) buildTable() {
	t := &p.table

	t[opMove] = opALUReg(func(_, ry uint32) uint32 { return ry })
	t[opNeg] = opALUReg(func(rx, ry uint32) uint32 { return -ry })
	t[opAdd] = opALUReg(func(rx, ry uint32) uint32 { return rx + ry })
	t[opSub] = opALUReg(func(rx, ry uint32) uint32 { return rx - ry })
	t[opMpy] = opALUReg(func(rx, ry uint32) uint32 { return rx * ry })
	t[opDiv] = opALUDivReg(func(rx, ry int32) int32 { return rx / ry })
	t[opRem] = opALUDivReg(func(rx, ry int32) int32 { return rx % ry })
	t[opNot] = opALUReg(func(_, ry uint32) uint32 { return ^ry })
	t[opOr] = opALUReg(func(rx, ry uint32) uint32 { return rx | ry })
	t[opXor] = opALUReg(func(rx, ry uint32) uint32 { return rx ^ ry })
	t[opAnd] = opALUReg(func(rx, ry uint32) uint32 { return rx & ry })
	t[opChk] = opChkReg

	t[opCbit] = opBitOp(bitClear)
	t[opSbit] = opBitOp(bitSet)
	t[opTbit] = opBitOp(bitTest)

	t[opAddI] = opALUImm(func(rx uint32, imm int32) uint32 { return rx + uint32(imm) })
	t[opMoveI] = opALUImm(func(_ uint32, imm int32) uint32 { return uint32(imm) })
	t[opSubI] = opALUImm(func(rx uint32, imm int32) uint32 { return rx - uint32(imm) })
	t[opMpyI] = opALUImm(func(rx uint32, imm int32) uint32 { return rx * uint32(imm) })
	t[opNotI] = opALUImm(func(_ uint32, imm int32) uint32 { return ^uint32(imm) })
	t[opAndI] = opALUImm(func(rx uint32, imm int32) uint32 { return rx & uint32(imm) })
	t[opChkI] = opChkImm

	t[opLsl] = opShiftReg(shiftLSL)
	t[opLsr] = opShiftReg(shiftLSR)
	t[opAsl] = opASL
	t[opAsr] = opShiftReg(shiftASR)
	t[opDlsl] = opDShiftReg(dshiftLSL)
	t[opDlsr] = opDShiftReg(dshiftLSR)
	t[opCsl] = opShiftReg(shiftCSL)
	t[opLslI] = opShiftImm(shiftLSL)
	t[opLsrI] = opShiftImm(shiftLSR)
	t[opAslI] = opASLImm
	t[opAsrI] = opShiftImm(shiftASR)
	t[opDlslI] = opDShiftImm(dshiftLSL)
	t[opDlsrI] = opDShiftImm(dshiftLSR)
	t[opCslI] = opShiftImm(shiftCSL)
	t[opSeb] = opSEB
	t[opSeh] = opSEH

	for _, op := range []uint8{
		opFixt, opFixr, opRneg, opRadd, opRsub, opRmpy, opRdiv, opMakerd,
		opFloat, opRcomp, opDfixt, opDfixr, opDrneg, opDradd, opDrsub,
		opDrmpy, opDrdiv, opMakedr, opDfloat, opDrcomp,
	} {
		t[op] = stubIllegal
	}
	t[opEadd] = opPairOp(func(rx, ry uint64) uint64 { return rx + ry })
	t[opEsub] = opPairOp(func(rx, ry uint64) uint64 { return rx - ry })
	t[opEmpy] = opPairOp(func(rx, ry uint64) uint64 { return rx * ry })
	t[opEdiv] = opPairDiv
	t[opLcomp] = opLComp
	t[opDcomp] = opDComp

	t[opSus] = opSUS
	t[opLus] = opLUS
	t[opRum] = opRUM
	t[opLdregs] = opLDREGS
	t[opTrans] = opTransDirt(false)
	t[opDirt] = opTransDirt(true)
	t[opMoveSR] = opMOVEsr
	t[opMoveRS] = opMOVErs
	t[opMaint] = opMAINT
	t[opRead] = opREAD
	t[opWrite] = opWRITE

	t[opTestGt] = opTestReg(func(v int32) bool { return v > 0 })
	t[opTestLt] = opTestReg(func(v int32) bool { return v < 0 })
	t[opTestEq] = opTestReg(func(v int32) bool { return v == 0 })
	t[opTestLteq] = opTestReg(func(v int32) bool { return v <= 0 })
	t[opTestGteq] = opTestReg(func(v int32) bool { return v >= 0 })
	t[opTestNeq] = opTestReg(func(v int32) bool { return v != 0 })
	t[opTestIGt] = opTestImm(func(v int32) bool { return v > 0 })
	t[opTestILt] = opTestImm(func(v int32) bool { return v < 0 })
	t[opTestIEq] = opTestImm(func(v int32) bool { return v == 0 })
	t[opTestILteq] = opTestImm(func(v int32) bool { return v <= 0 })
	t[opTestIGteq] = opTestImm(func(v int32) bool { return v >= 0 })
	t[opTestINeq] = opTestImm(func(v int32) bool { return v != 0 })

	t[opCallR] = opCALLR
	t[opRet] = opRET
	t[opKcall] = opKCALL
	t[opTrap] = opTRAP

	t[opBrGt] = opBranch(func(v int32) bool { return v > 0 })
	t[opBrLt] = opBranch(func(v int32) bool { return v < 0 })
	t[opBrEq] = opBranch(func(v int32) bool { return v == 0 })
	t[opBrLteq] = opBranch(func(v int32) bool { return v <= 0 })
	t[opBrGteq] = opBranch(func(v int32) bool { return v >= 0 })
	t[opBrNeq] = opBranch(func(v int32) bool { return v != 0 })
	t[opBr] = opBranch(func(int32) bool { return true })
	t[opCall] = opCALL
	t[opLoop] = opLOOP

	for _, e := range loadStoreOpcodes {
		t[dispatchIndex(e.opcode)] = makeLoadStore(e)
	}
}

// stubIllegal backs every opcode the spec allows to be stubbed: the true
// floating-point operations. It always raises IllegalInstruction, exactly
// as an unregistered table hole would, but the registration makes the
// omission a decision instead of an oversight.
func stubIllegal(p *Processor, inst decode.Instruction, opc uint32) {
	p.signalIllegal(inst.Op)
}
