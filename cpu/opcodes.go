/*
 * Ridge32 - Opcode assignment
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

// Opcode assignment. Register/immediate-format opcodes (bit 0x80 clear)
// occupy 0x00-0x7F with every bit significant. Memory-reference-format
// opcodes (bit 0x80 set) reserve bit 0x10 for the decoder's short/long
// displacement choice -- table lookup clears it (see dispatchIndex in
// dispatch.go), so a long and a short encoding of the same instruction
// always land on the same handler. MOVE, ADD, MOVEI and BR_eq keep the
// exact byte values used in the CORE's worked examples.
const (
	opMove = 0x00
	opNeg  = 0x01
	opSub  = 0x02
	opAdd  = 0x03
	opMpy  = 0x04
	opDiv  = 0x05
	opRem  = 0x06
	opNot  = 0x07
	opOr   = 0x08
	opXor  = 0x09
	opAnd  = 0x0A
	opCbit = 0x0B
	opSbit = 0x0C
	opTbit = 0x0D
	opChk  = 0x0E

	opAddI  = 0x10
	opMoveI = 0x11
	opSubI  = 0x12
	opMpyI  = 0x13
	opNotI  = 0x14
	opAndI  = 0x15
	opChkI  = 0x16

	opLsl   = 0x20
	opLsr   = 0x21
	opAsl   = 0x22
	opAsr   = 0x23
	opDlsl  = 0x24
	opDlsr  = 0x25
	opCsl   = 0x26
	opLslI  = 0x27
	opLsrI  = 0x28
	opAslI  = 0x29
	opAsrI  = 0x2A
	opDlslI = 0x2B
	opDlsrI = 0x2C
	opCslI  = 0x2D
	opSeb   = 0x2E
	opSeh   = 0x2F

	opFixt   = 0x30
	opFixr   = 0x31
	opRneg   = 0x32
	opRadd   = 0x33
	opRsub   = 0x34
	opRmpy   = 0x35
	opRdiv   = 0x36
	opMakerd = 0x37
	opFloat  = 0x38
	opRcomp  = 0x39
	opEadd   = 0x3A
	opEsub   = 0x3B
	opEmpy   = 0x3C
	opEdiv   = 0x3D
	opDfixt  = 0x3E
	opDfixr  = 0x3F
	opDrneg  = 0x40
	opDradd  = 0x41
	opDrsub  = 0x42
	opDrmpy  = 0x43
	opDrdiv  = 0x44
	opMakedr = 0x45
	opDfloat = 0x46
	opDrcomp = 0x47
	opLcomp  = 0x48
	opDcomp  = 0x49

	opSus    = 0x50
	opLus    = 0x51
	opRum    = 0x52
	opLdregs = 0x53
	opTrans  = 0x54
	opDirt   = 0x55
	opMoveSR = 0x56
	opMoveRS = 0x57
	opMaint  = 0x58
	opRead   = 0x59
	opWrite  = 0x5A

	opTestGt    = 0x60
	opTestLt    = 0x61
	opTestEq    = 0x62
	opTestLteq  = 0x63
	opTestGteq  = 0x64
	opTestNeq   = 0x65
	opTestIGt   = 0x66
	opTestILt   = 0x67
	opTestIEq   = 0x68
	opTestILteq = 0x69
	opTestIGteq = 0x6A
	opTestINeq  = 0x6B

	opCallR = 0x70
	opRet   = 0x71
	opKcall = 0x72
	opTrap  = 0x73
)

// MAINT sub-op codes, carried in Ry.
const (
	maintElogr     = 0
	maintFlush     = 6
	maintTrapexit  = 7
	maintItest     = 8
	maintMachineID = 10
)

// Memory-reference-format (bit 0x80 set) identities. Each constant names
// the base/short encoding; the decoder's long form is the same value with
// 0x10 set, and dispatchIndex folds it back before the table lookup.
const (
	opBrGt   = 0x80
	opBrLt   = 0x81
	opBrEq   = 0x82 // BR_eql, per the long-displacement-branch worked example
	opBrLteq = 0x83
	opBrGteq = 0x84
	opBrNeq  = 0x85
	opBr     = 0x86
	opCall   = 0x87
	opLoop   = 0x88
)

// addrForm distinguishes the two effective-address families the
// memory-reference opcodes use: c (PC-relative, base = opc) and d
// (absolute, base = 0). Both may additionally be indexed by R[Ry].
type addrForm int

const (
	formC addrForm = iota
	formD
)

// loadStoreKind names the operand width/direction a LOAD/STORE/LADDR
// opcode works on.
type loadStoreKind int

const (
	kindLoadB loadStoreKind = iota
	kindLoadH
	kindLoadW
	kindLoadD
	kindStoreB
	kindStoreH
	kindStoreW
	kindStoreD
	kindLaddr
)

// loadStoreEntry binds one opcode byte to the kind/form/indexed triple
// dispatch needs; the table in dispatch.go is built from this list rather
// than from 36 individually named opcode constants.
type loadStoreEntry struct {
	opcode  uint8
	kind    loadStoreKind
	form    addrForm
	indexed bool
}

var loadStoreOpcodes = []loadStoreEntry{
	{0xA0, kindLoadB, formC, false},
	{0xA1, kindLoadB, formD, false},
	{0xA2, kindLoadH, formC, false},
	{0xA3, kindLoadH, formD, false},
	{0xA4, kindLoadW, formC, false},
	{0xA5, kindLoadW, formD, false},
	{0xA6, kindLoadD, formC, false},
	{0xA7, kindLoadD, formD, false},
	{0xA8, kindLaddr, formC, false},
	{0xA9, kindLaddr, formD, false},
	{0xAA, kindLoadB, formC, true},
	{0xAB, kindLoadB, formD, true},
	{0xAC, kindLoadH, formC, true},
	{0xAD, kindLoadH, formD, true},
	{0xAE, kindLoadW, formC, true},
	{0xAF, kindLoadW, formD, true},

	{0xC0, kindStoreB, formC, false},
	{0xC1, kindStoreB, formD, false},
	{0xC2, kindStoreH, formC, false},
	{0xC3, kindStoreH, formD, false},
	{0xC4, kindStoreW, formC, false},
	{0xC5, kindStoreW, formD, false},
	{0xC6, kindStoreD, formC, false},
	{0xC7, kindStoreD, formD, false},
	{0xC8, kindStoreB, formC, true},
	{0xC9, kindStoreB, formD, true},
	{0xCA, kindStoreH, formC, true},
	{0xCB, kindStoreH, formD, true},
	{0xCC, kindStoreW, formC, true},
	{0xCD, kindStoreW, formD, true},
	{0xCE, kindStoreD, formC, true},
	{0xCF, kindStoreD, formD, true},

	{0xE0, kindLoadD, formC, true},
	{0xE1, kindLoadD, formD, true},
	{0xE2, kindLaddr, formC, true},
	{0xE3, kindLaddr, formD, true},
}
