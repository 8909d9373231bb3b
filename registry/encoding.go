/*
 * HERA - 16-bit word encoding and decoding.
 *
 * Copyright 2024, The HERA Project Authors
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

package registry

// Every real op's 16-bit word is nibble-aligned. Two format families
// share the word:
//
//	Family A - top nibble (bits 15-12) is the op code directly, 0x0-0xB.
//	           The remaining 12 bits hold up to three 4-bit register/
//	           immediate fields. Used for the three-register ALU ops,
//	           the 8-bit-immediate SETLO/SETHI, the register+offset
//	           LOAD/STORE, and INC/DEC.
//	Family B - top nibble is 0xC-0xF, an escape into a full 8-bit code
//	           (bits 15-8) with 8 operand bits (bits 7-0) beneath it:
//	           shifts, SAVEF/RSTRF, FON/FOFF/FSET4/FSET5, all branch
//	           forms, CALL/RETURN, HALT/NOP/SWI/RTI.
//
// This mirrors the spec's "4-bit opcode nibbles" literally: every field
// in both families is nibble-sized, and the primary code is always an
// integral number of nibbles.

const (
	codeADD = 0x0
	codeSUB = 0x1
	codeMUL = 0x2
	codeAND = 0x3
	codeOR  = 0x4
	codeXOR = 0x5
	codeSETLO = 0x6
	codeSETHI = 0x7
	codeLOAD  = 0x8
	codeSTORE = 0x9
	codeINC   = 0xA
	codeDEC   = 0xB
)

func encodeRRR(code uint16, op RealOp) uint16 {
	return code<<12 | uint16(op.Reg[0]&0xf)<<8 | uint16(op.Reg[1]&0xf)<<4 | uint16(op.Reg[2]&0xf)
}

func encodeRI8(code uint16, op RealOp) uint16 {
	return code<<12 | uint16(op.Reg[0]&0xf)<<8 | uint16(op.Imm)&0xff
}

func encodeMemRI(code uint16, op RealOp) uint16 {
	return code<<12 | uint16(op.Reg[0]&0xf)<<8 | uint16(op.Reg[1]&0xf)<<4 | uint16(op.Imm)&0xf
}

// familyB byte codes (top nibble 0xC-0xF => byte 0xC0-0xFF).
const (
	codeLSL    = 0xC0
	codeLSR    = 0xC1
	codeLSL8   = 0xC2
	codeLSR8   = 0xC3
	codeASL    = 0xC4
	codeASR    = 0xC5
	codeSAVEF  = 0xC6
	codeRSTRF  = 0xC7
	codeFON    = 0xC8
	codeFOFF   = 0xC9
	codeFSET4  = 0xCA
	codeFSET5  = 0xCB
	codeCALL   = 0xCC
	codeRETURN = 0xCD
	codeHALT   = 0xCE
	codeNOP    = 0xCF
	codeSWI    = 0xD0
	codeRTI    = 0xD1
)

// branchFamilyBase assigns two contiguous byte codes (register form,
// relative form) to each of the fifteen branch conditions (fourteen
// conditional plus the unconditional BR/BRR), starting after the fixed
// codes above.
var branchFamilyBase uint16 = 0xD2

func encodeRR8(code uint16, rd, rs int) uint16 {
	return code<<8 | uint16(rd&0xf)<<4 | uint16(rs&0xf)
}

func encodeR8(code uint16, rd int) uint16 {
	return code<<8 | uint16(rd&0xf)<<4
}

func encodeImm8(code uint16, imm int32) uint16 {
	return code<<8 | uint16(imm)&0xff
}

func encodeNone(code uint16) uint16 {
	return code << 8
}

// decodeWord inverts every Encode function registered in the table: the
// top nibble selects Family A or Family B, and the op code (a switch on
// the fixed codes, a map lookup for shifts and branches) picks the
// descriptor.
func decodeWord(word uint16) (RealOp, bool) {
	top4 := word >> 12
	if top4 <= 0xB {
		return decodeFamilyA(top4, word)
	}
	return decodeFamilyB(word)
}

func decodeFamilyA(code uint16, word uint16) (RealOp, bool) {
	rd := int((word >> 8) & 0xf)
	switch code {
	case codeADD, codeSUB, codeMUL, codeAND, codeOR, codeXOR:
		name := map[uint16]string{codeADD: "ADD", codeSUB: "SUB", codeMUL: "MUL", codeAND: "AND", codeOR: "OR", codeXOR: "XOR"}[code]
		ra := int((word >> 4) & 0xf)
		rb := int(word & 0xf)
		return RealOp{Desc: All[name], Reg: [3]int{rd, ra, rb}}, true
	case codeSETLO:
		return RealOp{Desc: All["SETLO"], Reg: [3]int{rd}, Imm: int32(int8(word & 0xff))}, true
	case codeSETHI:
		return RealOp{Desc: All["SETHI"], Reg: [3]int{rd}, Imm: int32(word & 0xff)}, true
	case codeLOAD, codeSTORE:
		name := "LOAD"
		if code == codeSTORE {
			name = "STORE"
		}
		ra := int((word >> 4) & 0xf)
		off := int32(word & 0xf)
		if off > 7 {
			off -= 16
		}
		return RealOp{Desc: All[name], Reg: [3]int{rd, ra}, Imm: off}, true
	case codeINC, codeDEC:
		name := "INC"
		if code == codeDEC {
			name = "DEC"
		}
		return RealOp{Desc: All[name], Reg: [3]int{rd}, Imm: int32(word & 0x3f)}, true
	}
	return RealOp{}, false
}

func decodeFamilyB(word uint16) (RealOp, bool) {
	byteCode := word >> 8
	operand := word & 0xff
	rd := int((operand >> 4) & 0xf)
	rs := int(operand & 0xf)

	if name, ok := shiftByCode[byteCode]; ok {
		return RealOp{Desc: All[name], Reg: [3]int{rd, rs}}, true
	}
	switch byteCode {
	case codeSAVEF:
		return RealOp{Desc: All["SAVEF"], Reg: [3]int{rd}}, true
	case codeRSTRF:
		return RealOp{Desc: All["RSTRF"], Reg: [3]int{rd}}, true
	case codeFON:
		return RealOp{Desc: All["FON"], Imm: int32(operand)}, true
	case codeFOFF:
		return RealOp{Desc: All["FOFF"], Imm: int32(operand)}, true
	case codeFSET4:
		return RealOp{Desc: All["FSET4"], Imm: int32(operand)}, true
	case codeFSET5:
		return RealOp{Desc: All["FSET5"], Imm: int32(operand)}, true
	case codeCALL:
		return RealOp{Desc: All["CALL"], Reg: [3]int{rd, rs}}, true
	case codeRETURN:
		return RealOp{Desc: All["RETURN"], Reg: [3]int{rd, rs}}, true
	case codeHALT:
		return RealOp{Desc: All["HALT"]}, true
	case codeNOP:
		return RealOp{Desc: All["NOP"]}, true
	case codeSWI:
		return RealOp{Desc: All["SWI"], Imm: int32(operand)}, true
	case codeRTI:
		return RealOp{Desc: All["RTI"]}, true
	}
	if name, ok := branchByCode[byteCode]; ok {
		d := All[name]
		if relativeBranchCodes[byteCode] {
			off := int32(int8(operand))
			return RealOp{Desc: d, Imm: off}, true
		}
		return RealOp{Desc: d, Reg: [3]int{rd}}, true
	}
	return RealOp{}, false
}

var shiftByCode = map[uint16]string{
	codeLSL: "LSL", codeLSR: "LSR", codeLSL8: "LSL8", codeLSR8: "LSR8",
	codeASL: "ASL", codeASR: "ASR",
}

// branchByCode, branchCodeByName, and relativeBranchCodes are populated
// by registerBranchOps once the list of branch conditions is known.
var branchByCode = map[uint16]string{}
var branchCodeByName = map[string]uint16{}
var relativeBranchCodes = map[uint16]bool{}
