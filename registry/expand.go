/*
 * HERA - Pseudo-operations: SET, MOVE, CMP. Each expands to one or more
 * real operations once the checker has resolved its arguments.
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

// registerPseudoOps registers SET, MOVE, and CMP. By the time Expand runs
// the checker has already resolved every label/constant argument into
// op.Imm, so expansion here is pure arithmetic on already-resolved
// values - no symbol table access needed.
func registerPseudoOps(t Table) {
	t["SET"] = &Descriptor{
		Name:         "SET",
		ParamKinds:   []Kind{KindRegister, KindWord16},
		IsPseudo:     true,
		LengthInCode: 2,
		Doc:          "SET Rd, value - Rd <- value mod 2^16, flags untouched",
		Expand: func(op RealOp) []RealOp {
			v := uint16(op.Imm)
			lo := RealOp{Desc: t["SETLO"], Reg: [3]int{op.Reg[0]}, Imm: int32(v & 0xff), Loc: op.Loc}
			hi := RealOp{Desc: t["SETHI"], Reg: [3]int{op.Reg[0]}, Imm: int32(v >> 8), Loc: op.Loc}
			return []RealOp{lo, hi}
		},
	}
	t["SETLO"] = &Descriptor{
		Name:         "SETLO",
		ParamKinds:   []Kind{KindRegister, KindI8},
		LengthInCode: 1,
		Doc:          "SETLO Rd, i8 - Rd[7:0] <- i8, Rd[15:8] <- sign-extend(i8[7])",
		Encode:       func(op RealOp) uint16 { return encodeRI8(codeSETLO, op) },
		Execute: func(op RealOp, vm VM) {
			v := uint16(int8(op.Imm)) // sign-extends into the high byte, like the reference assembler
			vm.SetReg(op.Reg[0], v)
		},
	}
	t["SETHI"] = &Descriptor{
		Name:         "SETHI",
		ParamKinds:   []Kind{KindRegister, KindU8},
		LengthInCode: 1,
		Doc:          "SETHI Rd, i8 - Rd[15:8] <- i8, Rd[7:0] unchanged",
		Encode:       func(op RealOp) uint16 { return encodeRI8(codeSETHI, op) },
		Execute: func(op RealOp, vm VM) {
			cur := vm.Reg(op.Reg[0])
			vm.SetReg(op.Reg[0], uint16(op.Imm)<<8|(cur&0xff))
		},
	}
	t["MOVE"] = &Descriptor{
		Name:         "MOVE",
		ParamKinds:   []Kind{KindRegister, KindRegister},
		IsPseudo:     true,
		LengthInCode: 1,
		Doc:          "MOVE Rd, Rs - Rd <- Rs",
		Expand: func(op RealOp) []RealOp {
			return []RealOp{{Desc: t["OR"], Reg: [3]int{op.Reg[0], op.Reg[1], 0}, Loc: op.Loc}}
		},
	}
	t["CMP"] = &Descriptor{
		Name:         "CMP",
		ParamKinds:   []Kind{KindRegister, KindRegister},
		IsPseudo:     true,
		Touches:      allFlags,
		LengthInCode: 1,
		Doc:          "CMP Ra, Rb - flags <- SUB(R0, Ra, Rb), result discarded",
		Expand: func(op RealOp) []RealOp {
			return []RealOp{{Desc: t["SUB"], Reg: [3]int{0, op.Reg[0], op.Reg[1]}, Loc: op.Loc}}
		},
	}
}

func buildTable() Table {
	t := Table{}
	registerArithOps(t)
	registerMemOps(t)
	registerBranchOps(t)
	registerMiscOps(t)
	registerDataOps(t)
	registerDebugOps(t)
	registerPseudoOps(t)
	return t
}
