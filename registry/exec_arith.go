/*
 * HERA - ALU operations: ADD, SUB, MUL, AND, OR, XOR, INC, DEC, shifts,
 * flag save/restore and flag set/clear.
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

const allFlags = FlagSign | FlagZero | FlagOverflow | FlagCarry

func registerArithOps(t Table) {
	rrr := func(name string, code uint16, fn func(a, b uint16) (uint16, bool, bool)) {
		t[name] = &Descriptor{
			Name:         name,
			ParamKinds:   []Kind{KindRegister, KindRegister, KindRegister},
			Touches:      allFlags,
			LengthInCode: 1,
			Doc:          name + " Rd, Ra, Rb - Rd <- Ra " + arithSymbol(name) + " Rb",
			Encode:       func(op RealOp) uint16 { return encodeRRR(code, op) },
			Execute: func(op RealOp, vm VM) {
				a, b := vm.Reg(op.Reg[1]), vm.Reg(op.Reg[2])
				v, carry, overflow := fn(a, b)
				sign, zero := signZero(v)
				vm.SetReg(op.Reg[0], v)
				vm.SetFlags(sign, zero, overflow, carry)
			},
		}
	}
	rrr("ADD", codeADD, func(a, b uint16) (uint16, bool, bool) { return addFlags(a, b) })
	rrr("SUB", codeSUB, func(a, b uint16) (uint16, bool, bool) { return subFlags(a, b) })
	rrr("MUL", codeMUL, func(a, b uint16) (uint16, bool, bool) {
		v := a * b
		return v, false, false
	})
	rrr("AND", codeAND, func(a, b uint16) (uint16, bool, bool) { return a & b, false, false })
	rrr("OR", codeOR, func(a, b uint16) (uint16, bool, bool) { return a | b, false, false })
	rrr("XOR", codeXOR, func(a, b uint16) (uint16, bool, bool) { return a ^ b, false, false })

	t["INC"] = &Descriptor{
		Name:         "INC",
		ParamKinds:   []Kind{KindRegister, KindU6},
		Touches:      allFlags,
		LengthInCode: 1,
		Doc:          "INC Rd, u6 - Rd <- Rd + u6",
		Encode:       func(op RealOp) uint16 { return encodeRI8(codeINC, op) },
		Execute: func(op RealOp, vm VM) {
			v, carry, overflow := addFlags(vm.Reg(op.Reg[0]), uint16(op.Imm))
			sign, zero := signZero(v)
			vm.SetReg(op.Reg[0], v)
			vm.SetFlags(sign, zero, overflow, carry)
		},
	}
	t["DEC"] = &Descriptor{
		Name:         "DEC",
		ParamKinds:   []Kind{KindRegister, KindU6},
		Touches:      allFlags,
		LengthInCode: 1,
		Doc:          "DEC Rd, u6 - Rd <- Rd - u6",
		Encode:       func(op RealOp) uint16 { return encodeRI8(codeDEC, op) },
		Execute: func(op RealOp, vm VM) {
			v, carry, overflow := subFlags(vm.Reg(op.Reg[0]), uint16(op.Imm))
			sign, zero := signZero(v)
			vm.SetReg(op.Reg[0], v)
			vm.SetFlags(sign, zero, overflow, carry)
		},
	}

	shift := func(name string, code uint16, fn func(v uint16) uint16) {
		t[name] = &Descriptor{
			Name:         name,
			ParamKinds:   []Kind{KindRegister, KindRegister},
			Touches:      allFlags,
			LengthInCode: 1,
			Doc:          name + " Rd, Rs - Rd <- shift(Rs)",
			Encode:       func(op RealOp) uint16 { return encodeRR8(code, op.Reg[0], op.Reg[1]) },
			Execute: func(op RealOp, vm VM) {
				v := fn(vm.Reg(op.Reg[1]))
				sign, zero := signZero(v)
				_, _, _, carry := carryFromShift(name, vm.Reg(op.Reg[1]), v)
				vm.SetReg(op.Reg[0], v)
				vm.SetFlags(sign, zero, false, carry)
			},
		}
	}
	shift("LSL", codeLSL, func(v uint16) uint16 { return v << 1 })
	shift("LSR", codeLSR, func(v uint16) uint16 { return v >> 1 })
	shift("LSL8", codeLSL8, func(v uint16) uint16 { return v << 8 })
	shift("LSR8", codeLSR8, func(v uint16) uint16 { return v >> 8 })
	shift("ASL", codeASL, func(v uint16) uint16 { return v << 1 })
	shift("ASR", codeASR, func(v uint16) uint16 { return asr16(v, 1) })

	t["SAVEF"] = &Descriptor{
		Name:         "SAVEF",
		ParamKinds:   []Kind{KindRegister},
		LengthInCode: 1,
		Doc:          "SAVEF Rd - Rd <- packed flags (sign,zero,overflow,carry)",
		Encode:       func(op RealOp) uint16 { return encodeR8(codeSAVEF, op.Reg[0]) },
		Execute: func(op RealOp, vm VM) {
			s, z, v, c := vm.GetFlags()
			vm.SetReg(op.Reg[0], packFlags(s, z, v, c))
		},
	}
	t["RSTRF"] = &Descriptor{
		Name:         "RSTRF",
		ParamKinds:   []Kind{KindRegister},
		Touches:      allFlags,
		LengthInCode: 1,
		Doc:          "RSTRF Rd - flags <- unpack(Rd)",
		Encode:       func(op RealOp) uint16 { return encodeR8(codeRSTRF, op.Reg[0]) },
		Execute: func(op RealOp, vm VM) {
			s, z, v, c := unpackFlags(vm.Reg(op.Reg[0]))
			vm.SetFlags(s, z, v, c)
		},
	}

	flagOp := func(name string, code uint16, apply func(cur, mask [4]bool) [4]bool) {
		t[name] = &Descriptor{
			Name:         name,
			ParamKinds:   []Kind{KindU8},
			Touches:      allFlags,
			LengthInCode: 1,
			Doc:          name + " mask - set/clear selected flags",
			Encode:       func(op RealOp) uint16 { return encodeImm8(code, op.Imm) },
			Execute: func(op RealOp, vm VM) {
				s, z, v, c := vm.GetFlags()
				ms, mz, mv, mc := unpackFlags(uint16(op.Imm))
				r := apply([4]bool{s, z, v, c}, [4]bool{ms, mz, mv, mc})
				vm.SetFlags(r[0], r[1], r[2], r[3])
			},
		}
	}
	flagOp("FON", codeFON, func(cur, mask [4]bool) [4]bool {
		for i := range cur {
			if mask[i] {
				cur[i] = true
			}
		}
		return cur
	})
	flagOp("FOFF", codeFOFF, func(cur, mask [4]bool) [4]bool {
		for i := range cur {
			if mask[i] {
				cur[i] = false
			}
		}
		return cur
	})
	flagOp("FSET4", codeFSET4, func(_, mask [4]bool) [4]bool { return mask })
	flagOp("FSET5", codeFSET5, func(_, mask [4]bool) [4]bool { return mask })
}

func arithSymbol(name string) string {
	switch name {
	case "ADD":
		return "+"
	case "SUB":
		return "-"
	case "MUL":
		return "*"
	case "AND":
		return "&"
	case "OR":
		return "|"
	case "XOR":
		return "^"
	}
	return "?"
}

// carryFromShift computes the shift's carry-out: the bit shifted away.
func carryFromShift(name string, before, after uint16) (bool, bool, bool, bool) {
	var c bool
	switch name {
	case "LSL", "ASL":
		c = before&msign16 != 0
	case "LSR", "ASR":
		c = before&1 != 0
	case "LSL8":
		c = before&0xff00 != 0
	case "LSR8":
		c = before&0x00ff != 0
	}
	return false, false, false, c
}

// packFlags encodes the four VM flags into the low four bits of a word,
// in (sign,zero,overflow,carry) bit order, matching FON/FOFF/FSET4/FSET5
// mask layout.
func packFlags(sign, zero, overflow, carry bool) uint16 {
	var v uint16
	if sign {
		v |= 1
	}
	if zero {
		v |= 2
	}
	if overflow {
		v |= 4
	}
	if carry {
		v |= 8
	}
	return v
}

func unpackFlags(v uint16) (sign, zero, overflow, carry bool) {
	return v&1 != 0, v&2 != 0, v&4 != 0, v&8 != 0
}
