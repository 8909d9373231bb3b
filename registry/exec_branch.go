/*
 * HERA - Branch operations: unconditional and conditional, register and
 * pc-relative forms, plus CALL/RETURN.
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

// branchCond is one of the fifteen branch conditions HERA supports,
// tested against the VM's four flags.
type branchCond struct {
	suffix string
	doc    string
	test   func(sign, zero, overflow, carry bool) bool
}

var branchConds = []branchCond{
	{"R", "always", func(s, z, v, c bool) bool { return true }},
	{"L", "signed less-than (sign != overflow)", func(s, z, v, c bool) bool { return s != v }},
	{"GE", "signed greater-or-equal (sign == overflow)", func(s, z, v, c bool) bool { return s == v }},
	{"G", "signed greater-than", func(s, z, v, c bool) bool { return s == v && !z }},
	{"LE", "signed less-or-equal", func(s, z, v, c bool) bool { return s != v || z }},
	{"Z", "zero", func(s, z, v, c bool) bool { return z }},
	{"NZ", "not zero", func(s, z, v, c bool) bool { return !z }},
	{"C", "carry", func(s, z, v, c bool) bool { return c }},
	{"NC", "not carry", func(s, z, v, c bool) bool { return !c }},
	{"S", "sign", func(s, z, v, c bool) bool { return s }},
	{"NS", "not sign", func(s, z, v, c bool) bool { return !s }},
	{"V", "overflow", func(s, z, v, c bool) bool { return v }},
	{"NV", "not overflow", func(s, z, v, c bool) bool { return !v }},
	{"ULE", "unsigned less-or-equal", func(s, z, v, c bool) bool { return !c || z }},
	{"UG", "unsigned greater-than", func(s, z, v, c bool) bool { return c && !z }},
}

func registerBranchOps(t Table) {
	code := branchFamilyBase
	for _, bc := range branchConds {
		regName := branchMnemonic(bc.suffix, false)
		relName := branchMnemonic(bc.suffix, true)
		regCode, relCode := code, code+1
		code += 2

		cond := bc.test
		t[regName] = &Descriptor{
			Name:         regName,
			ParamKinds:   []Kind{KindRegister},
			LengthInCode: 1,
			Doc:          regName + " Rd - branch to address in Rd if " + bc.doc,
			Encode:       func(op RealOp) uint16 { return encodeR8(regCode, op.Reg[0]) },
			Execute: func(op RealOp, vm VM) {
				s, z, v, c := vm.GetFlags()
				if cond(s, z, v, c) {
					vm.SetPC(int(vm.Reg(op.Reg[0])))
				}
			},
		}
		t[relName] = &Descriptor{
			Name:         relName,
			ParamKinds:   []Kind{KindLabel},
			LengthInCode: 1,
			Doc:          relName + " label - branch pc-relative if " + bc.doc,
			Encode:       func(op RealOp) uint16 { return encodeImm8(relCode, op.Imm) },
			Execute: func(op RealOp, vm VM) {
				s, z, v, c := vm.GetFlags()
				if cond(s, z, v, c) {
					vm.SetPC(vm.PC() + int(op.Imm))
				}
			},
		}
		branchByCode[regCode] = regName
		branchByCode[relCode] = relName
		branchCodeByName[regName] = regCode
		branchCodeByName[relName] = relCode
		relativeBranchCodes[relCode] = true
	}

	t["CALL"] = &Descriptor{
		Name:         "CALL",
		ParamKinds:   []Kind{KindRegister, KindRegister},
		LengthInCode: 1,
		Doc:          "CALL Rret, Rtarget - swap pc with Rtarget, save old pc + 1 in Rret",
		Encode:       func(op RealOp) uint16 { return encodeRR8(codeCALL, op.Reg[0], op.Reg[1]) },
		Execute: func(op RealOp, vm VM) {
			old := vm.PC()
			vm.SetPC(int(vm.Reg(op.Reg[1])))
			vm.SetReg(op.Reg[0], uint16(old+1))
		},
	}
	t["RETURN"] = &Descriptor{
		Name:         "RETURN",
		ParamKinds:   []Kind{KindRegister, KindRegister},
		LengthInCode: 1,
		Doc:          "RETURN Rret, Rtarget - symmetric with CALL",
		Encode:       func(op RealOp) uint16 { return encodeRR8(codeRETURN, op.Reg[0], op.Reg[1]) },
		Execute: func(op RealOp, vm VM) {
			old := vm.PC()
			vm.SetPC(int(vm.Reg(op.Reg[1])))
			vm.SetReg(op.Reg[0], uint16(old+1))
		},
	}
}

func branchMnemonic(suffix string, relative bool) string {
	name := "B" + suffix
	if relative {
		name += "R"
	}
	return name
}
