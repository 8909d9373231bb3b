/*
 * HERA - Memory access operations: LOAD and STORE.
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

func registerMemOps(t Table) {
	t["LOAD"] = &Descriptor{
		Name:         "LOAD",
		ParamKinds:   []Kind{KindRegister, KindI4, KindRegister},
		LengthInCode: 1,
		Doc:          "LOAD Rd, off, Ra - Rd <- M[Ra + off], off in [-8, 7]",
		Encode:       func(op RealOp) uint16 { return encodeMemRI(codeLOAD, op) },
		Execute: func(op RealOp, vm VM) {
			addr := vm.Reg(op.Reg[1]) + uint16(op.Imm)
			vm.SetReg(op.Reg[0], vm.Mem(addr))
		},
	}
	t["STORE"] = &Descriptor{
		Name:         "STORE",
		ParamKinds:   []Kind{KindRegister, KindI4, KindRegister},
		LengthInCode: 1,
		Doc:          "STORE Rs, off, Ra - M[Ra + off] <- Rs, off in [-8, 7]",
		Encode:       func(op RealOp) uint16 { return encodeMemRI(codeSTORE, op) },
		Execute: func(op RealOp, vm VM) {
			addr := vm.Reg(op.Reg[1]) + uint16(op.Imm)
			vm.SetMem(addr, vm.Reg(op.Reg[0]))
		},
	}
}
