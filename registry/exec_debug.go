/*
 * HERA - Debug pseudo-instructions: print_reg, print, __eval,
 * __dump_state. These assemble to zero words of machine code but still
 * occupy one slot in the resolved op stream, so pc_index tracks it like
 * any other single-slot op; they execute only when the VM is not run
 * with --no-debug-ops.
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

import "fmt"

func registerDebugOps(t Table) {
	t["print_reg"] = &Descriptor{
		Name:         "print_reg",
		ParamKinds:   []Kind{KindRegister},
		IsDebug:      true,
		LengthInCode: 1,
		Doc:          "print_reg(Rn) - print a register's current value",
		Execute: func(op RealOp, vm VM) {
			fmt.Fprintf(vm.Output(), "R%d = 0x%04X\n", op.Reg[0], vm.Reg(op.Reg[0]))
		},
	}
	t["print"] = &Descriptor{
		Name:         "print",
		ParamKinds:   []Kind{KindString},
		IsDebug:      true,
		LengthInCode: 1,
		Doc:          "print(\"text\") - print a literal string",
		Execute: func(op RealOp, vm VM) {
			fmt.Fprint(vm.Output(), op.Str)
		},
	}
	t["__eval"] = &Descriptor{
		Name:         "__eval",
		ParamKinds:   []Kind{KindString},
		IsDebug:      true,
		LengthInCode: 1,
		Doc:          "__eval(\"expr\") - print the expression text as written; it is not evaluated",
		Execute: func(op RealOp, vm VM) {
			fmt.Fprintf(vm.Output(), "%s\n", op.Str)
		},
	}
	t["__dump_state"] = &Descriptor{
		Name:         "__dump_state",
		IsDebug:      true,
		LengthInCode: 1,
		Doc:          "__dump_state() - print every register, flag, and the pc",
		Execute: func(op RealOp, vm VM) {
			w := vm.Output()
			for r := 0; r < 16; r++ {
				fmt.Fprintf(w, "R%-2d = 0x%04X  ", r, vm.Reg(r))
				if r%4 == 3 {
					fmt.Fprintln(w)
				}
			}
			s, z, v, c := vm.GetFlags()
			fmt.Fprintf(w, "PC=%d sign=%v zero=%v overflow=%v carry=%v\n", vm.PC(), s, z, v, c)
		},
	}
}
