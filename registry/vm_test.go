/*
 * HERA - A minimal registry.VM fake for exercising Descriptor.Execute in
 * isolation, without depending on package machine (which itself depends
 * on registry).
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

import (
	"io"

	"github.com/haverford-cs/hera/messages"
)

type testVM struct {
	regs                       [16]uint16
	mem                        [65536]uint16
	pc                         int
	sign, zero, overflow, carry bool
	halted                     bool
	errMsg                     string
}

func newTestVM() *testVM { return &testVM{} }

func (v *testVM) Reg(n int) uint16      { return v.regs[n] }
func (v *testVM) SetReg(n int, x uint16) {
	if n != 0 {
		v.regs[n] = x
	}
}
func (v *testVM) Mem(addr uint16) uint16       { return v.mem[addr] }
func (v *testVM) SetMem(addr uint16, x uint16) { v.mem[addr] = x }
func (v *testVM) PC() int                      { return v.pc }
func (v *testVM) SetPC(pc int)                 { v.pc = pc }
func (v *testVM) GetFlags() (bool, bool, bool, bool) {
	return v.sign, v.zero, v.overflow, v.carry
}
func (v *testVM) SetFlags(s, z, o, c bool) { v.sign, v.zero, v.overflow, v.carry = s, z, o, c }
func (v *testVM) Halt()                    { v.halted = true }
func (v *testVM) SP() uint16               { return v.regs[15] }
func (v *testVM) SetSP(x uint16)           { v.regs[15] = x }
func (v *testVM) RuntimeErrorf(format string, args ...any) {
	v.errMsg = format
}
func (v *testVM) Loc() messages.Location { return messages.Location{} }
func (v *testVM) Output() io.Writer      { return io.Discard }
