/*
 * HERA - HALT, NOP, SWI, RTI, and the raw OPCODE escape hatch.
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

func registerMiscOps(t Table) {
	t["HALT"] = &Descriptor{
		Name:         "HALT",
		LengthInCode: 1,
		Doc:          "HALT - stop execution",
		Encode:       func(op RealOp) uint16 { return encodeNone(codeHALT) },
		Execute:      func(op RealOp, vm VM) { vm.Halt() },
	}
	t["NOP"] = &Descriptor{
		Name:         "NOP",
		LengthInCode: 1,
		Doc:          "NOP - do nothing",
		Encode:       func(op RealOp) uint16 { return encodeNone(codeNOP) },
		Execute:      func(op RealOp, vm VM) {},
	}
	t["SWI"] = &Descriptor{
		Name:         "SWI",
		ParamKinds:   []Kind{KindU8},
		LengthInCode: 1,
		Doc:          "SWI n - software interrupt (unimplemented: runtime error)",
		Encode:       func(op RealOp) uint16 { return encodeImm8(codeSWI, op.Imm) },
		Execute: func(op RealOp, vm VM) {
			vm.RuntimeErrorf("SWI is not implemented by this machine")
		},
	}
	t["RTI"] = &Descriptor{
		Name:         "RTI",
		LengthInCode: 1,
		Doc:          "RTI - return from interrupt (unimplemented: runtime error)",
		Encode:       func(op RealOp) uint16 { return encodeNone(codeRTI) },
		Execute: func(op RealOp, vm VM) {
			vm.RuntimeErrorf("RTI is not implemented by this machine")
		},
	}
	// OPCODE carries a raw already-encoded word. The assembler treats it
	// opaquely: Encode just returns the literal value. The VM instead
	// decodes it at execution time and, if it happens to match a real
	// instruction's encoding, executes that instruction; an undecodable
	// word is a runtime error. This is the 1.0.7 fix: opaque at assembly,
	// execute-if-decodable at the VM.
	t["OPCODE"] = &Descriptor{
		Name:         "OPCODE",
		ParamKinds:   []Kind{KindU16},
		LengthInCode: 1,
		Doc:          "OPCODE word - emit a raw 16-bit word; executed if it decodes to a real instruction",
		Encode:       func(op RealOp) uint16 { return uint16(op.Imm) },
		Execute: func(op RealOp, vm VM) {
			decoded, ok := DecodeWord(uint16(op.Imm))
			if !ok {
				vm.RuntimeErrorf("illegal instruction 0x%04X", uint16(op.Imm))
				return
			}
			decoded.Desc.Execute(decoded, vm)
		},
	}
}
