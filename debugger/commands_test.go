/*
 * HERA - Debugger command dispatch tests.
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

package debugger

import (
	"strings"
	"testing"

	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/registry"
)

func TestCmdExecuteRunsAdHocOp(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	s.VM.SetReg(2, 2)
	s.VM.SetReg(3, 3)

	quit, out, err := cmdExecute(s, "ADD(R1, R2, R3)")
	if err != nil {
		t.Fatalf("cmdExecute: %v", err)
	}
	if quit {
		t.Fatalf("execute should never end the session")
	}
	if s.VM.Reg(1) != 5 {
		t.Errorf("R1 = %d, want 5", s.VM.Reg(1))
	}
	if !strings.Contains(out, "pc=") {
		t.Errorf("output = %q, want a pc= summary", out)
	}
}

func TestCmdExecuteEmptyIsError(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if _, _, err := cmdExecute(s, "   "); err == nil {
		t.Fatalf("expected an error for an empty snippet")
	}
}

func TestCmdExecuteUnknownOpIsError(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if _, _, err := cmdExecute(s, "NOSUCHOP(R1)"); err == nil {
		t.Fatalf("expected an error for an unknown operation")
	}
}

func TestCmdExecutePushesUndoThroughDispatch(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	s.VM.SetReg(1, 0)

	if _, _, err := Dispatch(s, "execute SETLO(R1, 9)"); err != nil {
		t.Fatalf("Dispatch execute: %v", err)
	}
	if s.VM.Reg(1) == 0 {
		t.Fatalf("execute should have changed R1")
	}
	if !s.Undo() {
		t.Fatalf("expected an undo snapshot pushed by the mutating execute command")
	}
	if s.VM.Reg(1) != 0 {
		t.Errorf("R1 after undo = %d, want 0 (restored)", s.VM.Reg(1))
	}
}

func TestCmdAsmEncodesOp(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	_, out, err := cmdAsm(s, "ADD(R1, R2, R3)")
	if err != nil {
		t.Fatalf("cmdAsm: %v", err)
	}
	want := registry.All["ADD"].Encode(registry.RealOp{Desc: registry.All["ADD"], Reg: [3]int{1, 2, 3}})
	if out != "0x"+hex4(want) {
		t.Errorf("cmdAsm output = %q, want the ADD encoding", out)
	}
}

func TestCmdAsmEmptyIsError(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if _, _, err := cmdAsm(s, ""); err == nil {
		t.Fatalf("expected an error for an empty snippet")
	}
}

func hex4(w uint16) string {
	const digits = "0123456789ABCDEF"
	b := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		b[i] = digits[w&0xf]
		w >>= 4
	}
	return string(b)
}
