/*
 * HERA - Debugger mini-language tests.
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
	"bytes"
	"testing"

	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/machine"
)

func regArg(r int32) ast.Arg    { return ast.Arg{Kind: ast.ArgRegister, Reg: r} }
func intArg(v int32) ast.Arg    { return ast.Arg{Kind: ast.ArgInt, Int: v} }
func identArg(s string) ast.Arg { return ast.Arg{Kind: ast.ArgIdent, Ident: s} }
func op(name string, args ...ast.Arg) ast.Op { return ast.Op{Name: name, Args: args} }

func newSession(t *testing.T, program []ast.Op) *Session {
	t.Helper()
	s, err := New(program, machine.Options{Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestEvalArithmetic(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	v, err := Eval(s, "2 + 3 * 4")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != 14 {
		t.Errorf("2 + 3 * 4 = %d, want 14", v)
	}
}

func TestEvalParensAndUnaryMinus(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	v, err := Eval(s, "-(2 + 3) * 2")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != -10 {
		t.Errorf("-(2+3)*2 = %d, want -10", v)
	}
}

func TestEvalRegisterAndAlias(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	s.VM.SetReg(1, 7)
	v, err := Eval(s, "R1 + 1")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != 8 {
		t.Errorf("R1 + 1 = %d, want 8", v)
	}
	v, err = Eval(s, "SP")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != int32(s.VM.SP()) {
		t.Errorf("SP = %d, want %d", v, s.VM.SP())
	}
}

func TestEvalMemoryDeref(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	s.VM.SetMem(0x100, 42)
	v, err := Eval(s, "@0x100")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != 42 {
		t.Errorf("@0x100 = %d, want 42", v)
	}
}

func TestEvalDataLabelSymbol(t *testing.T) {
	program := []ast.Op{
		op("DLABEL", identArg("buf")),
		op("INTEGER", intArg(99)),
		op("HALT"),
	}
	s := newSession(t, program)
	v, err := Eval(s, "buf")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v != 99 {
		t.Errorf("buf = %d, want 99 (the data word stored there)", v)
	}
}

func TestEvalUndefinedNameIsError(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if _, err := Eval(s, "nosuch"); err == nil {
		t.Fatalf("expected an error for an undefined name")
	}
}

func TestEvalDivisionByZeroIsError(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if _, err := Eval(s, "1 / 0"); err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
}

func TestAssignToRegister(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if err := AssignTo(s, "R2", 55); err != nil {
		t.Fatalf("AssignTo: %v", err)
	}
	if s.VM.Reg(2) != 55 {
		t.Errorf("R2 = %d, want 55", s.VM.Reg(2))
	}
}

func TestAssignToMemory(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if err := AssignTo(s, "@0x200", 7); err != nil {
		t.Fatalf("AssignTo: %v", err)
	}
	if s.VM.Mem(0x200) != 7 {
		t.Errorf("mem[0x200] = %d, want 7", s.VM.Mem(0x200))
	}
}

func TestAssignToRegisterAlias(t *testing.T) {
	s := newSession(t, []ast.Op{op("HALT")})
	if err := AssignTo(s, "fp", 0x55); err != nil {
		t.Fatalf("AssignTo: %v", err)
	}
	if s.VM.Reg(14) != 0x55 {
		t.Errorf("R14 (FP) = 0x%X, want 0x55", s.VM.Reg(14))
	}
}
