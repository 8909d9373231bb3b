/*
 * HERA - Lexer tests.
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

package lexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/haverford-cs/hera/token"
)

func writeTemp(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexSimpleProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "main.hera", `SET(R1, 5)
ADD(R2, R1, R1)
HALT()`)

	toks, msgs := Lex(path)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	want := []token.Kind{
		token.Ident, token.LParen, token.Register, token.Comma, token.Int, token.RParen,
		token.Ident, token.LParen, token.Register, token.Comma, token.Register, token.Comma, token.Register, token.RParen,
		token.Ident, token.LParen, token.RParen,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexRegisterAliases(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "main.hera", "MOVE(SP, FP_alt)")
	toks, msgs := Lex(path)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	var regs []int32
	for _, tk := range toks {
		if tk.Kind == token.Register {
			regs = append(regs, tk.Int)
		}
	}
	if len(regs) != 2 || regs[0] != 15 || regs[1] != 14 {
		t.Errorf("aliased registers = %v, want [15 14]", regs)
	}
}

func TestLexIncludes(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "inc.hera", "NOP()")
	path := writeTemp(t, dir, "main.hera", `#include "inc.hera"
HALT()`)

	toks, msgs := Lex(path)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	var idents []string
	for _, tk := range toks {
		if tk.Kind == token.Ident {
			idents = append(idents, tk.Text)
		}
	}
	if len(idents) != 2 || idents[0] != "NOP" || idents[1] != "HALT" {
		t.Errorf("idents = %v, want [NOP HALT]", idents)
	}
}

func TestLexCircularIncludeIsError(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.hera", `#include "b.hera"`)
	path := writeTemp(t, dir, "b.hera", `#include "a.hera"`)

	_, msgs := Lex(path)
	if !msgs.HasErrors() {
		t.Fatalf("expected a circular-include error")
	}
}

func TestLexIfdef(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "main.hera", `#ifdef HERA_PY
LOAD(R1, 0, R2)
#else
STORE(R1, 0, R2)
#endif`)
	toks, msgs := Lex(path)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	if len(toks) < 1 || toks[0].Text != "LOAD" {
		t.Fatalf("expected LOAD branch taken (HERA_PY is predefined), got %+v", toks[0])
	}
}

func TestLexOctalAndHexLiterals(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "main.hera", `SETLO(R1, 017)
SETHI(R1, 0x2A)`)
	toks, msgs := Lex(path)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	var ints []token.Token
	for _, tk := range toks {
		if tk.Kind == token.Int {
			ints = append(ints, tk)
		}
	}
	if len(ints) != 2 {
		t.Fatalf("got %d int tokens, want 2", len(ints))
	}
	if !ints[0].Octal || ints[0].Int != 15 {
		t.Errorf("017 = %+v, want octal 15", ints[0])
	}
	if ints[1].Octal || ints[1].Int != 0x2A {
		t.Errorf("0x2A = %+v, want hex 42", ints[1])
	}
}

func TestLexStringEscapes(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "main.hera", `print("a\tb\n")`)
	toks, msgs := Lex(path)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	var str string
	for _, tk := range toks {
		if tk.Kind == token.String {
			str = tk.Text
		}
	}
	if str != "a\tb\n" {
		t.Errorf("string literal = %q, want %q", str, "a\tb\n")
	}
}

func TestLexNonASCIIByteIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.hera")
	if err := os.WriteFile(path, []byte("NOP()\xff"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, msgs := Lex(path)
	if !msgs.HasErrors() {
		t.Fatalf("expected a non-ASCII-byte error")
	}
}
