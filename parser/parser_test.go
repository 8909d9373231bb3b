/*
 * HERA - Parser tests.
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

package parser

import (
	"testing"

	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/token"
)

func tok(kind token.Kind, text string) token.Token { return token.Token{Kind: kind, Text: text} }

func TestParseBasicOp(t *testing.T) {
	toks := []token.Token{
		tok(token.Ident, "ADD"),
		tok(token.LParen, "("),
		{Kind: token.Register, Text: "R1", Int: 1},
		tok(token.Comma, ","),
		{Kind: token.Register, Text: "R2", Int: 2},
		tok(token.Comma, ","),
		{Kind: token.Register, Text: "R3", Int: 3},
		tok(token.RParen, ")"),
		{Kind: token.EOF},
	}
	ops, msgs := Parse(toks)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	op := ops[0]
	if op.Name != "ADD" || len(op.Args) != 3 {
		t.Fatalf("op = %+v", op)
	}
	for i, want := range []int32{1, 2, 3} {
		if op.Args[i].Kind != ast.ArgRegister || op.Args[i].Reg != want {
			t.Errorf("arg %d = %+v, want register R%d", i, op.Args[i], want)
		}
	}
}

func TestParseNoArgsOp(t *testing.T) {
	toks := []token.Token{
		tok(token.Ident, "HALT"),
		tok(token.LParen, "("),
		tok(token.RParen, ")"),
		{Kind: token.EOF},
	}
	ops, msgs := Parse(toks)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	if len(ops) != 1 || ops[0].Name != "HALT" || len(ops[0].Args) != 0 {
		t.Fatalf("ops = %+v", ops)
	}
}

func TestParseLabelAndIdentArg(t *testing.T) {
	toks := []token.Token{
		tok(token.Ident, "BR"),
		tok(token.LParen, "("),
		tok(token.Ident, "top"),
		tok(token.RParen, ")"),
		{Kind: token.EOF},
	}
	ops, msgs := Parse(toks)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	if len(ops) != 1 || ops[0].Args[0].Kind != ast.ArgIdent || ops[0].Args[0].Ident != "top" {
		t.Fatalf("ops = %+v", ops)
	}
}

func TestParseMissingCloseParenIsError(t *testing.T) {
	toks := []token.Token{
		tok(token.Ident, "HALT"),
		tok(token.LParen, "("),
		{Kind: token.EOF},
	}
	_, msgs := Parse(toks)
	if !msgs.HasErrors() {
		t.Fatalf("expected a missing ')' error")
	}
}

func TestParseResyncAfterError(t *testing.T) {
	// A stray comma where an op name was expected should not cascade: the
	// parser recovers at the next ')' and continues with the next op.
	toks := []token.Token{
		tok(token.Comma, ","),
		tok(token.RParen, ")"),
		tok(token.Ident, "NOP"),
		tok(token.LParen, "("),
		tok(token.RParen, ")"),
		{Kind: token.EOF},
	}
	ops, msgs := Parse(toks)
	if !msgs.HasErrors() {
		t.Fatalf("expected an error from the leading comma")
	}
	if len(ops) != 1 || ops[0].Name != "NOP" {
		t.Fatalf("expected recovery to parse NOP, got %+v", ops)
	}
}

func TestParseMultipleOps(t *testing.T) {
	toks := []token.Token{
		tok(token.Ident, "NOP"), tok(token.LParen, "("), tok(token.RParen, ")"),
		tok(token.Ident, "HALT"), tok(token.LParen, "("), tok(token.RParen, ")"),
		{Kind: token.EOF},
	}
	ops, msgs := Parse(toks)
	if msgs.HasErrors() {
		t.Fatalf("unexpected errors: %v", msgs.List())
	}
	if len(ops) != 2 || ops[0].Name != "NOP" || ops[1].Name != "HALT" {
		t.Fatalf("ops = %+v", ops)
	}
}
