/*
 * HERA - Raw parse tree produced by the parser.
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

// Package ast defines the raw operation invocation the parser emits:
// a bare (mnemonic, argument list, source location) triple. LABEL is a
// raw op like any other; the checker consumes and removes it.
package ast

import "github.com/haverford-cs/hera/messages"

// ArgKind tags which field of Arg is valid.
type ArgKind int

const (
	ArgRegister ArgKind = iota
	ArgInt
	ArgString
	ArgIdent // label, constant, or data-label reference; resolved by the checker
)

// Arg is one operand of a raw operation.
type Arg struct {
	Kind  ArgKind
	Reg   int32
	Int   int32
	Str   string
	Ident string
	Octal bool // Int came from an octal literal
	Loc   messages.Location
}

// Op is one raw operation invocation: mnemonic plus arguments, exactly as
// written (before label/constant resolution or pseudo-op expansion).
type Op struct {
	Name string
	Args []Arg
	Loc  messages.Location
}
