/*
 * HERA - Lexical token kinds.
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

// Package token defines the lexical token kinds produced by the source
// loader (package lexer) and consumed by the parser.
package token

import "github.com/haverford-cs/hera/messages"

// Kind identifies a lexical category.
type Kind int

const (
	EOF Kind = iota
	Ident
	Register
	Int
	Char
	String
	LParen
	RParen
	Comma
	Semi
)

var kindNames = map[Kind]string{
	EOF:      "EOF",
	Ident:    "identifier",
	Register: "register",
	Int:      "integer",
	Char:     "character",
	String:   "string",
	LParen:   "(",
	RParen:   ")",
	Comma:    ",",
	Semi:     ";",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Token is one lexeme with its source location.
type Token struct {
	Kind  Kind
	Text  string // original lexeme
	Int   int32  // decoded value for Int/Char/Register
	Octal bool   // Int was written with a leading 0 (octal) literal
	Loc   messages.Location
}
