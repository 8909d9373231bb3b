/*
 * HERA - Parser: token stream to raw operation list.
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

// Package parser consumes the lexer's token stream and produces a flat
// list of raw operation invocations: Op(name, args, loc). HERA source
// reads like function calls: SET(R1, 42), LABEL(top), CALL(FP_alt, R1).
package parser

import (
	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/messages"
	"github.com/haverford-cs/hera/token"
)

type parser struct {
	toks []token.Token
	pos  int
	msgs messages.Bag
}

// Parse turns a token stream into raw operations plus any lex/parse
// diagnostics recorded so far (the caller should merge lexer and parser
// message bags).
func Parse(toks []token.Token) ([]ast.Op, messages.Bag) {
	p := &parser{toks: toks}
	var ops []ast.Op
	for p.cur().Kind != token.EOF {
		if op, ok := p.parseOp(); ok {
			ops = append(ops, op)
		} else {
			p.resync()
		}
	}
	return ops, p.msgs
}

func (p *parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// resync skips to the next ')' or EOF so a single malformed operation
// does not cascade into spurious downstream errors.
func (p *parser) resync() {
	for p.cur().Kind != token.EOF && p.cur().Kind != token.RParen {
		p.advance()
	}
	if p.cur().Kind == token.RParen {
		p.advance()
	}
}

func (p *parser) parseOp() (ast.Op, bool) {
	name := p.cur()
	if name.Kind != token.Ident {
		p.msgs.Err(name.Loc, "expected an operation name, found %s %q", name.Kind, name.Text)
		return ast.Op{}, false
	}
	p.advance()
	if p.cur().Kind != token.LParen {
		p.msgs.Err(p.cur().Loc, "expected '(' after %s", name.Text)
		return ast.Op{}, false
	}
	p.advance()

	var args []ast.Arg
	if p.cur().Kind != token.RParen {
		for {
			arg, ok := p.parseArg()
			if !ok {
				return ast.Op{}, false
			}
			args = append(args, arg)
			if p.cur().Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur().Kind != token.RParen {
		p.msgs.Err(p.cur().Loc, "expected ')' to close %s(...)", name.Text)
		return ast.Op{}, false
	}
	p.advance()
	if p.cur().Kind == token.Semi {
		p.advance()
	}
	return ast.Op{Name: name.Text, Args: args, Loc: name.Loc}, true
}

func (p *parser) parseArg() (ast.Arg, bool) {
	t := p.cur()
	switch t.Kind {
	case token.Register:
		p.advance()
		return ast.Arg{Kind: ast.ArgRegister, Reg: t.Int, Loc: t.Loc}, true
	case token.Int:
		p.advance()
		return ast.Arg{Kind: ast.ArgInt, Int: t.Int, Octal: t.Octal, Loc: t.Loc}, true
	case token.Char:
		p.advance()
		return ast.Arg{Kind: ast.ArgInt, Int: t.Int, Loc: t.Loc}, true
	case token.String:
		p.advance()
		return ast.Arg{Kind: ast.ArgString, Str: t.Text, Loc: t.Loc}, true
	case token.Ident:
		p.advance()
		return ast.Arg{Kind: ast.ArgIdent, Ident: t.Text, Loc: t.Loc}, true
	default:
		p.msgs.Err(t.Loc, "unexpected token %s %q in argument list", t.Kind, t.Text)
		return ast.Arg{}, false
	}
}
