/*
 * HERA - Debugger mini-language: the expression grammar `print` and
 * `assign` evaluate.
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
	"fmt"
	"strconv"
	"strings"

	"github.com/haverford-cs/hera/symtab"
)

// Grammar (normal +/- then */÷ precedence, unary minus binds tightest):
//
//	expr   ::= term (('+' | '-') term)*
//	term   ::= unary (('*' | '/') unary)*
//	unary  ::= '-' unary | atom
//	atom   ::= integer | register | symbol | '@' atom | '(' expr ')'

type exprScanner struct {
	toks []string
	pos  int
}

// Eval evaluates a mini-language expression against the session's
// current VM/symbol state.
func Eval(s *Session, expr string) (int32, error) {
	toks, err := tokenizeExpr(expr)
	if err != nil {
		return 0, err
	}
	sc := &exprScanner{toks: toks}
	v, err := sc.parseExpr(s)
	if err != nil {
		return 0, err
	}
	if sc.pos != len(sc.toks) {
		return 0, fmt.Errorf("unexpected trailing input near %q", strings.Join(sc.toks[sc.pos:], " "))
	}
	return v, nil
}

func (sc *exprScanner) cur() string {
	if sc.pos >= len(sc.toks) {
		return ""
	}
	return sc.toks[sc.pos]
}

func (sc *exprScanner) advance() string {
	t := sc.cur()
	sc.pos++
	return t
}

func (sc *exprScanner) parseExpr(s *Session) (int32, error) {
	v, err := sc.parseTerm(s)
	if err != nil {
		return 0, err
	}
	for sc.cur() == "+" || sc.cur() == "-" {
		op := sc.advance()
		rhs, err := sc.parseTerm(s)
		if err != nil {
			return 0, err
		}
		if op == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

func (sc *exprScanner) parseTerm(s *Session) (int32, error) {
	v, err := sc.parseUnary(s)
	if err != nil {
		return 0, err
	}
	for sc.cur() == "*" || sc.cur() == "/" {
		op := sc.advance()
		rhs, err := sc.parseUnary(s)
		if err != nil {
			return 0, err
		}
		if op == "*" {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= rhs
		}
	}
	return v, nil
}

func (sc *exprScanner) parseUnary(s *Session) (int32, error) {
	if sc.cur() == "-" {
		sc.advance()
		v, err := sc.parseUnary(s)
		return -v, err
	}
	return sc.parseAtom(s)
}

func (sc *exprScanner) parseAtom(s *Session) (int32, error) {
	t := sc.advance()
	switch {
	case t == "":
		return 0, fmt.Errorf("unexpected end of expression")
	case t == "(":
		v, err := sc.parseExpr(s)
		if err != nil {
			return 0, err
		}
		if sc.advance() != ")" {
			return 0, fmt.Errorf("expected ')'")
		}
		return v, nil
	case t == "@":
		addr, err := sc.parseAtom(s)
		if err != nil {
			return 0, err
		}
		return int32(s.VM.Mem(uint16(addr))), nil
	case isDigit(t[0]):
		return parseLiteral(t)
	default:
		return resolveName(s, t)
	}
}

func resolveName(s *Session, name string) (int32, error) {
	if n, ok := registerAliases[strings.ToUpper(name)]; ok {
		return int32(s.VM.Reg(n)), nil
	}
	if len(name) >= 2 && (name[0] == 'R' || name[0] == 'r') && isDigit(name[1]) {
		n, err := strconv.Atoi(name[1:])
		if err == nil && n >= 0 && n <= 15 {
			return int32(s.VM.Reg(n)), nil
		}
	}
	if sym, ok := s.Symbols.Lookup(name); ok {
		if sym.Variant == symtab.VariantDataLabel {
			return int32(s.VM.Mem(uint16(sym.Value))), nil
		}
		return int32(sym.Value), nil
	}
	return 0, fmt.Errorf("undefined name %q", name)
}

var registerAliases = map[string]int{
	"PC_RET": 13, "FP_ALT": 14, "SP": 15, "RT": 11, "PC": 13, "FP": 14,
}

func parseLiteral(t string) (int32, error) {
	switch {
	case strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X"):
		v, err := strconv.ParseInt(t[2:], 16, 32)
		return int32(v), err
	case len(t) > 1 && t[0] == '0':
		v, err := strconv.ParseInt(t[1:], 8, 32)
		return int32(v), err
	default:
		v, err := strconv.ParseInt(t, 10, 32)
		return int32(v), err
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// tokenizeExpr splits expr into single-character operators/parens and
// maximal runs of identifier/number characters.
func tokenizeExpr(expr string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case strings.ContainsRune("+-*/()@", rune(c)):
			toks = append(toks, string(c))
			i++
		case isDigit(c) || c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			start := i
			for i < len(expr) && (isDigit(expr[i]) || expr[i] == '_' || (expr[i] >= 'A' && expr[i] <= 'Z') || (expr[i] >= 'a' && expr[i] <= 'z') || (expr[i] == 'x' && i == start+1)) {
				i++
			}
			toks = append(toks, expr[start:i])
		default:
			return nil, fmt.Errorf("unexpected character %q in expression", c)
		}
	}
	return toks, nil
}

// AssignTo implements the `assign` command's left-hand side: a register
// name, a memory cell ("@addr"), or a plain data-label symbol.
func AssignTo(s *Session, lhs string, v int32) error {
	lhs = strings.TrimSpace(lhs)
	if strings.HasPrefix(lhs, "@") {
		addr, err := Eval(s, lhs[1:])
		if err != nil {
			return err
		}
		s.VM.SetMem(uint16(addr), uint16(v))
		return nil
	}
	if n, ok := registerAliases[strings.ToUpper(lhs)]; ok {
		s.VM.SetReg(n, uint16(v))
		return nil
	}
	if len(lhs) >= 2 && (lhs[0] == 'R' || lhs[0] == 'r') && isDigit(lhs[1]) {
		n, err := strconv.Atoi(lhs[1:])
		if err == nil && n >= 0 && n <= 15 {
			s.VM.SetReg(n, uint16(v))
			return nil
		}
	}
	if sym, ok := s.Symbols.Lookup(lhs); ok && sym.Variant == symtab.VariantDataLabel {
		s.VM.SetMem(uint16(sym.Value), uint16(v))
		return nil
	}
	return fmt.Errorf("cannot assign to %q", lhs)
}
