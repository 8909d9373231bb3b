/*
 * HERA - Source loader: include resolution, conditional compilation,
 * tokenization.
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

// Package lexer reads a root HERA source file, resolves #include
// directives relative to the including file, honors #ifdef/#ifndef/
// #else/#endif conditional blocks, and emits a flat token stream.
package lexer

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/haverford-cs/hera/messages"
	"github.com/haverford-cs/hera/token"
)

// predefined is the fixed predefined-symbol set honored by #ifdef/#ifndef.
var predefined = map[string]bool{
	"HERA_PY": true,
}

// registerNames maps every accepted register spelling (numeric and
// aliased) to its register number.
var registerNames = map[string]int32{
	"R0": 0, "R1": 1, "R2": 2, "R3": 3, "R4": 4, "R5": 5, "R6": 6, "R7": 7,
	"R8": 8, "R9": 9, "R10": 10, "R11": 11, "R12": 12, "R13": 13, "R14": 14, "R15": 15,
	"PC_ret": 13, "FP_alt": 14, "SP": 15, "Rt": 11,
	"PC": 13, "FP": 14,
}

// Lexer walks an include graph and produces tokens for the parser.
type Lexer struct {
	msgs    messages.Bag
	visited map[string]bool // circular-include detection, by absolute path
	tokens  []token.Token
}

// New creates an empty Lexer.
func New() *Lexer {
	return &Lexer{visited: make(map[string]bool)}
}

// Lex reads path as the root file and returns the flattened token stream.
func Lex(path string) ([]token.Token, messages.Bag) {
	l := New()
	l.lexFile(path, messages.Location{})
	l.tokens = append(l.tokens, token.Token{Kind: token.EOF})
	return l.tokens, l.msgs
}

type condState struct {
	taking   bool // are we currently emitting tokens
	sawElse  bool
	anyTaken bool // did any branch of this if/else already take
}

func (l *Lexer) lexFile(path string, includeLoc messages.Location) {
	abs, err := filepath.Abs(path)
	if err != nil {
		l.msgs.Err(includeLoc, "cannot resolve path %q: %v", path, err)
		return
	}
	if l.visited[abs] {
		l.msgs.Err(includeLoc, "circular include of %q", path)
		return
	}
	l.visited[abs] = true
	defer delete(l.visited, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		l.msgs.Err(includeLoc, "cannot open %q: %v", path, err)
		return
	}
	for i, b := range data {
		if b > 0x7f {
			l.msgs.Err(messages.Location{File: path, Line: 1, Column: i + 1}, "non-ASCII byte 0x%02x", b)
			return
		}
	}

	dir := filepath.Dir(path)
	src := string(data)
	var stack []condState
	taking := func() bool {
		for _, c := range stack {
			if !c.taking {
				return false
			}
		}
		return true
	}

	line, col := 1, 1
	i := 0
	advance := func(n int) {
		for j := 0; j < n; j++ {
			if i+j < len(src) && src[i+j] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += n
	}
	loc := func() messages.Location { return messages.Location{File: path, Line: line, Column: col} }

	for i < len(src) {
		c := src[i]

		// Line comment.
		if c == '/' && i+1 < len(src) && src[i+1] == '/' {
			for i < len(src) && src[i] != '\n' {
				advance(1)
			}
			continue
		}
		// Block comment.
		if c == '/' && i+1 < len(src) && src[i+1] == '*' {
			start := loc()
			advance(2)
			closed := false
			for i < len(src) {
				if src[i] == '*' && i+1 < len(src) && src[i+1] == '/' {
					advance(2)
					closed = true
					break
				}
				advance(1)
			}
			if !closed {
				l.msgs.Err(start, "unterminated block comment")
				return
			}
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			advance(1)
			continue
		}
		// Preprocessor directives.
		if c == '#' {
			start := loc()
			j := i + 1
			for j < len(src) && isIdentByte(src[j], false) {
				j++
			}
			directive := src[i+1 : j]
			advance(j - i)
			for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
				advance(1)
			}
			switch directive {
			case "include":
				if !taking() {
					skipLine(src, &i, advance)
					continue
				}
				if i >= len(src) || src[i] != '"' {
					l.msgs.Err(start, "#include expects a quoted path")
					skipLine(src, &i, advance)
					continue
				}
				advance(1)
				nameStart := i
				for i < len(src) && src[i] != '"' && src[i] != '\n' {
					advance(1)
				}
				if i >= len(src) || src[i] != '"' {
					l.msgs.Err(start, "unterminated #include path")
					continue
				}
				incName := src[nameStart:i]
				advance(1)
				skipLine(src, &i, advance)
				incPath := filepath.Join(dir, incName)
				l.lexFile(incPath, start)
				continue
			case "ifdef", "ifndef":
				sym := scanIdent(src, &i, advance)
				have := predefined[sym]
				if directive == "ifndef" {
					have = !have
				}
				stack = append(stack, condState{taking: have, anyTaken: have})
				skipLine(src, &i, advance)
				continue
			case "else":
				if len(stack) == 0 {
					l.msgs.Err(start, "#else without matching #ifdef/#ifndef")
				} else {
					top := &stack[len(stack)-1]
					if top.sawElse {
						l.msgs.Err(start, "duplicate #else")
					}
					top.sawElse = true
					top.taking = !top.anyTaken
					top.anyTaken = top.anyTaken || top.taking
				}
				skipLine(src, &i, advance)
				continue
			case "endif":
				if len(stack) == 0 {
					l.msgs.Err(start, "#endif without matching #ifdef/#ifndef")
				} else {
					stack = stack[:len(stack)-1]
				}
				skipLine(src, &i, advance)
				continue
			default:
				l.msgs.Err(start, "unknown directive #%s", directive)
				skipLine(src, &i, advance)
				continue
			}
		}
		if !taking() {
			advance(1)
			continue
		}
		switch {
		case c == '(':
			l.emit(token.Token{Kind: token.LParen, Text: "(", Loc: loc()})
			advance(1)
		case c == ')':
			l.emit(token.Token{Kind: token.RParen, Text: ")", Loc: loc()})
			advance(1)
		case c == ',':
			l.emit(token.Token{Kind: token.Comma, Text: ",", Loc: loc()})
			advance(1)
		case c == ';':
			l.emit(token.Token{Kind: token.Semi, Text: ";", Loc: loc()})
			advance(1)
		case c == '"':
			start := loc()
			advance(1)
			val, ok := l.scanEscapedLiteral(src, &i, advance, '"')
			if !ok {
				l.msgs.Err(start, "unterminated or invalid string literal")
				return
			}
			l.emit(token.Token{Kind: token.String, Text: val, Loc: start})
		case c == '\'':
			start := loc()
			advance(1)
			val, ok := l.scanEscapedLiteral(src, &i, advance, '\'')
			if !ok || len(val) != 1 {
				l.msgs.Err(start, "invalid character literal")
				return
			}
			l.emit(token.Token{Kind: token.Char, Text: val, Int: int32(val[0]), Loc: start})
		case c == '-' && i+1 < len(src) && isDigit(src[i+1]):
			start := loc()
			advance(1)
			num, octal := scanNumber(src, &i, advance)
			l.emit(token.Token{Kind: token.Int, Text: "-" + num.text, Int: -num.val, Octal: octal, Loc: start})
		case isDigit(c):
			start := loc()
			num, octal := scanNumber(src, &i, advance)
			l.emit(token.Token{Kind: token.Int, Text: num.text, Int: num.val, Octal: octal, Loc: start})
		case isIdentByte(c, true):
			start := loc()
			name := scanIdent(src, &i, advance)
			if reg, ok := registerNames[name]; ok {
				l.emit(token.Token{Kind: token.Register, Text: name, Int: reg, Loc: start})
			} else {
				l.emit(token.Token{Kind: token.Ident, Text: name, Loc: start})
			}
		default:
			l.msgs.Err(loc(), "unexpected character %q", c)
			advance(1)
		}
	}
	if len(stack) != 0 {
		l.msgs.Err(loc(), "unterminated #ifdef/#ifndef at end of file")
	}
}

func (l *Lexer) emit(t token.Token) {
	l.tokens = append(l.tokens, t)
}

func skipLine(src string, i *int, advance func(int)) {
	for *i < len(src) && src[*i] != '\n' {
		advance(1)
	}
}

func scanIdent(src string, i *int, advance func(int)) string {
	start := *i
	for *i < len(src) && isIdentByte(src[*i], *i == start) {
		advance(1)
	}
	return src[start:*i]
}

func isIdentByte(b byte, first bool) bool {
	if b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') {
		return true
	}
	if !first && b >= '0' && b <= '9' {
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

type numLit struct {
	text string
	val  int32
}

func scanNumber(src string, i *int, advance func(int)) (numLit, bool) {
	start := *i
	if src[*i] == '0' && *i+1 < len(src) && (src[*i+1] == 'x' || src[*i+1] == 'X') {
		advance(2)
		hstart := *i
		for *i < len(src) && isHex(src[*i]) {
			advance(1)
		}
		text := src[start:*i]
		v, _ := strconv.ParseInt(src[hstart:*i], 16, 64)
		return numLit{text, int32(v)}, false
	}
	octal := src[*i] == '0'
	for *i < len(src) && isDigit(src[*i]) {
		advance(1)
	}
	text := src[start:*i]
	base := 10
	digits := text
	if octal && len(text) > 1 {
		base = 8
		digits = text[1:]
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		v = 0
	}
	return numLit{text, int32(v)}, octal && len(text) > 1
}

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanEscapedLiteral reads bytes up to the closing quote, interpreting the
// escape set \n \t \r \\ \' \" \0 plus \xHH and \oNNN. A raw newline inside
// the literal is invalid.
func (l *Lexer) scanEscapedLiteral(src string, i *int, advance func(int), quote byte) (string, bool) {
	var b strings.Builder
	for *i < len(src) {
		c := src[*i]
		if c == quote {
			advance(1)
			return b.String(), true
		}
		if c == '\n' {
			return "", false
		}
		if c == '\\' {
			advance(1)
			if *i >= len(src) {
				return "", false
			}
			e := src[*i]
			switch e {
			case 'n':
				b.WriteByte('\n')
				advance(1)
			case 't':
				b.WriteByte('\t')
				advance(1)
			case 'r':
				b.WriteByte('\r')
				advance(1)
			case '\\':
				b.WriteByte('\\')
				advance(1)
			case '\'':
				b.WriteByte('\'')
				advance(1)
			case '"':
				b.WriteByte('"')
				advance(1)
			case '0':
				b.WriteByte(0)
				advance(1)
			case 'x':
				advance(1)
				if *i+1 >= len(src) || !isHex(src[*i]) || !isHex(src[*i+1]) {
					return "", false
				}
				v, _ := strconv.ParseInt(src[*i:*i+2], 16, 16)
				b.WriteByte(byte(v))
				advance(2)
			case 'o':
				advance(1)
				start := *i
				for *i < len(src) && src[*i] >= '0' && src[*i] <= '7' {
					advance(1)
				}
				if *i == start {
					return "", false
				}
				v, _ := strconv.ParseInt(src[start:*i], 8, 16)
				b.WriteByte(byte(v))
			default:
				return "", false
			}
			continue
		}
		b.WriteByte(c)
		advance(1)
	}
	return "", false
}
