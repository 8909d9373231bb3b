/*
 * HERA - Command-line option mini-parsers.
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

// Package cliopts hand-parses the two mini-grammars the hera CLI needs
// beyond plain flags: --init=R1=5,R2=10 (register seed list) and
// register/number literals shared with the debugger's mini-language.
//
// Grammar for --init:
//
//	<init>   ::= <seed> *(',' <seed>)
//	<seed>   ::= <reg> '=' <value>
//	<reg>    ::= 'R' <digits> | 'PC_ret' | 'FP_alt' | 'SP' | 'Rt' | 'PC' | 'FP'
//	<value>  ::= ['-'] <digits> | '0x' <hexdigits> | '0' <octdigits>
package cliopts

import (
	"fmt"
	"strconv"
	"strings"
)

var registerNames = map[string]int{
	"PC_RET": 13, "FP_ALT": 14, "SP": 15, "RT": 11, "PC": 13, "FP": 14,
}

// scanner walks one --init value left to right, same shape as the
// teacher's line-oriented option scanner: a string plus a cursor.
type scanner struct {
	line string
	pos  int
}

// ParseInit parses "R1=5,R2=10,SP=0x2000" into a register-number to
// value map, suitable for machine.Options.Init.
func ParseInit(s string) (map[int]uint16, error) {
	out := make(map[int]uint16)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, seed := range strings.Split(s, ",") {
		reg, val, err := parseSeed(seed)
		if err != nil {
			return nil, err
		}
		out[reg] = val
	}
	return out, nil
}

func parseSeed(seed string) (int, uint16, error) {
	sc := &scanner{line: strings.TrimSpace(seed)}
	name := sc.takeWhile(func(r byte) bool { return r != '=' })
	if sc.peek() != '=' {
		return 0, 0, fmt.Errorf("--init: missing '=' in %q", seed)
	}
	sc.advance()
	value := sc.rest()

	reg, err := resolveRegister(name)
	if err != nil {
		return 0, 0, err
	}
	v, err := parseInteger(value)
	if err != nil {
		return 0, 0, fmt.Errorf("--init: %s: %w", name, err)
	}
	return reg, v, nil
}

func resolveRegister(name string) (int, error) {
	upper := strings.ToUpper(name)
	if n, ok := registerNames[upper]; ok {
		return n, nil
	}
	if len(upper) >= 2 && upper[0] == 'R' {
		n, err := strconv.Atoi(upper[1:])
		if err == nil && n >= 0 && n <= 15 {
			return n, nil
		}
	}
	return 0, fmt.Errorf("--init: unknown register %q", name)
}

// parseInteger accepts decimal, 0x-hex, and leading-zero octal, the
// same literal forms the lexer and debugger mini-language accept.
func parseInteger(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var v int64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseInt(s[2:], 16, 32)
	case len(s) > 1 && s[0] == '0':
		v, err = strconv.ParseInt(s[1:], 8, 32)
	default:
		v, err = strconv.ParseInt(s, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	if neg {
		v = -v
	}
	return uint16(v), nil
}

func (sc *scanner) peek() byte {
	if sc.pos >= len(sc.line) {
		return 0
	}
	return sc.line[sc.pos]
}

func (sc *scanner) advance() { sc.pos++ }

func (sc *scanner) rest() string { return sc.line[sc.pos:] }

func (sc *scanner) takeWhile(pred func(byte) bool) string {
	start := sc.pos
	for sc.pos < len(sc.line) && pred(sc.line[sc.pos]) {
		sc.pos++
	}
	return sc.line[start:sc.pos]
}
