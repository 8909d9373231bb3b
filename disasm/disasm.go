/*
 * HERA - Disassembler: inverts the assembler's encoding word by word.
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

// Package disasm renders 16-bit words back to HERA mnemonic text,
// word by word - the inverse of package asm. A word that does not
// decode to any known encoding is rendered as OPCODE(0x....), matching
// how the assembler's own OPCODE escape hatch round-trips.
package disasm

import (
	"fmt"
	"strings"

	"github.com/haverford-cs/hera/registry"
)

// One renders a single word as one line of HERA mnemonic text.
func One(word uint16) string {
	op, ok := registry.DecodeWord(word)
	if !ok {
		return fmt.Sprintf("OPCODE(0x%04X)", word)
	}
	return render(op)
}

// Listing renders an entire word stream, one instruction per line
// prefixed with its resolved pc index.
func Listing(words []uint16) string {
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "%04d: %s\n", i, One(w))
	}
	return b.String()
}

func render(op registry.RealOp) string {
	var args []string
	regSlot := 0
	for _, k := range op.Desc.ParamKinds {
		switch k {
		case registry.KindRegister:
			args = append(args, fmt.Sprintf("R%d", op.Reg[regSlot]))
			regSlot++
		case registry.KindLabel:
			args = append(args, fmt.Sprintf("%+d", op.Imm))
		case registry.KindString:
			args = append(args, fmt.Sprintf("%q", op.Str))
		default:
			args = append(args, fmt.Sprintf("%d", op.Imm))
		}
	}
	return fmt.Sprintf("%s(%s)", op.Desc.Name, strings.Join(args, ", "))
}
