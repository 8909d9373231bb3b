/*
 * HERA - Disassembler tests.
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

package disasm

import (
	"strings"
	"testing"

	"github.com/haverford-cs/hera/registry"
)

func TestOneRendersKnownWord(t *testing.T) {
	op := registry.RealOp{Desc: registry.All["ADD"], Reg: [3]int{1, 2, 3}}
	word := op.Desc.Encode(op)
	text := One(word)
	if text != "ADD(R1, R2, R3)" {
		t.Errorf("One(ADD R1,R2,R3) = %q", text)
	}
}

func TestOneUnknownWordRendersAsOpcode(t *testing.T) {
	text := One(0xFF00)
	if !strings.HasPrefix(text, "OPCODE(0x") {
		t.Errorf("One(0xFF00) = %q, want an OPCODE(...) fallback", text)
	}
}

func TestListingPrefixesAddresses(t *testing.T) {
	op := registry.RealOp{Desc: registry.All["HALT"]}
	word := op.Desc.Encode(op)
	out := Listing([]uint16{word, word})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0000:") || !strings.HasPrefix(lines[1], "0001:") {
		t.Errorf("lines = %v, want 0000: and 0001: prefixes", lines)
	}
}

func TestAsmDisasmRoundTrip(t *testing.T) {
	op := registry.RealOp{Desc: registry.All["LOAD"], Reg: [3]int{1, 2}, Imm: -3}
	word := op.Desc.Encode(op)
	text := One(word)
	if text != "LOAD(R1, -3, R2)" {
		t.Errorf("LOAD round trip = %q", text)
	}
}
