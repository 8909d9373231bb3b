/*
 * HERA - Encoding round-trip tests.
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

package registry

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []RealOp{
		{Desc: All["ADD"], Reg: [3]int{1, 2, 3}},
		{Desc: All["SUB"], Reg: [3]int{4, 5, 6}},
		{Desc: All["AND"], Reg: [3]int{0, 1, 2}},
		{Desc: All["SETLO"], Reg: [3]int{3}, Imm: -5},
		{Desc: All["SETHI"], Reg: [3]int{3}, Imm: 0xab},
		{Desc: All["LOAD"], Reg: [3]int{1, 2}, Imm: 7},
		{Desc: All["LOAD"], Reg: [3]int{1, 2}, Imm: -8},
		{Desc: All["STORE"], Reg: [3]int{1, 2}, Imm: -1},
		{Desc: All["INC"], Reg: [3]int{4}, Imm: 9},
		{Desc: All["DEC"], Reg: [3]int{4}, Imm: 1},
		{Desc: All["LSL"], Reg: [3]int{1, 2}},
		{Desc: All["ASR"], Reg: [3]int{1, 2}},
		{Desc: All["SAVEF"], Reg: [3]int{5}},
		{Desc: All["RSTRF"], Reg: [3]int{5}},
		{Desc: All["CALL"], Reg: [3]int{13, 1}},
		{Desc: All["RETURN"], Reg: [3]int{13, 14}},
		{Desc: All["HALT"]},
		{Desc: All["NOP"]},
		{Desc: All["BR"], Reg: [3]int{1}},
		{Desc: All["BRR"], Imm: -12},
		{Desc: All["BZ"], Reg: [3]int{2}},
	}

	for _, want := range cases {
		word := want.Desc.Encode(want)
		got, ok := DecodeWord(word)
		if !ok {
			t.Fatalf("%s: word 0x%04X did not decode", want.Desc.Name, word)
		}
		if got.Desc.Name != want.Desc.Name {
			t.Fatalf("%s: decoded as %s", want.Desc.Name, got.Desc.Name)
		}
		if got.Reg != want.Reg {
			t.Errorf("%s: Reg = %v, want %v", want.Desc.Name, got.Reg, want.Reg)
		}
		if got.Imm != want.Imm {
			t.Errorf("%s: Imm = %d, want %d", want.Desc.Name, got.Imm, want.Imm)
		}
	}
}

// TestLoadStoreOffsetWidth pins the encoder's 4-bit offset field: any
// value outside [-8, 7] is silently wrapped by the &0xf mask, which is
// why the checker must reject out-of-range offsets before they ever
// reach Encode (see checker.checkRange's KindI4 case).
func TestLoadStoreOffsetWidth(t *testing.T) {
	op := RealOp{Desc: All["LOAD"], Reg: [3]int{1, 2}, Imm: 7}
	word := op.Desc.Encode(op)
	if word&0xf != 7 {
		t.Fatalf("offset 7 encoded as %d", word&0xf)
	}

	neg := RealOp{Desc: All["LOAD"], Reg: [3]int{1, 2}, Imm: -8}
	word = neg.Desc.Encode(neg)
	decoded, ok := DecodeWord(word)
	if !ok || decoded.Imm != -8 {
		t.Fatalf("offset -8 round-tripped as %d (ok=%v)", decoded.Imm, ok)
	}
}

func TestDecodeUnknownWordFails(t *testing.T) {
	// Byte code 0xFF lies above the last branch byte code (0xEF) and is
	// not assigned to any operation.
	if _, ok := DecodeWord(0xFF00); ok {
		t.Fatalf("word 0xFF00 unexpectedly decoded")
	}
}

func TestSetExpandsToSetloSethi(t *testing.T) {
	set := All["SET"]
	expanded := set.Expand(RealOp{Reg: [3]int{3}, Imm: 0x1234})
	if len(expanded) != 2 {
		t.Fatalf("SET expanded to %d ops, want 2", len(expanded))
	}
	if expanded[0].Desc.Name != "SETLO" || expanded[0].Imm != 0x34 {
		t.Errorf("low op = %+v", expanded[0])
	}
	if expanded[1].Desc.Name != "SETHI" || expanded[1].Imm != 0x12 {
		t.Errorf("high op = %+v", expanded[1])
	}
}
