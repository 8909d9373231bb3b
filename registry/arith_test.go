/*
 * HERA - Flag arithmetic tests.
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

func TestAddFlags(t *testing.T) {
	cases := []struct {
		a, b               uint16
		sum                uint16
		carryOut, overflow bool
	}{
		{0x7FFF, 1, 0x8000, false, true}, // signed overflow, no unsigned carry
		{0xFFFF, 1, 0, true, false},       // unsigned wrap, no signed overflow
		{1, 1, 2, false, false},
		{0x8000, 0x8000, 0, true, true}, // MIN_INT + MIN_INT overflows and carries
	}
	for _, c := range cases {
		sum, carryOut, overflow := addFlags(c.a, c.b)
		if sum != c.sum || carryOut != c.carryOut || overflow != c.overflow {
			t.Errorf("addFlags(0x%04X, 0x%04X) = (0x%04X, %v, %v), want (0x%04X, %v, %v)",
				c.a, c.b, sum, carryOut, overflow, c.sum, c.carryOut, c.overflow)
		}
	}
}

func TestSubFlags(t *testing.T) {
	cases := []struct {
		a, b               uint16
		diff               uint16
		carryOut, overflow bool
	}{
		{5, 3, 2, true, false},       // a >= b: no borrow
		{3, 5, 0xFFFE, false, false}, // a < b: borrow, but fits in int16
		{7, 0, 7, true, false},       // subtracting zero never borrows
		{0x8000, 1, 0x7FFF, true, true}, // MIN_INT - 1 overflows
	}
	for _, c := range cases {
		diff, carryOut, overflow := subFlags(c.a, c.b)
		if diff != c.diff || carryOut != c.carryOut || overflow != c.overflow {
			t.Errorf("subFlags(0x%04X, 0x%04X) = (0x%04X, %v, %v), want (0x%04X, %v, %v)",
				c.a, c.b, diff, carryOut, overflow, c.diff, c.carryOut, c.overflow)
		}
	}
}

func TestSignZero(t *testing.T) {
	if sign, zero := signZero(0); !zero || sign {
		t.Errorf("signZero(0) = (%v, %v), want (false, true)", sign, zero)
	}
	if sign, zero := signZero(0x8000); zero || !sign {
		t.Errorf("signZero(0x8000) = (%v, %v), want (true, false)", sign, zero)
	}
	if sign, zero := signZero(1); zero || sign {
		t.Errorf("signZero(1) = (%v, %v), want (false, false)", sign, zero)
	}
}

func TestAsr16(t *testing.T) {
	if got := asr16(0x8000, 1); got != 0xC000 {
		t.Errorf("asr16(0x8000, 1) = 0x%04X, want 0xC000", got)
	}
	if got := asr16(4, 1); got != 2 {
		t.Errorf("asr16(4, 1) = %d, want 2", got)
	}
}

func TestArithOpFlags(t *testing.T) {
	vm := newTestVM()
	vm.SetReg(1, 0x7FFF)
	vm.SetReg(2, 1)
	op := RealOp{Desc: All["ADD"], Reg: [3]int{3, 1, 2}}
	op.Desc.Execute(op, vm)
	if vm.Reg(3) != 0x8000 {
		t.Fatalf("ADD result = 0x%04X, want 0x8000", vm.Reg(3))
	}
	_, _, overflow, _ := vm.GetFlags()
	if !overflow {
		t.Errorf("ADD 0x7FFF+1 should set overflow")
	}
}
