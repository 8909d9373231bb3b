/*
 * HERA - Flag-setting arithmetic shared by ADD/SUB/INC/DEC and friends.
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

// msign16 is the sign bit of a 16-bit word.
const msign16 = 0x8000

// addFlags computes a+b mod 2^16 along with the unsigned carry-out and
// signed overflow, using the same carry-chain bit-trick as a reference
// mainframe CPU's binary adder: carry holds, at each bit position, the
// carry generated out of that position; bit 15 of carry is the overall
// unsigned carry-out, and overflow is the XOR of the carry into and out
// of the sign bit.
func addFlags(a, b uint16) (sum uint16, carryOut, overflow bool) {
	ua, ub := uint32(a), uint32(b)
	usum := (ua + ub) & 0xffff
	sum = uint16(usum)
	carry := (ua & ub) | ((ua ^ ub) &^ usum)
	carryOut = carry&msign16 != 0
	overflow = ((carry<<1)^carry)&msign16 != 0
	return sum, carryOut, overflow
}

// subFlags computes a-b mod 2^16 as a+(^b)+1. carry is set when no borrow
// occurs (a >= b unsigned), matching the reference implementation's
// SUB/DEC edge cases at b==0: a - 0 always carries (no borrow).
func subFlags(a, b uint16) (diff uint16, carryOut, overflow bool) {
	ua, s2 := uint32(a), uint32(^b)&0xffff
	udiff := (ua + s2 + 1) & 0xffff
	diff = uint16(udiff)
	carry := (ua & s2) | ((ua ^ s2) &^ udiff)
	carryOut = carry&msign16 != 0
	overflow = ((carry<<1)^carry)&msign16 != 0
	return diff, carryOut, overflow
}

// signZero derives the sign and zero flags from a 16-bit result.
func signZero(v uint16) (sign, zero bool) {
	return v&msign16 != 0, v == 0
}

// asr16 performs a signed (arithmetic) right shift by n bits, rounding
// toward negative infinity (Go's signed >> already rounds this way).
func asr16(v uint16, n uint) uint16 {
	return uint16(int16(v) >> n)
}
