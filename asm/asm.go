/*
 * HERA - Assembler: turns a resolved operation stream into 16-bit words.
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

// Package asm turns a checker-resolved operation stream into a flat
// slice of 16-bit machine words. Debug ops contribute zero words - the
// checker already leaves them in resolved_ops with no Encode function,
// since the VM still needs to execute them.
package asm

import "github.com/haverford-cs/hera/registry"

// Assemble encodes every non-debug op in ops, in order. Debug
// descriptors carry no Encode function and are skipped, so a word's
// index can be smaller than its op's resolved pc index; relative-branch
// offsets are rebased onto word indices so they skip the elided ops.
func Assemble(ops []registry.RealOp) []uint16 {
	// wordAt[i] is the word index of op i (for a skipped op, that of
	// the next encoded op); wordAt[len(ops)] is the word count.
	wordAt := make([]int, len(ops)+1)
	for i, op := range ops {
		wordAt[i+1] = wordAt[i]
		if op.Desc != nil && !op.Desc.IsDebug && op.Desc.Encode != nil {
			wordAt[i+1]++
		}
	}
	words := make([]uint16, 0, len(ops))
	for i, op := range ops {
		if wordAt[i+1] == wordAt[i] {
			continue
		}
		if t := i + int(op.Imm); len(op.Desc.ParamKinds) == 1 && op.Desc.ParamKinds[0] == registry.KindLabel && t >= 0 && t <= len(ops) {
			op.Imm = int32(wordAt[t] - wordAt[i])
		}
		words = append(words, op.Desc.Encode(op))
	}
	return words
}
