/*
 * HERA - Data directives: CONSTANT, DLABEL, INTEGER, LP_STRING, DSKIP.
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

// registerDataOps registers the five directives that shape the static
// data segment, plus LABEL. They never reach the VM: the checker consumes them while
// building the symbol table and data image, and strips them from
// resolved_ops. Their descriptors exist so the parser/checker have a
// uniform arity and kind to check against, same as any other mnemonic.
func registerDataOps(t Table) {
	t["CONSTANT"] = &Descriptor{
		Name:       "CONSTANT",
		ParamKinds: []Kind{KindLabel, KindI16},
		IsData:     true,
		Doc:        "CONSTANT(name, value) - define a named integer constant",
	}
	t["DLABEL"] = &Descriptor{
		Name:       "DLABEL",
		ParamKinds: []Kind{KindLabel},
		IsData:     true,
		Doc:        "DLABEL(name) - bind name to the current data address",
	}
	t["INTEGER"] = &Descriptor{
		Name:       "INTEGER",
		ParamKinds: []Kind{KindI16},
		IsData:     true,
		Doc:        "INTEGER(value) - emit one 16-bit data word",
	}
	t["LP_STRING"] = &Descriptor{
		Name:       "LP_STRING",
		ParamKinds: []Kind{KindString},
		IsData:     true,
		Doc:        "LP_STRING(\"text\") - emit a length-prefixed string",
	}
	t["DSKIP"] = &Descriptor{
		Name:       "DSKIP",
		ParamKinds: []Kind{KindU16},
		IsData:     true,
		Doc:        "DSKIP(n) - reserve n data words without initializing them",
	}
	t["LABEL"] = &Descriptor{
		Name:       "LABEL",
		ParamKinds: []Kind{KindLabel},
		IsData:     true,
		Doc:        "LABEL(name) - bind name to the current resolved pc index",
	}
}
