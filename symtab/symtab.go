/*
 * HERA - Symbol table: labels, constants, and data labels.
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

// Package symtab holds the flat mapping from identifier to symbol: a
// plain value in a flat table keyed by name, with no cyclic ownership.
// Operations hold symbol names until the checker rewrites them to
// resolved integers.
package symtab

import "github.com/haverford-cs/hera/messages"

// Variant tags which kind of symbol an entry is.
type Variant int

const (
	VariantLabel Variant = iota
	VariantConstant
	VariantDataLabel
)

// Symbol is one entry: a resolved pc-index (Label), a literal value
// (Constant), or a memory address (DataLabel).
type Symbol struct {
	Variant Variant
	Value   int // resolved-pc-index, u16 literal, or memory address
	Loc     messages.Location
}

// Table maps identifiers to symbols. Identifiers are case-sensitive.
type Table struct {
	entries map[string]Symbol
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{entries: make(map[string]Symbol)}
}

// Define adds name to the table. Returns false (and does not overwrite)
// if name is already defined - the caller should report a redefinition
// error at loc using the original definition's location.
func (t *Table) Define(name string, sym Symbol) (Symbol, bool) {
	if existing, ok := t.entries[name]; ok {
		return existing, false
	}
	t.entries[name] = sym
	return sym, true
}

// Lookup returns the symbol bound to name, if any.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.entries[name]
	return s, ok
}

// Len returns the number of defined symbols.
func (t *Table) Len() int {
	return len(t.entries)
}

// Names returns every defined identifier, for the debugger's completer.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for n := range t.entries {
		names = append(names, n)
	}
	return names
}
