/*
 * HERA - Diagnostic message bag shared by every compiler pass.
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

// Package messages implements the diagnostic bag every pipeline stage
// returns alongside its normal result: an ordered list of severities,
// source locations, and text. No pass throws; callers inspect HasErrors
// to decide whether to proceed.
package messages

import (
	"fmt"
	"sort"
)

// Severity of a single diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Location identifies where in the source a diagnostic applies.
type Location struct {
	File   string
	Line   int
	Column int
}

// Before reports whether l occurs strictly earlier in the same file than
// other. Locations from different files compare false in both
// directions - used only as a heuristic for "use before declare".
func (l Location) Before(other Location) bool {
	if l.File != other.File {
		return false
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Message is one diagnostic.
type Message struct {
	Severity Severity
	Loc      Location
	Text     string
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s: %s", m.Loc, m.Severity, m.Text)
}

// Bag accumulates messages in the order they are recorded (Sort puts
// them in source order) and tracks error state.
// Bag is a value type; the zero Bag is ready to use.
type Bag struct {
	list []Message
}

// Warn records a warning at loc.
func (b *Bag) Warn(loc Location, format string, args ...any) {
	b.list = append(b.list, Message{Warning, loc, fmt.Sprintf(format, args...)})
}

// Err records an error at loc.
func (b *Bag) Err(loc Location, format string, args ...any) {
	b.list = append(b.list, Message{Error, loc, fmt.Sprintf(format, args...)})
}

// Append merges other's messages into b, preserving relative order.
func (b *Bag) Append(other Bag) {
	b.list = append(b.list, other.list...)
}

// List returns all messages in the order they were recorded.
func (b Bag) List() []Message {
	return b.list
}

// HasErrors reports whether any recorded message is an Error.
func (b Bag) HasErrors() bool {
	for _, m := range b.list {
		if m.Severity == Error {
			return true
		}
	}
	return false
}

// Len returns the number of recorded messages.
func (b Bag) Len() int {
	return len(b.list)
}

// Sort orders messages by source location (file, then line, then
// column), stably with respect to ties so messages recorded at the
// same position keep the relative order they were appended in. Passes
// append diagnostics in their own internal scan order and stages are
// merged pass-by-pass, so callers that promise source-ordered output
// (spec's messages-in-source-order guarantee) must call this once over
// the fully merged bag before printing.
func (b *Bag) Sort() {
	sort.SliceStable(b.list, func(i, j int) bool {
		a, c := b.list[i].Loc, b.list[j].Loc
		if a.File != c.File {
			return a.File < c.File
		}
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Column < c.Column
	})
}

// once tracks warn-once-per-program categories (octal literal, atypical
// CALL/RETURN register, relative-branch-distance advisory, invalid return
// address). Reset clears the set, used when the debugger's "restart"
// command begins a fresh program run.
type Once struct {
	seen map[string]bool
}

// Warn records category once; subsequent calls for the same category are
// no-ops. Returns true if this call actually recorded a new warning.
func (o *Once) Warn(b *Bag, category string, loc Location, format string, args ...any) bool {
	if o.seen == nil {
		o.seen = make(map[string]bool)
	}
	if o.seen[category] {
		return false
	}
	o.seen[category] = true
	b.Warn(loc, format, args...)
	return true
}

// Reset clears all recorded categories, as spec'd for the debugger's
// restart command (warn-octal-once resets on restart, preserved across
// undo).
func (o *Once) Reset() {
	o.seen = nil
}

// Suppress marks category as already seen without recording a message,
// so that a later Warn for the same category is a silent no-op. Used by
// --warn-octal-off and similar flags that disable one advisory category
// outright rather than just deferring it.
func (o *Once) Suppress(category string) {
	if o.seen == nil {
		o.seen = make(map[string]bool)
	}
	o.seen[category] = true
}
