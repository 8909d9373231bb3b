/*
 * HERA - Debugger session: VM plus breakpoints, undo history, and the
 * loaded program's symbol table.
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

// Package debugger implements the interactive command loop over a
// machine.VM: breakpoints, stepping, an undo history, and a small
// expression mini-language for print/assign.
package debugger

import (
	"fmt"
	"io"

	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/checker"
	"github.com/haverford-cs/hera/machine"
	"github.com/haverford-cs/hera/messages"
	"github.com/haverford-cs/hera/registry"
	"github.com/haverford-cs/hera/symtab"
)

// Session owns everything one debugging run needs: the VM, the program
// it loaded (so `restart` can rebuild a fresh VM), breakpoints, and the
// undo ring.
type Session struct {
	VM      *machine.VM
	Symbols *symtab.Table
	Program []ast.Op // raw ops, re-checked on restart
	Opts    machine.Options
	Once    *messages.Once

	Breakpoints map[int]bool // pc index -> set
	history     []machine.Snapshot
	maxHistory  int

	Out io.Writer

	// Flags toggled by `on`/`off`.
	NoDebugOps bool

	quit bool
}

const defaultMaxHistory = 64

// New builds a session from a checked program.
func New(program []ast.Op, opts machine.Options) (*Session, error) {
	once := opts.Once
	if once == nil {
		once = &messages.Once{}
		opts.Once = once
	}
	res := checker.Check(program, once)
	if res.Messages.HasErrors() {
		return nil, fmt.Errorf("program has errors, cannot debug:\n%s", formatMessages(res.Messages))
	}
	vm := machine.New(res.Ops, res.Data, opts)
	return &Session{
		VM:          vm,
		Symbols:     res.Symbols,
		Program:     program,
		Opts:        opts,
		Once:        once,
		Breakpoints: make(map[int]bool),
		maxHistory:  defaultMaxHistory,
		Out:         opts.Output,
		NoDebugOps:  opts.NoDebugOps,
	}, nil
}

// Restart rebuilds the VM from scratch and resets the warn-once
// tracker, but preserves breakpoints (spec §9: warn-octal-once resets
// on restart; undo history is cleared since prior snapshots reference a
// now-replaced VM).
func (s *Session) Restart() error {
	s.Once.Reset()
	res := checker.Check(s.Program, s.Once)
	if res.Messages.HasErrors() {
		return fmt.Errorf("program has errors, cannot restart:\n%s", formatMessages(res.Messages))
	}
	s.VM = machine.New(res.Ops, res.Data, s.Opts)
	s.Symbols = res.Symbols
	s.history = nil
	return nil
}

func formatMessages(b messages.Bag) string {
	s := ""
	for _, m := range b.List() {
		s += m.String() + "\n"
	}
	return s
}

// pushUndo snapshots the VM before a mutating command. Bounded ring:
// oldest snapshot is dropped once maxHistory is exceeded.
func (s *Session) pushUndo() {
	s.history = append(s.history, s.VM.Snapshot())
	if len(s.history) > s.maxHistory {
		s.history = s.history[1:]
	}
}

// Undo pops the most recent snapshot, if any.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	snap := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.VM.Restore(snap)
	return true
}

// atBreakpoint reports whether the VM's current pc has a breakpoint set.
func (s *Session) atBreakpoint() bool {
	return s.Breakpoints[s.VM.PC()]
}

// resolveLoc resolves a break/clear/goto location: a bare line number
// (matched against the resolved op at that source line), a label name,
// "." for the current pc, or path:line (path is currently ignored - the
// debugger only ever loads one file at a time).
func (s *Session) resolveLoc(loc string) (int, error) {
	if loc == "." || loc == "" {
		return s.VM.PC(), nil
	}
	if sym, ok := s.Symbols.Lookup(loc); ok && sym.Variant == symtab.VariantLabel {
		return sym.Value, nil
	}
	line, ok := parseLocLine(loc)
	if !ok {
		return 0, fmt.Errorf("no such location %q", loc)
	}
	for i, op := range s.VM.Ops() {
		if op.Loc.Line == line {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no operation at line %d", line)
}

func parseLocLine(loc string) (int, bool) {
	// Accept "path:line" by taking the text after the final ':'.
	last := loc
	for i := len(loc) - 1; i >= 0; i-- {
		if loc[i] == ':' {
			last = loc[i+1:]
			break
		}
	}
	n := 0
	if last == "" {
		return 0, false
	}
	for _, r := range last {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// opAt returns the resolved op the debugger should show for "current
// position" displays (list, step annotations).
func (s *Session) opAt(pc int) (registry.RealOp, bool) {
	ops := s.VM.Ops()
	if pc < 0 || pc >= len(ops) {
		return registry.RealOp{}, false
	}
	return ops[pc], true
}
