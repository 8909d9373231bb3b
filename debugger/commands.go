/*
 * HERA - Debugger command dispatch: a prefix-matched command table, the
 * same shape the console command parser uses.
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

package debugger

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/haverford-cs/hera/asm"
	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/checker"
	"github.com/haverford-cs/hera/disasm"
	"github.com/haverford-cs/hera/lexer"
	"github.com/haverford-cs/hera/messages"
	"github.com/haverford-cs/hera/parser"
	"github.com/haverford-cs/hera/registry"
)

// cmd is one debugger command: a canonical name, the minimum number of
// leading characters that uniquely identify it when abbreviated (set to
// len(name) for destructive commands that must be typed in full), and
// the function that runs it against the rest of the line.
type cmd struct {
	name    string
	min     int
	process func(s *Session, rest string) (quit bool, out string, err error)
}

var cmdList = []cmd{
	{"break", 2, cmdBreak},
	{"clear", 2, cmdClear},
	{"continue", 1, cmdContinue},
	{"next", 1, cmdNext},
	{"step", 2, cmdStep},
	{"execute", 2, cmdExecute},
	{"goto", 2, cmdGoto},
	{"print", 2, cmdPrint},
	{"assign", 2, cmdAssign},
	{"info", 2, cmdInfo},
	{"list", 2, cmdList_},
	{"ll", 2, cmdLL},
	{"on", 2, cmdOn},
	{"off", 3, cmdOff},
	{"undo", 2, cmdUndo},
	{"asm", 3, cmdAsm},
	{"dis", 3, cmdDis},
	{"doc", 3, cmdDoc},
	{"help", 1, cmdHelp},
	{"restart", 7, cmdRestart}, // no abbreviation: min == len("restart")
	{"quit", 1, cmdQuit},
}

// mutating names the commands that push an undo snapshot before
// running, per spec §4.6.
var mutating = map[string]bool{
	"continue": true, "next": true, "step": true, "execute": true,
	"goto": true, "assign": true, "on": true, "off": true,
}

// Dispatch runs one command line against s, returning its textual
// result and whether the session should end.
func Dispatch(s *Session, line string) (quit bool, out string, err error) {
	name, rest := splitWord(line)
	if name == "" {
		return false, "", nil
	}
	match := matchCmd(name)
	if len(match) == 0 {
		return false, "", fmt.Errorf("unknown command %q", name)
	}
	if len(match) > 1 {
		names := make([]string, len(match))
		for i, m := range match {
			names[i] = m.name
		}
		return false, "", fmt.Errorf("ambiguous command %q: %s", name, strings.Join(names, ", "))
	}
	c := match[0]
	if mutating[c.name] {
		s.pushUndo()
	}
	return c.process(s, strings.TrimSpace(rest))
}

// matchCmd returns every command whose name starts with (at least)
// prefix, subject to each command's own minimum abbreviation length.
func matchCmd(prefix string) []cmd {
	var out []cmd
	for _, c := range cmdList {
		if len(prefix) < c.min || len(prefix) > len(c.name) {
			continue
		}
		if c.name[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

func splitWord(line string) (word, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexByte(line, ' ')
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i+1:]
}

func cmdBreak(s *Session, rest string) (bool, string, error) {
	pc, err := s.resolveLoc(rest)
	if err != nil {
		return false, "", err
	}
	s.Breakpoints[pc] = true
	return false, fmt.Sprintf("breakpoint set at %d", pc), nil
}

func cmdClear(s *Session, rest string) (bool, string, error) {
	pc, err := s.resolveLoc(rest)
	if err != nil {
		return false, "", err
	}
	delete(s.Breakpoints, pc)
	return false, fmt.Sprintf("breakpoint cleared at %d", pc), nil
}

func cmdContinue(s *Session, rest string) (bool, string, error) {
	count := 0
	for {
		errv, ok := s.VM.Step()
		if errv != nil {
			return false, "", errv
		}
		if !ok {
			return false, "halted", nil
		}
		count++
		if s.atBreakpoint() {
			return false, fmt.Sprintf("breakpoint hit at %d (%d steps)", s.VM.PC(), count), nil
		}
	}
}

func cmdNext(s *Session, rest string) (bool, string, error) {
	k := 1
	if rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return false, "", fmt.Errorf("next: %w", err)
		}
		k = n
	}
	for i := 0; i < k; i++ {
		errv, ok := s.VM.Step()
		if errv != nil {
			return false, "", errv
		}
		if !ok {
			return false, "halted", nil
		}
	}
	return false, fmt.Sprintf("pc=%d", s.VM.PC()), nil
}

func cmdStep(s *Session, rest string) (bool, string, error) {
	errv, ok := s.VM.Step()
	if errv != nil {
		return false, "", errv
	}
	if !ok {
		return false, "halted", nil
	}
	return false, fmt.Sprintf("pc=%d", s.VM.PC()), nil
}

// cmdExecute runs an ad-hoc snippet (one or more HERA ops) through the
// same lexer/parser/checker pipeline main.go drives a whole file
// through, then executes each resolved op against the live VM in place -
// the snippet's own labels/constants resolve against a fresh symbol
// table scoped to just this line, not the loaded program's.
func cmdExecute(s *Session, rest string) (bool, string, error) {
	if strings.TrimSpace(rest) == "" {
		return false, "", errors.New("execute: expected one or more HERA operations")
	}
	ops, msgs, err := parseSnippet(rest)
	if err != nil {
		return false, "", fmt.Errorf("execute: %w", err)
	}
	if msgs.HasErrors() {
		return false, "", fmt.Errorf("execute: %s", firstError(msgs))
	}
	res := checker.Check(ops, &messages.Once{})
	if res.Messages.HasErrors() {
		return false, "", fmt.Errorf("execute: %s", firstError(res.Messages))
	}
	for _, op := range res.Ops {
		if op.Desc == nil || op.Desc.IsData {
			continue
		}
		if err := s.VM.ExecuteAdHoc(op); err != nil {
			return false, "", err
		}
	}
	return false, fmt.Sprintf("pc=%d", s.VM.PC()), nil
}

func cmdGoto(s *Session, rest string) (bool, string, error) {
	pc, err := s.resolveLoc(rest)
	if err != nil {
		return false, "", err
	}
	s.VM.SetPC(pc)
	return false, fmt.Sprintf("pc=%d", pc), nil
}

func cmdPrint(s *Session, rest string) (bool, string, error) {
	var parts []string
	for _, expr := range strings.Split(rest, ",") {
		expr = strings.TrimSpace(expr)
		format := ""
		if i := strings.LastIndexByte(expr, ':'); i >= 0 && len(expr[i+1:]) == 1 {
			format = expr[i+1:]
			expr = expr[:i]
		}
		v, err := Eval(s, expr)
		if err != nil {
			return false, "", err
		}
		parts = append(parts, formatValue(v, format))
	}
	return false, strings.Join(parts, "  "), nil
}

func formatValue(v int32, format string) string {
	switch format {
	case "x":
		return fmt.Sprintf("0x%04X", uint16(v))
	case "b":
		return fmt.Sprintf("0b%016b", uint16(v))
	case "o":
		return fmt.Sprintf("0o%o", uint16(v))
	default:
		return strconv.Itoa(int(v))
	}
}

func cmdAssign(s *Session, rest string) (bool, string, error) {
	i := strings.IndexByte(rest, '=')
	if i < 0 {
		return false, "", errors.New("assign: expected lhs = expr")
	}
	lhs := strings.TrimSpace(rest[:i])
	rhs := strings.TrimSpace(rest[i+1:])
	v, err := Eval(s, rhs)
	if err != nil {
		return false, "", err
	}
	if err := AssignTo(s, lhs, v); err != nil {
		return false, "", err
	}
	return false, fmt.Sprintf("%s = %d", lhs, v), nil
}

func cmdInfo(s *Session, rest string) (bool, string, error) {
	aspect := strings.TrimSpace(rest)
	var b strings.Builder
	if aspect == "" || aspect == "registers" {
		for r := 0; r < 16; r++ {
			fmt.Fprintf(&b, "R%-2d=0x%04X ", r, s.VM.Reg(r))
			if r%4 == 3 {
				b.WriteByte('\n')
			}
		}
	}
	if aspect == "" || aspect == "flags" {
		sign, zero, overflow, carry := s.VM.GetFlags()
		fmt.Fprintf(&b, "sign=%v zero=%v overflow=%v carry=%v\n", sign, zero, overflow, carry)
	}
	if aspect == "" || aspect == "memory" {
		fmt.Fprintf(&b, "pc=%d op_count=%d halted=%v\n", s.VM.PC(), s.VM.OpCount(), s.VM.Halted())
	}
	return false, b.String(), nil
}

func cmdList_(s *Session, rest string) (bool, string, error) {
	return listSource(s, 5)
}

func cmdLL(s *Session, rest string) (bool, string, error) {
	return listSource(s, 20)
}

func listSource(s *Session, window int) (bool, string, error) {
	ops := s.VM.Ops()
	pc := s.VM.PC()
	lo, hi := pc-window, pc+window
	if lo < 0 {
		lo = 0
	}
	if hi > len(ops) {
		hi = len(ops)
	}
	var b strings.Builder
	for i := lo; i < hi; i++ {
		marker := "  "
		if i == pc {
			marker = "->"
		}
		fmt.Fprintf(&b, "%s %04d: %s\n", marker, i, ops[i].Desc.Name)
	}
	return false, b.String(), nil
}

func cmdOn(s *Session, rest string) (bool, string, error) {
	return toggleFlag(s, rest, true)
}

func cmdOff(s *Session, rest string) (bool, string, error) {
	return toggleFlag(s, rest, false)
}

func toggleFlag(s *Session, name string, v bool) (bool, string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "no-debug-ops":
		s.NoDebugOps = v
		s.Opts.NoDebugOps = v
		s.VM.SetNoDebugOps(v)
	case "warn-return-off":
		s.Opts.WarnReturnOff = v
	default:
		return false, "", fmt.Errorf("unknown flag %q", name)
	}
	return false, fmt.Sprintf("%s = %v", name, v), nil
}

func cmdUndo(s *Session, rest string) (bool, string, error) {
	if !s.Undo() {
		return false, "", errors.New("nothing to undo")
	}
	return false, "reverted to previous snapshot", nil
}

// cmdAsm inline-assembles rest: lex/parse/check it as a one-line
// program and print each resolved op's encoded word, the inverse of
// cmdDis below (which decodes a literal word back to mnemonic form via
// disasm.One).
func cmdAsm(s *Session, rest string) (bool, string, error) {
	if strings.TrimSpace(rest) == "" {
		return false, "", errors.New("asm: expected a HERA operation")
	}
	ops, msgs, err := parseSnippet(rest)
	if err != nil {
		return false, "", fmt.Errorf("asm: %w", err)
	}
	if msgs.HasErrors() {
		return false, "", fmt.Errorf("asm: %s", firstError(msgs))
	}
	res := checker.Check(ops, &messages.Once{})
	if res.Messages.HasErrors() {
		return false, "", fmt.Errorf("asm: %s", firstError(res.Messages))
	}
	words := asm.Assemble(res.Ops)
	if len(words) == 0 {
		return false, "", errors.New("asm: no encodable operation")
	}
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("0x%04X", w)
	}
	return false, strings.Join(parts, " "), nil
}

// parseSnippet runs the normal file-oriented lexer over an in-memory
// line by spilling it to a scratch file - the lexer resolves #include
// paths relative to disk, so a debugger one-liner goes through the same
// path a real source file would rather than a second, divergent
// string-lexing mode.
func parseSnippet(src string) ([]ast.Op, messages.Bag, error) {
	f, err := os.CreateTemp("", "hera-snippet-*.hera")
	if err != nil {
		return nil, messages.Bag{}, err
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(src + "\n"); err != nil {
		f.Close()
		return nil, messages.Bag{}, err
	}
	if err := f.Close(); err != nil {
		return nil, messages.Bag{}, err
	}

	toks, lexMsgs := lexer.Lex(name)
	if lexMsgs.HasErrors() {
		return nil, lexMsgs, nil
	}
	ops, parseMsgs := parser.Parse(toks)
	var msgs messages.Bag
	msgs.Append(lexMsgs)
	msgs.Append(parseMsgs)
	return ops, msgs, nil
}

// firstError returns the text of the first Error-severity message in b,
// for a one-line command error rather than a full diagnostic dump.
func firstError(b messages.Bag) string {
	for _, m := range b.List() {
		if m.Severity == messages.Error {
			return m.Text
		}
	}
	return "unknown error"
}

func cmdDis(s *Session, rest string) (bool, string, error) {
	n, err := parseWordLiteral(rest)
	if err != nil {
		return false, "", err
	}
	return false, disasm.One(n), nil
}

func parseWordLiteral(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0o"):
		base, s = 8, s[2:]
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("dis: %w", err)
	}
	return uint16(v), nil
}

func cmdDoc(s *Session, rest string) (bool, string, error) {
	name := strings.TrimSpace(rest)
	desc := registry.Lookup(name)
	if desc == nil {
		return false, "", fmt.Errorf("doc: unknown operation %q", name)
	}
	return false, desc.Doc, nil
}

func cmdHelp(s *Session, rest string) (bool, string, error) {
	if rest == "" {
		var names []string
		for _, c := range cmdList {
			names = append(names, c.name)
		}
		return false, "commands: " + strings.Join(names, ", "), nil
	}
	match := matchCmd(rest)
	if len(match) != 1 {
		return false, "", fmt.Errorf("help: unknown command %q", rest)
	}
	return false, match[0].name, nil
}

func cmdRestart(s *Session, rest string) (bool, string, error) {
	if err := s.Restart(); err != nil {
		return false, "", err
	}
	return false, "restarted", nil
}

func cmdQuit(s *Session, rest string) (bool, string, error) {
	return true, "", nil
}
