/*
 * HERA - Main process: command-line entry point.
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

// Command hera is the HERA toolchain entry point: it loads a source
// file, runs the lexer/parser/checker pipeline, and then runs, debugs,
// preprocesses, assembles, or disassembles the result depending on the
// subcommand. "run" is the default and may be elided: `hera prog.hera`
// behaves like `hera run prog.hera`.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/asm"
	"github.com/haverford-cs/hera/checker"
	"github.com/haverford-cs/hera/cliopts"
	"github.com/haverford-cs/hera/debugger"
	"github.com/haverford-cs/hera/disasm"
	"github.com/haverford-cs/hera/heralog"
	"github.com/haverford-cs/hera/lexer"
	"github.com/haverford-cs/hera/machine"
	"github.com/haverford-cs/hera/messages"
	"github.com/haverford-cs/hera/parser"
)

// Exit codes, per the command-line contract: 0 success, 1 diagnostics
// with at least one error, 2 usage error, 3 runtime error (including
// stack overflow and throttle exhaustion).
const (
	exitOK = iota
	exitDiagnostics
	exitUsage
	exitRuntime
)

const credits = `HERA - the Haverford Educational RISC Architecture toolchain.
An independent reimplementation of the assembler, checker, simulator,
and debugger for the HERA instructional instruction set.`

// globalOpts holds every persistent flag, shared by every subcommand's
// RunE closure.
type globalOpts struct {
	verbose       bool
	quiet         bool
	noColor       bool
	noDebugOps    bool
	warnOctalOff  bool
	warnReturnOff bool
	bigStack      bool
	throttle      int
	init          string
	creditsOnly   bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	code := exitOK
	opts := &globalOpts{}
	root := newRootCmd(opts, &code)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if code == exitOK {
			code = exitUsage
		}
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}

func newRootCmd(opts *globalOpts, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "hera [file]",
		Short:         "Assemble, run, and debug HERA assembly programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.creditsOnly {
				fmt.Fprintln(os.Stdout, credits)
				return nil
			}
			if len(args) != 1 {
				*code = exitUsage
				return fmt.Errorf("expected exactly one source file")
			}
			*code = doRun(args[0], opts)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug-level detail about each pipeline stage")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress incidental logging (warnings/errors still reach stderr)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable ANSI color in diagnostic output")
	root.PersistentFlags().BoolVar(&opts.noDebugOps, "no-debug-ops", false, "skip print/print_reg/__eval/__dump_state side effects")
	root.PersistentFlags().BoolVar(&opts.warnOctalOff, "warn-octal-off", false, "suppress the once-per-program octal-literal advisory")
	root.PersistentFlags().BoolVar(&opts.warnReturnOff, "warn-return-off", false, "suppress the invalid-return-address advisory")
	root.PersistentFlags().BoolVar(&opts.bigStack, "big-stack", false, "start SP closer to address 0, giving the stack more headroom")
	root.PersistentFlags().IntVar(&opts.throttle, "throttle", 0, "halt with an error after this many executed operations (0 = unlimited)")
	root.PersistentFlags().StringVar(&opts.init, "init", "", "seed registers before execution, e.g. R1=5,SP=0x2000")
	root.PersistentFlags().BoolVar(&opts.creditsOnly, "credits", false, "print credits and exit")

	root.AddCommand(newRunCmd(opts, code))
	root.AddCommand(newDebugCmd(opts, code))
	root.AddCommand(newPreprocessCmd(opts, code))
	root.AddCommand(newAssembleCmd(opts, code))
	root.AddCommand(newDisassembleCmd(opts, code))
	return root
}

func newRunCmd(opts *globalOpts, code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a HERA program to completion (the default subcommand)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = doRun(args[0], opts)
			return nil
		},
	}
}

func newDebugCmd(opts *globalOpts, code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <file>",
		Short: "Load a HERA program into the interactive debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = doDebug(args[0], opts)
			return nil
		},
	}
}

func newPreprocessCmd(opts *globalOpts, code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "preprocess <file>",
		Short: "Resolve #include/#ifdef directives and print the flattened operation stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = doPreprocess(args[0], opts)
			return nil
		},
	}
}

func newAssembleCmd(opts *globalOpts, code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "assemble <file>",
		Short: "Check a HERA program and print its encoded word listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = doAssemble(args[0], opts)
			return nil
		},
	}
}

func newDisassembleCmd(opts *globalOpts, code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "disassemble <file>",
		Short: "Decode a file of 16-bit words back to HERA mnemonics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = doDisassemble(args[0], opts)
			return nil
		},
	}
}

// loadAndCheck runs the full lexer/parser/checker pipeline over path and
// reports diagnostics. ok is false if the program has at least one error
// (in which case the caller should stop and return exitDiagnostics).
func loadAndCheck(path string, opts *globalOpts, log *slog.Logger) (checker.Result, bool) {
	log.Debug("lexing", "file", path)
	toks, lexMsgs := lexer.Lex(path)

	log.Debug("parsing")
	ops, parseMsgs := parser.Parse(toks)

	var msgs messages.Bag
	msgs.Append(lexMsgs)
	msgs.Append(parseMsgs)
	if msgs.HasErrors() {
		msgs.Sort()
		printDiagnostics(msgs, opts.noColor)
		return checker.Result{}, false
	}

	log.Debug("checking")
	once := newOnce(opts)
	res := checker.Check(ops, once)
	merged := msgs
	merged.Append(res.Messages)
	merged.Sort()
	res.Messages = merged
	printDiagnostics(res.Messages, opts.noColor)
	return res, !res.Messages.HasErrors()
}

// newOnce builds a fresh warn-once tracker with any categories
// --warn-octal-off disables pre-marked as seen.
func newOnce(opts *globalOpts) *messages.Once {
	once := &messages.Once{}
	if opts.warnOctalOff {
		once.Suppress("octal")
	}
	return once
}

func machineOptions(opts *globalOpts, out *os.File) (machine.Options, error) {
	init, err := cliopts.ParseInit(opts.init)
	if err != nil {
		return machine.Options{}, err
	}
	return machine.Options{
		Throttle:      opts.throttle,
		BigStack:      opts.bigStack,
		WarnReturnOff: opts.warnReturnOff,
		NoDebugOps:    opts.noDebugOps,
		Output:        out,
		Once:          newOnce(opts),
		Init:          init,
	}, nil
}

func doRun(path string, opts *globalOpts) int {
	log := heralog.NewLogger(os.Stderr, opts.verbose, opts.quiet)
	res, ok := loadAndCheck(path, opts, log)
	if !ok {
		return exitDiagnostics
	}

	mopts, err := machineOptions(opts, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	vm := machine.New(res.Ops, res.Data, mopts)

	if err := machine.Run(vm); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	printDiagnostics(vm.Diagnostics(), opts.noColor)
	return exitOK
}

func doDebug(path string, opts *globalOpts) int {
	log := heralog.NewLogger(os.Stderr, opts.verbose, opts.quiet)
	log.Debug("lexing", "file", path)
	toks, lexMsgs := lexer.Lex(path)
	ops, parseMsgs := parser.Parse(toks)

	var msgs messages.Bag
	msgs.Append(lexMsgs)
	msgs.Append(parseMsgs)
	if msgs.HasErrors() {
		printDiagnostics(msgs, opts.noColor)
		return exitDiagnostics
	}

	mopts, err := machineOptions(opts, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	sess, err := debugger.New(ops, mopts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitDiagnostics
	}
	if err := debugger.Run(sess); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	return exitOK
}

// doPreprocess re-lexes and re-parses path, then prints the flattened
// operation stream (one HERA call per line) - the source as it looks
// after every #include has been inlined and every #ifdef resolved.
// There is no separate preprocessed-text form to reconstruct: the lexer
// folds directive resolution directly into tokenization, so the raw
// parsed ops are the most faithful "preprocessed source" available.
func doPreprocess(path string, opts *globalOpts) int {
	toks, lexMsgs := lexer.Lex(path)
	if lexMsgs.HasErrors() {
		printDiagnostics(lexMsgs, opts.noColor)
		return exitDiagnostics
	}
	ops, parseMsgs := parser.Parse(toks)
	var msgs messages.Bag
	msgs.Append(lexMsgs)
	msgs.Append(parseMsgs)
	printDiagnostics(msgs, opts.noColor)
	if msgs.HasErrors() {
		return exitDiagnostics
	}
	for _, op := range ops {
		fmt.Println(formatOp(op))
	}
	return exitOK
}

func formatOp(op ast.Op) string {
	args := make([]string, len(op.Args))
	for i, a := range op.Args {
		args[i] = formatArg(a)
	}
	return fmt.Sprintf("%s(%s)", op.Name, strings.Join(args, ", "))
}

func formatArg(a ast.Arg) string {
	switch a.Kind {
	case ast.ArgRegister:
		return fmt.Sprintf("R%d", a.Reg)
	case ast.ArgInt:
		if a.Octal {
			return fmt.Sprintf("0%o", a.Int)
		}
		return fmt.Sprintf("%d", a.Int)
	case ast.ArgString:
		return fmt.Sprintf("%q", a.Str)
	default:
		return a.Ident
	}
}

func doAssemble(path string, opts *globalOpts) int {
	log := heralog.NewLogger(os.Stderr, opts.verbose, opts.quiet)
	res, ok := loadAndCheck(path, opts, log)
	if !ok {
		return exitDiagnostics
	}
	for _, word := range asm.Assemble(res.Ops) {
		fmt.Printf("%04X\n", word)
	}
	return exitOK
}

func doDisassemble(path string, opts *globalOpts) int {
	words, err := readWordFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	fmt.Print(disasm.Listing(words))
	return exitOK
}

// readWordFile reads path as whitespace-separated 16-bit literals
// (decimal or 0x-hex), one machine word per token.
func readWordFile(path string) ([]uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var words []uint16
	for _, tok := range strings.Fields(string(data)) {
		var v uint64
		if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
			_, err = fmt.Sscanf(tok[2:], "%x", &v)
		} else {
			_, err = fmt.Sscanf(tok, "%d", &v)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid word %q: %w", tok, err)
		}
		words = append(words, uint16(v))
	}
	return words, nil
}

func printDiagnostics(b messages.Bag, noColor bool) {
	for _, m := range b.List() {
		fmt.Fprintln(os.Stderr, colorizeMessage(m, noColor))
	}
}

func colorizeMessage(m messages.Message, noColor bool) string {
	if noColor {
		return m.String()
	}
	code := "33" // warning: yellow
	if m.Severity == messages.Error {
		code = "31" // error: red
	}
	return "\x1b[" + code + "m" + m.String() + "\x1b[0m"
}
