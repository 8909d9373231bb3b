/*
 * HERA - Checker: symbol resolution, type checking, pseudo-op expansion,
 * and static data layout. A three-pass algorithm over the raw operation
 * list produced by the parser.
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

package checker

import (
	"github.com/haverford-cs/hera/ast"
	"github.com/haverford-cs/hera/messages"
	"github.com/haverford-cs/hera/registry"
	"github.com/haverford-cs/hera/symtab"
)

// DataBase is the fixed address at which the static data segment begins.
const DataBase = 0xC000

// Result is everything the checker produces: the resolved real-op
// stream, the initial data image (to be loaded at DataBase), the final
// symbol table, and accumulated diagnostics.
type Result struct {
	Ops      []registry.RealOp
	Data     []uint16
	Symbols  *symtab.Table
	Messages messages.Bag
}

type labelDef struct {
	name string
	loc  messages.Location
}

// Check runs all three passes over ops. once tracks warn-once-per-program
// categories across the lifetime of a debugger session (reset on
// restart, preserved across undo - see messages.Once).
func Check(ops []ast.Op, once *messages.Once) Result {
	var msgs messages.Bag
	syms := symtab.New()

	stripped, labelsAt, trailing := pass1(ops, &msgs)
	pass2(stripped, labelsAt, trailing, syms, &msgs)
	resolved, data := pass3(stripped, syms, once, &msgs)

	// Each pass appends in its own scan order; a pass-2 redefinition at a
	// later line can land before a pass-3 undefined-identifier error at
	// an earlier one. Re-sort the merged bag into source order before
	// handing it back.
	msgs.Sort()

	return Result{Ops: resolved, Data: data, Symbols: syms, Messages: msgs}
}

// pass1 strips LABEL ops out of the stream (recording which stripped
// index they attach to) and rejects data directives that follow any real
// code operation.
func pass1(ops []ast.Op, msgs *messages.Bag) ([]ast.Op, map[int][]labelDef, []labelDef) {
	var stripped []ast.Op
	labelsAt := make(map[int][]labelDef)
	var pendingAtEnd []labelDef
	seenRealCode := false

	for _, op := range ops {
		desc := registry.Lookup(op.Name)
		if desc == nil {
			msgs.Err(op.Loc, "unknown operation %q", op.Name)
			continue
		}
		if op.Name == "LABEL" {
			if len(op.Args) != 1 || op.Args[0].Kind != ast.ArgIdent {
				msgs.Err(op.Loc, "LABEL expects a single identifier argument")
				continue
			}
			labelsAt[len(stripped)] = append(labelsAt[len(stripped)], labelDef{op.Args[0].Ident, op.Loc})
			continue
		}
		if desc.IsData {
			if seenRealCode {
				msgs.Err(op.Loc, "data directive %s may not follow code", op.Name)
				continue
			}
		} else if !desc.IsDebug {
			seenRealCode = true
		}
		stripped = append(stripped, op)
	}
	pendingAtEnd = labelsAt[len(stripped)]
	return stripped, labelsAt, pendingAtEnd
}

// pass2 walks the stripped op list, maintaining pc_index (resolved code
// position) and data_addr (starting at DataBase), binding every label to
// the position at which it was encountered.
func pass2(ops []ast.Op, labelsAt map[int][]labelDef, _ []labelDef, syms *symtab.Table, msgs *messages.Bag) {
	pcIndex := 0
	dataAddr := DataBase

	define := func(name string, sym symtab.Symbol, loc messages.Location) {
		if prev, ok := syms.Define(name, sym); !ok {
			msgs.Err(loc, "redefinition of %q (first defined at %s)", name, prev.Loc)
		}
	}

	bindLabels := func(i int) {
		for _, l := range labelsAt[i] {
			define(l.name, symtab.Symbol{Variant: symtab.VariantLabel, Value: pcIndex, Loc: l.loc}, l.loc)
		}
	}

	for i, op := range ops {
		bindLabels(i)
		desc := registry.Lookup(op.Name)
		switch op.Name {
		case "CONSTANT":
			if len(op.Args) == 2 && op.Args[0].Kind == ast.ArgIdent {
				define(op.Args[0].Ident, symtab.Symbol{Variant: symtab.VariantConstant, Value: int(op.Args[1].Int), Loc: op.Loc}, op.Loc)
			}
		case "DLABEL":
			if len(op.Args) == 1 && op.Args[0].Kind == ast.ArgIdent {
				define(op.Args[0].Ident, symtab.Symbol{Variant: symtab.VariantDataLabel, Value: dataAddr, Loc: op.Loc}, op.Loc)
			}
		case "INTEGER":
			dataAddr++
		case "LP_STRING":
			if len(op.Args) == 1 {
				dataAddr += len(op.Args[0].Str) + 1
			}
		case "DSKIP":
			if len(op.Args) == 1 {
				dataAddr += int(op.Args[0].Int)
			}
		default:
			if desc != nil {
				pcIndex += desc.LengthInCode
			}
		}
	}
	bindLabels(len(ops))
}

// pass3 re-walks the op list, this time resolving every identifier
// argument against the now-complete symbol table, type-checking each
// argument against its descriptor's ParamKinds, expanding pseudo-ops, and
// emitting the final data image.
func pass3(ops []ast.Op, syms *symtab.Table, once *messages.Once, msgs *messages.Bag) ([]registry.RealOp, []uint16) {
	var resolved []registry.RealOp
	var data []uint16
	pcIndex := 0

	for _, op := range ops {
		desc := registry.Lookup(op.Name)
		if desc == nil {
			continue // already reported in pass1
		}
		if desc.IsData {
			if op.Name != "LABEL" && op.Name != "DLABEL" && op.Name != "CONSTANT" && len(op.Args) != len(desc.ParamKinds) {
				msgs.Err(op.Loc, "%s: expected %d argument(s), got %d", op.Name, len(desc.ParamKinds), len(op.Args))
				continue
			}
			switch op.Name {
			case "INTEGER":
				data = append(data, uint16(op.Args[0].Int))
			case "LP_STRING":
				s := op.Args[0].Str
				data = append(data, uint16(len(s)))
				for _, ch := range []byte(s) {
					data = append(data, uint16(ch))
				}
			case "DSKIP":
				for i := int32(0); i < op.Args[0].Int; i++ {
					data = append(data, 0)
				}
			}
			continue
		}
		if desc.IsDebug {
			real, ok := resolveDebug(op, desc, msgs)
			if ok {
				resolved = append(resolved, real)
				pcIndex += desc.LengthInCode
			}
			continue
		}

		real, ok := resolveArgs(op, desc, syms, once, msgs, pcIndex)
		if !ok {
			continue
		}
		if desc.IsPseudo {
			expanded := desc.Expand(real)
			resolved = append(resolved, expanded...)
			pcIndex += len(expanded)
		} else {
			resolved = append(resolved, real)
			pcIndex += desc.LengthInCode
		}
		checkCallReturn(op, desc, once, msgs)
	}
	return resolved, data
}

func resolveDebug(op ast.Op, desc *registry.Descriptor, msgs *messages.Bag) (registry.RealOp, bool) {
	real := registry.RealOp{Desc: desc, Loc: op.Loc}
	for i, want := range desc.ParamKinds {
		if i >= len(op.Args) {
			msgs.Err(op.Loc, "%s: too few arguments", op.Name)
			return real, false
		}
		arg := op.Args[i]
		switch want {
		case registry.KindRegister:
			if arg.Kind != ast.ArgRegister {
				msgs.Err(arg.Loc, "%s: argument %d must be a register", op.Name, i+1)
				return real, false
			}
			real.Reg[0] = int(arg.Reg)
		case registry.KindString:
			real.Str = arg.Str
		}
	}
	return real, true
}

// resolveArgs type-checks and resolves every argument of a real or
// pseudo op, producing a registry.RealOp with its register slots filled
// in order and at most one immediate/label operand in Imm.
func resolveArgs(op ast.Op, desc *registry.Descriptor, syms *symtab.Table, once *messages.Once, msgs *messages.Bag, pcIndex int) (registry.RealOp, bool) {
	real := registry.RealOp{Desc: desc, Loc: op.Loc}
	if len(op.Args) != len(desc.ParamKinds) {
		msgs.Err(op.Loc, "%s: expected %d argument(s), got %d", op.Name, len(desc.ParamKinds), len(op.Args))
		return real, false
	}
	regSlot := 0
	ok := true
	for i, want := range desc.ParamKinds {
		arg := op.Args[i]
		switch want {
		case registry.KindRegister:
			if arg.Kind != ast.ArgRegister {
				msgs.Err(arg.Loc, "%s: argument %d must be a register", op.Name, i+1)
				ok = false
				continue
			}
			real.Reg[regSlot] = int(arg.Reg)
			regSlot++

		case registry.KindLabel:
			if arg.Kind != ast.ArgIdent {
				msgs.Err(arg.Loc, "%s: argument %d must be a label", op.Name, i+1)
				ok = false
				continue
			}
			sym, found := syms.Lookup(arg.Ident)
			if !found {
				msgs.Err(arg.Loc, "undefined identifier %q", arg.Ident)
				ok = false
				continue
			}
			if sym.Variant != symtab.VariantLabel {
				msgs.Err(arg.Loc, "%q is not a label and cannot be a branch target", arg.Ident)
				ok = false
				continue
			}
			offset := sym.Value - pcIndex
			checkBranchDistance(offset, arg.Loc, once, msgs)
			real.Imm = int32(offset)

		case registry.KindString:
			if arg.Kind != ast.ArgString {
				msgs.Err(arg.Loc, "%s: argument %d must be a string", op.Name, i+1)
				ok = false
				continue
			}
			real.Str = arg.Str

		default: // numeric kinds: literal int, or any resolved symbol used as a number
			v, kok := resolveNumeric(arg, syms, once, msgs)
			if !kok {
				ok = false
				continue
			}
			if !checkRange(want, v) {
				msgs.Err(arg.Loc, "%s: argument %d (%d) out of range for %s", op.Name, i+1, v, kindName(want))
				ok = false
				continue
			}
			real.Imm = v
		}
	}
	return real, ok
}

func resolveNumeric(arg ast.Arg, syms *symtab.Table, once *messages.Once, msgs *messages.Bag) (int32, bool) {
	switch arg.Kind {
	case ast.ArgInt:
		if arg.Octal {
			once.Warn(msgs, "octal", arg.Loc, "octal literal 0o%o", arg.Int)
		}
		return arg.Int, true
	case ast.ArgIdent:
		sym, found := syms.Lookup(arg.Ident)
		if !found {
			msgs.Err(arg.Loc, "undefined identifier %q", arg.Ident)
			return 0, false
		}
		if sym.Variant == symtab.VariantConstant && arg.Loc.Before(sym.Loc) {
			msgs.Err(arg.Loc, "use of constant %q before its declaration", arg.Ident)
			return 0, false
		}
		return int32(sym.Value), true
	default:
		msgs.Err(arg.Loc, "expected a numeric argument")
		return 0, false
	}
}

func checkRange(kind registry.Kind, v int32) bool {
	switch kind {
	case registry.KindU4:
		return v >= 0 && v <= 0xf
	case registry.KindU5:
		return v >= 0 && v <= 0x1f
	case registry.KindU6:
		return v >= 0 && v <= 0x3f
	case registry.KindU8:
		return v >= 0 && v <= 0xff
	case registry.KindU16:
		return v >= 0 && v <= 0xffff
	case registry.KindI4:
		return v >= -8 && v <= 7
	case registry.KindI8:
		return v >= -128 && v <= 127
	case registry.KindI16:
		return v >= -32768 && v <= 32767
	case registry.KindWord16:
		return v >= -32768 && v <= 0xffff
	}
	return true
}

func kindName(k registry.Kind) string {
	names := map[registry.Kind]string{
		registry.KindU4: "u4", registry.KindU5: "u5", registry.KindU6: "u6",
		registry.KindU8: "u8", registry.KindU16: "u16",
		registry.KindI4: "i4", registry.KindI8: "i8", registry.KindI16: "i16",
		registry.KindWord16: "16-bit value",
	}
	return names[k]
}

// checkBranchDistance warns once per program when a relative branch's
// offset is legal but close to the signed 8-bit limit, and errors if it
// genuinely will not fit.
func checkBranchDistance(offset int, loc messages.Location, once *messages.Once, msgs *messages.Bag) {
	if offset < -128 || offset > 127 {
		msgs.Err(loc, "relative branch offset %d does not fit in a signed 8-bit field", offset)
		return
	}
	if offset < -100 || offset > 100 {
		once.Warn(msgs, "branch_distance", loc, "relative branch offset %d is close to the signed 8-bit limit", offset)
	}
}

// checkCallReturn implements the CALL/RETURN register-choice warnings:
// once per program for any atypical target register, and on every
// occurrence specifically when the target is R11 (Rt).
func checkCallReturn(op ast.Op, desc *registry.Descriptor, once *messages.Once, msgs *messages.Bag) {
	if desc.Name != "CALL" && desc.Name != "RETURN" {
		return
	}
	if len(op.Args) != 2 || op.Args[1].Kind != ast.ArgRegister {
		return
	}
	target := op.Args[1].Reg
	if target == 11 {
		msgs.Warn(op.Args[1].Loc, "%s target is R11 (Rt), the scratch register", desc.Name)
	}
	if target != 13 && target != 14 {
		once.Warn(msgs, "call_return_atypical", op.Args[1].Loc, "%s with an atypical target register R%d", desc.Name, target)
	}
}
