/*
 * HERA - Operation registry: the authoritative table of HERA operations.
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

// Package registry is the single source of truth for the HERA language: a
// static table mapping each mnemonic to an operation descriptor carrying
// its parameter signature, binary encoding rule, pseudo-expansion rule,
// and execution rule. Shared logic (flag-setting arithmetic, conditional
// branches) lives in free functions rather than per-op closures, matching
// how a tagged sum of real-op variants plus a function-pointer table would
// be organized.
package registry

import (
	"io"

	"github.com/haverford-cs/hera/messages"
)

// Kind identifies the type of one operand, per the operation's
// ParamKinds.
type Kind int

const (
	KindRegister Kind = iota
	KindU4
	KindU5
	KindU6
	KindU8
	KindU16
	KindI4
	KindI8
	KindI16
	KindWord16 // any 16-bit bit pattern, written either signed or unsigned (SET's operand)
	KindLabel
	KindString
)

// Flags is a bitset of the four VM flags, used by Descriptor.Touches.
type Flags uint8

const (
	FlagSign Flags = 1 << iota
	FlagZero
	FlagOverflow
	FlagCarry
)

func (f Flags) Has(g Flags) bool { return f&g != 0 }

// VM is the minimal surface the registry's Execute functions need from the
// virtual machine. Defined here (not in package machine) so registry has
// no dependency on machine; machine depends on registry instead, avoiding
// an import cycle between "the table of what operations do" and "the
// thing that runs them".
type VM interface {
	Reg(n int) uint16
	SetReg(n int, v uint16)
	Mem(addr uint16) uint16
	SetMem(addr uint16, v uint16)
	PC() int
	SetPC(pc int)
	GetFlags() (sign, zero, overflow, carry bool)
	SetFlags(sign, zero, overflow, carry bool)
	Halt()
	SP() uint16
	SetSP(uint16)
	RuntimeErrorf(format string, args ...any)
	Loc() messages.Location
	Output() io.Writer
}

// RealOp is one resolved, post-checker operation: a descriptor plus
// concrete numeric operands. Labels have already become pc-indices or
// relative offsets; constants have already become literal values.
type RealOp struct {
	Desc *Descriptor
	Reg  [3]int // register operands, meaning defined per descriptor
	Imm  int32  // the operation's single immediate/offset/mask/value operand
	Str  string // string operand of print/__eval
	Loc  messages.Location
}

// Descriptor is the immutable, per-mnemonic operation descriptor from
// spec §3: name, arity, parameter kinds, binary encoding rule, pseudo
// expansion rule, execution rule, which flags it touches, and how much it
// advances the resolved pc.
type Descriptor struct {
	Name         string
	ParamKinds   []Kind
	IsPseudo     bool
	IsData       bool
	IsDebug      bool
	Touches      Flags
	LengthInCode int // 1 for most real ops and for debug ops, 2 for SET, 0 for data ops
	Doc          string

	// Encode produces the 16-bit word for a resolved real (non-pseudo,
	// non-data, non-debug) op. Nil for pseudo/data/debug descriptors.
	Encode func(op RealOp) uint16

	// Expand rewrites a pseudo-op into one or more real ops. Nil for
	// non-pseudo descriptors (which "expand" to themselves).
	Expand func(op RealOp) []RealOp

	// Execute runs a resolved real or debug op against vm. Nil for
	// pseudo/data descriptors (pseudo-ops never reach the VM; they are
	// expanded away by the checker).
	Execute func(op RealOp, vm VM)
}

// Table is keyed by mnemonic.
type Table map[string]*Descriptor

// All is the registry's operation table, populated once at package init.
var All Table

func init() { All = buildTable() }

// Lookup returns the descriptor for mnemonic, or nil.
func Lookup(name string) *Descriptor {
	return All[name]
}

// DecodeWord inverts Encode: given a 16-bit word, returns the matching
// RealOp (with Desc set) or ok=false if no known encoding matches, in
// which case the caller (the disassembler) renders OPCODE(0x....).
func DecodeWord(word uint16) (RealOp, bool) {
	return decodeWord(word)
}
