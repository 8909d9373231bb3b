/*
 * HERA - Virtual machine: registers, memory, flags, and the fetch-execute
 * loop over a resolved operation stream.
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

// Package machine implements registry.VM: the sixteen-register, 65536-cell
// HERA virtual machine and its fetch-execute loop. The debugger drives it
// one Step at a time; the run subcommand drives it with Run.
package machine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/haverford-cs/hera/messages"
	"github.com/haverford-cs/hera/registry"
)

// DataBase is the first address of the static data segment - also the
// stack's collision boundary, matching checker.DataBase.
const DataBase = 0xC000

// Default and --big-stack starting values for SP (R15). The stack
// occupies the low end of memory and grows toward higher addresses; it
// overflows if it ever grows up into the data segment. --big-stack
// starts the pointer closer to address 0, giving the stack more room to
// grow before colliding with DataBase.
const (
	DefaultStackStart = 0x1000
	BigStackStart     = 0x0100
)

// ErrThrottleExceeded is returned by Run when op_count reaches throttle
// without the program halting.
var ErrThrottleExceeded = errors.New("throttle exceeded")

// RuntimeError is a HERA runtime error: SWI/RTI, stack overflow, illegal
// instruction, or any other error an Execute function raises via
// RuntimeErrorf.
type RuntimeError struct {
	Loc messages.Location
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: runtime error: %s", e.Loc, e.Msg)
}

// VM is the concrete HERA virtual machine.
type VM struct {
	regs     [16]uint16
	mem      [65536]uint16
	sign     bool
	zero     bool
	overflow bool
	carry    bool

	pc      int
	jumped  bool // SetPC was called during the current Step
	halted  bool
	opCount int
	throttle int

	ops []registry.RealOp
	out io.Writer
	loc messages.Location

	once          *messages.Once
	warnReturnOff bool
	noDebugOps    bool
	pendingErr    *RuntimeError
	diagnostics   messages.Bag
}

// Options configures a freshly-built VM.
type Options struct {
	Throttle      int  // 0 means unlimited
	BigStack      bool
	WarnReturnOff bool // --warn-return-off: suppress the invalid-return-address warning
	NoDebugOps    bool // --no-debug-ops: skip print/print_reg/__eval/__dump_state side effects
	Output        io.Writer
	Once          *messages.Once
	Init          map[int]uint16 // --init=R1=5,... seed values, applied after SP is set
}

// New builds a VM ready to execute ops, with memory[DataBase:] preloaded
// from data.
func New(ops []registry.RealOp, data []uint16, opts Options) *VM {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Once == nil {
		opts.Once = &messages.Once{}
	}
	vm := &VM{
		ops:           ops,
		out:           opts.Output,
		throttle:      opts.Throttle,
		once:          opts.Once,
		warnReturnOff: opts.WarnReturnOff,
		noDebugOps:    opts.NoDebugOps,
	}
	for i, w := range data {
		vm.mem[DataBase+i] = w
	}
	stackStart := uint16(DefaultStackStart)
	if opts.BigStack {
		stackStart = BigStackStart
	}
	vm.regs[15] = stackStart
	for r, v := range opts.Init {
		if r != 0 && r >= 0 && r < 16 {
			vm.regs[r] = v
		}
	}
	return vm
}

// --- registry.VM ---

func (vm *VM) Reg(n int) uint16 {
	if n == 0 {
		return 0
	}
	return vm.regs[n]
}

func (vm *VM) SetReg(n int, v uint16) {
	if n == 0 {
		return
	}
	if n == 15 && v >= DataBase && vm.regs[15] < DataBase {
		vm.RuntimeErrorf("stack overflow: SP grew into the data segment (0x%04X)", v)
		return
	}
	vm.regs[n] = v
}

func (vm *VM) Mem(addr uint16) uint16     { return vm.mem[addr] }
func (vm *VM) SetMem(addr uint16, v uint16) { vm.mem[addr] = v }

func (vm *VM) PC() int      { return vm.pc }
func (vm *VM) SetPC(pc int) { vm.pc = pc; vm.jumped = true }

func (vm *VM) GetFlags() (sign, zero, overflow, carry bool) {
	return vm.sign, vm.zero, vm.overflow, vm.carry
}

func (vm *VM) SetFlags(sign, zero, overflow, carry bool) {
	vm.sign, vm.zero, vm.overflow, vm.carry = sign, zero, overflow, carry
}

func (vm *VM) Halt() { vm.halted = true }

func (vm *VM) SP() uint16      { return vm.regs[15] }
func (vm *VM) SetSP(v uint16)  { vm.SetReg(15, v) }

func (vm *VM) Output() io.Writer { return vm.out }

func (vm *VM) Loc() messages.Location { return vm.loc }

// RuntimeErrorf records a runtime error and unwinds out of the current
// Execute call. Step recovers it and reports it to the caller.
func (vm *VM) RuntimeErrorf(format string, args ...any) {
	err := &RuntimeError{Loc: vm.loc, Msg: fmt.Sprintf(format, args...)}
	vm.pendingErr = err
	panic(err)
}

// --- accessors the debugger and tests use beyond the registry.VM surface ---

// SetNoDebugOps toggles debug-op execution at run time, for the
// debugger's `on`/`off no-debug-ops` commands.
func (vm *VM) SetNoDebugOps(b bool) { vm.noDebugOps = b }

func (vm *VM) Halted() bool   { return vm.halted }
func (vm *VM) OpCount() int   { return vm.opCount }
func (vm *VM) Ops() []registry.RealOp { return vm.ops }

// Snapshot is a deep copy of VM state, used by the debugger's undo ring.
type Snapshot struct {
	Regs     [16]uint16
	Mem      [65536]uint16
	Sign, Zero, Overflow, Carry bool
	PC       int
	Halted   bool
	OpCount  int
}

func (vm *VM) Snapshot() Snapshot {
	return Snapshot{
		Regs: vm.regs, Mem: vm.mem,
		Sign: vm.sign, Zero: vm.zero, Overflow: vm.overflow, Carry: vm.carry,
		PC: vm.pc, Halted: vm.halted, OpCount: vm.opCount,
	}
}

func (vm *VM) Restore(s Snapshot) {
	vm.regs = s.Regs
	vm.mem = s.Mem
	vm.sign, vm.zero, vm.overflow, vm.carry = s.Sign, s.Zero, s.Overflow, s.Carry
	vm.pc = s.PC
	vm.halted = s.Halted
	vm.opCount = s.OpCount
}

// Step executes exactly one resolved op, recovering any RuntimeError it
// raises. Returns ok=false when there is nothing left to execute
// (halted or pc out of range).
func (vm *VM) Step() (err error, ok bool) {
	if vm.halted || vm.pc < 0 || vm.pc >= len(vm.ops) {
		return nil, false
	}
	if vm.throttle > 0 && vm.opCount >= vm.throttle {
		return ErrThrottleExceeded, false
	}

	op := vm.ops[vm.pc]
	vm.loc = op.Loc
	vm.jumped = false

	err = vm.execute(op)
	if err != nil {
		return err, false
	}
	if !vm.jumped {
		vm.pc++
	}
	vm.opCount++
	vm.checkReturnAddress(op)
	return nil, true
}

// ExecuteAdHoc runs a single resolved op against the live machine state
// without advancing pc or opCount, for the debugger's `execute` command:
// an ad-hoc snippet run against the current state rather than a step
// through the loaded program's own op stream. Reuses the same
// panic-recovery wrapping as Step.
func (vm *VM) ExecuteAdHoc(op registry.RealOp) error {
	return vm.execute(op)
}

func (vm *VM) execute(op registry.RealOp) (err error) {
	defer func() {
		if r := recover(); r != nil {
			re, isRuntime := r.(*RuntimeError)
			if !isRuntime {
				panic(r)
			}
			vm.halted = true
			err = re
		}
	}()
	if op.Desc.IsDebug && vm.noDebugOps {
		return nil
	}
	op.Desc.Execute(op, vm)
	return nil
}

// checkReturnAddress implements the suppressible warning from spec §4.5:
// after a CALL, the value CALL wrote into Rret should look like a valid
// in-code return address.
func (vm *VM) checkReturnAddress(op registry.RealOp) {
	if vm.warnReturnOff || op.Desc == nil {
		return
	}
	if op.Desc.Name != "CALL" {
		return
	}
	ret := vm.Reg(op.Reg[0])
	if int(ret) > len(vm.ops) {
		vm.once.Warn(&vm.diagnostics, "invalid_return", op.Loc,
			"CALL wrote an out-of-range return address (0x%04X) into R%d", ret, op.Reg[0])
	}
}

// Diagnostics returns any advisory warnings accumulated outside the
// checker (currently just the invalid-return-address check).
func (vm *VM) Diagnostics() messages.Bag {
	return vm.diagnostics
}

// Run drives the VM to completion (halt, running off the end of the
// resolved op stream, or an error).
func Run(vm *VM) error {
	for {
		err, ok := vm.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
