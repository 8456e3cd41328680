// Package debugger wraps the CPU with an identical stepping interface
// and a selectable per-instruction trace. It is a pure decorator: it
// never mutates CPU state or timing, only observes it and, optionally,
// pauses execution at breakpoints to hand control to an interactive
// REPL.
package debugger

import (
	"fmt"
	"io"
	"time"

	"github.com/inrick/chip8vm/internal/cpu"
)

// Field selects one category of per-step trace output.
type Field int

const (
	// FieldOpcode traces the raw fetched instruction word.
	FieldOpcode Field = 1 << iota
	// FieldRegisters traces V0-VF, PC, I, SP, DT, ST.
	FieldRegisters
	// FieldStack traces the full 16-entry call stack.
	FieldStack
)

// Stepper is the subset of *cpu.CPU the debugger decorates.
type Stepper interface {
	Step(waitForInput func()) error
	Registers() cpu.Registers
	LastOpcode() uint16
	SetWallClock(now time.Time)
	TickTimers()
	Reset()
}

// Debugger decorates a Stepper with tracing and breakpoints.
type Debugger struct {
	cpu    Stepper
	fields Field
	sink   io.Writer

	breakpoints map[uint16]bool
	// broken is true once the REPL should take over before the next
	// instruction executes, either because of a breakpoint hit or a
	// prior "next" (single-step) command.
	broken bool
	// onBreak is invoked, if set, whenever execution should pause: a
	// breakpoint address is about to execute, or single-step mode is
	// active. It returns true to continue running freely ("continue")
	// or false to single-step ("next").
	onBreak func(d *Debugger) (resumeFree bool)
}

// New wraps c, tracing the fields selected by fields to sink.
func New(c Stepper, fields Field, sink io.Writer) *Debugger {
	return &Debugger{
		cpu:         c,
		fields:      fields,
		sink:        sink,
		breakpoints: make(map[uint16]bool),
	}
}

// SetBreakHandler installs the callback invoked when a breakpoint is
// hit or single-step mode is active.
func (d *Debugger) SetBreakHandler(fn func(d *Debugger) (resumeFree bool)) {
	d.onBreak = fn
}

// AddBreakpoint arms a breakpoint at addr.
func (d *Debugger) AddBreakpoint(addr uint16) {
	d.breakpoints[addr] = true
}

// RemoveBreakpoint disarms a breakpoint at addr.
func (d *Debugger) RemoveBreakpoint(addr uint16) {
	delete(d.breakpoints, addr)
}

// Breakpoints returns the currently armed breakpoint addresses.
func (d *Debugger) Breakpoints() []uint16 {
	addrs := make([]uint16, 0, len(d.breakpoints))
	for addr := range d.breakpoints {
		addrs = append(addrs, addr)
	}
	return addrs
}

// Registers exposes the wrapped CPU's register snapshot, for the
// interactive REPL.
func (d *Debugger) Registers() cpu.Registers {
	return d.cpu.Registers()
}

// SetWallClock forwards to the wrapped CPU.
func (d *Debugger) SetWallClock(now time.Time) { d.cpu.SetWallClock(now) }

// TickTimers forwards to the wrapped CPU.
func (d *Debugger) TickTimers() { d.cpu.TickTimers() }

// Reset forwards to the wrapped CPU.
func (d *Debugger) Reset() { d.cpu.Reset() }

// Step single-steps the wrapped CPU, pausing for the break handler
// first if the current PC is a breakpoint or single-step mode is
// active, then emitting a trace line for the fields this Debugger was
// configured with.
func (d *Debugger) Step(waitForInput func()) error {
	pc := d.cpu.Registers().PC
	if d.onBreak != nil && (d.broken || d.breakpoints[pc]) {
		d.broken = !d.onBreak(d)
	}

	if err := d.cpu.Step(waitForInput); err != nil {
		return err
	}

	if d.fields != 0 {
		d.trace()
	}
	return nil
}

func (d *Debugger) trace() {
	regs := d.cpu.Registers()

	if d.fields&FieldOpcode != 0 {
		fmt.Fprintf(d.sink, "opcode=%04x ", d.cpu.LastOpcode())
	}
	if d.fields&FieldRegisters != 0 {
		fmt.Fprintf(d.sink, "pc=%04x i=%04x sp=%02x dt=%02x st=%02x v=%02x ",
			regs.PC, regs.I, regs.SP, regs.DT, regs.ST, regs.V)
	}
	if d.fields&FieldStack != 0 {
		fmt.Fprintf(d.sink, "stack=%04x ", regs.Stack)
	}
	fmt.Fprintln(d.sink)
}

// ParseFields parses a comma-separated field list like
// "opcode,registers,stack" into a Field bitset. Unknown names are
// ignored rather than rejected, matching the rest of the CLI's
// tolerance for best-effort flags.
func ParseFields(names []string) Field {
	var f Field
	for _, name := range names {
		switch name {
		case "opcode":
			f |= FieldOpcode
		case "registers":
			f |= FieldRegisters
		case "stack":
			f |= FieldStack
		}
	}
	return f
}
