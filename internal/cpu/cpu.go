// Package cpu implements the CHIP-8 register file, stack, and the
// fetch/decode/dispatch of all opcodes. It holds non-owning references
// to Memory, Display, and Keyboard — effects flow out through those
// interfaces, never through a shared-ownership cycle.
package cpu

import (
	"time"

	"github.com/inrick/chip8vm/internal/memory"
	"github.com/inrick/chip8vm/internal/opcode"
	"github.com/inrick/chip8vm/internal/timer"
)

// Memory is the subset of memory.Memory the CPU needs.
type Memory interface {
	LoadU8(addr uint16) (uint8, error)
	LoadU16BE(addr uint16) (uint16, error)
	StoreU8(addr uint16, b uint8) error
}

// Display is the subset of display.Display the CPU needs.
type Display interface {
	Clear()
	DrawSprite(x, y uint8, sprite []byte) bool
}

// Keyboard is the subset of keyboard.Keyboard the CPU needs.
type Keyboard interface {
	IsPressed(key uint8) bool
	WaitForKey(pump func()) uint8
}

// RandSource is the injectable entropy source for CXKK. Tests supply a
// fixed-seed implementation to assert exact distributions.
type RandSource interface {
	Uint8() uint8
}

// Registers is a snapshot of the CPU's register file, returned by
// value so callers (tests, the debugger) can't mutate CPU state
// through it.
type Registers struct {
	V     [16]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [16]uint16
	DT    uint8
	ST    uint8
}

// CPU is the CHIP-8 register file plus the fetch/decode/dispatch loop.
type CPU struct {
	v     [16]uint8
	i     uint16
	pc    uint16
	sp    uint8
	stack [16]uint16
	dt    uint8
	st    uint8

	mem    Memory
	disp   Display
	kbd    Keyboard
	rng    RandSource
	timers *timer.Driver

	lastWord uint16
	lastKey  opcode.Key
}

// New constructs a CPU wired to mem, disp, and kbd, using rng for
// CXKK. New calls Reset, so PC starts at memory.ProgramStart.
func New(mem Memory, disp Display, kbd Keyboard, rng RandSource) *CPU {
	c := &CPU{
		mem:    mem,
		disp:   disp,
		kbd:    kbd,
		rng:    rng,
		timers: timer.New(),
	}
	c.Reset()
	return c
}

// Reset zeroes the register file and sets PC to the program entry
// point. Memory contents (fontset, loaded ROM) are untouched.
func (c *CPU) Reset() {
	c.v = [16]uint8{}
	c.i = 0
	c.pc = memory.ProgramStart
	c.sp = 0
	c.stack = [16]uint16{}
	c.dt = 0
	c.st = 0
	c.lastWord = 0
	c.lastKey = 0
}

// SetWallClock records the current wall-clock time for the 60 Hz
// timer driver. Call once per cycle before Step.
func (c *CPU) SetWallClock(now time.Time) {
	c.timers.SetWallClock(now)
}

// TickTimers decrements DT/ST if a 60 Hz period has elapsed since each
// was last decremented. Step calls this itself at the end of every
// cycle; FX0A's wait pump also calls it directly so the timers keep
// moving while the CPU is blocked waiting for a key.
func (c *CPU) TickTimers() {
	c.timers.TickDT(&c.dt)
	c.timers.TickST(&c.st)
}

// Registers returns a snapshot of the register file.
func (c *CPU) Registers() Registers {
	return Registers{
		V:     c.v,
		I:     c.i,
		PC:    c.pc,
		SP:    c.sp,
		Stack: c.stack,
		DT:    c.dt,
		ST:    c.st,
	}
}

// LastOpcode returns the raw 16-bit word most recently fetched, for
// the debugger's trace output.
func (c *CPU) LastOpcode() uint16 {
	return c.lastWord
}

// Step fetches, decodes, and dispatches one instruction, then ticks
// the 60 Hz timers. waitForInput is invoked only by FX0A, and must
// drain the external key-event source and keep the wall clock (and
// therefore the timers) advancing while it blocks.
func (c *CPU) Step(waitForInput func()) error {
	word, err := c.mem.LoadU16BE(c.pc)
	if err != nil {
		return err
	}
	c.pc += 2

	key, ops := opcode.Decode(word)
	c.lastWord = word
	c.lastKey = key

	if err := c.dispatch(key, ops, waitForInput); err != nil {
		return err
	}

	c.TickTimers()
	return nil
}

func (c *CPU) dispatch(key opcode.Key, ops opcode.Operands, waitForInput func()) error {
	switch key {
	case opcode.KeyCLS:
		c.disp.Clear()

	case opcode.KeyRET:
		if c.sp > 0 {
			c.sp--
		}
		c.pc = c.stack[c.sp]

	case opcode.KeyJP:
		c.pc = ops.NNN

	case opcode.KeyCALL:
		if c.sp < uint8(len(c.stack)) {
			c.stack[c.sp] = c.pc
			c.sp++
		}
		c.pc = ops.NNN

	case opcode.KeySE:
		if c.v[ops.X] == ops.KK {
			c.pc += 2
		}

	case opcode.KeySNE:
		if c.v[ops.X] != ops.KK {
			c.pc += 2
		}

	case opcode.KeySEXY:
		if c.v[ops.X] == c.v[ops.Y] {
			c.pc += 2
		}

	case opcode.KeyLD:
		c.v[ops.X] = ops.KK

	case opcode.KeyADD:
		c.v[ops.X] += ops.KK

	case opcode.KeyLDXY:
		c.v[ops.X] = c.v[ops.Y]

	case opcode.KeyOR:
		c.v[ops.X] |= c.v[ops.Y]

	case opcode.KeyAND:
		c.v[ops.X] &= c.v[ops.Y]

	case opcode.KeyXOR:
		c.v[ops.X] ^= c.v[ops.Y]

	case opcode.KeyADDXY:
		sum := uint16(c.v[ops.X]) + uint16(c.v[ops.Y])
		result := uint8(sum & 0xFF)
		var flag uint8
		if sum > 0xFF {
			flag = 1
		}
		c.v[ops.X] = result
		c.v[0xF] = flag

	case opcode.KeySUB:
		result := c.v[ops.X] - c.v[ops.Y]
		var flag uint8
		if c.v[ops.X] > c.v[ops.Y] {
			flag = 1
		}
		c.v[ops.X] = result
		c.v[0xF] = flag

	case opcode.KeySHR:
		result := c.v[ops.Y] >> 1
		flag := c.v[ops.Y] & 0x1
		c.v[ops.X] = result
		c.v[0xF] = flag

	case opcode.KeySUBN:
		result := c.v[ops.Y] - c.v[ops.X]
		var flag uint8
		if c.v[ops.Y] > c.v[ops.X] {
			flag = 1
		}
		c.v[ops.X] = result
		c.v[0xF] = flag

	case opcode.KeySHL:
		result := c.v[ops.Y] << 1
		flag := (c.v[ops.Y] & 0x80) >> 7
		c.v[ops.X] = result
		c.v[0xF] = flag

	case opcode.KeySNEXY:
		if c.v[ops.X] != c.v[ops.Y] {
			c.pc += 2
		}

	case opcode.KeyLDI:
		c.i = ops.NNN

	case opcode.KeyJPV0:
		c.pc = ops.NNN + uint16(c.v[0])

	case opcode.KeyRND:
		c.v[ops.X] = c.rng.Uint8() & ops.KK

	case opcode.KeyDRW:
		c.v[0xF] = 0
		sprite := make([]byte, ops.N)
		for row := range sprite {
			b, err := c.mem.LoadU8(c.i + uint16(row))
			if err != nil {
				return err
			}
			sprite[row] = b
		}
		if c.disp.DrawSprite(c.v[ops.X], c.v[ops.Y], sprite) {
			c.v[0xF] = 1
		}

	case opcode.KeySKP:
		if c.kbd.IsPressed(c.v[ops.X]) {
			c.pc += 2
		}

	case opcode.KeySKNP:
		if !c.kbd.IsPressed(c.v[ops.X]) {
			c.pc += 2
		}

	case opcode.KeyLDVxDT:
		c.v[ops.X] = c.dt

	case opcode.KeyLDVxK:
		c.v[ops.X] = c.kbd.WaitForKey(waitForInput)

	case opcode.KeyLDDTVx:
		c.dt = c.v[ops.X]

	case opcode.KeyLDSTVx:
		c.st = c.v[ops.X]

	case opcode.KeyADDI:
		c.i += uint16(c.v[ops.X])

	case opcode.KeyLDFVx:
		c.i = memory.FontGlyphAddr(c.v[ops.X])

	case opcode.KeyLDB:
		value := c.v[ops.X]
		if err := c.mem.StoreU8(c.i, value/100); err != nil {
			return err
		}
		if err := c.mem.StoreU8(c.i+1, (value/10)%10); err != nil {
			return err
		}
		if err := c.mem.StoreU8(c.i+2, value%10); err != nil {
			return err
		}

	case opcode.KeyLDIVx:
		for i := uint16(0); i <= uint16(ops.X); i++ {
			if err := c.mem.StoreU8(c.i+i, c.v[i]); err != nil {
				return err
			}
		}
		c.i += uint16(ops.X) + 1

	case opcode.KeyLDVxI:
		for i := uint16(0); i <= uint16(ops.X); i++ {
			b, err := c.mem.LoadU8(c.i + i)
			if err != nil {
				return err
			}
			c.v[i] = b
		}
		c.i += uint16(ops.X) + 1

	default:
		// Unrecognized canonical key: MalformedInstruction per spec,
		// treated as a no-op. PC has already advanced.
	}
	return nil
}
