// Package memory implements the CHIP-8's flat 4096-byte address space:
// typed load/store helpers and the bulk writes used to install the
// fontset and a loaded ROM. There is no caching and no read/write hooks.
package memory

import "github.com/inrick/chip8vm/internal/vmerrors"

const (
	// Size is the total addressable memory, 0x000-0xFFF.
	Size = 0x1000

	// FontBase is the address of the first built-in hexadecimal glyph.
	FontBase = 0x000

	// ProgramStart is the initial PC value and the address a loaded ROM
	// is written to.
	ProgramStart = 0x200

	// fontGlyphSize is the number of bytes per hexadecimal glyph.
	fontGlyphSize = 5
)

// Fontset is the built-in 80-byte hexadecimal font table. Glyph k
// (0 <= k <= 15) occupies bytes 5k..5k+4. FX29 relies on this layout.
var Fontset = [...]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// FontGlyphAddr returns the memory address of the base of glyph digit's
// 5-byte bitmap. Used by the FX29 opcode.
func FontGlyphAddr(digit uint8) uint16 {
	return uint16(digit) * fontGlyphSize
}

// Memory is the CHIP-8's linear 4096-byte store.
type Memory struct {
	bytes [Size]uint8
}

// New returns a Memory instance with the fontset installed at FontBase.
func New() *Memory {
	m := &Memory{}
	m.StoreBytes(FontBase, Fontset[:])
	return m
}

// LoadU8 reads the byte at addr.
func (m *Memory) LoadU8(addr uint16) (uint8, error) {
	if int(addr) >= Size {
		return 0, &vmerrors.BoundsError{Addr: uint32(addr)}
	}
	return m.bytes[addr], nil
}

// LoadU16BE reads the big-endian 16-bit word at addr and addr+1.
func (m *Memory) LoadU16BE(addr uint16) (uint16, error) {
	if int(addr) > Size-2 {
		return 0, &vmerrors.BoundsError{Addr: uint32(addr)}
	}
	hi := uint16(m.bytes[addr])
	lo := uint16(m.bytes[addr+1])
	return hi<<8 | lo, nil
}

// StoreU8 writes b at addr.
func (m *Memory) StoreU8(addr uint16, b uint8) error {
	if int(addr) >= Size {
		return &vmerrors.BoundsError{Addr: uint32(addr)}
	}
	m.bytes[addr] = b
	return nil
}

// StoreBytes bulk-writes data starting at addr. A write that would run
// past the end of the address space is truncated silently: callers that
// care (the ROM loader) check the length themselves before calling.
func (m *Memory) StoreBytes(addr uint16, data []byte) int {
	n := copy(m.bytes[addr:], data)
	return n
}
