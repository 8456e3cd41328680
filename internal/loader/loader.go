// Package loader reads a ROM file verbatim into memory starting at
// memory.ProgramStart, byte by byte, with no header and no checksum.
package loader

import (
	"fmt"
	"os"

	"github.com/inrick/chip8vm/internal/memory"
	"github.com/inrick/chip8vm/internal/vmerrors"
)

// MaxROMSize is the largest ROM that fits between ProgramStart and the
// end of the address space.
const MaxROMSize = 0xFFF - memory.ProgramStart + 1

// Load reads the file at path and writes it into mem starting at
// memory.ProgramStart. A file larger than MaxROMSize is rejected
// before anything is written.
func Load(mem *memory.Memory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return vmerrors.NewConfigError("reading ROM file", err)
	}
	if len(data) > MaxROMSize {
		return vmerrors.NewConfigError("reading ROM file",
			fmt.Errorf("%s is %d bytes, exceeds maximum of %d", path, len(data), MaxROMSize))
	}
	mem.StoreBytes(memory.ProgramStart, data)
	return nil
}
