package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inrick/chip8vm/internal/memory"
)

func TestLoadWritesAtProgramStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.ch8")
	rom := []byte{0x12, 0x34, 0x56, 0x78}
	if err := os.WriteFile(path, rom, 0o644); err != nil {
		t.Fatal(err)
	}

	mem := memory.New()
	if err := Load(mem, path); err != nil {
		t.Fatal(err)
	}
	for i, want := range rom {
		got, err := mem.LoadU8(memory.ProgramStart + uint16(i))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("byte %d = %#02x, want %#02x", i, got, want)
		}
	}
}

func TestLoadRejectsOversizedROM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.ch8")
	data := make([]byte, MaxROMSize+1)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	mem := memory.New()
	if err := Load(mem, path); err == nil {
		t.Error("expected an error for a ROM larger than MaxROMSize")
	}
}

func TestLoadMissingFile(t *testing.T) {
	mem := memory.New()
	if err := Load(mem, "/nonexistent/path/to/rom.ch8"); err == nil {
		t.Error("expected an error for a missing ROM file")
	}
}
