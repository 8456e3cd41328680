package memory

import "testing"

func TestNewInstallsFontset(t *testing.T) {
	m := New()
	for i, want := range Fontset {
		got, err := m.LoadU8(uint16(i))
		if err != nil {
			t.Fatalf("LoadU8(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("fontset byte %d = %#02x, want %#02x", i, got, want)
		}
	}
}

func TestFontGlyphAddr(t *testing.T) {
	for digit := uint8(0); digit < 16; digit++ {
		addr := FontGlyphAddr(digit)
		if addr != uint16(digit)*5 {
			t.Errorf("FontGlyphAddr(%x) = %#04x, want %#04x", digit, addr, uint16(digit)*5)
		}
	}
}

func TestLoadU16BEBigEndian(t *testing.T) {
	m := New()
	if err := m.StoreU8(ProgramStart, 0x12); err != nil {
		t.Fatal(err)
	}
	if err := m.StoreU8(ProgramStart+1, 0x34); err != nil {
		t.Fatal(err)
	}
	word, err := m.LoadU16BE(ProgramStart)
	if err != nil {
		t.Fatal(err)
	}
	if word != 0x1234 {
		t.Errorf("LoadU16BE = %#04x, want 0x1234", word)
	}
}

func TestStoreU8OutOfBounds(t *testing.T) {
	m := New()
	if err := m.StoreU8(Size, 0xFF); err == nil {
		t.Error("StoreU8 at Size should fail, got nil error")
	}
}

func TestLoadU8OutOfBounds(t *testing.T) {
	m := New()
	if _, err := m.LoadU8(Size); err == nil {
		t.Error("LoadU8 at Size should fail, got nil error")
	}
}

func TestLoadU16BEOutOfBounds(t *testing.T) {
	m := New()
	if _, err := m.LoadU16BE(Size - 1); err == nil {
		t.Error("LoadU16BE straddling the end of memory should fail, got nil error")
	}
}

func TestStoreBytesTruncatesSilently(t *testing.T) {
	m := New()
	data := make([]byte, 16)
	for i := range data {
		data[i] = 0xAB
	}
	n := m.StoreBytes(uint16(Size-8), data)
	if n != 8 {
		t.Errorf("StoreBytes wrote %d bytes, want 8 (truncated at end of address space)", n)
	}
	b, err := m.LoadU8(Size - 1)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xAB {
		t.Errorf("last byte = %#02x, want 0xab", b)
	}
}

func TestStoreU8ThenLoadU8(t *testing.T) {
	m := New()
	if err := m.StoreU8(0x300, 0x42); err != nil {
		t.Fatal(err)
	}
	b, err := m.LoadU8(0x300)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x42 {
		t.Errorf("got %#02x, want 0x42", b)
	}
}
