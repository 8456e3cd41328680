package video

import "testing"

// TestKeymapCoversEveryLogicalKey checks the QWERTY-to-keypad table
// without touching glfw/GL, which need a real display and are not
// exercised under go test.
func TestKeymapCoversEveryLogicalKey(t *testing.T) {
	seen := make(map[uint8]bool)
	for _, logical := range keymap {
		if seen[logical] {
			t.Errorf("logical key %#x mapped from more than one physical key", logical)
		}
		seen[logical] = true
	}
	for k := uint8(0); k < 16; k++ {
		if !seen[k] {
			t.Errorf("logical key %#x has no physical key mapped to it", k)
		}
	}
}
