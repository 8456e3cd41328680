package cpu

import "testing"

func TestMathRandDeterministicForFixedSeed(t *testing.T) {
	a := NewMathRand(42)
	b := NewMathRand(42)
	for i := 0; i < 32; i++ {
		x, y := a.Uint8(), b.Uint8()
		if x != y {
			t.Fatalf("sequence %d: %#02x != %#02x for identical seeds", i, x, y)
		}
	}
}
