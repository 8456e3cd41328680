package display

import "testing"

func TestClear(t *testing.T) {
	d := New()
	d.DrawSprite(0, 0, []byte{0xFF})
	d.Clear()
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if d.Pixel(x, y) != 0 {
				t.Fatalf("Pixel(%d,%d) = 1 after Clear", x, y)
			}
		}
	}
}

func TestDrawSpriteXORsAndReportsCollision(t *testing.T) {
	d := New()
	if erased := d.DrawSprite(0, 0, []byte{0xFF}); erased {
		t.Error("first draw onto a blank display reported a collision")
	}
	for x := 0; x < 8; x++ {
		if d.Pixel(x, 0) != 1 {
			t.Errorf("Pixel(%d,0) = 0, want 1 after drawing 0xFF", x)
		}
	}

	if erased := d.DrawSprite(0, 0, []byte{0xFF}); !erased {
		t.Error("drawing the same sprite twice should report a collision (self-inverse XOR)")
	}
	for x := 0; x < 8; x++ {
		if d.Pixel(x, 0) != 0 {
			t.Errorf("Pixel(%d,0) = 1 after XOR self-cancellation, want 0", x)
		}
	}
}

func TestDrawSpriteWrapsAroundEdges(t *testing.T) {
	d := New()
	d.DrawSprite(Width-2, Height-1, []byte{0xE0, 0xE0})
	if d.Pixel(Width-2, Height-1) != 1 {
		t.Error("sprite bit at the un-wrapped column should be set")
	}
	if d.Pixel(0, 0) != 1 {
		t.Error("sprite bit that runs off the right and bottom edges should wrap to (0,0)")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	d := New()
	d.DrawSprite(0, 0, []byte{0x80})
	snap := d.Snapshot()
	d.Clear()
	if snap[0][0] != 1 {
		t.Error("mutating the Display after Snapshot should not affect the snapshot")
	}
	if d.Pixel(0, 0) != 0 {
		t.Error("Clear after Snapshot should still clear the live framebuffer")
	}
}
