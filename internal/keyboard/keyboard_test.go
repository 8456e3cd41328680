package keyboard

import "testing"

type fakeSource struct {
	pressed [16]bool
	quit    bool
}

func (f fakeSource) PressedKeys() [16]bool { return f.pressed }
func (f fakeSource) QuitRequested() bool   { return f.quit }

func TestPollUpdatesPressedState(t *testing.T) {
	k := New()
	src := fakeSource{}
	src.pressed[0x5] = true
	k.Poll(src)
	if !k.IsPressed(0x5) {
		t.Error("IsPressed(0x5) = false after Poll with key 0x5 pressed")
	}
	if k.IsPressed(0x6) {
		t.Error("IsPressed(0x6) = true, want false")
	}
}

func TestQuitRequestedLatches(t *testing.T) {
	k := New()
	k.Poll(fakeSource{quit: true})
	if !k.QuitRequested() {
		t.Fatal("QuitRequested() = false after a quit event")
	}
	k.Poll(fakeSource{quit: false})
	if !k.QuitRequested() {
		t.Error("QuitRequested() latched back to false after a later non-quit Poll")
	}
}

func TestWaitForKeyReturnsLowestPressed(t *testing.T) {
	k := New()
	calls := 0
	pump := func() {
		calls++
		if calls == 3 {
			k.pressed[0x9] = true
			k.pressed[0x2] = true
		}
	}
	got := k.WaitForKey(pump)
	if got != 0x2 {
		t.Errorf("WaitForKey = %#x, want 0x2 (lowest of 0x2,0x9)", got)
	}
	if calls != 3 {
		t.Errorf("pump called %d times, want 3", calls)
	}
}
