// Package keyboard implements the CHIP-8's 16-key pressed-state vector.
// The physical key-event source (a polled window event loop) lives
// outside this package; Keyboard only consumes it through the narrow
// EventSource interface below.
package keyboard

// EventSource is the narrow interface the keyboard polls once per
// CPU cycle. A concrete implementation lives alongside the presentation
// backend (e.g. a glfw key callback accumulator); it is not part of
// this package's concern.
type EventSource interface {
	// PressedKeys reports the current press state of logical keys 0x0-0xF.
	PressedKeys() [16]bool
	// QuitRequested reports whether the user asked to close the window.
	QuitRequested() bool
}

// Keyboard tracks which of the 16 logical keys are currently pressed
// and whether the host has asked to quit.
type Keyboard struct {
	pressed [16]bool
	quit    bool
}

// New returns a Keyboard with no keys pressed.
func New() *Keyboard {
	return &Keyboard{}
}

// IsPressed reports whether key (0x0-0xF) is currently held down.
func (k *Keyboard) IsPressed(key uint8) bool {
	return k.pressed[key&0xF]
}

// Poll drains src, updating the pressed-state vector and the
// quit-requested flag. Called once per CPU cycle by the VM shell, and
// from the FX0A wait pump.
// QuitRequested latches true and is never cleared by a later Poll, so
// a single quit event is never missed by a slow consumer.
func (k *Keyboard) Poll(src EventSource) {
	k.pressed = src.PressedKeys()
	if src.QuitRequested() {
		k.quit = true
	}
}

// QuitRequested reports whether the host has asked to close the window.
func (k *Keyboard) QuitRequested() bool {
	return k.quit
}

// WaitForKey blocks until any key transitions to pressed, calling pump
// before each check so the event source keeps draining (and so
// quit-requests and timers, driven elsewhere, keep making progress
// while the CPU is suspended). It returns the lowest-indexed key that
// went from released to pressed; keys already held are not counted.
func (k *Keyboard) WaitForKey(pump func()) uint8 {
	prev := k.pressed
	for {
		pump()
		for i := uint8(0); i < 0x10; i++ {
			if k.pressed[i] && !prev[i] {
				return i
			}
		}
		prev = k.pressed
	}
}
