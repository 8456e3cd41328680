// Package audio drives the CHIP-8's 1-bit buzzer: while the sound
// timer is nonzero a single continuous square wave plays, and it is
// silent otherwise. This is deliberately not a synthesizer — one
// waveform, one frequency, on/off — matching the spec's non-goal of
// excluding sound synthesis beyond the buzzer flag.
package audio

// Backend is the interface the CPU's ST-driven buzzer state is pushed
// through. The VM shell calls SetActive once per cycle with ST > 0.
type Backend interface {
	SetActive(active bool)
	Close() error
}

// NullBackend discards the buzzer state. Selected automatically when
// no audio device is available (e.g. under `go test`, or a headless
// CI runner).
type NullBackend struct{}

// SetActive is a no-op.
func (NullBackend) SetActive(bool) {}

// Close is a no-op.
func (NullBackend) Close() error { return nil }
