package debugger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/inrick/chip8vm/internal/cpu"
)

// fakeStepper is a minimal Stepper double so the decorator's tracing and
// breakpoint logic can be tested without a real CPU.
type fakeStepper struct {
	steps     int
	pcs       []uint16
	lastWord  uint16
	resetCall int
}

func (f *fakeStepper) Step(waitForInput func()) error {
	f.steps++
	return nil
}

func (f *fakeStepper) Registers() cpu.Registers {
	pc := uint16(0x200)
	if f.steps < len(f.pcs) {
		pc = f.pcs[f.steps]
	}
	return cpu.Registers{PC: pc}
}

func (f *fakeStepper) LastOpcode() uint16          { return f.lastWord }
func (f *fakeStepper) SetWallClock(now time.Time)  {}
func (f *fakeStepper) TickTimers()                 {}
func (f *fakeStepper) Reset()                      { f.resetCall++ }

func noPump() {}

func TestTraceWritesSelectedFields(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeStepper{lastWord: 0x1234}
	d := New(f, FieldOpcode, &buf)
	if err := d.Step(noPump); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "opcode=1234") {
		t.Errorf("trace output %q missing opcode field", out)
	}
	if strings.Contains(out, "pc=") {
		t.Errorf("trace output %q should not include unselected registers field", out)
	}
}

func TestTraceEmptyWhenNoFieldsSelected(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeStepper{}
	d := New(f, 0, &buf)
	if err := d.Step(noPump); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no trace output, got %q", buf.String())
	}
}

func TestBreakpointInvokesHandler(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeStepper{pcs: []uint16{0x200}}
	d := New(f, 0, &buf)
	d.AddBreakpoint(0x200)

	called := false
	d.SetBreakHandler(func(d *Debugger) bool {
		called = true
		return true // resume free
	})
	if err := d.Step(noPump); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("break handler was not invoked at a breakpoint")
	}
}

func TestSingleStepModePersistsUntilContinue(t *testing.T) {
	var buf bytes.Buffer
	// Only the first step starts at the breakpoint address.
	f := &fakeStepper{pcs: []uint16{0x200, 0x202, 0x204}}
	d := New(f, 0, &buf)

	calls := 0
	d.SetBreakHandler(func(d *Debugger) bool {
		calls++
		return calls >= 3 // resume free on the third pause
	})
	d.AddBreakpoint(0x200)

	for i := 0; i < 3; i++ {
		if err := d.Step(noPump); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 3 {
		t.Errorf("break handler invoked %d times, want 3 (breakpoint then two single-steps)", calls)
	}
}

func TestAddRemoveBreakpoints(t *testing.T) {
	var buf bytes.Buffer
	d := New(&fakeStepper{}, 0, &buf)
	d.AddBreakpoint(0x300)
	d.AddBreakpoint(0x400)
	if len(d.Breakpoints()) != 2 {
		t.Fatalf("Breakpoints() = %v, want 2 entries", d.Breakpoints())
	}
	d.RemoveBreakpoint(0x300)
	bps := d.Breakpoints()
	if len(bps) != 1 || bps[0] != 0x400 {
		t.Errorf("Breakpoints() after remove = %v, want [0x400]", bps)
	}
}

func TestParseFieldsTolerantOfUnknownNames(t *testing.T) {
	f := ParseFields([]string{"opcode", "bogus", "stack"})
	if f&FieldOpcode == 0 || f&FieldStack == 0 {
		t.Errorf("ParseFields = %v, want opcode and stack set", f)
	}
	if f&FieldRegisters != 0 {
		t.Error("ParseFields should not set registers when not named")
	}
}
