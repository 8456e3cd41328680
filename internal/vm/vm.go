// Package vm wires the CHIP-8 components — memory, CPU, display,
// keyboard, timers, optional debugger, audio, and the external
// presentation window — into the run loop described by the VM shell:
// fetch/decode/dispatch at a configurable instruction rate, decoupled
// from a fixed 60 Hz timer and a fixed 60 Hz frame present.
package vm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/inrick/chip8vm/internal/audio"
	"github.com/inrick/chip8vm/internal/config"
	"github.com/inrick/chip8vm/internal/cpu"
	"github.com/inrick/chip8vm/internal/debugger"
	"github.com/inrick/chip8vm/internal/display"
	"github.com/inrick/chip8vm/internal/keyboard"
	"github.com/inrick/chip8vm/internal/loader"
	"github.com/inrick/chip8vm/internal/memory"
	"github.com/inrick/chip8vm/internal/vmlog"
)

// Stepper is the subset of *cpu.CPU (or a *debugger.Debugger wrapping
// one) the shell drives each cycle.
type Stepper interface {
	Step(waitForInput func()) error
	SetWallClock(now time.Time)
	TickTimers()
	Registers() cpu.Registers
	Reset()
}

// Presenter is the external window: it renders display frames, pumps
// its own event queue, and serves as the keyboard's EventSource.
type Presenter interface {
	keyboard.EventSource
	PollEvents()
	WaitEvents()
	Render(frame [display.Width][display.Height]uint8)
	Close()
}

// Shell owns every live component of one running CHIP-8 session.
type Shell struct {
	cfg  config.Config
	log  *vmlog.Logger
	mem  *memory.Memory
	disp *display.Display
	kbd  *keyboard.Keyboard
	cpu  Stepper
	win  Presenter
	snd  audio.Backend

	cycleDelay time.Duration
	framePeriod time.Duration
}

// New constructs a Shell from cfg, loading the ROM at cfg.ROMPath and
// wiring in the already-opened presentation window and audio backend
// (see InitBackends).
func New(cfg config.Config, log *vmlog.Logger, win Presenter, snd audio.Backend) (*Shell, error) {
	mem := memory.New()
	if err := loader.Load(mem, cfg.ROMPath); err != nil {
		return nil, err
	}

	disp := display.New()
	kbd := keyboard.New()
	rng := cpu.NewMathRand(time.Now().UnixNano())
	c := cpu.New(mem, disp, kbd, rng)

	var stepper Stepper = c
	if cfg.Debug {
		dbg := debugger.New(c, debugger.ParseFields(cfg.TraceFields), logWriter{log})
		for _, addr := range cfg.Breakpoints {
			dbg.AddBreakpoint(addr)
		}
		stepper = dbg
	}

	return &Shell{
		cfg:         cfg,
		log:         log,
		mem:         mem,
		disp:        disp,
		kbd:         kbd,
		cpu:         stepper,
		win:         win,
		snd:         snd,
		cycleDelay:  time.Second / time.Duration(cfg.CPUHz),
		framePeriod: time.Second / 60,
	}, nil
}

// Debugger returns the wrapped *debugger.Debugger, or nil if the shell
// was built without -debug. Used by the CLI entry point to attach a
// REPL break handler.
func (s *Shell) Debugger() *debugger.Debugger {
	d, _ := s.cpu.(*debugger.Debugger)
	return d
}

// Run executes the fetch/decode/dispatch loop until the window
// requests a quit or ctx is canceled. It ticks the CPU at cfg.CPUHz,
// polls the keyboard every cycle, presents a frame every 60th of a
// second, and drives the buzzer from the CPU's sound timer.
func (s *Shell) Run(ctx context.Context) error {
	s.cpu.Reset()

	lastFrame := time.Now()
	ticker := time.NewTicker(s.cycleDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		s.win.PollEvents()
		s.kbd.Poll(s.win)
		if s.kbd.QuitRequested() {
			return nil
		}

		now := time.Now()
		s.cpu.SetWallClock(now)
		if err := s.cpu.Step(s.waitForInput); err != nil {
			return fmt.Errorf("stepping CPU: %w", err)
		}

		s.snd.SetActive(s.cpu.Registers().ST > 0)

		if now.Sub(lastFrame) >= s.framePeriod {
			s.win.Render(s.disp.Snapshot())
			s.disp.Present()
			lastFrame = now
		}
	}
}

// waitForInput is the pump FX0A blocks on: it keeps the window's event
// queue and the keyboard's pressed-state vector advancing, and keeps
// the 60 Hz timers ticking, while the CPU itself is otherwise stalled.
func (s *Shell) waitForInput() {
	s.win.WaitEvents()
	s.win.PollEvents()
	s.kbd.Poll(s.win)
	s.cpu.SetWallClock(time.Now())
	s.cpu.TickTimers()
}

// Close shuts down the presentation window and audio backend
// concurrently; the first error from either is returned once both have
// finished.
func (s *Shell) Close() error {
	var g errgroup.Group
	g.Go(func() error {
		s.win.Close()
		return nil
	})
	g.Go(s.snd.Close)
	return g.Wait()
}

// logWriter adapts *vmlog.Logger to io.Writer for the debugger's trace
// sink, so trace lines share the same "chip8: " prefix and timestamp
// as the rest of the shell's logging.
type logWriter struct {
	log *vmlog.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.log.Infof("%s", p)
	return len(p), nil
}
