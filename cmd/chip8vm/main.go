// Command chip8vm runs a CHIP-8 ROM in a glfw/gl window, CPU clocked at
// a configurable instruction rate with the 60 Hz delay/sound timers and
// frame presentation running independently of it.
package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/inrick/chip8vm/internal/config"
	"github.com/inrick/chip8vm/internal/debugger"
	"github.com/inrick/chip8vm/internal/vm"
	"github.com/inrick/chip8vm/internal/vmlog"
)

func init() {
	// glfw and GL context calls must happen on the thread that created
	// the window, matching the teacher's main.go.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	log := vmlog.New(os.Stderr)

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}

	win, snd, err := vm.InitBackends(cfg)
	if err != nil {
		log.Errorf("opening window/audio: %v", err)
		return 1
	}

	shell, err := vm.New(cfg, log, win, snd)
	if err != nil {
		log.Errorf("%v", err)
		win.Close()
		snd.Close()
		return 1
	}
	defer shell.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if dbg := shell.Debugger(); dbg != nil {
		repl, err := debugger.NewREPL(int(os.Stdin.Fd()), stdinout{}, cancel)
		if err != nil {
			log.Errorf("starting debugger REPL, continuing without it: %v", err)
		} else {
			defer repl.Close()
			dbg.SetBreakHandler(repl.Handle)
		}
	}

	log.Infof("running %s at %d Hz, scale %d", cfg.ROMPath, cfg.CPUHz, cfg.Scale)
	if err := shell.Run(ctx); err != nil && err != context.Canceled {
		log.Errorf("%v", err)
		return 1
	}
	return 0
}

// stdinout pairs stdin/stdout so the debugger REPL's term.Terminal has
// a single io.ReadWriter to read commands from and write prompts to.
type stdinout struct{}

func (stdinout) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdinout) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
