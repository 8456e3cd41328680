package debugger

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// REPL is an interactive breakpoint console, styled after a classic
// "(dbg)" prompt: continue, single-step, inspect registers/stack, add
// breakpoints, quit. It puts the given file descriptor into raw mode
// for the duration of its use so backspace/history editing behave, and
// must be closed to restore the terminal.
type REPL struct {
	term     *term.Terminal
	fd       int
	oldState *term.State
	onQuit   func()
}

// NewREPL constructs a REPL reading/writing rw, with fd identifying
// rw's underlying file descriptor (typically os.Stdin.Fd()) so the
// terminal can be switched into raw mode.
func NewREPL(fd int, rw io.ReadWriter, onQuit func()) (*REPL, error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &REPL{
		term:     term.NewTerminal(rw, "(dbg) "),
		fd:       fd,
		oldState: oldState,
		onQuit:   onQuit,
	}, nil
}

// Close restores the terminal to its pre-raw-mode state.
func (r *REPL) Close() error {
	return term.Restore(r.fd, r.oldState)
}

// Handle drives the prompt loop until the user asks to continue
// ("c"/"continue") or single-step ("n"/"next"), returning true for
// the former (run freely) and false for the latter (pause again
// before the next instruction).
func (r *REPL) Handle(d *Debugger) bool {
	for {
		line, err := r.term.ReadLine()
		if err != nil {
			if r.onQuit != nil {
				r.onQuit()
			}
			return true
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "c", "continue":
			return true

		case "n", "next":
			return false

		case "r", "reg", "registers":
			regs := d.Registers()
			fmt.Fprintf(r.term, "pc=%04x i=%04x sp=%02x dt=%02x st=%02x\n",
				regs.PC, regs.I, regs.SP, regs.DT, regs.ST)
			fmt.Fprintf(r.term, "v=%02x\n", regs.V)

		case "stack":
			fmt.Fprintf(r.term, "stack=%04x\n", d.Registers().Stack)

		case "b", "break":
			if len(fields) != 2 {
				fmt.Fprintln(r.term, "usage: break [0x####]")
				continue
			}
			var addr uint16
			if _, err := fmt.Sscanf(strings.TrimPrefix(fields[1], "0x"), "%x", &addr); err != nil {
				fmt.Fprintln(r.term, err)
				continue
			}
			d.AddBreakpoint(addr)
			fmt.Fprintf(r.term, "breakpoint set at %#04x\n", addr)

		case "q", "quit", "exit":
			if r.onQuit != nil {
				r.onQuit()
			}
			return true

		default:
			fmt.Fprintf(r.term, "error: '%s' is not a valid command\n", fields[0])
		}
	}
}
