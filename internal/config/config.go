// Package config parses the chip8vm command line into a Config. It
// uses the standard flag package, matching every CLI in the retrieved
// corpus — none of them reach for a third-party flag library.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/inrick/chip8vm/internal/vmerrors"
)

// Config holds everything parsed from the command line.
type Config struct {
	ROMPath     string
	Scale       int
	CPUHz       int
	Debug       bool
	TraceFields []string
	Breakpoints []uint16
}

// hexList accumulates repeated -break flag values.
type hexList struct {
	values *[]uint16
}

func (h hexList) String() string {
	if h.values == nil {
		return ""
	}
	parts := make([]string, len(*h.values))
	for i, v := range *h.values {
		parts[i] = fmt.Sprintf("%#04x", v)
	}
	return strings.Join(parts, ",")
}

func (h hexList) Set(s string) error {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return fmt.Errorf("invalid breakpoint address %q: %w", s, err)
	}
	*h.values = append(*h.values, uint16(v))
	return nil
}

// Parse parses args (typically os.Args[1:]) into a Config, applying
// the defaults a bare "chip8vm rom.ch8" invocation relies on.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("chip8vm", flag.ContinueOnError)

	var cfg Config
	fs.IntVar(&cfg.Scale, "scale", 12, "window pixels per CHIP-8 pixel")
	fs.IntVar(&cfg.CPUHz, "hz", 600, "CPU instructions per second")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debugger trace output")
	trace := fs.String("trace", "opcode", "comma list of {opcode,registers,stack}")
	fs.Var(hexList{&cfg.Breakpoints}, "break", "breakpoint address in hex, may repeat")

	if err := fs.Parse(args); err != nil {
		return Config{}, vmerrors.NewConfigError("parsing flags", err)
	}

	cfg.TraceFields = strings.Split(*trace, ",")

	if fs.NArg() != 1 {
		return Config{}, vmerrors.NewConfigError("usage", fmt.Errorf("expected exactly one ROM path argument, got %d", fs.NArg()))
	}
	cfg.ROMPath = fs.Arg(0)

	if cfg.Scale <= 0 {
		return Config{}, vmerrors.NewConfigError("validating -scale", fmt.Errorf("must be positive, got %d", cfg.Scale))
	}
	if cfg.CPUHz <= 0 {
		return Config{}, vmerrors.NewConfigError("validating -hz", fmt.Errorf("must be positive, got %d", cfg.CPUHz))
	}

	return cfg, nil
}
