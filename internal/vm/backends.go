package vm

import (
	"golang.org/x/sync/errgroup"

	"github.com/inrick/chip8vm/internal/audio"
	"github.com/inrick/chip8vm/internal/config"
	"github.com/inrick/chip8vm/internal/video"
	"github.com/inrick/chip8vm/internal/vmerrors"
)

// InitBackends opens the presentation window and the audio device,
// surfacing whichever fails first. The window is created on the
// calling goroutine: glfw requires every call affecting a given window
// to come from the thread that owns its GL context, which for this
// process is the OS-locked main goroutine (see cmd/chip8vm's init).
// Audio has no such constraint, so it is opened concurrently via
// errgroup while the window is being set up; a failed audio device
// falls back to NullBackend rather than aborting startup, since sound
// is not required to run a ROM.
func InitBackends(cfg config.Config) (Presenter, audio.Backend, error) {
	var snd audio.Backend = audio.NullBackend{}

	var g errgroup.Group
	g.Go(func() error {
		oto, err := audio.NewOtoBackend()
		if err == nil {
			snd = oto
		}
		return nil
	})

	win, err := video.New("chip8vm", cfg.Scale)

	if waitErr := g.Wait(); waitErr != nil {
		if win != nil {
			win.Close()
		}
		return nil, nil, waitErr
	}
	if err != nil {
		return nil, nil, vmerrors.NewConfigError("opening window", err)
	}
	return win, snd, nil
}
