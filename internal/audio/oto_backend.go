package audio

import (
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	buzzerHz   = 440.0
)

// OtoBackend renders a continuous 440 Hz square wave through an
// ebitengine/oto player, gated on/off by SetActive. The player itself
// is started once at construction and left running for the VM's
// lifetime; SetActive only toggles whether the generated samples are
// silence or the square wave, which avoids the audible click of
// repeatedly starting/stopping the underlying stream.
type OtoBackend struct {
	ctx    *oto.Context
	player *oto.Player
	active atomic.Bool
	phase  float64
}

// NewOtoBackend initializes an oto context and starts a player reading
// from this backend's square-wave generator.
func NewOtoBackend() (*OtoBackend, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	b := &OtoBackend{ctx: ctx}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// SetActive toggles whether Read emits the buzzer tone or silence.
func (b *OtoBackend) SetActive(active bool) {
	b.active.Store(active)
}

// Read implements io.Reader, supplying the oto player with generated
// PCM samples: a 440 Hz square wave while active, silence otherwise.
func (b *OtoBackend) Read(p []byte) (int, error) {
	const step = buzzerHz / sampleRate
	for i := 0; i+1 < len(p); i += 2 {
		var sample int16
		if b.active.Load() {
			if b.phase < 0.5 {
				sample = math.MaxInt16 / 4
			} else {
				sample = math.MinInt16 / 4
			}
		}
		p[i] = byte(sample)
		p[i+1] = byte(sample >> 8)

		b.phase += step
		if b.phase >= 1 {
			b.phase -= 1
		}
	}
	return len(p), nil
}

// Close stops playback and releases the player.
func (b *OtoBackend) Close() error {
	return b.player.Close()
}
