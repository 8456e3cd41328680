package cpu

import "math/rand"

// MathRand is the default RandSource, backed by math/rand so CXKK's
// distribution is reproducible across a test run when seeded
// explicitly.
type MathRand struct {
	r *rand.Rand
}

// NewMathRand returns a MathRand seeded with seed.
func NewMathRand(seed int64) *MathRand {
	return &MathRand{r: rand.New(rand.NewSource(seed))}
}

// Uint8 returns a uniformly distributed byte.
func (m *MathRand) Uint8() uint8 {
	return uint8(m.r.Intn(0x100))
}
