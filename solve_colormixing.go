package liquidfun

import "github.com/go-gl/mathgl/mgl64"

// SolveColorMixing exchanges a fraction of each channel's difference
// between contacting color-mixing particles, truncating the strength to the
// same 128ths-of-full-strength quantization the original's fixed-point
// `b2ParticleColor::MixColors` uses, adapted here to the core's float64
// RGBA color (spec.md §4.10.e).
func (s *System) SolveColorMixing() {
	colorMixing128 := int(128 * s.def.ColorMixingStrength)
	if colorMixing128 == 0 {
		return
	}
	strength := float64(colorMixing128) / 128.0

	for _, c := range s.contacts {
		a, b := c.IndexA, c.IndexB
		if s.flags.Get(a)&s.flags.Get(b)&FlagColorMixing == 0 {
			continue
		}
		ca, cb := s.color.Get(a), s.color.Get(b)
		mixedA, mixedB := mixColors(ca, cb, strength)
		s.color.Set(a, mixedA)
		s.color.Set(b, mixedB)
	}
}

func mixColors(a, b mgl64.Vec4, strength float64) (mgl64.Vec4, mgl64.Vec4) {
	var outA, outB mgl64.Vec4
	for i := 0; i < 4; i++ {
		delta := (b[i] - a[i]) * strength
		outA[i] = a[i] + delta
		outB[i] = b[i] - delta
	}
	return outA, outB
}
