package liquidfun

// SolvePowder pushes powder-flagged contacts apart once their weight
// exceeds 1-stride, keeping powder particles from clumping as densely as a
// liquid (spec.md §4.10.b).
func (s *System) SolvePowder(step TimeStep) {
	powderStrength := s.def.PowderStrength * s.def.CriticalVelocity(step.InvDt)
	minWeight := 1.0 - ParticleStride

	for _, c := range s.contacts {
		if c.Flags&FlagPowder == 0 {
			continue
		}
		if c.Weight <= minWeight {
			continue
		}
		a, b := c.IndexA, c.IndexB
		f := c.Normal.Mul(powderStrength * (c.Weight - minWeight))
		s.velocity.Set(a, s.velocity.Get(a).Sub(f))
		s.velocity.Set(b, s.velocity.Get(b).Add(f))
	}
}
