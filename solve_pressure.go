package liquidfun

// SolvePressure computes a per-particle pressure term linear in contact
// weight, zeroes it for particles that carry their own repulsive force,
// folds in static pressure, then applies the resulting impulse across every
// body contact and particle contact (spec.md §4.10.h).
func (s *System) SolvePressure(step TimeStep) {
	criticalPressure := s.def.CriticalPressure(step.InvDt)
	perWeight := s.def.PressureStrength * criticalPressure
	maxPressure := MaxParticlePressure * criticalPressure

	for i := 0; i < s.count; i++ {
		w := s.weight[i]
		h := perWeight * max(0, w-MinParticleWeight)
		s.accumulation[i] = min(h, maxPressure)
	}

	if s.allParticleFlags&noPressureFlags != 0 {
		for i := 0; i < s.count; i++ {
			if s.flags.Get(i)&noPressureFlags != 0 {
				s.accumulation[i] = 0
			}
		}
	}

	if s.allParticleFlags&FlagStaticPressure != 0 {
		buf := s.requestStaticPressureBuffer()
		for i := 0; i < s.count; i++ {
			if s.flags.Get(i)&FlagStaticPressure != 0 {
				s.accumulation[i] += buf[i]
			}
		}
	}

	velocityPerPressure := step.Dt / (s.def.Density * s.def.Diameter())

	for _, bc := range s.bodyContacts {
		a := bc.Index
		w := bc.Weight
		m := bc.Mass
		n := bc.Normal
		p := s.position.Get(a)
		h := s.accumulation[a] + perWeight*w
		f := n.Mul(velocityPerPressure * w * m * h)
		s.velocity.Set(a, s.velocity.Get(a).Sub(f.Mul(s.def.ParticleInvMass())))
		bc.Body.ApplyLinearImpulse(f, p, true)
	}

	for _, c := range s.contacts {
		a, b := c.IndexA, c.IndexB
		w := c.Weight
		n := c.Normal
		h := s.accumulation[a] + s.accumulation[b]
		f := n.Mul(velocityPerPressure * w * h)
		s.velocity.Set(a, s.velocity.Get(a).Sub(f))
		s.velocity.Set(b, s.velocity.Get(b).Add(f))
	}
}
