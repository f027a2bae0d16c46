package liquidfun

// SolveViscous drags viscous-flagged particles toward the relative
// velocity of whatever they're touching -- a body's surface velocity for
// body contacts, the neighbor's velocity for particle contacts (spec.md
// §4.10.a).
func (s *System) SolveViscous() {
	viscousStrength := s.def.ViscousStrength

	for _, bc := range s.bodyContacts {
		a := bc.Index
		if s.flags.Get(a)&FlagViscous == 0 {
			continue
		}
		m := bc.Mass
		p := s.position.Get(a)
		v := bc.Body.GetLinearVelocityFromWorldPoint(p).Sub(s.velocity.Get(a))
		f := v.Mul(viscousStrength * m * bc.Weight)
		s.velocity.Set(a, s.velocity.Get(a).Add(f.Mul(s.def.ParticleInvMass())))
		bc.Body.ApplyLinearImpulse(f.Mul(-1), p, true)
	}

	for _, c := range s.contacts {
		if c.Flags&FlagViscous == 0 {
			continue
		}
		a, b := c.IndexA, c.IndexB
		v := s.velocity.Get(b).Sub(s.velocity.Get(a))
		f := v.Mul(viscousStrength * c.Weight)
		s.velocity.Set(a, s.velocity.Get(a).Add(f))
		s.velocity.Set(b, s.velocity.Get(b).Sub(f))
	}
}
