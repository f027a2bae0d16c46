package liquidfun

// SolveDamping reduces each contact's approach-normal velocity component,
// blending a linear term with a quadratic term capped at 0.5 of the normal
// velocity, across both body contacts and particle contacts (spec.md
// §4.10.i).
func (s *System) SolveDamping(step TimeStep) {
	linearDamping := s.def.DampingStrength
	quadraticDamping := 1.0 / s.def.CriticalVelocity(step.InvDt)

	for _, bc := range s.bodyContacts {
		a := bc.Index
		w := bc.Weight
		m := bc.Mass
		n := bc.Normal
		p := s.position.Get(a)
		v := bc.Body.GetLinearVelocityFromWorldPoint(p).Sub(s.velocity.Get(a))
		vn := v.Dot(n)
		if vn >= 0 {
			continue
		}
		damping := max(linearDamping*w, min(-quadraticDamping*vn, 0.5))
		f := n.Mul(damping * m * vn)
		s.velocity.Set(a, s.velocity.Get(a).Add(f.Mul(s.def.ParticleInvMass())))
		bc.Body.ApplyLinearImpulse(f.Mul(-1), p, true)
	}

	for _, c := range s.contacts {
		a, b := c.IndexA, c.IndexB
		w := c.Weight
		n := c.Normal
		v := s.velocity.Get(b).Sub(s.velocity.Get(a))
		vn := v.Dot(n)
		if vn >= 0 {
			continue
		}
		damping := max(linearDamping*w, min(-quadraticDamping*vn, 0.5))
		f := n.Mul(damping * vn)
		s.velocity.Set(a, s.velocity.Get(a).Add(f))
		s.velocity.Set(b, s.velocity.Get(b).Sub(f))
	}
}
